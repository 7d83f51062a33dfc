package course

import "gorm.io/gorm"

// Quiz represents the assessment attached to a QUIZ lesson
type Quiz struct {
	gorm.Model
	LessonID  uint   `json:"lesson_id" gorm:"uniqueIndex;not null"`
	Title     string `json:"title"`
	IsDeleted bool   `gorm:"default:false"`
}

// QuizQuestion represents a single question within a quiz
type QuizQuestion struct {
	gorm.Model
	QuizID     uint   `json:"quiz_id" gorm:"index;not null"`
	Prompt     string `json:"prompt" gorm:"type:text"`
	OrderIndex int    `json:"order_index" gorm:"default:0"`
	IsDeleted  bool   `gorm:"default:false"`
}

// QuizOption represents an answer option for a quiz question
type QuizOption struct {
	gorm.Model
	QuestionID uint   `json:"question_id" gorm:"index;not null"`
	OptionText string `json:"option_text"`
	IsCorrect  bool   `json:"is_correct" gorm:"default:false"`
	OrderIndex int    `json:"order_index" gorm:"default:0"`
	IsDeleted  bool   `gorm:"default:false"`
}

// RewardSchedule overrides the default attempt-number -> points mapping
// for a single quiz. Attempts past the fourth all use FourthPlus.
type RewardSchedule struct {
	gorm.Model
	QuizID     uint `json:"quiz_id" gorm:"uniqueIndex;not null"`
	First      int  `json:"first" gorm:"default:50"`
	Second     int  `json:"second" gorm:"default:30"`
	Third      int  `json:"third" gorm:"default:20"`
	FourthPlus int  `json:"fourth_plus" gorm:"default:10"`
	IsDeleted  bool `gorm:"default:false"`
}
