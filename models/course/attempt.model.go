package course

import (
	"time"

	"gorm.io/gorm"
)

// QuizAttempt represents one graded quiz submission. Rows are immutable
// once written; the attempt number is 1-based and gapless per
// (user, quiz), enforced by the unique index.
type QuizAttempt struct {
	gorm.Model
	UserID        uint      `json:"user_id" gorm:"uniqueIndex:idx_quiz_attempt_seq;not null"`
	QuizID        uint      `json:"quiz_id" gorm:"uniqueIndex:idx_quiz_attempt_seq;not null"`
	AttemptNumber int       `json:"attempt_number" gorm:"uniqueIndex:idx_quiz_attempt_seq;not null"`
	Score         int       `json:"score"`     // Correct answers
	MaxScore      int       `json:"max_score"` // Question count
	PointsEarned  int       `json:"points_earned"`
	SubmittedAt   time.Time `json:"submitted_at"`
}

// QuizAnswer records a single answered question within an attempt
type QuizAnswer struct {
	gorm.Model
	AttemptID        uint `json:"attempt_id" gorm:"index;not null"`
	QuestionID       uint `json:"question_id" gorm:"not null"`
	SelectedOptionID uint `json:"selected_option_id"`
	IsCorrect        bool `json:"is_correct" gorm:"default:false"`
}
