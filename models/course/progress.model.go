package course

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Course progress statuses derived from the completion percentage:
// 0% is YET_TO_START, 100% is COMPLETED, everything between IN_PROGRESS.
const (
	ProgressYetToStart = "YET_TO_START"
	ProgressInProgress = "IN_PROGRESS"
	ProgressCompleted  = "COMPLETED"
)

// CourseProgress is the single source of truth for a user's standing in a
// course. It is mutated only by the progress service's recompute.
type CourseProgress struct {
	gorm.Model
	UserID             uint           `json:"user_id" gorm:"index:idx_course_progress_pair,unique;not null"`
	CourseID           uint           `json:"course_id" gorm:"index:idx_course_progress_pair,unique;not null"`
	CompletedLessonIDs datatypes.JSON `json:"completed_lesson_ids"` // JSON array of lesson IDs
	Percent            int            `json:"percent" gorm:"default:0"`
	Status             string         `json:"status" gorm:"default:'YET_TO_START'"`
	StartedAt          time.Time      `json:"started_at"`
	CompletedAt        *time.Time     `json:"completed_at"` // set once, never cleared
	IsDeleted          bool           `gorm:"default:false"`
}

// LessonProgress tracks a user's completion of a single lesson
type LessonProgress struct {
	gorm.Model
	UserID           uint       `json:"user_id" gorm:"index:idx_lesson_progress_pair,unique;not null"`
	LessonID         uint       `json:"lesson_id" gorm:"index:idx_lesson_progress_pair,unique;not null"`
	CourseID         uint       `json:"course_id" gorm:"index;not null"`
	IsCompleted      bool       `json:"is_completed" gorm:"default:false"`
	TimeSpentSeconds int        `json:"time_spent_seconds" gorm:"default:0"`
	CompletedAt      *time.Time `json:"completed_at"`
	IsDeleted        bool       `gorm:"default:false"`
}
