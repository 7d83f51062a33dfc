package course

import "gorm.io/gorm"

// LearnerPoints holds the running gamification total for a user. The
// total only ever grows, through atomic in-place increments.
type LearnerPoints struct {
	gorm.Model
	UserID      uint `json:"user_id" gorm:"uniqueIndex;not null"`
	TotalPoints int  `json:"total_points" gorm:"default:0"`
}
