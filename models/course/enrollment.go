package course

import "gorm.io/gorm"

// Enrollment tracks a user's membership in a course. Its status mirrors
// the CourseProgress status and is never written by anything else.
type Enrollment struct {
	gorm.Model
	UserID    uint   `json:"user_id" gorm:"index:idx_enrollment_pair,unique;not null"`
	CourseID  uint   `json:"course_id" gorm:"index:idx_enrollment_pair,unique;not null"`
	Status    string `json:"status" gorm:"default:'ENROLLED'"` // ENROLLED, IN_PROGRESS, COMPLETED
	IsDeleted bool   `gorm:"default:false"`
}
