package progress

import (
	courseModels "lms/models/course"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Enroll creates the enrollment and its initial progress row in one
// transaction. The progress row starts empty at 0% / YET_TO_START.
func (s *Service) Enroll(userID, courseID uint) (*courseModels.Enrollment, error) {
	available, err := s.catalog.CourseAvailable(s.db, courseID)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, ErrCourseNotAvailable
	}

	var existing courseModels.Enrollment
	err = s.db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		First(&existing).Error
	if err == nil {
		return nil, ErrAlreadyEnrolled
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	enrollment := courseModels.Enrollment{
		UserID:   userID,
		CourseID: courseID,
		Status:   "ENROLLED",
	}

	err = retryConflict(func() error {
		return s.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&enrollment).Error; err != nil {
				return err
			}
			cp := courseModels.CourseProgress{
				UserID:             userID,
				CourseID:           courseID,
				CompletedLessonIDs: datatypes.JSON("[]"),
				Percent:            0,
				Status:             courseModels.ProgressYetToStart,
				StartedAt:          s.now(),
			}
			return tx.Create(&cp).Error
		})
	})
	if err != nil {
		// Two racing enrolls resolve to one winner; the loser sees the row now.
		if err == ErrConflict {
			return nil, ErrAlreadyEnrolled
		}
		return nil, err
	}

	return &enrollment, nil
}

// Summary returns the current CourseProgress snapshot for the pair.
func (s *Service) Summary(userID, courseID uint) (*courseModels.CourseProgress, error) {
	var cp courseModels.CourseProgress
	err := s.db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		First(&cp).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotEnrolled
		}
		return nil, err
	}
	return &cp, nil
}
