package progress

import (
	"encoding/json"
	"math"

	courseModels "lms/models/course"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CompleteLesson records lessonID in the completed set for the
// (user, course) pair and recomputes percentage and status. The add is
// idempotent; recompute is serialized per pair.
func (s *Service) CompleteLesson(userID, courseID, lessonID uint) (*courseModels.CourseProgress, error) {
	unlock := s.locks.lock(progressKey(userID, courseID))
	defer unlock()

	var cp *courseModels.CourseProgress
	var courseDone bool
	err := retryConflict(func() error {
		return s.db.Transaction(func(tx *gorm.DB) error {
			var txErr error
			cp, courseDone, txErr = s.completeLessonTx(tx, userID, courseID, lessonID)
			return txErr
		})
	})
	if err != nil {
		return nil, err
	}
	s.fireCourseCompleted(courseDone, userID, courseID)
	return cp, nil
}

// completeLessonTx is the recompute body. Callers must hold the progress
// lock for the pair and run it inside a transaction. courseDone reports
// whether this call transitioned the course to COMPLETED.
func (s *Service) completeLessonTx(tx *gorm.DB, userID, courseID, lessonID uint) (*courseModels.CourseProgress, bool, error) {
	var cp courseModels.CourseProgress
	err := tx.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		First(&cp).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, false, ErrNotEnrolled
		}
		return nil, false, err
	}

	completed, err := decodeIDSet(cp.CompletedLessonIDs)
	if err != nil {
		return nil, false, err
	}
	if !containsID(completed, lessonID) {
		completed = append(completed, lessonID)
	}

	total, err := s.catalog.PublishedLessonCount(tx, courseID)
	if err != nil {
		return nil, false, err
	}

	cp.CompletedLessonIDs, err = encodeIDSet(completed)
	if err != nil {
		return nil, false, err
	}
	cp.Percent = percentOf(len(completed), total)
	cp.Status = statusOf(cp.Percent)
	courseDone := false
	if cp.Status == courseModels.ProgressCompleted && cp.CompletedAt == nil {
		now := s.now()
		cp.CompletedAt = &now
		courseDone = true
	}

	if err := tx.Save(&cp).Error; err != nil {
		return nil, false, err
	}

	if err := s.markLessonDoneTx(tx, userID, courseID, lessonID); err != nil {
		return nil, false, err
	}

	// Mirror the derived status onto the enrollment row.
	err = tx.Model(&courseModels.Enrollment{}).
		Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		Update("status", enrollmentStatus(cp.Status)).Error
	if err != nil {
		return nil, false, err
	}

	return &cp, courseDone, nil
}

// markLessonDoneTx flips the per-lesson row to completed, creating it on
// first touch. CompletedAt is written once.
func (s *Service) markLessonDoneTx(tx *gorm.DB, userID, courseID, lessonID uint) error {
	var lp courseModels.LessonProgress
	err := tx.Where("user_id = ? AND lesson_id = ? AND is_deleted = ?", userID, lessonID, false).
		First(&lp).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return err
		}
		now := s.now()
		lp = courseModels.LessonProgress{
			UserID:      userID,
			LessonID:    lessonID,
			CourseID:    courseID,
			IsCompleted: true,
			CompletedAt: &now,
		}
		return tx.Create(&lp).Error
	}
	if lp.IsCompleted {
		return nil
	}
	lp.IsCompleted = true
	if lp.CompletedAt == nil {
		now := s.now()
		lp.CompletedAt = &now
	}
	return tx.Save(&lp).Error
}

// percentOf rounds to the nearest integer percentage. A course with no
// lessons has nothing pending, so it counts as fully complete.
func percentOf(completed, total int) int {
	if total == 0 {
		return 100
	}
	return int(math.Round(float64(completed) * 100 / float64(total)))
}

func statusOf(percent int) string {
	switch {
	case percent >= 100:
		return courseModels.ProgressCompleted
	case percent == 0:
		return courseModels.ProgressYetToStart
	default:
		return courseModels.ProgressInProgress
	}
}

func enrollmentStatus(progressStatus string) string {
	if progressStatus == courseModels.ProgressYetToStart {
		return "ENROLLED"
	}
	return progressStatus
}

func decodeIDSet(raw datatypes.JSON) ([]uint, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var ids []uint
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func encodeIDSet(ids []uint) (datatypes.JSON, error) {
	raw, err := json.Marshal(ids)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

func containsID(ids []uint, id uint) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
