package progress

import (
	courseModels "lms/models/course"

	"gorm.io/gorm"
)

// Catalog is the read-only view of course structure the engine depends
// on. Authoring owns that data; the engine only counts and classifies
// lessons through this interface. Every method takes the handle to read
// through so callers inside a transaction reuse its connection instead
// of pulling a second one from the pool.
type Catalog interface {
	// CourseAvailable reports whether the course exists and is published.
	CourseAvailable(db *gorm.DB, courseID uint) (bool, error)
	// PublishedLessonCount returns the number of published lessons in the course.
	PublishedLessonCount(db *gorm.DB, courseID uint) (int, error)
	// LessonByID returns a published lesson or ErrLessonNotFound.
	LessonByID(db *gorm.DB, lessonID uint) (*courseModels.Lesson, error)
}

type gormCatalog struct{}

// NewCatalog returns a Catalog reading from the course tables.
func NewCatalog() Catalog {
	return gormCatalog{}
}

func (gormCatalog) CourseAvailable(db *gorm.DB, courseID uint) (bool, error) {
	var count int64
	err := db.Model(&courseModels.Course{}).
		Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).
		Count(&count).Error
	return count > 0, err
}

func (gormCatalog) PublishedLessonCount(db *gorm.DB, courseID uint) (int, error) {
	var count int64
	err := db.Model(&courseModels.Lesson{}).
		Where("course_id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).
		Count(&count).Error
	return int(count), err
}

func (gormCatalog) LessonByID(db *gorm.DB, lessonID uint) (*courseModels.Lesson, error) {
	var lesson courseModels.Lesson
	err := db.Where("id = ? AND is_deleted = ? AND is_published = ?", lessonID, false, true).
		First(&lesson).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrLessonNotFound
		}
		return nil, err
	}
	return &lesson, nil
}
