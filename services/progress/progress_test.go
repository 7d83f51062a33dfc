package progress

import (
	"fmt"
	"sync"
	"testing"
	"time"

	courseModels "lms/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps every test against the same in-memory DB.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&courseModels.Course{},
		&courseModels.Lesson{},
		&courseModels.Quiz{},
		&courseModels.QuizQuestion{},
		&courseModels.QuizOption{},
		&courseModels.RewardSchedule{},
		&courseModels.Enrollment{},
		&courseModels.CourseProgress{},
		&courseModels.LessonProgress{},
		&courseModels.QuizAttempt{},
		&courseModels.QuizAnswer{},
		&courseModels.LearnerPoints{},
	))

	return NewService(db, NewCatalog(), Schedule{}, nil), db
}

func seedCourse(t *testing.T, db *gorm.DB, lessonCount int) (courseModels.Course, []courseModels.Lesson) {
	t.Helper()

	c := courseModels.Course{Title: "Test Course", Status: "ACTIVE", IsPublished: true}
	require.NoError(t, db.Create(&c).Error)

	lessons := make([]courseModels.Lesson, 0, lessonCount)
	for i := 0; i < lessonCount; i++ {
		l := courseModels.Lesson{
			CourseID:    c.ID,
			Title:       fmt.Sprintf("Lesson %d", i+1),
			LessonType:  courseModels.LessonTypeText,
			OrderIndex:  i,
			IsPublished: true,
		}
		require.NoError(t, db.Create(&l).Error)
		lessons = append(lessons, l)
	}

	return c, lessons
}

func TestEnroll(t *testing.T) {
	svc, db := newTestService(t)
	c, _ := seedCourse(t, db, 4)

	enr, err := svc.Enroll(1, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "ENROLLED", enr.Status)

	// The initial progress row goes in atomically with the enrollment.
	cp, err := svc.Summary(1, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, cp.Percent)
	assert.Equal(t, courseModels.ProgressYetToStart, cp.Status)
	assert.Nil(t, cp.CompletedAt)

	_, err = svc.Enroll(1, c.ID)
	assert.ErrorIs(t, err, ErrAlreadyEnrolled)
}

func TestEnrollUnpublishedCourse(t *testing.T) {
	svc, db := newTestService(t)

	c := courseModels.Course{Title: "Draft", Status: "DRAFT", IsPublished: false}
	require.NoError(t, db.Create(&c).Error)

	_, err := svc.Enroll(1, c.ID)
	assert.ErrorIs(t, err, ErrCourseNotAvailable)
}

func TestSummaryNotEnrolled(t *testing.T) {
	svc, db := newTestService(t)
	c, _ := seedCourse(t, db, 2)

	_, err := svc.Summary(42, c.ID)
	assert.ErrorIs(t, err, ErrNotEnrolled)
}

func TestCompleteLessonProgression(t *testing.T) {
	svc, db := newTestService(t)
	c, lessons := seedCourse(t, db, 4)

	_, err := svc.Enroll(1, c.ID)
	require.NoError(t, err)

	_, err = svc.CompleteLesson(1, c.ID, lessons[0].ID)
	require.NoError(t, err)
	cp, err := svc.CompleteLesson(1, c.ID, lessons[1].ID)
	require.NoError(t, err)
	assert.Equal(t, 50, cp.Percent)
	assert.Equal(t, courseModels.ProgressInProgress, cp.Status)

	_, err = svc.CompleteLesson(1, c.ID, lessons[2].ID)
	require.NoError(t, err)
	cp, err = svc.CompleteLesson(1, c.ID, lessons[3].ID)
	require.NoError(t, err)
	assert.Equal(t, 100, cp.Percent)
	assert.Equal(t, courseModels.ProgressCompleted, cp.Status)
	require.NotNil(t, cp.CompletedAt)
	firstCompletedAt := *cp.CompletedAt

	// Enrollment mirrors the derived status.
	var enr courseModels.Enrollment
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", 1, c.ID).First(&enr).Error)
	assert.Equal(t, "COMPLETED", enr.Status)

	// Re-completing keeps the timestamp from the first transition.
	cp, err = svc.CompleteLesson(1, c.ID, lessons[3].ID)
	require.NoError(t, err)
	require.NotNil(t, cp.CompletedAt)
	assert.True(t, firstCompletedAt.Equal(*cp.CompletedAt))
}

func TestCompleteLessonIdempotent(t *testing.T) {
	svc, db := newTestService(t)
	c, lessons := seedCourse(t, db, 4)

	_, err := svc.Enroll(1, c.ID)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		_, err = svc.CompleteLesson(1, c.ID, lessons[0].ID)
		require.NoError(t, err)
	}

	cp, err := svc.Summary(1, c.ID)
	require.NoError(t, err)
	ids, err := decodeIDSet(cp.CompletedLessonIDs)
	require.NoError(t, err)
	assert.Len(t, ids, 1)
	assert.Equal(t, 25, cp.Percent)
}

func TestCompleteLessonNotEnrolled(t *testing.T) {
	svc, db := newTestService(t)
	c, lessons := seedCourse(t, db, 2)

	_, err := svc.CompleteLesson(9, c.ID, lessons[0].ID)
	assert.ErrorIs(t, err, ErrNotEnrolled)
}

func TestZeroLessonCourse(t *testing.T) {
	svc, db := newTestService(t)
	c, _ := seedCourse(t, db, 0)

	_, err := svc.Enroll(1, c.ID)
	require.NoError(t, err)

	// Nothing is pending, so any completion signal resolves to 100%.
	cp, err := svc.CompleteLesson(1, c.ID, 12345)
	require.NoError(t, err)
	assert.Equal(t, 100, cp.Percent)
	assert.Equal(t, courseModels.ProgressCompleted, cp.Status)
}

func TestPercentAlwaysInRange(t *testing.T) {
	svc, db := newTestService(t)
	c, lessons := seedCourse(t, db, 7)

	_, err := svc.Enroll(1, c.ID)
	require.NoError(t, err)

	for _, l := range lessons {
		cp, err := svc.CompleteLesson(1, c.ID, l.ID)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, cp.Percent, 0)
		assert.LessOrEqual(t, cp.Percent, 100)
		assert.Equal(t, cp.Status == courseModels.ProgressCompleted, cp.Percent == 100)
	}
}

func TestConcurrentCompleteSameLesson(t *testing.T) {
	svc, db := newTestService(t)
	c, lessons := seedCourse(t, db, 4)

	_, err := svc.Enroll(1, c.ID)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CompleteLesson(1, c.ID, lessons[0].ID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	cp, err := svc.Summary(1, c.ID)
	require.NoError(t, err)
	ids, err := decodeIDSet(cp.CompletedLessonIDs)
	require.NoError(t, err)
	assert.Len(t, ids, 1)
	assert.Equal(t, 25, cp.Percent)
}

func TestLessonProgressRowWritten(t *testing.T) {
	svc, db := newTestService(t)
	c, lessons := seedCourse(t, db, 2)

	_, err := svc.Enroll(1, c.ID)
	require.NoError(t, err)
	_, err = svc.CompleteLesson(1, c.ID, lessons[0].ID)
	require.NoError(t, err)

	var lp courseModels.LessonProgress
	require.NoError(t, db.Where("user_id = ? AND lesson_id = ?", 1, lessons[0].ID).First(&lp).Error)
	assert.True(t, lp.IsCompleted)
	require.NotNil(t, lp.CompletedAt)
}

func TestCompleteLessonSingleConnection(t *testing.T) {
	svc, db := newTestService(t)
	c, lessons := seedCourse(t, db, 2)

	_, err := svc.Enroll(1, c.ID)
	require.NoError(t, err)

	// The suite's pool holds exactly one connection, so the recompute
	// hangs if any of its reads bypasses the open transaction.
	done := make(chan error, 1)
	go func() {
		_, err := svc.CompleteLesson(1, c.ID, lessons[0].ID)
		done <- err
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("CompleteLesson blocked on a single-connection pool")
	}

	cp, err := svc.Summary(1, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, cp.Percent)
}
