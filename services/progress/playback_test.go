package progress

import (
	"sync"
	"testing"
	"time"

	courseModels "lms/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedVideoLesson(t *testing.T, db *gorm.DB, courseID uint) courseModels.Lesson {
	t.Helper()
	l := courseModels.Lesson{
		CourseID:        courseID,
		Title:           "Intro Video",
		LessonType:      courseModels.LessonTypeVideo,
		VideoURL:        "https://cdn.example.com/intro.mp4",
		DurationSeconds: 600,
		IsPublished:     true,
	}
	require.NoError(t, db.Create(&l).Error)
	return l
}

func TestAdvanceRejectsForwardSeek(t *testing.T) {
	st := PlaybackState{LastValidPosition: 10}

	next, clamped, completedNow := st.advance(50, 0.1, false)
	assert.True(t, clamped)
	assert.False(t, completedNow)
	assert.Equal(t, 10.0, next.LastValidPosition)
	assert.False(t, next.Completed)
}

func TestAdvanceWithinTolerance(t *testing.T) {
	st := PlaybackState{LastValidPosition: 10}

	next, clamped, _ := st.advance(11.5, 0.1, false)
	assert.False(t, clamped)
	assert.Equal(t, 11.5, next.LastValidPosition)

	// Rewinding is always allowed; the high-water mark stays put.
	next, clamped, _ = next.advance(4, 0.05, false)
	assert.False(t, clamped)
	assert.Equal(t, 11.5, next.LastValidPosition)
}

func TestAdvanceCompletesOnce(t *testing.T) {
	st := PlaybackState{LastValidPosition: 100}

	next, _, completedNow := st.advance(101, 0.96, false)
	assert.True(t, completedNow)
	assert.True(t, next.Completed)

	// Repeated ticks past the threshold never re-raise the transition.
	next, _, completedNow = next.advance(102, 0.97, false)
	assert.False(t, completedNow)
	assert.True(t, next.Completed)
}

func TestAdvanceEndOfStreamSignal(t *testing.T) {
	st := PlaybackState{LastValidPosition: 50}

	next, _, completedNow := st.advance(51, 0.5, true)
	assert.True(t, completedNow)
	assert.True(t, next.Completed)
}

func TestAdvanceUnrestrictedAfterCompletion(t *testing.T) {
	st := PlaybackState{LastValidPosition: 100, Completed: true}

	next, clamped, completedNow := st.advance(500, 0.2, false)
	assert.False(t, clamped)
	assert.False(t, completedNow)
	assert.Equal(t, 500.0, next.LastValidPosition)
}

func TestPlaybackSessionFlow(t *testing.T) {
	svc, db := newTestService(t)
	c, _ := seedCourse(t, db, 1)
	video := seedVideoLesson(t, db, c.ID)

	_, err := svc.Enroll(1, c.ID)
	require.NoError(t, err)

	start, err := svc.StartPlayback(1, video.ID)
	require.NoError(t, err)
	assert.False(t, start.Completed)

	// Normal ticks advance the position.
	rep, err := svc.ReportPlayback(start.SessionID, 2, 0.003, false)
	require.NoError(t, err)
	assert.False(t, rep.Clamped)
	assert.Equal(t, 2.0, rep.Position)

	// A jump past the tolerance is clamped back.
	rep, err = svc.ReportPlayback(start.SessionID, 50, 0.08, false)
	require.NoError(t, err)
	assert.True(t, rep.Clamped)
	assert.Equal(t, 2.0, rep.Position)

	// The end-of-stream signal completes the lesson.
	rep, err = svc.ReportPlayback(start.SessionID, 3, 0.005, true)
	require.NoError(t, err)
	assert.True(t, rep.Completed)

	cp, err := svc.Summary(1, c.ID)
	require.NoError(t, err)
	ids, err := decodeIDSet(cp.CompletedLessonIDs)
	require.NoError(t, err)
	assert.Contains(t, ids, video.ID)

	var lp courseModels.LessonProgress
	require.NoError(t, db.Where("user_id = ? AND lesson_id = ?", 1, video.ID).First(&lp).Error)
	assert.True(t, lp.IsCompleted)
	assert.Equal(t, 3, lp.TimeSpentSeconds)
}

func TestPlaybackRewatchUnrestricted(t *testing.T) {
	svc, db := newTestService(t)
	c, _ := seedCourse(t, db, 1)
	video := seedVideoLesson(t, db, c.ID)

	_, err := svc.Enroll(1, c.ID)
	require.NoError(t, err)
	_, err = svc.CompleteLesson(1, c.ID, video.ID)
	require.NoError(t, err)

	start, err := svc.StartPlayback(1, video.ID)
	require.NoError(t, err)
	assert.True(t, start.Completed)

	rep, err := svc.ReportPlayback(start.SessionID, 400, 0.6, false)
	require.NoError(t, err)
	assert.False(t, rep.Clamped)
	assert.Equal(t, 400.0, rep.Position)
}

func TestStartPlaybackPreconditions(t *testing.T) {
	svc, db := newTestService(t)
	c, lessons := seedCourse(t, db, 1)
	video := seedVideoLesson(t, db, c.ID)

	_, err := svc.StartPlayback(1, video.ID)
	assert.ErrorIs(t, err, ErrNotEnrolled)

	_, err = svc.Enroll(1, c.ID)
	require.NoError(t, err)

	_, err = svc.StartPlayback(1, lessons[0].ID)
	assert.ErrorIs(t, err, ErrNotVideoLesson)

	_, err = svc.StartPlayback(1, 9999)
	assert.ErrorIs(t, err, ErrLessonNotFound)
}

func TestReportPlaybackUnknownSession(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.ReportPlayback("nope", 1, 0.1, false)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestPurgeStaleSessions(t *testing.T) {
	svc, db := newTestService(t)
	c, _ := seedCourse(t, db, 1)
	video := seedVideoLesson(t, db, c.ID)

	_, err := svc.Enroll(1, c.ID)
	require.NoError(t, err)

	stale, err := svc.StartPlayback(1, video.ID)
	require.NoError(t, err)

	// Age the session past the cutoff, then open a fresh one.
	svc.now = func() time.Time { return time.Now().Add(3 * time.Hour) }
	fresh, err := svc.StartPlayback(1, video.ID)
	require.NoError(t, err)

	purged := svc.PurgeStaleSessions(2 * time.Hour)
	assert.Equal(t, 1, purged)

	_, err = svc.ReportPlayback(stale.SessionID, 1, 0.01, false)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = svc.ReportPlayback(fresh.SessionID, 1, 0.01, false)
	assert.NoError(t, err)
}

// Ticks and the cron sweep touch the same session concurrently; run
// under the race detector this catches unguarded session fields.
func TestConcurrentReportAndPurge(t *testing.T) {
	svc, db := newTestService(t)
	c, _ := seedCourse(t, db, 2)
	video := seedVideoLesson(t, db, c.ID)

	_, err := svc.Enroll(1, c.ID)
	require.NoError(t, err)

	start, err := svc.StartPlayback(1, video.ID)
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			if _, err := svc.ReportPlayback(start.SessionID, float64(i), 0.001, false); err != nil {
				t.Error(err)
				return
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			svc.PurgeStaleSessions(time.Hour)
		}
	}()
	wg.Wait()

	rep, err := svc.ReportPlayback(start.SessionID, 50, 0.08, false)
	require.NoError(t, err)
	assert.False(t, rep.Clamped)
	assert.Equal(t, 50.0, rep.Position)
}
