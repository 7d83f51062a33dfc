package progress

import (
	"sync"
	"time"

	courseModels "lms/models/course"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Strict playback constants: reported positions may run at most
// seekToleranceSeconds ahead of the last validated position until the
// watched fraction reaches completionFraction.
const (
	seekToleranceSeconds = 2.0
	completionFraction   = 0.95
)

// PlaybackState is the guard state of one viewing session.
type PlaybackState struct {
	LastValidPosition float64 `json:"last_valid_position"`
	Completed         bool    `json:"completed"`
}

// advance applies one reported progress tick. A forward jump beyond the
// tolerance while incomplete is rejected without changing state. After
// completion seeking is unrestricted and the position only tracks the
// latest value for display.
func (st PlaybackState) advance(playedSeconds, playedFraction float64, ended bool) (next PlaybackState, clamped, completedNow bool) {
	if !st.Completed && playedSeconds-st.LastValidPosition > seekToleranceSeconds {
		return st, true, false
	}
	next = st
	if playedSeconds > next.LastValidPosition {
		next.LastValidPosition = playedSeconds
	}
	if !st.Completed && (playedFraction >= completionFraction || ended) {
		next.Completed = true
		completedNow = true
	}
	return next, false, completedNow
}

type watchSession struct {
	ID       string
	UserID   uint
	CourseID uint
	LessonID uint

	mu       sync.Mutex // serializes ticks; State is only touched under it
	State    PlaybackState
	LastSeen time.Time // guarded by Service.sessMu
}

// PlaybackReport is returned to the player after every tick. When
// Clamped is set the player must seek back to Position.
type PlaybackReport struct {
	SessionID string  `json:"session_id"`
	Position  float64 `json:"position"`
	Completed bool    `json:"completed"`
	Clamped   bool    `json:"clamped"`
}

// StartPlayback opens a viewing session for a video lesson. A lesson the
// user already completed starts in the unrestricted state so rewatching
// is free of the seek guard.
func (s *Service) StartPlayback(userID, lessonID uint) (*PlaybackReport, error) {
	lesson, err := s.catalog.LessonByID(s.db, lessonID)
	if err != nil {
		return nil, err
	}
	if lesson.LessonType != courseModels.LessonTypeVideo {
		return nil, ErrNotVideoLesson
	}
	if _, err := s.Summary(userID, lesson.CourseID); err != nil {
		return nil, err
	}

	state := PlaybackState{}
	var lp courseModels.LessonProgress
	err = s.db.Where("user_id = ? AND lesson_id = ? AND is_deleted = ?", userID, lessonID, false).
		First(&lp).Error
	if err == nil && lp.IsCompleted {
		state.Completed = true
	} else if err != nil && err != gorm.ErrRecordNotFound {
		return nil, err
	}

	sess := &watchSession{
		ID:       uuid.NewString(),
		UserID:   userID,
		CourseID: lesson.CourseID,
		LessonID: lessonID,
		State:    state,
		LastSeen: s.now(),
	}

	s.sessMu.Lock()
	s.sessions[sess.ID] = sess
	s.sessMu.Unlock()

	return &PlaybackReport{
		SessionID: sess.ID,
		Position:  sess.State.LastValidPosition,
		Completed: sess.State.Completed,
	}, nil
}

// ReportPlayback validates one progress tick. Rejected jumps are not an
// error; the report tells the player where to resume. The one-shot
// completion transition records the lesson through the progress tracker
// before the session state commits, so a failed write is retried by the
// next tick rather than lost.
func (s *Service) ReportPlayback(sessionID string, playedSeconds, playedFraction float64, ended bool) (*PlaybackReport, error) {
	s.sessMu.Lock()
	sess, ok := s.sessions[sessionID]
	s.sessMu.Unlock()
	if !ok {
		return nil, ErrSessionNotFound
	}

	// One tick at a time per session; the guard state must not change
	// between validating a report and committing it.
	sess.mu.Lock()
	defer sess.mu.Unlock()

	s.sessMu.Lock()
	sess.LastSeen = s.now()
	s.sessMu.Unlock()

	next, clamped, completedNow := sess.State.advance(playedSeconds, playedFraction, ended)
	if clamped {
		return &PlaybackReport{
			SessionID: sess.ID,
			Position:  sess.State.LastValidPosition,
			Completed: sess.State.Completed,
			Clamped:   true,
		}, nil
	}

	if delta := int(next.LastValidPosition - sess.State.LastValidPosition); delta > 0 {
		if err := s.addWatchTime(sess, delta); err != nil {
			return nil, err
		}
	}

	if completedNow {
		if _, err := s.CompleteLesson(sess.UserID, sess.CourseID, sess.LessonID); err != nil {
			return nil, err
		}
	}

	sess.State = next
	return &PlaybackReport{
		SessionID: sess.ID,
		Position:  next.LastValidPosition,
		Completed: next.Completed,
	}, nil
}

// EndPlayback drops the session. Missing sessions are ignored; the
// client may retry the call after a timeout.
func (s *Service) EndPlayback(sessionID string) {
	s.sessMu.Lock()
	delete(s.sessions, sessionID)
	s.sessMu.Unlock()
}

// PurgeStaleSessions drops sessions idle for longer than maxIdle and
// returns how many were removed.
func (s *Service) PurgeStaleSessions(maxIdle time.Duration) int {
	cutoff := s.now().Add(-maxIdle)
	purged := 0
	s.sessMu.Lock()
	for id, sess := range s.sessions {
		if sess.LastSeen.Before(cutoff) {
			delete(s.sessions, id)
			purged++
		}
	}
	s.sessMu.Unlock()
	return purged
}

// addWatchTime accumulates watched seconds on the lesson row with an
// in-place increment.
func (s *Service) addWatchTime(sess *watchSession, seconds int) error {
	row := courseModels.LessonProgress{
		UserID:           sess.UserID,
		LessonID:         sess.LessonID,
		CourseID:         sess.CourseID,
		TimeSpentSeconds: seconds,
	}
	return s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "lesson_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"time_spent_seconds": gorm.Expr("time_spent_seconds + ?", seconds),
			"updated_at":         s.now(),
		}),
	}).Create(&row).Error
}
