package progress

import "errors"

// Precondition errors are surfaced to the caller as-is and are never
// retried; ErrConflict is returned only after the bounded retry on
// store-level unique constraint conflicts is exhausted.
var (
	ErrAlreadyEnrolled    = errors.New("user already enrolled in this course")
	ErrNotEnrolled        = errors.New("user not enrolled in this course")
	ErrCourseNotAvailable = errors.New("course not found or not published")
	ErrLessonNotFound     = errors.New("lesson not found or not published")
	ErrQuizNotFound       = errors.New("quiz not found")
	ErrNotVideoLesson     = errors.New("lesson is not a video lesson")
	ErrSessionNotFound    = errors.New("playback session not found")
	ErrConflict           = errors.New("concurrent update conflict")
	ErrNegativeAmount     = errors.New("points amount must not be negative")
)
