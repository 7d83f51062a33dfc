package progress

import (
	"errors"
	"sync"
	"time"

	"gorm.io/gorm"
)

// Schedule maps the attempt number to points. The fourth tier covers
// every attempt past the third.
type Schedule struct {
	First      int
	Second     int
	Third      int
	FourthPlus int
}

// ForAttempt returns the points for a 1-based attempt number.
func (s Schedule) ForAttempt(n int) int {
	switch {
	case n <= 1:
		return s.First
	case n == 2:
		return s.Second
	case n == 3:
		return s.Third
	default:
		return s.FourthPlus
	}
}

// RankTier maps a minimum point total to a gamification label.
type RankTier struct {
	MinPoints int
	Label     string
}

// DefaultSchedule applies to quizzes without a RewardSchedule row.
var DefaultSchedule = Schedule{First: 50, Second: 30, Third: 20, FourthPlus: 10}

// DefaultRankTable holds the ascending point thresholds for ranks.
// Totals below the first threshold map to DefaultRankLabel.
var DefaultRankTable = []RankTier{
	{MinPoints: 20, Label: "Newbie"},
	{MinPoints: 40, Label: "Explorer"},
	{MinPoints: 80, Label: "Achiever"},
	{MinPoints: 150, Label: "Specialist"},
	{MinPoints: 300, Label: "Expert"},
	{MinPoints: 600, Label: "Master"},
}

const DefaultRankLabel = "Starter"

// Service is the progress and assessment engine. It owns every write to
// CourseProgress, LessonProgress, QuizAttempt and LearnerPoints rows.
type Service struct {
	db       *gorm.DB
	catalog  Catalog
	schedule Schedule
	ranks    []RankTier
	locks    *keyedLocks
	now      func() time.Time

	sessMu   sync.Mutex
	sessions map[string]*watchSession

	// onCourseCompleted runs asynchronously after a (user, course) pair
	// first transitions to COMPLETED. Optional.
	onCourseCompleted func(userID, courseID uint)
}

// SetCompletionHook registers the callback fired on first course
// completion. Call before serving traffic.
func (s *Service) SetCompletionHook(fn func(userID, courseID uint)) {
	s.onCourseCompleted = fn
}

func (s *Service) fireCourseCompleted(courseDone bool, userID, courseID uint) {
	if courseDone && s.onCourseCompleted != nil {
		go s.onCourseCompleted(userID, courseID)
	}
}

// NewService wires the engine. A zero schedule or empty rank table falls
// back to the defaults.
func NewService(db *gorm.DB, catalog Catalog, schedule Schedule, ranks []RankTier) *Service {
	if schedule == (Schedule{}) {
		schedule = DefaultSchedule
	}
	if len(ranks) == 0 {
		ranks = DefaultRankTable
	}
	return &Service{
		db:       db,
		catalog:  catalog,
		schedule: schedule,
		ranks:    ranks,
		locks:    newKeyedLocks(),
		now:      time.Now,
		sessions: make(map[string]*watchSession),
	}
}

// Engine is the package-level instance used by the route handlers.
var Engine *Service

// Setup initializes the global engine against the application database.
func Setup(db *gorm.DB) {
	Engine = NewService(db, NewCatalog(), DefaultSchedule, DefaultRankTable)
}

// maxConflictRetries bounds the transparent retry on store-level unique
// constraint conflicts before ErrConflict surfaces.
const maxConflictRetries = 3

func retryConflict(fn func() error) error {
	var err error
	for i := 0; i < maxConflictRetries; i++ {
		err = fn()
		if err == nil || !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
	}
	return ErrConflict
}
