package progress

import (
	courseModels "lms/models/course"

	"gorm.io/gorm"
)

// SubmittedAnswer is one chosen option for one question.
type SubmittedAnswer struct {
	QuestionID uint `json:"question_id"`
	OptionID   uint `json:"option_id"`
}

// QuizResult reports the outcome of a graded submission.
type QuizResult struct {
	AttemptID     uint `json:"attempt_id"`
	AttemptNumber int  `json:"attempt_number"`
	Score         int  `json:"score"`
	MaxScore      int  `json:"max_score"`
	PointsEarned  int  `json:"points_earned"`
	LessonID      uint `json:"lesson_id"`
	CourseID      uint `json:"course_id"`
}

// SubmitQuiz grades the answers, assigns the next attempt number,
// awards schedule points and records the owning lesson as completed.
// Everything happens in one transaction: a failure anywhere leaves no
// partial attempt behind. Lesson completion and point awarding are
// independent outcomes of the same submission; neither is gated on a
// passing score.
func (s *Service) SubmitQuiz(userID, quizID uint, answers []SubmittedAnswer) (*QuizResult, error) {
	var quiz courseModels.Quiz
	err := s.db.Where("id = ? AND is_deleted = ?", quizID, false).First(&quiz).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}

	lesson, err := s.catalog.LessonByID(s.db, quiz.LessonID)
	if err != nil {
		if err == ErrLessonNotFound {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}

	// Attempt numbering is serialized per (user, quiz); the recompute it
	// triggers is serialized per (user, course). The lock order is fixed
	// here and nowhere reversed.
	unlockQuiz := s.locks.lock(quizKey(userID, quizID))
	defer unlockQuiz()
	unlockProgress := s.locks.lock(progressKey(userID, lesson.CourseID))
	defer unlockProgress()

	var result *QuizResult
	var courseDone bool
	err = retryConflict(func() error {
		return s.db.Transaction(func(tx *gorm.DB) error {
			var txErr error
			result, courseDone, txErr = s.submitQuizTx(tx, userID, quizID, lesson, answers)
			return txErr
		})
	})
	if err != nil {
		return nil, err
	}
	s.fireCourseCompleted(courseDone, userID, lesson.CourseID)
	return result, nil
}

func (s *Service) submitQuizTx(tx *gorm.DB, userID, quizID uint, lesson *courseModels.Lesson, answers []SubmittedAnswer) (*QuizResult, bool, error) {
	// Enrollment is the precondition for every submission.
	var cpCount int64
	err := tx.Model(&courseModels.CourseProgress{}).
		Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, lesson.CourseID, false).
		Count(&cpCount).Error
	if err != nil {
		return nil, false, err
	}
	if cpCount == 0 {
		return nil, false, ErrNotEnrolled
	}

	attemptNumber := 1
	var last courseModels.QuizAttempt
	err = tx.Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Order("attempt_number desc").First(&last).Error
	if err == nil {
		attemptNumber = last.AttemptNumber + 1
	} else if err != gorm.ErrRecordNotFound {
		return nil, false, err
	}

	score, maxScore, graded, err := s.gradeTx(tx, quizID, answers)
	if err != nil {
		return nil, false, err
	}

	points, err := s.rewardTx(tx, quizID, attemptNumber)
	if err != nil {
		return nil, false, err
	}

	attempt := courseModels.QuizAttempt{
		UserID:        userID,
		QuizID:        quizID,
		AttemptNumber: attemptNumber,
		Score:         score,
		MaxScore:      maxScore,
		PointsEarned:  points,
		SubmittedAt:   s.now(),
	}
	if err := tx.Create(&attempt).Error; err != nil {
		return nil, false, err
	}

	for i := range graded {
		graded[i].AttemptID = attempt.ID
	}
	if len(graded) > 0 {
		if err := tx.Create(&graded).Error; err != nil {
			return nil, false, err
		}
	}

	if err := s.addPointsTx(tx, userID, points); err != nil {
		return nil, false, err
	}

	_, courseDone, err := s.completeLessonTx(tx, userID, lesson.CourseID, lesson.ID)
	if err != nil {
		return nil, false, err
	}

	return &QuizResult{
		AttemptID:     attempt.ID,
		AttemptNumber: attemptNumber,
		Score:         score,
		MaxScore:      maxScore,
		PointsEarned:  points,
		LessonID:      lesson.ID,
		CourseID:      lesson.CourseID,
	}, courseDone, nil
}

// gradeTx scores the answers against the stored correct options. Answers
// pointing at questions outside the quiz are recorded as incorrect, and
// repeat answers for a question are dropped after the first.
func (s *Service) gradeTx(tx *gorm.DB, quizID uint, answers []SubmittedAnswer) (int, int, []courseModels.QuizAnswer, error) {
	var questions []courseModels.QuizQuestion
	err := tx.Where("quiz_id = ? AND is_deleted = ?", quizID, false).Find(&questions).Error
	if err != nil {
		return 0, 0, nil, err
	}

	questionIDs := make([]uint, len(questions))
	for i, q := range questions {
		questionIDs[i] = q.ID
	}

	correct := make(map[uint]map[uint]bool, len(questions))
	for _, id := range questionIDs {
		correct[id] = make(map[uint]bool)
	}
	if len(questionIDs) > 0 {
		var options []courseModels.QuizOption
		err = tx.Where("question_id IN ? AND is_deleted = ?", questionIDs, false).Find(&options).Error
		if err != nil {
			return 0, 0, nil, err
		}
		for _, opt := range options {
			if opt.IsCorrect {
				correct[opt.QuestionID][opt.ID] = true
			}
		}
	}

	// Only the first answer per question counts; duplicates from callers
	// that skip request validation must not inflate the score past the
	// question count.
	score := 0
	graded := make([]courseModels.QuizAnswer, 0, len(answers))
	answered := make(map[uint]bool, len(answers))
	for _, ans := range answers {
		if answered[ans.QuestionID] {
			continue
		}
		answered[ans.QuestionID] = true
		isCorrect := false
		if byOption, ok := correct[ans.QuestionID]; ok {
			isCorrect = byOption[ans.OptionID]
		}
		if isCorrect {
			score++
		}
		graded = append(graded, courseModels.QuizAnswer{
			QuestionID:       ans.QuestionID,
			SelectedOptionID: ans.OptionID,
			IsCorrect:        isCorrect,
		})
	}

	return score, len(questions), graded, nil
}

// rewardTx resolves the points for the attempt from the per-quiz
// schedule, falling back to the default schedule.
func (s *Service) rewardTx(tx *gorm.DB, quizID uint, attemptNumber int) (int, error) {
	var row courseModels.RewardSchedule
	err := tx.Where("quiz_id = ? AND is_deleted = ?", quizID, false).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return s.schedule.ForAttempt(attemptNumber), nil
		}
		return 0, err
	}
	schedule := Schedule{First: row.First, Second: row.Second, Third: row.Third, FourthPlus: row.FourthPlus}
	return schedule.ForAttempt(attemptNumber), nil
}

// Attempts lists a user's attempts for a quiz, newest first.
func (s *Service) Attempts(userID, quizID uint) ([]courseModels.QuizAttempt, error) {
	var attempts []courseModels.QuizAttempt
	err := s.db.Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Order("attempt_number desc").Find(&attempts).Error
	return attempts, err
}
