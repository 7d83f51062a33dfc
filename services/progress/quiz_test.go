package progress

import (
	"sort"
	"sync"
	"testing"

	courseModels "lms/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// seedQuiz adds a QUIZ lesson with two questions of two options each to
// the course and returns the quiz with the correct option per question.
func seedQuiz(t *testing.T, db *gorm.DB, courseID uint) (courseModels.Quiz, []courseModels.QuizQuestion, map[uint]uint) {
	t.Helper()

	lesson := courseModels.Lesson{
		CourseID:    courseID,
		Title:       "Checkpoint Quiz",
		LessonType:  courseModels.LessonTypeQuiz,
		IsPublished: true,
	}
	require.NoError(t, db.Create(&lesson).Error)

	quiz := courseModels.Quiz{LessonID: lesson.ID, Title: "Checkpoint"}
	require.NoError(t, db.Create(&quiz).Error)

	correctByQuestion := make(map[uint]uint)
	questions := make([]courseModels.QuizQuestion, 0, 2)
	for i := 0; i < 2; i++ {
		q := courseModels.QuizQuestion{QuizID: quiz.ID, Prompt: "?", OrderIndex: i}
		require.NoError(t, db.Create(&q).Error)

		right := courseModels.QuizOption{QuestionID: q.ID, OptionText: "right", IsCorrect: true}
		wrong := courseModels.QuizOption{QuestionID: q.ID, OptionText: "wrong"}
		require.NoError(t, db.Create(&right).Error)
		require.NoError(t, db.Create(&wrong).Error)

		questions = append(questions, q)
		correctByQuestion[q.ID] = right.ID
	}

	return quiz, questions, correctByQuestion
}

func correctAnswers(questions []courseModels.QuizQuestion, correct map[uint]uint) []SubmittedAnswer {
	answers := make([]SubmittedAnswer, 0, len(questions))
	for _, q := range questions {
		answers = append(answers, SubmittedAnswer{QuestionID: q.ID, OptionID: correct[q.ID]})
	}
	return answers
}

func TestSubmitQuizFirstAttempt(t *testing.T) {
	svc, db := newTestService(t)
	c, _ := seedCourse(t, db, 3)
	quiz, questions, correct := seedQuiz(t, db, c.ID)

	_, err := svc.Enroll(1, c.ID)
	require.NoError(t, err)

	res, err := svc.SubmitQuiz(1, quiz.ID, correctAnswers(questions, correct))
	require.NoError(t, err)
	assert.Equal(t, 1, res.AttemptNumber)
	assert.Equal(t, 2, res.Score)
	assert.Equal(t, 2, res.MaxScore)
	assert.Equal(t, 50, res.PointsEarned)

	total, err := svc.Total(1)
	require.NoError(t, err)
	assert.Equal(t, 50, total)
}

func TestSubmitQuizDiminishingRewards(t *testing.T) {
	svc, db := newTestService(t)
	c, _ := seedCourse(t, db, 3)
	quiz, questions, correct := seedQuiz(t, db, c.ID)

	_, err := svc.Enroll(1, c.ID)
	require.NoError(t, err)

	wantPoints := []int{50, 30, 20, 10, 10, 10}
	runningTotal := 0
	for i, want := range wantPoints {
		res, err := svc.SubmitQuiz(1, quiz.ID, correctAnswers(questions, correct))
		require.NoError(t, err)
		assert.Equal(t, i+1, res.AttemptNumber)
		assert.Equal(t, want, res.PointsEarned)

		runningTotal += want
		total, err := svc.Total(1)
		require.NoError(t, err)
		assert.Equal(t, runningTotal, total)
	}
}

func TestSubmitQuizRewardScheduleOverride(t *testing.T) {
	svc, db := newTestService(t)
	c, _ := seedCourse(t, db, 3)
	quiz, questions, correct := seedQuiz(t, db, c.ID)

	require.NoError(t, db.Create(&courseModels.RewardSchedule{
		QuizID: quiz.ID, First: 100, Second: 60, Third: 40, FourthPlus: 5,
	}).Error)

	_, err := svc.Enroll(1, c.ID)
	require.NoError(t, err)

	res, err := svc.SubmitQuiz(1, quiz.ID, correctAnswers(questions, correct))
	require.NoError(t, err)
	assert.Equal(t, 100, res.PointsEarned)

	for i := 0; i < 4; i++ {
		res, err = svc.SubmitQuiz(1, quiz.ID, correctAnswers(questions, correct))
		require.NoError(t, err)
	}
	assert.Equal(t, 5, res.PointsEarned)
}

func TestSubmitQuizWrongAnswersStillComplete(t *testing.T) {
	svc, db := newTestService(t)
	c, _ := seedCourse(t, db, 2)
	quiz, questions, _ := seedQuiz(t, db, c.ID)

	_, err := svc.Enroll(1, c.ID)
	require.NoError(t, err)

	// Answer both questions with the wrong option.
	answers := make([]SubmittedAnswer, 0, len(questions))
	for _, q := range questions {
		var wrong courseModels.QuizOption
		require.NoError(t, db.Where("question_id = ? AND is_correct = ?", q.ID, false).First(&wrong).Error)
		answers = append(answers, SubmittedAnswer{QuestionID: q.ID, OptionID: wrong.ID})
	}

	res, err := svc.SubmitQuiz(1, quiz.ID, answers)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Score)
	assert.Equal(t, 50, res.PointsEarned) // attempts are rewarded regardless of score

	// The owning lesson still counts as completed.
	cp, err := svc.Summary(1, c.ID)
	require.NoError(t, err)
	ids, err := decodeIDSet(cp.CompletedLessonIDs)
	require.NoError(t, err)
	assert.Contains(t, ids, res.LessonID)
}

func TestSubmitQuizAnswerRows(t *testing.T) {
	svc, db := newTestService(t)
	c, _ := seedCourse(t, db, 2)
	quiz, questions, correct := seedQuiz(t, db, c.ID)

	_, err := svc.Enroll(1, c.ID)
	require.NoError(t, err)

	res, err := svc.SubmitQuiz(1, quiz.ID, correctAnswers(questions, correct))
	require.NoError(t, err)

	var rows []courseModels.QuizAnswer
	require.NoError(t, db.Where("attempt_id = ?", res.AttemptID).Find(&rows).Error)
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.True(t, row.IsCorrect)
	}
}

func TestSubmitQuizDuplicateAnswersCountOnce(t *testing.T) {
	svc, db := newTestService(t)
	c, _ := seedCourse(t, db, 2)
	quiz, questions, correct := seedQuiz(t, db, c.ID)

	_, err := svc.Enroll(1, c.ID)
	require.NoError(t, err)

	// Repeating a correct answer must not lift the score past the
	// question count.
	answers := correctAnswers(questions, correct)
	answers = append(answers, answers[0], answers[0])

	res, err := svc.SubmitQuiz(1, quiz.ID, answers)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Score)
	assert.Equal(t, 2, res.MaxScore)

	var rows []courseModels.QuizAnswer
	require.NoError(t, db.Where("attempt_id = ?", res.AttemptID).Find(&rows).Error)
	assert.Len(t, rows, 2)
}

func TestSubmitQuizNotFound(t *testing.T) {
	svc, db := newTestService(t)
	c, _ := seedCourse(t, db, 2)

	_, err := svc.Enroll(1, c.ID)
	require.NoError(t, err)

	_, err = svc.SubmitQuiz(1, 999, nil)
	assert.ErrorIs(t, err, ErrQuizNotFound)
}

func TestSubmitQuizNotEnrolled(t *testing.T) {
	svc, db := newTestService(t)
	c, _ := seedCourse(t, db, 2)
	quiz, questions, correct := seedQuiz(t, db, c.ID)

	_, err := svc.SubmitQuiz(7, quiz.ID, correctAnswers(questions, correct))
	assert.ErrorIs(t, err, ErrNotEnrolled)
}

func TestConcurrentSubmissionsGaplessAttemptNumbers(t *testing.T) {
	svc, db := newTestService(t)
	c, _ := seedCourse(t, db, 2)
	quiz, questions, correct := seedQuiz(t, db, c.ID)

	_, err := svc.Enroll(1, c.ID)
	require.NoError(t, err)

	const workers = 8
	results := make([]int, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := svc.SubmitQuiz(1, quiz.ID, correctAnswers(questions, correct))
			if assert.NoError(t, err) {
				results[i] = res.AttemptNumber
			}
		}(i)
	}
	wg.Wait()

	sort.Ints(results)
	for i, n := range results {
		assert.Equal(t, i+1, n, "attempt numbers must form a gapless 1..N sequence")
	}
}
