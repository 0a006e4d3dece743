package services

import (
	"testing"

	"quizmaster/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleQuestionsPoolSmallerThanRequest(t *testing.T) {
	pool := make([]models.Question, 8)
	for i := range pool {
		pool[i].ID = uint(i + 1)
	}

	sampled := sampleQuestions(pool, 20)
	assert.Len(t, sampled, 8)
}

func TestSampleQuestionsTruncates(t *testing.T) {
	pool := make([]models.Question, 50)
	for i := range pool {
		pool[i].ID = uint(i + 1)
	}

	sampled := sampleQuestions(pool, 10)
	require.Len(t, sampled, 10)

	seen := make(map[uint]bool)
	for _, q := range sampled {
		assert.False(t, seen[q.ID], "question %d sampled twice", q.ID)
		seen[q.ID] = true
	}
}

func TestStartCustomCountValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuizService(db)
	user := createUser(t, db, "alice")
	createQuestions(t, db, 10, nil)

	for _, count := range []int{0, 4, 101} {
		_, _, err := svc.Start(user.ID, QuizTypeCustom, QuizFilters{Count: count})
		assert.ErrorIs(t, err, ErrInvalidQuestionCount, "count %d", count)
	}

	questions, _, err := svc.Start(user.ID, QuizTypeCustom, QuizFilters{Count: 5})
	require.NoError(t, err)
	assert.Len(t, questions, 5)
}

func TestStartInvalidQuizType(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuizService(db)
	user := createUser(t, db, "alice")

	_, _, err := svc.Start(user.ID, "speedrun", QuizFilters{})
	assert.ErrorIs(t, err, ErrInvalidQuizType)
}

func TestStartWithEmptyPool(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuizService(db)
	user := createUser(t, db, "alice")

	_, _, err := svc.Start(user.ID, QuizTypeStandard, QuizFilters{})
	assert.ErrorIs(t, err, ErrNoQuestions)
}

func TestStartReplacesExistingSession(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuizService(db)
	user := createUser(t, db, "alice")
	createQuestions(t, db, 10, nil)

	_, first, err := svc.Start(user.ID, QuizTypeStandard, QuizFilters{})
	require.NoError(t, err)
	_, second, err := svc.Start(user.ID, QuizTypeStandard, QuizFilters{})
	require.NoError(t, err)

	assert.NotEqual(t, first.Token, second.Token)

	var count int64
	require.NoError(t, db.Model(&models.QuizSession{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestStartCustomFiltersByCategory(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuizService(db)
	user := createUser(t, db, "alice")

	history := createCategory(t, db, "History")
	science := createCategory(t, db, "Science")
	createQuestions(t, db, 6, &history.ID)
	createQuestions(t, db, 6, &science.ID)

	questions, _, err := svc.Start(user.ID, QuizTypeCustom, QuizFilters{
		CategoryIDs: []uint{history.ID},
		Count:       20,
	})
	require.NoError(t, err)
	assert.Len(t, questions, 6)
	for _, q := range questions {
		assert.Equal(t, history.ID, *q.CategoryID)
	}
}

func TestSessionPreservesDealtOrder(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuizService(db)
	user := createUser(t, db, "alice")
	createQuestions(t, db, 10, nil)

	_, session, err := svc.Start(user.ID, QuizTypeStandard, QuizFilters{})
	require.NoError(t, err)

	_, questions, err := svc.Session(user.ID)
	require.NoError(t, err)
	require.Len(t, questions, len(session.QuestionIDs))
	for i, q := range questions {
		assert.Equal(t, session.QuestionIDs[i], q.ID)
	}
}

func TestSessionMissing(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuizService(db)
	user := createUser(t, db, "alice")

	_, _, err := svc.Session(user.ID)
	assert.ErrorIs(t, err, ErrNoActiveSession)
}

func TestSubmitGradesAndUpdatesProgress(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuizService(db)
	user := createUser(t, db, "alice")
	createQuestions(t, db, 10, nil)

	questions, _, err := svc.Start(user.ID, QuizTypeStandard, QuizFilters{})
	require.NoError(t, err)
	require.Len(t, questions, 10)

	// 7 correct, 1 wrong, 1 out-of-range selection, 1 unanswered
	answers := map[uint]int{}
	for i, q := range questions {
		switch {
		case i < 7:
			answers[q.ID] = 1
		case i == 7:
			answers[q.ID] = 2
		case i == 8:
			answers[q.ID] = 7
		}
	}

	summary, err := svc.Submit(user.ID, answers, 120)
	require.NoError(t, err)

	assert.Equal(t, 7, summary.Result.Score)
	assert.Equal(t, 10, summary.Result.TotalQuestions)
	assert.Equal(t, 120, summary.Result.TimeTaken)
	assert.InDelta(t, 70.0, summary.Result.Percentage(), 0.001)

	// Only valid selections leave answer records
	var answerCount int64
	require.NoError(t, db.Model(&models.UserAnswer{}).Where("user_id = ?", user.ID).Count(&answerCount).Error)
	assert.EqualValues(t, 8, answerCount)

	assert.Equal(t, 1, summary.Progress.TotalAttempts)
	assert.Equal(t, 10, summary.Progress.QuestionsAnswered)
	assert.Equal(t, 7, summary.Progress.CorrectAnswers)
	assert.InDelta(t, 0.7, summary.Progress.AverageScore, 0.001)

	// Session is consumed
	_, _, err = svc.Session(user.ID)
	assert.ErrorIs(t, err, ErrNoActiveSession)
}

func TestSubmitWithoutSession(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuizService(db)
	user := createUser(t, db, "alice")

	_, err := svc.Submit(user.ID, map[uint]int{}, 0)
	assert.ErrorIs(t, err, ErrNoActiveSession)
}

func TestSubmitScoreNeverExceedsTotal(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuizService(db)
	user := createUser(t, db, "alice")
	createQuestions(t, db, 5, nil)

	questions, _, err := svc.Start(user.ID, QuizTypeCustom, QuizFilters{Count: 5})
	require.NoError(t, err)

	answers := map[uint]int{}
	for _, q := range questions {
		answers[q.ID] = 1
	}
	// Answers for questions outside the session are ignored
	answers[9999] = 1

	summary, err := svc.Submit(user.ID, answers, 30)
	require.NoError(t, err)
	assert.Equal(t, 5, summary.Result.Score)
	assert.Equal(t, 5, summary.Result.TotalQuestions)
	assert.LessOrEqual(t, summary.Result.Score, summary.Result.TotalQuestions)
}

func TestStartDailyDealsSingleSharedQuestion(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuizService(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	createQuestions(t, db, 10, nil)

	aliceQuestions, _, err := svc.Start(alice.ID, QuizTypeDaily, QuizFilters{})
	require.NoError(t, err)
	bobQuestions, _, err := svc.Start(bob.ID, QuizTypeDaily, QuizFilters{})
	require.NoError(t, err)

	require.Len(t, aliceQuestions, 1)
	require.Len(t, bobQuestions, 1)
	assert.Equal(t, aliceQuestions[0].ID, bobQuestions[0].ID)
}
