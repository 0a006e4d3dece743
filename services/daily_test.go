package services

import (
	"testing"

	"quizmaster/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyQuestionStableWithinDate(t *testing.T) {
	db := newTestDB(t)
	svc := NewDailyQuestionService(db)
	createQuestions(t, db, 20, nil)

	first, err := svc.Get("2026-08-31")
	require.NoError(t, err)
	second, err := svc.Get("2026-08-31")
	require.NoError(t, err)

	assert.Equal(t, first.QuestionID, second.QuestionID)

	var count int64
	require.NoError(t, db.Model(&models.DailyQuestion{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestDailyQuestionVariesAcrossDates(t *testing.T) {
	db := newTestDB(t)
	svc := NewDailyQuestionService(db)
	createQuestions(t, db, 5, nil)

	_, err := svc.Get("2026-08-30")
	require.NoError(t, err)
	_, err = svc.Get("2026-08-31")
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.DailyQuestion{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestDailyQuestionEmptyPool(t *testing.T) {
	db := newTestDB(t)
	svc := NewDailyQuestionService(db)

	_, err := svc.Get("2026-08-31")
	assert.ErrorIs(t, err, ErrNoQuestions)
}

func TestDailyAnswerGradesAndRejectsSecondAttempt(t *testing.T) {
	db := newTestDB(t)
	svc := NewDailyQuestionService(db)
	user := createUser(t, db, "alice")
	createQuestions(t, db, 3, nil)

	outcome, err := svc.Answer(user.ID, 1)
	require.NoError(t, err)
	assert.True(t, outcome.IsCorrect)
	assert.Equal(t, 1, outcome.CorrectOption)
	assert.Equal(t, 1, outcome.Progress.QuestionsAnswered)
	assert.Equal(t, 1, outcome.Progress.CorrectAnswers)

	_, err = svc.Answer(user.ID, 2)
	assert.ErrorIs(t, err, ErrAlreadyAnswered)
}

func TestDailyAnswerWrongOption(t *testing.T) {
	db := newTestDB(t)
	svc := NewDailyQuestionService(db)
	user := createUser(t, db, "alice")
	createQuestions(t, db, 3, nil)

	outcome, err := svc.Answer(user.ID, 3)
	require.NoError(t, err)
	assert.False(t, outcome.IsCorrect)
	assert.Equal(t, 1, outcome.Progress.QuestionsAnswered)
	assert.Equal(t, 0, outcome.Progress.CorrectAnswers)
}
