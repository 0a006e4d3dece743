package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuestionIsCorrect(t *testing.T) {
	q := Question{CorrectOption: 3}
	assert.True(t, q.IsCorrect(3))
	assert.False(t, q.IsCorrect(1))
	assert.False(t, q.IsCorrect(0))
	assert.False(t, q.IsCorrect(5))
}

func TestQuestionOptionsOrder(t *testing.T) {
	q := Question{Option1: "a", Option2: "b", Option3: "c", Option4: "d"}
	assert.Equal(t, [4]string{"a", "b", "c", "d"}, q.Options())
}

func TestQuizResultPercentage(t *testing.T) {
	assert.InDelta(t, 70.0, QuizResult{Score: 7, TotalQuestions: 10}.Percentage(), 0.001)
	assert.Zero(t, QuizResult{}.Percentage())
}
