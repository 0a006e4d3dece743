package services

import (
	"testing"

	"quizmaster/models"

	"github.com/stretchr/testify/assert"
)

func TestEffortRecommendationNeedsHistory(t *testing.T) {
	rec := EffortRecommendation(models.UserProgress{TotalAttempts: 1, QuestionsAnswered: 10, CorrectAnswers: 5})
	assert.False(t, rec.HasData)
	assert.Empty(t, rec.Level)
	assert.Contains(t, rec.Message, "more quizzes")
}

func TestEffortRecommendationBands(t *testing.T) {
	tests := []struct {
		name      string
		correct   int
		wantLevel string
		wantToGo  int
	}{
		{"low band", 40, "low", 500},
		{"just under moderate cut", 49, "low", 500},
		{"moderate band", 60, "moderate", 300},
		{"good band", 75, "good", 150},
		{"just under excellent cut", 84, "good", 150},
		{"excellent band", 90, "excellent", 50},
		{"perfect", 100, "excellent", 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			progress := models.UserProgress{
				TotalAttempts:     5,
				QuestionsAnswered: 100,
				CorrectAnswers:    tt.correct,
			}
			rec := EffortRecommendation(progress)
			assert.True(t, rec.HasData)
			assert.Equal(t, tt.wantLevel, rec.Level)
			assert.Equal(t, tt.wantToGo, rec.QuestionsToMastery)
			assert.InDelta(t, float64(tt.correct), rec.Accuracy, 0.001)
			assert.NotEmpty(t, rec.Message)
		})
	}
}
