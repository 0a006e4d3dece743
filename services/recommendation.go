// services/recommendation.go - Effort recommendation from aggregate accuracy
package services

import (
	"fmt"
	"quizmaster/models"
)

// Recommendation is the advisory text derived from a user's accuracy band
type Recommendation struct {
	HasData            bool    `json:"has_data"`
	Level              string  `json:"level,omitempty"` // low, moderate, good, excellent
	Accuracy           float64 `json:"accuracy"`
	QuestionsToMastery int     `json:"questions_to_mastery,omitempty"`
	Message            string  `json:"message"`
}

// EffortRecommendation maps aggregate accuracy to an effort band. Users
// with fewer than two completed quizzes or no answered questions get a
// neutral message instead of a band.
func EffortRecommendation(p models.UserProgress) Recommendation {
	if p.TotalAttempts < 2 || p.QuestionsAnswered == 0 {
		return Recommendation{
			Message: "Complete a few more quizzes to get personalized recommendations.",
		}
	}

	accuracy := p.Accuracy()
	rec := Recommendation{HasData: true, Accuracy: accuracy}

	switch {
	case accuracy < 50:
		rec.Level = "low"
		rec.QuestionsToMastery = 500
		rec.Message = fmt.Sprintf("Your accuracy is low (%.1f%%). Focus on understanding the basics and review incorrect answers. Practice about %d more questions to improve.", accuracy, rec.QuestionsToMastery)
	case accuracy < 70:
		rec.Level = "moderate"
		rec.QuestionsToMastery = 300
		rec.Message = fmt.Sprintf("Your accuracy is moderate (%.1f%%). Keep practicing and focus on your weak areas. Practice about %d more questions to improve.", accuracy, rec.QuestionsToMastery)
	case accuracy < 85:
		rec.Level = "good"
		rec.QuestionsToMastery = 150
		rec.Message = fmt.Sprintf("Your accuracy is good (%.1f%%). You're making progress! Focus on consistent practice and timing. About %d more questions to reach mastery.", accuracy, rec.QuestionsToMastery)
	default:
		rec.Level = "excellent"
		rec.QuestionsToMastery = 50
		rec.Message = fmt.Sprintf("Your accuracy is excellent (%.1f%%)! You're close to mastery. Keep up the good work and focus on maintaining consistency.", accuracy)
	}

	return rec
}
