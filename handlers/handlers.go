// handlers/handlers.go - Shared handler wiring
package handlers

import (
	"quizmaster/database"
	"quizmaster/models"
	"quizmaster/services"

	"github.com/go-playground/validator/v10"
)

var (
	quizService     *services.QuizService
	progressService *services.ProgressService
	dailyService    *services.DailyQuestionService

	validate = validator.New()
)

// Init wires handler-level services to the shared database connection.
// Achievement evaluation runs inside the quiz submit transaction and
// needs no handler-level service.
func Init() {
	db := database.GetDB()
	quizService = services.NewQuizService(db)
	progressService = services.NewProgressService(db)
	dailyService = services.NewDailyQuestionService(db)
}

// QuestionView is a question as shown to a quiz taker: no correct
// option, no explanation.
type QuestionView struct {
	ID         uint      `json:"id"`
	Text       string    `json:"text"`
	Options    [4]string `json:"options"`
	CategoryID *uint     `json:"category_id,omitempty"`
	Category   string    `json:"category,omitempty"`
	Difficulty string    `json:"difficulty"`
}

func toQuestionView(q models.Question) QuestionView {
	view := QuestionView{
		ID:         q.ID,
		Text:       q.Text,
		Options:    q.Options(),
		CategoryID: q.CategoryID,
		Difficulty: q.Difficulty,
	}
	if q.Category != nil {
		view.Category = q.Category.Name
	}
	return view
}

func toQuestionViews(questions []models.Question) []QuestionView {
	views := make([]QuestionView, len(questions))
	for i, q := range questions {
		views[i] = toQuestionView(q)
	}
	return views
}
