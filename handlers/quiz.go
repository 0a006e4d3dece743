// handlers/quiz.go - Quiz lifecycle endpoints
package handlers

import (
	"errors"

	"quizmaster/middleware"
	"quizmaster/services"

	"github.com/gofiber/fiber/v2"
)

type StartQuizRequest struct {
	QuizType      string `json:"quiz_type" validate:"required,oneof=standard custom daily"`
	CategoryIDs   []uint `json:"category_ids"`
	Difficulty    string `json:"difficulty" validate:"omitempty,oneof=easy medium hard all"`
	QuestionCount int    `json:"question_count"`
}

// StartQuiz deals a question set for the requested mode and opens a
// session. Starting again replaces any unfinished session.
func StartQuiz(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c, "User not authenticated")
	}

	var req StartQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, "Quiz type must be standard, custom or daily")
	}

	if req.QuizType == services.QuizTypeCustom {
		if len(req.CategoryIDs) == 0 {
			return badRequest(c, "Select at least one category for a custom quiz")
		}
		if req.QuestionCount < services.MinCustomQuestions || req.QuestionCount > services.MaxCustomQuestions {
			return badRequest(c, "Question count must be between 5 and 100")
		}
	}

	filters := services.QuizFilters{
		CategoryIDs: req.CategoryIDs,
		Difficulty:  req.Difficulty,
		Count:       req.QuestionCount,
	}

	questions, session, err := quizService.Start(userID, req.QuizType, filters)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoQuestions):
			return notFound(c, "No questions available for the selected criteria")
		case errors.Is(err, services.ErrInvalidQuestionCount):
			return badRequest(c, "Question count must be between 5 and 100")
		case errors.Is(err, services.ErrInvalidQuizType):
			return badRequest(c, "Invalid quiz type")
		}
		return serverError(c, "Failed to start quiz")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"token":      session.Token,
			"quiz_type":  session.QuizType,
			"started_at": session.StartedAt,
			"questions":  toQuestionViews(questions),
		},
	})
}

// GetSession returns the caller's in-progress quiz, if any
func GetSession(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c, "User not authenticated")
	}

	session, questions, err := quizService.Session(userID)
	if err != nil {
		if errors.Is(err, services.ErrNoActiveSession) {
			return notFound(c, "No active quiz session")
		}
		return serverError(c, "Failed to load quiz session")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"token":      session.Token,
			"quiz_type":  session.QuizType,
			"started_at": session.StartedAt,
			"questions":  toQuestionViews(questions),
		},
	})
}

type SubmitQuizRequest struct {
	// Answers maps question ID to the selected 1-based option
	Answers   map[uint]int `json:"answers"`
	TimeTaken int          `json:"time_taken" validate:"min=0"`
}

// SubmitQuiz grades the active session and returns the full summary:
// result, per-question review, updated progress, any newly unlocked
// achievements and an effort recommendation.
func SubmitQuiz(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c, "User not authenticated")
	}

	var req SubmitQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, "Time taken cannot be negative")
	}

	summary, err := quizService.Submit(userID, req.Answers, req.TimeTaken)
	if err != nil {
		if errors.Is(err, services.ErrNoActiveSession) {
			return notFound(c, "No active quiz session")
		}
		return serverError(c, "Failed to submit quiz")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    summary,
	})
}
