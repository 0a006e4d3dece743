// handlers/daily.go - Question of the day endpoints
package handlers

import (
	"errors"

	"quizmaster/middleware"
	"quizmaster/services"

	"github.com/gofiber/fiber/v2"
)

// GetDailyQuestion returns today's shared question along with whether
// the caller already answered it.
func GetDailyQuestion(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c, "User not authenticated")
	}

	daily, err := dailyService.Get(services.Today())
	if err != nil {
		if errors.Is(err, services.ErrNoQuestions) {
			return notFound(c, "No questions available yet")
		}
		return serverError(c, "Failed to load daily question")
	}

	answered, err := dailyService.AlreadyAnswered(userID, daily)
	if err != nil {
		return serverError(c, "Failed to load daily question")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"date":             daily.Date,
			"question":         toQuestionView(*daily.Question),
			"already_answered": answered,
		},
	})
}

type DailyAnswerRequest struct {
	SelectedOption int `json:"selected_option" validate:"required,min=1,max=4"`
}

// AnswerDailyQuestion grades the caller's single daily attempt
func AnswerDailyQuestion(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c, "User not authenticated")
	}

	var req DailyAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, "Selected option must be between 1 and 4")
	}

	outcome, err := dailyService.Answer(userID, req.SelectedOption)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAlreadyAnswered):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"success": false,
				"error":   "You already answered today's question",
			})
		case errors.Is(err, services.ErrNoQuestions):
			return notFound(c, "No questions available yet")
		}
		return serverError(c, "Failed to submit answer")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    outcome,
	})
}
