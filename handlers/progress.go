// handlers/progress.go - Progress, history and study guidance
package handlers

import (
	"errors"
	"strconv"

	"quizmaster/database"
	"quizmaster/middleware"
	"quizmaster/models"
	"quizmaster/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func loadProgress(userID uint) (models.UserProgress, error) {
	var progress models.UserProgress
	err := database.GetDB().Where("user_id = ?", userID).First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Not an error: a fresh account just has zeroes
		return models.UserProgress{UserID: userID}, nil
	}
	return progress, err
}

// GetProgress returns the caller's aggregate stats, per-category
// accuracy and unlocked achievements.
func GetProgress(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c, "User not authenticated")
	}

	progress, err := loadProgress(userID)
	if err != nil {
		return serverError(c, "Failed to load progress")
	}

	categories, err := progressService.CategoryPerformance(userID)
	if err != nil {
		return serverError(c, "Failed to load category performance")
	}

	var unlocked []models.UserAchievement
	if err := database.GetDB().Preload("Achievement").
		Where("user_id = ?", userID).
		Order("unlocked_at DESC").
		Find(&unlocked).Error; err != nil {
		return serverError(c, "Failed to load achievements")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"progress":     progress,
			"accuracy":     progress.Accuracy(),
			"categories":   categories,
			"achievements": unlocked,
		},
	})
}

// GetWeakCategories returns up to five categories below 70% accuracy,
// weakest first.
func GetWeakCategories(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c, "User not authenticated")
	}

	weak, err := progressService.WeakCategories(userID)
	if err != nil {
		return serverError(c, "Failed to load weak categories")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    weak,
	})
}

// GetRecommendation returns the effort recommendation for the caller
func GetRecommendation(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c, "User not authenticated")
	}

	progress, err := loadProgress(userID)
	if err != nil {
		return serverError(c, "Failed to load progress")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    services.EffortRecommendation(progress),
	})
}

// GetQuizHistory returns the caller's completed quizzes, newest first.
// ?limit= caps the page size (default 20, max 100).
func GetQuizHistory(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c, "User not authenticated")
	}

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > 100 {
		limit = 100
	}

	var results []models.QuizResult
	if err := database.GetDB().
		Where("user_id = ?", userID).
		Order("completed_at DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return serverError(c, "Failed to load quiz history")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    results,
	})
}
