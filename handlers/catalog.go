// handlers/catalog.go - Public category and achievement listings
package handlers

import (
	"quizmaster/database"
	"quizmaster/models"

	"github.com/gofiber/fiber/v2"
)

// CategorySummary is a category with its question count
type CategorySummary struct {
	models.Category
	QuestionCount int64 `json:"question_count"`
}

// GetCategories lists every category with its question count
func GetCategories(c *fiber.Ctx) error {
	db := database.GetDB()

	var categories []models.Category
	if err := db.Order("name ASC").Find(&categories).Error; err != nil {
		return serverError(c, "Failed to load categories")
	}

	summaries := make([]CategorySummary, 0, len(categories))
	for _, category := range categories {
		var count int64
		if err := db.Model(&models.Question{}).
			Where("category_id = ?", category.ID).
			Count(&count).Error; err != nil {
			return serverError(c, "Failed to load categories")
		}
		summaries = append(summaries, CategorySummary{Category: category, QuestionCount: count})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    summaries,
	})
}

// GetAchievements lists every achievement in the catalog
func GetAchievements(c *fiber.Ctx) error {
	var achievements []models.Achievement
	if err := database.GetDB().Order("id ASC").Find(&achievements).Error; err != nil {
		return serverError(c, "Failed to load achievements")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    achievements,
	})
}
