// handlers/admin/achievements.go - Achievement catalog management
package admin

import (
	"errors"

	"quizmaster/database"
	"quizmaster/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AchievementRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"required"`
	Icon        string `json:"icon"`
	Condition   string `json:"condition" validate:"required,oneof=first_quiz perfect_score questions_answered quizzes_completed accuracy"`
	Threshold   int    `json:"threshold" validate:"min=0"`
}

// CreateAchievement adds an achievement to the catalog
func CreateAchievement(c *fiber.Ctx) error {
	var req AchievementRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, "Name, description and a known condition are required")
	}

	achievement := models.Achievement{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
		Condition:   models.ConditionKind(req.Condition),
		Threshold:   req.Threshold,
	}
	if err := database.GetDB().Create(&achievement).Error; err != nil {
		return serverError(c, "Failed to create achievement")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    achievement,
	})
}

// UpdateAchievement changes an achievement's definition. Existing
// unlocks are kept.
func UpdateAchievement(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid achievement ID")
	}

	var req AchievementRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, "Name, description and a known condition are required")
	}

	db := database.GetDB()

	var achievement models.Achievement
	if err := db.First(&achievement, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Achievement not found")
		}
		return serverError(c, "Failed to load achievement")
	}

	achievement.Name = req.Name
	achievement.Description = req.Description
	if req.Icon != "" {
		achievement.Icon = req.Icon
	}
	achievement.Condition = models.ConditionKind(req.Condition)
	achievement.Threshold = req.Threshold

	if err := db.Save(&achievement).Error; err != nil {
		return serverError(c, "Failed to update achievement")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    achievement,
	})
}

// DeleteAchievement removes an achievement and its unlocks
func DeleteAchievement(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid achievement ID")
	}

	db := database.GetDB()
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("achievement_id = ?", id).
			Delete(&models.UserAchievement{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Achievement{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Achievement not found")
		}
		return serverError(c, "Failed to delete achievement")
	}

	return c.JSON(fiber.Map{"success": true})
}
