// handlers/admin/users.go - User administration and analytics
package admin

import (
	"errors"
	"strconv"

	"quizmaster/database"
	"quizmaster/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ListUsers returns accounts with optional ?search= on username,
// paginated via ?page= and ?page_size=.
func ListUsers(c *fiber.Ctx) error {
	db := database.GetDB()

	query := db.Model(&models.User{}).Preload("Progress")
	if search := c.Query("search"); search != "" {
		query = query.Where("username LIKE ?", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return serverError(c, "Failed to count users")
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.Query("page_size", "50"))
	if pageSize < 1 || pageSize > 200 {
		pageSize = 50
	}

	var users []models.User
	if err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&users).Error; err != nil {
		return serverError(c, "Failed to load users")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"users":     users,
			"total":     total,
			"page":      page,
			"page_size": pageSize,
		},
	})
}

// DeleteUser removes an account and everything it owns. Admin accounts
// cannot be deleted this way.
func DeleteUser(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}

	db := database.GetDB()

	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "User not found")
		}
		return serverError(c, "Failed to load user")
	}
	if user.IsAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"error":   "Admin accounts cannot be deleted",
		})
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		for _, owned := range []interface{}{
			&models.UserAnswer{},
			&models.QuizResult{},
			&models.UserAchievement{},
			&models.UserProgress{},
			&models.LeaderboardEntry{},
			&models.QuizSession{},
		} {
			if err := tx.Where("user_id = ?", id).Delete(owned).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.User{}, id).Error
	})
	if err != nil {
		return serverError(c, "Failed to delete user")
	}

	return c.JSON(fiber.Map{"success": true})
}

// GetAnalytics returns platform-wide counters for the admin dashboard
func GetAnalytics(c *fiber.Ctx) error {
	db := database.GetDB()

	counts := map[string]interface{}{
		"users":        &models.User{},
		"questions":    &models.Question{},
		"categories":   &models.Category{},
		"quiz_results": &models.QuizResult{},
		"achievements": &models.Achievement{},
	}

	data := fiber.Map{}
	for name, model := range counts {
		var count int64
		if err := db.Model(model).Count(&count).Error; err != nil {
			return serverError(c, "Failed to load analytics")
		}
		data[name] = count
	}

	var avgScore float64
	row := db.Model(&models.QuizResult{}).
		Select("COALESCE(AVG(CAST(score AS FLOAT) / total_questions), 0)").
		Where("total_questions > 0").
		Row()
	if err := row.Scan(&avgScore); err != nil {
		return serverError(c, "Failed to load analytics")
	}
	data["average_score"] = avgScore

	var activeSessions int64
	if err := db.Model(&models.QuizSession{}).Count(&activeSessions).Error; err != nil {
		return serverError(c, "Failed to load analytics")
	}
	data["active_sessions"] = activeSessions

	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}
