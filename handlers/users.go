// handlers/users.go - Account profile endpoints
package handlers

import (
	"strings"

	"quizmaster/database"
	"quizmaster/middleware"
	"quizmaster/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// GetCurrentUser returns the caller's account with progress attached
func GetCurrentUser(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c, "User not authenticated")
	}

	var user models.User
	if err := database.GetDB().Preload("Progress").First(&user, userID).Error; err != nil {
		return notFound(c, "User not found")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    user,
	})
}

type UpdateUserRequest struct {
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=8"`
}

// UpdateCurrentUser changes the caller's email or password
func UpdateCurrentUser(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c, "User not authenticated")
	}

	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, "Invalid email or password too short")
	}

	var user models.User
	if err := database.GetDB().First(&user, userID).Error; err != nil {
		return notFound(c, "User not found")
	}

	updates := map[string]interface{}{}
	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		updates["email"] = &email
	}
	if req.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return serverError(c, "Failed to hash password")
		}
		updates["password"] = string(hashed)
	}

	if len(updates) > 0 {
		if err := database.GetDB().Model(&user).Updates(updates).Error; err != nil {
			return serverError(c, "Failed to update user")
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    user,
	})
}
