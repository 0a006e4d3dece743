// handlers/auth.go - Registration and login
package handlers

import (
	"errors"
	"os"
	"strings"
	"time"

	"quizmaster/database"
	"quizmaster/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	Username string  `json:"username" validate:"required,min=3,max=30"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password string  `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Register creates an account and its empty progress and leaderboard
// rows, then returns a signed token.
func Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	req.Username = strings.TrimSpace(req.Username)
	if err := validate.Struct(req); err != nil {
		return badRequest(c, "Username must be 3-30 characters and password at least 8")
	}

	db := database.GetDB()

	var existing models.User
	err := db.Where("username = ?", req.Username).First(&existing).Error
	if err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
			"error":   "Username already taken",
		})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return serverError(c, "Failed to check username")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return serverError(c, "Failed to hash password")
	}

	user := models.User{
		Username:  req.Username,
		Email:     req.Email,
		Password:  string(hashed),
		LastLogin: time.Now().UTC(),
	}
	if err := db.Create(&user).Error; err != nil {
		return serverError(c, "Failed to create user")
	}

	if err := progressService.EnsureProfile(user.ID); err != nil {
		return serverError(c, "Failed to initialize profile")
	}

	token, err := generateToken(user)
	if err != nil {
		return serverError(c, "Failed to generate token")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    AuthResponse{Token: token, User: user},
	})
}

// Login verifies credentials and returns a signed token
func Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, "Username and password are required")
	}

	db := database.GetDB()

	var user models.User
	if err := db.Where("username = ?", strings.TrimSpace(req.Username)).First(&user).Error; err != nil {
		return unauthorized(c, "Invalid username or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return unauthorized(c, "Invalid username or password")
	}

	db.Model(&user).Update("last_login", time.Now().UTC())

	token, err := generateToken(user)
	if err != nil {
		return serverError(c, "Failed to generate token")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    AuthResponse{Token: token, User: user},
	})
}

func generateToken(user models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"is_admin": user.IsAdmin,
		"exp":      time.Now().Add(7 * 24 * time.Hour).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": msg})
}

func unauthorized(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "error": msg})
}

func notFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": msg})
}

func serverError(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": msg})
}
