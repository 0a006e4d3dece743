// ~/Documents/CODING/quizmaster/main.go
package main

import (
	"log"
	"os"
	"time"

	"quizmaster/database"
	"quizmaster/handlers"
	"quizmaster/handlers/admin"
	"quizmaster/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	// Validate critical environment variables
	validateEnvironment()

	// Initialize database (runs migrations and seeds achievements)
	database.InitDB()

	// Wire handler services
	handlers.Init()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		BodyLimit:    1 * 1024 * 1024, // 1MB
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))

	// CORS configuration
	corsOrigins := os.Getenv("CORS_ORIGINS")
	if corsOrigins == "" {
		corsOrigins = "http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	// Apply rate limiting to all routes
	app.Use(middleware.RateLimitMiddleware())

	// API Routes
	api := app.Group("/api")

	// Auth routes with stricter rate limiting
	authGroup := api.Group("/auth")
	authGroup.Use(middleware.AuthRateLimitMiddleware())
	authGroup.Post("/register", handlers.Register)
	authGroup.Post("/login", handlers.Login)

	// Public catalog routes
	api.Get("/categories", handlers.GetCategories)
	api.Get("/achievements", handlers.GetAchievements)

	// Quiz routes (require authentication)
	quizGroup := api.Group("/quiz")
	quizGroup.Use(middleware.AuthMiddleware)
	quizGroup.Post("/start", handlers.StartQuiz)
	quizGroup.Get("/session", handlers.GetSession)
	quizGroup.Post("/submit", handlers.SubmitQuiz)
	quizGroup.Get("/daily", handlers.GetDailyQuestion)
	quizGroup.Post("/daily/answer", handlers.AnswerDailyQuestion)

	// Progress routes
	progressGroup := api.Group("/progress")
	progressGroup.Use(middleware.AuthMiddleware)
	progressGroup.Get("/", handlers.GetProgress)
	progressGroup.Get("/weak-categories", handlers.GetWeakCategories)
	progressGroup.Get("/recommendation", handlers.GetRecommendation)
	progressGroup.Get("/history", handlers.GetQuizHistory)
	progressGroup.Get("/export", handlers.ExportResults)

	// Leaderboard routes
	leaderboardGroup := api.Group("/leaderboard")
	leaderboardGroup.Get("/", handlers.GetLeaderboard)
	leaderboardGroup.Get("/me", middleware.AuthMiddleware, handlers.GetMyRank)

	// User routes (require authentication)
	userGroup := api.Group("/users")
	userGroup.Use(middleware.AuthMiddleware)
	userGroup.Get("/me", handlers.GetCurrentUser)
	userGroup.Put("/me", handlers.UpdateCurrentUser)

	// Admin routes
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.AdminAuthMiddleware)

	adminGroup.Get("/questions", admin.ListQuestions)
	adminGroup.Post("/questions", admin.CreateQuestion)
	adminGroup.Put("/questions/:id", admin.UpdateQuestion)
	adminGroup.Delete("/questions/:id", admin.DeleteQuestion)

	adminGroup.Post("/categories", admin.CreateCategory)
	adminGroup.Put("/categories/:id", admin.UpdateCategory)
	adminGroup.Delete("/categories/:id", admin.DeleteCategory)

	adminGroup.Post("/achievements", admin.CreateAchievement)
	adminGroup.Put("/achievements/:id", admin.UpdateAchievement)
	adminGroup.Delete("/achievements/:id", admin.DeleteAchievement)

	adminGroup.Get("/users", admin.ListUsers)
	adminGroup.Delete("/users/:id", admin.DeleteUser)
	adminGroup.Get("/analytics", admin.GetAnalytics)

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"version":   "1.0.0",
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	log.Printf("🚀 HTTP server starting on port %s", port)
	log.Printf("📊 Environment: %s", getEnv("APP_ENV", "development"))
	log.Printf("🔐 JWT Secret configured: %v", os.Getenv("JWT_SECRET") != "")

	if err := app.Listen(":" + port); err != nil {
		log.Fatal("Failed to start HTTP server:", err)
	}
}

// validateEnvironment checks for required environment variables
func validateEnvironment() {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("FATAL: JWT_SECRET environment variable must be set. Generate one with: openssl rand -base64 64")
	}
	if len(jwtSecret) < 32 {
		log.Fatal("FATAL: JWT_SECRET must be at least 32 characters long")
	}

	appEnv := os.Getenv("APP_ENV")
	if appEnv == "production" {
		corsOrigins := os.Getenv("CORS_ORIGINS")
		if corsOrigins == "" || corsOrigins == "http://localhost:3000" {
			log.Println("WARNING: CORS_ORIGINS not properly configured for production")
		}
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Don't expose internal errors in production
	if os.Getenv("APP_ENV") == "production" && code == 500 {
		message = "An error occurred. Please try again later."
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
