// database/migrate.go - Database Migration Runner
package database

import (
	"log"
	"quizmaster/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RunMigrations runs all database migrations
func RunMigrations() {
	db := GetDB()
	log.Println("Running database migrations...")

	if err := Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	createCoreIndexes()

	if err := SeedAchievements(db); err != nil {
		log.Fatalf("Failed to seed achievements: %v", err)
	}

	log.Println("Migrations completed")
}

// Migrate applies the schema to the given connection
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Question{},
		&models.QuizResult{},
		&models.UserAnswer{},
		&models.UserProgress{},
		&models.LeaderboardEntry{},
		&models.Achievement{},
		&models.UserAchievement{},
		&models.DailyQuestion{},
		&models.QuizSession{},
	)
}

// createCoreIndexes creates indexes for core tables
func createCoreIndexes() {
	db := GetDB()

	db.Exec("CREATE INDEX IF NOT EXISTS idx_questions_category ON questions(category_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_questions_difficulty ON questions(difficulty)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_quiz_results_user ON quiz_results(user_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_quiz_results_completed ON quiz_results(completed_at DESC)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_user_answers_user ON user_answers(user_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_user_answers_question ON user_answers(question_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_leaderboard_score ON leaderboard_entries(score DESC, updated_at ASC)")
}

// SeedAchievements inserts the built-in achievement set. Existing rows
// (matched by name) are left untouched so admin edits survive restarts.
func SeedAchievements(db *gorm.DB) error {
	achievements := []models.Achievement{
		{Name: "First Steps", Description: "Complete your first quiz", Icon: "star", Condition: models.ConditionFirstQuiz},
		{Name: "Perfectionist", Description: "Score 100% on any quiz", Icon: "medal", Condition: models.ConditionPerfectScore},
		{Name: "Century", Description: "Answer 100 questions", Icon: "trophy", Condition: models.ConditionQuestionsAnswered, Threshold: 100},
		{Name: "Scholar", Description: "Answer 500 questions", Icon: "trophy", Condition: models.ConditionQuestionsAnswered, Threshold: 500},
		{Name: "Regular", Description: "Complete 5 quizzes", Icon: "flame", Condition: models.ConditionQuizzesCompleted, Threshold: 5},
		{Name: "Dedicated", Description: "Complete 20 quizzes", Icon: "flame", Condition: models.ConditionQuizzesCompleted, Threshold: 20},
		{Name: "Sharp Shooter", Description: "Reach 90% overall accuracy", Icon: "target", Condition: models.ConditionAccuracy, Threshold: 90},
	}

	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&achievements).Error
}
