package services

import (
	"fmt"
	"testing"

	"quizmaster/database"
	"quizmaster/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory database. The shared-cache DSN
// keeps every pooled connection on the same database; the random name
// isolates parallel tests from each other.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, database.Migrate(db))
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()

	user := models.User{Username: username, Password: "hashed"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createCategory(t *testing.T, db *gorm.DB, name string) models.Category {
	t.Helper()

	category := models.Category{Name: name}
	require.NoError(t, db.Create(&category).Error)
	return category
}

// createQuestions inserts n questions whose correct answer is always
// option 1.
func createQuestions(t *testing.T, db *gorm.DB, n int, categoryID *uint) []models.Question {
	t.Helper()

	questions := make([]models.Question, n)
	for i := range questions {
		questions[i] = models.Question{
			Text:          fmt.Sprintf("Question %d", i+1),
			Option1:       "Right",
			Option2:       "Wrong",
			Option3:       "Wrong",
			Option4:       "Wrong",
			CorrectOption: 1,
			CategoryID:    categoryID,
			Difficulty:    "medium",
		}
	}
	require.NoError(t, db.Create(&questions).Error)
	return questions
}
