package admin

import (
	"fmt"
	"net/http/httptest"
	"testing"

	"quizmaster/database"
	"quizmaster/models"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory database and installs it as the
// shared handler connection.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, database.Migrate(db))
	database.SetDB(db)
	return db
}

func TestDeleteQuestionRemovesDependents(t *testing.T) {
	db := newTestDB(t)

	question := models.Question{
		Text:          "What color is the sky?",
		Option1:       "Blue",
		Option2:       "Green",
		Option3:       "Red",
		Option4:       "Yellow",
		CorrectOption: 1,
	}
	require.NoError(t, db.Create(&question).Error)
	require.NoError(t, db.Create(&models.UserAnswer{
		UserID:         1,
		QuestionID:     question.ID,
		SelectedOption: 1,
		IsCorrect:      true,
	}).Error)
	require.NoError(t, db.Create(&models.DailyQuestion{
		Date:       "2026-08-31",
		QuestionID: question.ID,
	}).Error)

	app := fiber.New()
	app.Delete("/questions/:id", DeleteQuestion)

	req := httptest.NewRequest(fiber.MethodDelete, fmt.Sprintf("/questions/%d", question.ID), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Answer records and the daily assignment go with the question
	for _, model := range []interface{}{&models.Question{}, &models.UserAnswer{}, &models.DailyQuestion{}} {
		var count int64
		require.NoError(t, db.Model(model).Count(&count).Error)
		assert.EqualValues(t, 0, count, "%T rows left behind", model)
	}
}

func TestDeleteQuestionMissing(t *testing.T) {
	newTestDB(t)

	app := fiber.New()
	app.Delete("/questions/:id", DeleteQuestion)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodDelete, "/questions/42", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
