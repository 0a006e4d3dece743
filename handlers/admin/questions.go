// handlers/admin/questions.go - Question management
package admin

import (
	"errors"
	"strconv"

	"quizmaster/database"
	"quizmaster/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var validate = validator.New()

type QuestionRequest struct {
	Text          string `json:"text" validate:"required"`
	Option1       string `json:"option1" validate:"required"`
	Option2       string `json:"option2" validate:"required"`
	Option3       string `json:"option3" validate:"required"`
	Option4       string `json:"option4" validate:"required"`
	CorrectOption int    `json:"correct_option" validate:"required,min=1,max=4"`
	CategoryID    *uint  `json:"category_id"`
	Difficulty    string `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	Explanation   string `json:"explanation"`
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": msg})
}

func notFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": msg})
}

func serverError(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": msg})
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// ListQuestions returns questions with optional category and difficulty
// filters, paginated via ?page= and ?page_size=.
func ListQuestions(c *fiber.Ctx) error {
	db := database.GetDB()

	query := db.Model(&models.Question{}).Preload("Category")
	if raw := c.Query("category_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			query = query.Where("category_id = ?", uint(id))
		}
	}
	if difficulty := c.Query("difficulty"); difficulty != "" {
		query = query.Where("difficulty = ?", difficulty)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return serverError(c, "Failed to count questions")
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.Query("page_size", "50"))
	if pageSize < 1 || pageSize > 200 {
		pageSize = 50
	}

	var questions []models.Question
	if err := query.Order("id ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&questions).Error; err != nil {
		return serverError(c, "Failed to load questions")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"questions": questions,
			"total":     total,
			"page":      page,
			"page_size": pageSize,
		},
	})
}

// CreateQuestion adds a question to the pool
func CreateQuestion(c *fiber.Ctx) error {
	var req QuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, "Text, four options and a correct option between 1 and 4 are required")
	}

	question := models.Question{
		Text:          req.Text,
		Option1:       req.Option1,
		Option2:       req.Option2,
		Option3:       req.Option3,
		Option4:       req.Option4,
		CorrectOption: req.CorrectOption,
		CategoryID:    req.CategoryID,
		Difficulty:    req.Difficulty,
		Explanation:   req.Explanation,
	}
	if question.Difficulty == "" {
		question.Difficulty = "medium"
	}

	if err := database.GetDB().Create(&question).Error; err != nil {
		return serverError(c, "Failed to create question")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    question,
	})
}

// UpdateQuestion replaces a question's content
func UpdateQuestion(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid question ID")
	}

	var req QuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, "Text, four options and a correct option between 1 and 4 are required")
	}

	db := database.GetDB()

	var question models.Question
	if err := db.First(&question, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Question not found")
		}
		return serverError(c, "Failed to load question")
	}

	question.Text = req.Text
	question.Option1 = req.Option1
	question.Option2 = req.Option2
	question.Option3 = req.Option3
	question.Option4 = req.Option4
	question.CorrectOption = req.CorrectOption
	question.CategoryID = req.CategoryID
	if req.Difficulty != "" {
		question.Difficulty = req.Difficulty
	}
	question.Explanation = req.Explanation

	if err := db.Save(&question).Error; err != nil {
		return serverError(c, "Failed to update question")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    question,
	})
}

// DeleteQuestion removes a question along with its recorded answers
// and any daily assignment referencing it
func DeleteQuestion(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid question ID")
	}

	err = database.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", id).Delete(&models.UserAnswer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", id).Delete(&models.DailyQuestion{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Question{}, id)
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
			return notFound(c, "Question not found")
		}
		return serverError(c, "Failed to delete question")
	}

	return c.JSON(fiber.Map{"success": true})
}
