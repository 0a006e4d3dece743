// handlers/admin/categories.go - Category management
package admin

import (
	"errors"

	"quizmaster/database"
	"quizmaster/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
	Color       string `json:"color" validate:"omitempty,hexcolor"`
}

// CreateCategory adds a category
func CreateCategory(c *fiber.Ctx) error {
	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, "Name is required and color must be a hex value")
	}

	category := models.Category{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	}
	if err := database.GetDB().Create(&category).Error; err != nil {
		return serverError(c, "Failed to create category")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    category,
	})
}

// UpdateCategory changes a category's name, description or color
func UpdateCategory(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid category ID")
	}

	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, "Name is required and color must be a hex value")
	}

	db := database.GetDB()

	var category models.Category
	if err := db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Category not found")
		}
		return serverError(c, "Failed to load category")
	}

	category.Name = req.Name
	category.Description = req.Description
	if req.Color != "" {
		category.Color = req.Color
	}

	if err := db.Save(&category).Error; err != nil {
		return serverError(c, "Failed to update category")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    category,
	})
}

// DeleteCategory removes a category. Its questions stay in the pool
// with no category.
func DeleteCategory(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid category ID")
	}

	db := database.GetDB()
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Question{}).
			Where("category_id = ?", id).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Category{}, id)
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
			return notFound(c, "Category not found")
		}
		return serverError(c, "Failed to delete category")
	}

	return c.JSON(fiber.Map{"success": true})
}
