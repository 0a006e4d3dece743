// handlers/leaderboard.go
package handlers

import (
	"errors"
	"strconv"

	"quizmaster/database"
	"quizmaster/middleware"
	"quizmaster/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// LeaderboardRow is one public leaderboard entry
type LeaderboardRow struct {
	Rank     int    `json:"rank"`
	Username string `json:"username"`
	Score    int    `json:"score"`
	UserID   uint   `json:"user_id"`
}

// GetLeaderboard returns the top entries by rank. ?limit= caps the page
// size (default 20, max 100).
func GetLeaderboard(c *fiber.Ctx) error {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > 100 {
		limit = 100
	}

	var entries []models.LeaderboardEntry
	if err := database.GetDB().Preload("User").
		Order("rank ASC").
		Limit(limit).
		Find(&entries).Error; err != nil {
		return serverError(c, "Failed to load leaderboard")
	}

	rows := make([]LeaderboardRow, 0, len(entries))
	for _, entry := range entries {
		row := LeaderboardRow{
			Rank:   entry.Rank,
			Score:  entry.Score,
			UserID: entry.UserID,
		}
		if entry.User != nil {
			row.Username = entry.User.Username
		}
		rows = append(rows, row)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    rows,
	})
}

// GetMyRank returns the caller's own leaderboard entry
func GetMyRank(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c, "User not authenticated")
	}

	var entry models.LeaderboardEntry
	if err := database.GetDB().Where("user_id = ?", userID).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "No leaderboard entry yet")
		}
		return serverError(c, "Failed to load leaderboard entry")
	}

	var total int64
	if err := database.GetDB().Model(&models.LeaderboardEntry{}).Count(&total).Error; err != nil {
		return serverError(c, "Failed to load leaderboard entry")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"rank":         entry.Rank,
			"score":        entry.Score,
			"total_users":  total,
			"last_updated": entry.UpdatedAt,
		},
	})
}
