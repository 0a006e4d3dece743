// handlers/export.go - Quiz history CSV export
package handlers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"quizmaster/database"
	"quizmaster/middleware"
	"quizmaster/models"

	"github.com/gofiber/fiber/v2"
)

// ExportResults streams the caller's full quiz history as a CSV file,
// newest first.
func ExportResults(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c, "User not authenticated")
	}

	var results []models.QuizResult
	if err := database.GetDB().
		Where("user_id = ?", userID).
		Order("completed_at DESC").
		Find(&results).Error; err != nil {
		return serverError(c, "Failed to load quiz results")
	}

	var buf bytes.Buffer
	if err := writeResultsCSV(&buf, results); err != nil {
		return serverError(c, "Failed to generate export")
	}

	filename := fmt.Sprintf("quiz_results_%s.csv", time.Now().UTC().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(buf.Bytes())
}

func writeResultsCSV(w io.Writer, results []models.QuizResult) error {
	writer := csv.NewWriter(w)

	header := []string{"Date", "Score", "Total Questions", "Percentage", "Time Taken", "Quiz Type"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, result := range results {
		row := []string{
			result.CompletedAt.UTC().Format("2006-01-02 15:04"),
			fmt.Sprintf("%d", result.Score),
			fmt.Sprintf("%d", result.TotalQuestions),
			fmt.Sprintf("%.1f%%", result.Percentage()),
			fmt.Sprintf("%ds", result.TimeTaken),
			result.QuizType,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
