package handlers

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"quizmaster/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteResultsCSV(t *testing.T) {
	completed := time.Date(2026, 8, 31, 14, 30, 0, 0, time.UTC)
	results := []models.QuizResult{
		{Score: 7, TotalQuestions: 10, TimeTaken: 120, QuizType: "standard", CompletedAt: completed},
		{Score: 1, TotalQuestions: 1, TimeTaken: 15, QuizType: "daily", CompletedAt: completed.Add(-24 * time.Hour)},
	}

	var buf bytes.Buffer
	require.NoError(t, writeResultsCSV(&buf, results))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"Date", "Score", "Total Questions", "Percentage", "Time Taken", "Quiz Type"}, rows[0])
	assert.Equal(t, []string{"2026-08-31 14:30", "7", "10", "70.0%", "120s", "standard"}, rows[1])
	assert.Equal(t, []string{"2026-08-30 14:30", "1", "1", "100.0%", "15s", "daily"}, rows[2])
}

func TestWriteResultsCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeResultsCSV(&buf, nil))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Date", rows[0][0])
}
