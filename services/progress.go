// services/progress.go - Progress aggregates and leaderboard ranking
package services

import (
	"sort"
	"time"

	"quizmaster/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressService struct {
	db *gorm.DB
}

func NewProgressService(db *gorm.DB) *ProgressService {
	return &ProgressService{db: db}
}

// EnsureProfile creates the per-user progress and leaderboard rows if
// they are missing. Called at registration and defensively before any
// progress update, so the operation must stay idempotent.
func (s *ProgressService) EnsureProfile(userID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return ensureProfile(tx, userID)
	})
}

func ensureProfile(tx *gorm.DB, userID uint) error {
	var progress models.UserProgress
	if err := tx.Where(models.UserProgress{UserID: userID}).FirstOrCreate(&progress).Error; err != nil {
		return err
	}
	var entry models.LeaderboardEntry
	result := tx.Where(models.LeaderboardEntry{UserID: userID}).FirstOrCreate(&entry)
	if result.Error != nil {
		return result.Error
	}
	// A fresh entry starts at rank 0; fold it into the ordering right
	// away so ranks stay a dense 1..n permutation
	if result.RowsAffected > 0 {
		return rerankLeaderboard(tx)
	}
	return nil
}

// UpdateProgress folds one graded quiz into the user's aggregate stats.
// The progress row is read under a row lock so concurrent submissions
// from the same user cannot lose updates.
func (s *ProgressService) UpdateProgress(userID uint, score, total int) (*models.UserProgress, error) {
	var progress models.UserProgress
	err := s.db.Transaction(func(tx *gorm.DB) error {
		updated, err := applyProgress(tx, userID, score, total)
		if err != nil {
			return err
		}
		progress = *updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func applyProgress(tx *gorm.DB, userID uint, score, total int) (*models.UserProgress, error) {
	if err := ensureProfile(tx, userID); err != nil {
		return nil, err
	}

	var progress models.UserProgress
	if err := lockForUpdate(tx).Where("user_id = ?", userID).First(&progress).Error; err != nil {
		return nil, err
	}

	progress.ApplyResult(score, total)

	if err := tx.Save(&progress).Error; err != nil {
		return nil, err
	}
	return &progress, nil
}

// lockForUpdate adds a row lock on dialects that support it. SQLite
// (used in tests) serializes writers already and rejects FOR UPDATE.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// UpdateLeaderboard sets the user's leaderboard score to their
// cumulative correct answers and recomputes dense ranks for everyone.
// The whole read-modify-write runs in one transaction; concurrent
// submissions serialize on it and the last commit wins.
func (s *ProgressService) UpdateLeaderboard(userID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return updateLeaderboard(tx, userID)
	})
}

func updateLeaderboard(tx *gorm.DB, userID uint) error {
	if err := ensureProfile(tx, userID); err != nil {
		return err
	}

	var progress models.UserProgress
	if err := tx.Where("user_id = ?", userID).First(&progress).Error; err != nil {
		return err
	}

	if err := tx.Model(&models.LeaderboardEntry{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"score":      progress.CorrectAnswers,
			"updated_at": time.Now().UTC(),
		}).Error; err != nil {
		return err
	}

	return rerankLeaderboard(tx)
}

// rerankLeaderboard reassigns dense 1-based ranks over all entries,
// ordered by score descending then least-recently updated first.
// Rank writes go through UpdateColumn so they don't touch updated_at
// and churn the tie-break ordering.
func rerankLeaderboard(tx *gorm.DB) error {
	var entries []models.LeaderboardEntry
	if err := lockForUpdate(tx).
		Order("score DESC, updated_at ASC").
		Find(&entries).Error; err != nil {
		return err
	}

	for i, entry := range entries {
		rank := i + 1
		if entry.Rank == rank {
			continue
		}
		if err := tx.Model(&models.LeaderboardEntry{}).
			Where("id = ?", entry.ID).
			UpdateColumn("rank", rank).Error; err != nil {
			return err
		}
	}
	return nil
}

// CategoryAccuracy is a user's answer accuracy within one category
type CategoryAccuracy struct {
	CategoryID   uint    `json:"category_id"`
	CategoryName string  `json:"category_name"`
	Total        int     `json:"total"`
	Correct      int     `json:"correct"`
	Accuracy     float64 `json:"accuracy"`
}

// CategoryPerformance returns per-category accuracy over every category
// the user has answered at least one question in.
func (s *ProgressService) CategoryPerformance(userID uint) ([]CategoryAccuracy, error) {
	var rows []CategoryAccuracy
	err := s.db.Model(&models.UserAnswer{}).
		Select(`categories.id AS category_id,
			categories.name AS category_name,
			COUNT(*) AS total,
			SUM(CASE WHEN user_answers.is_correct THEN 1 ELSE 0 END) AS correct`).
		Joins("JOIN questions ON questions.id = user_answers.question_id").
		Joins("JOIN categories ON categories.id = questions.category_id").
		Where("user_answers.user_id = ?", userID).
		Group("categories.id, categories.name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for i := range rows {
		if rows[i].Total > 0 {
			rows[i].Accuracy = float64(rows[i].Correct) / float64(rows[i].Total) * 100
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Accuracy < rows[j].Accuracy
	})
	return rows, nil
}

// WeakCategories returns the user's five lowest-accuracy categories
// (below 70%), weakest first.
func (s *ProgressService) WeakCategories(userID uint) ([]CategoryAccuracy, error) {
	rows, err := s.CategoryPerformance(userID)
	if err != nil {
		return nil, err
	}

	weak := make([]CategoryAccuracy, 0, 5)
	for _, row := range rows {
		if row.Accuracy >= 70 {
			continue
		}
		weak = append(weak, row)
		if len(weak) == 5 {
			break
		}
	}
	return weak, nil
}
