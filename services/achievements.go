// services/achievements.go - Achievement evaluation and unlocking
package services

import (
	"time"

	"quizmaster/models"

	"gorm.io/gorm"
)

type AchievementService struct {
	db *gorm.DB
}

func NewAchievementService(db *gorm.DB) *AchievementService {
	return &AchievementService{db: db}
}

// Evaluate tests every locked achievement against the user's current
// aggregates and unlocks those whose condition holds. Evaluating twice
// in a row never duplicates an unlock.
func (s *AchievementService) Evaluate(userID uint) ([]models.Achievement, error) {
	var unlocked []models.Achievement
	err := s.db.Transaction(func(tx *gorm.DB) error {
		result, err := evaluateAchievements(tx, userID)
		if err != nil {
			return err
		}
		unlocked = result
		return nil
	})
	if err != nil {
		return nil, err
	}
	return unlocked, nil
}

func evaluateAchievements(tx *gorm.DB, userID uint) ([]models.Achievement, error) {
	var achievements []models.Achievement
	if err := tx.Find(&achievements).Error; err != nil {
		return nil, err
	}

	var unlockedIDs []uint
	if err := tx.Model(&models.UserAchievement{}).
		Where("user_id = ?", userID).
		Pluck("achievement_id", &unlockedIDs).Error; err != nil {
		return nil, err
	}
	unlockedMap := make(map[uint]bool, len(unlockedIDs))
	for _, id := range unlockedIDs {
		unlockedMap[id] = true
	}

	var progress models.UserProgress
	if err := tx.Where("user_id = ?", userID).First(&progress).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			// No aggregates yet, nothing can unlock
			return nil, nil
		}
		return nil, err
	}

	var perfectCount int64
	if err := tx.Model(&models.QuizResult{}).
		Where("user_id = ? AND total_questions > 0 AND score = total_questions", userID).
		Count(&perfectCount).Error; err != nil {
		return nil, err
	}

	newAchievements := []models.Achievement{}
	for _, achievement := range achievements {
		if unlockedMap[achievement.ID] {
			continue
		}
		if !conditionMet(achievement, progress, perfectCount > 0) {
			continue
		}

		unlock := models.UserAchievement{
			UserID:        userID,
			AchievementID: achievement.ID,
			UnlockedAt:    time.Now().UTC(),
		}
		if err := tx.Create(&unlock).Error; err != nil {
			return nil, err
		}
		newAchievements = append(newAchievements, achievement)
	}

	return newAchievements, nil
}

// conditionMet evaluates one achievement condition against the user's
// aggregates. Users with nothing answered never meet accuracy bounds.
func conditionMet(a models.Achievement, p models.UserProgress, hasPerfect bool) bool {
	switch a.Condition {
	case models.ConditionFirstQuiz:
		return p.TotalAttempts >= 1
	case models.ConditionPerfectScore:
		return hasPerfect
	case models.ConditionQuestionsAnswered:
		return p.QuestionsAnswered >= a.Threshold
	case models.ConditionQuizzesCompleted:
		return p.TotalAttempts >= a.Threshold
	case models.ConditionAccuracy:
		if p.QuestionsAnswered == 0 {
			return false
		}
		return p.Accuracy() >= float64(a.Threshold)
	}
	return false
}
