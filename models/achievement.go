// models/achievement.go
package models

import "time"

// ConditionKind enumerates achievement trigger predicates. Each kind
// reads the user's aggregate progress; Threshold carries the numeric
// bound where the kind needs one.
type ConditionKind string

const (
	ConditionFirstQuiz         ConditionKind = "first_quiz"         // at least one completed quiz
	ConditionPerfectScore      ConditionKind = "perfect_score"      // any quiz with score == total
	ConditionQuestionsAnswered ConditionKind = "questions_answered" // questions_answered >= Threshold
	ConditionQuizzesCompleted  ConditionKind = "quizzes_completed"  // total_attempts >= Threshold
	ConditionAccuracy          ConditionKind = "accuracy"           // accuracy percent >= Threshold
)

type Achievement struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	Name        string        `gorm:"not null;uniqueIndex" json:"name"`
	Description string        `gorm:"not null" json:"description"`
	Icon        string        `gorm:"default:'trophy';size:50" json:"icon"`
	Condition   ConditionKind `gorm:"not null;size:30" json:"condition"`
	Threshold   int           `gorm:"default:0" json:"threshold"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserAchievement marks a permanent unlock, unique per (user, achievement)
type UserAchievement struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;uniqueIndex:idx_user_achievement" json:"user_id"`
	AchievementID uint      `gorm:"not null;uniqueIndex:idx_user_achievement" json:"achievement_id"`
	UnlockedAt    time.Time `json:"unlocked_at"`

	User        User        `gorm:"foreignKey:UserID" json:"-"`
	Achievement Achievement `gorm:"foreignKey:AchievementID" json:"achievement,omitempty"`
}

func (Achievement) TableName() string {
	return "achievements"
}

func (UserAchievement) TableName() string {
	return "user_achievements"
}
