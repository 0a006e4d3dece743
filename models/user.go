// models/user.go
package models

import (
	"time"
)

type User struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Username string  `gorm:"uniqueIndex;not null" json:"username"`
	Email    *string `gorm:"uniqueIndex" json:"email,omitempty"`
	Password string  `gorm:"not null" json:"-"`
	IsAdmin  bool    `gorm:"default:false" json:"is_admin"`

	// Timestamps
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	LastLogin time.Time `json:"last_login"`

	// Relationships
	Progress     *UserProgress     `gorm:"foreignKey:UserID" json:"progress,omitempty"`
	Results      []QuizResult      `gorm:"foreignKey:UserID" json:"results,omitempty"`
	Achievements []UserAchievement `gorm:"foreignKey:UserID" json:"achievements,omitempty"`
}

// UserProgress is the per-user aggregate, one row per user
type UserProgress struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	UserID            uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	TotalAttempts     int       `gorm:"default:0" json:"total_attempts"`
	AverageScore      float64   `gorm:"default:0" json:"average_score"`
	QuestionsAnswered int       `gorm:"default:0" json:"questions_answered"`
	CorrectAnswers    int       `gorm:"default:0" json:"correct_answers"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ApplyResult folds one graded quiz into the aggregate. The running
// average weighs every prior attempt equally: (avg*(n-1) + score/total)/n.
func (p *UserProgress) ApplyResult(score, total int) {
	if total <= 0 {
		return
	}
	p.TotalAttempts++
	p.QuestionsAnswered += total
	p.CorrectAnswers += score
	p.AverageScore = (p.AverageScore*float64(p.TotalAttempts-1) + float64(score)/float64(total)) / float64(p.TotalAttempts)
}

// Accuracy returns correct/answered as a percentage
func (p UserProgress) Accuracy() float64 {
	if p.QuestionsAnswered == 0 {
		return 0
	}
	return float64(p.CorrectAnswers) / float64(p.QuestionsAnswered) * 100
}

// LeaderboardEntry is the per-user leaderboard row. Score mirrors the
// user's cumulative correct answers; Rank is a dense 1-based ordering
// over all entries by (score desc, updated_at asc).
type LeaderboardEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Score     int       `gorm:"default:0;index" json:"score"`
	Rank      int       `gorm:"default:0" json:"rank"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (UserProgress) TableName() string {
	return "user_progress"
}

func (LeaderboardEntry) TableName() string {
	return "leaderboard_entries"
}
