// models/models.go - Core quiz models
package models

import (
	"time"

	"gorm.io/datatypes"
)

// Category groups questions for filtering and per-category stats
type Category struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Name        string     `json:"name" gorm:"not null;size:100"`
	Description string     `json:"description" gorm:"type:text"`
	Color       string     `json:"color" gorm:"size:7;default:'#3B82F6'"`
	CreatedAt   time.Time  `json:"created_at"`
	Questions   []Question `json:"questions,omitempty" gorm:"foreignKey:CategoryID"`
}

// Question is a four-option multiple choice question
type Question struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Text          string    `json:"text" gorm:"not null;type:text"`
	Option1       string    `json:"option1" gorm:"not null;size:200"`
	Option2       string    `json:"option2" gorm:"not null;size:200"`
	Option3       string    `json:"option3" gorm:"not null;size:200"`
	Option4       string    `json:"option4" gorm:"not null;size:200"`
	CorrectOption int       `json:"correct_option" gorm:"not null"` // 1-4
	CategoryID    *uint     `json:"category_id" gorm:"index"`
	Category      *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Difficulty    string    `json:"difficulty" gorm:"default:'medium';size:10"` // easy, medium, hard
	Explanation   string    `json:"explanation" gorm:"type:text"`
	CreatedAt     time.Time `json:"created_at"`
}

// Options returns the four answer options in order
func (q Question) Options() [4]string {
	return [4]string{q.Option1, q.Option2, q.Option3, q.Option4}
}

// IsCorrect reports whether the selected 1-based option is the right one
func (q Question) IsCorrect(selected int) bool {
	return selected == q.CorrectOption
}

// QuizResult records one completed quiz. Rows are never mutated.
type QuizResult struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	UserID         uint      `json:"user_id" gorm:"not null;index"`
	User           *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Score          int       `json:"score" gorm:"not null"`
	TotalQuestions int       `json:"total_questions" gorm:"not null"`
	TimeTaken      int       `json:"time_taken" gorm:"default:0"`                // in seconds
	QuizType       string    `json:"quiz_type" gorm:"default:'standard';size:20"` // standard, custom, daily
	CompletedAt    time.Time `json:"completed_at" gorm:"autoCreateTime;index"`
}

// Percentage returns the score as a percentage of the total
func (r QuizResult) Percentage() float64 {
	if r.TotalQuestions == 0 {
		return 0
	}
	return float64(r.Score) / float64(r.TotalQuestions) * 100
}

// UserAnswer records a single answered question within a quiz
type UserAnswer struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	UserID         uint      `json:"user_id" gorm:"not null;index"`
	QuestionID     uint      `json:"question_id" gorm:"not null;index"`
	Question       *Question `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	SelectedOption int       `json:"selected_option" gorm:"not null"`
	IsCorrect      bool      `json:"is_correct"`
	AnsweredAt     time.Time `json:"answered_at" gorm:"autoCreateTime"`
}

// DailyQuestion pins one globally shared question to a calendar date
type DailyQuestion struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Date       string    `json:"date" gorm:"uniqueIndex;size:10;not null"` // YYYY-MM-DD
	QuestionID uint      `json:"question_id" gorm:"not null"`
	Question   *Question `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	CreatedAt  time.Time `json:"created_at"`
}

// QuizSession holds the selected question set between quiz start and submit.
// One row per user; grading consumes and deletes it.
type QuizSession struct {
	ID          uint                      `json:"id" gorm:"primaryKey"`
	UserID      uint                      `json:"user_id" gorm:"uniqueIndex;not null"`
	Token       string                    `json:"token" gorm:"size:36"`
	QuizType    string                    `json:"quiz_type" gorm:"not null;size:20"`
	QuestionIDs datatypes.JSONSlice[uint] `json:"question_ids"`
	StartedAt   time.Time                 `json:"started_at"`
}

func (Category) TableName() string {
	return "categories"
}

func (Question) TableName() string {
	return "questions"
}

func (QuizResult) TableName() string {
	return "quiz_results"
}

func (UserAnswer) TableName() string {
	return "user_answers"
}

func (DailyQuestion) TableName() string {
	return "daily_questions"
}

func (QuizSession) TableName() string {
	return "quiz_sessions"
}
