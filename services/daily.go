// services/daily.go - Question of the day
package services

import (
	"errors"
	"time"

	"quizmaster/models"

	"gorm.io/gorm"
)

var ErrAlreadyAnswered = errors.New("daily question already answered today")

// Today returns the current calendar date in the daily-question format
func Today() string {
	return time.Now().UTC().Format("2006-01-02")
}

type DailyQuestionService struct {
	db *gorm.DB
}

func NewDailyQuestionService(db *gorm.DB) *DailyQuestionService {
	return &DailyQuestionService{db: db}
}

// Get returns the shared question for the given date, lazily assigning
// a random question the first time the date is requested. Every caller
// sees the same question for the same date.
func (s *DailyQuestionService) Get(date string) (*models.DailyQuestion, error) {
	return getOrCreateDaily(s.db, date)
}

func getOrCreateDaily(db *gorm.DB, date string) (*models.DailyQuestion, error) {
	var daily models.DailyQuestion

	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.Preload("Question").Where("date = ?", date).First(&daily).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		// Pick a random question for the new date
		var question models.Question
		if err := tx.Order("RANDOM()").First(&question).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoQuestions
			}
			return err
		}

		daily = models.DailyQuestion{Date: date, QuestionID: question.ID}
		if err := tx.Create(&daily).Error; err != nil {
			return err
		}
		daily.Question = &question
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &daily, nil
}

// AlreadyAnswered reports whether the user answered the given daily
// question on its date.
func (s *DailyQuestionService) AlreadyAnswered(userID uint, daily *models.DailyQuestion) (bool, error) {
	start, err := time.Parse("2006-01-02", daily.Date)
	if err != nil {
		return false, err
	}
	end := start.Add(24 * time.Hour)

	var count int64
	err = s.db.Model(&models.UserAnswer{}).
		Where("user_id = ? AND question_id = ? AND answered_at >= ? AND answered_at < ?",
			userID, daily.QuestionID, start, end).
		Count(&count).Error
	return count > 0, err
}

// DailyAnswerOutcome is the graded result of a daily question answer
type DailyAnswerOutcome struct {
	IsCorrect     bool                `json:"is_correct"`
	CorrectOption int                 `json:"correct_option"`
	Explanation   string              `json:"explanation,omitempty"`
	Progress      models.UserProgress `json:"progress"`
}

// Answer grades a single daily-question answer, records it and folds it
// into the user's progress as a one-question attempt. A second answer on
// the same date is rejected.
func (s *DailyQuestionService) Answer(userID uint, selected int) (*DailyAnswerOutcome, error) {
	daily, err := s.Get(Today())
	if err != nil {
		return nil, err
	}

	answered, err := s.AlreadyAnswered(userID, daily)
	if err != nil {
		return nil, err
	}
	if answered {
		return nil, ErrAlreadyAnswered
	}

	question := daily.Question
	isCorrect := question.IsCorrect(selected)

	var outcome DailyAnswerOutcome
	err = s.db.Transaction(func(tx *gorm.DB) error {
		answer := models.UserAnswer{
			UserID:         userID,
			QuestionID:     question.ID,
			SelectedOption: selected,
			IsCorrect:      isCorrect,
		}
		if err := tx.Create(&answer).Error; err != nil {
			return err
		}

		score := 0
		if isCorrect {
			score = 1
		}
		progress, err := applyProgress(tx, userID, score, 1)
		if err != nil {
			return err
		}

		outcome = DailyAnswerOutcome{
			IsCorrect:     isCorrect,
			CorrectOption: question.CorrectOption,
			Explanation:   question.Explanation,
			Progress:      *progress,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &outcome, nil
}
