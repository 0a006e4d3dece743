// services/quiz.go - Quiz session lifecycle: select, hold, grade
package services

import (
	"errors"
	"math/rand"
	"time"

	"quizmaster/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	QuizTypeStandard = "standard"
	QuizTypeCustom   = "custom"
	QuizTypeDaily    = "daily"

	// StandardQuizSize caps the standard-mode question pool
	StandardQuizSize = 100

	MinCustomQuestions = 5
	MaxCustomQuestions = 100
)

var (
	ErrNoQuestions          = errors.New("no questions available for the selected criteria")
	ErrNoActiveSession      = errors.New("no active quiz session")
	ErrInvalidQuizType      = errors.New("invalid quiz type")
	ErrInvalidQuestionCount = errors.New("question count must be between 5 and 100")
)

// QuizFilters narrows the question pool for custom quizzes
type QuizFilters struct {
	CategoryIDs []uint
	Difficulty  string // easy, medium, hard or empty for all
	Count       int
}

type QuizService struct {
	db *gorm.DB
}

func NewQuizService(db *gorm.DB) *QuizService {
	return &QuizService{db: db}
}

// Start selects the question set for the requested mode and persists it
// as the user's active session, replacing any stale one.
func (s *QuizService) Start(userID uint, quizType string, filters QuizFilters) ([]models.Question, *models.QuizSession, error) {
	var questions []models.Question
	var err error

	switch quizType {
	case QuizTypeStandard:
		questions, err = s.selectStandard()
	case QuizTypeCustom:
		questions, err = s.selectCustom(filters)
	case QuizTypeDaily:
		var daily *models.DailyQuestion
		daily, err = getOrCreateDaily(s.db, Today())
		if err == nil {
			questions = []models.Question{*daily.Question}
		}
	default:
		return nil, nil, ErrInvalidQuizType
	}
	if err != nil {
		return nil, nil, err
	}
	if len(questions) == 0 {
		return nil, nil, ErrNoQuestions
	}

	ids := make([]uint, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
	}

	session := models.QuizSession{
		UserID:      userID,
		Token:       uuid.New().String(),
		QuizType:    quizType,
		QuestionIDs: datatypes.NewJSONSlice(ids),
		StartedAt:   time.Now().UTC(),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.QuizSession{}).Error; err != nil {
			return err
		}
		return tx.Create(&session).Error
	})
	if err != nil {
		return nil, nil, err
	}

	return questions, &session, nil
}

func (s *QuizService) selectStandard() ([]models.Question, error) {
	var questions []models.Question
	if err := s.db.Preload("Category").Find(&questions).Error; err != nil {
		return nil, err
	}
	return sampleQuestions(questions, StandardQuizSize), nil
}

func (s *QuizService) selectCustom(filters QuizFilters) ([]models.Question, error) {
	if filters.Count < MinCustomQuestions || filters.Count > MaxCustomQuestions {
		return nil, ErrInvalidQuestionCount
	}

	query := s.db.Preload("Category")
	if len(filters.CategoryIDs) > 0 {
		query = query.Where("category_id IN ?", filters.CategoryIDs)
	}
	if filters.Difficulty != "" && filters.Difficulty != "all" {
		query = query.Where("difficulty = ?", filters.Difficulty)
	}

	var questions []models.Question
	if err := query.Find(&questions).Error; err != nil {
		return nil, err
	}
	return sampleQuestions(questions, filters.Count), nil
}

// sampleQuestions picks up to n questions uniformly without
// replacement; a pool smaller than n is returned whole.
func sampleQuestions(pool []models.Question, n int) []models.Question {
	rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	if len(pool) > n {
		pool = pool[:n]
	}
	return pool
}

// Session returns the user's in-progress session and its questions
func (s *QuizService) Session(userID uint) (*models.QuizSession, []models.Question, error) {
	var session models.QuizSession
	if err := s.db.Where("user_id = ?", userID).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNoActiveSession
		}
		return nil, nil, err
	}

	questions, err := s.sessionQuestions(s.db, session)
	if err != nil {
		return nil, nil, err
	}
	return &session, questions, nil
}

func (s *QuizService) sessionQuestions(tx *gorm.DB, session models.QuizSession) ([]models.Question, error) {
	var questions []models.Question
	if err := tx.Preload("Category").Where("id IN ?", []uint(session.QuestionIDs)).Find(&questions).Error; err != nil {
		return nil, err
	}

	// Preserve the order the session was dealt in
	byID := make(map[uint]models.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}
	ordered := make([]models.Question, 0, len(questions))
	for _, id := range session.QuestionIDs {
		if q, ok := byID[id]; ok {
			ordered = append(ordered, q)
		}
	}
	return ordered, nil
}

// AnswerReview is the per-question outcome of a graded quiz
type AnswerReview struct {
	QuestionID     uint   `json:"question_id"`
	Answered       bool   `json:"answered"`
	SelectedOption int    `json:"selected_option,omitempty"`
	CorrectOption  int    `json:"correct_option"`
	IsCorrect      bool   `json:"is_correct"`
	Explanation    string `json:"explanation,omitempty"`
}

// QuizSummary is everything the result page needs after a submission
type QuizSummary struct {
	Result          models.QuizResult    `json:"result"`
	Answers         []AnswerReview       `json:"answers"`
	Progress        models.UserProgress  `json:"progress"`
	NewAchievements []models.Achievement `json:"new_achievements"`
	Recommendation  Recommendation       `json:"recommendation"`
}

// Submit grades the user's active session. Questions without a valid
// submitted option count toward the total but not the score and leave
// no answer record. Grading, progress, leaderboard and achievement
// updates commit atomically; the session is consumed either way.
func (s *QuizService) Submit(userID uint, answers map[uint]int, timeTaken int) (*QuizSummary, error) {
	var summary QuizSummary

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var session models.QuizSession
		if err := tx.Where("user_id = ?", userID).First(&session).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoActiveSession
			}
			return err
		}

		questions, err := s.sessionQuestions(tx, session)
		if err != nil {
			return err
		}
		if len(questions) == 0 {
			return ErrNoQuestions
		}

		score := 0
		reviews := make([]AnswerReview, 0, len(questions))
		userAnswers := make([]models.UserAnswer, 0, len(questions))

		for _, question := range questions {
			review := AnswerReview{
				QuestionID:    question.ID,
				CorrectOption: question.CorrectOption,
				Explanation:   question.Explanation,
			}

			selected, ok := answers[question.ID]
			if ok && selected >= 1 && selected <= 4 {
				isCorrect := question.IsCorrect(selected)
				if isCorrect {
					score++
				}
				review.Answered = true
				review.SelectedOption = selected
				review.IsCorrect = isCorrect

				userAnswers = append(userAnswers, models.UserAnswer{
					UserID:         userID,
					QuestionID:     question.ID,
					SelectedOption: selected,
					IsCorrect:      isCorrect,
				})
			}
			reviews = append(reviews, review)
		}

		if len(userAnswers) > 0 {
			if err := tx.Create(&userAnswers).Error; err != nil {
				return err
			}
		}

		result := models.QuizResult{
			UserID:         userID,
			Score:          score,
			TotalQuestions: len(questions),
			TimeTaken:      timeTaken,
			QuizType:       session.QuizType,
		}
		if err := tx.Create(&result).Error; err != nil {
			return err
		}

		progress, err := applyProgress(tx, userID, score, len(questions))
		if err != nil {
			return err
		}

		if err := updateLeaderboard(tx, userID); err != nil {
			return err
		}

		newAchievements, err := evaluateAchievements(tx, userID)
		if err != nil {
			return err
		}

		if err := tx.Delete(&session).Error; err != nil {
			return err
		}

		summary = QuizSummary{
			Result:          result,
			Answers:         reviews,
			Progress:        *progress,
			NewAchievements: newAchievements,
			Recommendation:  EffortRecommendation(*progress),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &summary, nil
}
