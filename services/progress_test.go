package services

import (
	"fmt"
	"testing"
	"time"

	"quizmaster/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyResultRunningAverage(t *testing.T) {
	var p models.UserProgress

	p.ApplyResult(7, 10)
	assert.Equal(t, 1, p.TotalAttempts)
	assert.Equal(t, 10, p.QuestionsAnswered)
	assert.Equal(t, 7, p.CorrectAnswers)
	assert.InDelta(t, 0.7, p.AverageScore, 0.001)

	p.ApplyResult(5, 10)
	assert.Equal(t, 2, p.TotalAttempts)
	assert.InDelta(t, 0.6, p.AverageScore, 0.001)

	p.ApplyResult(10, 10)
	assert.Equal(t, 3, p.TotalAttempts)
	assert.InDelta(t, (0.7+0.5+1.0)/3, p.AverageScore, 0.001)
}

func TestApplyResultIgnoresZeroTotal(t *testing.T) {
	var p models.UserProgress
	p.ApplyResult(0, 0)
	assert.Equal(t, 0, p.TotalAttempts)
	assert.Zero(t, p.AverageScore)
}

func TestAccuracy(t *testing.T) {
	p := models.UserProgress{QuestionsAnswered: 40, CorrectAnswers: 30}
	assert.InDelta(t, 75.0, p.Accuracy(), 0.001)

	var empty models.UserProgress
	assert.Zero(t, empty.Accuracy())
}

func TestEnsureProfileIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewProgressService(db)
	user := createUser(t, db, "alice")

	require.NoError(t, svc.EnsureProfile(user.ID))
	require.NoError(t, svc.EnsureProfile(user.ID))

	var progressCount, entryCount int64
	require.NoError(t, db.Model(&models.UserProgress{}).Where("user_id = ?", user.ID).Count(&progressCount).Error)
	require.NoError(t, db.Model(&models.LeaderboardEntry{}).Where("user_id = ?", user.ID).Count(&entryCount).Error)
	assert.EqualValues(t, 1, progressCount)
	assert.EqualValues(t, 1, entryCount)
}

func TestUpdateProgressAccumulates(t *testing.T) {
	db := newTestDB(t)
	svc := NewProgressService(db)
	user := createUser(t, db, "alice")

	_, err := svc.UpdateProgress(user.ID, 7, 10)
	require.NoError(t, err)
	progress, err := svc.UpdateProgress(user.ID, 9, 10)
	require.NoError(t, err)

	assert.Equal(t, 2, progress.TotalAttempts)
	assert.Equal(t, 20, progress.QuestionsAnswered)
	assert.Equal(t, 16, progress.CorrectAnswers)
	assert.InDelta(t, 0.8, progress.AverageScore, 0.001)
	assert.GreaterOrEqual(t, progress.CorrectAnswers, 0)
	assert.LessOrEqual(t, progress.CorrectAnswers, progress.QuestionsAnswered)
}

func TestLeaderboardDenseRanks(t *testing.T) {
	db := newTestDB(t)
	svc := NewProgressService(db)

	scores := []int{30, 50, 10, 40}
	for i, score := range scores {
		user := createUser(t, db, fmt.Sprintf("user%d", i))
		_, err := svc.UpdateProgress(user.ID, score, score)
		require.NoError(t, err)
		require.NoError(t, svc.UpdateLeaderboard(user.ID))
	}

	var entries []models.LeaderboardEntry
	require.NoError(t, db.Order("rank ASC").Find(&entries).Error)
	require.Len(t, entries, 4)

	// Ranks are a dense permutation of 1..n ordered by score
	wantScores := []int{50, 40, 30, 10}
	for i, entry := range entries {
		assert.Equal(t, i+1, entry.Rank)
		assert.Equal(t, wantScores[i], entry.Score)
	}
}

func TestEnsureProfileRanksNewEntry(t *testing.T) {
	db := newTestDB(t)
	svc := NewProgressService(db)

	veteran := createUser(t, db, "veteran")
	_, err := svc.UpdateProgress(veteran.ID, 10, 10)
	require.NoError(t, err)
	require.NoError(t, svc.UpdateLeaderboard(veteran.ID))

	// A registration must not leave a rank-0 row above the leader
	newcomer := createUser(t, db, "newcomer")
	require.NoError(t, svc.EnsureProfile(newcomer.ID))

	var entries []models.LeaderboardEntry
	require.NoError(t, db.Order("rank ASC").Find(&entries).Error)
	require.Len(t, entries, 2)

	assert.Equal(t, veteran.ID, entries[0].UserID)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, newcomer.ID, entries[1].UserID)
	assert.Equal(t, 2, entries[1].Rank)
}

func TestLeaderboardTieBreakByUpdatedAt(t *testing.T) {
	db := newTestDB(t)
	svc := NewProgressService(db)

	first := createUser(t, db, "first")
	second := createUser(t, db, "second")

	_, err := svc.UpdateProgress(first.ID, 10, 10)
	require.NoError(t, err)
	require.NoError(t, svc.UpdateLeaderboard(first.ID))

	time.Sleep(10 * time.Millisecond)

	_, err = svc.UpdateProgress(second.ID, 10, 10)
	require.NoError(t, err)
	require.NoError(t, svc.UpdateLeaderboard(second.ID))

	// Same score: the earlier update keeps the better rank
	var firstEntry, secondEntry models.LeaderboardEntry
	require.NoError(t, db.Where("user_id = ?", first.ID).First(&firstEntry).Error)
	require.NoError(t, db.Where("user_id = ?", second.ID).First(&secondEntry).Error)
	assert.Equal(t, 1, firstEntry.Rank)
	assert.Equal(t, 2, secondEntry.Rank)
}

func TestCategoryPerformanceAndWeakCategories(t *testing.T) {
	db := newTestDB(t)
	svc := NewProgressService(db)
	user := createUser(t, db, "alice")

	strong := createCategory(t, db, "Strong")
	weak := createCategory(t, db, "Weak")
	weaker := createCategory(t, db, "Weaker")

	answer := func(categoryID uint, correct bool) {
		q := createQuestions(t, db, 1, &categoryID)[0]
		selected := 1
		if !correct {
			selected = 2
		}
		require.NoError(t, db.Create(&models.UserAnswer{
			UserID:         user.ID,
			QuestionID:     q.ID,
			SelectedOption: selected,
			IsCorrect:      correct,
		}).Error)
	}

	// Strong 100%, Weak 50%, Weaker 0%
	answer(strong.ID, true)
	answer(strong.ID, true)
	answer(weak.ID, true)
	answer(weak.ID, false)
	answer(weaker.ID, false)

	performance, err := svc.CategoryPerformance(user.ID)
	require.NoError(t, err)
	require.Len(t, performance, 3)
	assert.Equal(t, "Weaker", performance[0].CategoryName)
	assert.Equal(t, "Weak", performance[1].CategoryName)
	assert.Equal(t, "Strong", performance[2].CategoryName)

	weakList, err := svc.WeakCategories(user.ID)
	require.NoError(t, err)
	require.Len(t, weakList, 2)
	assert.Equal(t, "Weaker", weakList[0].CategoryName)
	assert.Equal(t, "Weak", weakList[1].CategoryName)
	for _, row := range weakList {
		assert.Less(t, row.Accuracy, 70.0)
	}
}

func TestWeakCategoriesCapAtFive(t *testing.T) {
	db := newTestDB(t)
	svc := NewProgressService(db)
	user := createUser(t, db, "alice")

	for i := 0; i < 7; i++ {
		category := createCategory(t, db, fmt.Sprintf("Category %d", i))
		q := createQuestions(t, db, 1, &category.ID)[0]
		require.NoError(t, db.Create(&models.UserAnswer{
			UserID:         user.ID,
			QuestionID:     q.ID,
			SelectedOption: 2,
			IsCorrect:      false,
		}).Error)
	}

	weakList, err := svc.WeakCategories(user.ID)
	require.NoError(t, err)
	assert.Len(t, weakList, 5)
}
