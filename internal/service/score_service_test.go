package service

import (
	"sync"
	"testing"

	"campus_hub_backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newScoreService(t *testing.T, db *gorm.DB) *ScoreService {
	t.Helper()
	svc, err := NewScoreService(repository.NewScoreRepository(db), db)
	require.NoError(t, err)
	return svc
}

func TestTitleForThresholds(t *testing.T) {
	db := newTestDB(t)
	svc := newScoreService(t, db)

	assert.Equal(t, "Novice Backend Developer", svc.TitleFor("backend", 0))
	assert.Equal(t, "Novice Backend Developer", svc.TitleFor("backend", 9.5))
	assert.Equal(t, "Intermediate Backend Developer", svc.TitleFor("backend", 10))
	assert.Equal(t, "Advanced Backend Developer", svc.TitleFor("backend", 20))
	assert.Equal(t, "Advanced Backend Developer", svc.TitleFor("backend", 49.5))
	assert.Equal(t, "Expert Backend Developer", svc.TitleFor("backend", 50))
	assert.Equal(t, "Expert Backend Developer", svc.TitleFor("backend", 120))

	assert.Equal(t, "Novice Security Specialist", svc.TitleFor("security", 3))
	assert.Equal(t, "Undefined Title", svc.TitleFor("quantum", 3))
}

func TestUpdateScoreAccumulates(t *testing.T) {
	db := newTestDB(t)
	svc := newScoreService(t, db)

	summary, err := svc.UpdateScore("20250001", "backend", 1)
	require.NoError(t, err)
	assert.Equal(t, 1.0, summary.Scores["backend"])
	assert.Equal(t, "Novice Backend Developer", summary.Titles["backend"])

	summary, err = svc.UpdateScore("20250001", "backend", 9)
	require.NoError(t, err)
	assert.Equal(t, 10.0, summary.Scores["backend"])
	assert.Equal(t, "Intermediate Backend Developer", summary.Titles["backend"])
}

func TestUpdateScoreClampsAtZero(t *testing.T) {
	db := newTestDB(t)
	svc := newScoreService(t, db)

	summary, err := svc.UpdateScore("20250001", "backend", 2)
	require.NoError(t, err)
	require.Equal(t, 2.0, summary.Scores["backend"])

	// A deduction larger than the balance floors at zero instead of going
	// negative.
	summary, err = svc.UpdateScore("20250001", "backend", -5)
	require.NoError(t, err)
	assert.Equal(t, 0.0, summary.Scores["backend"])
	assert.Equal(t, "Novice Backend Developer", summary.Titles["backend"])
}

func TestUpdateScoreTracksCategoriesIndependently(t *testing.T) {
	db := newTestDB(t)
	svc := newScoreService(t, db)

	_, err := svc.UpdateScore("20250001", "backend", 12)
	require.NoError(t, err)
	summary, err := svc.UpdateScore("20250001", "frontend", 3)
	require.NoError(t, err)

	assert.Equal(t, 12.0, summary.Scores["backend"])
	assert.Equal(t, 3.0, summary.Scores["frontend"])
	assert.Equal(t, "Intermediate Backend Developer", summary.Titles["backend"])
	assert.Equal(t, "Novice Frontend Developer", summary.Titles["frontend"])
}

func TestCurrentTitleFallsBackForNewStudents(t *testing.T) {
	db := newTestDB(t)
	svc := newScoreService(t, db)

	assert.Equal(t, "Beginner", svc.CurrentTitle("20259999", "backend"))
}

func TestConcurrentUpdatesLoseNothing(t *testing.T) {
	db := newTestDB(t)
	svc := newScoreService(t, db)

	const workers = 20
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.UpdateScore("20250001", "backend", 1); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	summary, err := svc.Summary("20250001")
	require.NoError(t, err)
	assert.Equal(t, float64(workers), summary.Scores["backend"])
	assert.Equal(t, "Advanced Backend Developer", summary.Titles["backend"])
}
