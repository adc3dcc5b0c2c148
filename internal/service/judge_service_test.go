package service

import (
	"context"
	"testing"

	"campus_hub_backend/internal/config"
	"campus_hub_backend/internal/repository"
	"campus_hub_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newJudgeService(db *gorm.DB) *JudgeService {
	return NewJudgeService(repository.NewProblemRepository(db), config.Judge0Config{})
}

func TestSubmitRejectsUnsupportedLanguage(t *testing.T) {
	db := newTestDB(t)
	svc := newJudgeService(db)

	_, err := svc.Submit(context.Background(), "some-problem", "mina-dev", "print(1)", "cobol")
	assert.ErrorIs(t, err, util.ErrLanguageUnsupported)
}

func TestSubmitUnknownProblem(t *testing.T) {
	db := newTestDB(t)
	svc := newJudgeService(db)

	_, err := svc.Submit(context.Background(), "missing", "mina-dev", "print(1)", "python")
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func TestProblemLifecycle(t *testing.T) {
	db := newTestDB(t)
	svc := newJudgeService(db)

	problem, err := svc.CreateProblem(&ProblemInput{
		Title:        "Echo",
		Description:  "Print the input back.",
		SampleInput:  "hello",
		SampleOutput: "hello",
	})
	require.NoError(t, err)
	require.NotEmpty(t, problem.ID)

	problems, err := svc.GetProblems()
	require.NoError(t, err)
	assert.Len(t, problems, 1)

	found, err := svc.GetProblem(problem.ID)
	require.NoError(t, err)
	assert.Equal(t, "Echo", found.Title)

	_, err = svc.GetProblem("missing")
	assert.ErrorIs(t, err, util.ErrNotFound)
}
