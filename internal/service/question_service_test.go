package service

import (
	"fmt"
	"testing"

	"campus_hub_backend/internal/model"
	"campus_hub_backend/internal/repository"
	"campus_hub_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newQuestionService(t *testing.T, db *gorm.DB) *QuestionService {
	t.Helper()
	return NewQuestionService(
		repository.NewQuestionRepository(db),
		repository.NewUserRepository(db),
		newScoreService(t, db),
		db,
	)
}

func postQuestion(t *testing.T, svc *QuestionService, category, userID string) *model.Question {
	t.Helper()
	question, err := svc.CreateQuestion(&QuestionInput{
		Title:       "How do I structure handlers?",
		Description: "Looking for layering advice.",
		Category:    category,
		Code:        "func main() {}\n",
	}, userID)
	require.NoError(t, err)
	return question
}

func TestAddAnswerStampsCurrentTitle(t *testing.T) {
	db := newTestDB(t)
	svc := newQuestionService(t, db)
	seedUser(t, db, "Mina", "20250001", "mina-dev", "1001")
	jun := seedUser(t, db, "Jun", "20250002", "jun-dev", "1002")

	question := postQuestion(t, svc, "backend", "mina-dev")

	answer, err := svc.AddAnswer(question.ID, model.AnswerGeneral, 0, "split it by layer", "jun-dev")
	require.NoError(t, err)
	assert.Equal(t, "Beginner", answer.UserTitle)

	// Once Jun has points, new answers carry the earned title.
	_, err = svc.ScoreService.UpdateScore(jun.StudentID, "backend", 10)
	require.NoError(t, err)
	answer, err = svc.AddAnswer(question.ID, model.AnswerGeneral, 0, "and keep handlers thin", "jun-dev")
	require.NoError(t, err)
	assert.Equal(t, "Intermediate Backend Developer", answer.UserTitle)
}

func TestToggleResolveCreditsBothSides(t *testing.T) {
	db := newTestDB(t)
	svc := newQuestionService(t, db)
	seedUser(t, db, "Mina", "20250001", "mina-dev", "1001")
	seedUser(t, db, "Jun", "20250002", "jun-dev", "1002")

	question := postQuestion(t, svc, "backend", "mina-dev")
	_, err := svc.AddAnswer(question.ID, model.AnswerGeneral, 0, "split it by layer", "jun-dev")
	require.NoError(t, err)

	result, err := svc.ToggleResolveGeneral(question.ID, 0)
	require.NoError(t, err)
	assert.True(t, result.Resolved)
	assert.True(t, result.HasResolvedAnswer)

	answererSummary, err := svc.ScoreService.Summary("20250002")
	require.NoError(t, err)
	assert.Equal(t, 1.0, answererSummary.Scores["backend"])

	askerSummary, err := svc.ScoreService.Summary("20250001")
	require.NoError(t, err)
	assert.Equal(t, 0.5, askerSummary.Scores["backend"])
}

func TestToggleResolveRoundTripRestoresLedger(t *testing.T) {
	db := newTestDB(t)
	svc := newQuestionService(t, db)
	seedUser(t, db, "Mina", "20250001", "mina-dev", "1001")
	seedUser(t, db, "Jun", "20250002", "jun-dev", "1002")

	question := postQuestion(t, svc, "backend", "mina-dev")
	_, err := svc.AddAnswer(question.ID, model.AnswerGeneral, 0, "split it by layer", "jun-dev")
	require.NoError(t, err)

	_, err = svc.ToggleResolveGeneral(question.ID, 0)
	require.NoError(t, err)
	result, err := svc.ToggleResolveGeneral(question.ID, 0)
	require.NoError(t, err)
	assert.False(t, result.Resolved)
	assert.False(t, result.HasResolvedAnswer)

	// Resolve then unresolve must leave both ledgers exactly where they
	// started.
	answererSummary, err := svc.ScoreService.Summary("20250002")
	require.NoError(t, err)
	assert.Equal(t, 0.0, answererSummary.Scores["backend"])

	askerSummary, err := svc.ScoreService.Summary("20250001")
	require.NoError(t, err)
	assert.Equal(t, 0.0, askerSummary.Scores["backend"])
}

func TestToggleResolveRefreshesTitleSnapshots(t *testing.T) {
	db := newTestDB(t)
	svc := newQuestionService(t, db)
	seedUser(t, db, "Mina", "20250001", "mina-dev", "1001")
	seedUser(t, db, "Jun", "20250002", "jun-dev", "1002")

	question := postQuestion(t, svc, "backend", "mina-dev")
	for i := 0; i < 10; i++ {
		_, err := svc.AddAnswer(question.ID, model.AnswerGeneral, 0,
			fmt.Sprintf("answer %d", i), "jun-dev")
		require.NoError(t, err)
	}

	var lastTitle string
	for i := 0; i < 10; i++ {
		result, err := svc.ToggleResolveGeneral(question.ID, i)
		require.NoError(t, err)
		lastTitle = result.AnswererTitle
	}
	assert.Equal(t, "Intermediate Backend Developer", lastTitle)

	// Every answer Jun posted on the question shows the fresh title, not
	// the one stamped when it was written.
	answers, err := svc.QuestionRepo.AllAnswers(question.ID)
	require.NoError(t, err)
	require.Len(t, answers, 10)
	for _, answer := range answers {
		assert.Equal(t, "Intermediate Backend Developer", answer.UserTitle)
	}
}

func TestToggleResolveCodeAnswerStream(t *testing.T) {
	db := newTestDB(t)
	svc := newQuestionService(t, db)
	seedUser(t, db, "Mina", "20250001", "mina-dev", "1001")
	seedUser(t, db, "Jun", "20250002", "jun-dev", "1002")

	question := postQuestion(t, svc, "backend", "mina-dev")
	_, err := svc.AddAnswer(question.ID, model.AnswerCode, 3, "this line leaks", "jun-dev")
	require.NoError(t, err)
	_, err = svc.AddAnswer(question.ID, model.AnswerCode, 7, "off by one here", "jun-dev")
	require.NoError(t, err)

	// Index is relative to the answers of one line, not the whole stream.
	result, err := svc.ToggleResolveCode(question.ID, 7, 0)
	require.NoError(t, err)
	assert.True(t, result.Resolved)

	detail, err := svc.GetQuestion(question.ID)
	require.NoError(t, err)
	require.Len(t, detail.CodeAnswers["7"], 1)
	assert.True(t, detail.CodeAnswers["7"][0].Resolved)
	assert.False(t, detail.CodeAnswers["3"][0].Resolved)
}

func TestToggleResolveUnknownAnswer(t *testing.T) {
	db := newTestDB(t)
	svc := newQuestionService(t, db)
	seedUser(t, db, "Mina", "20250001", "mina-dev", "1001")

	question := postQuestion(t, svc, "backend", "mina-dev")
	_, err := svc.ToggleResolveGeneral(question.ID, 0)
	assert.ErrorIs(t, err, util.ErrNotFound)

	_, err = svc.ToggleResolveGeneral("missing-question", 0)
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func TestCustomCategoryScoresInCatchAll(t *testing.T) {
	db := newTestDB(t)
	svc := newQuestionService(t, db)
	seedUser(t, db, "Mina", "20250001", "mina-dev", "1001")
	seedUser(t, db, "Jun", "20250002", "jun-dev", "1002")

	question := postQuestion(t, svc, "game-dev", "mina-dev")
	_, err := svc.AddAnswer(question.ID, model.AnswerGeneral, 0, "use a fixed timestep", "jun-dev")
	require.NoError(t, err)

	_, err = svc.ToggleResolveGeneral(question.ID, 0)
	require.NoError(t, err)

	summary, err := svc.ScoreService.Summary("20250002")
	require.NoError(t, err)
	assert.Equal(t, 1.0, summary.Scores["others"])
	assert.Equal(t, "Novice IT Specialist", summary.Titles["others"])
}
