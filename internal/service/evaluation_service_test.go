package service

import (
	"testing"

	"campus_hub_backend/internal/model"
	"campus_hub_backend/internal/repository"
	"campus_hub_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newEvaluationService(db *gorm.DB) *EvaluationService {
	return NewEvaluationService(repository.NewEvaluationRepository(db), repository.NewTeamRepository(db), db)
}

func seedTeam(t *testing.T, db *gorm.DB, courseCode, name string, studentIDs ...string) {
	t.Helper()
	team := &model.Team{CourseCode: courseCode, Name: name}
	require.NoError(t, db.Create(team).Error)
	for _, studentID := range studentIDs {
		require.NoError(t, db.Create(&model.TeamMember{
			TeamID:     team.ID,
			CourseCode: courseCode,
			StudentID:  studentID,
			Name:       "student " + studentID,
		}).Error)
	}
}

func TestSaveCriteriaRejectsSecondSave(t *testing.T) {
	db := newTestDB(t)
	svc := newEvaluationService(db)

	require.NoError(t, svc.SaveCriteria("CS105", []string{"design"}, 4))
	err := svc.SaveCriteria("CS105", []string{"other"}, 8)
	assert.ErrorIs(t, err, util.ErrAlreadyExists)

	// The original rubric survives.
	criteria, err := svc.GetCriteria("CS105")
	require.NoError(t, err)
	assert.Equal(t, []string{"design"}, []string(criteria.Criteria))
	assert.Equal(t, 4, criteria.MaxTeams)
}

func TestUpdateCriteriaRequiresExisting(t *testing.T) {
	db := newTestDB(t)
	svc := newEvaluationService(db)

	err := svc.UpdateCriteria("CS105", []string{"design"}, 4)
	assert.ErrorIs(t, err, util.ErrCriteriaNotFound)
}

func TestUpdateCriteriaOverwrites(t *testing.T) {
	db := newTestDB(t)
	svc := newEvaluationService(db)

	require.NoError(t, svc.SaveCriteria("CS105", []string{"design"}, 4))
	require.NoError(t, svc.UpdateCriteria("CS105", []string{"design", "demo"}, 6))

	criteria, err := svc.GetCriteria("CS105")
	require.NoError(t, err)
	assert.Equal(t, []string{"design", "demo"}, []string(criteria.Criteria))
	assert.Equal(t, 6, criteria.MaxTeams)
}

func TestGetCriteriaMissing(t *testing.T) {
	db := newTestDB(t)
	svc := newEvaluationService(db)

	_, err := svc.GetCriteria("CS105")
	assert.ErrorIs(t, err, util.ErrCriteriaNotFound)
}

func TestStartEvaluationNeedsTeams(t *testing.T) {
	db := newTestDB(t)
	svc := newEvaluationService(db)

	_, err := svc.StartEvaluation("CS105")
	assert.ErrorIs(t, err, util.ErrNoTeamsFound)
}

func TestStartEvaluationPanelNeverIncludesOwnTeam(t *testing.T) {
	db := newTestDB(t)
	svc := newEvaluationService(db)
	seedTeam(t, db, "CS105", "alpha", "s1", "s2")
	seedTeam(t, db, "CS105", "beta", "s3")
	seedTeam(t, db, "CS105", "gamma", "s4")
	seedTeam(t, db, "CS105", "delta", "s5")
	seedTeam(t, db, "CS105", "epsilon", "s6")

	panels, err := svc.StartEvaluation("CS105")
	require.NoError(t, err)
	require.Len(t, panels, 6)

	ownTeam := map[string]string{
		"s1": "alpha", "s2": "alpha", "s3": "beta",
		"s4": "gamma", "s5": "delta", "s6": "epsilon",
	}
	for studentID, panel := range panels {
		// Five teams, so everyone reviews the maximum of three others.
		assert.Len(t, panel, 3, "student %s", studentID)
		seen := map[string]bool{}
		for _, teamName := range panel {
			assert.NotEqual(t, ownTeam[studentID], teamName)
			assert.False(t, seen[teamName], "duplicate team in panel")
			seen[teamName] = true
		}
	}
}

func TestStartEvaluationSmallCourse(t *testing.T) {
	db := newTestDB(t)
	svc := newEvaluationService(db)
	seedTeam(t, db, "CS105", "alpha", "s1")
	seedTeam(t, db, "CS105", "beta", "s2")

	panels, err := svc.StartEvaluation("CS105")
	require.NoError(t, err)
	assert.Equal(t, []string{"beta"}, panels["s1"])
	assert.Equal(t, []string{"alpha"}, panels["s2"])
}

func TestGetAssignmentEmptyPanelIsNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newEvaluationService(db)
	seedTeam(t, db, "CS105", "alpha", "s1")

	// One team means no one has anything to review; the stored empty panel
	// must not surface as a successful assignment.
	_, err := svc.StartEvaluation("CS105")
	require.NoError(t, err)

	_, err = svc.GetAssignment("CS105", "s1")
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func TestStartEvaluationReplacesPreviousRound(t *testing.T) {
	db := newTestDB(t)
	svc := newEvaluationService(db)
	seedTeam(t, db, "CS105", "alpha", "s1")
	seedTeam(t, db, "CS105", "beta", "s2")

	_, err := svc.StartEvaluation("CS105")
	require.NoError(t, err)
	_, err = svc.StartEvaluation("CS105")
	require.NoError(t, err)

	var assignments int64
	require.NoError(t, db.Model(&model.EvaluationAssignment{}).
		Where("course_code = ?", "CS105").
		Count(&assignments).Error)
	assert.EqualValues(t, 2, assignments)
}

func TestSubmitEvaluationRejectsDuplicate(t *testing.T) {
	db := newTestDB(t)
	svc := newEvaluationService(db)

	scores := map[string]int{"design": 8, "demo": 7}
	require.NoError(t, svc.SubmitEvaluation("CS105", "alpha", "s3", scores))

	err := svc.SubmitEvaluation("CS105", "alpha", "s3", map[string]int{"design": 10, "demo": 10})
	assert.ErrorIs(t, err, util.ErrDuplicateSubmission)

	// The first submission is the one that counts.
	results, err := svc.GetResults("CS105")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 15, results[0].TotalScore)
	assert.Equal(t, 1, results[0].Evaluations)
}

func TestGetResultsFoldsSubmissions(t *testing.T) {
	db := newTestDB(t)
	svc := newEvaluationService(db)

	require.NoError(t, svc.SubmitEvaluation("CS105", "alpha", "s3", map[string]int{"design": 8, "demo": 6}))
	require.NoError(t, svc.SubmitEvaluation("CS105", "alpha", "s4", map[string]int{"design": 9, "demo": 7}))
	require.NoError(t, svc.SubmitEvaluation("CS105", "beta", "s1", map[string]int{"design": 5, "demo": 5}))

	results, err := svc.GetResults("CS105")
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Sorted by total, descending.
	assert.Equal(t, "alpha", results[0].TeamName)
	assert.Equal(t, 30, results[0].TotalScore)
	assert.Equal(t, 17, results[0].CriteriaTotals["design"])
	assert.Equal(t, 13, results[0].CriteriaTotals["demo"])
	assert.Equal(t, 2, results[0].Evaluations)

	assert.Equal(t, "beta", results[1].TeamName)
	assert.Equal(t, 10, results[1].TotalScore)
}

func TestGetProgressFoldsTeamSubtotals(t *testing.T) {
	db := newTestDB(t)
	svc := newEvaluationService(db)
	seedTeam(t, db, "CS105", "alpha", "s1")
	seedTeam(t, db, "CS105", "beta", "s2")

	require.NoError(t, svc.SubmitEvaluation("CS105", "beta", "s1",
		map[string]int{"design": 4, "implementation": 5}))

	// The team fold depends on submissions only, not on assignment rows.
	progress, err := svc.GetProgress("CS105")
	require.NoError(t, err)
	require.Len(t, progress.Teams, 1)
	assert.Equal(t, "beta", progress.Teams[0].TeamName)
	assert.Equal(t, map[string]int{"design": 4, "implementation": 5},
		progress.Teams[0].CriteriaTotals)
	assert.Equal(t, 9, progress.Teams[0].TotalScore)

	require.NoError(t, svc.SubmitEvaluation("CS105", "beta", "s3",
		map[string]int{"design": 2, "implementation": 1}))
	require.NoError(t, svc.SubmitEvaluation("CS105", "alpha", "s2",
		map[string]int{"design": 10, "implementation": 10}))

	progress, err = svc.GetProgress("CS105")
	require.NoError(t, err)
	require.Len(t, progress.Teams, 2)

	// Sorted by team name.
	assert.Equal(t, "alpha", progress.Teams[0].TeamName)
	assert.Equal(t, 20, progress.Teams[0].TotalScore)
	assert.Equal(t, "beta", progress.Teams[1].TeamName)
	assert.Equal(t, map[string]int{"design": 6, "implementation": 6},
		progress.Teams[1].CriteriaTotals)
	assert.Equal(t, 12, progress.Teams[1].TotalScore)
}

func TestGetProgressSurvivesRegeneratedRound(t *testing.T) {
	db := newTestDB(t)
	svc := newEvaluationService(db)
	seedTeam(t, db, "CS105", "alpha", "s1")
	seedTeam(t, db, "CS105", "beta", "s2")

	_, err := svc.StartEvaluation("CS105")
	require.NoError(t, err)
	require.NoError(t, svc.SubmitEvaluation("CS105", "beta", "s1", map[string]int{"design": 7}))

	// Restarting the round replaces the assignments; the team subtotals
	// must still come through.
	_, err = svc.StartEvaluation("CS105")
	require.NoError(t, err)

	progress, err := svc.GetProgress("CS105")
	require.NoError(t, err)
	require.Len(t, progress.Teams, 1)
	assert.Equal(t, "beta", progress.Teams[0].TeamName)
	assert.Equal(t, 7, progress.Teams[0].TotalScore)
}

func TestGetProgressTracksEvaluatorCompletion(t *testing.T) {
	db := newTestDB(t)
	svc := newEvaluationService(db)
	seedTeam(t, db, "CS105", "alpha", "s1")
	seedTeam(t, db, "CS105", "beta", "s2")

	_, err := svc.StartEvaluation("CS105")
	require.NoError(t, err)

	require.NoError(t, svc.SubmitEvaluation("CS105", "beta", "s1", map[string]int{"design": 7}))

	progress, err := svc.GetProgress("CS105")
	require.NoError(t, err)
	require.Len(t, progress.Evaluators, 2)

	byStudent := map[string]EvaluatorProgress{}
	for _, entry := range progress.Evaluators {
		byStudent[entry.StudentID] = entry
	}
	assert.True(t, byStudent["s1"].Done)
	assert.Equal(t, []string{"beta"}, byStudent["s1"].Completed)
	assert.False(t, byStudent["s2"].Done)
	assert.Empty(t, byStudent["s2"].Completed)
}
