package service

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"campus_hub_backend/internal/model"
	"campus_hub_backend/internal/repository"
	"campus_hub_backend/internal/util"
	"campus_hub_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// panelSize caps how many teams one student reviews per round.
const panelSize = 3

type EvaluationService struct {
	EvalRepo *repository.EvaluationRepository
	TeamRepo *repository.TeamRepository
	DB       *gorm.DB
}

func NewEvaluationService(evalRepo *repository.EvaluationRepository, teamRepo *repository.TeamRepository, db *gorm.DB) *EvaluationService {
	return &EvaluationService{EvalRepo: evalRepo, TeamRepo: teamRepo, DB: db}
}

// SaveCriteria creates the course rubric. A second save for the same course
// is rejected; use UpdateCriteria to change an existing rubric.
func (s *EvaluationService) SaveCriteria(courseCode string, criteria []string, maxTeams int) error {
	row := &model.EvaluationCriteria{
		CourseCode: courseCode,
		Criteria:   datatypes.NewJSONSlice(criteria),
		MaxTeams:   maxTeams,
	}
	err := s.EvalRepo.CreateCriteria(row)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: criteria for course %s", util.ErrAlreadyExists, courseCode)
	}
	return err
}

// UpdateCriteria overwrites the rubric of a course that already has one.
func (s *EvaluationService) UpdateCriteria(courseCode string, criteria []string, maxTeams int) error {
	affected, err := s.EvalRepo.UpdateCriteria(courseCode, criteria, maxTeams)
	if err != nil {
		return err
	}
	if affected == 0 {
		return util.ErrCriteriaNotFound
	}
	return nil
}

func (s *EvaluationService) GetCriteria(courseCode string) (*model.EvaluationCriteria, error) {
	criteria, err := s.EvalRepo.FindCriteria(courseCode)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCriteriaNotFound
	}
	return criteria, err
}

// StartEvaluation assigns every enrolled student a random panel of other
// teams. Panel size is min(3, K-1) for K teams, so a student never reviews
// their own team and small courses still get full coverage. Re-running a
// round replaces all assignments of the course.
func (s *EvaluationService) StartEvaluation(courseCode string) (map[string][]string, error) {
	teams, err := s.TeamRepo.FindByCourse(courseCode)
	if err != nil {
		return nil, err
	}
	if len(teams) == 0 {
		return nil, util.ErrNoTeamsFound
	}

	panels := make(map[string][]string)
	var rows []model.EvaluationAssignment
	for _, team := range teams {
		others := make([]string, 0, len(teams)-1)
		for _, candidate := range teams {
			if candidate.Name != team.Name {
				others = append(others, candidate.Name)
			}
		}
		size := panelSize
		if len(others) < size {
			size = len(others)
		}
		for _, member := range team.Members {
			rand.Shuffle(len(others), func(i, j int) {
				others[i], others[j] = others[j], others[i]
			})
			panel := make([]string, size)
			copy(panel, others[:size])
			panels[member.StudentID] = panel
			rows = append(rows, model.EvaluationAssignment{
				CourseCode: courseCode,
				StudentID:  member.StudentID,
				Teams:      datatypes.NewJSONSlice(panel),
			})
		}
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("course_code = ?", courseCode).
			Delete(&model.EvaluationAssignment{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return nil, err
	}

	logger.Log.Info("evaluation round started",
		zap.String("course", courseCode),
		zap.Int("teams", len(teams)),
		zap.Int("assignments", len(rows)))
	return panels, nil
}

// GetAssignment returns the list of team names the student must review.
func (s *EvaluationService) GetAssignment(courseCode, studentID string) ([]string, error) {
	assignment, err := s.EvalRepo.FindAssignment(courseCode, studentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	// A single-team round stores an empty panel; there is nothing for the
	// student to review.
	if len(assignment.Teams) == 0 {
		return nil, util.ErrNotFound
	}
	return assignment.Teams, nil
}

// SubmitEvaluation records one evaluator's scores for one team. The unique
// index on (course, team, evaluator) makes a resubmission a conflict even
// when two copies of the request race.
func (s *EvaluationService) SubmitEvaluation(courseCode, teamName, evaluatorID string, scores map[string]int) error {
	row := &model.EvaluationResult{
		CourseCode:  courseCode,
		TeamName:    teamName,
		EvaluatorID: evaluatorID,
		Scores:      datatypes.NewJSONType(scores),
	}
	err := s.EvalRepo.CreateResult(row)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %s already evaluated team %s",
			util.ErrDuplicateSubmission, evaluatorID, teamName)
	}
	return err
}

// TeamResult is the folded score sheet of one team.
type TeamResult struct {
	TeamName       string         `json:"team_name"`
	CriteriaTotals map[string]int `json:"criteria_totals"`
	TotalScore     int            `json:"total_score"`
	Evaluations    int            `json:"evaluations"`
}

// GetResults folds the stored result rows into per-team totals at read
// time. Nothing is cached, so the sheet always reflects every submission.
func (s *EvaluationService) GetResults(courseCode string) ([]TeamResult, error) {
	rows, err := s.EvalRepo.FindResultsByCourse(courseCode)
	if err != nil {
		return nil, err
	}

	byTeam := make(map[string]*TeamResult)
	for _, row := range rows {
		result, ok := byTeam[row.TeamName]
		if !ok {
			result = &TeamResult{
				TeamName:       row.TeamName,
				CriteriaTotals: make(map[string]int),
			}
			byTeam[row.TeamName] = result
		}
		for criterion, score := range row.Scores.Data() {
			result.CriteriaTotals[criterion] += score
			result.TotalScore += score
		}
		result.Evaluations++
	}

	results := make([]TeamResult, 0, len(byTeam))
	for _, result := range byTeam {
		results = append(results, *result)
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].TotalScore != results[j].TotalScore {
			return results[i].TotalScore > results[j].TotalScore
		}
		return results[i].TeamName < results[j].TeamName
	})
	return results, nil
}

// TeamProgress is the running score sheet of one team mid-round.
type TeamProgress struct {
	TeamName       string         `json:"team_name"`
	CriteriaTotals map[string]int `json:"total_scores"`
	TotalScore     int            `json:"total_score"`
}

// EvaluatorProgress reports how far one student is through their panel.
type EvaluatorProgress struct {
	StudentID string   `json:"studentId"`
	Assigned  []string `json:"assigned"`
	Completed []string `json:"completed"`
	Done      bool     `json:"done"`
}

// CourseProgress is the state of the round from both directions.
type CourseProgress struct {
	Teams      []TeamProgress      `json:"teams"`
	Evaluators []EvaluatorProgress `json:"evaluators"`
}

// GetProgress folds the submissions received so far into per-criterion
// subtotals and a grand total per team, plus each evaluator's panel
// completion. The team fold reads the result rows only, so it survives a
// regenerated assignment round.
func (s *EvaluationService) GetProgress(courseCode string) (*CourseProgress, error) {
	results, err := s.EvalRepo.FindResultsByCourse(courseCode)
	if err != nil {
		return nil, err
	}

	byTeam := make(map[string]*TeamProgress)
	submitted := make(map[string]map[string]bool)
	for _, row := range results {
		entry, ok := byTeam[row.TeamName]
		if !ok {
			entry = &TeamProgress{
				TeamName:       row.TeamName,
				CriteriaTotals: make(map[string]int),
			}
			byTeam[row.TeamName] = entry
		}
		for criterion, score := range row.Scores.Data() {
			entry.CriteriaTotals[criterion] += score
			entry.TotalScore += score
		}
		if submitted[row.EvaluatorID] == nil {
			submitted[row.EvaluatorID] = make(map[string]bool)
		}
		submitted[row.EvaluatorID][row.TeamName] = true
	}

	teams := make([]TeamProgress, 0, len(byTeam))
	for _, entry := range byTeam {
		teams = append(teams, *entry)
	}
	sort.Slice(teams, func(i, j int) bool {
		return teams[i].TeamName < teams[j].TeamName
	})

	assignments, err := s.EvalRepo.FindAssignmentsByCourse(courseCode)
	if err != nil {
		return nil, err
	}
	evaluators := make([]EvaluatorProgress, 0, len(assignments))
	for _, assignment := range assignments {
		entry := EvaluatorProgress{
			StudentID: assignment.StudentID,
			Assigned:  assignment.Teams,
			Completed: []string{},
		}
		for _, teamName := range assignment.Teams {
			if submitted[assignment.StudentID][teamName] {
				entry.Completed = append(entry.Completed, teamName)
			}
		}
		entry.Done = len(entry.Completed) == len(entry.Assigned)
		evaluators = append(evaluators, entry)
	}
	sort.Slice(evaluators, func(i, j int) bool {
		return evaluators[i].StudentID < evaluators[j].StudentID
	})

	return &CourseProgress{Teams: teams, Evaluators: evaluators}, nil
}
