package repository

import (
	"campus_hub_backend/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type EvaluationRepository struct {
	DB *gorm.DB
}

func NewEvaluationRepository(db *gorm.DB) *EvaluationRepository {
	return &EvaluationRepository{DB: db}
}

func (r *EvaluationRepository) FindCriteria(courseCode string) (*model.EvaluationCriteria, error) {
	var criteria model.EvaluationCriteria
	err := r.DB.Where("course_code = ?", courseCode).First(&criteria).Error
	return &criteria, err
}

func (r *EvaluationRepository) CreateCriteria(criteria *model.EvaluationCriteria) error {
	return r.DB.Create(criteria).Error
}

// UpdateCriteria overwrites an existing rubric and reports how many rows
// matched, so the caller can distinguish a missing course from a no-op.
func (r *EvaluationRepository) UpdateCriteria(courseCode string, criteria []string, maxTeams int) (int64, error) {
	result := r.DB.Model(&model.EvaluationCriteria{}).
		Where("course_code = ?", courseCode).
		Updates(map[string]interface{}{
			"criteria":  datatypes.NewJSONSlice(criteria),
			"max_teams": maxTeams,
		})
	return result.RowsAffected, result.Error
}

func (r *EvaluationRepository) FindAssignment(courseCode, studentID string) (*model.EvaluationAssignment, error) {
	var assignment model.EvaluationAssignment
	err := r.DB.Where("course_code = ? AND student_id = ?", courseCode, studentID).
		First(&assignment).Error
	return &assignment, err
}

func (r *EvaluationRepository) FindAssignmentsByCourse(courseCode string) ([]model.EvaluationAssignment, error) {
	var assignments []model.EvaluationAssignment
	err := r.DB.Where("course_code = ?", courseCode).Find(&assignments).Error
	return assignments, err
}

func (r *EvaluationRepository) FindResult(courseCode, teamName, evaluatorID string) (*model.EvaluationResult, error) {
	var result model.EvaluationResult
	err := r.DB.Where("course_code = ? AND team_name = ? AND evaluator_id = ?",
		courseCode, teamName, evaluatorID).
		First(&result).Error
	return &result, err
}

func (r *EvaluationRepository) CreateResult(result *model.EvaluationResult) error {
	return r.DB.Create(result).Error
}

func (r *EvaluationRepository) FindResultsByCourse(courseCode string) ([]model.EvaluationResult, error) {
	var results []model.EvaluationResult
	err := r.DB.Where("course_code = ?", courseCode).
		Order("team_name").
		Find(&results).Error
	return results, err
}
