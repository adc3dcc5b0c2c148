package model

import (
	"time"

	"gorm.io/datatypes"
)

// EvaluationCriteria holds the per-course rubric and the team cap consumed
// by team registration. At most one row per course code.
type EvaluationCriteria struct {
	BaseModel
	CourseCode string                      `gorm:"size:32;uniqueIndex;not null" json:"course_code"`
	Criteria   datatypes.JSONSlice[string] `json:"criteria"`
	MaxTeams   int                         `gorm:"not null" json:"max_teams"`
}

func (EvaluationCriteria) TableName() string {
	return "evaluation_criteria"
}

// EvaluationAssignment is one student's panel of teams to review within a
// course. Regenerating an evaluation round replaces all rows of the course,
// so the row has no soft delete.
type EvaluationAssignment struct {
	ID         uint                        `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt  time.Time                   `json:"createdAt"`
	UpdatedAt  time.Time                   `json:"updatedAt"`
	CourseCode string                      `gorm:"size:32;uniqueIndex:idx_course_assignee;not null" json:"course_code"`
	StudentID  string                      `gorm:"size:32;uniqueIndex:idx_course_assignee;not null" json:"studentId"`
	Teams      datatypes.JSONSlice[string] `json:"evaluations"`
}

func (EvaluationAssignment) TableName() string {
	return "evaluation_assignments"
}

// EvaluationResult is a single evaluator's submitted scores for one team.
// The unique index turns duplicate submissions into storage conflicts
// instead of silent double counting.
type EvaluationResult struct {
	ID          uint                               `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt   time.Time                          `json:"createdAt"`
	UpdatedAt   time.Time                          `json:"updatedAt"`
	CourseCode  string                             `gorm:"size:32;uniqueIndex:idx_course_team_evaluator;not null" json:"course_code"`
	TeamName    string                             `gorm:"size:100;uniqueIndex:idx_course_team_evaluator;not null" json:"team_name"`
	EvaluatorID string                             `gorm:"size:32;uniqueIndex:idx_course_team_evaluator;not null" json:"evaluator_id"`
	Scores      datatypes.JSONType[map[string]int] `json:"scores"`
}

func (EvaluationResult) TableName() string {
	return "evaluation_results"
}
