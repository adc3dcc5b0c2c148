package repository

import (
	"campus_hub_backend/internal/model"

	"gorm.io/gorm"
)

type ProblemRepository struct {
	DB *gorm.DB
}

func NewProblemRepository(db *gorm.DB) *ProblemRepository {
	return &ProblemRepository{DB: db}
}

func (r *ProblemRepository) Create(problem *model.Problem) error {
	return r.DB.Create(problem).Error
}

func (r *ProblemRepository) FindAll() ([]model.Problem, error) {
	var problems []model.Problem
	err := r.DB.Find(&problems).Error
	return problems, err
}

func (r *ProblemRepository) FindByID(id string) (*model.Problem, error) {
	var problem model.Problem
	err := r.DB.Where("id = ?", id).First(&problem).Error
	return &problem, err
}

func (r *ProblemRepository) CreateSubmission(submission *model.Submission) error {
	return r.DB.Create(submission).Error
}

func (r *ProblemRepository) FindSubmission(id string) (*model.Submission, error) {
	var submission model.Submission
	err := r.DB.Where("id = ?", id).First(&submission).Error
	return &submission, err
}
