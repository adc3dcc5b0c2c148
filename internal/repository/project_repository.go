package repository

import (
	"campus_hub_backend/internal/model"

	"gorm.io/gorm"
)

type ProjectRepository struct {
	DB *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{DB: db}
}

func (r *ProjectRepository) Create(project *model.Project) error {
	return r.DB.Create(project).Error
}

func (r *ProjectRepository) FindAll(limit int) ([]model.Project, error) {
	var projects []model.Project
	err := r.DB.Order("created_at DESC").Limit(limit).Find(&projects).Error
	return projects, err
}

func (r *ProjectRepository) FindByID(id string) (*model.Project, error) {
	var project model.Project
	err := r.DB.Where("id = ?", id).First(&project).Error
	return &project, err
}

func (r *ProjectRepository) IncrementViews(id string) error {
	return r.DB.Model(&model.Project{}).
		Where("id = ?", id).
		Update("views", gorm.Expr("views + 1")).Error
}

func (r *ProjectRepository) Update(project *model.Project) error {
	return r.DB.Save(project).Error
}

func (r *ProjectRepository) Delete(id string) (int64, error) {
	result := r.DB.Where("id = ?", id).Delete(&model.Project{})
	return result.RowsAffected, result.Error
}
