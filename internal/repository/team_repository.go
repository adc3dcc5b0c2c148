package repository

import (
	"campus_hub_backend/internal/model"

	"gorm.io/gorm"
)

type TeamRepository struct {
	DB *gorm.DB
}

func NewTeamRepository(db *gorm.DB) *TeamRepository {
	return &TeamRepository{DB: db}
}

func (r *TeamRepository) FindByCourse(courseCode string) ([]model.Team, error) {
	var teams []model.Team
	err := r.DB.Preload("Members").
		Where("course_code = ?", courseCode).
		Order("id").
		Find(&teams).Error
	return teams, err
}

func (r *TeamRepository) FindTeam(courseCode, teamName string) (*model.Team, error) {
	var team model.Team
	err := r.DB.Preload("Members").
		Where("course_code = ? AND name = ?", courseCode, teamName).
		First(&team).Error
	return &team, err
}
