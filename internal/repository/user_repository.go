package repository

import (
	"campus_hub_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByGithubID(githubID string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("github_id = ?", githubID).First(&user).Error
	return &user, err
}

func (r *UserRepository) FindByGithubUsername(username string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("github_username = ?", username).First(&user).Error
	return &user, err
}

func (r *UserRepository) FindByStudentID(studentID string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("student_id = ?", studentID).First(&user).Error
	return &user, err
}

// ExistsByGithubOrStudentID backs the duplicate check on signup.
func (r *UserRepository) ExistsByGithubOrStudentID(githubID, studentID string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.User{}).
		Where("github_id = ? OR student_id = ?", githubID, studentID).
		Count(&count).Error
	return count > 0, err
}

type ProfessorRepository struct {
	DB *gorm.DB
}

func NewProfessorRepository(db *gorm.DB) *ProfessorRepository {
	return &ProfessorRepository{DB: db}
}

func (r *ProfessorRepository) Create(professor *model.Professor) error {
	return r.DB.Create(professor).Error
}

func (r *ProfessorRepository) FindByEmail(email string) (*model.Professor, error) {
	var professor model.Professor
	err := r.DB.Where("email = ?", email).First(&professor).Error
	return &professor, err
}

func (r *ProfessorRepository) FindByProfessorID(professorID string) (*model.Professor, error) {
	var professor model.Professor
	err := r.DB.Where("professor_id = ?", professorID).First(&professor).Error
	return &professor, err
}
