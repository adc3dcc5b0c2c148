package service

import (
	"errors"
	"fmt"

	"campus_hub_backend/internal/config"
	"campus_hub_backend/internal/model"
	"campus_hub_backend/internal/repository"
	"campus_hub_backend/internal/util"

	"gorm.io/gorm"
)

type UserService struct {
	UserRepo    *repository.UserRepository
	CourseRepo  *repository.CourseRepository
	StudentRepo *repository.StudentRepository
	Config      *config.Config
}

func NewUserService(userRepo *repository.UserRepository, courseRepo *repository.CourseRepository, studentRepo *repository.StudentRepository, cfg *config.Config) *UserService {
	return &UserService{
		UserRepo:    userRepo,
		CourseRepo:  courseRepo,
		StudentRepo: studentRepo,
		Config:      cfg,
	}
}

// SignupInput carries the extra profile fields collected after the first
// GitHub login.
type SignupInput struct {
	Name           string `json:"name" binding:"required"`
	SchoolEmail    string `json:"schoolEmail" binding:"required,email"`
	StudentID      string `json:"studentId" binding:"required"`
	Age            int    `json:"age"`
	Contact        string `json:"contact"`
	GithubUsername string `json:"githubUsername" binding:"required"`
	GithubName     string `json:"githubName"`
	GithubID       string `json:"githubId" binding:"required"`
}

// CompleteSignup stores the profile and returns a fresh student JWT so the
// browser lands logged in.
func (s *UserService) CompleteSignup(input *SignupInput) (string, *model.User, error) {
	exists, err := s.UserRepo.ExistsByGithubOrStudentID(input.GithubID, input.StudentID)
	if err != nil {
		return "", nil, err
	}
	if exists {
		return "", nil, fmt.Errorf("%w: github id or student id already registered", util.ErrAlreadyExists)
	}

	user := &model.User{
		Name:           input.Name,
		SchoolEmail:    input.SchoolEmail,
		StudentID:      input.StudentID,
		Age:            input.Age,
		Contact:        input.Contact,
		GithubUsername: input.GithubUsername,
		GithubName:     input.GithubName,
		GithubID:       input.GithubID,
	}
	if err := s.UserRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", nil, fmt.Errorf("%w: github id or student id already registered", util.ErrAlreadyExists)
		}
		return "", nil, err
	}

	token, err := util.GenerateStudentJWT(user, s.Config.JWT.Secret, s.Config.JWT.ExpireTime)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// UserSummary is the public directory view of one user.
type UserSummary struct {
	Name      string `json:"name"`
	StudentID string `json:"studentId"`
	GithubID  string `json:"githubId"`
}

func (s *UserService) GetByGithubUsername(username string) (*UserSummary, error) {
	user, err := s.UserRepo.FindByGithubUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return &UserSummary{
		Name:      user.Name,
		StudentID: user.StudentID,
		GithubID:  user.GithubID,
	}, nil
}

// UserCourses resolves the caller's course list: professors see the courses
// they teach, students the courses they are enrolled in.
func (s *UserService) UserCourses(claims *util.Claims) ([]model.Course, error) {
	if claims.Role == model.RoleProfessor {
		return s.CourseRepo.FindByProfessorID(claims.StudentID)
	}

	user, err := s.UserRepo.FindByGithubUsername(claims.Subject)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	codes, err := s.StudentRepo.CourseCodes(user.StudentID)
	if err != nil {
		return nil, err
	}

	courses := make([]model.Course, 0, len(codes))
	for _, code := range codes {
		course, err := s.CourseRepo.FindByCode(code)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		courses = append(courses, *course)
	}
	return courses, nil
}
