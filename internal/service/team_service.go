package service

import (
	"errors"
	"fmt"
	"time"

	"campus_hub_backend/internal/model"
	"campus_hub_backend/internal/repository"
	"campus_hub_backend/internal/util"
	"campus_hub_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type TeamService struct {
	TeamRepo *repository.TeamRepository
	UserRepo *repository.UserRepository
	DB       *gorm.DB
}

func NewTeamService(teamRepo *repository.TeamRepository, userRepo *repository.UserRepository, db *gorm.DB) *TeamService {
	return &TeamService{TeamRepo: teamRepo, UserRepo: userRepo, DB: db}
}

// RegisterStudent places the student on the named team within one
// transaction. Touching the course's criteria row first serializes
// concurrent registrations for the same course, so the team-cap check and
// the membership move cannot interleave. Registering into the team the
// student is already on is a no-op success.
func (s *TeamService) RegisterStudent(courseCode, teamName, githubID string) (*model.Team, error) {
	user, err := s.UserRepo.FindByGithubID(githubID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrStudentNotFound
		}
		return nil, err
	}

	var team model.Team
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		// Per-course write lock: the criteria row doubles as the
		// registration mutex.
		locked := tx.Model(&model.EvaluationCriteria{}).
			Where("course_code = ?", courseCode).
			Update("updated_at", time.Now())
		if locked.Error != nil {
			return locked.Error
		}
		if locked.RowsAffected == 0 {
			return util.ErrNotConfigured
		}

		var criteria model.EvaluationCriteria
		if err := tx.Where("course_code = ?", courseCode).First(&criteria).Error; err != nil {
			return err
		}

		// Pull the student out of any team they already belong to in
		// this course.
		var existing model.TeamMember
		err := tx.Where("course_code = ? AND student_id = ?", courseCode, user.StudentID).
			First(&existing).Error
		switch {
		case err == nil:
			var current model.Team
			if err := tx.Where("id = ?", existing.TeamID).First(&current).Error; err != nil {
				return err
			}
			if current.Name == teamName {
				team = current
				return nil
			}
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			// first registration in this course
		default:
			return err
		}

		err = tx.Where("course_code = ? AND name = ?", courseCode, teamName).First(&team).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			var teamCount int64
			if err := tx.Model(&model.Team{}).Where("course_code = ?", courseCode).Count(&teamCount).Error; err != nil {
				return err
			}
			if teamCount >= int64(criteria.MaxTeams) {
				return fmt.Errorf("%w: course %s allows at most %d teams",
					util.ErrTeamCapacityExceeded, courseCode, criteria.MaxTeams)
			}
			team = model.Team{CourseCode: courseCode, Name: teamName}
			if err := tx.Create(&team).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		member := model.TeamMember{
			TeamID:     team.ID,
			CourseCode: courseCode,
			StudentID:  user.StudentID,
			Name:       user.Name,
		}
		return tx.Create(&member).Error
	})
	if err != nil {
		return nil, err
	}

	logger.Log.Info("team registration",
		zap.String("course", courseCode),
		zap.String("team", teamName),
		zap.String("student", user.StudentID))

	return s.TeamRepo.FindTeam(courseCode, teamName)
}

// GetTeams lists every team of the course with its current roster.
func (s *TeamService) GetTeams(courseCode string) ([]model.Team, error) {
	teams, err := s.TeamRepo.FindByCourse(courseCode)
	if err != nil {
		return nil, err
	}
	if len(teams) == 0 {
		return nil, util.ErrNoTeamsFound
	}
	return teams, nil
}
