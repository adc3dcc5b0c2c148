package service

import (
	"errors"
	"fmt"
	"strings"

	"campus_hub_backend/internal/model"
	"campus_hub_backend/internal/repository"
	"campus_hub_backend/internal/util"
	"campus_hub_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CourseService struct {
	CourseRepo  *repository.CourseRepository
	StudentRepo *repository.StudentRepository
	DB          *gorm.DB
}

func NewCourseService(courseRepo *repository.CourseRepository, studentRepo *repository.StudentRepository, db *gorm.DB) *CourseService {
	return &CourseService{CourseRepo: courseRepo, StudentRepo: studentRepo, DB: db}
}

type CourseInput struct {
	Name        string `json:"name" binding:"required"`
	Professor   string `json:"professor"`
	ProfessorID string `json:"professor_id" binding:"required"`
	Day         string `json:"day"`
	Time        string `json:"time"`
	Code        string `json:"code" binding:"required"`
}

// SaveCourses inserts a batch of courses. The whole batch is rejected when
// any code already exists, naming the offenders.
func (s *CourseService) SaveCourses(inputs []CourseInput) error {
	codes := make([]string, 0, len(inputs))
	for _, input := range inputs {
		codes = append(codes, input.Code)
	}
	existing, err := s.CourseRepo.ExistingCodes(codes)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return fmt.Errorf("%w: duplicate course codes: %s",
			util.ErrAlreadyExists, strings.Join(existing, ", "))
	}

	courses := make([]model.Course, 0, len(inputs))
	for _, input := range inputs {
		courses = append(courses, model.Course{
			Name:        input.Name,
			Professor:   input.Professor,
			ProfessorID: input.ProfessorID,
			Day:         input.Day,
			Time:        input.Time,
			Code:        input.Code,
		})
	}
	if err := s.CourseRepo.CreateBatch(courses); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: duplicate course codes", util.ErrAlreadyExists)
		}
		return err
	}
	logger.Log.Info("courses saved", zap.Int("count", len(courses)))
	return nil
}

func (s *CourseService) GetCourses() ([]model.Course, error) {
	return s.CourseRepo.FindAll()
}

func (s *CourseService) GetCourse(code string) (*model.Course, error) {
	course, err := s.CourseRepo.FindByCode(code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrNotFound
	}
	return course, err
}

func (s *CourseService) DeleteCourses(codes []string) (int64, error) {
	deleted, err := s.CourseRepo.DeleteByCodes(codes)
	if err != nil {
		return 0, err
	}
	if deleted == 0 {
		return 0, util.ErrNotFound
	}
	return deleted, nil
}

type StudentRow struct {
	Name       string `json:"name" binding:"required"`
	StudentID  string `json:"student_id" binding:"required"`
	Department string `json:"department"`
	CourseCode string `json:"course_code" binding:"required"`
}

// RosterReport summarizes one roster upload.
type RosterReport struct {
	New        int `json:"new_students"`
	Updated    int `json:"updated_students"`
	Duplicates int `json:"duplicate_enrollments"`
}

// SaveStudents upserts roster rows: unknown students are created, known
// ones have their profile refreshed, and enrollments already on file are
// counted instead of re-inserted.
func (s *CourseService) SaveStudents(rows []StudentRow) (*RosterReport, error) {
	report := &RosterReport{}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		for _, row := range rows {
			var student model.Student
			err := tx.Where("student_id = ?", row.StudentID).First(&student).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				student = model.Student{
					Name:       row.Name,
					StudentID:  row.StudentID,
					Department: row.Department,
				}
				if err := tx.Create(&student).Error; err != nil {
					return err
				}
				report.New++
			case err != nil:
				return err
			default:
				if student.Name != row.Name || student.Department != row.Department {
					if err := tx.Model(&student).Updates(map[string]interface{}{
						"name":       row.Name,
						"department": row.Department,
					}).Error; err != nil {
						return err
					}
					report.Updated++
				}
			}

			enrollment := model.StudentCourse{
				StudentID:  row.StudentID,
				CourseCode: row.CourseCode,
			}
			if err := tx.Create(&enrollment).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					report.Duplicates++
					continue
				}
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// GetStudents lists a course roster, or every student when no course is
// given.
func (s *CourseService) GetStudents(courseCode string) ([]model.Student, error) {
	if courseCode == "" {
		return s.StudentRepo.FindAll()
	}
	return s.StudentRepo.FindByCourseCode(courseCode)
}

// RemoveStudents drops the named students from one course roster.
func (s *CourseService) RemoveStudents(courseCode string, studentIDs []string) (int64, error) {
	result := s.DB.Where("course_code = ? AND student_id IN ?", courseCode, studentIDs).
		Delete(&model.StudentCourse{})
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, util.ErrStudentNotFound
	}
	return result.RowsAffected, nil
}

// StudentCourses returns the full course records a student is enrolled in.
func (s *CourseService) StudentCourses(studentID string) ([]model.Course, error) {
	codes, err := s.StudentRepo.CourseCodes(studentID)
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
