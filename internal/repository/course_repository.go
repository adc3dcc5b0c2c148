package repository

import (
	"campus_hub_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) FindByCode(code string) (*model.Course, error) {
	var course model.Course
	err := r.DB.Where("code = ?", code).First(&course).Error
	return &course, err
}

func (r *CourseRepository) FindAll() ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) FindByProfessorID(professorID string) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Where("professor_id = ?", professorID).Find(&courses).Error
	return courses, err
}

// ExistingCodes returns which of the given codes are already taken.
func (r *CourseRepository) ExistingCodes(codes []string) ([]string, error) {
	var existing []string
	err := r.DB.Model(&model.Course{}).
		Where("code IN ?", codes).
		Pluck("code", &existing).Error
	return existing, err
}

func (r *CourseRepository) CreateBatch(courses []model.Course) error {
	return r.DB.Create(&courses).Error
}

func (r *CourseRepository) DeleteByCodes(codes []string) (int64, error) {
	result := r.DB.Where("code IN ?", codes).Delete(&model.Course{})
	return result.RowsAffected, result.Error
}

type StudentRepository struct {
	DB *gorm.DB
}

func NewStudentRepository(db *gorm.DB) *StudentRepository {
	return &StudentRepository{DB: db}
}

func (r *StudentRepository) Create(student *model.Student) error {
	return r.DB.Create(student).Error
}

func (r *StudentRepository) FindByStudentID(studentID string) (*model.Student, error) {
	var student model.Student
	err := r.DB.Where("student_id = ?", studentID).First(&student).Error
	return &student, err
}

func (r *StudentRepository) FindByCourseCode(courseCode string) ([]model.Student, error) {
	var students []model.Student
	err := r.DB.
		Joins("JOIN student_courses ON student_courses.student_id = students.student_id").
		Where("student_courses.course_code = ?", courseCode).
		Find(&students).Error
	return students, err
}

func (r *StudentRepository) FindAll() ([]model.Student, error) {
	var students []model.Student
	err := r.DB.Find(&students).Error
	return students, err
}

func (r *StudentRepository) CourseCodes(studentID string) ([]string, error) {
	var codes []string
	err := r.DB.Model(&model.StudentCourse{}).
		Where("student_id = ?", studentID).
		Pluck("course_code", &codes).Error
	return codes, err
}

func (r *StudentRepository) HasCourse(studentID, courseCode string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.StudentCourse{}).
		Where("student_id = ? AND course_code = ?", studentID, courseCode).
		Count(&count).Error
	return count > 0, err
}

func (r *StudentRepository) AddCourse(studentID, courseCode string) error {
	return r.DB.Create(&model.StudentCourse{StudentID: studentID, CourseCode: courseCode}).Error
}

func (r *StudentRepository) RemoveCourse(studentID, courseCode string) error {
	return r.DB.Where("student_id = ? AND course_code = ?", studentID, courseCode).
		Delete(&model.StudentCourse{}).Error
}
