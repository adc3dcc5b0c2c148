package model

import "time"

// Course is identified by its unique code and owned by one professor.
type Course struct {
	BaseModel
	Name        string `gorm:"size:100;not null" json:"name"`
	Professor   string `gorm:"size:100" json:"professor"`
	ProfessorID string `gorm:"size:32;index" json:"professor_id"`
	Day         string `gorm:"size:20" json:"day"`
	Time        string `gorm:"size:20" json:"time"`
	Code        string `gorm:"size:32;uniqueIndex;not null" json:"code"`
}

func (Course) TableName() string {
	return "courses"
}

// Student is the enrollment record; one row per student, with course
// membership in the student_courses join table.
type Student struct {
	BaseModel
	Name       string          `gorm:"size:100;not null" json:"name"`
	StudentID  string          `gorm:"size:32;uniqueIndex;not null" json:"student_id"`
	Department string          `gorm:"size:100" json:"department"`
	Courses    []StudentCourse `gorm:"foreignKey:StudentID;references:StudentID" json:"-"`
}

func (Student) TableName() string {
	return "students"
}

// StudentCourse is one element of a student's course_codes set. The unique
// index makes re-enrollment into a held course a detectable duplicate; rows
// are hard-deleted so dropping and re-taking a course works.
type StudentCourse struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	StudentID  string `gorm:"size:32;uniqueIndex:idx_student_course;not null" json:"student_id"`
	CourseCode string `gorm:"size:32;uniqueIndex:idx_student_course;not null" json:"course_code"`
}

func (StudentCourse) TableName() string {
	return "student_courses"
}
