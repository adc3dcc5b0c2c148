package service

import (
	"testing"

	"campus_hub_backend/internal/repository"
	"campus_hub_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCourseService(db *gorm.DB) *CourseService {
	return NewCourseService(repository.NewCourseRepository(db), repository.NewStudentRepository(db), db)
}

func TestSaveCoursesRejectsDuplicateCodes(t *testing.T) {
	db := newTestDB(t)
	svc := newCourseService(db)

	require.NoError(t, svc.SaveCourses([]CourseInput{
		{Name: "Software Engineering", ProfessorID: "P100", Code: "CS105"},
	}))

	err := svc.SaveCourses([]CourseInput{
		{Name: "Networks", ProfessorID: "P200", Code: "CS201"},
		{Name: "Software Engineering II", ProfessorID: "P100", Code: "CS105"},
	})
	assert.ErrorIs(t, err, util.ErrAlreadyExists)
	assert.Contains(t, err.Error(), "CS105")

	// The rejected batch must not be half-applied.
	courses, err := svc.GetCourses()
	require.NoError(t, err)
	assert.Len(t, courses, 1)
}

func TestSaveStudentsReportsUpserts(t *testing.T) {
	db := newTestDB(t)
	svc := newCourseService(db)

	report, err := svc.SaveStudents([]StudentRow{
		{Name: "Mina", StudentID: "20250001", Department: "CS", CourseCode: "CS105"},
		{Name: "Jun", StudentID: "20250002", Department: "CS", CourseCode: "CS105"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, report.New)
	assert.Equal(t, 0, report.Duplicates)

	// Re-uploading the roster with one changed profile and one new course.
	report, err = svc.SaveStudents([]StudentRow{
		{Name: "Mina Kim", StudentID: "20250001", Department: "CS", CourseCode: "CS105"},
		{Name: "Jun", StudentID: "20250002", Department: "CS", CourseCode: "CS201"},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, report.New)
	assert.Equal(t, 1, report.Updated)
	assert.Equal(t, 1, report.Duplicates)

	students, err := svc.GetStudents("CS105")
	require.NoError(t, err)
	require.Len(t, students, 2)

	courses, err := svc.StudentCourses("20250002")
	require.NoError(t, err)
	// CS201 has no course record yet, so only enrollments with a course
	// resolve.
	assert.Empty(t, courses)
}

func TestRemoveStudentsFromCourse(t *testing.T) {
	db := newTestDB(t)
	svc := newCourseService(db)

	_, err := svc.SaveStudents([]StudentRow{
		{Name: "Mina", StudentID: "20250001", Department: "CS", CourseCode: "CS105"},
	})
	require.NoError(t, err)

	removed, err := svc.RemoveStudents("CS105", []string{"20250001"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)

	_, err = svc.RemoveStudents("CS105", []string{"20250001"})
	assert.ErrorIs(t, err, util.ErrStudentNotFound)

	// Dropping and re-taking the course must work.
	report, err := svc.SaveStudents([]StudentRow{
		{Name: "Mina", StudentID: "20250001", Department: "CS", CourseCode: "CS105"},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, report.Duplicates)
}

func TestDeleteCourses(t *testing.T) {
	db := newTestDB(t)
	svc := newCourseService(db)

	require.NoError(t, svc.SaveCourses([]CourseInput{
		{Name: "Software Engineering", ProfessorID: "P100", Code: "CS105"},
	}))

	deleted, err := svc.DeleteCourses([]string{"CS105"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)

	_, err = svc.DeleteCourses([]string{"CS105"})
	assert.ErrorIs(t, err, util.ErrNotFound)
}
