package service

import (
	"testing"

	"campus_hub_backend/internal/model"
	"campus_hub_backend/internal/repository"
	"campus_hub_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUserService(db *gorm.DB) *UserService {
	return NewUserService(
		repository.NewUserRepository(db),
		repository.NewCourseRepository(db),
		repository.NewStudentRepository(db),
		testConfig(),
	)
}

func signupInput(studentID, githubUsername, githubID string) *SignupInput {
	return &SignupInput{
		Name:           "Mina",
		SchoolEmail:    "mina@school.edu",
		StudentID:      studentID,
		GithubUsername: githubUsername,
		GithubID:       githubID,
	}
}

func TestCompleteSignupIssuesStudentJWT(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)

	token, user, err := svc.CompleteSignup(signupInput("20250001", "mina-dev", "1001"))
	require.NoError(t, err)
	require.NotNil(t, user)

	claims, err := util.ParseJWT(token, testConfig().JWT.Secret)
	require.NoError(t, err)
	assert.Equal(t, model.RoleStudent, claims.Role)
	assert.Equal(t, "20250001", claims.StudentID)
	assert.Equal(t, "mina-dev", claims.Subject)
}

func TestCompleteSignupRejectsDuplicates(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)

	_, _, err := svc.CompleteSignup(signupInput("20250001", "mina-dev", "1001"))
	require.NoError(t, err)

	// Same GitHub id, different student id.
	_, _, err = svc.CompleteSignup(signupInput("20250002", "mina-dev2", "1001"))
	assert.ErrorIs(t, err, util.ErrAlreadyExists)

	// Same student id, different GitHub id.
	_, _, err = svc.CompleteSignup(signupInput("20250001", "mina-dev3", "1003"))
	assert.ErrorIs(t, err, util.ErrAlreadyExists)
}

func TestUserCoursesResolvesEnrollments(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)
	courseSvc := newCourseService(db)
	seedUser(t, db, "Mina", "20250001", "mina-dev", "1001")

	require.NoError(t, courseSvc.SaveCourses([]CourseInput{
		{Name: "Software Engineering", ProfessorID: "P100", Code: "CS105"},
		{Name: "Networks", ProfessorID: "P200", Code: "CS201"},
	}))
	_, err := courseSvc.SaveStudents([]StudentRow{
		{Name: "Mina", StudentID: "20250001", Department: "CS", CourseCode: "CS105"},
	})
	require.NoError(t, err)

	courses, err := svc.UserCourses(&util.Claims{
		Subject:   "mina-dev",
		StudentID: "20250001",
		Role:      model.RoleStudent,
	})
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "CS105", courses[0].Code)

	taught, err := svc.UserCourses(&util.Claims{
		StudentID: "P100",
		Role:      model.RoleProfessor,
	})
	require.NoError(t, err)
	require.Len(t, taught, 1)
	assert.Equal(t, "Software Engineering", taught[0].Name)
}

func TestGetByGithubUsernameMissing(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)

	_, err := svc.GetByGithubUsername("ghost")
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}
