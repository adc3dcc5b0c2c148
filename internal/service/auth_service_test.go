package service

import (
	"testing"
	"time"

	"campus_hub_backend/internal/config"
	"campus_hub_backend/internal/model"
	"campus_hub_backend/internal/repository"
	"campus_hub_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:     "test-secret-test-secret-test-secret",
			ExpireTime: time.Hour,
		},
	}
}

func newAuthService(db *gorm.DB) *AuthService {
	return NewAuthService(
		repository.NewUserRepository(db),
		repository.NewProfessorRepository(db),
		repository.NewCourseRepository(db),
		nil,
		testConfig(),
	)
}

func TestRegisterProfessorRequiresCourse(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	err := svc.RegisterProfessor("Dr. Park", "park@school.edu", "P100", "secret-pass")
	assert.ErrorIs(t, err, util.ErrProfessorNotFound)
}

func TestProfessorLoginRoundTrip(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)
	require.NoError(t, db.Create(&model.Course{
		Name: "Software Engineering", ProfessorID: "P100", Code: "CS105",
	}).Error)

	require.NoError(t, svc.RegisterProfessor("Dr. Park", "park@school.edu", "P100", "secret-pass"))

	token, professor, err := svc.LoginProfessor("park@school.edu", "secret-pass")
	require.NoError(t, err)
	assert.Equal(t, "Dr. Park", professor.Name)

	claims, err := util.ParseJWT(token, testConfig().JWT.Secret)
	require.NoError(t, err)
	assert.Equal(t, model.RoleProfessor, claims.Role)
	assert.Equal(t, "P100", claims.StudentID)
}

func TestProfessorLoginRejectsBadPassword(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)
	require.NoError(t, db.Create(&model.Course{
		Name: "Software Engineering", ProfessorID: "P100", Code: "CS105",
	}).Error)
	require.NoError(t, svc.RegisterProfessor("Dr. Park", "park@school.edu", "P100", "secret-pass"))

	_, _, err := svc.LoginProfessor("park@school.edu", "wrong-pass")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)

	_, _, err = svc.LoginProfessor("nobody@school.edu", "secret-pass")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
}

func TestRegisterProfessorRejectsDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)
	require.NoError(t, db.Create(&model.Course{
		Name: "Software Engineering", ProfessorID: "P100", Code: "CS105",
	}).Error)

	require.NoError(t, svc.RegisterProfessor("Dr. Park", "park@school.edu", "P100", "secret-pass"))
	err := svc.RegisterProfessor("Dr. Park", "park@school.edu", "P100", "other-pass")
	assert.ErrorIs(t, err, util.ErrAlreadyExists)
}
