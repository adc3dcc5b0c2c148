package service

import (
	"testing"

	"campus_hub_backend/internal/model"
	"campus_hub_backend/internal/repository"
	"campus_hub_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func newTeamService(db *gorm.DB) *TeamService {
	return NewTeamService(repository.NewTeamRepository(db), repository.NewUserRepository(db), db)
}

func seedCriteria(t *testing.T, db *gorm.DB, courseCode string, maxTeams int) {
	t.Helper()
	require.NoError(t, db.Create(&model.EvaluationCriteria{
		CourseCode: courseCode,
		Criteria:   datatypes.NewJSONSlice([]string{"design", "implementation"}),
		MaxTeams:   maxTeams,
	}).Error)
}

func TestRegisterStudentRequiresCriteria(t *testing.T) {
	db := newTestDB(t)
	svc := newTeamService(db)
	seedUser(t, db, "Mina", "20250001", "mina-dev", "1001")

	_, err := svc.RegisterStudent("CS105", "alpha", "1001")
	assert.ErrorIs(t, err, util.ErrNotConfigured)
}

func TestRegisterStudentUnknownStudent(t *testing.T) {
	db := newTestDB(t)
	svc := newTeamService(db)
	seedCriteria(t, db, "CS105", 4)

	_, err := svc.RegisterStudent("CS105", "alpha", "9999")
	assert.ErrorIs(t, err, util.ErrStudentNotFound)
}

func TestRegisterStudentCreatesTeamAndMember(t *testing.T) {
	db := newTestDB(t)
	svc := newTeamService(db)
	seedCriteria(t, db, "CS105", 4)
	seedUser(t, db, "Mina", "20250001", "mina-dev", "1001")

	team, err := svc.RegisterStudent("CS105", "alpha", "1001")
	require.NoError(t, err)
	require.Len(t, team.Members, 1)
	assert.Equal(t, "20250001", team.Members[0].StudentID)
	assert.Equal(t, "Mina", team.Members[0].Name)
}

func TestRegisterStudentTeamCap(t *testing.T) {
	db := newTestDB(t)
	svc := newTeamService(db)
	seedCriteria(t, db, "CS105", 2)
	seedUser(t, db, "Mina", "20250001", "mina-dev", "1001")
	seedUser(t, db, "Jun", "20250002", "jun-dev", "1002")
	seedUser(t, db, "Hana", "20250003", "hana-dev", "1003")

	_, err := svc.RegisterStudent("CS105", "alpha", "1001")
	require.NoError(t, err)
	_, err = svc.RegisterStudent("CS105", "beta", "1002")
	require.NoError(t, err)

	// Third distinct team exceeds the cap.
	_, err = svc.RegisterStudent("CS105", "gamma", "1003")
	assert.ErrorIs(t, err, util.ErrTeamCapacityExceeded)

	// Joining an existing team is still allowed at the cap.
	team, err := svc.RegisterStudent("CS105", "alpha", "1003")
	require.NoError(t, err)
	assert.Len(t, team.Members, 2)
}

func TestRegisterStudentMovesBetweenTeams(t *testing.T) {
	db := newTestDB(t)
	svc := newTeamService(db)
	seedCriteria(t, db, "CS105", 4)
	seedUser(t, db, "Mina", "20250001", "mina-dev", "1001")
	seedUser(t, db, "Jun", "20250002", "jun-dev", "1002")

	_, err := svc.RegisterStudent("CS105", "alpha", "1001")
	require.NoError(t, err)
	_, err = svc.RegisterStudent("CS105", "alpha", "1002")
	require.NoError(t, err)

	// Mina switches to beta; she must leave alpha.
	beta, err := svc.RegisterStudent("CS105", "beta", "1001")
	require.NoError(t, err)
	require.Len(t, beta.Members, 1)
	assert.Equal(t, "20250001", beta.Members[0].StudentID)

	alpha, err := svc.TeamRepo.FindTeam("CS105", "alpha")
	require.NoError(t, err)
	require.Len(t, alpha.Members, 1)
	assert.Equal(t, "20250002", alpha.Members[0].StudentID)

	var memberships int64
	require.NoError(t, db.Model(&model.TeamMember{}).
		Where("course_code = ? AND student_id = ?", "CS105", "20250001").
		Count(&memberships).Error)
	assert.EqualValues(t, 1, memberships)
}

func TestRegisterStudentSameTeamIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := newTeamService(db)
	seedCriteria(t, db, "CS105", 4)
	seedUser(t, db, "Mina", "20250001", "mina-dev", "1001")

	_, err := svc.RegisterStudent("CS105", "alpha", "1001")
	require.NoError(t, err)
	team, err := svc.RegisterStudent("CS105", "alpha", "1001")
	require.NoError(t, err)
	assert.Len(t, team.Members, 1)
}

func TestRegisterStudentScopedByCourse(t *testing.T) {
	db := newTestDB(t)
	svc := newTeamService(db)
	seedCriteria(t, db, "CS105", 4)
	seedCriteria(t, db, "CS201", 4)
	seedUser(t, db, "Mina", "20250001", "mina-dev", "1001")

	_, err := svc.RegisterStudent("CS105", "alpha", "1001")
	require.NoError(t, err)
	// Same student may hold a team in a different course.
	_, err = svc.RegisterStudent("CS201", "alpha", "1001")
	require.NoError(t, err)

	var memberships int64
	require.NoError(t, db.Model(&model.TeamMember{}).
		Where("student_id = ?", "20250001").
		Count(&memberships).Error)
	assert.EqualValues(t, 2, memberships)
}

func TestGetTeamsEmptyCourse(t *testing.T) {
	db := newTestDB(t)
	svc := newTeamService(db)

	_, err := svc.GetTeams("CS105")
	assert.ErrorIs(t, err, util.ErrNoTeamsFound)
}
