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

func newScheduleService(db *gorm.DB) *ScheduleService {
	return NewScheduleService(
		repository.NewScheduleRepository(db),
		repository.NewProfessorRepository(db),
		repository.NewCourseRepository(db),
		db,
	)
}

func seedProfessor(t *testing.T, db *gorm.DB, name, email, professorID string) {
	t.Helper()
	require.NoError(t, db.Create(&model.Professor{
		Name:        name,
		Email:       email,
		ProfessorID: professorID,
		Password:    "hashed",
	}).Error)
}

func mondayAvailability(t *testing.T, svc *ScheduleService, email string, capacity int) {
	t.Helper()
	require.NoError(t, svc.SaveAvailability(&AvailabilityInput{
		Email: email,
		WeeklySchedule: map[string]model.DaySchedule{
			"monday": {Start: "10:00", End: "12:00", Interval: 30, MaxCapacity: capacity},
		},
		UnavailableTimes: []model.TimeSlot{{Day: "monday", Time: "11:30"}},
	}))
}

func TestSaveAvailabilityUnknownProfessor(t *testing.T) {
	db := newTestDB(t)
	svc := newScheduleService(db)

	err := svc.SaveAvailability(&AvailabilityInput{
		Email:          "ghost@school.edu",
		WeeklySchedule: map[string]model.DaySchedule{},
	})
	assert.ErrorIs(t, err, util.ErrProfessorNotFound)
}

func TestSaveAvailabilityOverwrites(t *testing.T) {
	db := newTestDB(t)
	svc := newScheduleService(db)
	seedProfessor(t, db, "Dr. Park", "park@school.edu", "P100")

	mondayAvailability(t, svc, "park@school.edu", 2)
	require.NoError(t, svc.SaveAvailability(&AvailabilityInput{
		Email: "park@school.edu",
		WeeklySchedule: map[string]model.DaySchedule{
			"friday": {Start: "14:00", End: "16:00", Interval: 30, MaxCapacity: 1},
		},
	}))

	availability, err := svc.GetAvailability("P100")
	require.NoError(t, err)
	schedule := availability.WeeklySchedule.Data()
	assert.Contains(t, schedule, "friday")
	assert.NotContains(t, schedule, "monday")
}

func TestMakeReservationChecksSlot(t *testing.T) {
	db := newTestDB(t)
	svc := newScheduleService(db)
	seedProfessor(t, db, "Dr. Park", "park@school.edu", "P100")
	mondayAvailability(t, svc, "park@school.edu", 2)

	// No office hours on tuesday.
	_, err := svc.MakeReservation(&ReservationInput{
		ProfessorID: "P100", StudentName: "Mina",
		Day: "tuesday", Date: "2026-09-01", Time: "10:00",
	}, "mina-dev")
	assert.ErrorIs(t, err, util.ErrSlotInvalid)

	// Blocked slot.
	_, err = svc.MakeReservation(&ReservationInput{
		ProfessorID: "P100", StudentName: "Mina",
		Day: "monday", Date: "2026-08-31", Time: "11:30",
	}, "mina-dev")
	assert.ErrorIs(t, err, util.ErrSlotUnavailable)
}

func TestMakeReservationCapacity(t *testing.T) {
	db := newTestDB(t)
	svc := newScheduleService(db)
	seedProfessor(t, db, "Dr. Park", "park@school.edu", "P100")
	mondayAvailability(t, svc, "park@school.edu", 2)

	book := func(user string) error {
		_, err := svc.MakeReservation(&ReservationInput{
			ProfessorID: "P100", StudentName: user,
			Day: "monday", Date: "2026-08-31", Time: "10:00",
		}, user)
		return err
	}

	require.NoError(t, book("mina-dev"))
	require.NoError(t, book("jun-dev"))
	assert.ErrorIs(t, book("hana-dev"), util.ErrSlotFull)

	// Another slot of the same day still has room.
	_, err := svc.MakeReservation(&ReservationInput{
		ProfessorID: "P100", StudentName: "hana-dev",
		Day: "monday", Date: "2026-08-31", Time: "10:30",
	}, "hana-dev")
	require.NoError(t, err)
}

func TestReservationListings(t *testing.T) {
	db := newTestDB(t)
	svc := newScheduleService(db)
	seedProfessor(t, db, "Dr. Park", "park@school.edu", "P100")
	mondayAvailability(t, svc, "park@school.edu", 3)

	reservation, err := svc.MakeReservation(&ReservationInput{
		ProfessorID: "P100", StudentName: "Mina",
		Day: "monday", Date: "2026-08-31", Time: "10:00",
	}, "mina-dev")
	require.NoError(t, err)
	assert.Equal(t, "Dr. Park", reservation.ProfessorName)

	mine, err := svc.ReservationsByUser("mina-dev")
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	theirs, err := svc.ReservationsByProfessor("P100")
	require.NoError(t, err)
	assert.Len(t, theirs, 1)
}
