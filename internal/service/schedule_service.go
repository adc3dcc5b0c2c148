package service

import (
	"errors"
	"fmt"

	"campus_hub_backend/internal/model"
	"campus_hub_backend/internal/repository"
	"campus_hub_backend/internal/util"
	"campus_hub_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ScheduleService struct {
	ScheduleRepo  *repository.ScheduleRepository
	ProfessorRepo *repository.ProfessorRepository
	CourseRepo    *repository.CourseRepository
	DB            *gorm.DB
}

func NewScheduleService(scheduleRepo *repository.ScheduleRepository, professorRepo *repository.ProfessorRepository, courseRepo *repository.CourseRepository, db *gorm.DB) *ScheduleService {
	return &ScheduleService{
		ScheduleRepo:  scheduleRepo,
		ProfessorRepo: professorRepo,
		CourseRepo:    courseRepo,
		DB:            db,
	}
}

type AvailabilityInput struct {
	Email            string                       `json:"email" binding:"required,email"`
	WeeklySchedule   map[string]model.DaySchedule `json:"weeklySchedule" binding:"required"`
	UnavailableTimes []model.TimeSlot             `json:"unavailableTimes"`
}

// SaveAvailability overwrites the professor's weekly office-hours setup.
func (s *ScheduleService) SaveAvailability(input *AvailabilityInput) error {
	professor, err := s.ProfessorRepo.FindByEmail(input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrProfessorNotFound
		}
		return err
	}

	availability := &model.Availability{
		ProfessorID:      professor.ProfessorID,
		Email:            input.Email,
		WeeklySchedule:   datatypes.NewJSONType(input.WeeklySchedule),
		UnavailableTimes: datatypes.NewJSONSlice(input.UnavailableTimes),
	}
	if err := s.ScheduleRepo.UpsertAvailability(availability); err != nil {
		return err
	}
	logger.Log.Info("availability saved", zap.String("professor", professor.ProfessorID))
	return nil
}

func (s *ScheduleService) GetAvailability(professorID string) (*model.Availability, error) {
	availability, err := s.ScheduleRepo.FindAvailability(professorID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrNotFound
	}
	return availability, err
}

// AvailableProfessor pairs a professor with their office-hours setup for
// the booking page.
type AvailableProfessor struct {
	ProfessorID      string                       `json:"professor_id"`
	Name             string                       `json:"name"`
	WeeklySchedule   map[string]model.DaySchedule `json:"weeklySchedule"`
	UnavailableTimes []model.TimeSlot             `json:"unavailableTimes"`
}

func (s *ScheduleService) AvailableProfessors() ([]AvailableProfessor, error) {
	availabilities, err := s.ScheduleRepo.ListAvailabilities()
	if err != nil {
		return nil, err
	}
	professors := make([]AvailableProfessor, 0, len(availabilities))
	for _, availability := range availabilities {
		entry := AvailableProfessor{
			ProfessorID:      availability.ProfessorID,
			WeeklySchedule:   availability.WeeklySchedule.Data(),
			UnavailableTimes: availability.UnavailableTimes,
		}
		if professor, err := s.ProfessorRepo.FindByProfessorID(availability.ProfessorID); err == nil {
			entry.Name = professor.Name
		}
		professors = append(professors, entry)
	}
	return professors, nil
}

type ReservationInput struct {
	ProfessorID string `json:"professor_id" binding:"required"`
	StudentName string `json:"studentName" binding:"required"`
	Day         string `json:"day" binding:"required"`
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required"`
}

// MakeReservation books one slot. The slot must fall on a configured day,
// not be blocked, and still have capacity; the capacity count and the
// insert run in one transaction so two racing bookings cannot both take
// the last seat.
func (s *ScheduleService) MakeReservation(input *ReservationInput, userID string) (*model.Reservation, error) {
	availability, err := s.ScheduleRepo.FindAvailability(input.ProfessorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotFound
		}
		return nil, err
	}

	daySchedule, ok := availability.WeeklySchedule.Data()[input.Day]
	if !ok {
		return nil, fmt.Errorf("%w: no office hours on %s", util.ErrSlotInvalid, input.Day)
	}
	for _, blocked := range availability.UnavailableTimes {
		if blocked.Day == input.Day && blocked.Time == input.Time {
			return nil, fmt.Errorf("%w: %s %s is blocked", util.ErrSlotUnavailable, input.Day, input.Time)
		}
	}

	professorName := ""
	if professor, err := s.ProfessorRepo.FindByProfessorID(input.ProfessorID); err == nil {
		professorName = professor.Name
	}

	reservation := &model.Reservation{
		StudentName:   input.StudentName,
		ProfessorID:   input.ProfessorID,
		ProfessorName: professorName,
		Day:           input.Day,
		Date:          input.Date,
		Time:          input.Time,
		UserID:        userID,
	}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		count, err := s.ScheduleRepo.CountReservations(tx, input.ProfessorID, input.Day, input.Time)
		if err != nil {
			return err
		}
		if count >= int64(daySchedule.MaxCapacity) {
			return fmt.Errorf("%w: %s %s is fully booked", util.ErrSlotFull, input.Day, input.Time)
		}
		return s.ScheduleRepo.CreateReservation(tx, reservation)
	})
	if err != nil {
		return nil, err
	}

	logger.Log.Info("reservation created",
		zap.String("professor", input.ProfessorID),
		zap.String("slot", input.Day+" "+input.Time))
	return reservation, nil
}

func (s *ScheduleService) ReservationsByUser(userID string) ([]model.Reservation, error) {
	return s.ScheduleRepo.ReservationsByUser(userID)
}

func (s *ScheduleService) ReservationsByProfessor(professorID string) ([]model.Reservation, error) {
	return s.ScheduleRepo.ReservationsByProfessor(professorID)
}

func (s *ScheduleService) AllReservations() ([]model.Reservation, error) {
	return s.ScheduleRepo.AllReservations()
}
