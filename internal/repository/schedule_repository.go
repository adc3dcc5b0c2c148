package repository

import (
	"campus_hub_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ScheduleRepository struct {
	DB *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{DB: db}
}

// UpsertAvailability overwrites a professor's office-hours configuration.
func (r *ScheduleRepository) UpsertAvailability(availability *model.Availability) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "professor_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "weekly_schedule", "unavailable_times", "updated_at"}),
	}).Create(availability).Error
}

func (r *ScheduleRepository) FindAvailability(professorID string) (*model.Availability, error) {
	var availability model.Availability
	err := r.DB.Where("professor_id = ?", professorID).First(&availability).Error
	return &availability, err
}

func (r *ScheduleRepository) FindAvailabilityByEmail(email string) (*model.Availability, error) {
	var availability model.Availability
	err := r.DB.Where("email = ?", email).First(&availability).Error
	return &availability, err
}

func (r *ScheduleRepository) ListAvailabilities() ([]model.Availability, error) {
	var availabilities []model.Availability
	err := r.DB.Find(&availabilities).Error
	return availabilities, err
}

func (r *ScheduleRepository) CreateReservation(tx *gorm.DB, reservation *model.Reservation) error {
	return tx.Create(reservation).Error
}

func (r *ScheduleRepository) CountReservations(tx *gorm.DB, professorID, day, timeSlot string) (int64, error) {
	var count int64
	err := tx.Model(&model.Reservation{}).
		Where("professor_id = ? AND day = ? AND time = ?", professorID, day, timeSlot).
		Count(&count).Error
	return count, err
}

func (r *ScheduleRepository) ReservationsByUser(userID string) ([]model.Reservation, error) {
	var reservations []model.Reservation
	err := r.DB.Where("user_id = ?", userID).Find(&reservations).Error
	return reservations, err
}

func (r *ScheduleRepository) ReservationsByProfessor(professorID string) ([]model.Reservation, error) {
	var reservations []model.Reservation
	err := r.DB.Where("professor_id = ?", professorID).Find(&reservations).Error
	return reservations, err
}

func (r *ScheduleRepository) AllReservations() ([]model.Reservation, error) {
	var reservations []model.Reservation
	err := r.DB.Find(&reservations).Error
	return reservations, err
}
