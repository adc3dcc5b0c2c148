package model

import "gorm.io/datatypes"

// DaySchedule is one weekday's office-hours window.
type DaySchedule struct {
	Start       string `json:"start"`
	End         string `json:"end"`
	Interval    int    `json:"interval"`
	MaxCapacity int    `json:"maxCapacity"`
}

// TimeSlot marks a single blocked slot within the weekly schedule.
type TimeSlot struct {
	Day  string `json:"day"`
	Time string `json:"time"`
}

// Availability is a professor's office-hours configuration; one row per
// professor, overwritten on save.
type Availability struct {
	BaseModel
	ProfessorID      string                                     `gorm:"size:32;uniqueIndex;not null" json:"userId"`
	Email            string                                     `gorm:"size:100;index" json:"email"`
	WeeklySchedule   datatypes.JSONType[map[string]DaySchedule] `json:"weeklySchedule"`
	UnavailableTimes datatypes.JSONSlice[TimeSlot]              `json:"unavailableTimes"`
}

func (Availability) TableName() string {
	return "availabilities"
}

// Reservation is a student's booked office-hours slot.
type Reservation struct {
	BaseModel
	StudentName   string `gorm:"size:100;not null" json:"studentName"`
	ProfessorID   string `gorm:"size:32;index;not null" json:"professor_id"`
	ProfessorName string `gorm:"size:100" json:"professor_name"`
	Day           string `gorm:"size:20;not null" json:"day"`
	Date          string `gorm:"size:20;not null" json:"date"`
	Time          string `gorm:"size:20;not null" json:"time"`
	UserID        string `gorm:"size:32;index;not null" json:"userId"`
}

func (Reservation) TableName() string {
	return "reservations"
}
