package model

import "time"

// Team is scoped to a course; (course_code, name) is the identity.
type Team struct {
	BaseModel
	CourseCode string       `gorm:"size:32;uniqueIndex:idx_course_team;not null" json:"course_code"`
	Name       string       `gorm:"size:100;uniqueIndex:idx_course_team;not null" json:"team_name"`
	Members    []TeamMember `gorm:"foreignKey:TeamID" json:"students"`
}

func (Team) TableName() string {
	return "teams"
}

// TeamMember carries the course code redundantly so the store itself can
// enforce the one-team-per-course invariant with a unique index. No soft
// delete: moving a student between teams re-creates the row under the same
// unique key.
type TeamMember struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	TeamID     uint   `gorm:"index;not null" json:"-"`
	CourseCode string `gorm:"size:32;uniqueIndex:idx_course_member;not null" json:"-"`
	StudentID  string `gorm:"size:32;uniqueIndex:idx_course_member;not null" json:"studentId"`
	Name       string `gorm:"size:100" json:"name"`
}

func (TeamMember) TableName() string {
	return "team_members"
}
