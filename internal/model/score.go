package model

import "time"

// ScoreEntry is one student's running point total in one category. Keeping
// one row per (student, category) lets the update be a single add-and-clamp
// statement instead of a read-modify-write over a shared document.
type ScoreEntry struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	StudentID string  `gorm:"size:32;uniqueIndex:idx_student_category;not null" json:"studentId"`
	Category  string  `gorm:"size:32;uniqueIndex:idx_student_category;not null" json:"category"`
	Points    float64 `gorm:"not null;default:0" json:"points"`
	Title     string  `gorm:"size:100" json:"title"`
}

func (ScoreEntry) TableName() string {
	return "score_entries"
}

// TitleTier maps a category threshold to its rank label. Seeded at migration
// and loaded once at startup; categories and thresholds change by data, not
// by code.
type TitleTier struct {
	BaseModel
	Category  string  `gorm:"size:32;uniqueIndex:idx_category_threshold;not null" json:"category"`
	Threshold float64 `gorm:"uniqueIndex:idx_category_threshold;not null" json:"threshold"`
	Label     string  `gorm:"size:100;not null" json:"label"`
}

func (TitleTier) TableName() string {
	return "title_tiers"
}
