package repository

import (
	"campus_hub_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ScoreRepository struct {
	DB *gorm.DB
}

func NewScoreRepository(db *gorm.DB) *ScoreRepository {
	return &ScoreRepository{DB: db}
}

func (r *ScoreRepository) Entries(studentID string) ([]model.ScoreEntry, error) {
	var entries []model.ScoreEntry
	err := r.DB.Where("student_id = ?", studentID).Find(&entries).Error
	return entries, err
}

// EnsureEntry inserts the zero row for (student, category) if it does not
// exist yet; concurrent creators collapse onto the unique index.
func (r *ScoreRepository) EnsureEntry(tx *gorm.DB, studentID, category string) error {
	entry := model.ScoreEntry{StudentID: studentID, Category: category, Points: 0}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&entry).Error
}

// ApplyDelta runs the add-and-clamp as one UPDATE so concurrent resolves for
// the same student serialize at the row instead of losing updates.
func (r *ScoreRepository) ApplyDelta(tx *gorm.DB, studentID, category string, delta float64) error {
	return tx.Model(&model.ScoreEntry{}).
		Where("student_id = ? AND category = ?", studentID, category).
		Update("points", gorm.Expr("CASE WHEN points + ? < 0 THEN 0 ELSE points + ? END", delta, delta)).
		Error
}

func (r *ScoreRepository) Entry(tx *gorm.DB, studentID, category string) (*model.ScoreEntry, error) {
	var entry model.ScoreEntry
	err := tx.Where("student_id = ? AND category = ?", studentID, category).
		First(&entry).Error
	return &entry, err
}

func (r *ScoreRepository) UpdateTitle(tx *gorm.DB, studentID, category, title string) error {
	return tx.Model(&model.ScoreEntry{}).
		Where("student_id = ? AND category = ?", studentID, category).
		Update("title", title).Error
}

func (r *ScoreRepository) LoadTiers() ([]model.TitleTier, error) {
	var tiers []model.TitleTier
	err := r.DB.Order("category, threshold").Find(&tiers).Error
	return tiers, err
}
