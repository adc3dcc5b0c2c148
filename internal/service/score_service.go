package service

import (
	"sort"

	"campus_hub_backend/internal/model"
	"campus_hub_backend/internal/repository"
	"campus_hub_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// titleTier is an in-memory tier, sorted descending by threshold so the
// first match wins.
type titleTier struct {
	Threshold float64
	Label     string
}

// ScoreService owns the per-student, per-category point ledger and the
// data-driven title table. Tiers are loaded once at startup; adding a
// category or tier is a database change, not a code change.
type ScoreService struct {
	ScoreRepo *repository.ScoreRepository
	DB        *gorm.DB
	tiers     map[string][]titleTier
}

func NewScoreService(scoreRepo *repository.ScoreRepository, db *gorm.DB) (*ScoreService, error) {
	svc := &ScoreService{
		ScoreRepo: scoreRepo,
		DB:        db,
		tiers:     make(map[string][]titleTier),
	}
	if err := svc.loadTiers(); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *ScoreService) loadTiers() error {
	rows, err := s.ScoreRepo.LoadTiers()
	if err != nil {
		return err
	}
	tiers := make(map[string][]titleTier)
	for _, row := range rows {
		tiers[row.Category] = append(tiers[row.Category], titleTier{
			Threshold: row.Threshold,
			Label:     row.Label,
		})
	}
	for category := range tiers {
		sort.Slice(tiers[category], func(i, j int) bool {
			return tiers[category][i].Threshold > tiers[category][j].Threshold
		})
	}
	s.tiers = tiers
	logger.Log.Info("title tiers loaded", zap.Int("categories", len(tiers)))
	return nil
}

// HasCategory reports whether the category has a seeded tier table.
func (s *ScoreService) HasCategory(category string) bool {
	_, ok := s.tiers[category]
	return ok
}

// TitleFor maps a point total to the highest tier whose threshold it meets.
func (s *ScoreService) TitleFor(category string, points float64) string {
	tiers, ok := s.tiers[category]
	if !ok {
		return "Undefined Title"
	}
	for _, tier := range tiers {
		if points >= tier.Threshold {
			return tier.Label
		}
	}
	return "Undefined Title"
}

// ScoreSummary is the ledger view returned after an update or lookup.
type ScoreSummary struct {
	StudentID string             `json:"studentId"`
	Scores    map[string]float64 `json:"scores"`
	Titles    map[string]string  `json:"titles"`
}

// ApplyDeltaTx runs the add-and-clamp inside the caller's transaction and
// returns the new total and title for the touched category. The delta is
// applied in one UPDATE so concurrent awards never lose increments, and a
// negative result clamps to zero instead of going below.
func (s *ScoreService) ApplyDeltaTx(tx *gorm.DB, studentID, category string, delta float64) (float64, string, error) {
	if err := s.ScoreRepo.EnsureEntry(tx, studentID, category); err != nil {
		return 0, "", err
	}
	if err := s.ScoreRepo.ApplyDelta(tx, studentID, category, delta); err != nil {
		return 0, "", err
	}
	entry, err := s.ScoreRepo.Entry(tx, studentID, category)
	if err != nil {
		return 0, "", err
	}
	title := s.TitleFor(category, entry.Points)
	if title != entry.Title {
		if err := s.ScoreRepo.UpdateTitle(tx, studentID, category, title); err != nil {
			return 0, "", err
		}
	}
	return entry.Points, title, nil
}

// UpdateScore applies one delta and returns the student's full summary.
func (s *ScoreService) UpdateScore(studentID, category string, delta float64) (*ScoreSummary, error) {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		_, _, txErr := s.ApplyDeltaTx(tx, studentID, category, delta)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return s.Summary(studentID)
}

// Summary folds the student's entry rows back into the category->points and
// category->title maps clients consume.
func (s *ScoreService) Summary(studentID string) (*ScoreSummary, error) {
	entries, err := s.ScoreRepo.Entries(studentID)
	if err != nil {
		return nil, err
	}
	summary := &ScoreSummary{
		StudentID: studentID,
		Scores:    make(map[string]float64),
		Titles:    make(map[string]string),
	}
	for _, entry := range entries {
		summary.Scores[entry.Category] = entry.Points
		summary.Titles[entry.Category] = entry.Title
	}
	return summary, nil
}

// CurrentTitle returns the student's title in one category, falling back to
// the novice tier when the student has no ledger row yet.
func (s *ScoreService) CurrentTitle(studentID, category string) string {
	var entry model.ScoreEntry
	err := s.DB.Where("student_id = ? AND category = ?", studentID, category).First(&entry).Error
	if err != nil {
		return model.DefaultAnswerTitle
	}
	if entry.Title != "" {
		return entry.Title
	}
	return s.TitleFor(category, entry.Points)
}
