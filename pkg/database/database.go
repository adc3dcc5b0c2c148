package database

import (
	"campus_hub_backend/internal/config"
	"campus_hub_backend/internal/model"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Info),
		TranslateError: true,
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	return db, nil
}

// Migrate runs schema migration and seeds lookup tables. Shared with the
// test harness, which runs it against sqlite.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.Professor{},
		&model.Course{},
		&model.Student{},
		&model.StudentCourse{},
		&model.Team{},
		&model.TeamMember{},
		&model.EvaluationCriteria{},
		&model.EvaluationAssignment{},
		&model.EvaluationResult{},
		&model.ScoreEntry{},
		&model.TitleTier{},
		&model.Question{},
		&model.Answer{},
		&model.Project{},
		&model.Availability{},
		&model.Reservation{},
		&model.Problem{},
		&model.Submission{},
	)
	if err != nil {
		return err
	}

	return seedTitleTiers(db)
}

// seedTitleTiers inserts the default rank table once. Thresholds and labels
// live in data so new categories or tiers need no code change.
func seedTitleTiers(db *gorm.DB) error {
	var count int64
	db.Model(&model.TitleTier{}).Count(&count)
	if count > 0 {
		return nil
	}

	roles := map[string]string{
		"backend":  "Backend Developer",
		"frontend": "Frontend Developer",
		"security": "Security Specialist",
		"network":  "Network Engineer",
		"cloud":    "Cloud Engineer",
		"others":   "IT Specialist",
	}
	levels := []struct {
		threshold float64
		prefix    string
	}{
		{0, "Novice"},
		{10, "Intermediate"},
		{20, "Advanced"},
		{50, "Expert"},
	}

	for category, role := range roles {
		for _, lv := range levels {
			tier := &model.TitleTier{
				Category:  category,
				Threshold: lv.threshold,
				Label:     fmt.Sprintf("%s %s", lv.prefix, role),
			}
			if err := db.Create(tier).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
