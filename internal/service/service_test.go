package service

import (
	"fmt"
	"testing"

	"campus_hub_backend/internal/model"
	"campus_hub_backend/pkg/database"
	"campus_hub_backend/pkg/logger"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func init() {
	logger.Log = zap.NewNop()
}

// newTestDB opens an isolated in-memory sqlite database with the production
// schema and seed data. A single connection keeps sqlite's writer model out
// of the way in concurrent tests.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name, studentID, githubUsername, githubID string) *model.User {
	t.Helper()
	user := &model.User{
		Name:           name,
		SchoolEmail:    githubUsername + "@school.edu",
		StudentID:      studentID,
		GithubUsername: githubUsername,
		GithubID:       githubID,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}
