package services_test

import (
	"testing"

	"project-tracker/backend/internal/models"
	"project-tracker/backend/internal/repositories"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestRepositories opens a private in-memory sqlite database. A single
// connection keeps every query on the same database.
func newTestRepositories(t *testing.T) repositories.Repositories {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Project{}, &models.Task{}))
	return repositories.NewGormRepositories(db)
}
