package repositories

import (
	"testing"

	"radarboard/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testDB opens an isolated in-memory database with the full schema.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every query on the same memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(models.AllModels()...))
	return db
}

func testActor() models.Actor {
	return models.Actor{Username: "cco1", Department: models.DepartmentCCO}
}

func supervisorActor() models.Actor {
	return models.Actor{Username: "chefe", Department: models.DepartmentSupervisor}
}
