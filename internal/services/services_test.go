package services

import (
	"testing"

	"radarboard/internal/models"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// serviceDB opens an isolated in-memory database with the full schema.
func serviceDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(models.AllModels()...))
	return db
}

func nopLogger() *zap.Logger {
	return zap.NewNop()
}

func ccoViewer() Viewer {
	return Viewer{
		UserID:     "user-cco",
		Username:   "cco1",
		Role:       models.RoleAssistente,
		Department: models.DepartmentCCO,
	}
}

func balancaViewer() Viewer {
	return Viewer{
		UserID:     "user-balanca",
		Username:   "balanca1",
		Role:       models.RoleAssistente,
		Department: models.DepartmentBalanca,
	}
}

func supervisorViewer() Viewer {
	return Viewer{
		UserID:     "user-chefe",
		Username:   "chefe",
		Role:       models.RoleSupervisor,
		Department: models.DepartmentSupervisor,
	}
}
