//go:build ignore

// ===========================================================================
// Seed data for development/testing
// Run: go run scripts/seed/main.go
// ===========================================================================

package main

import (
	"fmt"
	"log"
	"os"

	"radarboard/internal/config"
	"radarboard/internal/database"
	"radarboard/internal/models"
	"radarboard/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	fmt.Println("🌱 Seeding data...")

	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}

	zapLog, err := logger.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		log.Fatalf("cannot create logger: %v", err)
	}

	db, err := database.NewConnection(&cfg.Database, zapLog)
	if err != nil {
		log.Fatalf("cannot connect to database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("cannot migrate: %v", err)
	}

	fmt.Println("✅ Connected to database")

	// =========================================================================
	// 1. Users
	// =========================================================================
	users := []*models.User{
		{
			Username:   "supervisor",
			Email:      "supervisor@terminal.local",
			Role:       models.RoleSupervisor,
			Department: models.DepartmentSupervisor,
		},
		{
			Username:   "cco1",
			Email:      "cco1@terminal.local",
			Role:       models.RoleAssistente,
			Department: models.DepartmentCCO,
		},
		{
			Username:   "cco2",
			Email:      "cco2@terminal.local",
			Role:       models.RoleAssistente,
			Department: models.DepartmentCCO,
		},
		{
			Username:   "balanca1",
			Email:      "balanca1@terminal.local",
			Role:       models.RoleAssistente,
			Department: models.DepartmentBalanca,
		},
		{
			Username:   "balanca2",
			Email:      "balanca2@terminal.local",
			Role:       models.RoleAssistente,
			Department: models.DepartmentBalanca,
		},
	}

	for _, user := range users {
		if err := user.SetPassword("Password123!"); err != nil {
			zapLog.Warn("cannot set password", zap.Error(err))
		}

		var existing models.User
		if err := db.Where("username = ?", user.Username).First(&existing).Error; err == nil {
			fmt.Printf("⚠️  User '%s' already exists\n", user.Username)
			continue
		}

		if err := db.Create(user).Error; err != nil {
			zapLog.Warn("cannot create user", zap.String("username", user.Username), zap.Error(err))
		} else {
			fmt.Printf("✅ Created user: %s (%s / %s)\n", user.Username, user.Role, user.Department)
		}
	}

	// =========================================================================
	// 2. Sample notes on the shared boards
	// =========================================================================
	notes := []*models.Note{
		{
			RecordBase: models.RecordBase{
				CreatedBy:           "supervisor",
				CreatedByDepartment: models.DepartmentSupervisor,
			},
			Title:    "Janela de manutenção",
			Content:  "Moega 02 parada para manutenção preventiva das 14h às 16h.",
			Category: models.CategoryRadar,
		},
		{
			RecordBase: models.RecordBase{
				CreatedBy:           "cco1",
				CreatedByDepartment: models.DepartmentCCO,
			},
			Title:    "Contato ferrovia",
			Content:  "Novo telefone do despachante ferroviário: ramal 4412.",
			Category: models.CategoryInfo,
		},
	}

	for _, note := range notes {
		var existing models.Note
		if err := db.Where("title = ? AND created_by = ?", note.Title, note.CreatedBy).First(&existing).Error; err == nil {
			fmt.Printf("⚠️  Note '%s' already exists\n", note.Title)
			continue
		}
		if err := db.Create(note).Error; err != nil {
			zapLog.Warn("cannot create note", zap.String("title", note.Title), zap.Error(err))
		} else {
			fmt.Printf("✅ Created note: %s (%s)\n", note.Title, note.Category)
		}
	}

	// =========================================================================
	// 3. Sample task
	// =========================================================================
	task := &models.Task{
		RecordBase: models.RecordBase{
			CreatedBy:           "supervisor",
			CreatedByDepartment: models.DepartmentSupervisor,
		},
		Title:                "Conferir lacres",
		Description:          "Conferir lacres dos vagões do pátio 3 antes do carregamento.",
		Priority:             models.PriorityHigh,
		Status:               models.StatusPending,
		Shift:                models.ShiftA,
		AssignedTo:           models.StringList{"cco1", "balanca1"},
		AssignedBy:           "supervisor",
		AssignedByDepartment: models.DepartmentSupervisor,
	}

	var existingTask models.Task
	if err := db.Where("title = ? AND created_by = ?", task.Title, task.CreatedBy).First(&existingTask).Error; err == nil {
		fmt.Printf("⚠️  Task '%s' already exists\n", task.Title)
	} else if err := db.Create(task).Error; err != nil {
		zapLog.Warn("cannot create task", zap.String("title", task.Title), zap.Error(err))
	} else {
		fmt.Printf("✅ Created task: %s (%s)\n", task.Title, task.Priority)
	}

	// =========================================================================
	// Summary
	// =========================================================================
	fmt.Println("")
	fmt.Println("========================================")
	fmt.Println("🎉 Seed data complete!")
	fmt.Println("========================================")
	fmt.Println("")
	fmt.Println("📝 Login:")
	fmt.Println("   Username: supervisor")
	fmt.Println("   Password: Password123!")
	fmt.Println("")
	fmt.Println("💡 Test login:")
	fmt.Println(`   curl -X POST http://localhost:8080/api/v1/auth/login \`)
	fmt.Println(`     -H "Content-Type: application/json" \`)
	fmt.Println(`     -d '{"username":"supervisor","password":"Password123!"}'`)
	fmt.Println("")

	os.Exit(0)
}
