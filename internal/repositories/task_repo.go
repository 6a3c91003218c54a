package repositories

import (
	"radarboard/internal/models"

	"gorm.io/gorm"
)

// ===========================================================================
// Task Repository GORM Implementation
// Assignee filtering happens in the service layer because assignees live
// in a JSON column; the collections are small shift-sized sets.
// ===========================================================================

// taskRepo implements TaskRepository
type taskRepo struct {
	recordRepo[models.Task]
}

// NewTaskRepository creates a TaskRepository backed by GORM.
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepo{recordRepo: newRecordRepo[models.Task](db)}
}
