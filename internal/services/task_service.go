package services

import (
	"context"

	"radarboard/internal/dto"
	"radarboard/internal/models"

	"github.com/google/uuid"
)

// ===========================================================================
// Task Service Interface
// Supervisor-assigned work items. Supervisors create, edit and delete;
// assignees move the workflow status. Every write republishes the full
// collection snapshot.
// ===========================================================================

// TaskService interface for task operations
type TaskService interface {
	// Create stores a new task (supervisor only)
	Create(ctx context.Context, viewer Viewer, req dto.CreateTaskRequest) (*models.Task, error)

	// Get returns a single task by id
	Get(ctx context.Context, viewer Viewer, id uuid.UUID) (*models.Task, error)

	// List returns the tasks visible to the caller, newest first
	List(ctx context.Context, viewer Viewer) ([]models.Task, error)

	// ListMine returns only the tasks assigned to the caller
	ListMine(ctx context.Context, viewer Viewer) ([]models.Task, error)

	// Update partially merges the supplied fields (supervisor only)
	Update(ctx context.Context, viewer Viewer, id uuid.UUID, req dto.UpdateTaskRequest) (*models.Task, error)

	// UpdateStatus moves the workflow status (assignee or supervisor)
	UpdateStatus(ctx context.Context, viewer Viewer, id uuid.UUID, status models.TaskStatus) (*models.Task, error)

	// Delete soft-deletes the task (supervisor only)
	Delete(ctx context.Context, viewer Viewer, id uuid.UUID) error

	// Subscribe streams the caller's filtered view of the collection
	Subscribe(viewer Viewer) (<-chan []models.Task, func())
}
