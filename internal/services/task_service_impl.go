package services

import (
	"context"
	"fmt"
	"time"

	"radarboard/internal/dto"
	apperrors "radarboard/internal/errors"
	"radarboard/internal/models"
	"radarboard/internal/realtime"
	"radarboard/internal/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ===========================================================================
// Task Service Implementation
// ===========================================================================

// taskServiceImpl implements TaskService
type taskServiceImpl struct {
	repo   repositories.TaskRepository
	hub    *realtime.Hub[models.Task]
	logger *zap.Logger
}

// NewTaskService creates a new TaskService. Tasks are viewer-scoped, so
// live delivery goes through the per-viewer SSE subscriptions only; there
// is no shared push channel for them.
func NewTaskService(
	repo repositories.TaskRepository,
	hub *realtime.Hub[models.Task],
	logger *zap.Logger,
) TaskService {
	return &taskServiceImpl{
		repo:   repo,
		hub:    hub,
		logger: logger,
	}
}

// Create stores a new task (supervisor only)
func (s *taskServiceImpl) Create(ctx context.Context, viewer Viewer, req dto.CreateTaskRequest) (*models.Task, error) {
	if !viewer.Supervisor() {
		return nil, apperrors.ErrForbidden
	}

	task := &models.Task{
		RecordBase: models.RecordBase{
			CreatedBy:           viewer.Username,
			CreatedByDepartment: viewer.Department,
		},
		Title:                req.Title,
		Description:          req.Description,
		Priority:             models.PriorityMedium,
		Status:               models.StatusPending,
		Shift:                models.ShiftAll,
		AssignedTo:           models.StringList(req.AssignedTo),
		AssignedBy:           viewer.Username,
		AssignedByDepartment: viewer.Department,
		DueDate:              req.DueDate,
	}
	if req.Priority != "" {
		task.Priority = models.TaskPriority(req.Priority)
	}
	if req.Shift != "" {
		task.Shift = models.Shift(req.Shift)
	}

	if err := s.repo.Create(ctx, task); err != nil {
		s.logger.Error("create task failed",
			zap.Error(err),
			zap.String("user", viewer.Username),
		)
		return nil, fmt.Errorf("create task: %w", err)
	}

	s.broadcast(ctx)
	return task, nil
}

// Get returns a single task by id
func (s *taskServiceImpl) Get(ctx context.Context, viewer Viewer, id uuid.UUID) (*models.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !viewer.Supervisor() && !task.IsAssignedTo(viewer.Username) && task.CreatedBy != viewer.Username {
		return nil, apperrors.ErrForbidden
	}
	return task, nil
}

// List returns the tasks visible to the caller, newest first
func (s *taskServiceImpl) List(ctx context.Context, viewer Viewer) ([]models.Task, error) {
	all, err := s.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	out := make([]models.Task, 0, len(all))
	for _, t := range all {
		if taskVisible(&t, viewer) {
			out = append(out, t)
		}
	}
	return out, nil
}

// ListMine returns only the tasks assigned to the caller. Unlike List,
// supervisors also get the assignee scope here, not the full collection.
func (s *taskServiceImpl) ListMine(ctx context.Context, viewer Viewer) ([]models.Task, error) {
	all, err := s.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	out := make([]models.Task, 0, len(all))
	for _, t := range all {
		if !t.Deleted && t.IsAssignedTo(viewer.Username) {
			out = append(out, t)
		}
	}
	return out, nil
}

// Update partially merges the supplied fields (supervisor only)
func (s *taskServiceImpl) Update(ctx context.Context, viewer Viewer, id uuid.UUID, req dto.UpdateTaskRequest) (*models.Task, error) {
	if !viewer.Supervisor() {
		return nil, apperrors.ErrForbidden
	}

	fields := make(map[string]interface{})
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Priority != nil {
		priority := models.TaskPriority(*req.Priority)
		if !priority.Valid() {
			return nil, apperrors.ErrInvalidInput
		}
		fields["priority"] = priority
	}
	if req.Shift != nil {
		shift := models.Shift(*req.Shift)
		if !shift.Valid() {
			return nil, apperrors.ErrInvalidInput
		}
		fields["shift"] = shift
	}
	if req.AssignedTo != nil {
		fields["assigned_to"] = models.StringList(req.AssignedTo)
	}
	if req.DueDate != nil {
		fields["due_date"] = *req.DueDate
	}

	task, err := s.repo.Update(ctx, id, fields, viewer.Actor())
	if err != nil {
		return nil, err
	}

	s.broadcast(ctx)
	return task, nil
}

// UpdateStatus moves the workflow status (assignee or supervisor)
func (s *taskServiceImpl) UpdateStatus(ctx context.Context, viewer Viewer, id uuid.UUID, status models.TaskStatus) (*models.Task, error) {
	if !status.Valid() {
		return nil, apperrors.ErrInvalidInput
	}

	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !viewer.Supervisor() && !task.IsAssignedTo(viewer.Username) {
		return nil, apperrors.ErrForbidden
	}

	fields := map[string]interface{}{"status": status}
	if status == models.StatusDone {
		fields["completed_at"] = time.Now().UTC().Truncate(time.Millisecond)
		fields["completed_by"] = viewer.Username
	} else {
		fields["completed_at"] = nil
		fields["completed_by"] = nil
	}

	task, err = s.repo.Update(ctx, id, fields, viewer.Actor())
	if err != nil {
		return nil, err
	}

	s.broadcast(ctx)
	return task, nil
}

// Delete soft-deletes the task (supervisor only)
func (s *taskServiceImpl) Delete(ctx context.Context, viewer Viewer, id uuid.UUID) error {
	if !viewer.Supervisor() {
		return apperrors.ErrForbidden
	}

	if _, err := s.repo.SoftDelete(ctx, id, viewer.Actor()); err != nil {
		return err
	}

	s.broadcast(ctx)
	return nil
}

// Subscribe streams the caller's filtered view of the collection
func (s *taskServiceImpl) Subscribe(viewer Viewer) (<-chan []models.Task, func()) {
	return s.hub.Subscribe(func(t models.Task) bool {
		return taskVisible(&t, viewer)
	})
}

// taskVisible reports whether the task belongs in the caller's listing.
// Supervisors see everything; operators see what is assigned to them.
// Soft-deleted tasks never appear in listings.
func taskVisible(t *models.Task, viewer Viewer) bool {
	if t.Deleted {
		return false
	}
	if viewer.Supervisor() {
		return true
	}
	return t.IsAssignedTo(viewer.Username) || t.CreatedBy == viewer.Username
}

// broadcast republishes the full collection snapshot to the hub after a
// write. Each subscriber filters the snapshot to its own visibility scope.
func (s *taskServiceImpl) broadcast(ctx context.Context) {
	all, err := s.repo.All(ctx)
	if err != nil {
		s.logger.Error("load task snapshot failed", zap.Error(err))
		return
	}

	s.hub.Publish(all)
}
