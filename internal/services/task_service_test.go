package services

import (
	"context"
	"testing"

	"radarboard/internal/dto"
	apperrors "radarboard/internal/errors"
	"radarboard/internal/models"
	"radarboard/internal/realtime"
	"radarboard/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTaskService(t *testing.T) TaskService {
	t.Helper()
	repo := repositories.NewTaskRepository(serviceDB(t))
	return NewTaskService(repo, realtime.NewHub[models.Task](), nopLogger())
}

func createTask(t *testing.T, svc TaskService, assignees ...string) *models.Task {
	t.Helper()
	task, err := svc.Create(context.Background(), supervisorViewer(), dto.CreateTaskRequest{
		Title:       "conferir lacres",
		Description: "pátio 3",
		Priority:    string(models.PriorityHigh),
		Shift:       string(models.ShiftA),
		AssignedTo:  assignees,
	})
	require.NoError(t, err)
	return task
}

func TestTaskService_CreateRequiresSupervisor(t *testing.T) {
	svc := newTaskService(t)

	_, err := svc.Create(context.Background(), ccoViewer(), dto.CreateTaskRequest{
		Title:       "furtiva",
		Description: "x",
		AssignedTo:  []string{"cco1"},
	})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestTaskService_CreateDefaults(t *testing.T) {
	svc := newTaskService(t)

	task, err := svc.Create(context.Background(), supervisorViewer(), dto.CreateTaskRequest{
		Title:       "sem detalhes",
		Description: "x",
		AssignedTo:  []string{"cco1"},
	})
	require.NoError(t, err)

	assert.Equal(t, models.PriorityMedium, task.Priority)
	assert.Equal(t, models.StatusPending, task.Status)
	assert.Equal(t, models.ShiftAll, task.Shift)
	assert.Equal(t, supervisorViewer().Username, task.AssignedBy)
	assert.Equal(t, models.DepartmentSupervisor, task.AssignedByDepartment)
}

func TestTaskService_ListScopedToAssignees(t *testing.T) {
	svc := newTaskService(t)
	ctx := context.Background()

	createTask(t, svc, "cco1")

	mine, err := svc.List(ctx, ccoViewer())
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	others, err := svc.List(ctx, balancaViewer())
	require.NoError(t, err)
	assert.Empty(t, others)

	sup, err := svc.List(ctx, supervisorViewer())
	require.NoError(t, err)
	assert.Len(t, sup, 1)
}

func TestTaskService_ListMineIsAssigneeOnly(t *testing.T) {
	svc := newTaskService(t)
	ctx := context.Background()

	createTask(t, svc, "cco1")

	mine, err := svc.ListMine(ctx, ccoViewer())
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	// Supervisors get the assignee scope here too, not the full collection.
	sup, err := svc.ListMine(ctx, supervisorViewer())
	require.NoError(t, err)
	assert.Empty(t, sup)
}

func TestTaskService_UpdateStatus_AssigneeCompletes(t *testing.T) {
	svc := newTaskService(t)
	ctx := context.Background()

	task := createTask(t, svc, "cco1")

	done, err := svc.UpdateStatus(ctx, ccoViewer(), task.ID, models.StatusDone)
	require.NoError(t, err)

	assert.Equal(t, models.StatusDone, done.Status)
	require.NotNil(t, done.CompletedAt)
	require.NotNil(t, done.CompletedBy)
	assert.Equal(t, "cco1", *done.CompletedBy)

	// Reopening clears the completion stamps
	reopened, err := svc.UpdateStatus(ctx, ccoViewer(), task.ID, models.StatusInProgress)
	require.NoError(t, err)
	assert.Nil(t, reopened.CompletedAt)
	assert.Nil(t, reopened.CompletedBy)
}

func TestTaskService_UpdateStatus_NonAssigneeForbidden(t *testing.T) {
	svc := newTaskService(t)

	task := createTask(t, svc, "cco1")

	_, err := svc.UpdateStatus(context.Background(), balancaViewer(), task.ID, models.StatusDone)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestTaskService_UpdateStatus_RejectsUnknownStatus(t *testing.T) {
	svc := newTaskService(t)

	task := createTask(t, svc, "cco1")

	_, err := svc.UpdateStatus(context.Background(), ccoViewer(), task.ID, models.TaskStatus("perdida"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestTaskService_DeleteRequiresSupervisor(t *testing.T) {
	svc := newTaskService(t)
	ctx := context.Background()

	task := createTask(t, svc, "cco1")

	err := svc.Delete(ctx, ccoViewer(), task.ID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	require.NoError(t, svc.Delete(ctx, supervisorViewer(), task.ID))

	listed, err := svc.List(ctx, supervisorViewer())
	require.NoError(t, err)
	assert.Empty(t, listed)
}
