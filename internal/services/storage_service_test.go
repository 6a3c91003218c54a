package services

import (
	"context"
	"testing"
	"time"

	"radarboard/internal/dto"
	apperrors "radarboard/internal/errors"
	"radarboard/internal/models"
	"radarboard/internal/realtime"
	"radarboard/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStorageService(t *testing.T) StorageService {
	t.Helper()
	repo := repositories.NewStorageRepository(serviceDB(t))
	return NewStorageService(repo, realtime.NewHub[models.StorageSelection](), realtime.NewNoopPublisher(), nopLogger())
}

func sampleSave() dto.SaveStorageRequest {
	return dto.SaveStorageRequest{
		TegRoad:           "01",
		TegRoadTombador:   "07",
		TegRailwayMoega01: "A2",
		TeagRoad:          "B1",
		TeagRailway:       "B3",
	}
}

func TestStorageService_GetBeforeFirstSave(t *testing.T) {
	svc := newStorageService(t)

	_, err := svc.Get(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestStorageService_SaveOverwritesAndLogs(t *testing.T) {
	svc := newStorageService(t)
	ctx := context.Background()

	_, err := svc.Save(ctx, ccoViewer(), sampleSave())
	require.NoError(t, err)

	second := sampleSave()
	second.TegRoad = "05"
	selection, err := svc.Save(ctx, supervisorViewer(), second)
	require.NoError(t, err)

	assert.Equal(t, "05", selection.TegRoad)
	assert.Equal(t, "chefe", selection.UpdatedBy)
	assert.Equal(t, models.DepartmentSupervisor, selection.UpdatedByDepartment)

	// One log entry per save, each with the full six-cell snapshot
	logs, total, err := svc.Logs(ctx, dto.PaginationRequest{})
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, "01", logs[0].Changes.TegRoad)
	assert.Equal(t, "05", logs[1].Changes.TegRoad)
	assert.Equal(t, "B3", logs[1].Changes.TeagRailway)
}

func TestStorageService_LogsArePaged(t *testing.T) {
	svc := newStorageService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		req := sampleSave()
		req.TegRoad = string(rune('1' + i))
		_, err := svc.Save(ctx, ccoViewer(), req)
		require.NoError(t, err)
	}

	page, total, err := svc.Logs(ctx, dto.PaginationRequest{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page, 1)
	assert.Equal(t, "3", page[0].Changes.TegRoad)
}

func TestStorageService_SubscribeReceivesSaves(t *testing.T) {
	svc := newStorageService(t)
	ctx := context.Background()

	ch, cancel := svc.Subscribe()
	defer cancel()

	_, err := svc.Save(ctx, ccoViewer(), sampleSave())
	require.NoError(t, err)

	select {
	case snapshot := <-ch:
		require.Len(t, snapshot, 1)
		assert.Equal(t, "01", snapshot[0].TegRoad)
		assert.Equal(t, "cco1", snapshot[0].UpdatedBy)
	case <-time.After(time.Second):
		t.Fatal("subscriber never received the selection")
	}
}
