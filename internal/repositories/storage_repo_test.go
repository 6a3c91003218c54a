package repositories

import (
	"context"
	"testing"

	apperrors "radarboard/internal/errors"
	"radarboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCells() models.StorageCells {
	return models.StorageCells{
		TegRoad:           "01",
		TegRoadTombador:   "07",
		TegRailwayMoega01: "A2",
		TegRailwayMoega02: "",
		TeagRoad:          "B1",
		TeagRailway:       "B3",
	}
}

func TestStorageRepo_GetSelection_EmptyStore(t *testing.T) {
	repo := NewStorageRepository(testDB(t))

	_, err := repo.GetSelection(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestStorageRepo_SaveSelection_WritesBoth(t *testing.T) {
	repo := NewStorageRepository(testDB(t))
	ctx := context.Background()

	selection, entry, err := repo.SaveSelection(ctx, sampleCells(), testActor())
	require.NoError(t, err)

	assert.Equal(t, models.StorageSelectionID, selection.ID)
	assert.Equal(t, "01", selection.TegRoad)
	assert.Equal(t, "cco1", selection.UpdatedBy)
	assert.Equal(t, models.DepartmentCCO, selection.UpdatedByDepartment)

	// The log entry snapshots all six cells, not a diff
	require.NotNil(t, entry)
	assert.Equal(t, "cco1", entry.ChangedBy)
	assert.Equal(t, models.DepartmentCCO, entry.Department)
	assert.Equal(t, models.LogChanges(sampleCells()), entry.Changes)

	// Selection and log share the same write time
	assert.Equal(t, selection.UpdatedAt, entry.Timestamp)

	got, err := repo.GetSelection(ctx)
	require.NoError(t, err)
	assert.Equal(t, selection.StorageCells, got.StorageCells)
}

func TestStorageRepo_SaveSelection_OverwritesSingleton(t *testing.T) {
	db := testDB(t)
	repo := NewStorageRepository(db)
	ctx := context.Background()

	_, _, err := repo.SaveSelection(ctx, sampleCells(), testActor())
	require.NoError(t, err)

	second := sampleCells()
	second.TegRoad = "05"
	second.TeagRailway = ""
	_, _, err = repo.SaveSelection(ctx, second, supervisorActor())
	require.NoError(t, err)

	// Still exactly one selection row
	var count int64
	require.NoError(t, db.Model(&models.StorageSelection{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	got, err := repo.GetSelection(ctx)
	require.NoError(t, err)
	assert.Equal(t, "05", got.TegRoad)
	assert.Equal(t, "", got.TeagRailway)
	assert.Equal(t, "chefe", got.UpdatedBy)
}

func TestStorageRepo_SaveSelection_AppendsLogPerSave(t *testing.T) {
	repo := NewStorageRepository(testDB(t))
	ctx := context.Background()

	first := sampleCells()
	_, _, err := repo.SaveSelection(ctx, first, testActor())
	require.NoError(t, err)

	second := sampleCells()
	second.TegRoad = "06"
	_, _, err = repo.SaveSelection(ctx, second, supervisorActor())
	require.NoError(t, err)

	// Saving identical cells still appends an entry
	_, _, err = repo.SaveSelection(ctx, second, supervisorActor())
	require.NoError(t, err)

	logs, total, err := repo.ListLogs(ctx, FindOptions{})
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.Equal(t, int64(3), total)

	// Oldest first, each a full snapshot
	assert.Equal(t, "01", logs[0].Changes.TegRoad)
	assert.Equal(t, "06", logs[1].Changes.TegRoad)
	assert.Equal(t, "06", logs[2].Changes.TegRoad)
	assert.Equal(t, "cco1", logs[0].ChangedBy)
	assert.Equal(t, "chefe", logs[1].ChangedBy)

	// Paging applies on top of the timestamp ordering
	tail, total, err := repo.ListLogs(ctx, FindOptions{Offset: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, tail, 1)
	assert.Equal(t, "chefe", tail[0].ChangedBy)
}
