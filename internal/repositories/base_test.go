package repositories

import (
	"context"
	"testing"
	"time"

	apperrors "radarboard/internal/errors"
	"radarboard/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNote(title string, category models.Category) *models.Note {
	return &models.Note{
		RecordBase: models.RecordBase{
			CreatedBy:           "cco1",
			CreatedByDepartment: models.DepartmentCCO,
		},
		Title:    title,
		Content:  "conteúdo",
		Category: category,
		UserID:   "user-1",
	}
}

func TestRecordRepo_CreateAssignsIDAndTimestamps(t *testing.T) {
	repo := NewNoteRepository(testDB(t))
	ctx := context.Background()

	note := newNote("nota", models.CategoryRadar)
	require.Equal(t, uuid.Nil, note.ID)

	require.NoError(t, repo.Create(ctx, note))

	assert.NotEqual(t, uuid.Nil, note.ID)
	assert.False(t, note.CreatedAt.IsZero())
	assert.False(t, note.UpdatedAt.IsZero())
	assert.Equal(t, "cco1", note.CreatedBy)
	assert.Nil(t, note.UpdatedBy)
}

func TestRecordRepo_FindByID_NotFound(t *testing.T) {
	repo := NewNoteRepository(testDB(t))

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRecordRepo_Update_PartialMerge(t *testing.T) {
	repo := NewNoteRepository(testDB(t))
	ctx := context.Background()

	note := newNote("original", models.CategoryRadar)
	require.NoError(t, repo.Create(ctx, note))

	updated, err := repo.Update(ctx, note.ID, map[string]interface{}{
		"title": "editado",
	}, supervisorActor())
	require.NoError(t, err)

	// Only the supplied column changed
	assert.Equal(t, "editado", updated.Title)
	assert.Equal(t, "conteúdo", updated.Content)
	assert.Equal(t, models.CategoryRadar, updated.Category)

	// Audit stamps are set unconditionally
	require.NotNil(t, updated.UpdatedBy)
	assert.Equal(t, "chefe", *updated.UpdatedBy)
	require.NotNil(t, updated.UpdatedByDepartment)
	assert.Equal(t, models.DepartmentSupervisor, *updated.UpdatedByDepartment)

	// Authorship is immutable
	assert.Equal(t, "cco1", updated.CreatedBy)
	assert.Equal(t, models.DepartmentCCO, updated.CreatedByDepartment)
}

func TestRecordRepo_Update_MissingID(t *testing.T) {
	repo := NewNoteRepository(testDB(t))

	_, err := repo.Update(context.Background(), uuid.New(), map[string]interface{}{
		"title": "fantasma",
	}, testActor())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRecordRepo_Update_EmptyFieldsStillStampsActor(t *testing.T) {
	repo := NewNoteRepository(testDB(t))
	ctx := context.Background()

	note := newNote("nota", models.CategoryInfo)
	require.NoError(t, repo.Create(ctx, note))

	updated, err := repo.Update(ctx, note.ID, map[string]interface{}{}, supervisorActor())
	require.NoError(t, err)

	require.NotNil(t, updated.UpdatedBy)
	assert.Equal(t, "chefe", *updated.UpdatedBy)
	assert.Equal(t, "nota", updated.Title)
}

func TestRecordRepo_Update_LastWriteWins(t *testing.T) {
	repo := NewNoteRepository(testDB(t))
	ctx := context.Background()

	note := newNote("nota", models.CategoryRadar)
	require.NoError(t, repo.Create(ctx, note))

	_, err := repo.Update(ctx, note.ID, map[string]interface{}{"title": "primeira"}, testActor())
	require.NoError(t, err)

	updated, err := repo.Update(ctx, note.ID, map[string]interface{}{"title": "segunda"}, supervisorActor())
	require.NoError(t, err)

	assert.Equal(t, "segunda", updated.Title)
	assert.Equal(t, "chefe", *updated.UpdatedBy)
}

func TestRecordRepo_SoftDelete_FilterOnly(t *testing.T) {
	repo := NewNoteRepository(testDB(t))
	ctx := context.Background()

	note := newNote("nota", models.CategoryRadar)
	require.NoError(t, repo.Create(ctx, note))

	deleted, err := repo.SoftDelete(ctx, note.ID, supervisorActor())
	require.NoError(t, err)
	assert.True(t, deleted.Deleted)
	require.NotNil(t, deleted.UpdatedBy)
	assert.Equal(t, "chefe", *deleted.UpdatedBy)

	// The row stays readable by id
	found, err := repo.FindByID(ctx, note.ID)
	require.NoError(t, err)
	assert.True(t, found.Deleted)

	// And stays in the raw collection
	all, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].Deleted)
}

func TestRecordRepo_SoftDelete_MissingID(t *testing.T) {
	repo := NewNoteRepository(testDB(t))

	_, err := repo.SoftDelete(context.Background(), uuid.New(), testActor())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRecordRepo_All_NewestFirst(t *testing.T) {
	db := testDB(t)
	repo := NewNoteRepository(db)
	ctx := context.Background()

	old := newNote("antiga", models.CategoryRadar)
	require.NoError(t, repo.Create(ctx, old))
	// Push the first row into the past; sqlite timestamp resolution is
	// too coarse to rely on insertion order alone.
	require.NoError(t, db.Model(old).Update("created_at", time.Now().UTC().Add(-time.Hour)).Error)

	recent := newNote("recente", models.CategoryRadar)
	require.NoError(t, repo.Create(ctx, recent))

	all, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "recente", all[0].Title)
	assert.Equal(t, "antiga", all[1].Title)
}

func TestRecordRepo_PurgeDeletedBefore(t *testing.T) {
	db := testDB(t)
	repo := NewNoteRepository(db)
	ctx := context.Background()

	expired := newNote("expirada", models.CategoryRadar)
	require.NoError(t, repo.Create(ctx, expired))
	_, err := repo.SoftDelete(ctx, expired.ID, testActor())
	require.NoError(t, err)
	require.NoError(t, db.Model(expired).Update("updated_at", time.Now().UTC().Add(-48*time.Hour)).Error)

	fresh := newNote("recente", models.CategoryRadar)
	require.NoError(t, repo.Create(ctx, fresh))
	_, err = repo.SoftDelete(ctx, fresh.ID, testActor())
	require.NoError(t, err)

	live := newNote("viva", models.CategoryRadar)
	require.NoError(t, repo.Create(ctx, live))

	purged, err := repo.PurgeDeletedBefore(ctx, time.Now().UTC().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	// Only the expired soft-deleted row is gone
	_, err = repo.FindByID(ctx, expired.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = repo.FindByID(ctx, fresh.ID)
	assert.NoError(t, err)

	_, err = repo.FindByID(ctx, live.ID)
	assert.NoError(t, err)
}
