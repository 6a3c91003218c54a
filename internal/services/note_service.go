package services

import (
	"context"

	"radarboard/internal/dto"
	"radarboard/internal/models"

	"github.com/google/uuid"
)

// ===========================================================================
// Note Service Interface
// Shift notes and the shared boards (RADAR, INFORMACOES). Every write
// republishes the full collection snapshot to subscribers.
// ===========================================================================

// NoteService interface for note operations
type NoteService interface {
	// Create stores a new note owned by the caller
	Create(ctx context.Context, viewer Viewer, req dto.CreateNoteRequest) (*models.Note, error)

	// Get returns a single note by id, soft-deleted or not
	Get(ctx context.Context, viewer Viewer, id uuid.UUID) (*models.Note, error)

	// List returns the notes visible to the caller, newest first
	List(ctx context.Context, viewer Viewer) ([]models.Note, error)

	// ListCategory returns the caller's visible notes in one category
	ListCategory(ctx context.Context, viewer Viewer, category models.Category) ([]models.Note, error)

	// Update partially merges the supplied fields into the note
	Update(ctx context.Context, viewer Viewer, id uuid.UUID, req dto.UpdateNoteRequest) (*models.Note, error)

	// ToggleCompleted flips the done flag of a task-like note
	ToggleCompleted(ctx context.Context, viewer Viewer, id uuid.UUID, completed bool) (*models.Note, error)

	// Delete soft-deletes the note; it stays readable by id
	Delete(ctx context.Context, viewer Viewer, id uuid.UUID) error

	// Subscribe streams the caller's filtered view of the collection.
	// The channel receives the current snapshot immediately (when one
	// exists) and a fresh one after every write.
	Subscribe(viewer Viewer) (<-chan []models.Note, func())
}
