package repositories

import (
	"radarboard/internal/models"

	"gorm.io/gorm"
)

// ===========================================================================
// Note Repository GORM Implementation
// ===========================================================================

// noteRepo implements NoteRepository
type noteRepo struct {
	recordRepo[models.Note]
}

// NewNoteRepository creates a NoteRepository backed by GORM.
func NewNoteRepository(db *gorm.DB) NoteRepository {
	return &noteRepo{recordRepo: newRecordRepo[models.Note](db)}
}
