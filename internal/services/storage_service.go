package services

import (
	"context"

	"radarboard/internal/dto"
	"radarboard/internal/models"
)

// ===========================================================================
// Storage Service Interface
// The storage-cell singleton and its append-only audit log. A save always
// overwrites all six cells and appends exactly one log entry; the two writes
// are atomic. Concurrent saves resolve last-write-wins on the singleton
// while the log keeps one entry per attempt.
// ===========================================================================

// StorageService interface for storage-cell operations
type StorageService interface {
	// Get returns the current selection, ErrNotFound before the first save
	Get(ctx context.Context) (*models.StorageSelection, error)

	// Save overwrites the selection and appends one audit log entry
	Save(ctx context.Context, viewer Viewer, req dto.SaveStorageRequest) (*models.StorageSelection, error)

	// Logs returns one page of the audit trail plus the total entry
	// count, oldest first
	Logs(ctx context.Context, page dto.PaginationRequest) ([]models.StorageLog, int64, error)

	// Subscribe streams the current selection after every save
	Subscribe() (<-chan []models.StorageSelection, func())
}
