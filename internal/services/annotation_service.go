package services

import (
	"context"

	"radarboard/internal/dto"
	"radarboard/internal/models"

	"github.com/google/uuid"
)

// ===========================================================================
// Annotation Service Interface
// Free-standing shared annotations (stoppages, links, observations). Visible
// and writable by every authenticated user.
// ===========================================================================

// AnnotationService interface for annotation operations
type AnnotationService interface {
	// Create stores a new annotation
	Create(ctx context.Context, viewer Viewer, req dto.CreateAnnotationRequest) (*models.Annotation, error)

	// Get returns a single annotation by id, soft-deleted or not
	Get(ctx context.Context, id uuid.UUID) (*models.Annotation, error)

	// List returns the live annotations, newest first
	List(ctx context.Context) ([]models.Annotation, error)

	// Update partially merges the supplied fields
	Update(ctx context.Context, viewer Viewer, id uuid.UUID, req dto.UpdateAnnotationRequest) (*models.Annotation, error)

	// Delete soft-deletes the annotation
	Delete(ctx context.Context, viewer Viewer, id uuid.UUID) error

	// Subscribe streams the live annotation collection
	Subscribe() (<-chan []models.Annotation, func())
}
