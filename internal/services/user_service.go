package services

import (
	"context"

	"radarboard/internal/models"

	"github.com/google/uuid"
)

// ===========================================================================
// User Service Interface
// Profile listing for the contact picker and supervisor views.
// ===========================================================================

// UserService interface for user profile operations
type UserService interface {
	// List returns all user profiles ordered by username
	List(ctx context.Context) ([]models.User, error)

	// Get returns a single profile by id
	Get(ctx context.Context, id uuid.UUID) (*models.User, error)
}
