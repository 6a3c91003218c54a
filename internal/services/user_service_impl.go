package services

import (
	"context"
	"fmt"

	"radarboard/internal/models"
	"radarboard/internal/repositories"

	"github.com/google/uuid"
)

// ===========================================================================
// User Service Implementation
// ===========================================================================

// userServiceImpl implements UserService
type userServiceImpl struct {
	repo repositories.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(repo repositories.UserRepository) UserService {
	return &userServiceImpl{repo: repo}
}

// List returns all user profiles ordered by username
func (s *userServiceImpl) List(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Get returns a single profile by id
func (s *userServiceImpl) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.repo.FindByID(ctx, id)
}
