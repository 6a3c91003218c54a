package services

import (
	"context"
	"fmt"

	"radarboard/internal/dto"
	apperrors "radarboard/internal/errors"
	"radarboard/internal/models"
	"radarboard/internal/realtime"
	"radarboard/internal/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ===========================================================================
// Note Service Implementation
// ===========================================================================

// noteServiceImpl implements NoteService
type noteServiceImpl struct {
	repo      repositories.NoteRepository
	hub       *realtime.Hub[models.Note]
	publisher realtime.Publisher
	logger    *zap.Logger
}

// NewNoteService creates a new NoteService
func NewNoteService(
	repo repositories.NoteRepository,
	hub *realtime.Hub[models.Note],
	publisher realtime.Publisher,
	logger *zap.Logger,
) NoteService {
	return &noteServiceImpl{
		repo:      repo,
		hub:       hub,
		publisher: publisher,
		logger:    logger,
	}
}

// Create stores a new note owned by the caller
func (s *noteServiceImpl) Create(ctx context.Context, viewer Viewer, req dto.CreateNoteRequest) (*models.Note, error) {
	category := models.Category(req.Category)
	if !category.Valid() {
		return nil, apperrors.ErrInvalidInput
	}

	note := &models.Note{
		RecordBase: models.RecordBase{
			CreatedBy:           viewer.Username,
			CreatedByDepartment: viewer.Department,
		},
		Title:    req.Title,
		Content:  req.Content,
		Category: category,
		UserID:   viewer.UserID,
	}

	if err := s.repo.Create(ctx, note); err != nil {
		s.logger.Error("create note failed",
			zap.Error(err),
			zap.String("user", viewer.Username),
		)
		return nil, fmt.Errorf("create note: %w", err)
	}

	s.broadcast(ctx)
	return note, nil
}

// Get returns a single note by id, soft-deleted or not
func (s *noteServiceImpl) Get(ctx context.Context, viewer Viewer, id uuid.UUID) (*models.Note, error) {
	note, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !note.Category.Shared() && !viewer.Supervisor() && note.UserID != viewer.UserID {
		return nil, apperrors.ErrForbidden
	}
	return note, nil
}

// List returns the notes visible to the caller, newest first
func (s *noteServiceImpl) List(ctx context.Context, viewer Viewer) ([]models.Note, error) {
	all, err := s.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return filterNotes(all, viewer), nil
}

// ListCategory returns the caller's visible notes in one category
func (s *noteServiceImpl) ListCategory(ctx context.Context, viewer Viewer, category models.Category) ([]models.Note, error) {
	if !category.Valid() {
		return nil, apperrors.ErrInvalidInput
	}

	visible, err := s.List(ctx, viewer)
	if err != nil {
		return nil, err
	}

	out := make([]models.Note, 0, len(visible))
	for _, n := range visible {
		if n.Category == category {
			out = append(out, n)
		}
	}
	return out, nil
}

// Update partially merges the supplied fields into the note
func (s *noteServiceImpl) Update(ctx context.Context, viewer Viewer, id uuid.UUID, req dto.UpdateNoteRequest) (*models.Note, error) {
	if err := s.authorize(ctx, viewer, id); err != nil {
		return nil, err
	}

	fields := make(map[string]interface{})
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Content != nil {
		fields["content"] = *req.Content
	}
	if req.Category != nil {
		category := models.Category(*req.Category)
		if !category.Valid() {
			return nil, apperrors.ErrInvalidInput
		}
		fields["category"] = category
	}

	note, err := s.repo.Update(ctx, id, fields, viewer.Actor())
	if err != nil {
		return nil, err
	}

	s.broadcast(ctx)
	return note, nil
}

// ToggleCompleted flips the done flag of a task-like note
func (s *noteServiceImpl) ToggleCompleted(ctx context.Context, viewer Viewer, id uuid.UUID, completed bool) (*models.Note, error) {
	if err := s.authorize(ctx, viewer, id); err != nil {
		return nil, err
	}

	note, err := s.repo.Update(ctx, id, map[string]interface{}{"completed": completed}, viewer.Actor())
	if err != nil {
		return nil, err
	}

	s.broadcast(ctx)
	return note, nil
}

// Delete soft-deletes the note
func (s *noteServiceImpl) Delete(ctx context.Context, viewer Viewer, id uuid.UUID) error {
	if err := s.authorize(ctx, viewer, id); err != nil {
		return err
	}

	if _, err := s.repo.SoftDelete(ctx, id, viewer.Actor()); err != nil {
		return err
	}

	s.broadcast(ctx)
	return nil
}

// Subscribe streams the caller's filtered view of the collection
func (s *noteServiceImpl) Subscribe(viewer Viewer) (<-chan []models.Note, func()) {
	supervisor := viewer.Supervisor()
	return s.hub.Subscribe(func(n models.Note) bool {
		return n.VisibleTo(viewer.UserID, supervisor)
	})
}

// authorize checks write access: shared categories are writable by every
// authenticated user, private ones only by their owner or a supervisor.
func (s *noteServiceImpl) authorize(ctx context.Context, viewer Viewer, id uuid.UUID) error {
	note, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if note.Category.Shared() || viewer.Supervisor() || note.UserID == viewer.UserID {
		return nil
	}
	return apperrors.ErrForbidden
}

// broadcast republishes the full collection snapshot after a write. Failures
// are logged, never surfaced: the write itself has already been persisted.
// The in-process hub carries the raw snapshot (each subscriber filters to
// its own scope); the shared Centrifugo channel only ever carries the
// shared boards, never private-category or deleted rows.
func (s *noteServiceImpl) broadcast(ctx context.Context) {
	all, err := s.repo.All(ctx)
	if err != nil {
		s.logger.Error("load note snapshot failed", zap.Error(err))
		return
	}

	s.hub.Publish(all)

	shared := make([]models.Note, 0, len(all))
	for _, n := range all {
		if n.Category.Shared() && !n.Deleted {
			shared = append(shared, n)
		}
	}
	if err := s.publisher.PublishNotes(shared); err != nil {
		s.logger.Warn("publish note snapshot failed", zap.Error(err))
	}
}

// filterNotes applies the caller's visibility scope to a raw snapshot.
func filterNotes(all []models.Note, viewer Viewer) []models.Note {
	supervisor := viewer.Supervisor()
	out := make([]models.Note, 0, len(all))
	for _, n := range all {
		if n.VisibleTo(viewer.UserID, supervisor) {
			out = append(out, n)
		}
	}
	return out
}
