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
// Annotation Service Implementation
// ===========================================================================

// annotationServiceImpl implements AnnotationService
type annotationServiceImpl struct {
	repo      repositories.AnnotationRepository
	hub       *realtime.Hub[models.Annotation]
	publisher realtime.Publisher
	logger    *zap.Logger
}

// NewAnnotationService creates a new AnnotationService
func NewAnnotationService(
	repo repositories.AnnotationRepository,
	hub *realtime.Hub[models.Annotation],
	publisher realtime.Publisher,
	logger *zap.Logger,
) AnnotationService {
	return &annotationServiceImpl{
		repo:      repo,
		hub:       hub,
		publisher: publisher,
		logger:    logger,
	}
}

// Create stores a new annotation
func (s *annotationServiceImpl) Create(ctx context.Context, viewer Viewer, req dto.CreateAnnotationRequest) (*models.Annotation, error) {
	annType := models.AnnotationGeral
	if req.Type != "" {
		annType = models.AnnotationType(req.Type)
		if !annType.Valid() {
			return nil, apperrors.ErrInvalidInput
		}
	}

	annotation := &models.Annotation{
		RecordBase: models.RecordBase{
			CreatedBy:           viewer.Username,
			CreatedByDepartment: viewer.Department,
		},
		Title:   req.Title,
		Content: req.Content,
		Type:    annType,
		URL:     req.URL,
	}

	if err := s.repo.Create(ctx, annotation); err != nil {
		s.logger.Error("create annotation failed",
			zap.Error(err),
			zap.String("user", viewer.Username),
		)
		return nil, fmt.Errorf("create annotation: %w", err)
	}

	s.broadcast(ctx)
	return annotation, nil
}

// Get returns a single annotation by id, soft-deleted or not
func (s *annotationServiceImpl) Get(ctx context.Context, id uuid.UUID) (*models.Annotation, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns the live annotations, newest first
func (s *annotationServiceImpl) List(ctx context.Context) ([]models.Annotation, error) {
	all, err := s.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list annotations: %w", err)
	}

	out := make([]models.Annotation, 0, len(all))
	for _, a := range all {
		if !a.Deleted {
			out = append(out, a)
		}
	}
	return out, nil
}

// Update partially merges the supplied fields
func (s *annotationServiceImpl) Update(ctx context.Context, viewer Viewer, id uuid.UUID, req dto.UpdateAnnotationRequest) (*models.Annotation, error) {
	fields := make(map[string]interface{})
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Content != nil {
		fields["content"] = *req.Content
	}
	if req.Type != nil {
		annType := models.AnnotationType(*req.Type)
		if !annType.Valid() {
			return nil, apperrors.ErrInvalidInput
		}
		fields["type"] = annType
	}
	if req.URL != nil {
		fields["url"] = *req.URL
	}

	annotation, err := s.repo.Update(ctx, id, fields, viewer.Actor())
	if err != nil {
		return nil, err
	}

	s.broadcast(ctx)
	return annotation, nil
}

// Delete soft-deletes the annotation
func (s *annotationServiceImpl) Delete(ctx context.Context, viewer Viewer, id uuid.UUID) error {
	if _, err := s.repo.SoftDelete(ctx, id, viewer.Actor()); err != nil {
		return err
	}

	s.broadcast(ctx)
	return nil
}

// Subscribe streams the live annotation collection
func (s *annotationServiceImpl) Subscribe() (<-chan []models.Annotation, func()) {
	return s.hub.Subscribe(func(a models.Annotation) bool {
		return !a.Deleted
	})
}

// broadcast republishes the full collection snapshot after a write.
func (s *annotationServiceImpl) broadcast(ctx context.Context) {
	all, err := s.repo.All(ctx)
	if err != nil {
		s.logger.Error("load annotation snapshot failed", zap.Error(err))
		return
	}

	s.hub.Publish(all)

	// Deleted rows stay out of the shared channel payload.
	live := make([]models.Annotation, 0, len(all))
	for _, a := range all {
		if !a.Deleted {
			live = append(live, a)
		}
	}
	if err := s.publisher.PublishAnnotations(live); err != nil {
		s.logger.Warn("publish annotation snapshot failed", zap.Error(err))
	}
}
