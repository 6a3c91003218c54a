package services

import (
	"context"
	"fmt"

	"radarboard/internal/dto"
	"radarboard/internal/models"
	"radarboard/internal/realtime"
	"radarboard/internal/repositories"

	"go.uber.org/zap"
)

// ===========================================================================
// Storage Service Implementation
// ===========================================================================

// storageServiceImpl implements StorageService
type storageServiceImpl struct {
	repo      repositories.StorageRepository
	hub       *realtime.Hub[models.StorageSelection]
	publisher realtime.Publisher
	logger    *zap.Logger
}

// NewStorageService creates a new StorageService
func NewStorageService(
	repo repositories.StorageRepository,
	hub *realtime.Hub[models.StorageSelection],
	publisher realtime.Publisher,
	logger *zap.Logger,
) StorageService {
	return &storageServiceImpl{
		repo:      repo,
		hub:       hub,
		publisher: publisher,
		logger:    logger,
	}
}

// Get returns the current selection, ErrNotFound before the first save
func (s *storageServiceImpl) Get(ctx context.Context) (*models.StorageSelection, error) {
	return s.repo.GetSelection(ctx)
}

// Save overwrites the selection and appends one audit log entry
func (s *storageServiceImpl) Save(ctx context.Context, viewer Viewer, req dto.SaveStorageRequest) (*models.StorageSelection, error) {
	cells := models.StorageCells{
		TegRoad:           req.TegRoad,
		TegRoadTombador:   req.TegRoadTombador,
		TegRailwayMoega01: req.TegRailwayMoega01,
		TegRailwayMoega02: req.TegRailwayMoega02,
		TeagRoad:          req.TeagRoad,
		TeagRailway:       req.TeagRailway,
	}

	selection, entry, err := s.repo.SaveSelection(ctx, cells, viewer.Actor())
	if err != nil {
		s.logger.Error("save storage selection failed",
			zap.Error(err),
			zap.String("user", viewer.Username),
		)
		return nil, fmt.Errorf("save storage selection: %w", err)
	}

	s.logger.Info("storage selection saved",
		zap.String("user", viewer.Username),
		zap.String("log_id", entry.ID.String()),
	)

	s.hub.Publish([]models.StorageSelection{*selection})
	if err := s.publisher.PublishStorage(selection); err != nil {
		s.logger.Warn("publish storage snapshot failed", zap.Error(err))
	}

	return selection, nil
}

// Logs returns one page of the audit trail, oldest first
func (s *storageServiceImpl) Logs(ctx context.Context, page dto.PaginationRequest) ([]models.StorageLog, int64, error) {
	page.SetDefaults()
	return s.repo.ListLogs(ctx, repositories.FindOptions{
		Offset: page.Offset(),
		Limit:  page.Limit,
	})
}

// Subscribe streams the current selection after every save
func (s *storageServiceImpl) Subscribe() (<-chan []models.StorageSelection, func()) {
	return s.hub.Subscribe(nil)
}
