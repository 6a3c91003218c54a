package services

import (
	"context"
	"time"

	"radarboard/internal/config"
	"radarboard/internal/repositories"

	"go.uber.org/zap"
)

// ===========================================================================
// Retention Sweeper
// Background purge of soft-deleted records. Rows whose deleted flag has been
// set for longer than the retention window are physically removed; storage
// audit logs are never touched. A zero window disables purging entirely.
// ===========================================================================

// RetentionSweeper periodically purges expired soft-deleted rows.
type RetentionSweeper struct {
	purgers  map[string]repositories.Purger
	window   time.Duration
	interval time.Duration
	logger   *zap.Logger
}

// NewRetentionSweeper creates a sweeper over the named purgers.
func NewRetentionSweeper(cfg config.RetentionConfig, purgers map[string]repositories.Purger, logger *zap.Logger) *RetentionSweeper {
	return &RetentionSweeper{
		purgers:  purgers,
		window:   cfg.DeletedAfter,
		interval: cfg.SweepInterval,
		logger:   logger,
	}
}

// Run sweeps on the configured interval until the context is cancelled.
// One sweep happens immediately on start.
func (s *RetentionSweeper) Run(ctx context.Context) {
	if s.window <= 0 {
		s.logger.Info("retention purge disabled")
		return
	}

	s.logger.Info("retention sweeper started",
		zap.Duration("window", s.window),
		zap.Duration("interval", s.interval),
	)

	s.Sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("retention sweeper stopped")
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep runs a single purge pass over every registered collection.
func (s *RetentionSweeper) Sweep(ctx context.Context) {
	cutoff := time.Now().UTC().Add(-s.window)

	for name, purger := range s.purgers {
		purged, err := purger.PurgeDeletedBefore(ctx, cutoff)
		if err != nil {
			s.logger.Error("retention purge failed",
				zap.Error(err),
				zap.String("collection", name),
			)
			continue
		}
		if purged > 0 {
			s.logger.Info("retention purge",
				zap.String("collection", name),
				zap.Int64("purged", purged),
				zap.Time("cutoff", cutoff),
			)
		}
	}
}
