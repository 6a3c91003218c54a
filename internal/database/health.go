package database

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ===========================================================================
// Connection Health Watcher
// Periodically pings the database and exposes the last known state.
// Connectivity loss is non-fatal: views keep serving their last snapshot
// and the watcher state drives the /health endpoint and the client banner.
// ===========================================================================

// HealthStatus is the last observed connectivity state.
type HealthStatus string

const (
	StatusHealthy  HealthStatus = "healthy"
	StatusDegraded HealthStatus = "degraded"
)

// HealthWatcher pings the database on an interval.
type HealthWatcher struct {
	db       *gorm.DB
	interval time.Duration
	logger   *zap.Logger

	mu        sync.RWMutex
	status    HealthStatus
	lastCheck time.Time
	lastErr   error
}

// NewHealthWatcher creates a watcher; Start must be called to begin pinging.
func NewHealthWatcher(db *gorm.DB, interval time.Duration, logger *zap.Logger) *HealthWatcher {
	return &HealthWatcher{
		db:       db,
		interval: interval,
		logger:   logger,
		status:   StatusHealthy,
	}
}

// Start pings until ctx is cancelled.
func (w *HealthWatcher) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.check(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.check(ctx)
		}
	}
}

func (w *HealthWatcher) check(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var err error
	sqlDB, dbErr := w.db.DB()
	if dbErr != nil {
		err = dbErr
	} else {
		err = sqlDB.PingContext(pingCtx)
	}

	w.mu.Lock()
	prev := w.status
	w.lastCheck = time.Now()
	w.lastErr = err
	if err != nil {
		w.status = StatusDegraded
	} else {
		w.status = StatusHealthy
	}
	cur := w.status
	w.mu.Unlock()

	if cur != prev {
		if cur == StatusDegraded {
			w.logger.Warn("database connectivity lost", zap.Error(err))
		} else {
			w.logger.Info("database connectivity restored")
		}
	}
}

// Status returns the last observed state.
func (w *HealthWatcher) Status() HealthStatus {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.status
}

// LastCheck returns when the state was last refreshed.
func (w *HealthWatcher) LastCheck() time.Time {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.lastCheck
}

// Healthy reports whether the database was reachable at the last check.
func (w *HealthWatcher) Healthy() bool {
	return w.Status() == StatusHealthy
}
