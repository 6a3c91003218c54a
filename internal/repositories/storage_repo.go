package repositories

import (
	"context"
	"errors"
	"time"

	apperrors "radarboard/internal/errors"
	"radarboard/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ===========================================================================
// Storage Repository GORM Implementation
// The selection singleton and its audit log are written in ONE transaction:
// a selection overwrite without its log entry can never be observed. The
// log snapshot duplicates all six cells on purpose - readers never have to
// reconstruct state from diffs.
// ===========================================================================

// storageRepo implements StorageRepository
type storageRepo struct {
	db *gorm.DB
}

// NewStorageRepository creates a StorageRepository backed by GORM.
func NewStorageRepository(db *gorm.DB) StorageRepository {
	return &storageRepo{db: db}
}

// GetSelection returns the singleton row. ErrNotFound until the first save.
func (r *storageRepo) GetSelection(ctx context.Context) (*models.StorageSelection, error) {
	var sel models.StorageSelection
	err := r.db.WithContext(ctx).
		Where("id = ?", models.StorageSelectionID).
		First(&sel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &sel, nil
}

// SaveSelection overwrites the singleton row and appends exactly one log
// entry carrying the full six-cell snapshot, atomically. updated_at and the
// log timestamp come from the same server-clock reading.
func (r *storageRepo) SaveSelection(ctx context.Context, cells models.StorageCells, actor models.Actor) (*models.StorageSelection, *models.StorageLog, error) {
	now := time.Now().UTC().Truncate(time.Millisecond)

	sel := &models.StorageSelection{
		ID:                  models.StorageSelectionID,
		StorageCells:        cells,
		UpdatedBy:           actor.Username,
		UpdatedByDepartment: actor.Department,
		UpdatedAt:           now,
	}
	entry := &models.StorageLog{
		ChangedBy:  actor.Username,
		Department: actor.Department,
		Timestamp:  now,
		Changes:    models.LogChanges(cells),
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(sel).Error; err != nil {
			return err
		}
		return tx.Create(entry).Error
	})
	if err != nil {
		return nil, nil, err
	}

	return sel, entry, nil
}

// ListLogs returns one page of the audit trail, oldest first, plus the
// total entry count for the paging envelope.
func (r *storageRepo) ListLogs(ctx context.Context, opts FindOptions) ([]models.StorageLog, int64, error) {
	if opts.OrderBy == "" {
		opts.OrderBy = "timestamp"
		opts.OrderDir = "asc"
	}
	opts.SetDefaults()

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.StorageLog{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.StorageLog
	err := r.db.WithContext(ctx).
		Order(opts.GetOrderClause()).
		Offset(opts.Offset).
		Limit(opts.Limit).
		Find(&logs).Error
	return logs, total, err
}
