package repositories

import (
	"context"
	"errors"
	"time"

	apperrors "radarboard/internal/errors"
	"radarboard/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ===========================================================================
// Repository base
// Shared record-store semantics for the auditable aggregates (Note, Task,
// Annotation):
//   - ids are store-assigned on create, createdAt/updatedAt use the server
//     clock (client clocks are never trusted for ordering)
//   - Update is a partial merge: only the supplied columns change, audit
//     stamps are set unconditionally, and the target row must exist
//     (ErrNotFound otherwise - a merge never creates a partial row)
//   - SoftDelete flips the deleted flag; the row stays readable by id
//   - All returns the raw collection, deleted rows included, newest first;
//     consumers filter
// ===========================================================================

// FindOptions query options for list methods
type FindOptions struct {
	// Offset paging start position
	Offset int

	// Limit max record count
	Limit int

	// OrderBy sort column
	OrderBy string

	// OrderDir "asc" or "desc"
	OrderDir string
}

// SetDefaults applies the standard listing defaults (newest first).
func (o *FindOptions) SetDefaults() {
	if o.Limit == 0 {
		o.Limit = 20
	}
	if o.OrderBy == "" {
		o.OrderBy = "created_at"
	}
	if o.OrderDir == "" {
		o.OrderDir = "desc"
	}
}

// GetOrderClause builds the ORDER BY clause.
func (o *FindOptions) GetOrderClause() string {
	return o.OrderBy + " " + o.OrderDir
}

// RecordRepository is the generic contract of the auditable aggregates.
type RecordRepository[T any] interface {
	// Create stores a new record with a fresh id and server timestamps
	Create(ctx context.Context, entity *T) error

	// FindByID returns the record, soft-deleted or not
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)

	// All returns the entire collection, deleted included, newest first
	All(ctx context.Context) ([]T, error)

	// Update partially merges the supplied columns and stamps the actor
	Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}, actor models.Actor) (*T, error)

	// SoftDelete marks the record deleted and stamps the actor
	SoftDelete(ctx context.Context, id uuid.UUID, actor models.Actor) (*T, error)

	// PurgeDeletedBefore physically removes soft-deleted rows older than cutoff
	PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// recordRepo implements RecordRepository with GORM.
type recordRepo[T any] struct {
	db *gorm.DB
}

func newRecordRepo[T any](db *gorm.DB) recordRepo[T] {
	return recordRepo[T]{db: db}
}

// Create stores a new record. The BeforeCreate hook assigns the UUID; GORM
// stamps created_at/updated_at from the server clock.
func (r *recordRepo[T]) Create(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Create(entity).Error
}

// FindByID returns the record by id, including soft-deleted rows.
func (r *recordRepo[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var entity T
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

// All returns the whole collection, deleted rows included, newest first.
func (r *recordRepo[T]) All(ctx context.Context) ([]T, error) {
	var entities []T
	err := r.db.WithContext(ctx).
		Order("created_at desc").
		Find(&entities).Error
	return entities, err
}

// Update merges only the supplied columns into the existing row and stamps
// updated_by/updated_by_department/updated_at unconditionally. The row must
// already exist: merging into a missing id returns ErrNotFound instead of
// creating a malformed partial record.
func (r *recordRepo[T]) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}, actor models.Actor) (*T, error) {
	if _, err := r.FindByID(ctx, id); err != nil {
		return nil, err
	}

	merged := make(map[string]interface{}, len(fields)+3)
	for k, v := range fields {
		merged[k] = v
	}
	merged["updated_by"] = actor.Username
	merged["updated_by_department"] = actor.Department
	merged["updated_at"] = time.Now().UTC().Truncate(time.Millisecond)

	err := r.db.WithContext(ctx).
		Model(new(T)).
		Where("id = ?", id).
		Updates(merged).Error
	if err != nil {
		return nil, err
	}

	return r.FindByID(ctx, id)
}

// SoftDelete flips the deleted flag with full audit stamps. The row is not
// physically removed; listings filter it out while concurrent readers can
// still resolve the id.
func (r *recordRepo[T]) SoftDelete(ctx context.Context, id uuid.UUID, actor models.Actor) (*T, error) {
	return r.Update(ctx, id, map[string]interface{}{"deleted": true}, actor)
}

// PurgeDeletedBefore removes soft-deleted rows whose last write is older
// than cutoff. Used only by the retention sweeper.
func (r *recordRepo[T]) PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("deleted = ? AND updated_at < ?", true, cutoff).
		Delete(new(T))
	return res.RowsAffected, res.Error
}
