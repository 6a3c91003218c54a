package repositories

import (
	"context"
	"time"

	"radarboard/internal/models"

	"github.com/google/uuid"
)

// ===========================================================================
// Repository interfaces, one per aggregate.
// ===========================================================================

// NoteRepository data access for shift notes and the shared boards.
type NoteRepository interface {
	RecordRepository[models.Note]
}

// TaskRepository data access for supervisor-assigned tasks.
type TaskRepository interface {
	RecordRepository[models.Task]
}

// AnnotationRepository data access for free-standing annotations.
type AnnotationRepository interface {
	RecordRepository[models.Annotation]
}

// StorageRepository data access for the storage-cell singleton and its
// append-only audit log.
type StorageRepository interface {
	// GetSelection returns the singleton row, ErrNotFound before first save
	GetSelection(ctx context.Context) (*models.StorageSelection, error)

	// SaveSelection overwrites the singleton AND appends exactly one log
	// entry in the same transaction. Either both writes happen or neither.
	SaveSelection(ctx context.Context, cells models.StorageCells, actor models.Actor) (*models.StorageSelection, *models.StorageLog, error)

	// ListLogs returns one page of the audit trail plus the total entry
	// count, ordered by timestamp ascending
	ListLogs(ctx context.Context, opts FindOptions) ([]models.StorageLog, int64, error)
}

// UserRepository data access for user profiles.
type UserRepository interface {
	// FindByID finds a user by id
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(ctx context.Context, username string) (*models.User, error)

	// List returns all users ordered by username
	List(ctx context.Context) ([]models.User, error)

	// Create stores a new user
	Create(ctx context.Context, user *models.User) error

	// Update saves the full user row
	Update(ctx context.Context, user *models.User) error
}

// PrivateMessageRepository data access for direct messages and the
// per-user contact allow-lists.
type PrivateMessageRepository interface {
	// Create stores a new message
	Create(ctx context.Context, msg *models.PrivateMessage) error

	// ListForUser returns every message the user sent or received,
	// newest first
	ListForUser(ctx context.Context, userID string) ([]models.PrivateMessage, error)

	// MarkRead flags a message as read; ErrNotFound when the id is missing
	MarkRead(ctx context.Context, id uuid.UUID) error

	// ListContacts returns a user's chat allow-list
	ListContacts(ctx context.Context, userID string) ([]models.PrivateChatContact, error)

	// AddContact adds (or refreshes) an allow-list entry
	AddContact(ctx context.Context, contact *models.PrivateChatContact) error

	// RemoveContact removes an allow-list entry
	RemoveContact(ctx context.Context, userID, contactUserID string) error
}

// Purger is the slice of a record repository the retention sweeper needs.
type Purger interface {
	PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
