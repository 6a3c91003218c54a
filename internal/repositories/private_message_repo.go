package repositories

import (
	"context"

	apperrors "radarboard/internal/errors"
	"radarboard/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ===========================================================================
// Private Message Repository GORM Implementation
// ===========================================================================

// privateMessageRepo implements PrivateMessageRepository
type privateMessageRepo struct {
	db *gorm.DB
}

// NewPrivateMessageRepository creates a PrivateMessageRepository backed by GORM.
func NewPrivateMessageRepository(db *gorm.DB) PrivateMessageRepository {
	return &privateMessageRepo{db: db}
}

// Create stores a new message
func (r *privateMessageRepo) Create(ctx context.Context, msg *models.PrivateMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

// ListForUser returns every message the user sent or received, newest first
func (r *privateMessageRepo) ListForUser(ctx context.Context, userID string) ([]models.PrivateMessage, error) {
	var messages []models.PrivateMessage
	err := r.db.WithContext(ctx).
		Where("sender_id = ? OR recipient_id = ?", userID, userID).
		Order("created_at desc").
		Find(&messages).Error
	return messages, err
}

// MarkRead flags a message as read
func (r *privateMessageRepo) MarkRead(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Model(&models.PrivateMessage{}).
		Where("id = ?", id).
		Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListContacts returns a user's chat allow-list
func (r *privateMessageRepo) ListContacts(ctx context.Context, userID string) ([]models.PrivateChatContact, error) {
	var contacts []models.PrivateChatContact
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("username asc").
		Find(&contacts).Error
	return contacts, err
}

// AddContact adds or refreshes an allow-list entry (idempotent on the pair)
func (r *privateMessageRepo) AddContact(ctx context.Context, contact *models.PrivateChatContact) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "contact_user_id"}},
		UpdateAll: true,
	}).Create(contact).Error
}

// RemoveContact removes an allow-list entry
func (r *privateMessageRepo) RemoveContact(ctx context.Context, userID, contactUserID string) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND contact_user_id = ?", userID, contactUserID).
		Delete(&models.PrivateChatContact{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
