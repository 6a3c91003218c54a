package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ===========================================================================
// Private messaging
// Direct messages between two users plus the per-user contact allow-list
// that gates who may open a chat.
// ===========================================================================

// PrivateMessage is a direct message between two users.
type PrivateMessage struct {
	// ID primary key, assigned by the store
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	// SenderID sender user id
	SenderID string `gorm:"size:255;not null;index" json:"senderId"`

	// SenderName sender display name, denormalized for the feed
	SenderName string `gorm:"size:255;not null" json:"senderName"`

	// SenderDepartment sender department at send time
	SenderDepartment Department `gorm:"size:20;not null" json:"senderDepartment"`

	// RecipientID recipient user id
	RecipientID string `gorm:"size:255;not null;index" json:"recipientId"`

	// RecipientName recipient display name
	RecipientName string `gorm:"size:255;not null" json:"recipientName"`

	// Content message body
	Content string `gorm:"type:text;not null" json:"content"`

	// CreatedAt send time, server clock
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`

	// Read whether the recipient has seen the message
	Read bool `gorm:"not null;default:false" json:"read"`
}

// TableName keeps the original collection name.
func (PrivateMessage) TableName() string {
	return "private_messages"
}

// BeforeCreate assigns the store-side UUID when missing.
func (m *PrivateMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// Involves reports whether the given user id is sender or recipient.
func (m *PrivateMessage) Involves(userID string) bool {
	return m.SenderID == userID || m.RecipientID == userID
}

// PrivateChatContact is one entry of a user's chat allow-list.
type PrivateChatContact struct {
	// ID primary key
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"-"`

	// UserID owner of the contact list
	UserID string `gorm:"size:255;not null;uniqueIndex:idx_contact_pair" json:"-"`

	// ContactUserID the allowed counterpart
	ContactUserID string `gorm:"size:255;not null;uniqueIndex:idx_contact_pair" json:"userId"`

	// Username counterpart display name
	Username string `gorm:"size:255;not null" json:"username"`

	// Department counterpart department
	Department Department `gorm:"size:20;not null" json:"department"`

	// AllowedBy user id that granted this contact
	AllowedBy string `gorm:"size:255;not null" json:"allowedBy"`
}

// TableName keeps the original collection name.
func (PrivateChatContact) TableName() string {
	return "private_chat_contacts"
}

// BeforeCreate assigns the store-side UUID when missing.
func (c *PrivateChatContact) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
