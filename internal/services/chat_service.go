package services

import (
	"context"

	"radarboard/internal/dto"
	"radarboard/internal/models"

	"github.com/google/uuid"
)

// ===========================================================================
// Chat Service Interface
// Direct messages between users, gated by the recipient's contact
// allow-list: a sender may only message users whose list carries them.
// After every send the full message snapshot of both participants is pushed
// to their private channels.
// ===========================================================================

// ChatService interface for private messaging
type ChatService interface {
	// Send stores a new message; the sender must be on the RECIPIENT's
	// allow-list (supervisors bypass the gate)
	Send(ctx context.Context, viewer Viewer, req dto.SendMessageRequest) (*models.PrivateMessage, error)

	// Messages returns every message the caller sent or received, newest first
	Messages(ctx context.Context, viewer Viewer) ([]models.PrivateMessage, error)

	// MarkRead flags a message as read; only the recipient may do this
	MarkRead(ctx context.Context, viewer Viewer, id uuid.UUID) error

	// Contacts returns the caller's allow-list
	Contacts(ctx context.Context, viewer Viewer) ([]models.PrivateChatContact, error)

	// AddContact grants a sender a place on an allow-list. The caller's own
	// list by default; granting onto another user's list is supervisor-only
	AddContact(ctx context.Context, viewer Viewer, req dto.AddContactRequest) error

	// RemoveContact removes a counterpart from the caller's list
	RemoveContact(ctx context.Context, viewer Viewer, contactUserID string) error
}
