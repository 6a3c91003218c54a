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
// Chat Service Implementation
// ===========================================================================

// chatServiceImpl implements ChatService
type chatServiceImpl struct {
	repo      repositories.PrivateMessageRepository
	publisher realtime.Publisher
	logger    *zap.Logger
}

// NewChatService creates a new ChatService
func NewChatService(
	repo repositories.PrivateMessageRepository,
	publisher realtime.Publisher,
	logger *zap.Logger,
) ChatService {
	return &chatServiceImpl{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// Send stores a new message after checking the recipient's allow-list
func (s *chatServiceImpl) Send(ctx context.Context, viewer Viewer, req dto.SendMessageRequest) (*models.PrivateMessage, error) {
	if req.RecipientID == viewer.UserID {
		return nil, apperrors.ErrInvalidInput
	}

	if !viewer.Supervisor() {
		// The gate lives on the recipient's side: the sender cannot grant
		// themselves access by editing their own list.
		allowed, err := s.isAllowed(ctx, req.RecipientID, viewer.UserID)
		if err != nil {
			return nil, fmt.Errorf("check contact list: %w", err)
		}
		if !allowed {
			return nil, apperrors.ErrForbidden
		}
	}

	msg := &models.PrivateMessage{
		SenderID:         viewer.UserID,
		SenderName:       viewer.Username,
		SenderDepartment: viewer.Department,
		RecipientID:      req.RecipientID,
		RecipientName:    req.RecipientName,
		Content:          req.Content,
	}

	if err := s.repo.Create(ctx, msg); err != nil {
		s.logger.Error("send message failed",
			zap.Error(err),
			zap.String("sender", viewer.Username),
		)
		return nil, fmt.Errorf("send message: %w", err)
	}

	s.broadcast(ctx, viewer.UserID)
	s.broadcast(ctx, req.RecipientID)

	return msg, nil
}

// Messages returns every message the caller sent or received, newest first
func (s *chatServiceImpl) Messages(ctx context.Context, viewer Viewer) ([]models.PrivateMessage, error) {
	return s.repo.ListForUser(ctx, viewer.UserID)
}

// MarkRead flags a message as read; only the recipient may do this
func (s *chatServiceImpl) MarkRead(ctx context.Context, viewer Viewer, id uuid.UUID) error {
	messages, err := s.repo.ListForUser(ctx, viewer.UserID)
	if err != nil {
		return fmt.Errorf("load messages: %w", err)
	}

	var target *models.PrivateMessage
	for i := range messages {
		if messages[i].ID == id {
			target = &messages[i]
			break
		}
	}
	if target == nil {
		return apperrors.ErrNotFound
	}
	if target.RecipientID != viewer.UserID {
		return apperrors.ErrForbidden
	}

	if err := s.repo.MarkRead(ctx, id); err != nil {
		return err
	}

	s.broadcast(ctx, viewer.UserID)
	return nil
}

// Contacts returns the caller's allow-list
func (s *chatServiceImpl) Contacts(ctx context.Context, viewer Viewer) ([]models.PrivateChatContact, error) {
	return s.repo.ListContacts(ctx, viewer.UserID)
}

// AddContact grants a sender a place on an allow-list. Callers manage
// their own list; placing a grant on someone else's list is supervisor-only.
func (s *chatServiceImpl) AddContact(ctx context.Context, viewer Viewer, req dto.AddContactRequest) error {
	owner := viewer.UserID
	if req.OwnerID != "" && req.OwnerID != viewer.UserID {
		if !viewer.Supervisor() {
			return apperrors.ErrForbidden
		}
		owner = req.OwnerID
	}
	if req.ContactUserID == owner {
		return apperrors.ErrInvalidInput
	}

	contact := &models.PrivateChatContact{
		UserID:        owner,
		ContactUserID: req.ContactUserID,
		Username:      req.Username,
		Department:    models.Department(req.Department),
		AllowedBy:     viewer.UserID,
	}

	if err := s.repo.AddContact(ctx, contact); err != nil {
		return fmt.Errorf("add contact: %w", err)
	}
	return nil
}

// RemoveContact removes a counterpart from the caller's list
func (s *chatServiceImpl) RemoveContact(ctx context.Context, viewer Viewer, contactUserID string) error {
	return s.repo.RemoveContact(ctx, viewer.UserID, contactUserID)
}

// isAllowed reports whether contactUserID is on userID's allow-list.
func (s *chatServiceImpl) isAllowed(ctx context.Context, userID, contactUserID string) (bool, error) {
	contacts, err := s.repo.ListContacts(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, c := range contacts {
		if c.ContactUserID == contactUserID {
			return true, nil
		}
	}
	return false, nil
}

// broadcast pushes a user's full message snapshot to their private channel.
func (s *chatServiceImpl) broadcast(ctx context.Context, userID string) {
	messages, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		s.logger.Error("load message snapshot failed",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return
	}

	if err := s.publisher.PublishPrivateMessages(userID, messages); err != nil {
		s.logger.Warn("publish message snapshot failed",
			zap.Error(err),
			zap.String("user_id", userID),
		)
	}
}
