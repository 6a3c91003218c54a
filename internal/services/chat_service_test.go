package services

import (
	"context"
	"testing"

	"radarboard/internal/dto"
	apperrors "radarboard/internal/errors"
	"radarboard/internal/realtime"
	"radarboard/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChatService(t *testing.T) ChatService {
	t.Helper()
	repo := repositories.NewPrivateMessageRepository(serviceDB(t))
	return NewChatService(repo, realtime.NewNoopPublisher(), nopLogger())
}

func allow(t *testing.T, svc ChatService, owner Viewer, contact Viewer) {
	t.Helper()
	err := svc.AddContact(context.Background(), owner, dto.AddContactRequest{
		ContactUserID: contact.UserID,
		Username:      contact.Username,
		Department:    string(contact.Department),
	})
	require.NoError(t, err)
}

func TestChatService_SendRequiresRecipientGrant(t *testing.T) {
	svc := newChatService(t)
	ctx := context.Background()

	_, err := svc.Send(ctx, ccoViewer(), dto.SendMessageRequest{
		RecipientID:   balancaViewer().UserID,
		RecipientName: "balanca1",
		Content:       "oi",
	})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	// The recipient allows the sender; only then does the send go through.
	allow(t, svc, balancaViewer(), ccoViewer())

	msg, err := svc.Send(ctx, ccoViewer(), dto.SendMessageRequest{
		RecipientID:   balancaViewer().UserID,
		RecipientName: "balanca1",
		Content:       "oi",
	})
	require.NoError(t, err)
	assert.Equal(t, "cco1", msg.SenderName)
	assert.False(t, msg.Read)
}

func TestChatService_SenderCannotSelfGrant(t *testing.T) {
	svc := newChatService(t)
	ctx := context.Background()

	// An entry on the sender's OWN list is not a grant from the recipient.
	allow(t, svc, ccoViewer(), balancaViewer())

	_, err := svc.Send(ctx, ccoViewer(), dto.SendMessageRequest{
		RecipientID:   balancaViewer().UserID,
		RecipientName: "balanca1",
		Content:       "oi",
	})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestChatService_SupervisorGrantsOnBehalf(t *testing.T) {
	svc := newChatService(t)
	ctx := context.Background()

	// Operators cannot write to another user's list.
	err := svc.AddContact(ctx, ccoViewer(), dto.AddContactRequest{
		OwnerID:       balancaViewer().UserID,
		ContactUserID: ccoViewer().UserID,
		Username:      "cco1",
		Department:    "cco",
	})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	err = svc.AddContact(ctx, supervisorViewer(), dto.AddContactRequest{
		OwnerID:       balancaViewer().UserID,
		ContactUserID: ccoViewer().UserID,
		Username:      "cco1",
		Department:    "cco",
	})
	require.NoError(t, err)

	contacts, err := svc.Contacts(ctx, balancaViewer())
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, supervisorViewer().UserID, contacts[0].AllowedBy)

	_, err = svc.Send(ctx, ccoViewer(), dto.SendMessageRequest{
		RecipientID:   balancaViewer().UserID,
		RecipientName: "balanca1",
		Content:       "oi",
	})
	require.NoError(t, err)
}

func TestChatService_SupervisorBypassesAllowList(t *testing.T) {
	svc := newChatService(t)

	msg, err := svc.Send(context.Background(), supervisorViewer(), dto.SendMessageRequest{
		RecipientID:   ccoViewer().UserID,
		RecipientName: "cco1",
		Content:       "aviso",
	})
	require.NoError(t, err)
	assert.Equal(t, "chefe", msg.SenderName)
}

func TestChatService_SendToSelfRejected(t *testing.T) {
	svc := newChatService(t)

	_, err := svc.Send(context.Background(), ccoViewer(), dto.SendMessageRequest{
		RecipientID:   ccoViewer().UserID,
		RecipientName: "cco1",
		Content:       "eco",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestChatService_MessagesVisibleToBothSides(t *testing.T) {
	svc := newChatService(t)
	ctx := context.Background()

	allow(t, svc, balancaViewer(), ccoViewer())
	_, err := svc.Send(ctx, ccoViewer(), dto.SendMessageRequest{
		RecipientID:   balancaViewer().UserID,
		RecipientName: "balanca1",
		Content:       "oi",
	})
	require.NoError(t, err)

	sent, err := svc.Messages(ctx, ccoViewer())
	require.NoError(t, err)
	assert.Len(t, sent, 1)

	received, err := svc.Messages(ctx, balancaViewer())
	require.NoError(t, err)
	assert.Len(t, received, 1)

	other, err := svc.Messages(ctx, supervisorViewer())
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestChatService_MarkReadOnlyRecipient(t *testing.T) {
	svc := newChatService(t)
	ctx := context.Background()

	allow(t, svc, balancaViewer(), ccoViewer())
	msg, err := svc.Send(ctx, ccoViewer(), dto.SendMessageRequest{
		RecipientID:   balancaViewer().UserID,
		RecipientName: "balanca1",
		Content:       "oi",
	})
	require.NoError(t, err)

	// The sender cannot mark their own message as read
	err = svc.MarkRead(ctx, ccoViewer(), msg.ID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	require.NoError(t, svc.MarkRead(ctx, balancaViewer(), msg.ID))

	messages, err := svc.Messages(ctx, balancaViewer())
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.True(t, messages[0].Read)
}

func TestChatService_MarkReadMissingID(t *testing.T) {
	svc := newChatService(t)

	err := svc.MarkRead(context.Background(), ccoViewer(), uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestChatService_ContactLifecycle(t *testing.T) {
	svc := newChatService(t)
	ctx := context.Background()

	allow(t, svc, ccoViewer(), balancaViewer())

	contacts, err := svc.Contacts(ctx, ccoViewer())
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, balancaViewer().UserID, contacts[0].ContactUserID)

	require.NoError(t, svc.RemoveContact(ctx, ccoViewer(), balancaViewer().UserID))

	contacts, err = svc.Contacts(ctx, ccoViewer())
	require.NoError(t, err)
	assert.Empty(t, contacts)
}
