package repositories

import (
	"context"
	"testing"
	"time"

	apperrors "radarboard/internal/errors"
	"radarboard/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMessage(sender, recipient, content string) *models.PrivateMessage {
	return &models.PrivateMessage{
		SenderID:         sender,
		SenderName:       sender,
		SenderDepartment: models.DepartmentCCO,
		RecipientID:      recipient,
		RecipientName:    recipient,
		Content:          content,
	}
}

func TestPrivateMessageRepo_ListForUser_BothDirections(t *testing.T) {
	db := testDB(t)
	repo := NewPrivateMessageRepository(db)
	ctx := context.Background()

	sent := newMessage("u1", "u2", "oi")
	require.NoError(t, repo.Create(ctx, sent))
	require.NoError(t, db.Model(sent).Update("created_at", time.Now().UTC().Add(-time.Hour)).Error)

	received := newMessage("u2", "u1", "tudo bem?")
	require.NoError(t, repo.Create(ctx, received))

	unrelated := newMessage("u3", "u4", "outro papo")
	require.NoError(t, repo.Create(ctx, unrelated))

	messages, err := repo.ListForUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, messages, 2)

	// Newest first
	assert.Equal(t, "tudo bem?", messages[0].Content)
	assert.Equal(t, "oi", messages[1].Content)
}

func TestPrivateMessageRepo_MarkRead(t *testing.T) {
	repo := NewPrivateMessageRepository(testDB(t))
	ctx := context.Background()

	msg := newMessage("u1", "u2", "oi")
	require.NoError(t, repo.Create(ctx, msg))
	require.False(t, msg.Read)

	require.NoError(t, repo.MarkRead(ctx, msg.ID))

	messages, err := repo.ListForUser(ctx, "u2")
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.True(t, messages[0].Read)
}

func TestPrivateMessageRepo_MarkRead_MissingID(t *testing.T) {
	repo := NewPrivateMessageRepository(testDB(t))

	err := repo.MarkRead(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestPrivateMessageRepo_AddContact_IdempotentOnPair(t *testing.T) {
	repo := NewPrivateMessageRepository(testDB(t))
	ctx := context.Background()

	first := &models.PrivateChatContact{
		UserID:        "u1",
		ContactUserID: "u2",
		Username:      "balanca1",
		Department:    models.DepartmentBalanca,
		AllowedBy:     "u1",
	}
	require.NoError(t, repo.AddContact(ctx, first))

	// Re-adding the same pair refreshes instead of duplicating
	again := &models.PrivateChatContact{
		UserID:        "u1",
		ContactUserID: "u2",
		Username:      "balanca1-renomeado",
		Department:    models.DepartmentBalanca,
		AllowedBy:     "u1",
	}
	require.NoError(t, repo.AddContact(ctx, again))

	contacts, err := repo.ListContacts(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, "balanca1-renomeado", contacts[0].Username)
}

func TestPrivateMessageRepo_RemoveContact(t *testing.T) {
	repo := NewPrivateMessageRepository(testDB(t))
	ctx := context.Background()

	contact := &models.PrivateChatContact{
		UserID:        "u1",
		ContactUserID: "u2",
		Username:      "balanca1",
		Department:    models.DepartmentBalanca,
		AllowedBy:     "u1",
	}
	require.NoError(t, repo.AddContact(ctx, contact))

	require.NoError(t, repo.RemoveContact(ctx, "u1", "u2"))

	contacts, err := repo.ListContacts(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, contacts)

	err = repo.RemoveContact(ctx, "u1", "u2")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
