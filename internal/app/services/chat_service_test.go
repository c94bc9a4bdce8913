package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omnalage/skill-exchange-platform/internal/app/models"
	"github.com/omnalage/skill-exchange-platform/internal/app/repositories"
	"github.com/omnalage/skill-exchange-platform/internal/pkg/apperrors"
)

func TestSendMessage_CreatesConversationAndReadsBack(t *testing.T) {
	store := &fakeConversationStore{}
	service := NewChatService(store)
	ctx := context.Background()

	sent, err := service.SendMessage(ctx, 1, 2, "hello")
	require.NoError(t, err)
	assert.Equal(t, int64(1), sent.Sender)
	assert.Equal(t, int64(2), sent.Receiver)
	assert.False(t, sent.Timestamp.IsZero())

	_, err = service.SendMessage(ctx, 2, 1, "hi back")
	require.NoError(t, err)

	// Both argument orders read the same conversation
	forward, err := service.GetMessages(ctx, 1, 2, nil)
	require.NoError(t, err)
	reverse, err := service.GetMessages(ctx, 2, 1, nil)
	require.NoError(t, err)

	require.Len(t, forward.Messages, 2)
	assert.Equal(t, forward.Messages, reverse.Messages)
	assert.Equal(t, "hello", forward.Messages[0].Content)
	assert.Equal(t, "hi back", forward.Messages[1].Content)

	// One conversation row for the pair
	assert.Len(t, store.conversations, 1)
}

func TestSendMessage_Validation(t *testing.T) {
	service := NewChatService(&fakeConversationStore{})
	ctx := context.Background()

	_, err := service.SendMessage(ctx, 1, 2, "   ")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = service.SendMessage(ctx, 1, 1, "talking to myself")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestSendMessage_AppendFailure(t *testing.T) {
	boom := errors.New("append failed")
	service := NewChatService(&fakeConversationStore{appendErr: boom})

	_, err := service.SendMessage(context.Background(), 1, 2, "hello")
	assert.ErrorIs(t, err, boom)
}

func TestGetMessages_EmptyHistory(t *testing.T) {
	service := NewChatService(&fakeConversationStore{})

	history, err := service.GetMessages(context.Background(), 1, 2, nil)
	require.NoError(t, err)
	assert.NotNil(t, history.Messages)
	assert.Empty(t, history.Messages)
}

func TestGetMessages_BeforeFilter(t *testing.T) {
	store := &fakeConversationStore{}
	service := NewChatService(store)
	ctx := context.Background()

	_, err := service.SendMessage(ctx, 1, 2, "first")
	require.NoError(t, err)
	cutoff := time.Now().Add(time.Minute)
	// Force a later timestamp on the second message
	conversation, err := store.GetOrCreate(ctx, 1, 2)
	require.NoError(t, err)
	_, err = store.AppendMessage(ctx, conversation.ID, testMessage(conversation.ID, 2, 1, "second", cutoff.Add(time.Minute)))
	require.NoError(t, err)

	history, err := service.GetMessages(ctx, 1, 2, &repositories.MessageFilter{Before: &cutoff})
	require.NoError(t, err)
	require.Len(t, history.Messages, 1)
	assert.Equal(t, "first", history.Messages[0].Content)
}

func TestGetMessages_LimitReturnsNewest(t *testing.T) {
	store := &fakeConversationStore{}
	service := NewChatService(store)
	ctx := context.Background()

	conversation, err := store.GetOrCreate(ctx, 1, 2)
	require.NoError(t, err)
	base := time.Now()
	for i, content := range []string{"oldest", "middle", "newest"} {
		_, err = store.AppendMessage(ctx, conversation.ID, testMessage(conversation.ID, 1, 2, content, base.Add(time.Duration(i)*time.Minute)))
		require.NoError(t, err)
	}

	history, err := service.GetMessages(ctx, 1, 2, &repositories.MessageFilter{Limit: 2})
	require.NoError(t, err)
	require.Len(t, history.Messages, 2)
	assert.Equal(t, "middle", history.Messages[0].Content)
	assert.Equal(t, "newest", history.Messages[1].Content)
}

func TestGetMessages_DropsForeignPairRows(t *testing.T) {
	store := &fakeConversationStore{}
	service := NewChatService(store)
	ctx := context.Background()

	_, err := service.SendMessage(ctx, 1, 2, "ours")
	require.NoError(t, err)
	// Smuggle another pair's row into the same conversation log
	conversation, err := store.GetOrCreate(ctx, 1, 2)
	require.NoError(t, err)
	_, err = store.AppendMessage(ctx, conversation.ID, testMessage(conversation.ID, 1, 3, "theirs", time.Now()))
	require.NoError(t, err)

	history, err := service.GetMessages(ctx, 1, 2, nil)
	require.NoError(t, err)
	require.Len(t, history.Messages, 1)
	assert.Equal(t, "ours", history.Messages[0].Content)
}

func testMessage(conversationID, sender, receiver int64, content string, ts time.Time) *models.Message {
	return &models.Message{
		ConversationID: conversationID,
		SenderID:       sender,
		ReceiverID:     receiver,
		Content:        content,
		Timestamp:      ts,
	}
}
