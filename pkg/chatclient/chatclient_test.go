package chatclient

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mu    sync.Mutex
	saved []Event
	err   error
	block chan struct{}
}

func (s *fakeStore) Append(ctx context.Context, sender, receiver int64, content string) error {
	if s.block != nil {
		select {
		case <-s.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if s.err != nil {
		return s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = append(s.saved, Event{Sender: sender, Receiver: receiver, Content: content})
	return nil
}

type fakePublisher struct {
	mu       sync.Mutex
	messages []Event
	typing   int
	err      error
}

func (p *fakePublisher) PublishMessage(event Event) error {
	if p.err != nil {
		return p.err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, event)
	return nil
}

func (p *fakePublisher) PublishTyping(from, to int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.typing++
	return nil
}

func TestSend_PersistsThenPublishes(t *testing.T) {
	store := &fakeStore{}
	publisher := &fakePublisher{}
	conversation := NewConversation(1, 2, store, publisher)

	require.NoError(t, conversation.Send(context.Background(), "hello"))

	messages := conversation.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, StateDelivered, messages[0].State)
	assert.Equal(t, int64(1), messages[0].Sender)
	assert.Equal(t, int64(2), messages[0].Receiver)

	require.Len(t, store.saved, 1)
	require.Len(t, publisher.messages, 1)
	assert.Equal(t, "hello", publisher.messages[0].Content)
}

func TestSend_PersistenceFailure(t *testing.T) {
	store := &fakeStore{err: errors.New("server unavailable")}
	publisher := &fakePublisher{}
	conversation := NewConversation(1, 2, store, publisher)

	err := conversation.Send(context.Background(), "hello")
	require.Error(t, err)

	// The message stays visible, flagged Failed, and nothing was published
	messages := conversation.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, StateFailed, messages[0].State)
	assert.Equal(t, "hello", messages[0].Content)
	assert.Empty(t, publisher.messages)
}

func TestSend_PublishFailureStillDelivered(t *testing.T) {
	store := &fakeStore{}
	publisher := &fakePublisher{err: errors.New("channel closed")}
	conversation := NewConversation(1, 2, store, publisher)

	require.NoError(t, conversation.Send(context.Background(), "hello"))
	assert.Equal(t, StateDelivered, conversation.Messages()[0].State)
}

func TestSend_BoundedTimeout(t *testing.T) {
	store := &fakeStore{block: make(chan struct{})}
	publisher := &fakePublisher{}
	conversation := NewConversation(1, 2, store, publisher, WithSendTimeout(20*time.Millisecond))

	err := conversation.Send(context.Background(), "hello")
	require.Error(t, err)
	assert.Equal(t, StateFailed, conversation.Messages()[0].State)
	assert.Empty(t, publisher.messages)
}

func TestReceive_AcceptsPeerMessages(t *testing.T) {
	conversation := NewConversation(1, 2, &fakeStore{}, &fakePublisher{})

	accepted := conversation.Receive(Event{Sender: 2, Receiver: 1, Content: "hi", Timestamp: time.Now()})
	assert.True(t, accepted)

	messages := conversation.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, StateDelivered, messages[0].State)
}

func TestReceive_FiltersOtherConversations(t *testing.T) {
	conversation := NewConversation(1, 2, &fakeStore{}, &fakePublisher{})

	assert.False(t, conversation.Receive(Event{Sender: 3, Receiver: 1, Content: "wrong peer"}))
	assert.False(t, conversation.Receive(Event{Sender: 2, Receiver: 3, Content: "wrong receiver"}))
	assert.Empty(t, conversation.Messages())
}

func TestReceive_DropsOwnEcho(t *testing.T) {
	store := &fakeStore{}
	publisher := &fakePublisher{}
	conversation := NewConversation(1, 2, store, publisher)

	require.NoError(t, conversation.Send(context.Background(), "hello"))

	// The hub echoes the published event back to the sender's connection
	echo := publisher.messages[0]
	assert.False(t, conversation.Receive(echo))
	assert.Len(t, conversation.Messages(), 1)
}

func TestReceive_StampsMissingTimestamp(t *testing.T) {
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	conversation := NewConversation(1, 2, &fakeStore{}, &fakePublisher{},
		WithClock(func() time.Time { return fixed }))

	require.True(t, conversation.Receive(Event{Sender: 2, Receiver: 1, Content: "hi"}))
	assert.Equal(t, fixed, conversation.Messages()[0].Timestamp)
}
