// Package chatclient implements the conversation-view state machine used by
// chat frontends: optimistic sends reconciled against the persistence call,
// realtime receive filtering, typing indicators and display grouping.
package chatclient

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MessageState tracks a message through the send lifecycle
type MessageState string

const (
	// StateOptimistic marks a locally appended message awaiting persistence
	StateOptimistic MessageState = "optimistic"
	// StateDelivered is terminal; the message was persisted or received
	StateDelivered MessageState = "delivered"
	// StateFailed is terminal; persistence errored and no publish happened
	StateFailed MessageState = "failed"
)

// Message is one entry in the conversation view
type Message struct {
	Sender    int64
	Receiver  int64
	Content   string
	Timestamp time.Time
	State     MessageState
}

// Event is a realtime message as delivered on the channel
type Event struct {
	Sender    int64
	Receiver  int64
	Content   string
	Timestamp time.Time
}

// Store persists messages; the REST chat endpoint in practice
type Store interface {
	Append(ctx context.Context, sender, receiver int64, content string) error
}

// Publisher pushes events onto the realtime channel
type Publisher interface {
	PublishMessage(event Event) error
	PublishTyping(from, to int64) error
}

// Conversation is the client-side view of one open chat. All methods are
// safe for concurrent use.
type Conversation struct {
	self, peer int64
	store      Store
	publisher  Publisher

	sendTimeout time.Duration
	now         func() time.Time

	mu       sync.Mutex
	messages []Message
}

// Option configures a Conversation
type Option func(*Conversation)

// WithSendTimeout bounds the persistence call; an expired deadline marks the
// message Failed instead of leaving it Optimistic forever.
func WithSendTimeout(timeout time.Duration) Option {
	return func(c *Conversation) {
		c.sendTimeout = timeout
	}
}

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(c *Conversation) {
		c.now = now
	}
}

// NewConversation opens the view of the chat between self and peer
func NewConversation(self, peer int64, store Store, publisher Publisher, opts ...Option) *Conversation {
	c := &Conversation{
		self:      self,
		peer:      peer,
		store:     store,
		publisher: publisher,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Send appends the message optimistically, persists it, then publishes.
// The local view updates before any network call so the UI never blocks.
// On persistence failure the message is marked Failed and nothing is
// published; there is no automatic retry.
func (c *Conversation) Send(ctx context.Context, content string) error {
	timestamp := c.now()

	c.mu.Lock()
	index := len(c.messages)
	c.messages = append(c.messages, Message{
		Sender:    c.self,
		Receiver:  c.peer,
		Content:   content,
		Timestamp: timestamp,
		State:     StateOptimistic,
	})
	c.mu.Unlock()

	if c.sendTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.sendTimeout)
		defer cancel()
	}

	if err := c.store.Append(ctx, c.self, c.peer, content); err != nil {
		c.setState(index, StateFailed)
		return fmt.Errorf("error persisting message: %w", err)
	}

	c.setState(index, StateDelivered)

	// Best effort; the message is already durable
	if err := c.publisher.PublishMessage(Event{
		Sender:    c.self,
		Receiver:  c.peer,
		Content:   content,
		Timestamp: timestamp,
	}); err != nil {
		return nil
	}

	return nil
}

// Receive reconciles a realtime event into the view. Events are accepted
// only when they belong to this conversation and originate from the peer;
// the sender's own echo is dropped because Send already recorded the
// message. Returns whether the event was appended.
func (c *Conversation) Receive(event Event) bool {
	if event.Sender != c.peer || event.Receiver != c.self {
		return false
	}

	timestamp := event.Timestamp
	if timestamp.IsZero() {
		timestamp = c.now()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, Message{
		Sender:    event.Sender,
		Receiver:  event.Receiver,
		Content:   event.Content,
		Timestamp: timestamp,
		State:     StateDelivered,
	})
	return true
}

// Messages returns a snapshot of the view in append order
func (c *Conversation) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	snapshot := make([]Message, len(c.messages))
	copy(snapshot, c.messages)
	return snapshot
}

func (c *Conversation) setState(index int, state MessageState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if index < len(c.messages) && c.messages[index].State == StateOptimistic {
		c.messages[index].State = state
	}
}
