package chatclient

import (
	"sync"
	"time"
)

// Default typing indicator timings
const (
	// DefaultTypingThrottle is the minimum gap between published typing
	// events while the user keeps composing
	DefaultTypingThrottle = 700 * time.Millisecond
	// DefaultTypingQuiet is how long a received typing state stays visible
	// without fresh events
	DefaultTypingQuiet = 2500 * time.Millisecond
)

// TypingNotifier throttles outgoing typing events. Keystroke handlers call
// NotifyTyping on every change; at most one event per throttle window
// reaches the channel.
type TypingNotifier struct {
	from, to  int64
	publisher Publisher
	throttle  time.Duration
	now       func() time.Time

	mu       sync.Mutex
	lastSent time.Time
}

// NewTypingNotifier creates a notifier for one conversation direction
func NewTypingNotifier(from, to int64, publisher Publisher, throttle time.Duration) *TypingNotifier {
	if throttle <= 0 {
		throttle = DefaultTypingThrottle
	}
	return &TypingNotifier{
		from:      from,
		to:        to,
		publisher: publisher,
		throttle:  throttle,
		now:       time.Now,
	}
}

// NotifyTyping publishes a typing event unless one was sent within the
// throttle window. Reports whether an event went out.
func (n *TypingNotifier) NotifyTyping() bool {
	n.mu.Lock()
	current := n.now()
	if !n.lastSent.IsZero() && current.Sub(n.lastSent) < n.throttle {
		n.mu.Unlock()
		return false
	}
	n.lastSent = current
	n.mu.Unlock()

	// Typing is fire and forget
	_ = n.publisher.PublishTyping(n.from, n.to)
	return true
}

// TypingIndicator tracks whether the peer is composing. Each received event
// arms a quiet timer; the state clears once the timer fires with no fresh
// events. The clear is a client-side timeout, never a server push.
type TypingIndicator struct {
	quiet     time.Duration
	afterFunc func(time.Duration, func()) *time.Timer

	mu     sync.Mutex
	active bool
	timer  *time.Timer
	gen    uint64
}

// NewTypingIndicator creates an indicator with the given quiet window
func NewTypingIndicator(quiet time.Duration) *TypingIndicator {
	if quiet <= 0 {
		quiet = DefaultTypingQuiet
	}
	return &TypingIndicator{quiet: quiet, afterFunc: time.AfterFunc}
}

// OnTyping records a received typing event and restarts the quiet timer
func (i *TypingIndicator) OnTyping() {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.active = true
	if i.timer != nil {
		i.timer.Stop()
	}
	// Stop cannot cancel a callback that already fired; the generation check
	// keeps a stale callback from clearing a freshly re-armed state.
	i.gen++
	gen := i.gen
	i.timer = i.afterFunc(i.quiet, func() {
		i.mu.Lock()
		if i.gen == gen {
			i.active = false
		}
		i.mu.Unlock()
	})
}

// Active reports whether the peer is currently shown as typing
func (i *TypingIndicator) Active() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.active
}

// Stop cancels the pending clear timer
func (i *TypingIndicator) Stop() {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.timer != nil {
		i.timer.Stop()
		i.timer = nil
	}
	i.active = false
}
