package chatclient

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTypingNotifier_Throttles(t *testing.T) {
	publisher := &fakePublisher{}
	notifier := NewTypingNotifier(1, 2, publisher, 700*time.Millisecond)

	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	notifier.now = func() time.Time { return current }

	assert.True(t, notifier.NotifyTyping())
	assert.False(t, notifier.NotifyTyping())

	current = current.Add(300 * time.Millisecond)
	assert.False(t, notifier.NotifyTyping())

	current = current.Add(401 * time.Millisecond)
	assert.True(t, notifier.NotifyTyping())

	assert.Equal(t, 2, publisher.typing)
}

func TestTypingIndicator_ClearsAfterQuietWindow(t *testing.T) {
	indicator := NewTypingIndicator(30 * time.Millisecond)
	defer indicator.Stop()

	indicator.OnTyping()
	assert.True(t, indicator.Active())

	assert.Eventually(t, func() bool { return !indicator.Active() },
		time.Second, 5*time.Millisecond)
}

func TestTypingIndicator_StaleTimerCannotClearRearmedState(t *testing.T) {
	indicator := NewTypingIndicator(time.Hour)

	// Capture callbacks instead of scheduling them so the fired-but-not-run
	// window is reproducible.
	var callbacks []func()
	indicator.afterFunc = func(_ time.Duration, fn func()) *time.Timer {
		callbacks = append(callbacks, fn)
		return time.NewTimer(time.Hour)
	}

	indicator.OnTyping()
	indicator.OnTyping()

	// The first timer fired before the second OnTyping could stop it
	callbacks[0]()
	assert.True(t, indicator.Active())

	callbacks[1]()
	assert.False(t, indicator.Active())
}

func TestTypingIndicator_FreshEventsExtendTheWindow(t *testing.T) {
	indicator := NewTypingIndicator(50 * time.Millisecond)
	defer indicator.Stop()

	indicator.OnTyping()
	for i := 0; i < 3; i++ {
		time.Sleep(20 * time.Millisecond)
		indicator.OnTyping()
	}
	// Events kept arriving inside the quiet window, so the state held
	assert.True(t, indicator.Active())

	assert.Eventually(t, func() bool { return !indicator.Active() },
		time.Second, 5*time.Millisecond)
}
