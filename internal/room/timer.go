// internal/room/timer.go
//
// Pausable countdown used for turn timeouts.
// Responsibilities:
//   - Fire a callback once the delay elapses.
//   - Pause/resume with the remaining time preserved.
//   - Report time left as a pure function of when the countdown was armed.
//
// Notes:
//   - The callback runs on a timer goroutine; Room additionally guards
//     against stale callbacks with a turn sequence number.

package room

import (
	"sync"
	"time"
)

// Timer is a countdown that can be paused and resumed, tracking the time
// remaining across pauses.
type Timer struct {
	mu        sync.Mutex
	timer     *time.Timer
	callback  func()
	started   time.Time
	remaining time.Duration
	running   bool
}

// NewTimer creates and starts a countdown that invokes callback after delay.
func NewTimer(callback func(), delay time.Duration) *Timer {
	t := &Timer{callback: callback, remaining: delay}
	t.Start()
	return t
}

// Start resumes the countdown. A no-op if already running or exhausted.
func (t *Timer) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running || t.remaining <= 0 || t.callback == nil {
		return
	}
	t.running = true
	t.started = time.Now()
	t.timer = time.AfterFunc(t.remaining, t.fire)
}

// Pause stops the countdown, keeping the remaining time for a later Start.
func (t *Timer) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running {
		return
	}
	t.running = false
	t.timer.Stop()
	t.remaining -= time.Since(t.started)
	if t.remaining < 0 {
		t.remaining = 0
	}
}

// TimeLeft reports the remaining countdown duration.
func (t *Timer) TimeLeft() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running {
		return t.remaining
	}
	left := t.remaining - time.Since(t.started)
	if left < 0 {
		left = 0
	}
	return left
}

// IsRunning reports whether the countdown is currently ticking.
func (t *Timer) IsRunning() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

// fire runs on the timer goroutine. A pause that raced the expiry wins:
// the callback is skipped when running was already cleared.
func (t *Timer) fire() {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return
	}
	t.running = false
	t.remaining = 0
	cb := t.callback
	t.mu.Unlock()
	cb()
}
