package maze

import (
	"fmt"
	"time"
)

// TimerInterval is how often loop drivers refresh the timer display.
const TimerInterval = 100 * time.Millisecond

// Timer measures elapsed wall-clock time of a session. The displayed value only
// changes on Update, which drivers call every TimerInterval, and freezes on Stop.
type Timer struct {
	now     func() time.Time
	start   time.Time
	elapsed time.Duration
	running bool
}

// NewTimer creates a stopped timer reading the given clock. A nil clock means
// time.Now, whose readings carry the monotonic clock.
func NewTimer(now func() time.Time) *Timer {
	if now == nil {
		now = time.Now
	}
	return &Timer{now: now}
}

// Start resets the elapsed time to zero and starts counting.
func (t *Timer) Start() {
	t.start = t.now()
	t.elapsed = 0
	t.running = true
}

// Update samples the clock. It does nothing once the timer is stopped.
func (t *Timer) Update() {
	if !t.running {
		return
	}
	t.elapsed = t.now().Sub(t.start)
}

// Stop takes a final sample and freezes the timer. Calling Stop again has no
// effect, so the first stop's value is kept.
func (t *Timer) Stop() {
	if !t.running {
		return
	}
	t.Update()
	t.running = false
}

// Running reports whether the timer is counting.
func (t *Timer) Running() bool {
	return t.running
}

// Elapsed returns the last sampled duration.
func (t *Timer) Elapsed() time.Duration {
	return t.elapsed
}

// String formats the elapsed time for display, e.g. "Time: 12.34 seconds".
func (t *Timer) String() string {
	return FormatElapsed(t.elapsed)
}

// FormatElapsed formats a duration as seconds with two decimals.
func FormatElapsed(d time.Duration) string {
	return fmt.Sprintf("Time: %.2f seconds", d.Seconds())
}
