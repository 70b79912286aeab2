package clock

import "time"

// Timer is a cancellable scheduled callback handle
type Timer interface {
	// Stop cancels the timer. It reports whether the call prevented the
	// callback from firing; false means it already fired or was stopped.
	Stop() bool
}

// Clock provides time operations that can be mocked for testing
type Clock interface {
	Now() time.Time

	// AfterFunc schedules fn to run in its own goroutine after d elapses
	AfterFunc(d time.Duration, fn func()) Timer
}

// RealClock implements Clock using the system clock
type RealClock struct{}

// New creates a new RealClock
func New() *RealClock {
	return &RealClock{}
}

// Now returns the current time
func (c *RealClock) Now() time.Time {
	return time.Now()
}

// AfterFunc schedules fn via time.AfterFunc
func (c *RealClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}
