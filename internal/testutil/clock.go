package testutil

import (
	"sync"
	"time"
)

// IssueDay is the default instant of FixedClock: 2024-03-15 12:00 UTC.
var IssueDay = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

// FixedClock is a wall clock frozen at one instant.
//
// Credentials print the issue date and documents embed creation dates, so
// tests pin both with a FixedClock to get byte-identical output.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type FixedClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFixedClock creates a clock frozen at t. A zero t selects IssueDay.
func NewFixedClock(t time.Time) *FixedClock {
	if t.IsZero() {
		t = IssueDay
	}
	return &FixedClock{now: t}
}

// Now returns the frozen instant.
func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d and returns the new instant.
func (c *FixedClock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}
