package model

import (
	"sync/atomic"
	"time"
)

// Clock hands out strictly increasing wall-clock timestamps so that entries
// created in the same process never share a created_at value.
type Clock struct {
	last atomic.Int64
	now  func() time.Time
}

func NewClock() *Clock {
	return &Clock{now: time.Now}
}

// NewClockFunc creates a clock reading wall time from now.
func NewClockFunc(now func() time.Time) *Clock {
	return &Clock{now: now}
}

// Now returns the current time, bumped by a nanosecond when it would not be
// after the previously returned value.
func (c *Clock) Now() time.Time {
	for {
		prev := c.last.Load()
		next := c.now().UTC().UnixNano()
		if next <= prev {
			next = prev + 1
		}
		if c.last.CompareAndSwap(prev, next) {
			return time.Unix(0, next).UTC()
		}
	}
}
