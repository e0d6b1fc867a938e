package engine

import (
	"math"
	"time"
)

// CountdownState is a read-only view of a countdown.
type CountdownState struct {
	Total     time.Duration
	StartedAt time.Time // zero when no countdown has started
	Remaining time.Duration
	Progress  float64 // Remaining/Total in [0,1]
	Running   bool
}

// Seconds returns the remaining time rounded up to whole seconds, the
// value shown to the user.
func (s CountdownState) Seconds() int {
	return int(math.Ceil(s.Remaining.Seconds()))
}

// Countdown is a wall-clock anchored timer. Every read and tick derives the
// remaining time from the single start timestamp, so delayed or coalesced
// ticks snap to the correct value instead of drifting.
//
// A Countdown runs once. Callers create a new one per phase rather than
// restarting an old one.
type Countdown struct {
	clock     Clock
	onExpire  func()
	total     time.Duration
	startedAt time.Time
	remaining time.Duration
	running   bool
	expired   bool
}

// NewCountdown creates an idle countdown. onExpire is called exactly once,
// on natural expiry or ForceExpire, whichever comes first.
func NewCountdown(clock Clock, onExpire func()) *Countdown {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Countdown{clock: clock, onExpire: onExpire}
}

// Start anchors the countdown at the current time. A non-positive duration
// expires immediately. Start on a countdown that already ran is a no-op.
func (c *Countdown) Start(d time.Duration) {
	if c.running || c.expired {
		return
	}
	if d < 0 {
		d = 0
	}
	c.total = d
	c.startedAt = c.clock.Now()
	c.remaining = d
	if d == 0 {
		c.expire()
		return
	}
	c.running = true
}

// Tick recomputes the remaining time and fires expiry when it reaches zero.
func (c *Countdown) Tick() {
	if !c.running {
		return
	}
	c.remaining = c.remainingAt(c.clock.Now())
	if c.remaining == 0 {
		c.expire()
	}
}

// Cancel stops the countdown without signalling expiry.
func (c *Countdown) Cancel() {
	c.running = false
}

// ForceExpire drops the remaining time to zero and raises the same expiry
// signal as a natural timeout.
func (c *Countdown) ForceExpire() {
	if !c.running {
		return
	}
	c.expire()
}

// Running reports whether the countdown is live.
func (c *Countdown) Running() bool { return c.running }

// Remaining returns the live remaining time without firing expiry.
func (c *Countdown) Remaining() time.Duration {
	if !c.running {
		return c.remaining
	}
	return c.remainingAt(c.clock.Now())
}

// Progress returns Remaining/Total, or 0 for a zero-length countdown.
func (c *Countdown) Progress() float64 {
	if c.total <= 0 {
		return 0
	}
	return float64(c.Remaining()) / float64(c.total)
}

// State returns a snapshot of the countdown.
func (c *Countdown) State() CountdownState {
	return CountdownState{
		Total:     c.total,
		StartedAt: c.startedAt,
		Remaining: c.Remaining(),
		Progress:  c.Progress(),
		Running:   c.running,
	}
}

func (c *Countdown) remainingAt(now time.Time) time.Duration {
	rem := c.total - now.Sub(c.startedAt)
	if rem < 0 {
		return 0
	}
	if rem > c.total {
		return c.total
	}
	return rem
}

func (c *Countdown) expire() {
	c.running = false
	c.remaining = 0
	if c.expired {
		return
	}
	c.expired = true
	if c.onExpire != nil {
		c.onExpire()
	}
}
