// Package debouncetest provides a manual clock for driving debouncers in
// tests without sleeping.
package debouncetest

import (
	"sort"
	"sync"
	"time"

	"github.com/yhkl-dev/soniferous/debounce"
)

// Clock is a manually advanced clock. Timers fire synchronously inside
// Advance, in deadline order.
type Clock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*timer
}

type timer struct {
	clock    *Clock
	deadline time.Duration
	fn       func()
	stopped  bool
	fired    bool
}

func (t *timer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// NewClock returns a clock at t=0.
func NewClock() *Clock {
	return &Clock{}
}

// AfterFunc implements debounce.AfterFunc.
func (c *Clock) AfterFunc(d time.Duration, f func()) debounce.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &timer{clock: c, deadline: c.now + d, fn: f}
	c.timers = append(c.timers, t)
	return t
}

// Now returns the elapsed time since the clock was created.
func (c *Clock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d, firing every timer that comes due.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now + d
	c.mu.Unlock()

	for {
		t := c.nextDue(target)
		if t == nil {
			break
		}
		t.fn()
	}

	c.mu.Lock()
	c.now = target
	c.mu.Unlock()
}

// AdvanceTo moves the clock to the absolute offset at.
func (c *Clock) AdvanceTo(at time.Duration) {
	c.Advance(at - c.Now())
}

// Active returns the number of timers that have neither fired nor stopped.
func (c *Clock) Active() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

func (c *Clock) nextDue(target time.Duration) *timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	sort.SliceStable(c.timers, func(i, j int) bool {
		return c.timers[i].deadline < c.timers[j].deadline
	})
	for _, t := range c.timers {
		if t.stopped || t.fired || t.deadline > target {
			continue
		}
		t.fired = true
		c.now = t.deadline
		return t
	}
	return nil
}
