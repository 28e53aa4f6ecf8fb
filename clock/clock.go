// Package clock is the time collaborator: a Clock contract plus system and
// test implementations, registered into containers like any other contract.
package clock

import (
	"sync"
	"time"

	"github.com/kettleby/wirebox/di"
)

// Clock abstracts wall-clock access so time-dependent code stays testable.
type Clock interface {
	Now() time.Time
	Since(t time.Time) time.Duration
	Sleep(d time.Duration)
}

type systemClock struct{}

func (systemClock) Now() time.Time                  { return time.Now() }
func (systemClock) Since(t time.Time) time.Duration { return time.Since(t) }
func (systemClock) Sleep(d time.Duration)           { time.Sleep(d) }

// System returns the real wall clock.
func System() Clock { return systemClock{} }

// FixedClock is a test clock pinned to a point in time. Sleep advances the
// pinned time instead of blocking.
type FixedClock struct {
	mu  sync.Mutex
	now time.Time
}

// Fixed returns a FixedClock pinned to t.
func Fixed(t time.Time) *FixedClock { return &FixedClock{now: t} }

// Now implements Clock.
func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Since implements Clock against the pinned time.
func (c *FixedClock) Since(t time.Time) time.Duration {
	return c.Now().Sub(t)
}

// Sleep advances the pinned time by d without blocking.
func (c *FixedClock) Sleep(d time.Duration) { c.Advance(d) }

// Advance moves the pinned time forward by d.
func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// Module returns a registry binding the system clock as the process-wide
// Clock, ready to Install into an application registry.
func Module() (*di.Registry, error) {
	reg := di.NewRegistry()
	// Instance rather than constructor: the system clock is stateless.
	if err := reg.Bind(di.KeyOf[Clock](), di.Instance(System()), di.GlobalSingleton); err != nil {
		return nil, err
	}
	return reg, nil
}
