package testutil

import (
	"sync"
	"time"

	"github.com/agno/worksphere/internal/notify"
)

// FakeClock implements notify.Clock with manually-fired tickers so
// polling tests run without real timers.
type FakeClock struct {
	mu      sync.Mutex
	now     time.Time
	tickers []*FakeTicker
}

// NewFakeClock creates a FakeClock starting at the given time.
func NewFakeClock(now time.Time) *FakeClock {
	return &FakeClock{now: now}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward without firing any tickers.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func (c *FakeClock) NewTicker(d time.Duration) notify.Ticker {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := &FakeTicker{
		Interval: d,
		ch:       make(chan time.Time, 1),
	}
	c.tickers = append(c.tickers, t)
	return t
}

// TickerCount returns how many tickers have been created, including
// stopped ones.
func (c *FakeClock) TickerCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tickers)
}

// Ticker returns the first live ticker with the given interval, or nil.
func (c *FakeClock) Ticker(d time.Duration) *FakeTicker {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, t := range c.tickers {
		if t.Interval == d && !t.Stopped() {
			return t
		}
	}
	return nil
}

// FakeTicker is a manually-driven ticker.
type FakeTicker struct {
	Interval time.Duration

	mu      sync.Mutex
	stopped bool
	ch      chan time.Time
}

func (t *FakeTicker) Chan() <-chan time.Time { return t.ch }

func (t *FakeTicker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
}

// Stopped reports whether Stop has been called.
func (t *FakeTicker) Stopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}

// Fire delivers one tick. The channel is buffered so firing a stopped
// ticker cannot hang the test.
func (t *FakeTicker) Fire(at time.Time) {
	select {
	case t.ch <- at:
	default:
	}
}
