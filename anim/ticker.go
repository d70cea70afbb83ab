package anim

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// TickFunc receives the timestamp of one tick.
type TickFunc func(now time.Duration)

// TickSource delivers timestamps to registered callbacks. Each registration
// is invoked at most once; callers that want another tick must register
// again. Timestamps never decrease within a session.
type TickSource interface {
	Now() time.Duration
	RequestTick(fn TickFunc)
}

// Clock reports elapsed time since some fixed epoch.
type Clock interface {
	Now() time.Duration
}

// WallClock measures elapsed wall-clock time since its creation.
type WallClock struct {
	epoch time.Time
}

// NewWallClock creates a clock whose epoch is the current instant.
func NewWallClock() *WallClock {
	return &WallClock{epoch: time.Now()}
}

func (c *WallClock) Now() time.Duration {
	return time.Since(c.epoch)
}

// ManualClock is a clock that only moves when told to. Use it for tests and
// simulated runs.
type ManualClock struct {
	mu  sync.RWMutex
	now time.Duration
}

// NewManualClock creates a manual clock starting at start.
func NewManualClock(start time.Duration) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

// Set moves the clock to now.
func (c *ManualClock) Set(now time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// Advance moves the clock forward by d and returns the new time.
func (c *ManualClock) Advance(d time.Duration) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now += d
	return c.now
}

// TickerStats provides statistics about tick delivery.
type TickerStats struct {
	Ticks        int64
	Delivered    int64
	Faults       int64
	Pending      int
	LastTick     time.Duration
	MinDuration  time.Duration
	MaxDuration  time.Duration
	AvgDuration  time.Duration
	LastDuration time.Duration
}

// FrameTicker is a TickSource driven by explicit Tick calls or by Run.
//
// Requests are buffered; each Tick delivers to every callback registered
// before it started. Callbacks that register again during delivery are
// served by the following tick.
type FrameTicker struct {
	mu      sync.Mutex
	clock   Clock
	logger  *slog.Logger
	pending []TickFunc
	spare   []TickFunc
	last    time.Duration

	ticks         int64
	delivered     int64
	faults        int64
	minDuration   time.Duration
	maxDuration   time.Duration
	totalDuration time.Duration
	lastDuration  time.Duration
}

// NewFrameTicker creates a ticker reading timestamps from clock. A nil clock
// uses a WallClock and a nil logger uses slog.Default().
func NewFrameTicker(clock Clock, logger *slog.Logger) *FrameTicker {
	if clock == nil {
		clock = NewWallClock()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FrameTicker{
		clock:       clock,
		logger:      logger,
		minDuration: time.Duration(1<<63 - 1),
	}
}

// Now returns the clock time, never earlier than the last delivered tick.
func (f *FrameTicker) Now() time.Duration {
	now := f.clock.Now()
	f.mu.Lock()
	defer f.mu.Unlock()
	if now < f.last {
		return f.last
	}
	return now
}

// RequestTick registers fn for the next tick. It may be called from any
// goroutine.
func (f *FrameTicker) RequestTick(fn TickFunc) {
	if fn == nil {
		return
	}
	f.mu.Lock()
	f.pending = append(f.pending, fn)
	f.mu.Unlock()
}

// Pending returns the number of callbacks waiting for the next tick.
func (f *FrameTicker) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pending)
}

// Tick delivers now to every pending callback and returns how many ran.
// A timestamp earlier than the previous tick is raised to it.
func (f *FrameTicker) Tick(now time.Duration) int {
	f.mu.Lock()
	if now < f.last {
		now = f.last
	}
	f.last = now
	batch := f.pending
	f.pending = f.spare[:0]
	f.spare = nil
	f.mu.Unlock()

	start := time.Now()
	var faults int64
	for _, fn := range batch {
		if !f.deliver(now, fn) {
			faults++
		}
	}
	duration := time.Since(start)

	clear(batch)

	f.mu.Lock()
	if f.spare == nil {
		f.spare = batch[:0]
	}
	f.ticks++
	f.delivered += int64(len(batch))
	f.faults += faults
	f.lastDuration = duration
	f.totalDuration += duration
	if duration < f.minDuration {
		f.minDuration = duration
	}
	if duration > f.maxDuration {
		f.maxDuration = duration
	}
	f.mu.Unlock()

	return len(batch)
}

// Advance ticks once at the current clock time.
func (f *FrameTicker) Advance() int {
	return f.Tick(f.clock.Now())
}

func (f *FrameTicker) deliver(now time.Duration, fn TickFunc) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			f.logger.Error("tick callback panicked", "now", now, "panic", r)
			ok = false
		}
	}()
	fn(now)
	return true
}

// Run ticks at the given interval until the context is cancelled. All
// callbacks run on the goroutine that called Run.
func (f *FrameTicker) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			f.Advance()
		}
	}
}

// Stats returns statistics about tick delivery.
func (f *FrameTicker) Stats() TickerStats {
	f.mu.Lock()
	defer f.mu.Unlock()

	stats := TickerStats{
		Ticks:        f.ticks,
		Delivered:    f.delivered,
		Faults:       f.faults,
		Pending:      len(f.pending),
		LastTick:     f.last,
		MaxDuration:  f.maxDuration,
		LastDuration: f.lastDuration,
	}
	if f.ticks > 0 {
		stats.MinDuration = f.minDuration
		stats.AvgDuration = f.totalDuration / time.Duration(f.ticks)
	}
	return stats
}
