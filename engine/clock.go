package engine

import (
	"sync"
	"sync/atomic"
	"time"
)

// Clock provides pausable time with pause duration tracking
//
// While paused the tick loop suppresses scanning and announcements; on resume
// the clock continues from where it stopped, so tick deadlines do not pile up
// over the pause
type Clock struct {
	mu sync.RWMutex

	realStartTime time.Time // When the clock was created (real time)
	baseStartTime time.Time // Paused-time epoch (adjusted for pauses)

	isPaused        atomic.Bool
	pauseStartTime  time.Time     // When the current pause started (real time)
	totalPausedTime time.Duration // Cumulative pause duration
}

// NewClock creates a running clock
func NewClock() *Clock {
	now := time.Now()
	return &Clock{
		realStartTime: now,
		baseStartTime: now,
	}
}

// Now returns the current paused-aware time
func (c *Clock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.isPaused.Load() {
		// During pause: frozen at the pause point
		return c.baseStartTime.Add(c.pauseStartTime.Sub(c.realStartTime) - c.totalPausedTime)
	}

	realElapsed := time.Since(c.realStartTime)
	return c.baseStartTime.Add(realElapsed - c.totalPausedTime)
}

// Paused reports whether the clock is paused
func (c *Clock) Paused() bool {
	return c.isPaused.Load()
}

// Pause stops time advancement
func (c *Clock) Pause() {
	if c.isPaused.CompareAndSwap(false, true) {
		c.mu.Lock()
		c.pauseStartTime = time.Now()
		c.mu.Unlock()
	}
}

// Resume restarts time advancement
func (c *Clock) Resume() {
	if c.isPaused.CompareAndSwap(true, false) {
		c.mu.Lock()
		c.totalPausedTime += time.Since(c.pauseStartTime)
		c.mu.Unlock()
	}
}
