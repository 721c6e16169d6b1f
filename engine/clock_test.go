package engine

import (
	"testing"
	"time"
)

// TestClockFreezesWhilePaused verifies time stands still during a pause
func TestClockFreezesWhilePaused(t *testing.T) {
	c := NewClock()

	c.Pause()
	t1 := c.Now()
	time.Sleep(10 * time.Millisecond)
	t2 := c.Now()

	if !t1.Equal(t2) {
		t.Errorf("Expected frozen time while paused, got %v then %v", t1, t2)
	}
}

// TestClockExcludesPausedTime verifies resumed time continues without the
// pause duration
func TestClockExcludesPausedTime(t *testing.T) {
	c := NewClock()
	time.Sleep(5 * time.Millisecond)

	c.Pause()
	pausedAt := c.Now()
	time.Sleep(20 * time.Millisecond)
	c.Resume()

	resumedAt := c.Now()
	if resumedAt.Sub(pausedAt) > 15*time.Millisecond {
		t.Errorf("Expected pause duration excluded, clock advanced %v", resumedAt.Sub(pausedAt))
	}
	if resumedAt.Before(pausedAt) {
		t.Error("Expected time monotonic across pause")
	}
}

// TestClockPausedFlag verifies the flag tracks pause state and double calls
// are harmless
func TestClockPausedFlag(t *testing.T) {
	c := NewClock()

	if c.Paused() {
		t.Error("Expected new clock running")
	}
	c.Pause()
	c.Pause()
	if !c.Paused() {
		t.Error("Expected clock paused")
	}
	c.Resume()
	c.Resume()
	if c.Paused() {
		t.Error("Expected clock resumed")
	}
}
