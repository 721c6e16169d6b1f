package announce

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const cueSampleRate = beep.SampleRate(44100)

// CueKind identifies an audio earcon
type CueKind uint8

const (
	CueSelect CueKind = iota // selection moved or relocated
	CueLost                  // previous selection disappeared
	CueEmpty                 // no entities to cycle
)

// cueSpecs maps each kind to a distinct short tone
var cueSpecs = [...]struct {
	freq float64
	dur  time.Duration
}{
	CueSelect: {880, 60 * time.Millisecond},
	CueLost:   {330, 140 * time.Millisecond},
	CueEmpty:  {220, 90 * time.Millisecond},
}

// CuePlayer synthesizes short sine earcons through the speaker
type CuePlayer struct {
	mu          sync.Mutex
	initialized bool
	muted       bool
}

// NewCuePlayer creates a silent player; call Initialize before use
func NewCuePlayer() *CuePlayer {
	return &CuePlayer{}
}

// Initialize sets up the audio backend
func (c *CuePlayer) Initialize() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return nil
	}
	if err := speaker.Init(cueSampleRate, cueSampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}
	c.initialized = true
	return nil
}

// Cleanup shuts the audio backend down
func (c *CuePlayer) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	speaker.Close()
	c.initialized = false
}

// SetMuted toggles cue output without tearing down the backend
func (c *CuePlayer) SetMuted(muted bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.muted = muted
}

// Play fires the earcon for the given kind
// Silently ignores unknown kinds and an uninitialized or muted player
func (c *CuePlayer) Play(kind CueKind) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized || c.muted || int(kind) >= len(cueSpecs) {
		return
	}

	spec := cueSpecs[kind]
	sine, err := generators.SineTone(cueSampleRate, spec.freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(cueSampleRate.N(spec.dur), sine))
}
