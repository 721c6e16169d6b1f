// Package engine drives the single-threaded update loop: one fixed tick
// consumes queued events, applies input actions, performs at most one
// coalesced rescan or rebuild, and announces the result.
package engine

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Moonlight-Companies/gologger/logger"

	"waymark/announce"
	"waymark/core"
	"waymark/cycle"
	"waymark/entity"
	"waymark/events"
	"waymark/filter"
	"waymark/input"
	"waymark/scanner"
	"waymark/status"
)

// Hooks are the ticker's callbacks into state it does not own
// Nil hooks disable the corresponding actions
type Hooks struct {
	// Move nudges the player by one cell; the follow-up rescan is the
	// ticker's responsibility
	Move func(dx, dy int)
	// Quit asks the front end to shut down
	Quit func()
	// ToggleAudio flips cue output, returning true when now audible
	ToggleAudio func() bool
	// AfterStep runs on the tick goroutine after each step (and on idle
	// beats while paused) so a front end can render current state
	AfterStep func()
}

// Ticker runs navigation logic on a fixed tick
//
// Everything it touches — scanner, selector, pipeline, speaker — is owned by
// the tick goroutine; the queue is the only cross-goroutine boundary.
// Deferred continuations run at the next tick boundary, never inline
type Ticker struct {
	clock    *Clock
	interval time.Duration

	queue    *events.Queue
	router   *events.Router
	scan     *scanner.Scanner
	speaker  *announce.Speaker
	deferred *announce.Deferred
	hooks    Hooks
	log      *logger.Logger

	tickCount  atomic.Uint64
	statTicks  *atomic.Int64
	statPaused *atomic.Bool

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool
}

// NewTicker wires the update loop
// Event handlers (the scanner and the ticker itself) register on an internal
// router attached to the queue
func NewTicker(
	interval time.Duration,
	clock *Clock,
	queue *events.Queue,
	scan *scanner.Scanner,
	speaker *announce.Speaker,
	hooks Hooks,
	log *logger.Logger,
	reg *status.Registry,
) *Ticker {
	t := &Ticker{
		clock:      clock,
		interval:   interval,
		queue:      queue,
		router:     events.NewRouter(queue),
		scan:       scan,
		speaker:    speaker,
		deferred:   announce.NewDeferred(),
		hooks:      hooks,
		log:        log,
		statTicks:  reg.Ints.Get("engine.ticks"),
		statPaused: reg.Bools.Get("engine.paused"),
		stopChan:   make(chan struct{}),
	}
	reg.Floats.Get("engine.tick_seconds").Set(interval.Seconds())
	t.router.Register(scan)
	t.router.Register(t)
	return t
}

// Start begins the tick loop
func (t *Ticker) Start() {
	if t.running.CompareAndSwap(false, true) {
		if t.log != nil {
			t.log.Infoln("tick loop started, interval", t.interval)
		}
		t.wg.Add(1)
		core.Go(t.loop)
	}
}

// Stop halts the tick loop and waits for it to drain
func (t *Ticker) Stop() {
	t.stopOnce.Do(func() {
		if t.running.CompareAndSwap(true, false) {
			close(t.stopChan)
			t.wg.Wait()
			if t.log != nil {
				t.log.Infoln("tick loop stopped after", t.tickCount.Load(), "ticks")
			}
		}
	})
}

// Pause suppresses scanning and announcements
func (t *Ticker) Pause() {
	t.clock.Pause()
	t.statPaused.Store(true)
}

// Resume lifts suppression
func (t *Ticker) Resume() {
	t.clock.Resume()
	t.statPaused.Store(false)
}

// loop runs fixed ticks with drift correction
func (t *Ticker) loop() {
	defer t.wg.Done()

	deadline := t.clock.Now().Add(t.interval)

	timer := time.NewTimer(t.interval)
	defer timer.Stop()

	for {
		select {
		case <-t.stopChan:
			return
		case <-timer.C:
		}

		if !t.clock.Paused() {
			t.Step()

			deadline = deadline.Add(t.interval)
			// Don't chase an unrecoverable backlog
			if t.clock.Now().Sub(deadline) > t.interval*2 {
				deadline = t.clock.Now().Add(t.interval)
			}
		} else {
			// Paused: idle at a slower rate, keep deadlines fresh
			deadline = t.clock.Now().Add(t.interval * 2)
			if t.hooks.AfterStep != nil {
				t.hooks.AfterStep()
			}
		}

		sleep := deadline.Sub(t.clock.Now())
		if sleep < 0 {
			sleep = 0
		}
		timer.Reset(sleep)
	}
}

// Step executes one update tick
// Exposed so tests can drive the loop synchronously
func (t *Ticker) Step() {
	t.deferred.RunDue()
	t.router.DispatchAll()

	outcome, changed := t.scan.Tick()
	if changed {
		t.announceRebuild(outcome)
	}

	t.tickCount.Add(1)
	t.statTicks.Store(int64(t.tickCount.Load()))

	if t.hooks.AfterStep != nil {
		t.hooks.AfterStep()
	}
}

// EventTypes implements events.Handler
func (t *Ticker) EventTypes() []events.Type {
	return []events.Type{events.TypeAction, events.TypeAnnounce}
}

// HandleEvent implements events.Handler
func (t *Ticker) HandleEvent(ev events.Event) {
	switch ev.Type {
	case events.TypeAction:
		t.Apply(input.Action(ev.Code))
	case events.TypeAnnounce:
		t.speaker.Say(ev.Text)
	}
}

// announceRebuild reports a rebuild's selection outcome
// Relocation keeps the same logical entity, so it stays silent
func (t *Ticker) announceRebuild(outcome cycle.Outcome) {
	if outcome == cycle.OutcomeUnchanged || outcome == cycle.OutcomeRelocated {
		return
	}

	sel := t.scan.Selector()
	e, _ := sel.Current()
	t.speaker.AnnounceSelection(e, outcome, t.scan.Snapshot(), sel.Index(), sel.Len())
}

// Apply executes one resolved input action on the tick goroutine
func (t *Ticker) Apply(a input.Action) {
	sel := t.scan.Selector()

	switch a {
	case input.ActionNextEntity, input.ActionPrevEntity:
		var (
			e       entity.Entity
			outcome cycle.Outcome
			ok      bool
		)
		if a == input.ActionNextEntity {
			e, outcome, ok = sel.Next()
		} else {
			e, outcome, ok = sel.Previous()
		}
		if !ok {
			t.speaker.AnnounceSelection(entity.Entity{}, cycle.OutcomeEmpty, t.scan.Snapshot(), 0, 0)
			return
		}
		// Defer one frame; the entity may die before the announcement lands
		snap, idx, total := t.scan.Snapshot(), sel.Index(), sel.Len()
		t.deferred.Schedule(e.Alive, func() {
			t.speaker.AnnounceSelection(e, outcome, snap, idx, total)
		})

	case input.ActionNextCategory:
		t.speaker.AnnounceCategory(t.scan.RotateCategory(1))
	case input.ActionPrevCategory:
		t.speaker.AnnounceCategory(t.scan.RotateCategory(-1))

	case input.ActionRepeat:
		t.speaker.Reset()
		if e, ok := sel.Current(); ok {
			t.speaker.Say(t.speaker.Describe(e, t.scan.Snapshot(), sel.Index(), sel.Len()))
		} else {
			t.speaker.AnnounceSelection(entity.Entity{}, cycle.OutcomeEmpty, t.scan.Snapshot(), 0, 0)
		}

	case input.ActionWhereAmI:
		t.announcePosition()

	case input.ActionToggleReachability:
		t.announceFilterToggle(filter.NameReachability)
	case input.ActionToggleTransitions:
		t.announceFilterToggle(filter.NameTransition)

	case input.ActionRescan:
		t.scan.RequestRescan(events.CauseInput)

	case input.ActionMoveNorth:
		t.move(0, -1)
	case input.ActionMoveSouth:
		t.move(0, 1)
	case input.ActionMoveWest:
		t.move(-1, 0)
	case input.ActionMoveEast:
		t.move(1, 0)

	case input.ActionToggleAudio:
		if t.hooks.ToggleAudio != nil {
			if t.hooks.ToggleAudio() {
				t.speaker.Say("audio on")
			} else {
				t.speaker.Say("audio off")
			}
		}

	case input.ActionQuit:
		if t.hooks.Quit != nil {
			t.hooks.Quit()
		}
	}
}

func (t *Ticker) move(dx, dy int) {
	if t.hooks.Move == nil {
		return
	}
	t.hooks.Move(dx, dy)
	// Player moved: distances and reachability are stale
	t.scan.RequestRescan(events.CauseInput)
}

func (t *Ticker) announcePosition() {
	snap := t.scan.Snapshot()
	if !snap.PlayerOK {
		t.speaker.Say("position unknown")
		return
	}
	t.speaker.Reset()
	t.speaker.Say(positionText(snap.MapID, snap.Player.X, snap.Player.Y))
}

func positionText(mapID string, x, y float64) string {
	return fmt.Sprintf("%s, %.0f by %.0f", mapID, x, y)
}

func (t *Ticker) announceFilterToggle(name string) {
	enabled, ok := t.scan.ToggleFilter(name)
	if !ok {
		return
	}
	if enabled {
		t.speaker.Say(name + " filter on")
	} else {
		t.speaker.Say(name + " filter off")
	}
}
