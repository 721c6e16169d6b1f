package engine

import (
	"strings"
	"testing"

	"waymark/announce"
	"waymark/core"
	"waymark/cycle"
	"waymark/entity"
	"waymark/events"
	"waymark/filter"
	"waymark/input"
	"waymark/scanner"
	"waymark/status"
	"waymark/world"
)

type captureSink struct {
	texts []string
}

func (c *captureSink) Speak(text string) { c.texts = append(c.texts, text) }

func (c *captureSink) last() string {
	if len(c.texts) == 0 {
		return ""
	}
	return c.texts[len(c.texts)-1]
}

// stubSource serves a fixed entity set
type stubSource struct {
	entities []entity.Entity
	snap     world.Snapshot
}

func (s *stubSource) Scan() ([]entity.Entity, world.Snapshot) {
	return s.entities, s.snap
}

// testRig wires a Step-driven ticker around a stub world
type testRig struct {
	ticker *Ticker
	queue  *events.Queue
	scan   *scanner.Scanner
	sink   *captureSink
	src    *stubSource
	moves  [][2]int
	quits  int
}

func newTestRig(names ...string) *testRig {
	src := &stubSource{
		snap: world.Snapshot{
			Player:          core.Point{X: 0, Y: 0},
			PlayerOK:        true,
			MapID:           "test map",
			Epoch:           1,
			TransitionsOpen: true,
		},
	}
	for i, name := range names {
		src.entities = append(src.entities, entity.New(
			entity.CategoryItem, name, core.Point{X: float64(i + 1), Y: 0}, 1, 0.5, entity.NewRef()))
	}

	reg := status.NewRegistry()
	queue := events.NewQueue()
	pipe := filter.NewPipeline(nil)
	scan := scanner.New(src, pipe, nil, nil, nil, reg, 0)
	sink := &captureSink{}
	speaker := announce.NewSpeaker(sink, nil, nil, nil, reg)

	rig := &testRig{queue: queue, scan: scan, sink: sink, src: src}
	rig.ticker = NewTicker(0, NewClock(), queue, scan, speaker, Hooks{
		Move: func(dx, dy int) { rig.moves = append(rig.moves, [2]int{dx, dy}) },
		Quit: func() { rig.quits++ },
	}, nil, reg)
	return rig
}

// seed runs the initial rescan so a selection exists
func (r *testRig) seed() {
	r.queue.Push(events.Event{Type: events.TypeRescanRequested, Cause: events.CauseInput})
	r.ticker.Step()
}

// TestStepProcessesQueuedRescan verifies a queued rescan event produces a
// selection announcement on the same tick
func TestStepProcessesQueuedRescan(t *testing.T) {
	rig := newTestRig("potion", "chest")
	rig.seed()

	if len(rig.sink.texts) != 1 {
		t.Fatalf("Expected one announcement after seeding rescan, got %v", rig.sink.texts)
	}
	if !strings.Contains(rig.sink.last(), "potion") {
		t.Errorf("Expected nearest entity announced, got %q", rig.sink.last())
	}
}

// TestCycleActionAnnouncesNextTick verifies cursor movement defers its
// announcement by one tick
func TestCycleActionAnnouncesNextTick(t *testing.T) {
	rig := newTestRig("potion", "chest")
	rig.seed()
	spoken := len(rig.sink.texts)

	rig.queue.Push(events.Event{Type: events.TypeAction, Code: int(input.ActionNextEntity)})
	rig.ticker.Step()
	if len(rig.sink.texts) != spoken {
		t.Error("Expected cycle announcement deferred past the action tick")
	}

	rig.ticker.Step()
	if len(rig.sink.texts) != spoken+1 || !strings.Contains(rig.sink.last(), "chest") {
		t.Errorf("Expected deferred announcement of chest, got %v", rig.sink.texts)
	}
}

// TestDeferredAnnouncementDropsDeadEntity verifies the liveness guard
// silences announcements for entities that died in between
func TestDeferredAnnouncementDropsDeadEntity(t *testing.T) {
	rig := newTestRig("potion", "chest")
	rig.seed()
	spoken := len(rig.sink.texts)

	rig.queue.Push(events.Event{Type: events.TypeAction, Code: int(input.ActionNextEntity)})
	rig.ticker.Step()

	// The newly selected entity dies before its announcement is due
	rig.src.entities[1].Ref().Invalidate()
	rig.ticker.Step()

	if len(rig.sink.texts) != spoken {
		t.Errorf("Expected dead entity announcement dropped, got %v", rig.sink.texts)
	}
}

// TestCycleActionOnEmptyList verifies an immediate empty announcement
func TestCycleActionOnEmptyList(t *testing.T) {
	rig := newTestRig()

	rig.queue.Push(events.Event{Type: events.TypeAction, Code: int(input.ActionNextEntity)})
	rig.ticker.Step()

	if rig.sink.last() != "no entities" {
		t.Errorf("Expected immediate empty announcement, got %v", rig.sink.texts)
	}
}

// TestRepeatActionBypassesDedup verifies repeat speaks the same selection
// again
func TestRepeatActionBypassesDedup(t *testing.T) {
	rig := newTestRig("potion")
	rig.seed()
	spoken := len(rig.sink.texts)

	rig.queue.Push(events.Event{Type: events.TypeAction, Code: int(input.ActionRepeat)})
	rig.ticker.Step()

	if len(rig.sink.texts) != spoken+1 {
		t.Errorf("Expected repeat to speak despite dedup, got %v", rig.sink.texts)
	}
}

// TestMoveActionTriggersRescan verifies movement reaches the hook and
// schedules an input-priority rescan
func TestMoveActionTriggersRescan(t *testing.T) {
	rig := newTestRig("potion")
	rig.seed()

	rig.queue.Push(events.Event{Type: events.TypeAction, Code: int(input.ActionMoveEast)})
	rig.ticker.Step()

	if len(rig.moves) != 1 || rig.moves[0] != [2]int{1, 0} {
		t.Errorf("Expected one move east, got %v", rig.moves)
	}
}

// TestWhereAmIAnnouncesPosition verifies the position announcement
func TestWhereAmIAnnouncesPosition(t *testing.T) {
	rig := newTestRig("potion")
	rig.seed()

	rig.queue.Push(events.Event{Type: events.TypeAction, Code: int(input.ActionWhereAmI)})
	rig.ticker.Step()

	if !strings.Contains(rig.sink.last(), "test map") {
		t.Errorf("Expected map id in position announcement, got %q", rig.sink.last())
	}
}

// TestQuitActionFiresHook verifies the quit hook
func TestQuitActionFiresHook(t *testing.T) {
	rig := newTestRig()

	rig.queue.Push(events.Event{Type: events.TypeAction, Code: int(input.ActionQuit)})
	rig.ticker.Step()

	if rig.quits != 1 {
		t.Errorf("Expected one quit hook call, got %d", rig.quits)
	}
}

// TestAnnounceEventSpoken verifies free-form announce events reach the sink
func TestAnnounceEventSpoken(t *testing.T) {
	rig := newTestRig()

	rig.queue.Push(events.Event{Type: events.TypeAnnounce, Text: "battle started"})
	rig.ticker.Step()

	if rig.sink.last() != "battle started" {
		t.Errorf("Expected announce event spoken, got %v", rig.sink.texts)
	}
}

// TestRelocationStaysSilent verifies a rebuild that relocates the selection
// does not re-announce it
func TestRelocationStaysSilent(t *testing.T) {
	rig := newTestRig("potion", "chest")
	rig.src.entities = append(rig.src.entities, entity.New(
		entity.CategoryItem, "door", core.Point{X: 1, Y: 2}, 1, 0.5, entity.NewRef()))
	rig.seed()

	rig.queue.Push(events.Event{Type: events.TypeAction, Code: int(input.ActionNextEntity)})
	rig.ticker.Step()
	rig.ticker.Step() // deferred announcement of the selection
	spoken := len(rig.sink.texts)

	// Player movement re-sorts chest to the tail; focus follows it silently
	rig.src.snap.Player = core.Point{X: 1, Y: 1}
	rig.queue.Push(events.Event{Type: events.TypeRescanRequested, Cause: events.CauseInput})
	rig.ticker.Step()

	sel := rig.scan.Selector()
	if cur, ok := sel.Current(); !ok || cur.Name != "chest" {
		t.Fatalf("Expected chest still selected after reorder, got %v ok=%v", cur.Name, ok)
	}
	if len(rig.sink.texts) != spoken {
		t.Errorf("Expected relocation to stay silent, got %v", rig.sink.texts[spoken:])
	}
}

// TestOutcomeStringCoverage pins the outcome labels used in logs
func TestOutcomeStringCoverage(t *testing.T) {
	if cycle.OutcomeRelocated.String() != "relocated" {
		t.Errorf("Expected relocated label, got %q", cycle.OutcomeRelocated.String())
	}
}
