// Package scanner manages the working set of discovered entities: admission
// through OnAdd filters, periodic and event-triggered rescans, and rebuilds
// of the filtered, ordered active list.
package scanner

import (
	"sort"
	"sync/atomic"

	"github.com/Moonlight-Companies/gologger/logger"

	"waymark/cycle"
	"waymark/entity"
	"waymark/events"
	"waymark/filter"
	"waymark/status"
	"waymark/world"
)

// refresher is implemented by filters that maintain a per-rebuild cache
// (the reachability filter refreshes its Dijkstra field here)
type refresher interface {
	Refresh(snap world.Snapshot)
}

// Scanner owns the working set and drives rescans and rebuilds
//
// All methods run on the single update tick; only HandleEvent-visible state
// is written, and that too is routed through the tick's dispatch phase, so no
// locking is needed
type Scanner struct {
	source   world.Source
	pipe     *filter.Pipeline
	sel      *cycle.Selector
	rot      *cycle.Rotator
	category *filter.CategoryFilter
	log      *logger.Logger

	working  []entity.Entity
	snap     world.Snapshot
	haveSnap bool

	// Rescan coalescing: one pending cause per tick, highest priority wins,
	// so an event-triggered rescan supersedes a pending periodic one
	rescanEvery    int
	sinceRescan    int
	pendingRescan  events.Cause
	pendingRebuild bool

	statRescans  *atomic.Int64
	statRebuilds *atomic.Int64
	statActive   *atomic.Int64
	statMap      *status.AtomicString
}

// New creates a scanner
// rescanEvery is the periodic rescan interval in ticks, 0 disables it.
// category may be nil when category cycling is unused
func New(
	source world.Source,
	pipe *filter.Pipeline,
	category *filter.CategoryFilter,
	rot *cycle.Rotator,
	log *logger.Logger,
	reg *status.Registry,
	rescanEvery int,
) *Scanner {
	return &Scanner{
		source:        source,
		pipe:          pipe,
		sel:           cycle.NewSelector(),
		rot:           rot,
		category:      category,
		log:           log,
		rescanEvery:   rescanEvery,
		pendingRescan: events.CauseNone,
		statRescans:   reg.Ints.Get("scanner.rescans"),
		statRebuilds:  reg.Ints.Get("scanner.rebuilds"),
		statActive:    reg.Ints.Get("scanner.active"),
		statMap:       reg.Strings.Get("scanner.map"),
	}
}

// Selector exposes the selection cursor
func (s *Scanner) Selector() *cycle.Selector {
	return s.sel
}

// Pipeline exposes the filter pipeline
func (s *Scanner) Pipeline() *filter.Pipeline {
	return s.pipe
}

// Snapshot returns the snapshot from the last rescan
func (s *Scanner) Snapshot() world.Snapshot {
	return s.snap
}

// EventTypes implements events.Handler
func (s *Scanner) EventTypes() []events.Type {
	return []events.Type{events.TypeRescanRequested, events.TypeMapChanged}
}

// HandleEvent implements events.Handler
// Runs on the update tick during the dispatch phase
func (s *Scanner) HandleEvent(ev events.Event) {
	switch ev.Type {
	case events.TypeRescanRequested:
		s.RequestRescan(ev.Cause)
	case events.TypeMapChanged:
		s.RequestRescan(events.CauseMapChange)
	}
}

// RequestRescan coalesces a rescan request into the current tick
// A higher-priority cause supersedes a pending lower one; duplicates merge
func (s *Scanner) RequestRescan(cause events.Cause) {
	if cause > s.pendingRescan {
		s.pendingRescan = cause
	}
}

// RequestRebuild schedules a rebuild of the active list without a source pull
// Used after filter toggles and category rotation
func (s *Scanner) RequestRebuild() {
	s.pendingRebuild = true
}

// Tick advances periodic scheduling and performs at most one coalesced
// rescan or rebuild. Returns the selection outcome and whether a rebuild ran
func (s *Scanner) Tick() (cycle.Outcome, bool) {
	if s.rescanEvery > 0 {
		s.sinceRescan++
		if s.sinceRescan >= s.rescanEvery {
			s.RequestRescan(events.CausePeriodic)
		}
	}

	if s.pendingRescan != events.CauseNone {
		cause := s.pendingRescan
		s.pendingRescan = events.CauseNone
		s.pendingRebuild = false // rescan includes a rebuild
		s.sinceRescan = 0
		return s.rescan(cause), true
	}

	if s.pendingRebuild {
		s.pendingRebuild = false
		return s.Rebuild(), true
	}

	return cycle.OutcomeUnchanged, false
}

// rescan pulls a fresh entity set from the source, re-admits through the
// OnAdd filters, and rebuilds the active list
func (s *Scanner) rescan(cause events.Cause) cycle.Outcome {
	entities, snap := s.source.Scan()

	if s.haveSnap && snap.Epoch != s.snap.Epoch {
		// Map changed: every previous entity is invalid, selection included
		if s.log != nil {
			s.log.Infoln("epoch change", s.snap.Epoch, "->", snap.Epoch, "- selection reset")
		}
		s.sel.Reset()
		s.working = s.working[:0]
	}
	s.snap = snap
	s.haveSnap = true
	s.statMap.Store(snap.MapID)

	s.pipe.BeginPass()
	s.working = s.working[:0]
	for _, e := range entities {
		if e.Epoch != snap.Epoch {
			continue
		}
		if s.pipe.Admit(e, snap) {
			s.working = append(s.working, e)
		}
	}

	s.statRescans.Add(1)
	if s.log != nil {
		s.log.Debugln("rescan", cause.String(), "- admitted", len(s.working), "of", len(entities))
	}

	return s.Rebuild()
}

// Rebuild applies the OnCycle filters to the working set, orders the result
// and re-locates the selection
func (s *Scanner) Rebuild() cycle.Outcome {
	if !s.haveSnap {
		return s.sel.Rebuild(nil)
	}

	s.pipe.BeginPass()
	for _, f := range s.pipe.Filters() {
		if r, ok := f.(refresher); ok {
			r.Refresh(s.snap)
		}
	}

	var active []entity.Entity
	if s.snap.PlayerOK {
		active = make([]entity.Entity, 0, len(s.working))
		for _, e := range s.working {
			if s.pipe.Eligible(e, s.snap) {
				active = append(active, e)
			}
		}
		orderByDistance(active, s.snap)
	}
	// No player context: no entity is eligible

	s.statActive.Store(int64(len(active)))
	s.statRebuilds.Add(1)

	return s.sel.Rebuild(active)
}

// RotateCategory advances the active category and schedules a rebuild
// delta > 0 rotates forward, otherwise backward. Returns the new category
func (s *Scanner) RotateCategory(delta int) entity.Category {
	if s.rot == nil || s.category == nil {
		return entity.CategoryNone
	}
	var c entity.Category
	if delta >= 0 {
		c = s.rot.Next()
	} else {
		c = s.rot.Previous()
	}
	s.category.SetActive(c)
	s.RequestRebuild()
	return c
}

// ToggleFilter flips a filter and schedules a rebuild so previously excluded
// entities reappear without a full rescan
func (s *Scanner) ToggleFilter(name string) (enabled, ok bool) {
	enabled, ok = s.pipe.Toggle(name, s.snap)
	if ok {
		s.RequestRebuild()
	}
	return enabled, ok
}

// orderByDistance sorts by distance to the player, stable, ties broken by ID
// Deterministic given the same input set and filter configuration
func orderByDistance(list []entity.Entity, snap world.Snapshot) {
	sort.SliceStable(list, func(i, j int) bool {
		di := list[i].Pos.DistanceTo(snap.Player)
		dj := list[j].Pos.DistanceTo(snap.Player)
		if di != dj {
			return di < dj
		}
		return list[i].ID < list[j].ID
	})
}
