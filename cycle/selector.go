// Package cycle maintains the selection cursor over the filtered,
// ordered entity list across repeated rebuilds.
package cycle

import (
	"waymark/entity"
)

// Outcome describes how a cursor operation or rebuild affected the selection
type Outcome uint8

const (
	// OutcomeUnchanged means the same entity is selected at the same index
	OutcomeUnchanged Outcome = iota
	// OutcomeMoved means a cursor movement selected a different entity
	OutcomeMoved
	// OutcomeRelocated means a rebuild found the same logical entity at a
	// new index and restored the cursor there
	OutcomeRelocated
	// OutcomeLost means the previously selected entity disappeared and the
	// cursor reset to index 0
	OutcomeLost
	// OutcomeEmpty means the list holds no entities
	OutcomeEmpty
)

func (o Outcome) String() string {
	switch o {
	case OutcomeUnchanged:
		return "unchanged"
	case OutcomeMoved:
		return "moved"
	case OutcomeRelocated:
		return "relocated"
	case OutcomeLost:
		return "lost"
	case OutcomeEmpty:
		return "empty"
	}
	return "unknown"
}

// Selector holds the cursor into the current filtered, ordered list
//
// The persisted selected ID, not the numeric index, is what survives a
// rebuild: distance-based re-sorting must never silently move focus to a
// different entity. When the selected entity vanishes the cursor resets to
// index 0 and the selection-lost flag latches until the next successful
// selection
type Selector struct {
	list     []entity.Entity
	cursor   int
	selected entity.ID
	lost     bool
}

// NewSelector creates an empty selector
func NewSelector() *Selector {
	return &Selector{}
}

// List returns the current ordered, filtered list
// Callers must not mutate it
func (s *Selector) List() []entity.Entity {
	return s.list
}

// Len returns the list length
func (s *Selector) Len() int {
	return len(s.list)
}

// Index returns the current cursor index, 0 when empty
func (s *Selector) Index() int {
	return s.cursor
}

// Current returns the selected entity, ok=false when the list is empty
func (s *Selector) Current() (entity.Entity, bool) {
	if len(s.list) == 0 {
		return entity.Entity{}, false
	}
	return s.list[s.cursor], true
}

// SelectionLost reports the latched selection-lost flag
func (s *Selector) SelectionLost() bool {
	return s.lost
}

// Rebuild replaces the list and re-locates the previous selection by ID
//
// The list must already be ordered (stable sort by distance, ties by ID).
// Outcomes: Empty when the new list has no entities; Relocated/Unchanged when
// the selected ID resolves; Lost when it does not, with the cursor reset to 0
func (s *Selector) Rebuild(list []entity.Entity) Outcome {
	s.list = list

	if len(list) == 0 {
		s.cursor = 0
		if s.selected != entity.IDNone && !s.lost {
			s.selected = entity.IDNone
			s.lost = true
			return OutcomeLost
		}
		s.selected = entity.IDNone
		return OutcomeEmpty
	}

	if s.selected != entity.IDNone {
		for i, e := range list {
			if e.ID == s.selected {
				moved := i != s.cursor
				s.cursor = i
				s.lost = false
				if moved {
					return OutcomeRelocated
				}
				return OutcomeUnchanged
			}
		}
	}

	// Previous selection gone (or none existed yet): reset to head
	s.cursor = 0
	if s.selected != entity.IDNone {
		s.selected = list[0].ID
		s.lost = true
		return OutcomeLost
	}
	s.selected = list[0].ID
	s.lost = false
	return OutcomeMoved
}

// Next advances the cursor with wraparound
// ok=false and OutcomeEmpty when no entities exist
func (s *Selector) Next() (entity.Entity, Outcome, bool) {
	return s.step(1)
}

// Previous retreats the cursor with wraparound
func (s *Selector) Previous() (entity.Entity, Outcome, bool) {
	return s.step(-1)
}

func (s *Selector) step(delta int) (entity.Entity, Outcome, bool) {
	n := len(s.list)
	if n == 0 {
		return entity.Entity{}, OutcomeEmpty, false
	}

	s.cursor = (s.cursor + delta + n) % n
	e := s.list[s.cursor]
	moved := e.ID != s.selected
	s.selected = e.ID
	s.lost = false

	if moved {
		return e, OutcomeMoved, true
	}
	return e, OutcomeUnchanged, true
}

// Reset clears the list, cursor and latched state
// Used on epoch change (map load)
func (s *Selector) Reset() {
	s.list = nil
	s.cursor = 0
	s.selected = entity.IDNone
	s.lost = false
}
