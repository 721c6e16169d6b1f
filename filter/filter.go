// Package filter decides which discovered entities are eligible for
// announcement and cycling.
//
// Filters are named, toggleable predicates applied in a fixed declared order.
// Each filter declares an evaluation timing: OnAdd filters run once when an
// entity is admitted to the scanner's working set (cheap structural checks),
// OnCycle filters run on every rebuild of the active list (checks that depend
// on player movement). A disabled filter is skipped as always-pass without
// touching its state.
package filter

import (
	"waymark/entity"
	"waymark/world"
)

// Timing declares when a filter's predicate is evaluated
type Timing uint8

const (
	// OnAdd runs once at working-set admission
	OnAdd Timing = iota
	// OnCycle runs on every rebuild of the active list
	OnCycle
)

func (t Timing) String() string {
	if t == OnAdd {
		return "on-add"
	}
	return "on-cycle"
}

// Filter is a toggleable eligibility predicate
//
// Passes must be a pure function of (entity, snapshot) given the filter's
// enabled state and configuration: no mutation of either argument, no hidden
// state changes. Side effects belong in the Lifecycle hooks
type Filter interface {
	Name() string
	Timing() Timing
	Enabled() bool

	// Passes reports whether the entity is eligible
	// Never called for disabled filters or dead entities
	Passes(e entity.Entity, snap world.Snapshot) bool
}

// Lifecycle is optionally implemented by filters with enable/disable
// side effects, such as precomputing a reachability field on enable
type Lifecycle interface {
	OnEnabled(snap world.Snapshot)
	OnDisabled()
}

// Base provides the name/timing/enabled plumbing shared by filters
type Base struct {
	name    string
	timing  Timing
	enabled bool
}

// NewBase constructs the shared filter state
func NewBase(name string, timing Timing, enabled bool) Base {
	return Base{name: name, timing: timing, enabled: enabled}
}

func (b *Base) Name() string   { return b.name }
func (b *Base) Timing() Timing { return b.timing }
func (b *Base) Enabled() bool  { return b.enabled }

// setEnabled flips the flag without lifecycle hooks; the pipeline owns those
func (b *Base) setEnabled(v bool) { b.enabled = v }
