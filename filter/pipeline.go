package filter

import (
	"github.com/Moonlight-Companies/gologger/logger"

	"waymark/entity"
	"waymark/world"
)

// toggler is satisfied by any filter embedding Base
type toggler interface {
	setEnabled(bool)
}

// Pipeline applies filters in their declared order
//
// A filter whose predicate panics is logged and treated as disabled for the
// remainder of the pass; the fault clears on BeginPass. A dead entity is
// filtered out before any predicate runs. Failures never propagate
type Pipeline struct {
	filters []Filter
	log     *logger.Logger

	// faulted holds names of filters that panicked during the current pass
	faulted map[string]bool
}

// NewPipeline builds a pipeline over the given ordered filters
func NewPipeline(log *logger.Logger, filters ...Filter) *Pipeline {
	return &Pipeline{
		filters: filters,
		log:     log,
		faulted: make(map[string]bool),
	}
}

// Filters returns the ordered filter list
func (p *Pipeline) Filters() []Filter {
	return p.filters
}

// Find returns the filter with the given name
func (p *Pipeline) Find(name string) (Filter, bool) {
	for _, f := range p.filters {
		if f.Name() == name {
			return f, true
		}
	}
	return nil, false
}

// BeginPass clears per-pass fault state
// Call once before a batch of admission or rebuild evaluations
func (p *Pipeline) BeginPass() {
	clear(p.faulted)
}

// Admit reports whether an entity passes all OnAdd filters
func (p *Pipeline) Admit(e entity.Entity, snap world.Snapshot) bool {
	return p.eligible(e, snap, OnAdd)
}

// Eligible reports whether an entity passes all OnCycle filters
// OnAdd filters are assumed to have run at admission and are not repeated
func (p *Pipeline) Eligible(e entity.Entity, snap world.Snapshot) bool {
	return p.eligible(e, snap, OnCycle)
}

func (p *Pipeline) eligible(e entity.Entity, snap world.Snapshot, timing Timing) bool {
	// A destroyed entity is "filtered out", never an error
	if !e.Alive() {
		return false
	}

	for _, f := range p.filters {
		if f.Timing() != timing {
			continue
		}
		if !f.Enabled() || p.faulted[f.Name()] {
			continue
		}
		if !p.evaluate(f, e, snap) {
			return false
		}
	}
	return true
}

// evaluate runs one predicate with panic isolation
// A panicking filter counts as pass-through for the rest of the pass
func (p *Pipeline) evaluate(f Filter, e entity.Entity, snap world.Snapshot) (pass bool) {
	defer func() {
		if r := recover(); r != nil {
			p.faulted[f.Name()] = true
			if p.log != nil {
				p.log.Println("filter", f.Name(), "panicked, disabled for this pass:", r)
			}
			pass = true
		}
	}()
	return f.Passes(e, snap)
}

// Enable turns a filter on and fires its OnEnabled hook
// Returns false if no filter has that name
func (p *Pipeline) Enable(name string, snap world.Snapshot) bool {
	f, ok := p.Find(name)
	if !ok {
		return false
	}
	if f.Enabled() {
		return true
	}
	f.(toggler).setEnabled(true)
	if lc, ok := f.(Lifecycle); ok {
		lc.OnEnabled(snap)
	}
	if p.log != nil {
		p.log.Infoln("filter enabled:", name)
	}
	return true
}

// Disable turns a filter off and fires its OnDisabled hook
// Returns false if no filter has that name
func (p *Pipeline) Disable(name string) bool {
	f, ok := p.Find(name)
	if !ok {
		return false
	}
	if !f.Enabled() {
		return true
	}
	f.(toggler).setEnabled(false)
	if lc, ok := f.(Lifecycle); ok {
		lc.OnDisabled()
	}
	if p.log != nil {
		p.log.Infoln("filter disabled:", name)
	}
	return true
}

// Toggle flips a filter's enabled state, returning the new state
func (p *Pipeline) Toggle(name string, snap world.Snapshot) (enabled, ok bool) {
	f, found := p.Find(name)
	if !found {
		return false, false
	}
	if f.Enabled() {
		return false, p.Disable(name)
	}
	return true, p.Enable(name, snap)
}
