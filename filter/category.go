package filter

import (
	"waymark/entity"
	"waymark/world"
)

// FilterNames for the built-in filters
const (
	NameExclusion    = "exclusion"
	NameCategory     = "category"
	NameTransition   = "transition"
	NameReachability = "reachability"
)

// ExclusionFilter drops excluded entity subtypes at admission
//
// Structural: membership never changes with player movement, so it runs OnAdd
type ExclusionFilter struct {
	Base
	excluded map[entity.Category]bool
}

// NewExclusionFilter excludes the given categories from the working set
func NewExclusionFilter(excluded ...entity.Category) *ExclusionFilter {
	m := make(map[entity.Category]bool, len(excluded))
	for _, c := range excluded {
		m[c] = true
	}
	return &ExclusionFilter{
		Base:     NewBase(NameExclusion, OnAdd, true),
		excluded: m,
	}
}

func (f *ExclusionFilter) Passes(e entity.Entity, _ world.Snapshot) bool {
	return !f.excluded[e.Category]
}

// CategoryFilter restricts the active list to one category
//
// The active category rotates at runtime (category cycling), which triggers a
// rebuild, so it evaluates OnCycle. CategoryNone means all categories pass
type CategoryFilter struct {
	Base
	active entity.Category
}

// NewCategoryFilter starts with all categories passing
func NewCategoryFilter() *CategoryFilter {
	return &CategoryFilter{
		Base: NewBase(NameCategory, OnCycle, true),
	}
}

// Active returns the current category restriction
func (f *CategoryFilter) Active() entity.Category {
	return f.active
}

// SetActive changes the category restriction
// The caller is responsible for triggering a rebuild afterwards
func (f *CategoryFilter) SetActive(c entity.Category) {
	f.active = c
}

func (f *CategoryFilter) Passes(e entity.Entity, _ world.Snapshot) bool {
	return f.active == entity.CategoryNone || e.Category == f.active
}

// TransitionFilter drops layer-transition entities while transitions are
// unusable on the current map
type TransitionFilter struct {
	Base
}

// NewTransitionFilter starts enabled
func NewTransitionFilter() *TransitionFilter {
	return &TransitionFilter{
		Base: NewBase(NameTransition, OnCycle, true),
	}
}

func (f *TransitionFilter) Passes(e entity.Entity, snap world.Snapshot) bool {
	if !entity.TransitionCategories[e.Category] {
		return true
	}
	return snap.TransitionsOpen
}
