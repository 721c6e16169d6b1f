package filter

import (
	"waymark/entity"
	"waymark/navigation"
	"waymark/world"
)

// ReachabilityFilter keeps only entities the player can currently path to
//
// Expensive: a weighted Dijkstra flood from the player position. It therefore
// evaluates OnCycle only, and the flood itself is cached and throttled in a
// navigation.ReachCache — per-entity evaluation is a grid lookup. Enabling
// the filter precomputes the field for the current snapshot; absent player
// context or grid, everything is "not eligible"
type ReachabilityFilter struct {
	Base
	cache *navigation.ReachCache
}

// NewReachabilityFilter builds a disabled-by-default reachability filter
func NewReachabilityFilter(minTicks, dirtyDist int) *ReachabilityFilter {
	return &ReachabilityFilter{
		Base:  NewBase(NameReachability, OnCycle, false),
		cache: navigation.NewReachCache(0, 0, minTicks, dirtyDist),
	}
}

// Refresh updates the cached reach field against the snapshot
// Call once per rebuild before Passes evaluations; cheap when throttled
func (f *ReachabilityFilter) Refresh(snap world.Snapshot) {
	if !f.Enabled() {
		return
	}
	origin, ok := snap.PlayerCell()
	if !ok {
		f.cache.Field.Invalidate()
		return
	}
	grid := snap.Grid
	if grid.Width != f.cache.Field.Width || grid.Height != f.cache.Field.Height {
		f.cache.Resize(grid.Width, grid.Height)
	}
	f.cache.Update(origin, func(x, y int) bool { return !grid.Walkable(x, y) })
}

func (f *ReachabilityFilter) Passes(e entity.Entity, snap world.Snapshot) bool {
	if !snap.PlayerOK || snap.Grid == nil {
		return false
	}
	cell, ok := snap.Grid.CellOf(e.Pos)
	if !ok {
		return false
	}
	return f.cache.Reachable(cell.X, cell.Y)
}

// OnEnabled precomputes the reach field so the first rebuild pays nothing
func (f *ReachabilityFilter) OnEnabled(snap world.Snapshot) {
	f.cache.MarkDirty()
	f.Refresh(snap)
}

// OnDisabled drops the cached field
func (f *ReachabilityFilter) OnDisabled() {
	f.cache.Field.Invalidate()
	f.cache.HasOrigin = false
}
