package navigation

import "waymark/core"

// ReachCache manages reach field recomputation with throttling
//
// Recomputes are rate limited to MinTicksBetweenCompute and additionally
// gated on the origin moving at least DirtyDistance cells, so small player
// jitter between rebuilds does not trigger a full Dijkstra flood
type ReachCache struct {
	Field *ReachField

	LastOrigin             core.Cell
	HasOrigin              bool
	TicksSinceCompute      int
	MinTicksBetweenCompute int
	DirtyDistance          int

	// PendingUpdate latches true on any state change, cleared after compute
	PendingUpdate bool
}

// NewReachCache creates a cache with the given throttling parameters
func NewReachCache(width, height, minTicks, dirtyDist int) *ReachCache {
	return &ReachCache{
		Field:                  NewReachField(width, height),
		TicksSinceCompute:      minTicks, // Allow immediate first compute
		MinTicksBetweenCompute: minTicks,
		DirtyDistance:          dirtyDist,
		PendingUpdate:          true, // Force initial compute
	}
}

// Resize adjusts dimensions and forces recomputation
func (c *ReachCache) Resize(width, height int) {
	c.Field.Resize(width, height)
	c.HasOrigin = false
	c.PendingUpdate = true
}

// Update recomputes the field if the origin moved far enough and the
// throttle window has elapsed. Returns true if a recompute ran
func (c *ReachCache) Update(origin core.Cell, isBlocked WallChecker) bool {
	c.TicksSinceCompute++

	if !c.HasOrigin {
		c.PendingUpdate = true
		c.TicksSinceCompute = c.MinTicksBetweenCompute
	} else if origin.ManhattanTo(c.LastOrigin) >= c.DirtyDistance {
		c.PendingUpdate = true
		c.TicksSinceCompute = c.MinTicksBetweenCompute
	}

	if (c.PendingUpdate && c.TicksSinceCompute >= c.MinTicksBetweenCompute) || !c.Field.Valid {
		c.Field.Compute(origin.X, origin.Y, isBlocked)
		c.LastOrigin = origin
		c.HasOrigin = true
		c.TicksSinceCompute = 0
		c.PendingUpdate = false
		return true
	}

	return false
}

// MarkDirty forces recomputation on the next eligible tick
func (c *ReachCache) MarkDirty() {
	c.PendingUpdate = true
}

// Reachable returns cached reachability for a cell
func (c *ReachCache) Reachable(x, y int) bool {
	return c.Field.Reachable(x, y)
}

// IsValid reports whether the field holds usable data
func (c *ReachCache) IsValid() bool {
	return c.Field.Valid
}
