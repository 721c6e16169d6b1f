package world

import "waymark/core"

// Snapshot is an immutable view of player and map state for one filter pass
//
// Constructed fresh per pass by the scanner; filters must never mutate it.
// PlayerOK is false when no player agent is available, in which case
// context-dependent filters report "not eligible" rather than erroring
type Snapshot struct {
	Player   core.Point
	PlayerOK bool

	MapID string
	Epoch uint64

	// TransitionsOpen reports whether layer transitions (doors, stairs,
	// gateways) are currently usable on this map
	TransitionsOpen bool

	Grid *Grid
}

// PlayerCell maps the player position onto the snapshot grid
// ok is false without a player or grid, or when the player is off-grid
func (s Snapshot) PlayerCell() (core.Cell, bool) {
	if !s.PlayerOK || s.Grid == nil {
		return core.Cell{}, false
	}
	return s.Grid.CellOf(s.Player)
}
