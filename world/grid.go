package world

import (
	"math"

	"waymark/core"
)

// Grid is the walkability map for the current layer
//
// Cells map to world units via CellSize; world position (x, y) lives in cell
// (floor(x/CellSize), floor(y/CellSize))
type Grid struct {
	Width, Height int
	CellSize      float64

	blocked []bool
}

// NewGrid creates a fully walkable grid
func NewGrid(width, height int, cellSize float64) *Grid {
	if cellSize <= 0 {
		cellSize = 1
	}
	return &Grid{
		Width:    width,
		Height:   height,
		CellSize: cellSize,
		blocked:  make([]bool, width*height),
	}
}

// InBounds reports whether the cell coordinates are inside the grid
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// Walkable reports whether the cell can be traversed
// Out-of-bounds cells are not walkable
func (g *Grid) Walkable(x, y int) bool {
	if !g.InBounds(x, y) {
		return false
	}
	return !g.blocked[y*g.Width+x]
}

// SetBlocked marks a cell blocked or walkable
func (g *Grid) SetBlocked(x, y int, blocked bool) {
	if !g.InBounds(x, y) {
		return
	}
	g.blocked[y*g.Width+x] = blocked
}

// CellOf maps a world position to its containing cell
// ok is false when the position falls outside the grid
func (g *Grid) CellOf(p core.Point) (core.Cell, bool) {
	c := core.Cell{
		X: int(math.Floor(p.X / g.CellSize)),
		Y: int(math.Floor(p.Y / g.CellSize)),
	}
	return c, g.InBounds(c.X, c.Y)
}
