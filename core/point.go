package core

import "math"

// Point is a position in world units
type Point struct {
	X, Y float64
}

// DistanceTo returns the Euclidean distance to another point
func (p Point) DistanceTo(o Point) float64 {
	dx := p.X - o.X
	dy := p.Y - o.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// ManhattanTo returns the Manhattan distance to another point
// Used for cheap dirty-distance checks where exact distance does not matter
func (p Point) ManhattanTo(o Point) float64 {
	return math.Abs(p.X-o.X) + math.Abs(p.Y-o.Y)
}

// Cell is an integer grid coordinate
type Cell struct {
	X, Y int
}

// ManhattanTo returns the Manhattan distance to another cell
func (c Cell) ManhattanTo(o Cell) int {
	dx := c.X - o.X
	if dx < 0 {
		dx = -dx
	}
	dy := c.Y - o.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}
