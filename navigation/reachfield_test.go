package navigation

import "testing"

// openGrid reports every cell walkable
func openGrid(x, y int) bool { return false }

// blockedSet builds a WallChecker from explicit blocked cells
func blockedSet(cells ...[2]int) WallChecker {
	m := make(map[[2]int]bool, len(cells))
	for _, c := range cells {
		m[c] = true
	}
	return func(x, y int) bool { return m[[2]int{x, y}] }
}

// TestComputeWeightedDistances verifies cardinal and diagonal edge costs
func TestComputeWeightedDistances(t *testing.T) {
	f := NewReachField(5, 5)
	f.Compute(0, 0, openGrid)

	cases := []struct {
		x, y, want int
	}{
		{0, 0, 0},
		{1, 0, 10}, // one cardinal step
		{1, 1, 14}, // one diagonal step
		{4, 0, 40}, // four cardinal steps
		{2, 2, 28}, // two diagonal steps
		{4, 2, 48}, // two diagonals then two cardinals
	}
	for _, c := range cases {
		if got := f.Distance(c.x, c.y); got != c.want {
			t.Errorf("Expected distance %d at (%d,%d), got %d", c.want, c.x, c.y, got)
		}
	}
}

// TestWallSplitsField verifies cells behind a full wall are unreachable
func TestWallSplitsField(t *testing.T) {
	wall := blockedSet([2]int{2, 0}, [2]int{2, 1}, [2]int{2, 2}, [2]int{2, 3}, [2]int{2, 4})

	f := NewReachField(5, 5)
	f.Compute(0, 2, wall)

	if !f.Reachable(1, 2) {
		t.Error("Expected near side of wall reachable")
	}
	for y := 0; y < 5; y++ {
		if f.Reachable(3, y) || f.Reachable(4, y) {
			t.Errorf("Expected far side of wall unreachable, (3..4,%d) reachable", y)
		}
	}
}

// TestNoCornerCutting verifies diagonals are blocked when either adjacent
// cardinal is a wall
func TestNoCornerCutting(t *testing.T) {
	corner := blockedSet([2]int{1, 0}, [2]int{0, 1})

	f := NewReachField(3, 3)
	f.Compute(0, 0, corner)

	// (1,1) is walkable but only reachable through the blocked corner
	if f.Reachable(1, 1) {
		t.Error("Expected (1,1) unreachable without corner cutting")
	}
}

// TestDistanceBoundsAndValidity verifies invalid and out-of-range queries
func TestDistanceBoundsAndValidity(t *testing.T) {
	f := NewReachField(3, 3)

	if f.Distance(1, 1) != -1 {
		t.Error("Expected -1 before any Compute")
	}

	f.Compute(0, 0, openGrid)
	if f.Distance(-1, 0) != -1 || f.Distance(0, 3) != -1 {
		t.Error("Expected -1 for out-of-bounds cells")
	}

	f.Invalidate()
	if f.Distance(1, 1) != -1 {
		t.Error("Expected -1 after invalidation")
	}
}

// TestComputeOffGridOrigin verifies an out-of-bounds origin invalidates
func TestComputeOffGridOrigin(t *testing.T) {
	f := NewReachField(3, 3)
	f.Compute(0, 0, openGrid)
	f.Compute(5, 5, openGrid)

	if f.Valid {
		t.Error("Expected field invalid after off-grid origin")
	}
}

// TestResizeInvalidates verifies resizing forces recomputation
func TestResizeInvalidates(t *testing.T) {
	f := NewReachField(3, 3)
	f.Compute(0, 0, openGrid)
	f.Resize(4, 4)

	if f.Valid {
		t.Error("Expected field invalid after resize")
	}
	if f.Width != 4 || f.Height != 4 {
		t.Errorf("Expected 4x4 after resize, got %dx%d", f.Width, f.Height)
	}
}
