package navigation

// Weighted edge costs: cardinal = 10, diagonal = 14 (≈10√2)
// Approximates Euclidean distance to avoid Chebyshev artifacts
const (
	costCardinal    = 10
	costDiagonal    = 14
	costUnreachable = 1<<30 - 1
)

// Neighbor vectors, cardinals and diagonals interleaved: N, NE, E, SE, S, SW, W, NW
var dirVectors = [8][2]int{
	{0, -1}, {1, -1}, {1, 0}, {1, 1},
	{0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
}

// Per-direction costs matching dirVectors index order
var dirCosts = [8]int{
	costCardinal, costDiagonal, costCardinal, costDiagonal,
	costCardinal, costDiagonal, costCardinal, costDiagonal,
}

// --- Min-heap for Dijkstra ---

type heapEntry struct {
	idx  int // Flat grid index (y*width + x)
	dist int // Weighted distance from origin
}

type minHeap []heapEntry

func (h *minHeap) push(e heapEntry) {
	*h = append(*h, e)
	// Sift up
	i := len(*h) - 1
	for i > 0 {
		parent := (i - 1) / 2
		if (*h)[parent].dist <= (*h)[i].dist {
			break
		}
		(*h)[parent], (*h)[i] = (*h)[i], (*h)[parent]
		i = parent
	}
}

func (h *minHeap) pop() heapEntry {
	old := *h
	n := len(old)
	e := old[0]
	old[0] = old[n-1]
	*h = old[:n-1]

	// Sift down
	i := 0
	for {
		left := 2*i + 1
		if left >= len(*h) {
			break
		}
		smallest := left
		if right := left + 1; right < len(*h) && (*h)[right].dist < (*h)[left].dist {
			smallest = right
		}
		if (*h)[i].dist <= (*h)[smallest].dist {
			break
		}
		(*h)[i], (*h)[smallest] = (*h)[smallest], (*h)[i]
		i = smallest
	}
	return e
}

// WallChecker returns true if a cell blocks navigation
type WallChecker func(x, y int) bool

// ReachField stores precomputed reachability from an origin cell
//
// A single weighted Dijkstra flood from the player position answers every
// per-entity "can the player path to this" query for the rest of the pass,
// so the expensive work runs once per recompute instead of once per entity
type ReachField struct {
	Width, Height int
	Distances     []int // Weighted distance from origin, costUnreachable if cut off

	// Cache state
	OriginX, OriginY int  // Origin this field was computed for
	Valid            bool // False if field needs recomputation

	// Reusable heap buffer to reduce allocations across recomputes
	heap minHeap
}

// NewReachField creates an empty field for the given dimensions
func NewReachField(width, height int) *ReachField {
	size := width * height
	return &ReachField{
		Width:     width,
		Height:    height,
		Distances: make([]int, size),
		OriginX:   -1,
		OriginY:   -1,
		heap:      make(minHeap, 0, size/4),
	}
}

// Resize adjusts field dimensions, invalidates cache
func (f *ReachField) Resize(width, height int) {
	size := width * height
	if cap(f.Distances) < size {
		f.Distances = make([]int, size)
	} else {
		f.Distances = f.Distances[:size]
	}
	f.Width = width
	f.Height = height
	f.Valid = false
}

// Invalidate marks the field for recomputation
func (f *ReachField) Invalidate() {
	f.Valid = false
}

// Reachable reports whether a cell can be pathed to from the origin
// Invalid fields and out-of-bounds cells report false
func (f *ReachField) Reachable(x, y int) bool {
	return f.Distance(x, y) >= 0
}

// Distance returns the weighted path distance from the origin, -1 if
// unreachable or the field is invalid
func (f *ReachField) Distance(x, y int) int {
	if !f.Valid || x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return -1
	}
	d := f.Distances[y*f.Width+x]
	if d >= costUnreachable {
		return -1
	}
	return d
}

// Compute performs weighted Dijkstra from the origin cell
// Diagonal moves are disallowed when either adjacent cardinal is blocked
// (no corner cutting)
func (f *ReachField) Compute(originX, originY int, isBlocked WallChecker) {
	if originX < 0 || originY < 0 || originX >= f.Width || originY >= f.Height {
		f.Valid = false
		return
	}

	size := f.Width * f.Height
	w := f.Width

	for i := 0; i < size; i++ {
		f.Distances[i] = costUnreachable
	}

	originIdx := originY*w + originX
	f.Distances[originIdx] = 0

	f.heap = f.heap[:0]
	f.heap.push(heapEntry{idx: originIdx, dist: 0})

	for len(f.heap) > 0 {
		entry := f.heap.pop()

		if entry.dist > f.Distances[entry.idx] {
			continue // Stale entry
		}

		cx := entry.idx % w
		cy := entry.idx / w

		for dirIdx := 0; dirIdx < len(dirVectors); dirIdx++ {
			nx := cx + dirVectors[dirIdx][0]
			ny := cy + dirVectors[dirIdx][1]

			if nx < 0 || ny < 0 || nx >= f.Width || ny >= f.Height {
				continue
			}

			if isBlocked(nx, ny) {
				continue
			}

			// Diagonal corner cutting prevention
			if dirVectors[dirIdx][0] != 0 && dirVectors[dirIdx][1] != 0 {
				if isBlocked(cx+dirVectors[dirIdx][0], cy) || isBlocked(cx, cy+dirVectors[dirIdx][1]) {
					continue
				}
			}

			nIdx := ny*w + nx
			newDist := entry.dist + dirCosts[dirIdx]

			if newDist < f.Distances[nIdx] {
				f.Distances[nIdx] = newDist
				f.heap.push(heapEntry{idx: nIdx, dist: newDist})
			}
		}
	}

	f.OriginX = originX
	f.OriginY = originY
	f.Valid = true
}
