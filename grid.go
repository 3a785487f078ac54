package checkbox

// Grid holds one frame's checkbox states in row-major order: the cell
// at (row, col) lives at index row*gridSize + col. A grid for size N
// always has exactly N*N cells.
type Grid []bool

// NewGrid returns an all-unchecked grid for the given size.
func NewGrid(gridSize int) Grid {
	return make(Grid, gridSize*gridSize)
}

// Toggle flips a single cell. Out-of-range indices are ignored.
func (g Grid) Toggle(i int) {
	if i < 0 || i >= len(g) {
		return
	}
	g[i] = !g[i]
}

// Invert flips every cell.
func (g Grid) Invert() {
	for i := range g {
		g[i] = !g[i]
	}
}

// Clear unchecks every cell.
func (g Grid) Clear() {
	for i := range g {
		g[i] = false
	}
}

// Clone returns an independent copy. Edits must go through a copy
// whenever the original is concurrently being read for rendering.
func (g Grid) Clone() Grid {
	out := make(Grid, len(g))
	copy(out, g)
	return out
}

// On counts the checked cells.
func (g Grid) On() int {
	var n int
	for _, cell := range g {
		if cell {
			n++
		}
	}
	return n
}
