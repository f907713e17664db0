package physics

import "math"

// SpatialGrid is a uniform broad-phase grid over a wrapping world.
// Callers insert entity indices by position each tick and then query the
// 3x3 cell neighbourhood around a point.
//
// The cell size must be >= the largest distance at which two inserted
// entities can interact, otherwise the neighbourhood misses collisions.
// Cells are stretched so a whole number of them tiles the world exactly.
type SpatialGrid struct {
	cellSize float64
	invX     float64
	invY     float64
	cols     int
	rows     int
	cells    [][]int
}

// NewSpatialGrid creates a grid covering a worldW x worldH area.
func NewSpatialGrid(worldW, worldH, cellSize float64) *SpatialGrid {
	if cellSize <= 0 {
		cellSize = 1
	}
	cols := max(int(math.Floor(worldW/cellSize)), 1)
	rows := max(int(math.Floor(worldH/cellSize)), 1)

	g := &SpatialGrid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		cells:    make([][]int, cols*rows),
	}
	if worldW > 0 {
		g.invX = float64(cols) / worldW
	}
	if worldH > 0 {
		g.invY = float64(rows) / worldH
	}
	return g
}

// CellSize returns the minimum edge length of one cell.
func (g *SpatialGrid) CellSize() float64 {
	return g.cellSize
}

// Clear empties every cell, keeping the backing arrays for reuse.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert records index at world position (x, y).
func (g *SpatialGrid) Insert(x, y float64, index int) {
	c := g.cellIndex(g.cell(x, y))
	g.cells[c] = append(g.cells[c], index)
}

// QueryAround calls fn for each index in the 3x3 neighbourhood of (x, y),
// wrapping across world edges. Iteration stops when fn returns true.
//
// On grids narrower than three cells a neighbouring cell can be visited
// more than once; callers must tolerate duplicate indices.
func (g *SpatialGrid) QueryAround(x, y float64, fn func(index int) bool) {
	col, row := g.cell(x, y)
	for dr := -1; dr <= 1; dr++ {
		r := (row + dr + g.rows) % g.rows
		for dc := -1; dc <= 1; dc++ {
			c := (col + dc + g.cols) % g.cols
			for _, idx := range g.cells[g.cellIndex(c, r)] {
				if fn(idx) {
					return
				}
			}
		}
	}
}

func (g *SpatialGrid) cellIndex(col, row int) int {
	return row*g.cols + col
}

// cell converts world coordinates to a clamped (col, row).
func (g *SpatialGrid) cell(x, y float64) (int, int) {
	col := min(max(int(x*g.invX), 0), g.cols-1)
	row := min(max(int(y*g.invY), 0), g.rows-1)
	return col, row
}
