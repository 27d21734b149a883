package engine

// CellGrid is an immutable snapshot of active cells, one bit per board cell.
// Each tick produces a fresh CellGrid, so a snapshot handed to a renderer
// never changes underneath it.
type CellGrid struct {
	w     int
	h     int
	cells []bool
}

func newCellGrid(w, h int) CellGrid {
	return CellGrid{w: w, h: h, cells: make([]bool, w*h)}
}

// NewCellGrid returns a w×h grid with the given cells active.
// Coordinates outside the grid are ignored.
func NewCellGrid(w, h int, active ...Coord) CellGrid {
	g := newCellGrid(w, h)
	for _, c := range active {
		if g.InBounds(c) {
			g.cells[c.Y*w+c.X] = true
		}
	}
	return g
}

// Width returns the grid width.
func (g CellGrid) Width() int { return g.w }

// Height returns the grid height.
func (g CellGrid) Height() int { return g.h }

// InBounds reports whether c lies on the grid.
func (g CellGrid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.w && c.Y >= 0 && c.Y < g.h
}

// Get reports whether c is active. Out-of-bounds cells are inactive.
func (g CellGrid) Get(c Coord) bool {
	if !g.InBounds(c) {
		return false
	}
	return g.cells[c.Y*g.w+c.X]
}

// ActiveCount returns the number of active cells.
func (g CellGrid) ActiveCount() int {
	n := 0
	for _, alive := range g.cells {
		if alive {
			n++
		}
	}
	return n
}

// IsExtinct reports whether no cell is active.
func (g CellGrid) IsExtinct() bool {
	for _, alive := range g.cells {
		if alive {
			return false
		}
	}
	return true
}

// ActiveCoords lists active cells ordered by row then column.
func (g CellGrid) ActiveCoords() []Coord {
	coords := make([]Coord, 0)
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			if g.cells[y*g.w+x] {
				coords = append(coords, C(x, y))
			}
		}
	}
	return coords
}

// Rows returns a copy of the grid as [y][x] booleans.
func (g CellGrid) Rows() [][]bool {
	rows := make([][]bool, g.h)
	for y := range rows {
		rows[y] = make([]bool, g.w)
		copy(rows[y], g.cells[y*g.w:(y+1)*g.w])
	}
	return rows
}

// Equal reports whether two grids have the same size and contents.
func (g CellGrid) Equal(other CellGrid) bool {
	if g.w != other.w || g.h != other.h {
		return false
	}
	for i, alive := range g.cells {
		if alive != other.cells[i] {
			return false
		}
	}
	return true
}

// CountNeighbors returns the number of active cells in the Moore
// neighborhood of (x, y). The grid is zero-padded: positions outside it
// never count.
func CountNeighbors(g CellGrid, x, y int) int {
	count := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if g.Get(C(x+dx, y+dy)) {
				count++
			}
		}
	}
	return count
}
