package engine

import "strings"

// DefaultSeedSize is the side length of the operator's setup grid.
const DefaultSeedSize = 4

// MaxSeedSize is the largest side length ParseSeedPattern accepts.
const MaxSeedSize = 64

// SeedPattern is the small square grid the operator paints before a run.
// It is stamped onto the board centered on the agent's start.
type SeedPattern struct {
	size  int
	cells []bool
}

// NewSeedPattern returns an empty n×n pattern.
func NewSeedPattern(n int) SeedPattern {
	if n < 0 {
		n = 0
	}
	return SeedPattern{size: n, cells: make([]bool, n*n)}
}

// ParseSeedPattern parses square text rows: '#', '1', 'x' or 'X' is active,
// '.', '0' or '-' is inactive.
func ParseSeedPattern(rows []string) (SeedPattern, error) {
	n := len(rows)
	if n == 0 {
		return SeedPattern{}, configErr(CodeBadSeed, "seed pattern has no rows")
	}
	if n > MaxSeedSize {
		return SeedPattern{}, configErr(CodeBadSeed, "seed pattern has %d rows, at most %d allowed", n, MaxSeedSize)
	}
	for y, row := range rows {
		if w := len(strings.TrimSpace(row)); w != n {
			return SeedPattern{}, configErr(CodeBadSeed, "seed row %d has width %d, expected %d", y, w, n)
		}
	}
	p := NewSeedPattern(n)
	for y, row := range rows {
		for x, r := range strings.TrimSpace(row) {
			switch r {
			case '#', '1', 'x', 'X':
				p.cells[y*n+x] = true
			case '.', '0', '-':
			default:
				return SeedPattern{}, configErr(CodeBadSeed, "unknown seed cell %q at (%d,%d)", r, x, y)
			}
		}
	}
	return p, nil
}

// Size returns the side length of the pattern.
func (p SeedPattern) Size() int { return p.size }

func (p SeedPattern) inBounds(x, y int) bool {
	return x >= 0 && x < p.size && y >= 0 && y < p.size
}

// Get reports whether (x, y) is active.
func (p SeedPattern) Get(x, y int) bool {
	if !p.inBounds(x, y) {
		return false
	}
	return p.cells[y*p.size+x]
}

// Set assigns (x, y). Out-of-bounds writes are ignored.
func (p *SeedPattern) Set(x, y int, active bool) {
	if p.inBounds(x, y) {
		p.cells[y*p.size+x] = active
	}
}

// Toggle flips (x, y).
func (p *SeedPattern) Toggle(x, y int) {
	if p.inBounds(x, y) {
		p.cells[y*p.size+x] = !p.cells[y*p.size+x]
	}
}

// Clear deactivates every cell.
func (p *SeedPattern) Clear() {
	for i := range p.cells {
		p.cells[i] = false
	}
}

// ActiveCount returns the number of active cells.
func (p SeedPattern) ActiveCount() int {
	n := 0
	for _, alive := range p.cells {
		if alive {
			n++
		}
	}
	return n
}

// Clone returns an independent copy.
func (p SeedPattern) Clone() SeedPattern {
	cells := make([]bool, len(p.cells))
	copy(cells, p.cells)
	return SeedPattern{size: p.size, cells: cells}
}

// Rows renders the pattern in the ParseSeedPattern format using '#' and '.'.
func (p SeedPattern) Rows() []string {
	rows := make([]string, p.size)
	for y := 0; y < p.size; y++ {
		b := make([]byte, p.size)
		for x := 0; x < p.size; x++ {
			if p.cells[y*p.size+x] {
				b[x] = '#'
			} else {
				b[x] = '.'
			}
		}
		rows[y] = string(b)
	}
	return rows
}

// String joins Rows with commas, the form accepted by the CLI.
func (p SeedPattern) String() string {
	return strings.Join(p.Rows(), ",")
}

// Stamp copies the pattern onto a fresh grid, centered on center with floor
// division. Targets outside the board or on walls are skipped.
func (p SeedPattern) Stamp(board Board, center Coord) CellGrid {
	g := newCellGrid(board.Width(), board.Height())
	offX := center.X - p.size/2
	offY := center.Y - p.size/2
	for y := 0; y < p.size; y++ {
		for x := 0; x < p.size; x++ {
			target := C(offX+x, offY+y)
			if !board.IsOpen(target) {
				continue
			}
			g.cells[target.Y*g.w+target.X] = p.cells[y*p.size+x]
		}
	}
	return g
}
