package engine

import "strings"

// Board is the static wall/open layout of a level.
// Tiles are stored in row-major order: index = y*W + x.
// A Board is never mutated after construction.
type Board struct {
	w     int
	h     int
	tiles []Tile
}

// NewBoard creates a board from a row-major tile slice.
func NewBoard(w, h int, tiles []Tile) (Board, error) {
	if w <= 0 || h <= 0 {
		return Board{}, configErr(CodeBadBoard, "board dimensions %dx%d must be positive", w, h)
	}
	if len(tiles) != w*h {
		return Board{}, configErr(CodeBadBoard, "board has %d tiles, expected %d", len(tiles), w*h)
	}
	cp := make([]Tile, len(tiles))
	copy(cp, tiles)
	return Board{w: w, h: h, tiles: cp}, nil
}

// NewOpenBoard returns a board with no walls.
func NewOpenBoard(w, h int) Board {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Board{w: w, h: h, tiles: make([]Tile, w*h)}
}

// BoardFromFunc builds a board by classifying every coordinate with f.
func BoardFromFunc(w, h int, f func(x, y int) Tile) Board {
	b := NewOpenBoard(w, h)
	for y := 0; y < b.h; y++ {
		for x := 0; x < b.w; x++ {
			b.tiles[y*b.w+x] = f(x, y)
		}
	}
	return b
}

// ParseBoard parses text rows: '#' is a wall, '.', '~' or ' ' is open.
// All rows must have the same width.
func ParseBoard(rows []string) (Board, error) {
	if len(rows) == 0 {
		return Board{}, configErr(CodeBadBoard, "board has no rows")
	}
	w := len(rows[0])
	tiles := make([]Tile, 0, w*len(rows))
	for y, row := range rows {
		if len(row) != w {
			return Board{}, configErr(CodeBadBoard, "row %d has width %d, expected %d", y, len(row), w)
		}
		for x, r := range row {
			switch r {
			case '#':
				tiles = append(tiles, TileWall)
			case '.', '~', ' ':
				tiles = append(tiles, TileOpen)
			default:
				return Board{}, configErr(CodeBadBoard, "unknown tile %q at (%d,%d)", r, x, y)
			}
		}
	}
	return NewBoard(w, len(rows), tiles)
}

// Width returns the board width.
func (b Board) Width() int { return b.w }

// Height returns the board height.
func (b Board) Height() int { return b.h }

// InBounds reports whether c lies on the board.
func (b Board) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < b.w && c.Y >= 0 && c.Y < b.h
}

// Tile returns the tile at c. Out-of-bounds coordinates read as walls.
func (b Board) Tile(c Coord) Tile {
	if !b.InBounds(c) {
		return TileWall
	}
	return b.tiles[c.Y*b.w+c.X]
}

// IsOpen reports whether c is on the board and not a wall.
func (b Board) IsOpen(c Coord) bool {
	return b.InBounds(c) && b.tiles[c.Y*b.w+c.X] == TileOpen
}

// OpenCount returns the number of open tiles.
func (b Board) OpenCount() int {
	n := 0
	for _, t := range b.tiles {
		if t == TileOpen {
			n++
		}
	}
	return n
}

// Rows renders the board in the ParseBoard format.
func (b Board) Rows() []string {
	rows := make([]string, b.h)
	var sb strings.Builder
	for y := 0; y < b.h; y++ {
		sb.Reset()
		for x := 0; x < b.w; x++ {
			if b.tiles[y*b.w+x] == TileWall {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		rows[y] = sb.String()
	}
	return rows
}
