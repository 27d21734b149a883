package levels

import (
	"github.com/vovakirdan/chicago-loop/internal/engine"
)

// Built-in board size.
const (
	BoardWidth  = 20
	BoardHeight = 15
)

func init() {
	Register(tunnels())
	Register(river())
	Register(streets())
}

// tunnels is a maze of freight tunnels. The outer ring is solid except for
// two gaps, and walls run along every fourth column and every third row.
func tunnels() Level {
	w, h := BoardWidth, BoardHeight
	board := engine.BoardFromFunc(w, h, func(x, y int) engine.Tile {
		if (x == 2 && y == 0) || (x == w-3 && y == h-1) {
			return engine.TileOpen
		}
		if x == 0 || y == 0 || x == w-1 || y == h-1 {
			return engine.TileWall
		}
		if x%4 == 0 && y > 2 && y < h-3 {
			return engine.TileWall
		}
		if y%3 == 0 && x > 2 && x < w-3 {
			return engine.TileWall
		}
		return engine.TileOpen
	})

	return Level{
		ID:          "tunnels",
		Name:        "The Tunnels",
		Description: "Chicago 1992. The Great Flood. Navigate the mail tunnels to escape.",
		Item:        "rat",
		Order:       1,
		Board:       board,
		Start:       engine.C(w-3, h-2),
		Goal:        engine.C(2, 1),
		Solution:    mustSolution([]string{".###", ".###", ".###", "####"}, "B12345/S0"),
	}
}

// river is a Y-shaped confluence: one channel from the south that splits
// into north-west and north-east arms. A canal on the west bank leads in
// from the start and a dock on the east bank leads out to the goal.
func river() Level {
	w, h := BoardWidth, BoardHeight
	cx, cy := w/2, h/2
	start, goal := engine.C(1, cy), engine.C(w-2, cy-2)
	const width = 3

	board := engine.BoardFromFunc(w, h, func(x, y int) engine.Tile {
		if y == start.Y && x >= start.X && x < cx {
			return engine.TileOpen
		}
		if y == goal.Y && x > cx && x <= goal.X {
			return engine.TileOpen
		}

		var d int
		switch {
		case y >= cy:
			d = x - cx
		case x < cx:
			d = (cx - x) - (cy - y)
		default:
			d = (x - cx) - (cy - y)
		}
		if abs(d) < width {
			return engine.TileOpen
		}
		return engine.TileWall
	})

	return Level{
		ID:          "river",
		Name:        "The River",
		Description: "The Chicago River Y-confluence. Reach the east dock by the locks.",
		Item:        "fish",
		Order:       2,
		Board:       board,
		Start:       start,
		Goal:        goal,
		Solution:    mustSolution([]string{"##..", "##..", "##..", "####"}, "B12345/S0"),
	}
}

// streets is the downtown grid: two-lane avenues every four blocks in
// both directions.
func streets() Level {
	w, h := BoardWidth, BoardHeight
	board := engine.BoardFromFunc(w, h, func(x, y int) engine.Tile {
		if x%4 <= 1 || y%4 <= 1 {
			return engine.TileOpen
		}
		return engine.TileWall
	})

	return Level{
		ID:          "streets",
		Name:        "The Streets",
		Description: "Downtown Chicago. Navigate the grid to reach your destination.",
		Item:        "brick",
		Order:       3,
		Board:       board,
		Start:       engine.C(w-3, 1),
		Goal:        engine.C(2, h-2),
		Solution:    mustSolution([]string{"###.", "#.#.", "###.", "...."}, "B3/S24"),
	}
}

func mustSolution(rows []string, rules string) *Solution {
	p, err := engine.ParseSeedPattern(rows)
	if err != nil {
		panic(err)
	}
	r, err := engine.ParseRuleSet(rules)
	if err != nil {
		panic(err)
	}
	return &Solution{Pattern: p, Rules: r}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
