package game

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/chicago-loop/internal/core"
	"github.com/vovakirdan/chicago-loop/internal/engine"
	"github.com/vovakirdan/chicago-loop/internal/levels"
)

// Minimum screen size for the play screens.
const (
	MinScreenW = 80
	MinScreenH = 22
)

const (
	cellW  = 2 // Terminal columns per board cell
	boardX = 1 // Board origin inside its frame
	boardY = 2
	panelW = 34
)

// Render draws the session into the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if dst.Width() < MinScreenW || dst.Height() < MinScreenH {
		renderTooSmall(dst)
		return
	}

	switch g.phase {
	case engine.PhaseMenu:
		g.renderMenu(dst)
	default:
		g.renderPlay(dst)
	}
}

func renderTooSmall(dst *core.Screen) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorDanger)
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need at least %dx%d", MinScreenW, MinScreenH), core.ColorMuted)
}

func (g *Game) renderMenu(dst *core.Screen) {
	dst.DrawTextCentered(1, "C H I C A G O   L O O P", core.ColorTitle)
	dst.DrawTextCentered(2, "Seed the city. Let life push you home.", core.ColorMuted)

	if len(g.catalog) == 0 {
		dst.DrawTextCentered(5, "No levels available", core.ColorDanger)
		return
	}

	x := (dst.Width() - 40) / 2
	y := 5
	for i, l := range g.catalog {
		prefix := "  "
		color := core.ColorDefault
		if i == g.menuIndex {
			prefix = "> "
			color = core.ColorAccent
		}
		line := fmt.Sprintf("%s%d. %s", prefix, i+1, l.Name)
		dst.DrawTextColored(x, y+i, line, color)
		if g.solved[l.ID] {
			dst.DrawTextColored(x+32, y+i, "solved", core.ColorSuccess)
		}
	}

	sel := g.catalog[g.menuIndex]
	y += len(g.catalog) + 2
	for i, line := range wrap(sel.Description, 40) {
		dst.DrawTextColored(x, y+i, line, core.ColorDefault)
	}
	if sel.Item != "" {
		dst.DrawTextColored(x, y+len(wrap(sel.Description, 40))+1, "Carrying: "+sel.Item, core.ColorMuted)
	}

	drawHelp(dst, "↑/↓ select   Enter play   q quit")
}

func (g *Game) renderPlay(dst *core.Screen) {
	l, ok := g.Level()
	if !ok {
		return
	}

	g.renderBoard(dst, l)

	px := boardX + l.Board.Width()*cellW + 3
	g.renderPanel(dst, l, px)

	switch g.phase {
	case engine.PhaseSetup:
		drawHelp(dst, "arrows/space seed  0-8 rule  tab B/S  s solution  r reset  enter run  esc menu")
	case engine.PhaseRunning:
		drawHelp(dst, "space stop   q quit")
	default:
		drawHelp(dst, "enter continue   r rerun   esc menu   q quit")
	}
}

func (g *Game) renderBoard(dst *core.Screen, l levels.Level) {
	b := l.Board
	dst.DrawBox(core.NewRect(boardX-1, boardY-1, b.Width()*cellW+2, b.Height()+2), core.ColorMuted)
	dst.DrawTextColored(boardX+1, boardY-1, " "+l.Name+" ", core.ColorTitle)

	var cells engine.CellGrid
	if g.phase == engine.PhaseSetup {
		cells = g.pattern.Stamp(b, l.Start)
	} else {
		cells = g.eng.Grid()
	}

	trail := make(map[engine.Coord]bool, len(g.trail))
	for _, c := range g.trail {
		trail[c] = true
	}

	agent := l.Start
	if g.phase != engine.PhaseSetup {
		agent = g.eng.Agent()
	}

	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			c := engine.C(x, y)
			glyph, color := "  ", core.ColorWater
			switch {
			case c == agent:
				glyph, color = "@@", core.ColorAgent
			case c == l.Goal:
				glyph, color = "<>", core.ColorGoal
			case !b.IsOpen(c):
				glyph, color = "▒▒", core.ColorWall
			case cells.Get(c) && g.phase == engine.PhaseSetup:
				glyph, color = "░░", core.ColorCell
			case cells.Get(c):
				glyph, color = "██", core.ColorCell
			case trail[c]:
				glyph, color = "··", core.ColorMuted
			default:
				glyph = "· "
			}
			dst.DrawTextColored(boardX+x*cellW, boardY+y, glyph, color)
		}
	}
}

func (g *Game) renderPanel(dst *core.Screen, l levels.Level, x int) {
	y := 1
	dst.DrawTextColored(x, y, fmt.Sprintf("Level %d/%d", g.levelIndex+1, len(g.catalog)), core.ColorTitle)
	y++
	if l.Item != "" {
		dst.DrawTextColored(x, y, "Carrying: "+l.Item, core.ColorMuted)
	}
	y += 2

	dst.DrawText(x, y, fmt.Sprintf("Generation %d/%d", g.eng.Tick(), g.eng.Config().MaxGenerations))
	y++
	dst.DrawText(x, y, "Rules "+g.rules.String())
	y += 2

	for _, kind := range []engine.RuleKind{engine.RuleBirth, engine.RuleSurvive} {
		labelColor := core.ColorMuted
		if g.phase == engine.PhaseSetup && kind == g.ruleKind {
			labelColor = core.ColorAccent
		}
		dst.DrawTextColored(x, y, fmt.Sprintf("%-8s", kind), labelColor)
		for n := 0; n <= engine.MaxNeighbors; n++ {
			color := core.ColorMuted
			if g.rules.Has(kind, n) {
				color = core.ColorCell
			}
			dst.SetColored(x+9+n*2, y, rune('0'+n), color)
		}
		y++
	}
	y++

	dst.DrawTextColored(x, y, "Seed", core.ColorMuted)
	y++
	size := g.pattern.Size()
	for sy := 0; sy < size; sy++ {
		for sx := 0; sx < size; sx++ {
			glyph, color := "··", core.ColorMuted
			if g.pattern.Get(sx, sy) {
				glyph, color = "██", core.ColorCell
			}
			if g.phase == engine.PhaseSetup && g.cursor == engine.C(sx, sy) {
				color = core.ColorCursor
				if !g.pattern.Get(sx, sy) {
					glyph = "[]"
				}
			}
			dst.DrawTextColored(x+sx*cellW, y+sy, glyph, color)
		}
	}
	y += size + 1

	for i, line := range g.statusLines(l) {
		if y+i >= dst.Height()-1 {
			break
		}
		dst.DrawTextColored(x, y+i, line.text, line.color)
	}
}

type statusLine struct {
	text  string
	color core.Color
}

// statusLines returns the outcome or message text for the side panel.
func (g *Game) statusLines(l levels.Level) []statusLine {
	var lines []statusLine
	add := func(text string, color core.Color) {
		for _, w := range wrap(text, panelW) {
			lines = append(lines, statusLine{w, color})
		}
	}

	item := l.Item
	if item == "" {
		item = "courier"
	}

	switch g.phase {
	case engine.PhaseWon:
		add("ESCAPED!", core.ColorSuccess)
		add(fmt.Sprintf("The %s made it out in %d generations.", item, g.eng.Tick()), core.ColorDefault)
		if g.campaignDone {
			add("Chicago is saved! Enter returns to the menu.", core.ColorAccent)
		}
	case engine.PhaseLost:
		add("LOST", core.ColorDanger)
		if g.eng.Outcome() == engine.LostExtinction {
			add("All cells died! Adjust your setup.", core.ColorDefault)
		} else {
			add(fmt.Sprintf("The %s got stuck! Try different rules.", item), core.ColorDefault)
		}
	}

	if g.message != "" {
		add(g.message, core.ColorAccent)
	}
	return lines
}

func drawHelp(dst *core.Screen, text string) {
	if r := []rune(text); len(r) > dst.Width() {
		text = string(r[:dst.Width()])
	}
	dst.DrawTextColored(0, dst.Height()-1, text, core.ColorMuted)
}

// wrap splits text into lines of at most width runes on word boundaries.
func wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len([]rune(line))+1+len([]rune(w)) > width {
			lines = append(lines, line)
			line = w
			continue
		}
		line += " " + w
	}
	return append(lines, line)
}
