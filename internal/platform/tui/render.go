package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/chicago-loop/internal/core"
)

// colorStyles maps semantic colors to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorWall:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	core.ColorWater:   lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorCell:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorAgent:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	core.ColorGoal:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
	core.ColorCursor:  lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorTitle:   lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
	core.ColorAccent:  lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorMuted:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorDanger:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
