package core

// Color is a semantic foreground color for a screen cell.
// The platform layer maps each value to a terminal color.
type Color uint8

const (
	ColorDefault Color = iota
	ColorWall          // Solid tiles
	ColorWater         // Open tiles
	ColorCell          // Live cells
	ColorAgent         // The agent
	ColorGoal          // The goal marker
	ColorCursor        // Seed editor cursor
	ColorTitle         // Headings
	ColorAccent        // Highlighted text, selected items
	ColorMuted         // Hints and help lines
	ColorSuccess       // Win messages
	ColorDanger        // Loss messages and errors
)

// String returns the color name.
func (c Color) String() string {
	switch c {
	case ColorDefault:
		return "default"
	case ColorWall:
		return "wall"
	case ColorWater:
		return "water"
	case ColorCell:
		return "cell"
	case ColorAgent:
		return "agent"
	case ColorGoal:
		return "goal"
	case ColorCursor:
		return "cursor"
	case ColorTitle:
		return "title"
	case ColorAccent:
		return "accent"
	case ColorMuted:
		return "muted"
	case ColorSuccess:
		return "success"
	case ColorDanger:
		return "danger"
	default:
		return "unknown"
	}
}
