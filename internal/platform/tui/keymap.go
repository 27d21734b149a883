package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/chicago-loop/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "up", "k", "w":
		return core.ActionUp, false
	case "down", "j":
		return core.ActionDown, false
	case "left", "h", "a":
		return core.ActionLeft, false
	case "right", "l", "d":
		return core.ActionRight, false
	case " ":
		return core.ActionToggle, false
	case "tab":
		return core.ActionCycle, false
	case "enter":
		return core.ActionConfirm, false
	case "b", "esc":
		return core.ActionBack, false
	case "r":
		return core.ActionReset, false
	case "s":
		return core.ActionSolution, false
	}
	return core.ActionNone, false
}

// MapDigit returns the neighbor count typed by a digit key.
func (km *KeyMapper) MapDigit(msg tea.KeyMsg) (int, bool) {
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return 0, false
	}
	r := msg.Runes[0]
	if r < '0' || r > '9' {
		return 0, false
	}
	return int(r - '0'), true
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	if d, ok := km.MapDigit(msg); ok {
		frame.SetDigit(d)
		return false
	}
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}
