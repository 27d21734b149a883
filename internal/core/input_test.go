package core

import "testing"

func TestInputFrameZeroValue(t *testing.T) {
	var f InputFrame

	if !f.Empty() {
		t.Error("zero frame should be empty")
	}
	if _, ok := f.Digit(); ok {
		t.Error("zero frame should carry no digit")
	}
	if f.Has(ActionConfirm) {
		t.Error("zero frame should have no actions")
	}

	f.Set(ActionConfirm)
	if !f.Has(ActionConfirm) || f.Empty() {
		t.Error("Set on zero frame should record the action")
	}
}

func TestInputFrameDigits(t *testing.T) {
	f := NewInputFrame()

	f.SetDigit(0)
	if d, ok := f.Digit(); !ok || d != 0 {
		t.Errorf("Digit() = %d, %v; expected 0, true", d, ok)
	}

	f.SetDigit(10)
	f.SetDigit(-1)
	if d, _ := f.Digit(); d != 0 {
		t.Errorf("out of range digits should be ignored, got %d", d)
	}

	f.SetDigit(8)
	if d, _ := f.Digit(); d != 8 {
		t.Errorf("last digit should win, got %d", d)
	}

	f.Set(ActionCycle)
	f.Clear()
	if !f.Empty() {
		t.Error("Clear should remove actions and digit")
	}
}

func TestActionString(t *testing.T) {
	tests := map[Action]string{
		ActionNone:     "None",
		ActionToggle:   "Toggle",
		ActionSolution: "Solution",
		ActionQuit:     "Quit",
		Action(99):     "Unknown",
	}
	for a, want := range tests {
		if got := a.String(); got != want {
			t.Errorf("Action(%d).String() = %q, expected %q", int(a), got, want)
		}
	}
}

func TestFramesPerGeneration(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.FramesPerGeneration(); got != 15 {
		t.Errorf("default FramesPerGeneration() = %d, expected 15", got)
	}

	cfg.TickRate = 0
	if got := cfg.FramesPerGeneration(); got != 1 {
		t.Errorf("zero tick rate should give 1, got %d", got)
	}

	cfg = DefaultConfig()
	cfg.GenerationInterval = 1
	if got := cfg.FramesPerGeneration(); got != 1 {
		t.Errorf("tiny interval should give 1, got %d", got)
	}
}
