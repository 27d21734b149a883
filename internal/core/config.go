package core

import "time"

// RuntimeConfig contains configuration passed to a session at creation.
type RuntimeConfig struct {
	ScreenW            int           // Screen width in characters
	ScreenH            int           // Screen height in characters
	TickRate           int           // Frames per second (default 30)
	GenerationInterval time.Duration // Time between generations while running
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:            80,
		ScreenH:            24,
		TickRate:           30,
		GenerationInterval: 500 * time.Millisecond,
	}
}

// FramesPerGeneration returns how many frames pass between generations.
// Always at least 1.
func (c RuntimeConfig) FramesPerGeneration() int {
	if c.TickRate <= 0 || c.GenerationInterval <= 0 {
		return 1
	}
	frames := int((c.GenerationInterval*time.Duration(c.TickRate) + time.Second/2) / time.Second)
	if frames < 1 {
		return 1
	}
	return frames
}

// GameState is a summary of the session, read by the platform layer.
type GameState struct {
	Phase      string // "menu", "setup", "running", "won" or "lost"
	LevelID    string
	Generation int
	Outcome    string // Engine outcome once a run has finished
	Quit       bool   // The player asked to leave
}

// StepResult is returned by Game.Step() after each frame.
type StepResult struct {
	State GameState
}
