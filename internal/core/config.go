package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Platform frames per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the game has ended and waits for a restart
	Paused   bool // Whether the game is paused
}

// GameEvent is a notable thing that happened during a step, for the platform
// to show or log. Games keep their own typed events; this is the
// presentation form.
type GameEvent struct {
	Kind    string // Short machine name, e.g. "game_over"
	Message string // Human-readable description
}

// StepResult is returned by Game.Step() after each platform frame.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []GameEvent
}
