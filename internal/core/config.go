package core

// RuntimeConfig contains configuration passed to the game at initialization.
// The game uses it to adapt to the screen and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed; 0 means the platform picks one from the clock
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// Dt returns the fixed tick length in seconds.
func (c RuntimeConfig) Dt() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60
	}
	return 1.0 / float64(c.TickRate)
}

// GameState is the summary a frontend needs after each tick.
type GameState struct {
	Score     int     // Current score
	HighScore int     // Best score known to the game
	Distance  float64 // Meters travelled in the current run
	Phase     string  // Session phase name (intro, playing, stumbling, game_over)
	GameOver  bool    // Whether the run has ended and the game-over panel is up
	Paused    bool    // Whether the run is paused
}

// StepResult is returned by Step after each simulation tick.
type StepResult struct {
	State GameState
	// RunEnded is set on exactly one tick per run: the tick the game-over
	// panel appeared. Frontends persist the run then.
	RunEnded bool
}
