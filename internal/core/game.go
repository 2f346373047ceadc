package core

// Game is the contract between a game simulation and a frontend.
// Games contain pure logic with no frontend dependencies (especially no
// Bubble Tea or Ebitengine). The frontend handles input mapping, timing and
// drawing.
type Game interface {
	// ID returns a stable identifier, used for score storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset initializes the game state.
	// The RuntimeConfig provides screen dimensions, tick rate and RNG seed.
	Reset(cfg RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	// Input is abstracted to actions (Jump, Left, Pause, etc.).
	Step(in InputFrame) StepResult

	// Render draws the current game state into the provided screen buffer.
	Render(dst *Screen)

	// State returns the current game state summary.
	State() GameState
}

// Resizable is implemented by games that can follow terminal resizes
// without resetting.
type Resizable interface {
	Resize(w, h int)
}
