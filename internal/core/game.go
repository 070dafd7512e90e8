package core

// RuntimeConfig is passed to a game on Reset.
type RuntimeConfig struct {
	ScreenW  int // screen width in characters
	ScreenH  int // screen height in characters
	TickRate int // steps per second requested by the platform
	Upcoming int // queued units shown in the side panel
}

// DefaultConfig returns a RuntimeConfig for an 80x24 terminal.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
		Upcoming: 3,
	}
}

// GameState is what the platform needs to know about a game between steps.
type GameState struct {
	Score    int
	Moves    int
	GameOver bool
	Paused   bool
	Reason   string // why the game ended, empty while running
}

// StepResult is returned by Game.Step.
type StepResult struct {
	State GameState

	// Message is a short status line, such as why a command was rejected.
	Message string
}

// Game is what the terminal front end drives. Implementations keep their
// logic free of Bubble Tea; the platform maps keys to actions, calls Step
// on every tick and renders into a Screen.
type Game interface {
	// ID returns a stable identifier used in logs and score storage.
	ID() string

	// Title returns a human-readable name for headers.
	Title() string

	// Reset starts the game over.
	Reset(cfg RuntimeConfig)

	// Step consumes the actions of one tick.
	Step(in InputFrame) StepResult

	// Render draws the current state into dst, which is pre-cleared.
	Render(dst *Screen)

	// State returns the current state.
	State() GameState
}
