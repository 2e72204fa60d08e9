package core

// RuntimeConfig contains configuration passed to the game at initialization.
// The platform fills it from flags and the terminal/window size.
type RuntimeConfig struct {
	ScreenW  int   // Terminal width in characters (terminal front end only)
	ScreenH  int   // Terminal height in characters (terminal front end only)
	TickRate int   // Simulation ticks per second (default 30)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the public status of a game session.
type GameState struct {
	Score      int
	Lives      int
	Level      int
	GameOver   bool // Game-over phase (initials entry or score table)
	Terminated bool // The player asked to quit
}

// FrameEvent flags the transitions that happened during one tick.
type FrameEvent uint8

const (
	FrameStarted    FrameEvent = 1 << iota // Left the start menu
	FrameLifeLost                          // Ball passed the bottom edge
	FrameLevelClear                        // Last block removed, next level loaded
	FrameGameOver                          // Entered the game-over phase
	FrameRestarted                         // New game started from the score table
)

// Has reports whether all flags in f are set.
func (e FrameEvent) Has(f FrameEvent) bool {
	return e&f == f
}

// StepResult is returned by Step() after each simulation tick.
type StepResult struct {
	State  GameState
	Events FrameEvent
	Err    error // Non-fatal failure during the tick (e.g. score store write)
}
