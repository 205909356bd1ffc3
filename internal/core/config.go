package core

// RuntimeConfig is what the platform hands a game on Reset.
type RuntimeConfig struct {
	ScreenW  int   // terminal columns
	ScreenH  int   // terminal rows available to the game
	TickRate int   // fixed steps per second, 60 by default
	Seed     int64 // session seed; 0 lets the platform pick one from the clock
}

// DefaultConfig returns an 80x24 screen at 60 ticks per second.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// GameState is the status a game reports to the platform.
type GameState struct {
	Score  int  // game-defined; portalhop reports the current stage
	Paused bool // true while the game ignores movement input
}

// StepResult is returned by Game.Step after each tick.
type StepResult struct {
	State GameState
}
