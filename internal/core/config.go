package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frame callbacks per second requested from the platform
	Seed     int64 // RNG seed for deterministic gameplay
}

// Phase is the lifecycle stage of a run.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseEnded
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseRunning:
		return "Running"
	case PhaseEnded:
		return "Ended"
	default:
		return "Unknown"
	}
}

// GameState is what the platform needs to know about a game after a frame.
type GameState struct {
	Score    int     // Current score, floored
	Best     int     // Best score known to the game
	Distance float64 // Distance travelled this run
	Phase    Phase
}

// GameOver reports whether the run has ended.
func (s GameState) GameOver() bool {
	return s.Phase == PhaseEnded
}

// StepResult is returned after each simulation frame.
type StepResult struct {
	State GameState
	Ended bool // True only on the frame the run ended
}
