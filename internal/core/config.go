package core

// RuntimeConfig contains configuration passed to scenes at initialization.
// Scenes use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int    // Screen width in characters
	ScreenH  int    // Screen height in characters
	TickRate int    // Simulation ticks per second (default 30)
	Seed     int64  // RNG seed for deterministic autopilots
	LevelID  string // Level to load; empty means the scene's default
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

// TickSeconds returns the simulated duration of one tick.
func (c RuntimeConfig) TickSeconds() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 30
	}
	return 1.0 / float64(c.TickRate)
}

// SceneState represents the current state of a scene.
// Returned by Scene.State() to communicate status to the platform.
type SceneState struct {
	LevelID    string  // Level being explored
	Ticks      int     // Simulation ticks run so far
	Recomputes int     // Ticks on which visibility was recomputed
	Explored   float64 // Fraction of the map ever seen, 0..1
	Finished   bool    // Whether the run has ended (autopilot budget spent)
	Paused     bool    // Whether the scene is paused
}

// StepResult is returned by Scene.Step() after each simulation tick.
type StepResult struct {
	State SceneState
}
