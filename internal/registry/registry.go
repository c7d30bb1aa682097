// Package registry provides a global registry for scene factories.
// Scenes register themselves in init() functions, allowing the hosts
// to discover and instantiate scenes without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-fog/internal/config"
	"github.com/vovakirdan/tui-fog/internal/core"
	"github.com/vovakirdan/tui-fog/internal/fog"
	"github.com/vovakirdan/tui-fog/internal/sim"
)

// Scene is the interface every fog scene implements.
// Scenes contain pure logic with no Bubble Tea dependency. The hosts
// handle input mapping, timing and drawing the screen.
type Scene interface {
	// ID returns a unique identifier for this scene (e.g. "explore").
	// Used for CLI commands and run storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset loads the level named by cfg.LevelID (or the default) and
	// starts a fresh run.
	Reset(cfg core.RuntimeConfig) error

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into dst.
	Render(dst *core.Screen)

	// State returns the current scene state.
	State() core.SceneState
}

// Env carries what a scene needs besides the runtime config.
type Env struct {
	Engine    config.EngineConfig
	LevelsDir string             // Extra level files; built-ins are always available
	Targets   []fog.RenderTarget // Extra render targets, e.g. a stream hub
	Observer  sim.Observer       // Per-tick hook, e.g. a trace writer
}

// DefaultEnv returns an environment with the default engine config.
func DefaultEnv() Env {
	return Env{Engine: config.DefaultEngineConfig()}
}

// SceneInfo contains metadata about a registered scene.
type SceneInfo struct {
	ID    string
	Title string
}

// Factory creates a new instance of a scene.
type Factory func(env Env) Scene

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a scene factory to the registry.
// Panics if a scene with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: scene %q already registered", id))
	}

	factories[id] = f
	titles[id] = f(DefaultEnv()).Title()
}

// List returns information about all registered scenes, sorted by ID.
func List() []SceneInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]SceneInfo, 0, len(factories))
	for id := range factories {
		result = append(result, SceneInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new scene by its ID.
func Create(id string, env Env) (Scene, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown scene %q", id)
	}

	return f(env), nil
}

// Exists checks if a scene with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
