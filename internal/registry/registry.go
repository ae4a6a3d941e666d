// Package registry provides a global registry for stage factories.
// Stages register themselves in init() functions, allowing the platform
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-shmup/internal/core"
)

// ErrUnknownStage is returned by Create for unregistered ids.
var ErrUnknownStage = errors.New("unknown stage")

// Game is the interface that every playable stage implements.
// Stages contain pure simulation logic with no Bubble Tea dependency.
// The platform handles input mapping, timing, and rendering.
type Game interface {
	// ID returns the stage identifier (e.g., "orb-field").
	// Used for CLI commands and run storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset initializes or restarts the stage.
	// Called once at start and again when restarting after the stage ends.
	Reset(cfg core.RuntimeConfig) error

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into the provided screen buffer.
	// The screen is pre-cleared before this call.
	Render(dst *core.Screen)

	// State returns the current stage state (score, game over, paused).
	State() core.GameState
}

// Options are passed to a stage factory.
type Options struct {
	ConfigPath string // Custom stage file, empty for the search path
	Difficulty string // Preset name, empty for normal
	Logger     *log.Logger
}

// StageInfo contains metadata about a registered stage.
type StageInfo struct {
	ID    string
	Title string
}

// Factory creates a new instance of a stage.
type Factory func(opts Options) (Game, error)

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a stage factory to the registry.
// Typically called from an init() function.
// Panics if a stage with the same ID is already registered.
func Register(id, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: stage %q already registered", id))
	}

	factories[id] = f
	titles[id] = title
}

// List returns information about all registered stages, sorted by ID.
func List() []StageInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]StageInfo, 0, len(factories))
	for id := range factories {
		result = append(result, StageInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new stage by its ID.
func Create(id string, opts Options) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: %w %q", ErrUnknownStage, id)
	}

	g, err := f(opts)
	if err != nil {
		return nil, fmt.Errorf("registry: cannot create %q: %w", id, err)
	}
	return g, nil
}

// Exists checks if a stage with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
