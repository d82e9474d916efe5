// Package registry keeps the 2048 variants the platform can start.
// Variants register themselves in init() functions, so the CLI, the menu and
// the SSH server discover them by ID without importing each one.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-2048/internal/core"
)

// ErrUnknownVariant is returned by Create for an ID nobody registered.
var ErrUnknownVariant = errors.New("unknown variant")

// Game is the interface every playable variant implements.
// Games contain pure logic with no external dependencies (especially no Bubble Tea).
// The platform handles input mapping, timing, and rendering.
type Game interface {
	// ID returns a unique identifier for this variant (e.g., "2048", "2048_strict").
	// Used for CLI commands and result storage.
	ID() string

	// Title returns a human-readable name for display (e.g., "2048 (Strict)").
	Title() string

	// Reset starts a fresh board. Called once at start and again on restart.
	// The RuntimeConfig provides screen dimensions and the spawn seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances the board by one fixed tick: it starts a move from the
	// input or runs one more frame of the move in flight.
	Step(in core.InputFrame) core.StepResult

	// Render draws the board into the provided screen buffer.
	// The screen is pre-cleared before this call.
	Render(dst *core.Screen)

	// State returns the current game state (max tile, moves, busy, game over).
	State() core.GameState
}

// Ruled is implemented by variants that can describe their spawn rule in one line.
type Ruled interface {
	Rules() string
}

// GameInfo contains metadata about a registered variant.
type GameInfo struct {
	ID    string
	Title string
	Rules string
}

// Factory is a function that creates a new instance of a variant.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]GameInfo)
	mu        sync.RWMutex
)

// Register adds a variant factory to the registry.
// Panics if a variant with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: variant %q already registered", id))
	}

	// Metadata comes from a throwaway instance.
	g := f()
	info := GameInfo{ID: id, Title: g.Title()}
	if r, ok := g.(Ruled); ok {
		info.Rules = r.Rules()
	}

	factories[id] = f
	infos[id] = info
}

// List returns all registered variants, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Info returns the metadata of one variant.
func Info(id string) (GameInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()

	info, ok := infos[id]
	return info, ok
}

// Create instantiates a new variant by its ID.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: %w %q", ErrUnknownVariant, id)
	}

	return f(), nil
}

// Exists checks if a variant with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
