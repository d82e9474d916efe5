// Package t2048 implements the 2048 sliding-tile puzzle: a grid of numbered
// tiles and an animated move resolver that slides, merges and spawns them.
package t2048

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

// Variant identifiers.
const (
	VariantClassic = "2048"
	VariantStrict  = "2048_strict"
)

// Game adapts the resolver to the platform's fixed-tick loop: a move started
// on one tick advances one frame per tick until it settles.
type Game struct {
	id    string
	title string
	cfg   Config

	rng      *rand.Rand
	grid     *Grid
	resolver *Resolver
	move     *Move
	tick     uint64
	moves    int
	last     Result
	observer RenderFunc

	screenW int
	screenH int

	gameOver bool
	paused   bool
	tooSmall bool
}

// New creates the classic variant: a tile spawns after every directional input.
func New() *Game {
	return &Game{
		id:    VariantClassic,
		title: "2048",
		cfg:   DefaultConfig(),
	}
}

// NewStrict creates the variant that only spawns after a move changed the board.
func NewStrict() *Game {
	cfg := DefaultConfig()
	cfg.SpawnOnNoop = false
	return &Game{
		id:    VariantStrict,
		title: "2048 (Strict)",
		cfg:   cfg,
	}
}

func init() {
	registry.Register(VariantClassic, func() registry.Game {
		return New()
	})
	registry.Register(VariantStrict, func() registry.Game {
		return NewStrict()
	})
}

// ID returns the variant identifier.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.title
}

// Rules describes when the variant spawns a tile.
func (g *Game) Rules() string {
	if g.cfg.SpawnOnNoop {
		return "a tile spawns after every move, even one that changes nothing"
	}
	return "a tile spawns only after a move that changed the board"
}

// Configure replaces the engine configuration. The variant's spawn rule is
// kept; it takes effect on the next Reset.
func (g *Game) Configure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configure %s: %w", g.id, err)
	}
	if g.id == VariantStrict {
		cfg.SpawnOnNoop = false
	}
	g.cfg = cfg
	return nil
}

// Config returns the active engine configuration.
func (g *Game) Config() Config {
	return g.cfg
}

// SetObserver registers a callback that receives every rendered frame.
func (g *Game) SetObserver(fn RenderFunc) {
	g.observer = fn
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.moves = 0
	g.last = Result{}
	g.move = nil
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.gameOver = false
	g.paused = false

	g.grid = NewGrid(g.cfg.Rows, g.cfg.Cols, g.cfg.CellSize)
	g.grid.SpawnInitial(g.rng, g.cfg.InitialTiles, g.cfg.InitialValue)
	g.resolver = NewResolver(g.cfg, g.grid, g.rng)

	g.checkScreenSize()
	g.emit(g.idleFrame())
}

// Resize updates the screen dimensions without restarting the game.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	g.checkScreenSize()
}

// checkScreenSize checks if the screen is large enough for the board.
func (g *Game) checkScreenSize() {
	minW := g.cfg.Cols*cellWidth + 1
	minH := g.cfg.Rows*cellHeight + 1 + hudHeight
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	// A move in flight always runs to completion, even when paused.
	if g.move != nil {
		g.advanceMove()
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused || g.gameOver {
		return core.StepResult{State: g.State()}
	}

	dir, ok := directionFromInput(in)
	if !ok {
		return core.StepResult{State: g.State()}
	}

	move, err := g.resolver.Begin(dir)
	if err != nil {
		return core.StepResult{State: g.State()}
	}
	g.move = move
	g.advanceMove()

	return core.StepResult{State: g.State()}
}

// advanceMove runs one frame of the current move and finishes it once settled.
func (g *Game) advanceMove() {
	productive := g.move.Frame()
	g.emit(g.move.Snapshot())
	if productive {
		return
	}

	outcome := g.move.Finish()
	g.last = g.move.Result()
	g.move = nil
	g.moves++
	if outcome == OutcomeLost {
		g.gameOver = true
	}
	g.emit(g.idleFrame())
}

// directionFromInput picks the first direction action present in the frame.
func directionFromInput(in core.InputFrame) (Direction, bool) {
	switch {
	case in.Has(core.ActionUp):
		return DirUp, true
	case in.Has(core.ActionDown):
		return DirDown, true
	case in.Has(core.ActionLeft):
		return DirLeft, true
	case in.Has(core.ActionRight):
		return DirRight, true
	}
	return 0, false
}

// idleFrame renders the settled grid.
func (g *Game) idleFrame() Frame {
	tiles := g.grid.Tiles()
	views := make([]TileView, len(tiles))
	for i, t := range tiles {
		views[i] = t.view()
	}
	return Frame{
		Rows:     g.grid.Rows(),
		Cols:     g.grid.Cols(),
		CellSize: g.grid.CellSize(),
		Tiles:    views,
	}
}

func (g *Game) emit(f Frame) {
	if g.observer != nil {
		g.observer(f)
	}
}

// currentTiles returns what should be drawn right now.
func (g *Game) currentTiles() []TileView {
	if g.move != nil {
		return g.move.Snapshot().Tiles
	}
	return g.idleFrame().Tiles
}

// LastResult returns the summary of the most recently finished move.
func (g *Game) LastResult() Result {
	return g.last
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	maxTile := 0
	if g.grid != nil {
		maxTile = g.grid.MaxTile()
	}
	return core.GameState{
		MaxTile:  maxTile,
		Moves:    g.moves,
		GameOver: g.gameOver,
		Paused:   g.paused || g.tooSmall,
		Busy:     g.move != nil,
	}
}
