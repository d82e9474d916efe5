package t2048

import (
	"fmt"
	"math/rand"
	"time"
)

// BoardSize is the default board dimension.
const BoardSize = 4

// Config holds the engine parameters. It is injected at construction so the
// resolver works for any board size.
type Config struct {
	Rows         int
	Cols         int
	CellSize     int   // Side of one cell in board units
	Velocity     int   // Board units a sliding tile travels per frame
	FrameRate    int   // Frames per second while a move animates
	SpawnValues  []int // Values a spawned tile picks from, uniformly
	InitialTiles int
	InitialValue int
	SpawnOnNoop  bool // Spawn even when a move changed nothing
}

// DefaultConfig returns the classic 4x4 setup.
func DefaultConfig() Config {
	return Config{
		Rows:         BoardSize,
		Cols:         BoardSize,
		CellSize:     200,
		Velocity:     20,
		FrameRate:    60,
		SpawnValues:  []int{2, 4},
		InitialTiles: 2,
		InitialValue: 2,
		SpawnOnNoop:  true,
	}
}

// Validate checks the configuration for values the resolver cannot work with.
func (c Config) Validate() error {
	switch {
	case c.Rows < 1 || c.Cols < 1:
		return fmt.Errorf("%w: board must be at least 1x1, got %dx%d", ErrInvalidConfig, c.Rows, c.Cols)
	case c.CellSize < 1:
		return fmt.Errorf("%w: cell size must be positive", ErrInvalidConfig)
	case c.Velocity < 1 || c.Velocity > c.CellSize:
		return fmt.Errorf("%w: velocity must be in [1, %d], got %d", ErrInvalidConfig, c.CellSize, c.Velocity)
	case c.FrameRate < 1:
		return fmt.Errorf("%w: frame rate must be positive", ErrInvalidConfig)
	case len(c.SpawnValues) == 0:
		return fmt.Errorf("%w: no spawn values", ErrInvalidConfig)
	case c.InitialTiles < 0 || c.InitialTiles > c.Rows*c.Cols:
		return fmt.Errorf("%w: %d initial tiles on %d cells", ErrInvalidConfig, c.InitialTiles, c.Rows*c.Cols)
	case !validValue(c.InitialValue):
		return fmt.Errorf("%w: initial value %d", ErrInvalidValue, c.InitialValue)
	}
	for _, v := range c.SpawnValues {
		if !validValue(v) {
			return fmt.Errorf("%w: spawn value %d", ErrInvalidValue, v)
		}
	}
	return nil
}

// Outcome is reported after every resolved move.
type Outcome int

const (
	OutcomeContinue Outcome = iota
	OutcomeLost
)

// String returns "continue" or "lost".
func (o Outcome) String() string {
	if o == OutcomeLost {
		return "lost"
	}
	return "continue"
}

// Frame is one rendered step of a move.
type Frame struct {
	Number    int        `json:"number"`
	Direction string     `json:"direction,omitempty"`
	Rows      int        `json:"rows"`
	Cols      int        `json:"cols"`
	CellSize  int        `json:"cell_size"`
	Tiles     []TileView `json:"tiles"`
}

// RenderFunc receives every frame of a move. It must not retain the slice
// beyond the call if it mutates it.
type RenderFunc func(Frame)

// Pacer blocks between frames.
type Pacer interface {
	Wait()
}

// TickerPacer paces frames with a time.Ticker.
type TickerPacer struct {
	ticker *time.Ticker
}

// NewTickerPacer creates a pacer firing frameRate times per second.
func NewTickerPacer(frameRate int) *TickerPacer {
	return &TickerPacer{ticker: time.NewTicker(time.Second / time.Duration(frameRate))}
}

// Wait blocks until the next tick.
func (p *TickerPacer) Wait() {
	<-p.ticker.C
}

// Stop releases the ticker.
func (p *TickerPacer) Stop() {
	p.ticker.Stop()
}

// Result summarizes one resolved move.
type Result struct {
	Direction Direction
	Outcome   Outcome
	Frames    int
	Merges    int
	Changed   bool
	Spawned   *TileView
}

// Resolver runs directional moves against a grid. It holds no state between
// moves besides the grid itself.
type Resolver struct {
	cfg   Config
	grid  *Grid
	rng   *rand.Rand
	pacer Pacer
}

// NewResolver creates a resolver for grid. The grid's dimensions win over cfg.Rows/Cols.
func NewResolver(cfg Config, grid *Grid, rng *rand.Rand) *Resolver {
	return &Resolver{cfg: cfg, grid: grid, rng: rng}
}

// SetPacer installs frame pacing for Resolve. A nil pacer resolves as fast as possible.
func (r *Resolver) SetPacer(p Pacer) {
	r.pacer = p
}

// Grid returns the grid the resolver mutates.
func (r *Resolver) Grid() *Grid {
	return r.grid
}

// Resolve runs a complete move, blocking until it settles. render is called
// once per frame with the in-progress tiles and may be nil.
func (r *Resolver) Resolve(dir Direction, render RenderFunc) (Result, error) {
	m, err := r.Begin(dir)
	if err != nil {
		return Result{}, err
	}

	for {
		if r.pacer != nil {
			r.pacer.Wait()
		}
		productive := m.Frame()
		if render != nil {
			render(m.Snapshot())
		}
		if !productive {
			break
		}
	}

	m.Finish()
	return m.Result(), nil
}

// Begin starts a move that the caller advances with Frame.
func (r *Resolver) Begin(dir Direction) (*Move, error) {
	params, err := paramsFor(dir)
	if err != nil {
		return nil, err
	}
	return &Move{
		r:        r,
		dir:      dir,
		params:   params,
		tiles:    r.grid.Tiles(),
		consumed: make(map[*Tile]bool),
	}, nil
}

// spawnValue picks one of the configured spawn values uniformly.
func (r *Resolver) spawnValue() int {
	return r.cfg.SpawnValues[r.rng.Intn(len(r.cfg.SpawnValues))]
}
