// Package sim plays 2048 headlessly with a simple bot. It drives the animated
// resolver exactly like an interactive game and is used for soak runs and
// for feeding spectator streams.
package sim

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

// Strategy picks the next direction for a board of values (0 = empty).
type Strategy interface {
	Name() string
	Next(values [][]int) t2048.Direction
}

// Greedy prefers the move that merges most, then the one leaving most empty cells.
type Greedy struct{}

// Name returns "greedy".
func (Greedy) Name() string { return "greedy" }

// Next picks the best changing direction; a stuck board gets DirLeft.
func (Greedy) Next(values [][]int) t2048.Direction {
	best, bestScore := t2048.DirLeft, -1
	for _, dir := range t2048.Directions {
		next, merges, changed := t2048.Compact(values, dir)
		if !changed {
			continue
		}
		if score := merges*100 + emptyCells(next); score > bestScore {
			best, bestScore = dir, score
		}
	}
	return best
}

// Cycle rotates through the directions, skipping those that change nothing.
type Cycle struct {
	next int
}

// Name returns "cycle".
func (*Cycle) Name() string { return "cycle" }

// Next returns the next changing direction in rotation.
func (c *Cycle) Next(values [][]int) t2048.Direction {
	for range t2048.Directions {
		dir := t2048.Directions[c.next%len(t2048.Directions)]
		c.next++
		if _, _, changed := t2048.Compact(values, dir); changed {
			return dir
		}
	}
	return t2048.DirLeft
}

// NewStrategy returns the strategy with the given name.
func NewStrategy(name string) (Strategy, error) {
	switch strings.ToLower(name) {
	case "greedy", "":
		return Greedy{}, nil
	case "cycle":
		return &Cycle{}, nil
	default:
		return nil, fmt.Errorf("unknown strategy %q (want greedy or cycle)", name)
	}
}

func emptyCells(values [][]int) int {
	n := 0
	for _, row := range values {
		for _, v := range row {
			if v == 0 {
				n++
			}
		}
	}
	return n
}

// Options configures one simulated game.
type Options struct {
	Engine   t2048.Config
	Seed     int64
	MaxMoves int // 0 means play until lost
	Strategy Strategy

	// Pacer slows frames down, e.g. for spectators. Nil runs at full speed.
	Pacer t2048.Pacer

	// Render receives every frame; OnMove every finished move. Both may be nil.
	Render t2048.RenderFunc
	OnMove func(r t2048.Result, maxTile int)
}

// Summary describes a finished simulation.
type Summary struct {
	Seed    int64
	Moves   int
	Frames  int
	Merges  int
	MaxTile int
	Lost    bool
	Board   [][]int
}

// Run plays one game and returns its summary. It stops when the board is
// lost, after MaxMoves moves, or when ctx is done.
func Run(ctx context.Context, opts Options, logger *log.Logger) (Summary, error) {
	if err := opts.Engine.Validate(); err != nil {
		return Summary{}, fmt.Errorf("sim: %w", err)
	}
	if opts.Strategy == nil {
		opts.Strategy = Greedy{}
	}
	if logger == nil {
		logger = log.Default()
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	grid := t2048.NewGrid(opts.Engine.Rows, opts.Engine.Cols, opts.Engine.CellSize)
	grid.SpawnInitial(rng, opts.Engine.InitialTiles, opts.Engine.InitialValue)

	resolver := t2048.NewResolver(opts.Engine, grid, rng)
	resolver.SetPacer(opts.Pacer)

	sum := Summary{Seed: opts.Seed}
	for opts.MaxMoves == 0 || sum.Moves < opts.MaxMoves {
		if err := ctx.Err(); err != nil {
			sum.MaxTile = grid.MaxTile()
			sum.Board = grid.Values()
			return sum, err
		}

		dir := opts.Strategy.Next(grid.Values())
		res, err := resolver.Resolve(dir, opts.Render)
		if err != nil {
			return sum, fmt.Errorf("sim move %d: %w", sum.Moves+1, err)
		}

		sum.Moves++
		sum.Frames += res.Frames
		sum.Merges += res.Merges
		logger.Debug("move",
			"n", sum.Moves,
			"direction", dir,
			"frames", res.Frames,
			"merges", res.Merges,
			"max_tile", grid.MaxTile(),
		)
		if opts.OnMove != nil {
			opts.OnMove(res, grid.MaxTile())
		}

		if res.Outcome == t2048.OutcomeLost {
			sum.Lost = true
			break
		}
	}

	sum.MaxTile = grid.MaxTile()
	sum.Board = grid.Values()
	return sum, nil
}
