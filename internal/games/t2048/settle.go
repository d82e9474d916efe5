package t2048

import (
	"fmt"
	"sort"
)

// MovePhase tracks a move through its lifecycle.
type MovePhase int

const (
	PhaseSliding MovePhase = iota
	PhaseSettled
	PhaseDone
)

// Move is a directional move in flight. Frame advances it one animation step;
// Finish rebuilds the grid and decides between spawning and losing.
type Move struct {
	r        *Resolver
	dir      Direction
	params   moveParams
	tiles    []*Tile
	consumed map[*Tile]bool // merge-consumed tiles for the rest of this move
	phase    MovePhase
	frames   int
	merges   int
	changed  bool
	result   Result
}

// Direction returns the move's direction.
func (m *Move) Direction() Direction {
	return m.dir
}

// Phase returns where the move is in its lifecycle.
func (m *Move) Phase() MovePhase {
	return m.phase
}

// Frame advances every tile one step. It returns false once a frame passes in
// which nothing moved or merged; the move is then settled.
func (m *Move) Frame() bool {
	if m.phase != PhaseSliding {
		return false
	}

	grid := m.r.grid
	cellSize := grid.CellSize()
	velocity := m.r.cfg.Velocity
	edge := m.params.boundary(grid.Rows(), grid.Cols())

	index := make(map[Pos]*Tile, len(m.tiles))
	for _, t := range m.tiles {
		if _, taken := index[t.Pos()]; !taken {
			index[t.Pos()] = t
		}
	}

	order := make([]*Tile, len(m.tiles))
	copy(order, m.tiles)
	sort.SliceStable(order, func(i, j int) bool {
		return m.params.before(order[i], order[j])
	})

	removed := make(map[*Tile]bool)
	productive := false

	for _, t := range order {
		if m.params.cell(t) == edge {
			continue
		}

		next := index[m.params.ahead(t)]
		if next != nil && removed[next] {
			next = nil
		}

		step := min(velocity, m.params.room(t, edge, cellSize))
		switch {
		case next == nil:
		case next.Value == t.Value && !m.consumed[t] && !m.consumed[next]:
			if m.params.reaches(t, next, step, cellSize) {
				next.Value *= 2
				removed[t] = true
				m.consumed[next] = true
				m.merges++
				productive = true
				continue
			}
		default:
			// Stop flush against the neighbor.
			step = min(step, m.params.gap(t, next)-cellSize)
			if step <= 0 {
				continue
			}
		}

		m.params.advance(t, step)
		m.params.requantize(t, cellSize)
		productive = true
	}

	live := make([]*Tile, 0, len(order)-len(removed))
	for _, t := range order {
		if !removed[t] {
			live = append(live, t)
		}
	}
	m.tiles = live
	m.frames++

	if productive {
		m.changed = true
	} else {
		m.phase = PhaseSettled
	}
	return productive
}

// Snapshot returns the in-progress tile set.
func (m *Move) Snapshot() Frame {
	grid := m.r.grid
	views := make([]TileView, len(m.tiles))
	for i, t := range m.tiles {
		views[i] = t.view()
	}
	return Frame{
		Number:    m.frames,
		Direction: m.dir.String(),
		Rows:      grid.Rows(),
		Cols:      grid.Cols(),
		CellSize:  grid.CellSize(),
		Tiles:     views,
	}
}

// Finish settles any remaining frames without rendering, rebuilds the grid and
// either spawns a tile or reports the loss. Calling it again returns the same outcome.
func (m *Move) Finish() Outcome {
	if m.phase == PhaseDone {
		return m.result.Outcome
	}
	for m.Frame() {
	}

	r := m.r
	for _, t := range m.tiles {
		t.snap(r.grid.CellSize())
	}
	if err := r.grid.Rebuild(m.tiles); err != nil {
		panic(fmt.Sprintf("t2048: settled %s move left an invalid grid: %v", m.dir, err))
	}

	m.result = Result{
		Direction: m.dir,
		Frames:    m.frames,
		Merges:    m.merges,
		Changed:   m.changed,
	}

	switch {
	case r.grid.IsFull():
		m.result.Outcome = OutcomeLost
	case !m.changed && !r.cfg.SpawnOnNoop:
		m.result.Outcome = OutcomeContinue
	default:
		spawned := r.grid.spawn(r.rng, r.spawnValue())
		view := spawned.view()
		m.result.Spawned = &view
		m.result.Outcome = OutcomeContinue
	}

	m.phase = PhaseDone
	return m.result.Outcome
}

// Result returns the summary of a finished move.
func (m *Move) Result() Result {
	return m.result
}
