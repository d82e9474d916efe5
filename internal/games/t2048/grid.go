package t2048

import (
	"fmt"
	"math/rand"
)

// Grid is the authoritative mapping from cell to tile.
// After setup it is only mutated through Rebuild.
type Grid struct {
	rows     int
	cols     int
	cellSize int
	tiles    map[Pos]*Tile
}

// NewGrid creates an empty grid.
func NewGrid(rows, cols, cellSize int) *Grid {
	return &Grid{
		rows:     rows,
		cols:     cols,
		cellSize: cellSize,
		tiles:    make(map[Pos]*Tile, rows*cols),
	}
}

// NewGridFromValues builds a grid from a row-major value matrix (0 = empty).
func NewGridFromValues(values [][]int, cellSize int) (*Grid, error) {
	if len(values) == 0 || len(values[0]) == 0 {
		return nil, fmt.Errorf("%w: empty value matrix", ErrInvalidConfig)
	}

	g := NewGrid(len(values), len(values[0]), cellSize)
	for row, line := range values {
		if len(line) != g.cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrInvalidConfig, row, len(line), g.cols)
		}
		for col, v := range line {
			if v == 0 {
				continue
			}
			if err := g.Place(newTile(v, row, col, cellSize)); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// CellSize returns the side of one cell in board units.
func (g *Grid) CellSize() int { return g.cellSize }

// Capacity returns the number of cells.
func (g *Grid) Capacity() int { return g.rows * g.cols }

// Len returns the number of live tiles.
func (g *Grid) Len() int { return len(g.tiles) }

// IsFull reports whether every cell holds a tile.
func (g *Grid) IsFull() bool {
	return len(g.tiles) == g.Capacity()
}

// InBounds reports whether p lies on the board.
func (g *Grid) InBounds(p Pos) bool {
	return p.Row >= 0 && p.Row < g.rows && p.Col >= 0 && p.Col < g.cols
}

// TileAt returns the tile occupying (row, col), if any.
func (g *Grid) TileAt(row, col int) (*Tile, bool) {
	t, ok := g.tiles[Pos{Row: row, Col: col}]
	return t, ok
}

// Place adds a tile during setup.
func (g *Grid) Place(t *Tile) error {
	if !validValue(t.Value) {
		return fmt.Errorf("%w: %d", ErrInvalidValue, t.Value)
	}
	p := t.Pos()
	if !g.InBounds(p) {
		return fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, p.Row, p.Col)
	}
	if _, taken := g.tiles[p]; taken {
		return fmt.Errorf("%w: (%d,%d)", ErrCellOccupied, p.Row, p.Col)
	}
	g.tiles[p] = t
	return nil
}

// EmptyPositions returns the unoccupied cells in row-major order.
func (g *Grid) EmptyPositions() []Pos {
	empty := make([]Pos, 0, g.Capacity()-len(g.tiles))
	for row := range g.rows {
		for col := range g.cols {
			p := Pos{Row: row, Col: col}
			if _, ok := g.tiles[p]; !ok {
				empty = append(empty, p)
			}
		}
	}
	return empty
}

// RandomEmptyPosition samples uniformly among empty cells.
// The caller must ensure the grid is not full.
func (g *Grid) RandomEmptyPosition(rng *rand.Rand) Pos {
	empty := g.EmptyPositions()
	if len(empty) == 0 {
		panic("t2048: RandomEmptyPosition called on a full grid")
	}
	return empty[rng.Intn(len(empty))]
}

// Rebuild replaces the whole mapping, keying each tile by its own Row/Col.
// On error the grid is left untouched.
func (g *Grid) Rebuild(tiles []*Tile) error {
	next := make(map[Pos]*Tile, len(tiles))
	for _, t := range tiles {
		p := t.Pos()
		if !g.InBounds(p) {
			return fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, p.Row, p.Col)
		}
		if _, taken := next[p]; taken {
			return fmt.Errorf("%w: (%d,%d)", ErrCellOccupied, p.Row, p.Col)
		}
		next[p] = t
	}
	g.tiles = next
	return nil
}

// SpawnInitial places count tiles of the given value at distinct random cells.
func (g *Grid) SpawnInitial(rng *rand.Rand, count, value int) {
	for range count {
		if g.IsFull() {
			return
		}
		p := g.RandomEmptyPosition(rng)
		g.tiles[p] = newTile(value, p.Row, p.Col, g.cellSize)
	}
}

// spawn places a tile at a random empty cell and returns it.
func (g *Grid) spawn(rng *rand.Rand, value int) *Tile {
	p := g.RandomEmptyPosition(rng)
	t := newTile(value, p.Row, p.Col, g.cellSize)
	g.tiles[p] = t
	return t
}

// Tiles returns the live tiles in row-major order.
func (g *Grid) Tiles() []*Tile {
	out := make([]*Tile, 0, len(g.tiles))
	for row := range g.rows {
		for col := range g.cols {
			if t, ok := g.tiles[Pos{Row: row, Col: col}]; ok {
				out = append(out, t)
			}
		}
	}
	return out
}

// Values returns the board as a row-major matrix, 0 for empty cells.
func (g *Grid) Values() [][]int {
	values := make([][]int, g.rows)
	for row := range values {
		values[row] = make([]int, g.cols)
	}
	for p, t := range g.tiles {
		values[p.Row][p.Col] = t.Value
	}
	return values
}

// MaxTile returns the largest tile value, or 0 on an empty grid.
func (g *Grid) MaxTile() int {
	maxVal := 0
	for _, t := range g.tiles {
		if t.Value > maxVal {
			maxVal = t.Value
		}
	}
	return maxVal
}
