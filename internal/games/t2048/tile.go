package t2048

// Pos identifies a board cell.
type Pos struct {
	Row int
	Col int
}

// Tile is a single numbered piece.
// X and Y hold the continuous position in board units while the tile slides;
// Row and Col are re-derived from them every frame.
type Tile struct {
	Value int
	Row   int
	Col   int
	X     int
	Y     int
}

// newTile creates a tile resting at the origin of its cell.
func newTile(value, row, col, cellSize int) *Tile {
	return &Tile{
		Value: value,
		Row:   row,
		Col:   col,
		X:     col * cellSize,
		Y:     row * cellSize,
	}
}

// Pos returns the tile's current cell.
func (t *Tile) Pos() Pos {
	return Pos{Row: t.Row, Col: t.Col}
}

// snap moves the continuous position back onto the cell origin.
func (t *Tile) snap(cellSize int) {
	t.X = t.Col * cellSize
	t.Y = t.Row * cellSize
}

// view returns an immutable copy for render callbacks.
func (t *Tile) view() TileView {
	return TileView{Value: t.Value, Row: t.Row, Col: t.Col, X: t.X, Y: t.Y}
}

// TileView is a read-only copy of a tile handed to renderers.
type TileView struct {
	Value int `json:"value"`
	Row   int `json:"row"`
	Col   int `json:"col"`
	X     int `json:"x"`
	Y     int `json:"y"`
}

// validValue reports whether v is a power of two no smaller than 2.
func validValue(v int) bool {
	return v >= 2 && v&(v-1) == 0
}

// ColorIndex returns the palette slot for a tile value: log2(value)-1.
func ColorIndex(value int) int {
	idx := -1
	for value > 1 {
		value >>= 1
		idx++
	}
	if idx < 0 {
		return 0
	}
	return idx
}
