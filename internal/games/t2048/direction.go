package t2048

import (
	"fmt"
	"strings"
)

// Direction represents a move direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Directions lists every direction in declaration order.
var Directions = []Direction{DirUp, DirDown, DirLeft, DirRight}

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// ParseDirection maps "left", "right", "up" or "down" to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return DirUp, nil
	case "down":
		return DirDown, nil
	case "left":
		return DirLeft, nil
	case "right":
		return DirRight, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
	}
}

// axis selects which coordinate a move changes.
type axis int

const (
	axisCol axis = iota // horizontal moves change X/Col
	axisRow             // vertical moves change Y/Row
)

// moveParams is everything that differs between the four directions.
type moveParams struct {
	axis axis
	sign int  // -1 toward the origin, +1 toward the far edge
	ceil bool // snap rounding: ceil toward the origin, floor toward the far edge
}

// paramsFor derives the movement parameters of a direction.
func paramsFor(dir Direction) (moveParams, error) {
	switch dir {
	case DirLeft:
		return moveParams{axis: axisCol, sign: -1, ceil: true}, nil
	case DirRight:
		return moveParams{axis: axisCol, sign: 1, ceil: false}, nil
	case DirUp:
		return moveParams{axis: axisRow, sign: -1, ceil: true}, nil
	case DirDown:
		return moveParams{axis: axisRow, sign: 1, ceil: false}, nil
	default:
		return moveParams{}, fmt.Errorf("%w: %v", ErrInvalidDirection, dir)
	}
}

// coord returns the continuous coordinate along the primary axis.
func (p moveParams) coord(t *Tile) int {
	if p.axis == axisCol {
		return t.X
	}
	return t.Y
}

// cell returns the discrete coordinate along the primary axis.
func (p moveParams) cell(t *Tile) int {
	if p.axis == axisCol {
		return t.Col
	}
	return t.Row
}

// boundary returns the edge cell index in the direction of travel.
func (p moveParams) boundary(rows, cols int) int {
	if p.sign < 0 {
		return 0
	}
	if p.axis == axisCol {
		return cols - 1
	}
	return rows - 1
}

// ahead returns the cell one step further in the direction of travel.
func (p moveParams) ahead(t *Tile) Pos {
	if p.axis == axisCol {
		return Pos{Row: t.Row, Col: t.Col + p.sign}
	}
	return Pos{Row: t.Row + p.sign, Col: t.Col}
}

// room is how far the tile may still travel before it rests on the edge cell's origin.
func (p moveParams) room(t *Tile, edge, cellSize int) int {
	return p.sign * (edge*cellSize - p.coord(t))
}

// advance moves the tile step board units in the direction of travel.
func (p moveParams) advance(t *Tile, step int) {
	if p.axis == axisCol {
		t.X += p.sign * step
	} else {
		t.Y += p.sign * step
	}
}

// gap is the distance the tile still has to travel to reach the neighbor's position.
func (p moveParams) gap(t, next *Tile) int {
	return p.sign * (p.coord(next) - p.coord(t))
}

// reaches reports whether moving t by step would put it in next's cell or beyond.
func (p moveParams) reaches(t, next *Tile, step, cellSize int) bool {
	return p.sign*(p.cellAt(p.coord(t)+p.sign*step, cellSize)-p.cell(next)) >= 0
}

// before orders tiles by collision: the tile closest to the edge goes first.
func (p moveParams) before(a, b *Tile) bool {
	if p.sign < 0 {
		return p.cell(a) < p.cell(b)
	}
	return p.cell(a) > p.cell(b)
}

// requantize re-derives Row/Col from the continuous position.
func (p moveParams) requantize(t *Tile, cellSize int) {
	t.Row = p.cellAt(t.Y, cellSize)
	t.Col = p.cellAt(t.X, cellSize)
}

// cellAt maps a continuous coordinate to a cell index: ceil toward the
// origin, floor toward the far edge.
func (p moveParams) cellAt(coord, cellSize int) int {
	if p.ceil {
		return ceilDiv(coord, cellSize)
	}
	return floorDiv(coord, cellSize)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

func ceilDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a > 0 {
		q++
	}
	return q
}
