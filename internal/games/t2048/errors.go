package t2048

import "errors"

var (
	ErrInvalidDirection = errors.New("invalid direction")
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrInvalidValue     = errors.New("tile value must be a power of two >= 2")
	ErrOutOfBounds      = errors.New("position out of bounds")
	ErrCellOccupied     = errors.New("cell already occupied")
)
