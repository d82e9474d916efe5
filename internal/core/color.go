package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors. The tile colors follow the classic 2048 palette, one per
// doubling starting at 2.
const (
	ColorDefault Color = iota
	ColorGray
	ColorTile2
	ColorTile4
	ColorTile8
	ColorTile16
	ColorTile32
	ColorTile64
	ColorTile128
	ColorTile256
	ColorTile512
)

// TilePalette lists the tile colors in value order (2, 4, 8, ...).
var TilePalette = []Color{
	ColorTile2,
	ColorTile4,
	ColorTile8,
	ColorTile16,
	ColorTile32,
	ColorTile64,
	ColorTile128,
	ColorTile256,
	ColorTile512,
}

// TileColor returns the palette entry for a color index, clamping values past
// the end of the palette to its last entry.
func TileColor(index int) Color {
	if index < 0 {
		return ColorDefault
	}
	if index >= len(TilePalette) {
		return TilePalette[len(TilePalette)-1]
	}
	return TilePalette[index]
}
