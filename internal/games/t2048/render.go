package t2048

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/tui-2048/internal/core"
)

const (
	cellWidth  = 7 // Terminal columns per cell, including the left border
	cellHeight = 3 // Terminal rows per cell, including the top border
	hudHeight  = 3
)

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	boardW := g.cfg.Cols*cellWidth + 1
	boardH := g.cfg.Rows*cellHeight + 1

	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight

	g.renderHUD(dst, boardX, boardW)
	g.renderGridLines(dst, boardX, boardY)
	g.renderTiles(dst, boardX, boardY)
	g.renderOverlays(dst, boardX, boardY, boardW, boardH)

	if y := boardY + boardH + 1; y < dst.Height() {
		dst.DrawTextCentered(y, g.Controls())
	}
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHUD draws the title, moves and max tile.
func (g *Game) renderHUD(dst *core.Screen, boardX, boardW int) {
	title := g.title
	dst.DrawText(boardX+(boardW-len(title))/2, 0, title)

	dst.DrawText(boardX, 1, fmt.Sprintf("Moves: %d", g.moves))

	maxStr := fmt.Sprintf("Max: %d", g.grid.MaxTile())
	dst.DrawTextColored(core.Max(boardX, boardX+boardW-len(maxStr)), 1, maxStr, core.TileColor(ColorIndex(g.grid.MaxTile())))
}

// renderGridLines draws the cell borders.
func (g *Game) renderGridLines(dst *core.Screen, boardX, boardY int) {
	rows, cols := g.cfg.Rows, g.cfg.Cols
	for y := range rows + 1 {
		for x := range cols + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight

			var corner rune
			switch {
			case y == 0 && x == 0:
				corner = '┌'
			case y == 0 && x == cols:
				corner = '┐'
			case y == rows && x == 0:
				corner = '└'
			case y == rows && x == cols:
				corner = '┘'
			case y == 0:
				corner = '┬'
			case y == rows:
				corner = '┴'
			case x == 0:
				corner = '├'
			case x == cols:
				corner = '┤'
			default:
				corner = '┼'
			}
			dst.SetColored(px, py, corner, core.ColorGray)

			if x < cols {
				for i := 1; i < cellWidth; i++ {
					dst.SetColored(px+i, py, '─', core.ColorGray)
				}
			}
			if y < rows {
				for i := 1; i < cellHeight; i++ {
					dst.SetColored(px, py+i, '│', core.ColorGray)
				}
			}
		}
	}
}

// renderTiles draws every tile at its interpolated position, so a move in
// flight shows tiles between cells.
func (g *Game) renderTiles(dst *core.Screen, boardX, boardY int) {
	cellSize := g.cfg.CellSize
	for _, t := range g.currentTiles() {
		px := boardX + 1 + t.X*cellWidth/cellSize
		py := boardY + 1 + t.Y*cellHeight/cellSize
		color := core.TileColor(ColorIndex(t.Value))

		dst.FillRect(core.NewRect(px, py, cellWidth-1, cellHeight-1), '░', color)

		label := strconv.Itoa(t.Value)
		pad := core.Max(0, (cellWidth-1-len(label))/2)
		dst.DrawTextColored(px+pad, py+(cellHeight-1)/2, label, color)
	}
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, boardX, boardY, boardW, boardH int) {
	centerX := boardX + boardW/2
	centerY := boardY + boardH/2

	switch {
	case g.paused:
		g.drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
	case g.gameOver:
		maxStr := fmt.Sprintf("Max tile: %d", g.grid.MaxTile())
		g.drawOverlay(dst, centerX, centerY, "GAME OVER", maxStr, "Press R to restart")
	}
}

// drawOverlay draws a centered text overlay.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = core.Max(maxLen, len(line))
	}

	box := core.NewRect(centerX-(maxLen+4)/2, centerY-(len(lines)+2)/2, maxLen+4, len(lines)+2)
	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box)

	for i, line := range lines {
		dst.DrawText(centerX-len(line)/2, box.Y+1+i, line)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD/HJKL: Move | P: Pause | R: Restart | Q: Quit"
}
