package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/core"
)

// colorStyles maps core.Color to lipgloss styles. Tile colors approximate the
// classic 2048 palette in the 256-color space.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorGray:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	core.ColorTile2:   lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
	core.ColorTile4:   lipgloss.NewStyle().Foreground(lipgloss.Color("230")),
	core.ColorTile8:   lipgloss.NewStyle().Foreground(lipgloss.Color("215")).Bold(true),
	core.ColorTile16:  lipgloss.NewStyle().Foreground(lipgloss.Color("209")).Bold(true),
	core.ColorTile32:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
	core.ColorTile64:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	core.ColorTile128: lipgloss.NewStyle().Foreground(lipgloss.Color("222")).Bold(true),
	core.ColorTile256: lipgloss.NewStyle().Foreground(lipgloss.Color("221")).Bold(true),
	core.ColorTile512: lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			sb.WriteString(styleFor(startColor).Render(run.String()))
		}
	}
	return sb.String()
}

// styleFor returns the style of a color, falling back to the default style.
func styleFor(c core.Color) lipgloss.Style {
	if style, ok := colorStyles[c]; ok {
		return style
	}
	return colorStyles[core.ColorDefault]
}
