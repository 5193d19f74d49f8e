package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/blockdash/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:     lipgloss.NewStyle(),
	core.ColorRed:         lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:       lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:      lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:        lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorCyan:        lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:       lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightGreen: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightBlue:  lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorOrange:      lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:        lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorDarkGray:    lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
}

// RenderScreen converts a Screen buffer to a styled string.
// Adjacent cells of the same color share one style run.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color
			run.Reset()
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[color]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// centerText pads text on the left to center it within width.
func centerText(text string, width int) string {
	padding := (width - lipgloss.Width(text)) / 2
	if padding <= 0 {
		return text
	}
	return strings.Repeat(" ", padding) + text
}
