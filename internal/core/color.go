package core

// Color is a foreground color for a screen cell. The platform layer maps it
// onto the terminal palette.
type Color uint8

// Palette used by the renderer.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightBlue
	ColorOrange
	ColorGray
	ColorDarkGray
)
