package core

// Color is a foreground color for a screen cell.
// The platform maps each value to an ANSI 256-color code.
type Color uint8

// Palette used by the games.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorCyan
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightWhite
	ColorOrange
	ColorGray
)
