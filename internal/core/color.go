package core

// Color is the foreground color of a screen cell.
// The platform maps each value to an ANSI 256-color code.
type Color uint8

// Base palette.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray

	colorCount
)

// Arena roles. Renderers draw with these instead of raw palette entries.
const (
	ColorPlayer      = ColorBrightGreen
	ColorOrb         = ColorYellow
	ColorBoss        = ColorBrightRed
	ColorBossEnraged = ColorOrange
	ColorPlayerShot  = ColorBrightCyan
	ColorOrbShot     = ColorRed
	ColorBossShot    = ColorBrightMagenta
	ColorOverlay     = ColorGray
)

// Valid reports whether c is in the base palette.
func (c Color) Valid() bool {
	return c < colorCount
}
