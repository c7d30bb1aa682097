package core

// Color represents a foreground color for a screen cell.
// Named colors map to ANSI 16-color codes; the gray ramp maps onto the
// 24 grayscale entries of the 256-color palette.
type Color uint8

// Predefined colors for scene elements.
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
)

// GraySteps is the number of levels in the gray ramp.
const GraySteps = 24

// colorGrayBase is the first Color value of the gray ramp.
const colorGrayBase Color = 64

// Gray returns the ramp color for level in [0, GraySteps-1], darkest first.
// Levels outside the range are clamped.
func Gray(level int) Color {
	return colorGrayBase + Color(Clamp(level, 0, GraySteps-1))
}

// GrayLevel reports the ramp level of c and whether c is a ramp color.
func (c Color) GrayLevel() (int, bool) {
	if c < colorGrayBase || c >= colorGrayBase+GraySteps {
		return 0, false
	}
	return int(c - colorGrayBase), true
}
