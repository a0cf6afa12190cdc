package mcu

// ScreenColor is one of the eight scribble strip background colours.
type ScreenColor uint8

const (
	Black ScreenColor = iota
	Red
	Green
	Yellow
	Blue
	Pink
	Cyan
	White
)

// DefaultTrackColor is the DAW's default insert colour; it renders white.
const DefaultTrackColor = -10261391

// DefaultColors is what the strips show when no track colours apply.
var DefaultColors = [8]int{
	DefaultTrackColor, DefaultTrackColor, DefaultTrackColor, DefaultTrackColor,
	DefaultTrackColor, DefaultTrackColor, DefaultTrackColor, DefaultTrackColor,
}

// RGB splits a packed 0xRRGGBB colour.
func RGB(c int) (r, g, b int) {
	return (c >> 16) & 0xFF, (c >> 8) & 0xFF, c & 0xFF
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// RGBToHSV converts 8-bit RGB to HSV where all three components use a 0-255 scale.
// Hue can come out negative for reds leaning toward magenta.
func RGBToHSV(r, g, b int) (h, s, v int) {
	hi := max(r, g, b)
	lo := min(r, g, b)
	v = hi
	if v == 0 {
		return 0, 0, 0
	}
	s = floorDiv(255*(hi-lo), v)
	if s == 0 {
		return 0, 0, v
	}
	switch hi {
	case r:
		h = floorDiv(43*(g-b), hi-lo)
	case g:
		h = 85 + floorDiv(43*(b-r), hi-lo)
	default:
		h = 171 + floorDiv(43*(r-g), hi-lo)
	}
	return h, s, v
}

// ColorFor maps a packed DAW colour onto the nearest screen colour.
func ColorFor(c int) ScreenColor {
	h, s, v := RGBToHSV(RGB(c))
	if h < 0 {
		h = -h
	}
	if v > 30 && s > 40 {
		switch {
		case h < 28 || (h > 242 && h <= 255):
			return Red
		case h > 28 && h < 53:
			return Yellow
		case h > 50 && h < 117:
			return Green
		case h > 118 && h < 140:
			return Cyan
		case h > 141 && h < 190:
			return Blue
		case h > 191 && h < 241:
			return Pink
		}
	}
	if v < 30 {
		return Black
	}
	return White
}
