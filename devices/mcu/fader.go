package mcu

import "math"

// SliderMax is the hardware position matching full DAW fader travel. It is a calibration
// constant for the X-Touch fader, not the 14-bit maximum.
var SliderMax = int(math.RoundToEven(13072 * 16000 / 12800.0))

// ToMcuFader converts a DAW fader value in [0, max] to a hardware position.
func ToMcuFader(value, max int) uint16 {
	if max <= 0 {
		return 0
	}
	v := math.RoundToEven(float64(value) / float64(max) * float64(SliderMax))
	if v < 0 {
		v = 0
	}
	if v > 0x3FFF {
		v = 0x3FFF
	}
	return uint16(v)
}

// FromMcuFader converts a hardware position to a DAW fader value, clamped to [0, max].
func FromMcuFader(level uint16, max int) int {
	v := int(math.RoundToEven(float64(level) / float64(SliderMax) * float64(max)))
	return min(v, max)
}
