package mcu

// KnobMode is the rendering policy of an encoder LED ring.
type KnobMode uint8

const (
	SingleDot KnobMode = iota // Parameter
	BoostCut                  // Starts in the center, like pan
	Wrap                      // Fills from the left, like volume
	Spread
	KnobOff // Not a hardware mode; the ring only shows the center dot
)

func (m KnobMode) String() string {
	switch m {
	case SingleDot:
		return "SingleDot"
	case BoostCut:
		return "BoostCut"
	case Wrap:
		return "Wrap"
	case Spread:
		return "Spread"
	case KnobOff:
		return "Off"
	}
	return "Unknown"
}

// KnobCenter controls the center LED under an encoder ring.
type KnobCenter int8

const (
	CenterOff KnobCenter = iota
	CenterOn
	// CenterAuto lights the center when the reset parameter differs from its reset value.
	CenterAuto
	// CenterAutoFromSlider lights the center when the slider parameter differs from the reset value.
	CenterAutoFromSlider
)

func (c KnobCenter) String() string {
	switch c {
	case CenterOff:
		return "Off"
	case CenterOn:
		return "On"
	case CenterAuto:
		return "Auto"
	case CenterAutoFromSlider:
		return "AutoFromSlider"
	}
	return "Unknown"
}

// Center returns CenterOn for true and CenterOff for false.
func Center(on bool) KnobCenter {
	if on {
		return CenterOn
	}
	return CenterOff
}

// RingValue packs an encoder ring CC value. KnobOff drops the mode and value bits and
// keeps only the center dot.
func RingValue(mode KnobMode, center bool, value uint8) uint8 {
	var c uint8
	if center {
		c = 1 << 6
	}
	if mode >= KnobOff {
		return c
	}
	if value > 11 {
		value = 11
	}
	return c | uint8(mode)<<4 | value
}
