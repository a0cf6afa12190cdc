package xtouch

import (
	"github.com/jdginn/fltouch/devices/mcu"
)

// Strip is one fader column: encoder ring, four buttons, fader and meter. The master strip
// has only a fader.
type Strip struct {
	d     *Device
	index int
	main  bool
}

// Column button rows, in the order they appear on the hardware from top to bottom.
const (
	RowArm = iota
	RowSolo
	RowMute
	RowSelect
)

// Index is the column number, 8 for the master fader.
func (s *Strip) Index() int {
	return s.index
}

// IsMain reports whether s is the master fader.
func (s *Strip) IsMain() bool {
	return s.main
}

// HasMeter reports whether s has a level meter.
func (s *Strip) HasMeter() bool {
	return !s.main
}

func (s *Strip) key(offset int) int {
	return stripKeyBase + s.index*stripKeySpan + offset
}

// SetRing drives the encoder LED ring.
func (s *Strip) SetRing(mode mcu.KnobMode, center bool, value uint8) error {
	if s.main {
		return nil
	}
	return s.d.sendSlot(s.key(0), mcu.RingMsg(uint8(s.index), mode, center, value))
}

// SetButton lights the button in row (RowArm..RowSelect) of this column.
func (s *Strip) SetButton(row int, state mcu.LEDState) error {
	if s.main || row < RowArm || row > RowSelect {
		return nil
	}
	b := mcu.Button(row*8 + s.index)
	return s.d.sendSlot(s.key(1+row), mcu.LEDMsg(b, state))
}

// SetArm lights the arm button: off, on when armed, blinking when armed and recording.
func (s *Strip) SetArm(armed, recording bool) error {
	v := 0
	if armed {
		v = 1
		if recording {
			v = 2
		}
	}
	return s.SetButton(RowArm, mcu.OnOffBlink(v))
}

// SetSolo lights the solo button.
func (s *Strip) SetSolo(on bool) error {
	return s.SetButton(RowSolo, mcu.OnOff(on))
}

// SetMute lights the mute button. muted is the inverse of the track's enabled state.
func (s *Strip) SetMute(muted bool) error {
	return s.SetButton(RowMute, mcu.OnOff(muted))
}

// SetSelect lights the select button.
func (s *Strip) SetSelect(on bool) error {
	return s.SetButton(RowSelect, mcu.OnOff(on))
}

// SetFader moves the motor fader to a 14-bit position.
func (s *Strip) SetFader(level uint16) error {
	return s.d.sendSlot(s.key(5), mcu.FaderMsg(uint8(s.index), level))
}

// SetMeter shows peak on the column meter. Meters are not deduplicated; the hardware lets
// them fall on its own.
func (s *Strip) SetMeter(peak float64) error {
	if !s.HasMeter() {
		return nil
	}
	return s.d.send(mcu.MeterMsg(uint8(s.index), mcu.MeterLevel(peak)))
}
