package mcu

import (
	midi "gitlab.com/gomidi/midi/v2"
)

// ProductID identifies the unit in every SysEx frame.
type ProductID uint8

const (
	ProductMaster   ProductID = 0x14
	ProductExtender ProductID = 0x15
)

// SysEx command bytes.
const (
	cmdClicking   = 0x0A
	cmdBacklight  = 0x0B
	cmdInit       = 0x0C
	cmdText       = 0x12
	cmdMeterOn    = 0x20
	cmdMeterMode  = 0x21
	cmdScreenCols = 0x72
)

// TextRowLength is the number of characters on one LCD row (eight strips of seven).
const TextRowLength = 56

// Header returns the manufacturer prefix followed by the product id.
func Header(pid ProductID) []byte {
	return []byte{0x00, 0x00, 0x66, byte(pid)}
}

func frame(pid ProductID, body ...byte) midi.Message {
	return midi.SysEx(append(Header(pid), body...))
}

// InitMsg resets the device into MCU mode.
func InitMsg(pid ProductID) midi.Message {
	return frame(pid, cmdInit, 1)
}

// BacklightMsg sets the backlight timeout in minutes.
func BacklightMsg(pid ProductID, minutes uint8) midi.Message {
	return frame(pid, cmdBacklight, minutes&0x7F)
}

// ClickingMsg toggles the transport button click.
func ClickingMsg(pid ProductID, enabled bool) midi.Message {
	var v byte
	if enabled {
		v = 1
	}
	return frame(pid, cmdClicking, v)
}

// MeterModeMsg selects vertical meters, the only mode the X-Touch renders properly.
func MeterModeMsg(pid ProductID) midi.Message {
	return frame(pid, cmdMeterMode, 1)
}

// MeterActiveMsg enables or disables the meter of one strip.
func MeterActiveMsg(pid ProductID, index uint8, active bool) midi.Message {
	var v byte
	if active {
		v = 3
	}
	return frame(pid, cmdMeterOn, index, v)
}

// TextMsg writes a full LCD row. Row 0 is the bottom row, row 1 the top row. The text is
// padded or cut to TextRowLength; it must already be ASCII.
func TextMsg(pid ProductID, row int, text string) midi.Message {
	body := make([]byte, 0, TextRowLength+2)
	body = append(body, cmdText, byte(TextRowLength*row))
	for i := 0; i < TextRowLength; i++ {
		c := byte(' ')
		if i < len(text) {
			c = text[i] & 0x7F
		}
		body = append(body, c)
	}
	return frame(pid, body...)
}

// ScreenColorsMsg sets the background colour of the eight scribble strips.
func ScreenColorsMsg(pid ProductID, colors [8]ScreenColor) midi.Message {
	body := make([]byte, 0, 9)
	body = append(body, cmdScreenCols)
	for _, c := range colors {
		body = append(body, byte(c))
	}
	return frame(pid, body...)
}

// RingMsg drives the LED ring of encoder index (0-7).
func RingMsg(index uint8, mode KnobMode, center bool, value uint8) midi.Message {
	return midi.ControlChange(0, RingCC1+index, RingValue(mode, center, value))
}

// FaderMsg moves fader index (0-8) to a 14-bit position.
func FaderMsg(index uint8, level uint16) midi.Message {
	if level > 0x3FFF {
		level = 0x3FFF
	}
	return midi.Pitchbend(index, int16(level)-0x2000)
}

// LEDMsg lights a button.
func LEDMsg(b Button, state LEDState) midi.Message {
	return midi.NoteOn(0, uint8(b), uint8(state))
}

// MeterMsg sets meter index (0-7) to level (0-14, 15 clears the meter).
func MeterMsg(index uint8, level uint8) midi.Message {
	return midi.AfterTouch(0, index<<4|level&0x0F)
}

// MeterLevel converts a peak (0 = silent, 1 = full scale, above 1 = clipping) to a meter
// level. Any activity shows at least one segment; silence clears the meter.
func MeterLevel(peak float64) uint8 {
	const meterMax = 14
	if peak <= 0 {
		return 15
	}
	v := int(peak * meterMax)
	if v == 0 && peak > 0.001 {
		v = 1
	}
	if v > meterMax {
		v = meterMax
	}
	return uint8(v)
}

// TimeCharMsg writes character c at position pos (0-9) of the time display.
func TimeCharMsg(pos int, c byte) midi.Message {
	return midi.ControlChange(0, TimeDisplayCC-uint8(pos), c&0x7F)
}

// AssignmentMsgs writes the two characters of the assignment display.
func AssignmentMsgs(text [2]byte) [2]midi.Message {
	return [2]midi.Message{
		midi.ControlChange(0, AssignmentCCLeft, text[0]&0x7F),
		midi.ControlChange(0, AssignmentCCRight, text[1]&0x7F),
	}
}
