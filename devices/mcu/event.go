package mcu

import (
	"fmt"

	midi "gitlab.com/gomidi/midi/v2"
)

// Controller numbers on channel 0.
const (
	EncoderCC1 uint8 = 0x10 // 0x10..0x17 relative encoders
	EncoderCC8 uint8 = 0x17
	JogCC      uint8 = 0x3C
	RingCC1    uint8 = 0x30 // 0x30..0x37 encoder rings (outbound)

	AssignmentCCLeft  uint8 = 0x4B
	AssignmentCCRight uint8 = 0x4A
	TimeDisplayCC     uint8 = 0x49 // first character; following characters count down
)

// Source tells where an event came from.
type Source uint8

const (
	FromDevice   Source = iota
	FromDispatch        // forwarded by another unit
)

func (s Source) String() string {
	if s == FromDispatch {
		return "dispatch"
	}
	return "device"
}

// Event is a decoded inbound message. Events are values and are never modified after decoding.
type Event interface {
	isEvent()
	String() string
}

// ControlChange is an encoder turn, a jog wheel turn or any other controller message.
type ControlChange struct {
	Channel    uint8
	Controller uint8
	Value      uint8
}

// Delta decodes the sign-magnitude relative value used by encoders and the jog wheel.
func (e ControlChange) Delta() int {
	if e.Value >= 0x40 {
		return -int(e.Value - 0x40)
	}
	return int(e.Value)
}

// IsEncoder reports whether e is one of the eight channel encoders.
func (e ControlChange) IsEncoder() bool {
	return e.Channel == 0 && e.Controller >= EncoderCC1 && e.Controller <= EncoderCC8
}

// IsJog reports whether e is the jog wheel.
func (e ControlChange) IsJog() bool {
	return e.Channel == 0 && e.Controller == JogCC
}

// Resolution is the acceleration curve applied to encoder turns: faster turns move the
// parameter further per step.
func Resolution(delta int) float64 {
	if delta < 0 {
		delta = -delta
	}
	return 0.005 + float64(delta-1)/2000
}

func (ControlChange) isEvent() {}

func (e ControlChange) String() string {
	return fmt.Sprintf("CC ch=%d cc=0x%02X value=%d", e.Channel, e.Controller, e.Value)
}

// PitchBend is a fader move. Value is the 14-bit absolute position.
type PitchBend struct {
	Channel uint8
	Value   uint16
}

func (PitchBend) isEvent() {}

func (e PitchBend) String() string {
	return fmt.Sprintf("PitchBend ch=%d value=%d", e.Channel, e.Value)
}

// NoteOn is a button press (Velocity > 0) or release (Velocity == 0).
type NoteOn struct {
	Channel  uint8
	Key      Button
	Velocity uint8
}

// Pressed reports whether the note is a press.
func (e NoteOn) Pressed() bool {
	return e.Velocity > 0
}

func (NoteOn) isEvent() {}

func (e NoteOn) String() string {
	return fmt.Sprintf("NoteOn ch=%d key=%s velocity=%d", e.Channel, e.Key, e.Velocity)
}

// NoteOff is an explicit note-off. The X-Touch reports releases as NoteOn with velocity 0,
// so these are not acted on.
type NoteOff struct {
	Channel uint8
	Key     Button
}

func (NoteOff) isEvent() {}

func (e NoteOff) String() string {
	return fmt.Sprintf("NoteOff ch=%d key=%s", e.Channel, e.Key)
}

// SysEx carries the payload between F0 and F7.
type SysEx struct {
	Data []byte
}

func (SysEx) isEvent() {}

func (e SysEx) String() string {
	return fmt.Sprintf("SysEx % X", e.Data)
}

// Decode turns a raw MIDI message into an Event. It returns false for message types the
// surface never sends.
func Decode(msg midi.Message) (Event, bool) {
	if len(msg) == 0 {
		return nil, false
	}
	// Notes are decoded from the raw bytes so that a NoteOn with velocity 0 stays a NoteOn.
	switch msg[0] & 0xF0 {
	case 0x90:
		if len(msg) < 3 {
			return nil, false
		}
		return NoteOn{Channel: msg[0] & 0x0F, Key: Button(msg[1]), Velocity: msg[2]}, true
	case 0x80:
		if len(msg) < 3 {
			return nil, false
		}
		return NoteOff{Channel: msg[0] & 0x0F, Key: Button(msg[1])}, true
	}

	var channel, controller, value uint8
	var relative int16
	var absolute uint16
	var data []byte
	switch {
	case msg.GetControlChange(&channel, &controller, &value):
		return ControlChange{Channel: channel, Controller: controller, Value: value}, true
	case msg.GetPitchBend(&channel, &relative, &absolute):
		return PitchBend{Channel: channel, Value: absolute}, true
	case msg.GetSysEx(&data):
		return SysEx{Data: data}, true
	}
	return nil, false
}

// Encode turns an Event back into a MIDI message, used when forwarding events between units.
func Encode(ev Event) midi.Message {
	switch e := ev.(type) {
	case ControlChange:
		return midi.ControlChange(e.Channel, e.Controller, e.Value)
	case PitchBend:
		return midi.Pitchbend(e.Channel, int16(e.Value)-0x2000)
	case NoteOn:
		return midi.NoteOn(e.Channel, uint8(e.Key), e.Velocity)
	case NoteOff:
		return midi.NoteOff(e.Channel, uint8(e.Key))
	case SysEx:
		return midi.SysEx(e.Data)
	}
	return nil
}
