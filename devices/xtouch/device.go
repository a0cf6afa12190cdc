// Package xtouch renders surface state on a Behringer X-Touch or X-Touch Extender in MCU mode.
//
// A Device never talks to the DAW. Every write is skipped while the device is not assigned,
// and outputs bound to a slot are only sent when their message differs from the last one sent
// for that slot.
package xtouch

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	midi "gitlab.com/gomidi/midi/v2"

	"github.com/jdginn/fltouch/devices/mcu"
	"github.com/jdginn/fltouch/logging"
)

var log *slog.Logger

func init() {
	log = logging.Get(logging.MIDI_OUT)
}

// Sender is satisfied by *devices.MidiDevice.
type Sender interface {
	Send(msg midi.Message) error
}

// Slot keys for master-section outputs. Track strips use keys from stripKeyBase upward.
const (
	BeatSlot     = 128
	stripKeyBase = 48
	stripKeySpan = 6
)

// TimeDisplayLength is the number of characters on the time display.
const TimeDisplayLength = 10

// Device is one physical unit.
type Device struct {
	out      Sender
	pid      mcu.ProductID
	assigned atomic.Bool

	strips []*Strip

	last       map[int]midi.Message
	lastColors []int
	hasTime    bool
	lastTime   [TimeDisplayLength]byte
}

// New returns the device for a master unit (nine strips, the ninth being the master fader,
// plus the time display) or an extender (eight strips).
func New(out Sender, pid mcu.ProductID) *Device {
	d := &Device{
		out:     out,
		pid:     pid,
		last:    map[int]midi.Message{},
		hasTime: pid == mcu.ProductMaster,
	}
	n := 8
	if pid == mcu.ProductMaster {
		n = 9
	}
	for i := 0; i < n; i++ {
		d.strips = append(d.strips, &Strip{d: d, index: i, main: i == 8})
	}
	d.lastColors = make([]int, 8)
	return d
}

// ProductID returns the unit's MCU identity.
func (d *Device) ProductID() mcu.ProductID {
	return d.pid
}

// SetAssigned marks the device as connected. Reassigning forgets what was last sent so the
// next refresh redraws everything.
func (d *Device) SetAssigned(assigned bool) {
	if assigned && !d.assigned.Load() {
		d.last = map[int]midi.Message{}
		d.lastColors = make([]int, 8)
		d.lastTime = [TimeDisplayLength]byte{}
	}
	d.assigned.Store(assigned)
	log.Debug("Assignment changed", "unit", fmt.Sprintf("%#x", uint8(d.pid)), "assigned", assigned)
}

// Assigned reports whether writes reach the hardware.
func (d *Device) Assigned() bool {
	return d.assigned.Load()
}

func (d *Device) send(msg midi.Message) error {
	if !d.Assigned() {
		return nil
	}
	if err := d.out.Send(msg); err != nil {
		return fmt.Errorf("unit %#x: %w", uint8(d.pid), err)
	}
	return nil
}

// sendSlot sends msg unless it equals the last message sent for slot.
func (d *Device) sendSlot(slot int, msg midi.Message) error {
	if !d.Assigned() {
		return nil
	}
	if prev, ok := d.last[slot]; ok && bytes.Equal(prev, msg) {
		return nil
	}
	if err := d.send(msg); err != nil {
		return err
	}
	d.last[slot] = msg
	return nil
}

// Strips returns every strip, master fader last on a master unit.
func (d *Device) Strips() []*Strip {
	return d.strips
}

// Strip returns strip i.
func (d *Device) Strip(i int) *Strip {
	return d.strips[i]
}

// Initialize puts the unit into MCU mode.
func (d *Device) Initialize() error {
	return d.send(mcu.InitMsg(d.pid))
}

// SetBacklightTimeout sets the LCD backlight timeout in minutes.
func (d *Device) SetBacklightTimeout(minutes uint8) error {
	return d.send(mcu.BacklightMsg(d.pid, minutes))
}

// SetClicking enables the transport button click.
func (d *Device) SetClicking(enabled bool) error {
	return d.send(mcu.ClickingMsg(d.pid, enabled))
}

// EnableMeters selects vertical meter mode and activates every meter.
func (d *Device) EnableMeters() error {
	if !d.Assigned() {
		return nil
	}
	errs := d.send(mcu.MeterModeMsg(d.pid))
	return errors.Join(errs, d.setMetersActive(true))
}

// DisableMeters deactivates every meter.
func (d *Device) DisableMeters() error {
	return d.setMetersActive(false)
}

func (d *Device) setMetersActive(active bool) (errs error) {
	for _, s := range d.strips {
		if s.HasMeter() {
			errs = errors.Join(errs, d.send(mcu.MeterActiveMsg(d.pid, uint8(s.index), active)))
		}
	}
	return errs
}

// ClearMeters drops every meter to zero.
func (d *Device) ClearMeters() (errs error) {
	for _, s := range d.strips {
		if s.HasMeter() {
			errs = errors.Join(errs, s.SetMeter(0))
		}
	}
	return errs
}

// SetText writes a full LCD row (0 = bottom, 1 = top). Text is transliterated to ASCII and
// padded or cut to mcu.TextRowLength.
func (d *Device) SetText(row int, text string) error {
	return d.send(mcu.TextMsg(d.pid, row, ASCII(text)))
}

// SetScreenColors sets the eight scribble strip colours from DAW colours. nil selects the
// defaults. Nothing is sent when the colours equal the last ones sent.
func (d *Device) SetScreenColors(colors []int) error {
	if colors == nil {
		colors = mcu.DefaultColors[:]
	}
	if len(colors) != 8 {
		return fmt.Errorf("screen colours: want 8, got %d", len(colors))
	}
	if equalInts(colors, d.lastColors) || !d.Assigned() {
		return nil
	}
	var vec [8]mcu.ScreenColor
	for i, c := range colors {
		vec[i] = mcu.ColorFor(c)
	}
	if err := d.send(mcu.ScreenColorsMsg(d.pid, vec)); err != nil {
		return err
	}
	d.lastColors = append(d.lastColors[:0], colors...)
	return nil
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// SetAssignment shows a number on the two-digit assignment display; -1 blanks it. Only the
// last two digits are shown.
func (d *Device) SetAssignment(number int) (errs error) {
	text := "  "
	if number != -1 {
		text = fmt.Sprintf("%2d", number)
	}
	text = text[len(text)-2:]
	for _, msg := range mcu.AssignmentMsgs([2]byte{text[0], text[1]}) {
		errs = errors.Join(errs, d.send(msg))
	}
	return errs
}

// SetLED lights button b, deduplicated under slot.
func (d *Device) SetLED(b mcu.Button, state mcu.LEDState, slot int) error {
	return d.sendSlot(slot, mcu.LEDMsg(b, state))
}

// SendLED lights button b unconditionally.
func (d *Device) SendLED(b mcu.Button, state mcu.LEDState) error {
	return d.send(mcu.LEDMsg(b, state))
}

// Echo sends a button event straight back so the LED follows the button.
func (d *Device) Echo(b mcu.Button, velocity uint8) error {
	return d.send(midi.NoteOn(0, uint8(b), velocity))
}

// SetTime writes up to TimeDisplayLength characters to the time display, sending only the
// characters that changed.
func (d *Device) SetTime(text string) (errs error) {
	if !d.hasTime {
		return nil
	}
	var next [TimeDisplayLength]byte
	copy(next[:], text)
	if d.Assigned() {
		for i := range next {
			if next[i] != d.lastTime[i] {
				errs = errors.Join(errs, d.send(mcu.TimeCharMsg(i, next[i])))
			}
		}
	}
	d.lastTime = next
	return errs
}

// HasTimeDisplay reports whether the unit has a time display.
func (d *Device) HasTimeDisplay() bool {
	return d.hasTime
}
