// Package mcu describes the Mackie Control Universal wire protocol as spoken by the
// Behringer X-Touch family: note numbers, controller numbers, SysEx frames and the
// conversions between hardware and DAW value ranges.
package mcu

import "fmt"

// Button is the note number of a physical control. The same number addresses the LED
// behind the button when sent back to the device.
type Button uint8

const (
	Record_1  Button = 0x00 // 0x00..0x07 arm buttons per column
	Solo_1    Button = 0x08 // 0x08..0x0F
	Mute_1    Button = 0x10 // 0x10..0x17
	Select_1  Button = 0x18 // 0x18..0x1F
	Encoder_1 Button = 0x20 // 0x20..0x27 encoder push

	Record_8  = Record_1 + 7
	Solo_8    = Solo_1 + 7
	Mute_8    = Mute_1 + 7
	Select_8  = Select_1 + 7
	Encoder_8 = Encoder_1 + 7
)

// Page selection. The offset from Pan is the page index.
const (
	PanButton Button = 0x28 + iota
	StereoButton
	SendsButton
	EffectsButton
	EqualizerButton
	FreeButton
)

const (
	FaderBankLeft Button = 0x2E + iota
	FaderBankRight
	FaderChannelLeft
	FaderChannelRight
	Flip
	Smooth
	NameValue
	TimeFormat
)

// Function keys. With shift held these become F1..F8.
const (
	Cut Button = 0x36 + iota
	Copy
	Paste
	Insert
	Delete
	ItemMenu
	Undo // also a jog source
	UndoRedo
)

// Jog sources.
const (
	Pattern Button = 0x3E + iota
	Mixer
	Channels
	Tempo
	Free1
	Free2
	Free3
	Free4
)

const (
	Shift Button = 0x46 + iota
	Edison
	LinkChannel
	Menu
	Browser
	StepSequencer
	AddMarker
	Window
	In
	Out
	Save
	Select // punch
	Escape
	Enter
	Marker
	Move
	Snap
	Metronome
	CountDown
	Mode
	SongVSLoop
	Rewind
	FastForward
	Stop
	Play
	Record
	Up
	Down
	Left
	Right
	Zoom
	Scrub
)

// Fader touch sensors.
const (
	Slider_1    Button = 0x68
	Slider_8           = Slider_1 + 7
	Slider_Main Button = 0x70
)

// LED only.
const (
	SmpteLED    Button = 0x71
	BeatsLED    Button = 0x72
	RudeSoloLED Button = 0x73
)

// FirstTrackKey is never sent by hardware. A NoteOn on this key arriving from another
// unit carries the first track index in its velocity.
const FirstTrackKey Button = 0x7F

// NoButton marks "no button", e.g. the default jog source.
const NoButton Button = 0xFF

// Column returns the column (0-7) of a per-column button and whether b is one.
func (b Button) Column() (int, bool) {
	switch {
	case b <= Encoder_8:
		return int(b) % 8, true
	case b >= Slider_1 && b <= Slider_8:
		return int(b - Slider_1), true
	}
	return 0, false
}

// IsPage reports whether b selects a page.
func (b Button) IsPage() bool {
	return b >= PanButton && b <= FreeButton
}

// Page returns the page selected by b. Only meaningful when IsPage is true.
func (b Button) Page() Page {
	return Page(b - PanButton)
}

// IsJogSource reports whether b claims the jog wheel while held.
func (b Button) IsJogSource() bool {
	switch b {
	case Undo, Pattern, Mixer, Channels, Tempo, Free1, Free2, Free3, Free4, Marker, Zoom, Move, Window:
		return true
	}
	return false
}

// IsArrow reports whether b is one of the cursor keys.
func (b Button) IsArrow() bool {
	return b >= Up && b <= Right
}

// ArrowStep is the jog delta produced by each arrow (up, down, left, right) when a jog
// source is active.
var ArrowStep = [4]int{2, -2, -1, 1}

var buttonNames = map[Button]string{
	PanButton: "Pan", StereoButton: "Stereo", SendsButton: "Sends", EffectsButton: "Effects",
	EqualizerButton: "Equalizer", FreeButton: "Free",
	FaderBankLeft: "BankLeft", FaderBankRight: "BankRight", FaderChannelLeft: "ChannelLeft",
	FaderChannelRight: "ChannelRight", Flip: "Flip", Smooth: "Smooth", NameValue: "NameValue",
	TimeFormat: "TimeFormat", Cut: "Cut", Copy: "Copy", Paste: "Paste", Insert: "Insert",
	Delete: "Delete", ItemMenu: "ItemMenu", Undo: "Undo", UndoRedo: "UndoRedo",
	Pattern: "Pattern", Mixer: "Mixer", Channels: "Channels", Tempo: "Tempo",
	Free1: "Free1", Free2: "Free2", Free3: "Free3", Free4: "Free4",
	Shift: "Shift", Edison: "Edison", LinkChannel: "LinkChannel", Menu: "Menu",
	Browser: "Browser", StepSequencer: "StepSequencer", AddMarker: "AddMarker",
	Window: "Window", In: "PunchIn", Out: "PunchOut", Save: "Save", Select: "Punch",
	Escape: "Escape", Enter: "Enter", Marker: "Marker", Move: "Move", Snap: "Snap",
	Metronome: "Metronome", CountDown: "CountDown", Mode: "Mode", SongVSLoop: "SongVSLoop",
	Rewind: "Rewind", FastForward: "FastForward", Stop: "Stop", Play: "Play",
	Record: "Record", Up: "Up", Down: "Down", Left: "Left", Right: "Right",
	Zoom: "Zoom", Scrub: "Scrub", Slider_Main: "SliderMain", SmpteLED: "SMPTE",
	BeatsLED: "Beats", RudeSoloLED: "RudeSolo", FirstTrackKey: "FirstTrack",
	NoButton: "None",
}

func (b Button) String() string {
	if s, ok := buttonNames[b]; ok {
		return s
	}
	col, ok := b.Column()
	if !ok {
		return fmt.Sprintf("Button(0x%02X)", uint8(b))
	}
	switch {
	case b <= Record_8:
		return fmt.Sprintf("Record%d", col+1)
	case b <= Solo_8:
		return fmt.Sprintf("Solo%d", col+1)
	case b <= Mute_8:
		return fmt.Sprintf("Mute%d", col+1)
	case b <= Select_8:
		return fmt.Sprintf("Select%d", col+1)
	case b <= Encoder_8:
		return fmt.Sprintf("Encoder%d", col+1)
	default:
		return fmt.Sprintf("Slider%d", col+1)
	}
}

// LEDState is the velocity that drives a button LED.
type LEDState uint8

const (
	LEDOff   LEDState = 0x00
	LEDBlink LEDState = 0x01
	LEDOn    LEDState = 0x7F
)

// OnOff returns LEDOn for true and LEDOff for false.
func OnOff(on bool) LEDState {
	if on {
		return LEDOn
	}
	return LEDOff
}

// OnOffBlink maps 0, 1, 2 to off, on, blinking. Anything else is off.
func OnOffBlink(v int) LEDState {
	switch v {
	case 1:
		return LEDOn
	case 2:
		return LEDBlink
	}
	return LEDOff
}
