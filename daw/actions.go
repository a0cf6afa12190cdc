package daw

// Action is a global transport action. Actions receive a value: 2 for press, 0 for release,
// 1 for a one-shot trigger, or a signed step for jog actions.
type Action uint8

const (
	ActJog Action = iota + 1
	ActMoveJog
	ActMarkerJumpJog
	ActMarkerSelJog
	ActUndoJog
	ActHZoomJog
	ActVZoomJog
	ActWindowJog

	ActPlay
	ActStop
	ActRecord
	ActLoop
	ActMode
	ActRewind
	ActFastForward
	ActMetronome
	ActCountDown
	ActSnap
	ActSnapMode

	ActCut
	ActCopy
	ActPaste
	ActInsert
	ActDelete
	ActMenu
	ActItemMenu
	ActUndo
	ActPunch
	ActPunchIn
	ActPunchOut
	ActAddMarker
	ActAddMarkerAndName
	ActSave
	ActSaveNew
	ActEscape
	ActEnter
	ActNo
	ActYes

	ActUp
	ActDown
	ActLeft
	ActRight

	ActF1
	ActF2
	ActF3
	ActF4
	ActF5
	ActF6
	ActF7
	ActF8
)

var actionNames = map[Action]string{
	ActJog: "jog", ActMoveJog: "movejog", ActMarkerJumpJog: "markerjump", ActMarkerSelJog: "markersel",
	ActUndoJog: "undojog", ActHZoomJog: "hzoom", ActVZoomJog: "vzoom", ActWindowJog: "windowjog",
	ActPlay: "play", ActStop: "stop", ActRecord: "record", ActLoop: "loop", ActMode: "mode",
	ActRewind: "rewind", ActFastForward: "fastforward", ActMetronome: "metronome",
	ActCountDown: "countdown", ActSnap: "snap", ActSnapMode: "snapmode",
	ActCut: "cut", ActCopy: "copy", ActPaste: "paste", ActInsert: "insert", ActDelete: "delete",
	ActMenu: "menu", ActItemMenu: "itemmenu", ActUndo: "undo", ActPunch: "punch",
	ActPunchIn: "punchin", ActPunchOut: "punchout", ActAddMarker: "addmarker",
	ActAddMarkerAndName: "addmarkername", ActSave: "save", ActSaveNew: "savenew",
	ActEscape: "escape", ActEnter: "enter", ActNo: "no", ActYes: "yes",
	ActUp: "up", ActDown: "down", ActLeft: "left", ActRight: "right",
	ActF1: "f1", ActF2: "f2", ActF3: "f3", ActF4: "f4", ActF5: "f5", ActF6: "f6", ActF7: "f7", ActF8: "f8",
}

func (a Action) String() string {
	if s, ok := actionNames[a]; ok {
		return s
	}
	return "unknown"
}

// Press returns the value sent with press-and-release actions.
func Press(pressed bool) int {
	if pressed {
		return 2
	}
	return 0
}

// RemoteKind tells how a remote control value is applied.
type RemoteKind uint8

const (
	RemoteAbsolute RemoteKind = iota
	RemoteIncrement
	// RemoteToggle flips a switch-like control; the value is ignored.
	RemoteToggle
)

// Selector picks what StepSelection moves through.
type Selector uint8

const (
	SelectPattern Selector = iota
	SelectMixerTrack
	SelectChannel
)

func (s Selector) String() string {
	switch s {
	case SelectPattern:
		return "Pattern"
	case SelectMixerTrack:
		return "Mixer track"
	case SelectChannel:
		return "Channel"
	}
	return "unknown"
}

// TrackProperty is a per-track switch.
type TrackProperty uint8

const (
	TrackSolo TrackProperty = iota
	TrackArm
	TrackEnable
)

func (p TrackProperty) String() string {
	switch p {
	case TrackSolo:
		return "solo"
	case TrackArm:
		return "arm"
	case TrackEnable:
		return "enable"
	}
	return "unknown"
}

// RemoteMax is the full-scale value of an absolute remote control event.
const RemoteMax = 1 << 30

// RemoteID addresses generic control cc of the surface connected on port. Each port has its
// own control numbers.
func RemoteID(port, cc int) int {
	return port<<16 | cc
}
