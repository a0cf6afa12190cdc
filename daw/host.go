package daw

// Window identifies a DAW window.
type Window uint8

const (
	Mixer Window = iota
	ChannelRack
	Playlist
	PianoRoll
	Browser
)

func (w Window) String() string {
	switch w {
	case Mixer:
		return "mixer"
	case ChannelRack:
		return "channelrack"
	case Playlist:
		return "playlist"
	case PianoRoll:
		return "pianoroll"
	case Browser:
		return "browser"
	}
	return "unknown"
}

// Time is the song position as shown on the time display.
type Time struct {
	Bar  int
	Step int
	Tick int
}

// WaitingBar is reported as Bar while the song position is undefined.
const WaitingBar = -1 << 31

// MixerState is read access to the mixer.
type MixerState interface {
	TrackCount() int
	TrackName(track int) string
	TrackColor(track int) int
	TrackPeak(track int) float64
	IsArmed(track int) bool
	IsSolo(track int) bool
	IsEnabled(track int) bool
	RecordingFile(track int) string
	SelectedTrack() int

	PluginValid(track, slot int) bool
	PluginAutomated(track, slot int) bool
	RouteActive(from, to int) bool

	ParamValue(id ParamID) int
	ParamName(id ParamID) string
	ParamValueString(id ParamID, value int) string
}

// TransportState is read access to playback.
type TransportState interface {
	IsPlaying() bool
	IsRecording() bool
	// LoopPattern reports pattern mode, as opposed to song mode.
	LoopPattern() bool
	SongPosition() int
	Time() Time
	Changed() bool
	Metronome() bool
	Precount() bool
}

// UIState is read access to the DAW user interface.
type UIState interface {
	Focused(w Window) bool
	FocusedCaption() string
	TimeDisplayMinutes() bool
	SnapMode() int
	Hint() string
	// SelectionName names the current pattern, mixer track or channel.
	SelectionName(s Selector) string
	UndoLevel() string
	ProgramTitle() string
	Version() string
	Closing() bool
}

// RemoteState reads values of generic remote controls. The second result is false when the
// control is not linked to anything.
type RemoteState interface {
	RemoteValue(id int) (float64, bool)
}

// Host is the full DAW contract. Queries are methods; mutations go through Execute.
type Host interface {
	MixerState
	TransportState
	UIState
	RemoteState
	Mutator
}

// Notifier delivers DAW-side change notifications. Dirty always precedes the Refresh that
// covers it.
type Notifier interface {
	OnDirty(func(track int))
	OnRefresh(func(RefreshFlags))
	OnBeat(func(value int))
	OnWaiting(func())
}
