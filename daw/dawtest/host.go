// Package dawtest provides an in-memory DAW for tests. Every mutation is recorded as the
// daw.Command that would have produced it.
package dawtest

import (
	"fmt"
	"sync"

	"github.com/jdginn/fltouch/daw"
)

type Track struct {
	Name          string
	Color         int
	Peak          float64
	Armed         bool
	Solo          bool
	Enabled       bool
	RecordingFile string
}

type Plugin struct {
	Valid     bool
	Automated bool
}

type slot struct{ track, slot int }
type route struct{ from, to int }

// Host is a fake daw.Host and daw.Notifier. Exported fields may be set directly before the
// Host is shared with other goroutines; afterwards use the setters.
type Host struct {
	mu sync.Mutex

	Tracks   []Track
	Selected int

	Params     map[daw.ParamID]int
	ParamNames map[daw.ParamID]string
	Plugins    map[slot]Plugin
	Routes     map[route]bool
	// Unroutable routes make ToggleRoute fail.
	Unroutable map[route]bool
	Remote     map[int]float64

	Playing     bool
	Recording   bool
	PatternMode bool
	Position    int
	Clock       daw.Time
	ChangedFlag bool
	MetronomeOn bool
	PrecountOn  bool

	FocusedWindows map[daw.Window]bool
	Caption        string
	Minutes        bool
	Snap           int
	HintText       string
	UndoText       string
	Title          string
	Ver            string
	IsClosing      bool
	Selections     map[daw.Selector]string
	// GlobalResult is returned by GlobalTransport.
	GlobalResult bool
	Speed        float64

	commands []daw.Command

	dirty   []func(int)
	refresh []func(daw.RefreshFlags)
	beat    []func(int)
	waiting []func()
}

// New returns a Host with n enabled tracks named "Track 0".."Track n-1". Track 0 is the
// master insert.
func New(n int) *Host {
	h := &Host{
		Params:         map[daw.ParamID]int{},
		ParamNames:     map[daw.ParamID]string{},
		Plugins:        map[slot]Plugin{},
		Routes:         map[route]bool{},
		Unroutable:     map[route]bool{},
		Remote:         map[int]float64{},
		FocusedWindows: map[daw.Window]bool{},
		Selections:     map[daw.Selector]string{},
		Title:          "FL Studio",
		Ver:            "21.2",
		Snap:           3,
		Speed:          1,
	}
	for i := 0; i < n; i++ {
		h.Tracks = append(h.Tracks, Track{
			Name:    fmt.Sprintf("Track %d", i),
			Color:   -10261391,
			Enabled: true,
		})
	}
	return h
}

func (h *Host) record(c daw.Command) {
	h.commands = append(h.commands, c)
}

// Commands returns every mutation so far.
func (h *Host) Commands() []daw.Command {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]daw.Command(nil), h.commands...)
}

// Reset forgets recorded mutations.
func (h *Host) Reset() {
	h.mu.Lock()
	h.commands = nil
	h.mu.Unlock()
}

func (h *Host) SetPlugin(track, s int, p Plugin) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Plugins[slot{track, s}] = p
}

func (h *Host) SetRoute(from, to int, active bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Routes[route{from, to}] = active
}

func (h *Host) SetUnroutable(from, to int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Unroutable[route{from, to}] = true
}

func (h *Host) SetParam(id daw.ParamID, v int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Params[id] = v
}

func (h *Host) SetRemote(id int, v float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Remote[id] = v
}

func (h *Host) SetFocused(w daw.Window, focused bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.FocusedWindows[w] = focused
}

func (h *Host) track(t int) (Track, bool) {
	if t < 0 || t >= len(h.Tracks) {
		return Track{}, false
	}
	return h.Tracks[t], true
}

// MixerState

func (h *Host) TrackCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.Tracks)
}

func (h *Host) TrackName(t int) string {
	h.mu.Lock()
	defer h.mu.Unlock()
	tr, _ := h.track(t)
	return tr.Name
}

func (h *Host) TrackColor(t int) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	tr, _ := h.track(t)
	return tr.Color
}

func (h *Host) TrackPeak(t int) float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	tr, _ := h.track(t)
	return tr.Peak
}

func (h *Host) IsArmed(t int) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	tr, _ := h.track(t)
	return tr.Armed
}

func (h *Host) IsSolo(t int) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	tr, _ := h.track(t)
	return tr.Solo
}

func (h *Host) IsEnabled(t int) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	tr, _ := h.track(t)
	return tr.Enabled
}

func (h *Host) RecordingFile(t int) string {
	h.mu.Lock()
	defer h.mu.Unlock()
	tr, _ := h.track(t)
	return tr.RecordingFile
}

func (h *Host) SelectedTrack() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.Selected
}

func (h *Host) PluginValid(track, s int) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.Plugins[slot{track, s}].Valid
}

func (h *Host) PluginAutomated(track, s int) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.Plugins[slot{track, s}].Automated
}

func (h *Host) RouteActive(from, to int) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.Routes[route{from, to}]
}

func (h *Host) ParamValue(id daw.ParamID) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.Params[id]
}

func (h *Host) ParamName(id daw.ParamID) string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if s, ok := h.ParamNames[id]; ok {
		return s
	}
	return id.String()
}

func (h *Host) ParamValueString(id daw.ParamID, value int) string {
	return fmt.Sprintf("%d", value)
}

// TransportState

func (h *Host) IsPlaying() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.Playing
}

func (h *Host) IsRecording() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.Recording
}

func (h *Host) LoopPattern() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.PatternMode
}

func (h *Host) SongPosition() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.Position
}

func (h *Host) Time() daw.Time {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.Clock
}

func (h *Host) Changed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.ChangedFlag
}

func (h *Host) Metronome() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.MetronomeOn
}

func (h *Host) Precount() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.PrecountOn
}

// UIState

func (h *Host) Focused(w daw.Window) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.FocusedWindows[w]
}

func (h *Host) FocusedCaption() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.Caption
}

func (h *Host) TimeDisplayMinutes() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.Minutes
}

func (h *Host) SnapMode() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.Snap
}

func (h *Host) Hint() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.HintText
}

func (h *Host) SelectionName(s daw.Selector) string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.Selections[s]
}

func (h *Host) UndoLevel() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.UndoText
}

func (h *Host) ProgramTitle() string { return h.Title }
func (h *Host) Version() string      { return h.Ver }

func (h *Host) Closing() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.IsClosing
}

// RemoteState

func (h *Host) RemoteValue(id int) (float64, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	v, ok := h.Remote[id]
	return v, ok
}
