package oscdaw

import (
	"fmt"
	"strconv"

	"github.com/jdginn/fltouch/daw"
)

// tempoScale is the fixed-point scale tempo is reported with through ParamValue.
const tempoScale = 1000

// MixerState

func (b *Bridge) TrackCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.s.trackCount
}

// readTrack returns a copy of the cached state of t.
func (b *Bridge) readTrack(t int) trackState {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if ts, ok := b.s.tracks[t]; ok {
		return *ts
	}
	return trackState{color: defaultColor, enabled: true}
}

func (b *Bridge) TrackName(t int) string     { return b.readTrack(t).name }
func (b *Bridge) TrackColor(t int) int       { return b.readTrack(t).color }
func (b *Bridge) TrackPeak(t int) float64    { return b.readTrack(t).peak }
func (b *Bridge) IsArmed(t int) bool         { return b.readTrack(t).armed }
func (b *Bridge) IsSolo(t int) bool          { return b.readTrack(t).solo }
func (b *Bridge) IsEnabled(t int) bool       { return b.readTrack(t).enabled }
func (b *Bridge) RecordingFile(t int) string { return b.readTrack(t).file }

func (b *Bridge) SelectedTrack() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.s.selected
}

func (b *Bridge) PluginValid(track, slot int) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.s.plugins[pair{track, slot}][0]
}

func (b *Bridge) PluginAutomated(track, slot int) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.s.plugins[pair{track, slot}][1]
}

func (b *Bridge) RouteActive(from, to int) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.s.sends[pair{from, to}]
}

func (b *Bridge) ParamValue(id daw.ParamID) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if id == daw.Tempo {
		return int(b.s.tempo * tempoScale)
	}
	if p, ok := b.s.params[id]; ok {
		return p.value
	}
	return 0
}

func (b *Bridge) ParamName(id daw.ParamID) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if p, ok := b.s.params[id]; ok && p.name != "" {
		return p.name
	}
	return id.String()
}

// ParamValueString returns the DAW's own rendering of the parameter's current value. Values
// other than the current one are shown as plain numbers.
func (b *Bridge) ParamValueString(id daw.ParamID, value int) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if id == daw.Tempo {
		return fmt.Sprintf("%.2f BPM", float64(value)/tempoScale)
	}
	if p, ok := b.s.params[id]; ok && p.value == value && p.str != "" {
		return p.str
	}
	return strconv.Itoa(value)
}

// TransportState

func (b *Bridge) IsPlaying() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.s.playing
}

func (b *Bridge) IsRecording() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.s.recording
}

func (b *Bridge) LoopPattern() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.s.loopMode == 0
}

func (b *Bridge) SongPosition() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.s.position
}

func (b *Bridge) Time() daw.Time {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.s.time
}

func (b *Bridge) flag(name string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.s.flags[name]
}

func (b *Bridge) Changed() bool   { return b.flag("changed") }
func (b *Bridge) Metronome() bool { return b.flag("metronome") }
func (b *Bridge) Precount() bool  { return b.flag("precount") }

// UIState

func (b *Bridge) Focused(w daw.Window) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.s.focus[w.String()]
}

func (b *Bridge) uiString(key string) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.s.ui[key]
}

func (b *Bridge) FocusedCaption() string   { return b.uiString("caption") }
func (b *Bridge) TimeDisplayMinutes() bool { return b.flag("timemin") }
func (b *Bridge) Hint() string             { return b.uiString("hint") }
func (b *Bridge) UndoLevel() string        { return b.uiString("undo") }
func (b *Bridge) ProgramTitle() string     { return b.uiString("title") }
func (b *Bridge) Version() string          { return b.uiString("version") }

func (b *Bridge) SnapMode() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.s.snap
}

func (b *Bridge) SelectionName(s daw.Selector) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.s.selection[selectorNames[s]]
}

func (b *Bridge) Closing() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.s.closing
}

// RemoteState

func (b *Bridge) RemoteValue(id int) (float64, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	v, ok := b.s.remote[id]
	return v, ok
}
