package dawtest

import (
	"slices"

	"github.com/jdginn/fltouch/daw"
)

func clamp(v int) int {
	return max(0, min(v, daw.MaxValue))
}

func (h *Host) Automate(id daw.ParamID, value int, smooth int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Params[id] = clamp(value)
	h.record(daw.ParamSet{ID: id, Value: value, Smooth: smooth})
}

func (h *Host) Nudge(id daw.ParamID, delta int, resolution float64, smooth int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Params[id] = clamp(h.Params[id] + int(float64(delta)*resolution*daw.MaxValue))
	h.record(daw.ParamNudge{ID: id, Delta: delta, Resolution: resolution, Smooth: smooth})
}

func (h *Host) ToggleParam(id daw.ParamID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.Params[id] > 0 {
		h.Params[id] = 0
	} else {
		h.Params[id] = daw.MaxValue
	}
	h.record(daw.ParamToggle{ID: id})
}

func (h *Host) SelectTrack(t int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Selected = t
	h.record(daw.SelectTrack{Track: t})
}

func (h *Host) ShowWindow(w daw.Window, focus bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if focus {
		for k := range h.FocusedWindows {
			h.FocusedWindows[k] = false
		}
		h.FocusedWindows[w] = true
	}
	h.record(daw.ShowWindow{Window: w, Focus: focus})
}

func (h *Host) ToggleTrack(t int, p daw.TrackProperty) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if t >= 0 && t < len(h.Tracks) {
		tr := &h.Tracks[t]
		switch p {
		case daw.TrackSolo:
			tr.Solo = !tr.Solo
		case daw.TrackArm:
			tr.Armed = !tr.Armed
		case daw.TrackEnable:
			tr.Enabled = !tr.Enabled
		}
	}
	h.record(daw.TrackToggle{Track: t, Property: p})
}

func (h *Host) ToggleRoute(from, to int) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record(daw.RouteToggle{From: from, To: to})
	r := route{from, to}
	if from == to || h.Unroutable[r] {
		return false
	}
	h.Routes[r] = !h.Routes[r]
	return true
}

func (h *Host) SetPlaybackSpeed(speed float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Speed = speed
	h.record(daw.PlaybackSpeed{Speed: speed})
}

func (h *Host) SetSongPosition(ticks int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Position = ticks
	h.record(daw.SongPosition{Ticks: ticks})
}

func (h *Host) GlobalTransport(a daw.Action, value int) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record(daw.TransportAction{Action: a, Value: value})
	return h.GlobalResult
}

func (h *Host) ProcessRemote(id int, value int, kind daw.RemoteKind) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record(daw.RemoteCC{ID: id, Value: value, Kind: kind})
}

func (h *Host) StepSelection(s daw.Selector, delta int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if s == daw.SelectMixerTrack && len(h.Tracks) > 0 {
		h.Selected = ((h.Selected+delta)%len(h.Tracks) + len(h.Tracks)) % len(h.Tracks)
	}
	h.record(daw.StepSelection{Selector: s, Delta: delta})
}

func (h *Host) LinkChannels(startingFromThis bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record(daw.LinkChannels{StartingFromThis: startingFromThis})
}

func (h *Host) SelectBrowserItem() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record(daw.BrowserSelect{})
}

func (h *Host) LaunchAudioEditor(t int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record(daw.AudioEditor{Track: t})
}

func (h *Host) ToggleTimeDisplay() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Minutes = !h.Minutes
	h.record(daw.TimeFormatToggle{})
}

// RefreshTrack records the request and notifies listeners: dirty first, then a controls refresh.
func (h *Host) RefreshTrack(t int) {
	h.mu.Lock()
	h.record(daw.RefreshTrack{Track: t})
	h.mu.Unlock()
	h.NotifyDirty(t)
	h.NotifyRefresh(daw.RefreshControls)
}

// Notifier

func (h *Host) OnDirty(f func(int)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dirty = append(h.dirty, f)
}

func (h *Host) OnRefresh(f func(daw.RefreshFlags)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.refresh = append(h.refresh, f)
}

func (h *Host) OnBeat(f func(int)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.beat = append(h.beat, f)
}

func (h *Host) OnWaiting(f func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.waiting = append(h.waiting, f)
}

func (h *Host) NotifyDirty(t int) {
	h.mu.Lock()
	fs := slices.Clone(h.dirty)
	h.mu.Unlock()
	for _, f := range fs {
		f(t)
	}
}

func (h *Host) NotifyRefresh(flags daw.RefreshFlags) {
	h.mu.Lock()
	fs := slices.Clone(h.refresh)
	h.mu.Unlock()
	for _, f := range fs {
		f(flags)
	}
}

func (h *Host) NotifyBeat(v int) {
	h.mu.Lock()
	fs := slices.Clone(h.beat)
	h.mu.Unlock()
	for _, f := range fs {
		f(v)
	}
}

func (h *Host) NotifyWaiting() {
	h.mu.Lock()
	fs := slices.Clone(h.waiting)
	h.mu.Unlock()
	for _, f := range fs {
		f()
	}
}

var (
	_ daw.Host     = (*Host)(nil)
	_ daw.Notifier = (*Host)(nil)
)
