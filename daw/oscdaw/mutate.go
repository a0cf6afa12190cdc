package oscdaw

import (
	"fmt"

	"github.com/jdginn/fltouch/daw"
)

var selectorNames = map[daw.Selector]string{
	daw.SelectPattern:    "pattern",
	daw.SelectMixerTrack: "mixer",
	daw.SelectChannel:    "channel",
}

func (b *Bridge) send(addr string, args ...any) {
	b.sent(addr, b.dev.Send(addr, args...))
}

func (b *Bridge) sent(addr string, err error) {
	if err != nil {
		b.log.Error("Failed to send mutation", "addr", addr, "err", err)
	}
}

func boolArg(v bool) int64 {
	if v {
		return 1
	}
	return 0
}

func (b *Bridge) Automate(id daw.ParamID, value int, smooth int) {
	b.send(fmt.Sprintf("/param/%d/set", id), int32(value), int32(smooth))
}

func (b *Bridge) Nudge(id daw.ParamID, delta int, resolution float64, smooth int) {
	b.send(fmt.Sprintf("/param/%d/nudge", id), int32(delta), int32(smooth), float32(resolution))
}

func (b *Bridge) ToggleParam(id daw.ParamID) {
	b.send(fmt.Sprintf("/param/%d/toggle", id))
}

func (b *Bridge) SelectTrack(track int) {
	b.send(fmt.Sprintf("/track/%d/select", track))
}

func (b *Bridge) ShowWindow(w daw.Window, focus bool) {
	verb := "show"
	if focus {
		verb = "focus"
	}
	b.send(fmt.Sprintf("/window/%s/%s", w, verb))
}

func (b *Bridge) ToggleTrack(track int, p daw.TrackProperty) {
	b.send(fmt.Sprintf("/track/%d/toggle/%s", track, p))
}

// ToggleRoute sends the toggle for every route between two distinct tracks. Whether the DAW
// accepted it shows up later as /track/@/send/@/active.
func (b *Bridge) ToggleRoute(from, to int) bool {
	if from == to || from < 0 || to < 0 {
		return false
	}
	b.send(fmt.Sprintf("/track/%d/route/%d", from, to))
	return true
}

func (b *Bridge) SetPlaybackSpeed(speed float64) {
	b.sent("/transport/speed", b.dev.SetFloat("/transport/speed", speed))
}

func (b *Bridge) SetSongPosition(ticks int) {
	b.sent("/transport/position/set", b.dev.SetInt("/transport/position/set", int64(ticks)))
}

// GlobalTransport forwards the action. The DAW updates its hint asynchronously, so every
// forwarded action counts as handled.
func (b *Bridge) GlobalTransport(a daw.Action, value int) bool {
	b.send("/transport/action", int32(a), int32(value))
	return true
}

func (b *Bridge) ProcessRemote(id int, value int, kind daw.RemoteKind) {
	b.send(fmt.Sprintf("/remote/%d", id), int32(value), int32(kind))
}

func (b *Bridge) StepSelection(s daw.Selector, delta int) {
	b.send(fmt.Sprintf("/selection/%s/step", selectorNames[s]), int32(delta))
}

func (b *Bridge) LinkChannels(startingFromThis bool) {
	b.sent("/mixer/link", b.dev.SetInt("/mixer/link", boolArg(startingFromThis)))
}

func (b *Bridge) SelectBrowserItem() {
	b.send("/browser/select")
}

func (b *Bridge) LaunchAudioEditor(track int) {
	b.send(fmt.Sprintf("/track/%d/audioeditor", track))
}

func (b *Bridge) ToggleTimeDisplay() {
	b.send("/ui/timeformat")
}

func (b *Bridge) RefreshTrack(track int) {
	b.send("/refresh/request", int32(track))
}
