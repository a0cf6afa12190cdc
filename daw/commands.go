package daw

import "fmt"

// Mutator applies changes to the DAW. It is implemented by DAW bridges; the surface only
// reaches it through Command values.
type Mutator interface {
	Automate(id ParamID, value int, smooth int)
	Nudge(id ParamID, delta int, resolution float64, smooth int)
	ToggleParam(id ParamID)
	SelectTrack(track int)
	ShowWindow(w Window, focus bool)
	ToggleTrack(track int, p TrackProperty)
	// ToggleRoute toggles the send from one track to another; false when the route is impossible.
	ToggleRoute(from, to int) bool
	SetPlaybackSpeed(speed float64)
	SetSongPosition(ticks int)
	// GlobalTransport runs a transport action; true when the DAW handled it globally and has
	// a hint to show.
	GlobalTransport(a Action, value int) bool
	ProcessRemote(id int, value int, kind RemoteKind)
	StepSelection(s Selector, delta int)
	LinkChannels(startingFromThis bool)
	SelectBrowserItem()
	LaunchAudioEditor(track int)
	ToggleTimeDisplay()
	// RefreshTrack asks the DAW to mark track dirty and request a controls refresh (-1 = all).
	RefreshTrack(track int)
}

// Command is one explicit DAW mutation produced by the surface. Execute reports the
// command's boolean result where it has one, and true otherwise.
type Command interface {
	Execute(m Mutator) bool
	String() string
}

// ParamSet automates id to an absolute value.
type ParamSet struct {
	ID     ParamID
	Value  int
	Smooth int
}

func (c ParamSet) Execute(m Mutator) bool {
	m.Automate(c.ID, c.Value, c.Smooth)
	return true
}

func (c ParamSet) String() string {
	return fmt.Sprintf("set %s=%d", c.ID, c.Value)
}

// ParamNudge moves id by Delta steps of Resolution (fraction of full scale).
type ParamNudge struct {
	ID         ParamID
	Delta      int
	Resolution float64
	Smooth     int
}

func (c ParamNudge) Execute(m Mutator) bool {
	m.Nudge(c.ID, c.Delta, c.Resolution, c.Smooth)
	return true
}

func (c ParamNudge) String() string {
	return fmt.Sprintf("nudge %s by %d@%.4f", c.ID, c.Delta, c.Resolution)
}

// ParamToggle flips a switch parameter between 0 and full scale.
type ParamToggle struct {
	ID ParamID
}

func (c ParamToggle) Execute(m Mutator) bool {
	m.ToggleParam(c.ID)
	return true
}

func (c ParamToggle) String() string {
	return fmt.Sprintf("toggle %s", c.ID)
}

// TransportAction runs a global transport action.
type TransportAction struct {
	Action Action
	Value  int
}

func (c TransportAction) Execute(m Mutator) bool {
	return m.GlobalTransport(c.Action, c.Value)
}

func (c TransportAction) String() string {
	return fmt.Sprintf("transport %s(%d)", c.Action, c.Value)
}

// RemoteCC feeds a generic remote control.
type RemoteCC struct {
	ID    int
	Value int
	Kind  RemoteKind
}

func (c RemoteCC) Execute(m Mutator) bool {
	m.ProcessRemote(c.ID, c.Value, c.Kind)
	return true
}

func (c RemoteCC) String() string {
	return fmt.Sprintf("remote %d=%d kind=%d", c.ID, c.Value, c.Kind)
}

// TrackToggle flips solo, arm or enable of a track.
type TrackToggle struct {
	Track    int
	Property TrackProperty
}

func (c TrackToggle) Execute(m Mutator) bool {
	m.ToggleTrack(c.Track, c.Property)
	return true
}

func (c TrackToggle) String() string {
	return fmt.Sprintf("toggle track %d %s", c.Track, c.Property)
}

// SelectTrack makes Track the selected mixer track.
type SelectTrack struct {
	Track int
}

func (c SelectTrack) Execute(m Mutator) bool {
	m.SelectTrack(c.Track)
	return true
}

func (c SelectTrack) String() string {
	return fmt.Sprintf("select track %d", c.Track)
}

// ShowWindow shows, and optionally focuses, a window.
type ShowWindow struct {
	Window Window
	Focus  bool
}

func (c ShowWindow) Execute(m Mutator) bool {
	m.ShowWindow(c.Window, c.Focus)
	return true
}

func (c ShowWindow) String() string {
	return fmt.Sprintf("show %s focus=%t", c.Window, c.Focus)
}

// RouteToggle toggles the send From -> To.
type RouteToggle struct {
	From, To int
}

func (c RouteToggle) Execute(m Mutator) bool {
	return m.ToggleRoute(c.From, c.To)
}

func (c RouteToggle) String() string {
	return fmt.Sprintf("route %d->%d", c.From, c.To)
}

// PlaybackSpeed changes the playback speed multiplier.
type PlaybackSpeed struct {
	Speed float64
}

func (c PlaybackSpeed) Execute(m Mutator) bool {
	m.SetPlaybackSpeed(c.Speed)
	return true
}

func (c PlaybackSpeed) String() string {
	return fmt.Sprintf("speed %.2f", c.Speed)
}

// SongPosition moves the playhead to an absolute tick.
type SongPosition struct {
	Ticks int
}

func (c SongPosition) Execute(m Mutator) bool {
	m.SetSongPosition(c.Ticks)
	return true
}

func (c SongPosition) String() string {
	return fmt.Sprintf("position %d", c.Ticks)
}

// StepSelection moves the selected pattern, mixer track or channel by Delta.
type StepSelection struct {
	Selector Selector
	Delta    int
}

func (c StepSelection) Execute(m Mutator) bool {
	m.StepSelection(c.Selector, c.Delta)
	return true
}

func (c StepSelection) String() string {
	return fmt.Sprintf("step %s by %d", c.Selector, c.Delta)
}

// TimeFormatToggle switches the time display between bars and minutes.
type TimeFormatToggle struct{}

func (TimeFormatToggle) Execute(m Mutator) bool {
	m.ToggleTimeDisplay()
	return true
}

func (TimeFormatToggle) String() string { return "time format" }

// LinkChannels routes the selected channels to the selected mixer track.
type LinkChannels struct {
	StartingFromThis bool
}

func (c LinkChannels) Execute(m Mutator) bool {
	m.LinkChannels(c.StartingFromThis)
	return true
}

func (c LinkChannels) String() string {
	return fmt.Sprintf("link channels from=%t", c.StartingFromThis)
}

// BrowserSelect opens the focused browser item.
type BrowserSelect struct{}

func (BrowserSelect) Execute(m Mutator) bool {
	m.SelectBrowserItem()
	return true
}

func (BrowserSelect) String() string { return "browser select" }

// AudioEditor opens the audio editor on Track.
type AudioEditor struct {
	Track int
}

func (c AudioEditor) Execute(m Mutator) bool {
	m.LaunchAudioEditor(c.Track)
	return true
}

func (c AudioEditor) String() string {
	return fmt.Sprintf("audio editor %d", c.Track)
}

// RefreshTrack asks for a redraw of everything bound to Track (-1 = all).
type RefreshTrack struct {
	Track int
}

func (c RefreshTrack) Execute(m Mutator) bool {
	m.RefreshTrack(c.Track)
	return true
}

func (c RefreshTrack) String() string {
	return fmt.Sprintf("refresh track %d", c.Track)
}
