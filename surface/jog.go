package surface

import (
	"fmt"

	"github.com/jdginn/fltouch/daw"
	"github.com/jdginn/fltouch/devices/mcu"
)

var selectors = map[mcu.Button]struct {
	sel    daw.Selector
	window daw.Window
}{
	mcu.Pattern:  {daw.SelectPattern, daw.Playlist},
	mcu.Mixer:    {daw.SelectMixerTrack, daw.Mixer},
	mcu.Channels: {daw.SelectChannel, daw.ChannelRack},
}

// jog routes a jog wheel turn (or an arrow step) to whatever the active jog source drives.
// delta 0 only refreshes the feedback message.
func (c *Controller) jog(delta int) {
	switch src := c.jogSource; src {
	case mcu.NoButton:
		if c.host.Focused(daw.Browser) {
			c.exec(daw.TransportAction{Action: daw.ActJog, Value: delta})
			return
		}
		c.exec(daw.ShowWindow{Window: daw.Playlist, Focus: true})
		if c.scrub {
			step := 10
			if c.shift {
				step = 1
			}
			c.exec(daw.SongPosition{Ticks: c.host.SongPosition() + delta*step})
			return
		}
		c.exec(daw.TransportAction{Action: daw.ActJog, Value: delta})

	case mcu.Move:
		c.exec(daw.TransportAction{Action: daw.ActMoveJog, Value: delta})

	case mcu.Marker:
		c.exec(daw.ShowWindow{Window: daw.Playlist, Focus: true})
		s, a := "Marker jump", daw.ActMarkerJumpJog
		if c.shift {
			s, a = "Marker selection", daw.ActMarkerSelJog
		}
		if delta != 0 && c.exec(daw.TransportAction{Action: a, Value: delta}) {
			s = c.host.Hint()
		}
		c.message(arrows + s)

	case mcu.Undo:
		s := "Undo history"
		if delta != 0 && c.exec(daw.TransportAction{Action: daw.ActUndoJog, Value: delta}) {
			s = c.host.Hint()
		}
		c.message(arrows + s + " (level " + c.host.UndoLevel() + ")")

	case mcu.Zoom:
		if delta != 0 {
			a := daw.ActHZoomJog
			if c.shift {
				a = daw.ActVZoomJog
			}
			c.exec(daw.TransportAction{Action: a, Value: delta})
		}

	case mcu.Window:
		if delta != 0 {
			c.exec(daw.TransportAction{Action: daw.ActWindowJog, Value: delta})
		}
		if s := c.host.FocusedCaption(); s != "" {
			c.message(arrows + "Current window: " + s)
		}

	case mcu.Pattern, mcu.Mixer, mcu.Channels:
		target := selectors[src]
		c.exec(daw.StepSelection{Selector: target.sel, Delta: delta})
		c.message(arrows + target.sel.String() + ": " + c.host.SelectionName(target.sel))
		c.exec(daw.ShowWindow{Window: target.window, Focus: true})

	case mcu.Tempo:
		if delta != 0 {
			c.exec(daw.ParamNudge{ID: daw.Tempo, Delta: delta, Resolution: mcu.Resolution(1)})
		}
		c.message(arrows + "Tempo: " + c.host.ParamValueString(daw.Tempo, c.host.ParamValue(daw.Tempo)))

	case mcu.Free1, mcu.Free2, mcu.Free3, mcu.Free4:
		id := FreeJogID + int(src-mcu.Free1)
		if delta == 0 {
			c.message(fmt.Sprintf("%sFree jog %d", arrows, id))
			return
		}
		c.message(fmt.Sprintf("%sFree jog %d: %s", arrows, id, sign(delta)))
		c.exec(daw.RemoteCC{ID: c.remoteID(id), Value: delta, Kind: daw.RemoteIncrement})
	}
}

func sign(delta int) string {
	if delta < 0 {
		return "-"
	}
	return "+"
}
