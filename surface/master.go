package surface

import (
	"errors"

	"github.com/jdginn/fltouch/daw"
	"github.com/jdginn/fltouch/devices/mcu"
)

var cutCopyNames = [5]string{"Cut", "Copy", "Paste", "Insert", "Delete"}

// handleMasterButton handles the transport and function buttons only the master has.
func (c *Controller) handleMasterButton(e mcu.NoteOn) (bool, error) {
	b, pressed := e.Key, e.Pressed()
	press := daw.Press(pressed)
	var errs error

	switch {
	case b == mcu.TimeFormat:
		if pressed {
			c.exec(daw.TimeFormatToggle{})
		}

	case b == mcu.Smooth:
		if pressed {
			if c.smooth == 0 {
				c.smooth = c.opts.SmoothSpeed
			} else {
				c.smooth = 0
			}
			errs = c.updateMasterSectionLEDs()
			c.message("Control smoothing " + offOnStr(c.smooth > 0))
		}

	case b == mcu.Scrub:
		if pressed {
			c.scrub = !c.scrub
			errs = c.updateMasterSectionLEDs()
		}

	case b.IsJogSource():
		if b == mcu.Zoom && pressed && c.host.Focused(daw.Browser) {
			c.exec(daw.BrowserSelect{})
		}
		if b == mcu.Zoom || b == mcu.Window {
			errs = c.dev.Echo(b, e.Velocity)
		}
		if !pressed {
			if c.jogSource == b {
				c.jogSource = mcu.NoButton
			}
			break
		}
		c.jogSource = b
		c.jog(0)

	case b.IsArrow():
		if c.jogSource == mcu.NoButton {
			c.exec(daw.TransportAction{Action: daw.ActUp + daw.Action(b-mcu.Up), Value: press})
		} else if pressed {
			c.jog(mcu.ArrowStep[b-mcu.Up])
		}

	case b == mcu.Shift:
		c.shift = pressed
		errs = c.dev.Echo(b, e.Velocity)

	case b == mcu.Edison:
		errs = c.dev.Echo(b, e.Velocity)
		if pressed {
			c.exec(daw.AudioEditor{Track: c.host.SelectedTrack()})
			c.message("Audio editor ready")
		}

	case b == mcu.Metronome:
		if !pressed {
			break
		}
		if c.shift {
			c.clicking = !c.clicking
			errs = c.dev.SetClicking(c.clicking)
			c.message("Clicking " + offOnStr(c.clicking))
		} else {
			c.exec(daw.TransportAction{Action: daw.ActMetronome, Value: 1})
		}

	case b == mcu.CountDown:
		if pressed {
			c.exec(daw.TransportAction{Action: daw.ActCountDown, Value: 1})
		}

	case b >= mcu.Cut && b <= mcu.Delete:
		c.exec(daw.TransportAction{Action: daw.ActCut + daw.Action(b-mcu.Cut), Value: press})
		if pressed {
			c.message(cutCopyNames[b-mcu.Cut])
		}

	case b == mcu.Rewind || b == mcu.FastForward:
		if c.shift {
			speed := 1.0
			switch {
			case !pressed:
			case b == mcu.Rewind:
				speed = 0.5
			default:
				speed = 2
			}
			c.exec(daw.PlaybackSpeed{Speed: speed})
		} else {
			a := daw.ActRewind
			if b == mcu.FastForward {
				a = daw.ActFastForward
			}
			c.exec(daw.TransportAction{Action: a, Value: press})
		}
		errs = c.dev.Echo(b, e.Velocity)

	case b == mcu.Stop:
		c.exec(daw.TransportAction{Action: daw.ActStop, Value: press})
	case b == mcu.Play:
		c.exec(daw.TransportAction{Action: daw.ActPlay, Value: press})
	case b == mcu.Record:
		c.exec(daw.TransportAction{Action: daw.ActRecord, Value: press})
	case b == mcu.SongVSLoop:
		c.exec(daw.TransportAction{Action: daw.ActLoop, Value: press})
	case b == mcu.Mode:
		c.exec(daw.TransportAction{Action: daw.ActMode, Value: press})
		errs = c.dev.Echo(b, e.Velocity)

	case b == mcu.Snap:
		if !c.shift {
			c.exec(daw.TransportAction{Action: daw.ActSnap, Value: press})
		} else if pressed {
			c.exec(daw.TransportAction{Action: daw.ActSnapMode, Value: 1})
		}

	case b == mcu.Escape:
		a := daw.ActEscape
		if c.shift {
			a = daw.ActNo
		}
		c.exec(daw.TransportAction{Action: a, Value: press})
	case b == mcu.Enter:
		a := daw.ActEnter
		if c.shift {
			a = daw.ActYes
		}
		c.exec(daw.TransportAction{Action: a, Value: press})

	case b == mcu.Browser:
		if pressed {
			c.exec(daw.ShowWindow{Window: daw.Browser})
		}
	case b == mcu.StepSequencer:
		if pressed {
			c.exec(daw.ShowWindow{Window: daw.ChannelRack})
		}

	case b == mcu.Menu:
		c.exec(daw.TransportAction{Action: daw.ActMenu, Value: press})
		if pressed {
			c.message("Menu")
		}
	case b == mcu.ItemMenu:
		c.exec(daw.TransportAction{Action: daw.ActItemMenu, Value: press})
		if pressed {
			c.message("Tools")
		}
	case b == mcu.UndoRedo:
		if c.exec(daw.TransportAction{Action: daw.ActUndo, Value: press}) && pressed {
			c.message(c.host.Hint() + " (level " + c.host.UndoLevel() + ")")
		}

	case b == mcu.In || b == mcu.Out || b == mcu.Select:
		errs = c.punch(e)

	case b == mcu.AddMarker:
		a := daw.ActAddMarker
		if c.shift {
			a = daw.ActAddMarkerAndName
		}
		if c.exec(daw.TransportAction{Action: a, Value: press}) && pressed {
			c.message(c.host.Hint())
		}

	case b == mcu.Save:
		a := daw.ActSave
		if c.shift {
			a = daw.ActSaveNew
		}
		c.exec(daw.TransportAction{Action: a, Value: press})

	default:
		return false, nil
	}
	return true, errs
}

// punch handles punch in, punch out and the punch button. Punch out and punch clear the
// punch-in LED.
func (c *Controller) punch(e mcu.NoteOn) error {
	b, pressed := e.Key, e.Pressed()
	a := daw.ActPunch
	switch b {
	case mcu.In:
		a = daw.ActPunchIn
	case mcu.Out:
		a = daw.ActPunchOut
	}
	var errs error
	if b != mcu.In || pressed {
		errs = c.dev.Echo(b, e.Velocity)
	}
	if b == mcu.Select || (b == mcu.Out && pressed) {
		errs = errors.Join(errs, c.dev.SendLED(mcu.In, mcu.LEDOff))
	}
	if c.exec(daw.TransportAction{Action: a, Value: daw.Press(pressed)}) {
		show := pressed
		if a == daw.ActPunch {
			show = e.Velocity != 1
		}
		if show {
			c.message(c.host.Hint())
		}
	}
	return errs
}
