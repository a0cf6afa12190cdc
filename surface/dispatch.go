package surface

import (
	"fmt"
	"math"

	"github.com/jdginn/fltouch/daw"
	"github.com/jdginn/fltouch/devices/mcu"
)

// HandleMIDI processes one decoded event from the unit (or, for extenders, from the master).
// It reports false for events the surface does not use so that callers may pass them on.
func (c *Controller) HandleMIDI(ev mcu.Event, src mcu.Source) (bool, error) {
	switch e := ev.(type) {
	case mcu.ControlChange:
		return c.handleCC(e), nil
	case mcu.PitchBend:
		return c.handlePitchBend(e), nil
	case mcu.NoteOn:
		return c.handleNote(e, src)
	}
	return false, nil
}

func (c *Controller) handleCC(e mcu.ControlChange) bool {
	if e.IsJog() {
		if !c.caps.JogWheel {
			return false
		}
		c.jog(e.Delta())
		return true
	}
	if !e.IsEncoder() {
		return false
	}
	i := int(e.Controller - mcu.EncoderCC1)
	delta := e.Delta()
	if !c.page.Is(mcu.Free) {
		c.turnKnob(i, delta, mcu.Resolution(delta))
		return true
	}

	t := c.tracks[i]
	id := t.Base
	if t.Held {
		id++
	}
	c.message(fmt.Sprintf("Free knob %d: %s%d", id, sign(delta), max(delta, -delta)))
	c.exec(daw.RemoteCC{ID: c.remoteID(id), Value: delta, Kind: daw.RemoteIncrement})
	c.exec(daw.RefreshTrack{Track: t.Num})
	return true
}

// turnKnob nudges the knob parameter of slot n.
func (c *Controller) turnKnob(n, delta int, res float64) {
	t := c.tracks[n]
	if t.Knob < 0 || t.Mode >= mcu.KnobOff {
		return
	}
	c.exec(daw.ParamNudge{ID: t.Knob, Delta: delta, Resolution: res, Smooth: c.smooth})
	c.knobMessage(t)
}

// pressKnob resets the knob of slot n, or toggles its press parameter where it has one.
func (c *Controller) pressKnob(n int) {
	t := c.tracks[n]
	if t.Knob < 0 || t.Mode >= mcu.KnobOff {
		return
	}
	if c.page.Is(mcu.Effects) {
		// Effect knobs have no reset. An empty slot has nothing to press either.
		if t.KnobPress >= 0 {
			c.exec(daw.ParamToggle{ID: t.KnobPress})
			c.message(c.host.ParamName(t.KnobPress))
		}
		return
	}
	if t.KnobReset < 0 {
		return
	}
	c.exec(daw.ParamSet{ID: t.KnobReset, Value: t.ResetValue, Smooth: c.smooth})
	c.knobMessage(t)
}

func (c *Controller) knobMessage(t Track) {
	s := c.host.ParamValueString(t.Knob, c.host.ParamValue(t.Knob))
	if s != "" {
		s = ": " + s
	}
	c.message(t.KnobName + s)
}

func (c *Controller) handlePitchBend(e mcu.PitchBend) bool {
	ch := int(e.Channel)
	if ch >= len(c.tracks) {
		return false
	}
	t := c.tracks[ch]

	if c.page.Is(mcu.Free) {
		c.freeCtrl[t.Num] = int(e.Value)
		c.exec(daw.RefreshTrack{Track: t.Num})
		id := t.Base + freeSlider
		c.message(fmt.Sprintf("Free slider %d: %d%%", id, int(math.RoundToEven(float64(e.Value)/0x3FFF*100))))
		value := int(float64(e.Value>>7) / 127 * daw.RemoteMax)
		c.exec(daw.RemoteCC{ID: c.remoteID(id), Value: value, Kind: daw.RemoteAbsolute})
		return true
	}
	if t.Slider < 0 {
		return false
	}
	c.exec(daw.ParamSet{ID: t.Slider, Value: mcu.FromMcuFader(e.Value, daw.MaxValue), Smooth: c.smooth})
	s := c.host.ParamValueString(t.Slider, c.host.ParamValue(t.Slider))
	if s != "" {
		s = ": " + s
	}
	c.message(t.SliderName + s)
	return true
}

func isFaderTouch(b mcu.Button) bool {
	return (b >= mcu.Slider_1 && b <= mcu.Slider_8) || b == mcu.Slider_Main
}

func (c *Controller) handleNote(e mcu.NoteOn, src mcu.Source) (bool, error) {
	b, pressed := e.Key, e.Pressed()

	if c.role == Extender && src == mcu.FromDispatch && b == mcu.FirstTrackKey {
		return true, c.setFirstTrack(int(e.Velocity))
	}

	if isFaderTouch(b) {
		if b != mcu.Slider_Main && pressed && (c.page.Is(mcu.Pan) || c.page.Is(mcu.Stereo)) {
			col, _ := b.Column()
			if col < len(c.tracks) && c.host.SelectedTrack() != c.tracks[col].Num {
				c.exec(daw.SelectTrack{Track: c.tracks[col].Num})
			}
		}
		return true, nil
	}

	// Shift turns the function row into F1..F8.
	if c.caps.MasterSection && c.shift && b >= mcu.Cut && b <= mcu.UndoRedo {
		c.exec(daw.TransportAction{Action: daw.ActF1 + daw.Action(b-mcu.Cut), Value: daw.Press(pressed)})
		return true, nil
	}

	switch {
	case b == mcu.NameValue:
		if pressed && c.caps.MasterSection {
			if c.shift {
				return true, c.toggleSide()
			}
			c.exec(daw.TransportAction{Action: daw.ActF2, Value: daw.Press(pressed)})
		}
		return true, nil

	case b == mcu.FaderBankLeft || b == mcu.FaderBankRight:
		if !pressed {
			return true, nil
		}
		step := -8
		if b == mcu.FaderBankRight {
			step = 8
		}
		err := c.setFirstTrack(c.FirstTrack() + step)
		c.forward(e)
		return true, err

	case b == mcu.FaderChannelLeft || b == mcu.FaderChannelRight:
		if !pressed {
			return true, nil
		}
		step := -1
		if b == mcu.FaderChannelRight {
			step = 1
		}
		err := c.setFirstTrack(c.FirstTrack() + step)
		c.forward(e)
		return true, err

	case b == mcu.Flip:
		if !pressed {
			return true, nil
		}
		c.flip = !c.flip
		c.forward(e)
		c.recompute()
		c.exec(daw.RefreshTrack{Track: -1})
		return true, c.updateMasterSectionLEDs()

	case b.IsPage():
		if !pressed {
			return true, nil
		}
		p := b.Page()
		c.message(p.Description())
		var err error
		if p != c.page.Current() || c.role == Extender {
			err = c.setPage(p)
		}
		c.forward(e)
		return true, err

	case b >= mcu.Encoder_1 && b <= mcu.Encoder_8:
		c.pushEncoder(int(b-mcu.Encoder_1), pressed)
		return true, nil

	case b <= mcu.Select_8:
		if c.page.Is(mcu.Free) {
			c.freeButton(b, pressed)
			return true, nil
		}
		if pressed {
			c.columnButton(b)
		}
		return true, nil

	case b == mcu.LinkChannel:
		if pressed {
			c.exec(daw.LinkChannels{StartingFromThis: c.shift})
		}
		return true, nil
	}

	if !c.caps.MasterSection {
		return false, nil
	}
	return c.handleMasterButton(e)
}

func (c *Controller) pushEncoder(i int, pressed bool) {
	t := &c.tracks[i]
	if c.page.Is(mcu.Free) {
		t.Held = pressed
		if pressed {
			id := t.Base + freeKnobSwitch
			c.message(fmt.Sprintf("Free knob switch %d", id))
			c.exec(daw.RemoteCC{ID: c.remoteID(id), Kind: daw.RemoteToggle})
		}
		c.tracks[i] = c.assign(i)
		c.exec(daw.RefreshTrack{Track: t.Num})
		return
	}
	if !pressed {
		return
	}
	if c.page.Is(mcu.Sends) {
		if !c.exec(daw.RouteToggle{From: c.host.SelectedTrack(), To: t.Num}) {
			c.message("Cannot send to this track")
		}
		return
	}
	c.pressKnob(i)
}

// freeButton forwards a column button on the Free page as a generic control.
func (c *Controller) freeButton(b mcu.Button, pressed bool) {
	t := c.tracks[int(b)%8]
	id := t.Base + freeButtons + int(b)/8
	value := 0
	if pressed {
		value = daw.RemoteMax
	}
	c.message(fmt.Sprintf("Free button %d: %s", id, offOnStr(pressed)))
	c.exec(daw.RemoteCC{ID: c.remoteID(id), Value: value, Kind: daw.RemoteAbsolute})
	c.exec(daw.RefreshTrack{Track: t.Num})
}

// columnButton handles the arm, solo, mute and select buttons of a column.
func (c *Controller) columnButton(b mcu.Button) {
	col, _ := b.Column()
	num := c.tracks[col].Num
	switch {
	case b >= mcu.Select_1:
		c.exec(daw.ShowWindow{Window: daw.Mixer})
		c.exec(daw.SelectTrack{Track: num})
	case b >= mcu.Mute_1:
		c.exec(daw.TrackToggle{Track: num, Property: daw.TrackEnable})
	case b >= mcu.Solo_1:
		c.exec(daw.TrackToggle{Track: num, Property: daw.TrackSolo})
		c.exec(daw.SelectTrack{Track: num})
	default:
		c.exec(daw.TrackToggle{Track: num, Property: daw.TrackArm})
		name := c.host.TrackName(num)
		if c.host.IsArmed(num) {
			c.message(name + " recording to " + c.host.RecordingFile(num))
		} else {
			c.message(name + " unarmed")
		}
	}
}
