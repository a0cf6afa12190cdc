package surface

import (
	"fmt"

	"golang.org/x/exp/constraints"

	"github.com/jdginn/fltouch/daw"
	"github.com/jdginn/fltouch/devices/mcu"
)

// wrap returns v modulo n in [0, n). n <= 0 is treated as 1.
func wrap[T constraints.Integer](v, n T) T {
	if n <= 0 {
		n = 1
	}
	return (v%n + n) % n
}

// recompute fills every slot from the page, bank offset, flip state and the DAW's current
// selection, and marks every slot dirty.
func (c *Controller) recompute() {
	for i := range c.tracks {
		c.tracks[i] = c.assign(i)
	}
}

func (c *Controller) assign(m int) Track {
	t := Track{
		Slider:    daw.NoParam,
		Knob:      daw.NoParam,
		KnobPress: daw.NoParam,
		KnobReset: daw.NoParam,
		Held:      c.tracks[m].Held,
		Dirty:     true,
	}
	page := c.page.Current()

	if page == mcu.Free {
		t.Num = wrap(c.firstTrack[freeBank]+m, FreeTrackCount)
		if m == 8 {
			t.Num = FreeMaster
		}
		t.Base = freeBase(t.Num)
		held := 0
		if t.Held {
			held = 1
		}
		t.Knob = daw.ParamID(t.Base + held)
		t.KnobPress = daw.ParamID(t.Base + freeKnobSwitch)
		t.Slider = daw.ParamID(t.Base + freeSlider)
		t.KnobName = fmt.Sprintf("Knob %d", t.Num+1)
		t.SliderName = fmt.Sprintf("Slider %d", t.Num+1)
		t.Mode = mcu.SingleDot
		t.Center = mcu.CenterOff
		return t
	}

	if m == 8 {
		t.Num = MasterTrack
		t.Slider = daw.MasterVolume
		t.SliderName = "Master Vol"
		t.Mode = mcu.KnobOff
		return t
	}

	t.Num = wrap(c.firstTrack[normalBank]+m, c.host.TrackCount())
	t.Base = int(daw.TrackParam(t.Num, 0))
	name := c.host.TrackName(t.Num)
	t.Slider = daw.TrackParam(t.Num, daw.OffsetVolume)
	t.SliderName = name + " - Vol"
	t.ResetValue = daw.NeutralValue
	t.Mode = mcu.BoostCut
	t.Center = mcu.CenterAuto

	sel := c.host.SelectedTrack()
	switch page {
	case mcu.Pan:
		t.Knob = daw.TrackParam(t.Num, daw.OffsetPan)
		t.KnobReset = t.Knob
		t.KnobName = name + " - Pan"
	case mcu.Stereo:
		t.Knob = daw.TrackParam(t.Num, daw.OffsetStereo)
		t.KnobReset = t.Knob
		t.KnobName = name + " - Sep"
	case mcu.Sends:
		t.Knob = daw.SendParam(sel, t.Num)
		t.KnobReset = t.Knob
		t.KnobName = c.host.ParamName(t.Knob)
		t.ResetValue = daw.ZeroDB
		active := c.host.RouteActive(sel, t.Num)
		t.Center = mcu.Center(active)
		t.Mode = mcu.Wrap
		if !active {
			t.Mode = mcu.KnobOff
		}
	case mcu.Effects:
		t.Knob = daw.PluginParam(sel, m, daw.PlugMixLevel)
		t.KnobName = c.host.ParamName(t.Knob)
		t.ResetValue = daw.MaxValue
		valid := c.host.PluginValid(sel, m)
		t.Center = mcu.Center(valid && c.host.PluginAutomated(sel, m))
		t.Mode = mcu.KnobOff
		if valid {
			t.Mode = mcu.Wrap
			t.KnobPress = daw.PluginParam(sel, m, daw.PlugMute)
		}
	case mcu.Equalizer:
		switch {
		case c.caps.EQ && m < 3:
			t.Slider = daw.TrackParam(sel, daw.OffsetEQGain+m)
			t.KnobReset = t.Slider
			t.Knob = daw.TrackParam(sel, daw.OffsetEQFreq+m)
			t.ResetValue = daw.NeutralValue
			t.Center = mcu.CenterAutoFromSlider
			t.Mode = mcu.SingleDot
			t.SliderName = c.host.ParamName(t.Slider)
			t.KnobName = c.host.ParamName(t.Knob)
		case c.caps.EQ && m < 6:
			t.Slider = daw.TrackParam(sel, daw.OffsetEQQ+m-3)
			t.Knob = t.Slider
			t.KnobReset = t.Knob
			t.ResetValue = daw.QReset
			t.Mode = mcu.Wrap
			t.SliderName = c.host.ParamName(t.Slider)
			t.KnobName = t.SliderName
		default:
			t.Slider = daw.NoParam
			t.SliderName = ""
			t.Mode = mcu.KnobOff
			t.Center = mcu.CenterOff
		}
	}

	if c.flip {
		t.Knob, t.Slider = t.Slider, t.Knob
		t.KnobName, t.SliderName = t.SliderName, t.KnobName
		t.Mode = mcu.Wrap
		if !page.HasSecondaryKnob() {
			t.Center = mcu.CenterAuto
			t.ResetValue = daw.ZeroDB
			t.KnobReset = t.Knob
		}
	}
	return t
}
