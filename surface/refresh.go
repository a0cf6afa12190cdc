package surface

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/jdginn/fltouch/daw"
	"github.com/jdginn/fltouch/devices/mcu"
	"github.com/jdginn/fltouch/devices/xtouch"
)

// OnDirtyMixerTrack marks the slots showing track (every slot for -1) for re-rendering.
// Nothing is drawn until the next controls refresh.
func (c *Controller) OnDirtyMixerTrack(track int) {
	for i := range c.tracks {
		if track == -1 || c.tracks[i].Num == track {
			c.tracks[i].Dirty = true
		}
	}
}

// OnRefresh redraws the parts of the surface named by flags.
func (c *Controller) OnRefresh(flags daw.RefreshFlags) error {
	var errs error
	if flags.Has(daw.RefreshSelection) {
		errs = errors.Join(errs, c.updateSelection())
	}
	if flags.Has(daw.RefreshDisplay) {
		errs = errors.Join(errs, c.updateTextDisplay())
		c.recompute()
	}
	if flags&(daw.RefreshSelection|daw.RefreshDisplay|daw.RefreshControls) != 0 {
		for i := range c.tracks {
			if c.tracks[i].Dirty {
				errs = errors.Join(errs, c.render(i))
			}
		}
	}
	if flags.Has(daw.RefreshLEDs) {
		errs = errors.Join(errs, c.updateMasterSectionLEDs())
	}
	if errs != nil {
		return fmt.Errorf("refresh %s: %w", flags, errs)
	}
	return nil
}

// render draws slot i and clears its dirty flag.
func (c *Controller) render(i int) error {
	t := &c.tracks[i]
	strip := c.dev.Strip(i)
	t.Dirty = false
	if c.page.Is(mcu.Free) {
		return c.renderFree(t, strip)
	}

	var sv int
	if t.Slider >= 0 {
		sv = c.host.ParamValue(t.Slider)
	}
	var errs error
	if !strip.IsMain() {
		errs = errors.Join(errs, c.renderRing(t, strip, sv))
		if t.Num >= 0 {
			errs = errors.Join(errs,
				strip.SetArm(c.host.IsArmed(t.Num), c.host.IsRecording()),
				strip.SetSolo(c.host.IsSolo(t.Num)),
				strip.SetMute(!c.host.IsEnabled(t.Num)),
				strip.SetSelect(t.Num == c.host.SelectedTrack()),
			)
		}
	}
	return errors.Join(errs, strip.SetFader(mcu.ToMcuFader(sv, daw.MaxValue)))
}

func (c *Controller) renderRing(t *Track, strip *xtouch.Strip, sv int) error {
	if t.Knob < 0 {
		return strip.SetRing(mcu.SingleDot, false, 0)
	}
	v := c.host.ParamValue(t.Knob)
	var center bool
	switch t.Center {
	case mcu.CenterOff:
	case mcu.CenterOn:
		center = true
	case mcu.CenterAuto:
		if t.KnobReset == t.Knob {
			center = v != t.ResetValue
		} else {
			center = sv != t.ResetValue
		}
	case mcu.CenterAutoFromSlider:
		center = sv != t.ResetValue
	}
	return strip.SetRing(t.Mode, center, ringLevel(t.Mode, v))
}

// ringLevel maps a parameter value onto the ring's LEDs. Dot modes use positions 1-11, fill
// modes 0-11.
func ringLevel(m mcu.KnobMode, v int) uint8 {
	f := float64(v) / daw.MaxValue
	var l float64
	if m < mcu.Wrap {
		l = 1 + math.RoundToEven(f*10)
	} else {
		l = math.RoundToEven(f * 11)
	}
	return uint8(min(max(l, 0), 11))
}

func (c *Controller) renderFree(t *Track, strip *xtouch.Strip) error {
	errs := strip.SetFader(uint16(c.freeCtrl[t.Num]))
	if strip.IsMain() {
		return errs
	}

	held := 0
	if t.Held {
		held = 1
	}
	if d, ok := c.host.RemoteValue(c.remoteID(t.Base + held)); ok {
		errs = errors.Join(errs, strip.SetRing(mcu.SingleDot, false, uint8(1+math.RoundToEven(d*10))))
	} else if t.Held {
		errs = errors.Join(errs, strip.SetRing(mcu.Wrap, false, 11))
	} else {
		errs = errors.Join(errs, strip.SetRing(mcu.SingleDot, false, 0))
	}

	for row := xtouch.RowArm; row <= xtouch.RowSelect; row++ {
		d, ok := c.host.RemoteValue(c.remoteID(t.Base + freeButtons + row))
		errs = errors.Join(errs, strip.SetButton(row, mcu.OnOff(ok && d >= 0.5)))
	}
	return errs
}

// updateSelection lights the select button of the selected track. Sends and Effects follow
// the selected track, so they are reassigned.
func (c *Controller) updateSelection() error {
	if c.page.Is(mcu.Free) {
		return nil
	}
	var errs error
	sel := c.host.SelectedTrack()
	for i, t := range c.tracks {
		if c.dev.Strip(i).IsMain() {
			continue
		}
		errs = errors.Join(errs, c.dev.Strip(i).SetSelect(t.Num == sel))
	}
	switch c.page.Current() {
	case mcu.Sends, mcu.Effects:
		c.recompute()
	}
	return errs
}

// updateTextDisplay writes track names to the top LCD row and sets the strip colours.
func (c *Controller) updateTextDisplay() error {
	free := c.page.Is(mcu.Free)
	var row strings.Builder
	colors := make([]int, 0, 8)
	for i, t := range c.tracks {
		if i >= 8 {
			break
		}
		if free {
			row.WriteString(xtouch.StripName(fmt.Sprintf("  %2d", t.Num+1)))
			continue
		}
		row.WriteString(xtouch.StripName(c.host.TrackName(t.Num)))
		colors = append(colors, c.host.TrackColor(t.Num))
	}
	if free {
		colors = nil
	}
	return errors.Join(c.dev.SetText(1, row.String()), c.dev.SetScreenColors(colors))
}

// updateMeterMode restarts the meters, which clears whatever they showed.
func (c *Controller) updateMeterMode() error {
	return errors.Join(
		c.dev.ClearMeters(),
		c.dev.DisableMeters(),
		c.updateTextDisplay(),
		c.dev.EnableMeters(),
	)
}

// OnUpdateMeters pushes the current peak levels. The Free page has no meters.
func (c *Controller) OnUpdateMeters() error {
	if c.page.Is(mcu.Free) {
		return nil
	}
	var errs error
	for i, s := range c.dev.Strips() {
		if !s.HasMeter() || i >= len(c.tracks) {
			continue
		}
		errs = errors.Join(errs, s.SetMeter(c.host.TrackPeak(c.tracks[i].Num)))
	}
	return errs
}

// Keys of the master-section LEDs.
const (
	ledStop = iota
	ledLoop
	ledRecord
	ledSmpte
	ledBeats
	ledPages // one per page
	ledSave  = iota + mcu.PageCount - 1
	ledMetronome
	ledCountDown
	_
	ledScrub
	ledRudeSolo
	ledSmooth
	ledFlip
	ledSnap
	ledBrowser
	ledStepSequencer
)

type led struct {
	button mcu.Button
	state  mcu.LEDState
	key    int
}

// updateMasterSectionLEDs mirrors transport, page and mode state on the master section.
func (c *Controller) updateMasterSectionLEDs() error {
	if !c.caps.MasterSection || !c.dev.Assigned() {
		return nil
	}
	recording := c.host.IsRecording()
	minutes := c.host.TimeDisplayMinutes()
	armed := 0
	for t := 0; t < c.host.TrackCount(); t++ {
		if c.host.IsArmed(t) {
			armed = 1
			if recording {
				armed = 2
			}
			break
		}
	}

	leds := []led{
		{mcu.Stop, mcu.OnOff(!c.host.IsPlaying()), ledStop},
		{mcu.SongVSLoop, mcu.OnOff(c.host.LoopPattern()), ledLoop},
		{mcu.Record, mcu.OnOff(recording), ledRecord},
		{mcu.SmpteLED, mcu.OnOff(minutes), ledSmpte},
		{mcu.BeatsLED, mcu.OnOff(!minutes), ledBeats},
	}
	page := c.page.Current()
	for p := mcu.Page(0); int(p) < mcu.PageCount; p++ {
		leds = append(leds, led{p.Button(), mcu.OnOff(p == page), ledPages + int(p)})
	}
	leds = append(leds,
		led{mcu.Save, mcu.OnOff(c.host.Changed()), ledSave},
		led{mcu.Metronome, mcu.OnOff(c.host.Metronome()), ledMetronome},
		led{mcu.CountDown, mcu.OnOff(c.host.Precount()), ledCountDown},
		led{mcu.Scrub, mcu.OnOff(c.scrub), ledScrub},
		led{mcu.RudeSoloLED, mcu.OnOffBlink(armed), ledRudeSolo},
		led{mcu.Smooth, mcu.OnOff(c.smooth > 0), ledSmooth},
		led{mcu.Flip, mcu.OnOff(c.flip), ledFlip},
		led{mcu.Snap, mcu.OnOff(c.host.SnapMode() != 3), ledSnap},
		led{mcu.Browser, mcu.OnOff(c.host.Focused(daw.Browser)), ledBrowser},
		led{mcu.StepSequencer, mcu.OnOff(c.host.Focused(daw.ChannelRack)), ledStepSequencer},
	)

	var errs error
	for _, l := range leds {
		errs = errors.Join(errs, c.dev.SetLED(l.button, l.state, l.key))
	}
	return errs
}
