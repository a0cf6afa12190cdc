package surface

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jdginn/fltouch/daw"
	"github.com/jdginn/fltouch/devices/mcu"
	"github.com/jdginn/fltouch/devices/xtouch"
)

// OnInit resets the controller and brings the unit up.
func (c *Controller) OnInit() error {
	c.firstTrack = [2]int{1, 0}
	c.smooth = 0
	c.clicking = true
	for i := range c.freeCtrl {
		c.freeCtrl[i] = freeCenter
	}

	errs := errors.Join(
		c.dev.Initialize(),
		c.dev.SetBacklightTimeout(c.opts.BacklightMinutes),
		c.dev.SetClicking(c.clicking),
		c.updateMeterMode(),
		c.setPage(c.page.Current()),
	)
	c.message(fmt.Sprintf("Linked to %s (%s)", c.host.ProgramTitle(), c.host.Version()))
	c.log.Info("Initialized", "page", c.page.Current(), "firstTrack", c.FirstTrack())
	return errs
}

// OnDeInit blanks the unit before the bridge stops.
func (c *Controller) OnDeInit() error {
	errs := c.dev.DisableMeters()
	if !c.dev.Assigned() {
		return errs
	}
	text := ""
	if c.host.Closing() {
		text = c.host.ProgramTitle() + " session closed at " + c.now().Format("Mon Jan _2 15:04:05 2006")
	}
	errs = errors.Join(errs,
		c.dev.SetText(0, text),
		c.dev.SetText(1, ""),
		c.dev.SetScreenColors(nil),
	)
	if c.caps.TimeDisplay {
		errs = errors.Join(errs, c.dev.SetTime(""))
	}
	if c.caps.MasterSection {
		errs = errors.Join(errs, c.dev.SetAssignment(-1))
	}
	return errs
}

// OnIdle updates the time display and shows a pending temporary message.
func (c *Controller) OnIdle() error {
	var errs error
	if c.caps.TimeDisplay {
		errs = c.dev.SetTime(formatTime(c.host.Time(), c.host.TimeDisplayMinutes()))
	}
	if c.msgDirty {
		errs = errors.Join(errs, c.dev.SetText(0, c.msg))
		c.msgDirty = false
	}
	return errs
}

// OnUpdateBeatIndicator flashes the play button: 0 off, 1 bar, 2 beat.
func (c *Controller) OnUpdateBeatIndicator(v int) error {
	if !c.caps.MasterSection {
		return nil
	}
	return c.dev.SetLED(mcu.Play, mcu.OnOff(v == 1 || v == 2), xtouch.BeatSlot)
}

// OnWaitingForInput shows that the DAW waits for input to start recording.
func (c *Controller) OnWaitingForInput() error {
	if !c.caps.TimeDisplay {
		return nil
	}
	return c.dev.SetTime("..........")
}

// OnSendMessage shows s on the bottom LCD row at the next idle tick.
func (c *Controller) OnSendMessage(s string) {
	c.message(s)
}

// zeros formats v right-aligned in n characters padded with pad, keeping only the last n
// characters. Negative numbers keep their sign in front of the padding.
func zeros(v, n int, pad byte) string {
	digits := strconv.Itoa(v)
	sign := ""
	if v < 0 {
		digits = strconv.Itoa(-v)
		sign = "-"
	}
	width := n - len(sign)
	if len(digits) < width {
		digits = strings.Repeat(string(pad), width-len(digits)) + digits
	}
	s := sign + digits
	if len(s) > n {
		s = s[len(s)-n:]
	}
	return s
}

// formatTime renders the song position for the time display: bars, steps and ticks, or
// hours, minutes, seconds and centiseconds.
func formatTime(t daw.Time, minutes bool) string {
	abs := func(v int) int {
		if v < 0 {
			return -v
		}
		return v
	}
	if !minutes {
		return zeros(t.Bar, 3, ' ') + zeros(abs(t.Step), 2, '0') + "  " + zeros(t.Tick, 3, '0')
	}
	var s string
	if t.Bar == daw.WaitingBar {
		s = "-   0"
	} else {
		n := abs(t.Bar)
		h, m := n/60, n%60
		v := h*100 + m
		if t.Bar < 0 {
			v = -v
		}
		s = zeros(v, 5, ' ')
	}
	return s + zeros(abs(t.Step), 2, '0') + zeros(t.Tick, 2, '0') + " "
}
