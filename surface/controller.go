// Package surface is the state-sync engine of an MCU control surface. A Controller owns the
// slot assignments of one unit, turns decoded MIDI events into DAW commands and renders DAW
// state on the unit's xtouch.Device.
//
// A Controller is not safe for concurrent use. Every call for one unit must come from the
// same goroutine; see package host.
package surface

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/jdginn/fltouch/daw"
	"github.com/jdginn/fltouch/devices/mcu"
	"github.com/jdginn/fltouch/devices/xtouch"
	"github.com/jdginn/fltouch/logging"
	"github.com/jdginn/fltouch/mode"
)

// Role tells whether a unit is the master or an extender.
type Role uint8

const (
	Master Role = iota
	Extender
)

func (r Role) String() string {
	if r == Extender {
		return "extender"
	}
	return "master"
}

// ProductID is the MCU identity of units with role r.
func (r Role) ProductID() mcu.ProductID {
	if r == Extender {
		return mcu.ProductExtender
	}
	return mcu.ProductMaster
}

// Capabilities are the hardware sections a unit has.
type Capabilities struct {
	JogWheel      bool
	TimeDisplay   bool
	MasterSection bool // transport buttons, master-section LEDs and the assignment display
	MasterFader   bool
	EQ            bool
}

// CapabilitiesFor returns the sections of an X-Touch (master) or X-Touch Extender.
func CapabilitiesFor(r Role) Capabilities {
	if r == Extender {
		return Capabilities{}
	}
	return Capabilities{JogWheel: true, TimeDisplay: true, MasterSection: true, MasterFader: true, EQ: true}
}

// Side is where the extenders sit relative to the master.
type Side uint8

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	if s == Right {
		return "right"
	}
	return "left"
}

// Dispatcher delivers events to the other units. Receivers are numbered from 0.
type Dispatcher interface {
	ReceiverCount() int
	Dispatch(receiver int, ev mcu.Event)
}

type noReceivers struct{}

func (noReceivers) ReceiverCount() int {
	return 0
}

func (noReceivers) Dispatch(int, mcu.Event) {}

// Options configure a Controller.
type Options struct {
	Role Role
	// Port is the DAW-side port number of the unit. It scopes generic remote controls.
	Port int
	Side Side
	// SmoothSpeed is the smoothing applied to parameter changes while smoothing is on.
	SmoothSpeed      int
	BacklightMinutes uint8
	// Dispatcher reaches the extenders. Only used by the master.
	Dispatcher Dispatcher
}

const (
	normalBank = 0
	freeBank   = 1

	defaultSmoothSpeed = 469
	arrows             = "<> "
)

var offOn = [2]string{"off", "on"}

func offOnStr(b bool) string {
	if b {
		return offOn[1]
	}
	return offOn[0]
}

// Controller is the engine of one unit.
type Controller struct {
	role Role
	caps Capabilities
	opts Options

	dev        *xtouch.Device
	host       daw.Host
	dispatcher Dispatcher
	log        *slog.Logger
	now        func() time.Time

	tracks []Track
	page   *mode.Manager[mcu.Page]

	firstTrack [2]int
	flip       bool
	shift      bool
	scrub      bool
	clicking   bool
	jogSource  mcu.Button
	smooth     int
	side       Side
	freeCtrl   [FreeTrackCount + 1]int

	msg      string
	msgDirty bool
}

// New returns the controller of one unit rendering on dev and driving host.
func New(dev *xtouch.Device, host daw.Host, opts Options) *Controller {
	if opts.SmoothSpeed == 0 {
		opts.SmoothSpeed = defaultSmoothSpeed
	}
	if opts.BacklightMinutes == 0 {
		opts.BacklightMinutes = 2
	}
	c := &Controller{
		role:       opts.Role,
		caps:       CapabilitiesFor(opts.Role),
		opts:       opts,
		dev:        dev,
		host:       host,
		dispatcher: opts.Dispatcher,
		log:        logging.Get(logging.SURFACE).With("unit", opts.Role.String(), "port", opts.Port),
		now:        time.Now,
		jogSource:  mcu.NoButton,
		side:       opts.Side,
		page: mode.NewManager(mcu.Pan, func(p mcu.Page) bool {
			return int(p) < mcu.PageCount
		}),
	}
	if c.dispatcher == nil || c.role == Extender {
		c.dispatcher = noReceivers{}
	}
	n := 8
	if c.caps.MasterFader {
		n = 9
	}
	c.tracks = make([]Track, n)
	for i := range c.freeCtrl {
		c.freeCtrl[i] = freeCenter
	}

	c.page.OnEnter(mcu.Free, func() error {
		c.loadFreeValues()
		return nil
	})
	c.page.OnTransition(func(from, to mcu.Page) error {
		c.log.Debug("Page changed", "from", from, "to", to)
		if from == mcu.Free || to == mcu.Free {
			return c.updateMeterMode()
		}
		return nil
	})
	return c
}

// Role returns the unit's role.
func (c *Controller) Role() Role {
	return c.role
}

// Device returns the unit's hardware.
func (c *Controller) Device() *xtouch.Device {
	return c.dev
}

// Page returns the active page.
func (c *Controller) Page() mcu.Page {
	return c.page.Current()
}

// FirstTrack returns the bank offset of the active counting mode.
func (c *Controller) FirstTrack() int {
	return c.firstTrack[c.bank()]
}

// Flipped reports whether knobs and faders are swapped.
func (c *Controller) Flipped() bool {
	return c.flip
}

// Tracks returns a copy of the current slot assignments.
func (c *Controller) Tracks() []Track {
	return append([]Track(nil), c.tracks...)
}

// FreeValue returns the last fader position of Free virtual track n.
func (c *Controller) FreeValue(n int) int {
	return c.freeCtrl[n]
}

// Message returns the pending temporary message.
func (c *Controller) Message() string {
	return c.msg
}

func (c *Controller) bank() int {
	if c.page.Is(mcu.Free) {
		return freeBank
	}
	return normalBank
}

// exec runs cmd against the DAW.
func (c *Controller) exec(cmd daw.Command) bool {
	c.log.Debug("Command", "cmd", cmd.String())
	return cmd.Execute(c.host)
}

// message queues a temporary message for the bottom LCD row. It is shown on the next idle tick.
func (c *Controller) message(s string) {
	c.msg = s
	c.msgDirty = true
}

func (c *Controller) remoteID(cc int) int {
	return daw.RemoteID(c.opts.Port, cc)
}

// loadFreeValues reads the Free fader positions back from the DAW's remote controls.
func (c *Controller) loadFreeValues() {
	for n := range c.freeCtrl {
		if d, ok := c.host.RemoteValue(c.remoteID(freeBase(n) + freeSlider)); ok {
			c.freeCtrl[n] = min(int(math.RoundToEven(d*16384)), 16384)
		}
	}
}

// setFirstTrack moves the bank of the active counting mode to v, wrapping around.
func (c *Controller) setFirstTrack(v int) error {
	var shown int
	if c.page.Is(mcu.Free) {
		c.firstTrack[freeBank] = wrap(v, FreeTrackCount)
		shown = c.firstTrack[freeBank] + 1
	} else {
		c.firstTrack[normalBank] = wrap(v, c.host.TrackCount())
		shown = c.firstTrack[normalBank]
	}
	c.recompute()
	var err error
	if c.caps.MasterSection {
		err = c.dev.SetAssignment(shown)
	}
	c.exec(daw.RefreshTrack{Track: -1})
	return err
}

// setPage switches to page p. Applying the active page again re-applies the bank; on the
// master with extenders attached this spreads the banks over all units.
func (c *Controller) setPage(p mcu.Page) error {
	prev, errs := c.page.Set(p)

	if p == mcu.Free {
		errs = errors.Join(errs, c.setFirstTrack(c.firstTrack[freeBank]))
	} else {
		first := c.firstTrack[normalBank]
		n := c.dispatcher.ReceiverCount()
		switch {
		case n == 0 || p != prev:
			errs = errors.Join(errs, c.setFirstTrack(first))
		case c.side == Left:
			for i := 0; i < n; i++ {
				c.setFirstTrackOnExtender(i, first+i*8)
			}
			errs = errors.Join(errs, c.setFirstTrack(first+n*8))
		default:
			errs = errors.Join(errs, c.setFirstTrack(first))
			for i := 0; i < n; i++ {
				c.setFirstTrackOnExtender(i, first+(i+1)*8)
			}
		}
	}

	c.recompute()
	errs = errors.Join(errs, c.updateMasterSectionLEDs(), c.updateTextDisplay())
	if errs != nil {
		return fmt.Errorf("set page %s: %w", p, errs)
	}
	return nil
}
