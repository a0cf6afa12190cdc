package surface

import "github.com/jdginn/fltouch/devices/mcu"

// forward sends a button event on to every extender.
func (c *Controller) forward(ev mcu.NoteOn) {
	for n := 0; n < c.dispatcher.ReceiverCount(); n++ {
		c.dispatcher.Dispatch(n, ev)
	}
}

func (c *Controller) setFirstTrackOnExtender(n, first int) {
	if n < 0 || n >= c.dispatcher.ReceiverCount() {
		return
	}
	c.dispatcher.Dispatch(n, mcu.NoteOn{Key: mcu.FirstTrackKey, Velocity: uint8(min(max(first, 0), 0x7F))})
}

// toggleSide moves the extenders to the other side of the master and respreads the banks.
func (c *Controller) toggleSide() error {
	c.side = 1 - c.side
	c.firstTrack[normalBank] = 1
	err := c.setPage(c.page.Current())
	c.message("Extender on " + c.side.String())
	return err
}
