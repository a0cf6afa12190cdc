package surface

import (
	"fmt"

	"github.com/jdginn/fltouch/daw"
	"github.com/jdginn/fltouch/devices/mcu"
)

const (
	// MasterTrack is the track number of the master fader slot.
	MasterTrack = -2

	// FreeTrackCount is the number of virtual tracks on the Free page.
	FreeTrackCount = 64
	// FreeMaster is the track number of the master fader on the Free page.
	FreeMaster = FreeTrackCount
	// FreeEventID is the first generic control number used by the Free page. Each virtual
	// track owns eight: knob, held knob, knob switch, four buttons and the slider.
	FreeEventID = 400
	freeStride  = 8

	freeKnobSwitch = 2
	freeButtons    = 3
	freeSlider     = 7

	// FreeJogID is the control number of the first Free jog source.
	FreeJogID = 390

	freeCenter = 8192
)

// Track is the assignment of one physical column. On the Free page the id fields hold
// generic control numbers instead of mixer parameters.
type Track struct {
	Num  int
	Base int

	Slider     daw.ParamID
	Knob       daw.ParamID
	KnobPress  daw.ParamID
	KnobReset  daw.ParamID
	ResetValue int
	Mode       mcu.KnobMode
	Center     mcu.KnobCenter

	SliderName string
	KnobName   string

	Held  bool
	Dirty bool
}

func (t Track) String() string {
	return fmt.Sprintf("track %d slider=%s knob=%s mode=%s center=%s", t.Num, t.Slider, t.Knob, t.Mode, t.Center)
}

// freeBase returns the first control number of Free virtual track n.
func freeBase(n int) int {
	return FreeEventID + n*freeStride
}
