package mcu

// Page selects which DAW parameters the encoders and faders control.
type Page uint8

const (
	Pan Page = iota
	Stereo
	Sends
	Effects
	Equalizer
	Free

	PageCount = int(Free) + 1
)

var pageNames = [PageCount]string{"Pan", "Stereo", "Sends", "Effects", "Equalizer", "Free"}

// Descriptions are shown on the LCD when a page is selected.
var pageDescriptions = [PageCount]string{
	"Panning                                (press to reset)",
	"Stereo separation                      (press to reset)",
	"Sends for selected track              (press to enable)",
	"Effects for selected track            (press to enable)",
	"EQ for selected track                  (press to reset)",
	"Lotsa free controls",
}

func (p Page) String() string {
	if int(p) < PageCount {
		return pageNames[p]
	}
	return "Unknown"
}

// Description is the help line shown when the page is entered.
func (p Page) Description() string {
	if int(p) < PageCount {
		return pageDescriptions[p]
	}
	return ""
}

// Button returns the page-select button lighting up for p.
func (p Page) Button() Button {
	return PanButton + Button(p)
}

// HasSecondaryKnob reports whether the page binds the encoders to something other than
// the fader's own track. Flipping on these pages keeps the page's reset semantics.
func (p Page) HasSecondaryKnob() bool {
	switch p {
	case Sends, Effects, Equalizer:
		return true
	}
	return false
}
