package daw

import "strings"

// RefreshFlags tells which parts of the surface need to be redrawn.
type RefreshFlags uint32

const (
	RefreshSelection RefreshFlags = 1 << iota
	RefreshDisplay
	RefreshControls
	RefreshLEDs

	RefreshAll = RefreshSelection | RefreshDisplay | RefreshControls | RefreshLEDs
)

// Has reports whether every flag in want is set.
func (f RefreshFlags) Has(want RefreshFlags) bool {
	return f&want == want
}

func (f RefreshFlags) String() string {
	var parts []string
	for _, p := range []struct {
		flag RefreshFlags
		name string
	}{
		{RefreshSelection, "selection"},
		{RefreshDisplay, "display"},
		{RefreshControls, "controls"},
		{RefreshLEDs, "leds"},
	} {
		if f.Has(p.flag) {
			parts = append(parts, p.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}
