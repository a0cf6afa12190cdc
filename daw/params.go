// Package daw describes what the surface engine needs from the DAW: read access to the mixer,
// transport and UI state, and a set of commands that mutate it.
package daw

import (
	"fmt"
	"math"
)

// ParamID addresses one automatable DAW parameter.
type ParamID int

// NoParam marks an unassigned parameter.
const NoParam ParamID = -1

// MaxValue is the full-scale value of every mixer parameter.
const MaxValue = 65536

// Parameter layout. Each mixer track owns a block of 1<<trackShift ids.
const (
	trackShift = 10

	OffsetVolume    = 0
	OffsetPan       = 1
	OffsetStereo    = 2
	OffsetEQGain    = 3 // three bands
	OffsetEQFreq    = 6 // three bands
	OffsetEQQ       = 9 // three bands
	OffsetSendFirst = 64

	// Effect slots start at pluginBase inside the track block, pluginStride ids each.
	pluginBase   = 0x200
	pluginStride = 16

	PlugMixLevel = 1
	PlugMute     = 2
)

// Parameters outside every track block.
const (
	MasterVolume ParamID = 1 << 20
	Tempo        ParamID = 1<<20 + 1
)

// Reset values.
var (
	// NeutralValue is the center of pan and stereo separation.
	NeutralValue = MaxValue >> 1
	// ZeroDB is the fader position of unity gain.
	ZeroDB = int(math.RoundToEven(12800 * MaxValue / 16000.0))
)

// QReset is the default EQ bandwidth.
const QReset = 17500

// TrackParam returns parameter offset of track.
func TrackParam(track, offset int) ParamID {
	return ParamID(track<<trackShift + offset)
}

// SendParam is the send level from track to target.
func SendParam(track, target int) ParamID {
	return TrackParam(track, OffsetSendFirst+target)
}

// PluginParam returns parameter offset of the effect in slot of track.
func PluginParam(track, slot, offset int) ParamID {
	return TrackParam(track, pluginBase+slot*pluginStride+offset)
}

// Track returns the track owning id and whether id belongs to a track at all.
func (id ParamID) Track() (int, bool) {
	if id < 0 || id >= MasterVolume {
		return 0, false
	}
	return int(id) >> trackShift, true
}

// Offset returns the position of id inside its track block.
func (id ParamID) Offset() int {
	return int(id) & (1<<trackShift - 1)
}

func (id ParamID) String() string {
	switch id {
	case NoParam:
		return "none"
	case MasterVolume:
		return "master/volume"
	case Tempo:
		return "tempo"
	}
	t, ok := id.Track()
	if !ok {
		return fmt.Sprintf("param(%d)", int(id))
	}
	return fmt.Sprintf("track/%d/%d", t, id.Offset())
}
