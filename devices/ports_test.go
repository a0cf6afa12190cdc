package devices_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2/drivers"

	"github.com/jdginn/fltouch/devices"
	"github.com/jdginn/fltouch/devices/devicestesting"
)

type fakeLister struct {
	ins  []drivers.In
	outs []drivers.Out
	err  error
}

func (f fakeLister) Ins() ([]drivers.In, error)   { return f.ins, f.err }
func (f fakeLister) Outs() ([]drivers.Out, error) { return f.outs, f.err }

func TestFindPorts(t *testing.T) {
	master := devicestesting.NewNamedMockMIDIPort("X-Touch:X-Touch MIDI 1 20:0")
	ext := devicestesting.NewNamedMockMIDIPort("X-Touch-Ext:X-Touch-Ext MIDI 1 24:0")
	l := fakeLister{
		ins:  []drivers.In{master, ext},
		outs: []drivers.Out{master, ext},
	}

	tests := []struct {
		name    string
		substr  string
		want    string
		wantErr bool
	}{
		{"first match wins", "x-touch", master.String(), false},
		{"extender", "X-Touch-Ext", ext.String(), false},
		{"missing", "Launchpad", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := devices.FindInPort(l, tt.substr)
			out, outErr := devices.FindOutPort(l, tt.substr)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Error(t, outErr)
				return
			}
			require.NoError(t, err)
			require.NoError(t, outErr)
			assert.Equal(t, tt.want, in.String())
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestOpenMidiDevice(t *testing.T) {
	port := devicestesting.NewNamedMockMIDIPort("X-Touch INT")
	l := fakeLister{ins: []drivers.In{port}, outs: []drivers.Out{port}}

	dev, err := devices.OpenMidiDevice(l, "touch int", "touch int")
	require.NoError(t, err)
	assert.NotNil(t, dev)

	_, err = devices.OpenMidiDevice(fakeLister{err: errors.New("no driver")}, "a", "b")
	assert.ErrorContains(t, err, "no driver")
}
