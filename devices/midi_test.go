package devices_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	midi "gitlab.com/gomidi/midi/v2"

	"github.com/jdginn/fltouch/devices"
	h "github.com/jdginn/fltouch/devices/devicestesting"
)

func newTestMidiDevice() (*devices.MidiDevice, *h.MockMIDIPort) {
	port := h.NewMockMIDIPort()
	return devices.NewMidiDevice(port, port), port
}

// runDevice starts dev and waits until it listens on port.
func runDevice(t *testing.T, dev *devices.MidiDevice, port *h.MockMIDIPort) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- dev.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	select {
	case <-dev.Ready():
	case <-time.After(time.Second):
		t.Fatal("device never became ready")
	}
	require.Equal(t, 1, port.ListenerCount())
}

func TestMidiDeviceBindAll(t *testing.T) {
	tests := []struct {
		name     string
		messages []midi.Message
	}{
		{"note on and note off", []midi.Message{midi.NoteOn(0, 0x5E, 0x7F), midi.NoteOff(0, 0x5E)}},
		{"control change", []midi.Message{midi.ControlChange(0, 0x10, 0x41)}},
		{"pitch bend", []midi.Message{midi.Pitchbend(3, 100)}},
		{"channel aftertouch", []midi.Message{midi.AfterTouch(0, 0x2C)}},
		{"sysex", []midi.Message{midi.SysEx([]byte{0x00, 0x00, 0x66, 0x14, 0x01})}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev, port := newTestMidiDevice()
			var got []midi.Message
			dev.BindAll(func(msg midi.Message) error {
				got = append(got, msg)
				return nil
			})
			runDevice(t, dev, port)

			for _, msg := range tt.messages {
				port.SimulateReceive(msg)
			}
			assert.Equal(t, tt.messages, got)
		})
	}
}

func TestMidiDeviceCallbackOrder(t *testing.T) {
	assert := assert.New(t)
	dev, port := newTestMidiDevice()

	var order []string
	dev.BindAll(func(midi.Message) error {
		order = append(order, "first")
		return errors.New("boom")
	})
	dev.BindAll(func(midi.Message) error {
		order = append(order, "second")
		return nil
	})
	runDevice(t, dev, port)

	// A failing callback does not stop the ones after it.
	port.SimulateReceive(midi.NoteOn(0, 1, 2))
	assert.Equal([]string{"first", "second"}, order)
}

func TestMidiDeviceSend(t *testing.T) {
	assert := assert.New(t)
	dev, port := newTestMidiDevice()

	require.NoError(t, dev.Send(midi.NoteOn(0, 0x5E, 0x7F)))
	assert.Equal([]midi.Message{midi.NoteOn(0, 0x5E, 0x7F)}, port.GetSentMessages())

	port.SetError(true)
	assert.Error(dev.Send(midi.NoteOn(0, 0x5E, 0)))

	assert.Error(devices.NewMidiDevice(port, nil).Send(midi.NoteOn(0, 0x5E, 0)))
}

func TestMidiDeviceRunStopsOnCancel(t *testing.T) {
	dev, port := newTestMidiDevice()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- dev.Run(ctx) }()
	require.Eventually(t, func() bool { return port.ListenerCount() > 0 }, time.Second, time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.Zero(t, port.ListenerCount())
	assert.False(t, port.IsOpen())
}
