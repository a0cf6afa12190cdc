package devices

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	midi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"github.com/jdginn/fltouch/logging"
)

var midiInLog, midiOutLog *slog.Logger

func init() {
	midiInLog = logging.Get(logging.MIDI_IN)
	midiOutLog = logging.Get(logging.MIDI_OUT)
}

// MidiDevice represents a generic MIDI device and allows registering callbacks for the messages it receives.
type MidiDevice struct {
	mu sync.RWMutex

	inPort  drivers.In
	outPort drivers.Out

	all []func(midi.Message) error

	ready chan struct{}
}

func NewMidiDevice(inPort drivers.In, outPort drivers.Out) *MidiDevice {
	return &MidiDevice{
		inPort:  inPort,
		outPort: outPort,
		ready:   make(chan struct{}),
	}
}

// Ready is closed once Run has opened both ports and is listening.
func (d *MidiDevice) Ready() <-chan struct{} {
	return d.ready
}

// BindAll runs callback for every received message, in registration order.
func (d *MidiDevice) BindAll(callback func(midi.Message) error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.all = append(d.all, callback)
}

// Send writes msg to the output port.
func (d *MidiDevice) Send(msg midi.Message) error {
	if d.outPort == nil {
		return fmt.Errorf("send %s: no output port", msg)
	}
	midiOutLog.Debug("Sending", "msg", msg.String())
	if err := d.outPort.Send(msg); err != nil {
		return fmt.Errorf("send %s to %s: %w", msg, d.outPort, err)
	}
	return nil
}

// Run opens both ports, listens for incoming messages and dispatches them to the registered
// callbacks until ctx is cancelled.
func (d *MidiDevice) Run(ctx context.Context) error {
	if d.inPort == nil {
		return fmt.Errorf("midi device has no input port")
	}
	midiInLog.Info("Starting MIDI device", "inPort", d.inPort.String(), "outPort", fmt.Sprint(d.outPort))
	if err := d.inPort.Open(); err != nil {
		return fmt.Errorf("open %s: %w", d.inPort, err)
	}
	defer d.inPort.Close()
	if d.outPort != nil {
		if err := d.outPort.Open(); err != nil {
			return fmt.Errorf("open %s: %w", d.outPort, err)
		}
		defer d.outPort.Close()
	}

	stop, err := midi.ListenTo(d.inPort, func(msg midi.Message, timestampms int32) {
		d.handle(msg, timestampms)
	}, midi.UseSysEx())
	if err != nil {
		return fmt.Errorf("listen to %s: %w", d.inPort, err)
	}
	defer stop()
	close(d.ready)

	<-ctx.Done()
	return nil
}

func (d *MidiDevice) handle(msg midi.Message, timestampms int32) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	midiInLog.Debug("received", "msg", msg.String(), "timestamp", timestampms)
	for _, cb := range d.all {
		if err := cb(msg); err != nil {
			midiInLog.Error("failed to process message", "msg", msg.String(), "err", err)
		}
	}
}
