package devices

import (
	"fmt"
	"strings"

	"gitlab.com/gomidi/midi/v2/drivers"
)

// PortLister lists the ports of a MIDI driver. Every drivers.Driver is one.
type PortLister interface {
	Ins() ([]drivers.In, error)
	Outs() ([]drivers.Out, error)
}

// FindInPort returns the first input whose name contains substr, ignoring case.
func FindInPort(l PortLister, substr string) (drivers.In, error) {
	ins, err := l.Ins()
	if err != nil {
		return nil, fmt.Errorf("list MIDI inputs: %w", err)
	}
	lower := strings.ToLower(substr)
	for _, port := range ins {
		if strings.Contains(strings.ToLower(port.String()), lower) {
			return port, nil
		}
	}
	return nil, fmt.Errorf("no MIDI input port matching %q", substr)
}

// FindOutPort returns the first output whose name contains substr, ignoring case.
func FindOutPort(l PortLister, substr string) (drivers.Out, error) {
	outs, err := l.Outs()
	if err != nil {
		return nil, fmt.Errorf("list MIDI outputs: %w", err)
	}
	lower := strings.ToLower(substr)
	for _, port := range outs {
		if strings.Contains(strings.ToLower(port.String()), lower) {
			return port, nil
		}
	}
	return nil, fmt.Errorf("no MIDI output port matching %q", substr)
}

// OpenMidiDevice finds both ports and wraps them in a MidiDevice.
func OpenMidiDevice(l PortLister, in, out string) (*MidiDevice, error) {
	inPort, err := FindInPort(l, in)
	if err != nil {
		return nil, err
	}
	outPort, err := FindOutPort(l, out)
	if err != nil {
		return nil, err
	}
	return NewMidiDevice(inPort, outPort), nil
}
