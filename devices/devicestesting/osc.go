package devicestesting

import (
	"sync"
	"testing"

	"github.com/hypebeast/go-osc/osc"

	"github.com/jdginn/fltouch/devices"
)

type MockOscClient struct {
	mu           sync.Mutex
	sentMessages []*osc.Message
}

func (m *MockOscClient) Send(packet osc.Packet) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if msg, ok := packet.(*osc.Message); ok {
		m.sentMessages = append(m.sentMessages, msg)
	}
	return nil
}

func (m *MockOscClient) Messages() []*osc.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*osc.Message, len(m.sentMessages))
	copy(out, m.sentMessages)
	return out
}

func (m *MockOscClient) Reset() {
	m.mu.Lock()
	m.sentMessages = nil
	m.mu.Unlock()
}

type MockOscServer struct {
	mu      sync.Mutex
	running bool
}

func (m *MockOscServer) ListenAndServe() error {
	m.mu.Lock()
	m.running = true
	m.mu.Unlock()
	select {}
}

// TestOscDevice is an OscDevice wired to an in-memory client and a real Dispatcher, so
// address patterns behave exactly as they do against a live server.
type TestOscDevice struct {
	*devices.OscDevice
	Client     *MockOscClient
	Dispatcher *devices.Dispatcher
}

func NewTestOscDevice(t *testing.T) *TestOscDevice {
	client := &MockOscClient{}
	dispatcher := devices.NewDispatcher()
	return &TestOscDevice{
		OscDevice:  devices.NewOscDevice(client, &MockOscServer{}, dispatcher),
		Client:     client,
		Dispatcher: dispatcher,
	}
}

// SimulateMessage delivers a message as if it arrived from the network.
func (d *TestOscDevice) SimulateMessage(addr string, args ...interface{}) {
	d.Dispatcher.Dispatch(osc.NewMessage(addr, args...))
}

func (d *TestOscDevice) GetSentMessages() []*osc.Message {
	return d.Client.Messages()
}
