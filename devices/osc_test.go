package devices_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	devtest "github.com/jdginn/fltouch/devices/devicestesting"
)

type oscMessage struct {
	addr string
	args []interface{}
}

func TestOscDevice(t *testing.T) {
	tests := []struct {
		name          string
		setupBindings func(*testing.T, *devtest.TestOscDevice, func())
		messages      []oscMessage
		calls         int
	}{
		{
			name: "int binding handles various numeric types",
			setupBindings: func(t *testing.T, d *devtest.TestOscDevice, called func()) {
				require.NoError(t, d.BindInt("/test/int", func(val int64) error {
					called()
					assert.Equal(t, int64(42), val)
					return nil
				}))
			},
			messages: []oscMessage{
				{"/test/int", []interface{}{int32(42)}},
				{"/test/int", []interface{}{float64(42.0)}},
				{"/test/int", []interface{}{"42"}},
			},
			calls: 3,
		},
		{
			name: "float binding handles various float types",
			setupBindings: func(t *testing.T, d *devtest.TestOscDevice, called func()) {
				require.NoError(t, d.BindFloat("/test/float", func(val float64) error {
					called()
					assert.InDelta(t, 42.5, val, 0.001)
					return nil
				}))
			},
			messages: []oscMessage{
				{"/test/float", []interface{}{float64(42.5)}},
				{"/test/float", []interface{}{float32(42.5)}},
				{"/test/float", []interface{}{"42.5"}},
			},
			calls: 3,
		},
		{
			name: "bool binding treats positive numbers as true",
			setupBindings: func(t *testing.T, d *devtest.TestOscDevice, called func()) {
				require.NoError(t, d.BindBool("/track/1/mute", func(val bool) error {
					called()
					assert.True(t, val)
					return nil
				}))
			},
			messages: []oscMessage{
				{"/track/1/mute", []interface{}{true}},
				{"/track/1/mute", []interface{}{int32(1)}},
				{"/track/1/mute", []interface{}{float32(0.5)}},
			},
			calls: 3,
		},
		{
			name: "unconvertible and empty messages never reach the callback",
			setupBindings: func(t *testing.T, d *devtest.TestOscDevice, called func()) {
				require.NoError(t, d.BindInt("/test/int", func(val int64) error {
					called()
					return nil
				}))
			},
			messages: []oscMessage{
				{"/test/int", []interface{}{"forty two"}},
				{"/test/int", nil},
				{"/test/other", []interface{}{int32(1)}},
			},
			calls: 0,
		},
		{
			name: "callback errors do not stop later messages",
			setupBindings: func(t *testing.T, d *devtest.TestOscDevice, called func()) {
				require.NoError(t, d.BindString("/track/@/name", func(val string) error {
					called()
					return errors.New("boom")
				}))
			},
			messages: []oscMessage{
				{"/track/1/name", []interface{}{"Drums"}},
				{"/track/2/name", []interface{}{"Bass"}},
			},
			calls: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := devtest.NewTestOscDevice(t)
			calls := 0
			tt.setupBindings(t, d, func() { calls++ })
			for _, msg := range tt.messages {
				d.SimulateMessage(msg.addr, msg.args...)
			}
			assert.Equal(t, tt.calls, calls)
		})
	}
}

func TestOscDeviceBindCaptured(t *testing.T) {
	assert := assert.New(t)
	d := devtest.NewTestOscDevice(t)

	var gotCaptures []string
	var gotArgs []any
	require.NoError(t, d.BindCaptured("/track/@/param/@", func(captures []string, args []any) error {
		gotCaptures = captures
		gotArgs = args
		return nil
	}))

	d.SimulateMessage("/track/12/param/1", float32(0.25))
	assert.Equal([]string{"12", "1"}, gotCaptures)
	assert.Equal([]any{float32(0.25)}, gotArgs)
}

func TestOscDeviceBindCapturedTyped(t *testing.T) {
	assert := assert.New(t)
	d := devtest.NewTestOscDevice(t)

	var track string
	var value int64
	var name string
	require.NoError(t, d.BindCapturedInt("/track/@/color", func(captures []string, val int64) error {
		track, value = captures[0], val
		return nil
	}))
	require.NoError(t, d.BindCapturedString("/track/@/name", func(captures []string, val string) error {
		name = val
		return nil
	}))

	d.SimulateMessage("/track/4/color", int32(-10261391))
	assert.Equal("4", track)
	assert.Equal(int64(-10261391), value)

	// A message without its value never reaches the callback.
	d.SimulateMessage("/track/5/name")
	assert.Empty(name)
	d.SimulateMessage("/track/5/name", "Bass")
	assert.Equal("Bass", name)
}

func TestOscDeviceSend(t *testing.T) {
	assert := assert.New(t)
	d := devtest.NewTestOscDevice(t)

	require.NoError(t, d.SetInt("/track/3/arm", 1))
	require.NoError(t, d.SetFloat("/track/3/volume", 0.5))
	require.NoError(t, d.Send("/ui/hint", "Tempo", int32(2)))

	sent := d.GetSentMessages()
	require.Len(t, sent, 3)
	assert.Equal("/track/3/arm", sent[0].Address)
	assert.Equal([]interface{}{int32(1)}, sent[0].Arguments)
	assert.Equal([]interface{}{float32(0.5)}, sent[1].Arguments)
	assert.Equal([]interface{}{"Tempo", int32(2)}, sent[2].Arguments)
}
