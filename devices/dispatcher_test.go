package devices

import (
	"testing"

	"github.com/hypebeast/go-osc/osc"
	"github.com/stretchr/testify/assert"
)

func TestMatchAddr(t *testing.T) {
	tests := []struct {
		path           string
		addr           string
		expectMatch    bool
		expectCaptures []string
	}{
		{"/track/@/name", "/track/42/name", true, []string{"42"}},
		{"/track/@/plugin/@/valid", "/track/3/plugin/7/valid", true, []string{"3", "7"}},
		{"/param/@/value", "/param/abc/value", true, []string{"abc"}},
		{"/track/@/name", "/param/42/name", false, nil},
		{"/track/@/name", "/track/42", false, nil},
		{"/param/@/value", "/param/1234/wrong", false, nil},
		{"/track/@/name", "/track/42/name/extra", false, nil},
		{"/track/count", "/track/count", true, nil},

		// * extension cases
		{"/track/@/name/*", "/track/42/name", true, []string{"42"}},
		{"/track/@/name/*", "/track/42/name/extra", true, []string{"42"}},
		{"/param/@/value/*", "/param/abc/value/foo/bar", true, []string{"abc"}},
		{"/track/@/name/*", "/param/42/name/extra", false, nil},
		{"/track/@/name/*", "/track/42", false, nil}, // Not enough segments
		{"/track/@/name/*", "/track/42/namenotmatch", false, nil},
	}

	for _, tt := range tests {
		ok, caps := matchAddr(tt.path, tt.addr)
		assert.Equal(t, tt.expectMatch, ok, "match result mismatch for path=%q addr=%q", tt.path, tt.addr)
		if tt.expectMatch {
			assert.Equal(t, tt.expectCaptures, caps, "captures mismatch for path=%q addr=%q", tt.path, tt.addr)
		}
	}
}

func TestDispatcherAppendsCapturesPerHandler(t *testing.T) {
	assert := assert.New(t)

	d := NewDispatcher()
	var first, second []any
	d.AddMsgHandler("/track/@/name", func(msg *osc.Message) { first = msg.Arguments })
	d.AddMsgHandler("/track/@/name", func(msg *osc.Message) { second = msg.Arguments })
	d.AddMsgHandler("/track/count", func(msg *osc.Message) { assert.Fail("wrong handler") })

	orig := osc.NewMessage("/track/5/name", "Drums")
	d.Dispatch(orig)

	assert.Equal([]any{"Drums", "5"}, first)
	assert.Equal([]any{"Drums", "5"}, second)
	assert.Equal([]any{"Drums"}, orig.Arguments)
}
