package surface

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	midi "gitlab.com/gomidi/midi/v2"

	"github.com/jdginn/fltouch/daw"
	"github.com/jdginn/fltouch/daw/dawtest"
	"github.com/jdginn/fltouch/devices"
	"github.com/jdginn/fltouch/devices/devicestesting"
	"github.com/jdginn/fltouch/devices/mcu"
	"github.com/jdginn/fltouch/devices/xtouch"
)

type sent struct {
	receiver int
	ev       mcu.Event
}

type fakeDispatcher struct {
	n   int
	got []sent
}

func (f *fakeDispatcher) ReceiverCount() int { return f.n }

func (f *fakeDispatcher) Dispatch(receiver int, ev mcu.Event) {
	f.got = append(f.got, sent{receiver, ev})
}

func newTestController(t *testing.T, role Role, host *dawtest.Host, opts Options) (*Controller, *devicestesting.MockMIDIPort) {
	t.Helper()
	port := devicestesting.NewMockMIDIPort()
	dev := xtouch.New(devices.NewMidiDevice(port, port), role.ProductID())
	dev.SetAssigned(true)
	opts.Role = role
	opts.Port = 1
	c := New(dev, host, opts)
	require.NoError(t, c.OnInit())
	host.Reset()
	port.ClearSentMessages()
	if f, ok := opts.Dispatcher.(*fakeDispatcher); ok {
		f.got = nil
	}
	return c, port
}

func press(t *testing.T, c *Controller, b mcu.Button) {
	t.Helper()
	handled, err := c.HandleMIDI(mcu.NoteOn{Key: b, Velocity: 0x7F}, mcu.FromDevice)
	require.NoError(t, err)
	require.True(t, handled, "button %s not handled", b)
}

func release(t *testing.T, c *Controller, b mcu.Button) {
	t.Helper()
	_, err := c.HandleMIDI(mcu.NoteOn{Key: b}, mcu.FromDevice)
	require.NoError(t, err)
}

func nums(tracks []Track) []int {
	out := make([]int, len(tracks))
	for i, t := range tracks {
		out[i] = t.Num
	}
	return out
}

func TestBankWrapsAround(t *testing.T) {
	assert := assert.New(t)
	host := dawtest.New(16)
	c, _ := newTestController(t, Master, host, Options{})

	require.NoError(t, c.setFirstTrack(14))
	assert.Equal([]int{14, 15, 0, 1, 2, 3, 4, 5, MasterTrack}, nums(c.Tracks()))

	require.NoError(t, c.setFirstTrack(-1))
	assert.Equal(15, c.FirstTrack())

	press(t, c, mcu.FaderBankRight)
	assert.Equal(7, c.FirstTrack())
	press(t, c, mcu.FaderChannelLeft)
	assert.Equal(6, c.FirstTrack())
}

func TestRecomputeIsIdempotent(t *testing.T) {
	host := dawtest.New(20)
	host.Selected = 4
	host.SetRoute(4, 2, true)
	host.SetPlugin(4, 1, dawtest.Plugin{Valid: true, Automated: true})
	c, _ := newTestController(t, Master, host, Options{})

	for p := mcu.Page(0); int(p) < mcu.PageCount; p++ {
		t.Run(p.String(), func(t *testing.T) {
			require.NoError(t, c.setPage(p))
			c.recompute()
			first := c.Tracks()
			c.recompute()
			assert.Equal(t, first, c.Tracks())
		})
	}
}

func TestFlipIsAnInvolution(t *testing.T) {
	host := dawtest.New(20)
	host.Selected = 2
	c, _ := newTestController(t, Master, host, Options{})

	for _, p := range []mcu.Page{mcu.Pan, mcu.Stereo, mcu.Sends, mcu.Effects, mcu.Equalizer} {
		t.Run(p.String(), func(t *testing.T) {
			assert := assert.New(t)
			require.NoError(t, c.setPage(p))
			c.recompute()
			before := c.Tracks()

			press(t, c, mcu.Flip)
			assert.True(c.Flipped())
			flipped := c.Tracks()
			for i := 0; i < 8; i++ {
				assert.Equal(before[i].Slider, flipped[i].Knob)
				assert.Equal(before[i].Knob, flipped[i].Slider)
			}

			press(t, c, mcu.Flip)
			assert.False(c.Flipped())
			assert.Equal(before, c.Tracks())
		})
	}
}

func TestMasterSlot(t *testing.T) {
	host := dawtest.New(20)
	c, _ := newTestController(t, Master, host, Options{})

	for _, flip := range []bool{false, true} {
		c.flip = flip
		for _, p := range []mcu.Page{mcu.Pan, mcu.Stereo, mcu.Sends, mcu.Effects, mcu.Equalizer} {
			require.NoError(t, c.setPage(p))
			m := c.Tracks()[8]
			assert.Equal(t, MasterTrack, m.Num, "%s flip=%v", p, flip)
			assert.Equal(t, daw.MasterVolume, m.Slider)
			assert.Equal(t, daw.NoParam, m.Knob)
			assert.Equal(t, mcu.KnobOff, m.Mode)
		}
	}
}

func TestSendsPage(t *testing.T) {
	assert := assert.New(t)
	host := dawtest.New(20)
	host.Selected = 3
	host.SetRoute(3, 4, true)
	c, _ := newTestController(t, Master, host, Options{})
	require.NoError(t, c.setPage(mcu.Sends))
	host.Reset()

	tracks := c.Tracks()
	// Slot m shows track m+1.
	self, active, inactive := tracks[2], tracks[3], tracks[4]
	assert.Equal(3, self.Num)
	assert.Equal(mcu.KnobOff, self.Mode)
	assert.Equal(mcu.Wrap, active.Mode)
	assert.Equal(mcu.CenterOn, active.Center)
	assert.Equal(daw.SendParam(3, 4), active.Knob)
	assert.Equal(daw.ZeroDB, active.ResetValue)
	assert.Equal(mcu.KnobOff, inactive.Mode)

	// Turning a disabled send does nothing.
	handled, err := c.HandleMIDI(mcu.ControlChange{Controller: mcu.EncoderCC1 + 2, Value: 1}, mcu.FromDevice)
	require.NoError(t, err)
	assert.True(handled)
	assert.Empty(host.Commands())

	press(t, c, mcu.Encoder_1+2)
	assert.Equal([]daw.Command{daw.RouteToggle{From: 3, To: 3}}, host.Commands())
	assert.Equal("Cannot send to this track", c.Message())

	host.Reset()
	press(t, c, mcu.Encoder_1+4)
	assert.Equal([]daw.Command{daw.RouteToggle{From: 3, To: 5}}, host.Commands())
	assert.True(host.RouteActive(3, 5))
}

func TestSendsPageSelfSendIsOff(t *testing.T) {
	assert := assert.New(t)
	host := dawtest.New(8)
	host.Selected = 3
	c, _ := newTestController(t, Master, host, Options{})
	require.NoError(t, c.setFirstTrack(0))
	require.NoError(t, c.setPage(mcu.Sends))

	self := c.Tracks()[3]
	assert.Equal(3, self.Num)
	assert.Equal(daw.SendParam(3, 3), self.Knob)
	assert.False(host.RouteActive(3, 3))
	assert.Equal(mcu.KnobOff, self.Mode)
	assert.Equal(mcu.CenterOff, self.Center)
}

func TestEffectsPage(t *testing.T) {
	assert := assert.New(t)
	host := dawtest.New(20)
	host.Selected = 2
	host.SetPlugin(2, 0, dawtest.Plugin{Valid: true})
	host.ParamNames[daw.PluginParam(2, 0, daw.PlugMute)] = "Reverb - Mute"
	c, _ := newTestController(t, Master, host, Options{})
	require.NoError(t, c.setPage(mcu.Effects))
	host.Reset()

	tracks := c.Tracks()
	assert.Equal(mcu.Wrap, tracks[0].Mode)
	assert.Equal(mcu.KnobOff, tracks[1].Mode)

	press(t, c, mcu.Encoder_1)
	assert.Equal([]daw.Command{daw.ParamToggle{ID: daw.PluginParam(2, 0, daw.PlugMute)}}, host.Commands())
	assert.Equal("Reverb - Mute", c.Message())
}

func TestFlippedEffectsPressOnEmptySlot(t *testing.T) {
	assert := assert.New(t)
	host := dawtest.New(20)
	host.Selected = 2
	host.SetPlugin(2, 0, dawtest.Plugin{Valid: true})
	c, _ := newTestController(t, Master, host, Options{})
	require.NoError(t, c.setPage(mcu.Effects))
	press(t, c, mcu.Flip)
	require.True(t, c.Flipped())
	host.Reset()

	// The flipped knob is the track volume; pressing it must not reset it.
	empty := c.Tracks()[1]
	assert.Equal(daw.TrackParam(empty.Num, daw.OffsetVolume), empty.Knob)
	press(t, c, mcu.Encoder_1+1)
	assert.Empty(host.Commands())

	// A loaded slot still toggles its mute.
	press(t, c, mcu.Encoder_1)
	assert.Equal([]daw.Command{daw.ParamToggle{ID: daw.PluginParam(2, 0, daw.PlugMute)}}, host.Commands())
}

func TestEqualizerPage(t *testing.T) {
	assert := assert.New(t)
	host := dawtest.New(20)
	host.Selected = 5
	c, _ := newTestController(t, Master, host, Options{})
	require.NoError(t, c.setPage(mcu.Equalizer))
	host.Reset()

	tracks := c.Tracks()
	assert.Equal(daw.TrackParam(5, daw.OffsetEQGain), tracks[0].Slider)
	assert.Equal(daw.TrackParam(5, daw.OffsetEQFreq), tracks[0].Knob)
	assert.Equal(daw.TrackParam(5, daw.OffsetEQQ+1), tracks[4].Knob)
	assert.Equal(daw.QReset, tracks[4].ResetValue)
	assert.Equal(daw.NoParam, tracks[7].Slider)
	assert.Equal(mcu.KnobOff, tracks[7].Mode)

	// Pressing a band frequency knob resets the band gain.
	press(t, c, mcu.Encoder_1)
	assert.Equal([]daw.Command{daw.ParamSet{ID: daw.TrackParam(5, daw.OffsetEQGain), Value: daw.NeutralValue}}, host.Commands())
}

func TestNoLiveTracks(t *testing.T) {
	assert := assert.New(t)
	host := dawtest.New(0)
	c, _ := newTestController(t, Master, host, Options{})

	inRange := func(track int) bool { return track == 0 || track == -1 }
	for _, p := range []mcu.Page{mcu.Pan, mcu.Stereo, mcu.Sends, mcu.Effects, mcu.Equalizer, mcu.Pan} {
		require.NoError(t, c.setPage(p))
		require.NoError(t, c.OnRefresh(daw.RefreshAll))
		for _, tr := range c.Tracks()[:8] {
			assert.Equal(0, tr.Num, "%v", p)
		}

		for _, b := range []mcu.Button{mcu.FaderBankLeft, mcu.FaderBankRight, mcu.FaderChannelLeft, mcu.FaderChannelRight, mcu.Select_1, mcu.Mute_1 + 3, mcu.Encoder_1 + 2} {
			press(t, c, b)
		}
		_, err := c.HandleMIDI(mcu.ControlChange{Controller: mcu.EncoderCC1 + 5, Value: 2}, mcu.FromDevice)
		require.NoError(t, err)
		_, err = c.HandleMIDI(mcu.PitchBend{Channel: 4, Value: 0x2000}, mcu.FromDevice)
		require.NoError(t, err)
		assert.Equal(0, c.FirstTrack())
		require.NoError(t, c.OnRefresh(daw.RefreshAll))
	}

	for _, cmd := range host.Commands() {
		switch cmd := cmd.(type) {
		case daw.ParamSet:
			if tr, ok := cmd.ID.Track(); ok {
				assert.True(inRange(tr), "%v", cmd)
			}
		case daw.ParamNudge:
			if tr, ok := cmd.ID.Track(); ok {
				assert.True(inRange(tr), "%v", cmd)
			}
		case daw.SelectTrack:
			assert.True(inRange(cmd.Track), "%v", cmd)
		case daw.TrackToggle:
			assert.True(inRange(cmd.Track), "%v", cmd)
		case daw.RefreshTrack:
			assert.True(inRange(cmd.Track), "%v", cmd)
		}
	}
}

func TestKnobTurnAndReset(t *testing.T) {
	assert := assert.New(t)
	host := dawtest.New(20)
	c, _ := newTestController(t, Master, host, Options{})
	pan := daw.TrackParam(1, daw.OffsetPan)

	handled, err := c.HandleMIDI(mcu.ControlChange{Controller: mcu.EncoderCC1, Value: 0x43}, mcu.FromDevice)
	require.NoError(t, err)
	assert.True(handled)
	assert.Equal([]daw.Command{daw.ParamNudge{ID: pan, Delta: -3, Resolution: mcu.Resolution(3)}}, host.Commands())
	assert.Contains(c.Message(), "Track 1 - Pan: ")

	host.Reset()
	press(t, c, mcu.Smooth)
	press(t, c, mcu.Encoder_1)
	assert.Equal([]daw.Command{daw.ParamSet{ID: pan, Value: daw.NeutralValue, Smooth: defaultSmoothSpeed}}, host.Commands())
}

func TestFaderMove(t *testing.T) {
	assert := assert.New(t)
	host := dawtest.New(20)
	c, _ := newTestController(t, Master, host, Options{})

	handled, err := c.HandleMIDI(mcu.PitchBend{Channel: 1, Value: 0x3000}, mcu.FromDevice)
	require.NoError(t, err)
	assert.True(handled)
	want := mcu.FromMcuFader(0x3000, daw.MaxValue)
	assert.Equal([]daw.Command{daw.ParamSet{ID: daw.TrackParam(2, daw.OffsetVolume), Value: want}}, host.Commands())
	assert.Contains(c.Message(), "Track 2 - Vol")

	host.Reset()
	_, err = c.HandleMIDI(mcu.PitchBend{Channel: 8, Value: 0x3000}, mcu.FromDevice)
	require.NoError(t, err)
	assert.Equal([]daw.Command{daw.ParamSet{ID: daw.MasterVolume, Value: want}}, host.Commands())
	assert.Contains(c.Message(), "Master Vol")
}

func TestFaderTouchSelectsTrack(t *testing.T) {
	assert := assert.New(t)
	host := dawtest.New(20)
	c, _ := newTestController(t, Master, host, Options{})

	press(t, c, mcu.Slider_1+3)
	assert.Equal([]daw.Command{daw.SelectTrack{Track: 4}}, host.Commands())

	// Touching again does not reselect.
	host.Reset()
	press(t, c, mcu.Slider_1+3)
	assert.Empty(host.Commands())

	require.NoError(t, c.setPage(mcu.Sends))
	host.Reset()
	press(t, c, mcu.Slider_1)
	assert.Empty(host.Commands())
}

func TestFreePage(t *testing.T) {
	host := dawtest.New(20)
	host.SetRemote(daw.RemoteID(1, 400+8+freeSlider), 0.25)
	c, _ := newTestController(t, Master, host, Options{})
	require.NoError(t, c.setPage(mcu.Free))

	t.Run("assignment", func(t *testing.T) {
		assert := assert.New(t)
		tracks := c.Tracks()
		assert.Equal([]int{0, 1, 2, 3, 4, 5, 6, 7, FreeMaster}, nums(tracks))
		assert.Equal(400, tracks[0].Base)
		assert.Equal(daw.ParamID(407), tracks[0].Slider)
		assert.Equal(4096, c.FreeValue(1))
		assert.Equal(freeCenter, c.FreeValue(0))
	})

	t.Run("pitch bend", func(t *testing.T) {
		assert := assert.New(t)
		host.Reset()
		handled, err := c.HandleMIDI(mcu.PitchBend{Channel: 0, Value: 0x2000}, mcu.FromDevice)
		require.NoError(t, err)
		assert.True(handled)
		assert.Equal(8192, c.FreeValue(0))
		msb := float64(0x2000 >> 7)
		assert.Equal([]daw.Command{
			daw.RefreshTrack{Track: 0},
			daw.RemoteCC{ID: daw.RemoteID(1, 407), Value: int(msb / 127 * daw.RemoteMax), Kind: daw.RemoteAbsolute},
		}, host.Commands())
		assert.Equal("Free slider 407: 50%", c.Message())
	})

	t.Run("knob", func(t *testing.T) {
		assert := assert.New(t)
		host.Reset()
		_, err := c.HandleMIDI(mcu.ControlChange{Controller: mcu.EncoderCC1 + 1, Value: 2}, mcu.FromDevice)
		require.NoError(t, err)
		assert.Equal(daw.RemoteCC{ID: daw.RemoteID(1, 408), Value: 2, Kind: daw.RemoteIncrement}, host.Commands()[0])
		assert.Equal("Free knob 408: +2", c.Message())
	})

	t.Run("knob held", func(t *testing.T) {
		assert := assert.New(t)
		host.Reset()
		press(t, c, mcu.Encoder_1)
		assert.True(c.Tracks()[0].Held)
		assert.Equal(daw.ParamID(401), c.Tracks()[0].Knob)
		assert.Equal(daw.RemoteCC{ID: daw.RemoteID(1, 402), Kind: daw.RemoteToggle}, host.Commands()[0])

		host.Reset()
		_, err := c.HandleMIDI(mcu.ControlChange{Controller: mcu.EncoderCC1, Value: 0x41}, mcu.FromDevice)
		require.NoError(t, err)
		assert.Equal(daw.RemoteCC{ID: daw.RemoteID(1, 401), Value: -1, Kind: daw.RemoteIncrement}, host.Commands()[0])

		release(t, c, mcu.Encoder_1)
		assert.False(c.Tracks()[0].Held)
	})

	t.Run("buttons", func(t *testing.T) {
		assert := assert.New(t)
		host.Reset()
		press(t, c, mcu.Mute_1+2)
		assert.Equal(daw.RemoteCC{ID: daw.RemoteID(1, 416+5), Value: daw.RemoteMax, Kind: daw.RemoteAbsolute}, host.Commands()[0])
		assert.Equal("Free button 421: on", c.Message())

		host.Reset()
		release(t, c, mcu.Mute_1+2)
		assert.Equal(daw.RemoteCC{ID: daw.RemoteID(1, 421), Kind: daw.RemoteAbsolute}, host.Commands()[0])
	})

	t.Run("bank", func(t *testing.T) {
		assert := assert.New(t)
		require.NoError(t, c.setFirstTrack(60))
		assert.Equal([]int{60, 61, 62, 63, 0, 1, 2, 3, FreeMaster}, nums(c.Tracks()))
	})

	t.Run("leaving keeps banks apart", func(t *testing.T) {
		assert := assert.New(t)
		require.NoError(t, c.setPage(mcu.Pan))
		assert.Equal(1, c.FirstTrack())
		require.NoError(t, c.setPage(mcu.Free))
		assert.Equal(60, c.FirstTrack())
	})
}

func TestDirtyThenRefresh(t *testing.T) {
	assert := assert.New(t)
	host := dawtest.New(20)
	c, port := newTestController(t, Master, host, Options{})
	require.NoError(t, c.OnRefresh(daw.RefreshControls))
	port.ClearSentMessages()

	host.SetParam(daw.TrackParam(3, daw.OffsetVolume), daw.MaxValue)
	c.OnDirtyMixerTrack(3)
	assert.Empty(port.GetSentMessages(), "dirty alone draws nothing")

	require.NoError(t, c.OnRefresh(daw.RefreshControls))
	// Track 3 sits in slot 2.
	assert.Contains(port.GetSentMessages(), mcu.FaderMsg(2, mcu.ToMcuFader(daw.MaxValue, daw.MaxValue)))
	for _, tr := range c.Tracks() {
		assert.False(tr.Dirty)
	}

	// Nothing changed, nothing is resent.
	port.ClearSentMessages()
	c.OnDirtyMixerTrack(-1)
	require.NoError(t, c.OnRefresh(daw.RefreshControls))
	assert.Empty(port.GetSentMessages())
}

func TestColumnButtons(t *testing.T) {
	host := dawtest.New(20)
	host.Tracks[1].RecordingFile = "take1.wav"

	tests := []struct {
		name    string
		button  mcu.Button
		want    []daw.Command
		message string
	}{
		{"arm", mcu.Record_1, []daw.Command{daw.TrackToggle{Track: 1, Property: daw.TrackArm}}, "Track 1 recording to take1.wav"},
		{"disarm", mcu.Record_1, []daw.Command{daw.TrackToggle{Track: 1, Property: daw.TrackArm}}, "Track 1 unarmed"},
		{"solo", mcu.Solo_1 + 1, []daw.Command{daw.TrackToggle{Track: 2, Property: daw.TrackSolo}, daw.SelectTrack{Track: 2}}, ""},
		{"mute", mcu.Mute_1 + 2, []daw.Command{daw.TrackToggle{Track: 3, Property: daw.TrackEnable}}, ""},
		{"select", mcu.Select_8, []daw.Command{daw.ShowWindow{Window: daw.Mixer}, daw.SelectTrack{Track: 8}}, ""},
	}

	c, _ := newTestController(t, Master, host, Options{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host.Reset()
			c.msg = ""
			press(t, c, tt.button)
			assert.Equal(t, tt.want, host.Commands())
			assert.Equal(t, tt.message, c.Message())
		})
	}
}

func TestShiftedButtons(t *testing.T) {
	host := dawtest.New(20)
	c, _ := newTestController(t, Master, host, Options{})

	tests := []struct {
		name   string
		button mcu.Button
		want   daw.Command
	}{
		{"F1", mcu.Cut, daw.TransportAction{Action: daw.ActF1, Value: 2}},
		{"F8", mcu.UndoRedo, daw.TransportAction{Action: daw.ActF8, Value: 2}},
		{"no", mcu.Escape, daw.TransportAction{Action: daw.ActNo, Value: 2}},
		{"yes", mcu.Enter, daw.TransportAction{Action: daw.ActYes, Value: 2}},
		{"marker and name", mcu.AddMarker, daw.TransportAction{Action: daw.ActAddMarkerAndName, Value: 2}},
		{"save new", mcu.Save, daw.TransportAction{Action: daw.ActSaveNew, Value: 2}},
		{"slow rewind", mcu.Rewind, daw.PlaybackSpeed{Speed: 0.5}},
		{"fast forward", mcu.FastForward, daw.PlaybackSpeed{Speed: 2}},
		{"link from here", mcu.LinkChannel, daw.LinkChannels{StartingFromThis: true}},
	}

	press(t, c, mcu.Shift)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host.Reset()
			press(t, c, tt.button)
			require.NotEmpty(t, host.Commands())
			assert.Equal(t, tt.want, host.Commands()[0])
		})
	}

	host.Reset()
	release(t, c, mcu.Rewind)
	assert.Equal(t, []daw.Command{daw.PlaybackSpeed{Speed: 1}}, host.Commands())
	release(t, c, mcu.Shift)

	host.Reset()
	press(t, c, mcu.Cut)
	assert.Equal(t, []daw.Command{daw.TransportAction{Action: daw.ActCut, Value: 2}}, host.Commands())
	assert.Equal(t, "Cut", c.Message())
}

func TestJog(t *testing.T) {
	host := dawtest.New(20)
	host.Selections[daw.SelectMixerTrack] = "Drums"
	c, _ := newTestController(t, Master, host, Options{})

	jog := func(t *testing.T, value uint8) {
		t.Helper()
		handled, err := c.HandleMIDI(mcu.ControlChange{Controller: mcu.JogCC, Value: value}, mcu.FromDevice)
		require.NoError(t, err)
		require.True(t, handled)
	}

	t.Run("default relocates", func(t *testing.T) {
		host.Reset()
		jog(t, 3)
		assert.Equal(t, []daw.Command{
			daw.ShowWindow{Window: daw.Playlist, Focus: true},
			daw.TransportAction{Action: daw.ActJog, Value: 3},
		}, host.Commands())
	})

	t.Run("scrub", func(t *testing.T) {
		press(t, c, mcu.Scrub)
		defer press(t, c, mcu.Scrub)
		host.Position = 100
		host.Reset()
		jog(t, 0x42)
		assert.Equal(t, daw.SongPosition{Ticks: 80}, host.Commands()[1])
	})

	t.Run("tempo", func(t *testing.T) {
		press(t, c, mcu.Tempo)
		host.Reset()
		jog(t, 1)
		assert.Equal(t, []daw.Command{daw.ParamNudge{ID: daw.Tempo, Delta: 1, Resolution: mcu.Resolution(1)}}, host.Commands())
		release(t, c, mcu.Tempo)
		assert.Equal(t, mcu.NoButton, c.jogSource)
	})

	t.Run("mixer selection", func(t *testing.T) {
		press(t, c, mcu.Mixer)
		defer release(t, c, mcu.Mixer)
		host.Reset()
		jog(t, 0x41)
		assert.Equal(t, daw.StepSelection{Selector: daw.SelectMixerTrack, Delta: -1}, host.Commands()[0])
		assert.Equal(t, arrows+"Mixer track: Drums", c.Message())
	})

	t.Run("arrows step the jog source", func(t *testing.T) {
		press(t, c, mcu.Move)
		defer release(t, c, mcu.Move)
		host.Reset()
		press(t, c, mcu.Down)
		assert.Equal(t, []daw.Command{daw.TransportAction{Action: daw.ActMoveJog, Value: -2}}, host.Commands())
	})

	t.Run("arrows without a jog source", func(t *testing.T) {
		host.Reset()
		press(t, c, mcu.Left)
		assert.Equal(t, []daw.Command{daw.TransportAction{Action: daw.ActLeft, Value: 2}}, host.Commands())
	})

	t.Run("free jog", func(t *testing.T) {
		press(t, c, mcu.Free2)
		defer release(t, c, mcu.Free2)
		host.Reset()
		jog(t, 0x45)
		assert.Equal(t, []daw.Command{daw.RemoteCC{ID: daw.RemoteID(1, FreeJogID+1), Value: -5, Kind: daw.RemoteIncrement}}, host.Commands())
	})
}

func TestPageButton(t *testing.T) {
	assert := assert.New(t)
	host := dawtest.New(20)
	c, port := newTestController(t, Master, host, Options{})

	press(t, c, mcu.EffectsButton)
	assert.Equal(mcu.Effects, c.Page())
	assert.Equal(mcu.Effects.Description(), c.Message())
	assert.Contains(port.GetSentMessages(), mcu.LEDMsg(mcu.EffectsButton, mcu.LEDOn))
	assert.Contains(port.GetSentMessages(), mcu.LEDMsg(mcu.PanButton, mcu.LEDOff))
}

func TestMasterSpreadsBanks(t *testing.T) {
	tests := []struct {
		side      Side
		master    int
		extenders []uint8
	}{
		{Left, 17, []uint8{1, 9}},
		{Right, 1, []uint8{9, 17}},
	}

	for _, tt := range tests {
		t.Run(tt.side.String(), func(t *testing.T) {
			assert := assert.New(t)
			host := dawtest.New(40)
			d := &fakeDispatcher{n: 2}
			c, _ := newTestController(t, Master, host, Options{Side: tt.side, Dispatcher: d})
			require.NoError(t, c.setFirstTrack(1))
			d.got = nil

			// Reapplying the active page spreads the banks.
			require.NoError(t, c.setPage(mcu.Pan))
			assert.Equal(tt.master, c.FirstTrack())
			var firsts []uint8
			for _, s := range d.got {
				if n, ok := s.ev.(mcu.NoteOn); ok && n.Key == mcu.FirstTrackKey {
					firsts = append(firsts, n.Velocity)
				}
			}
			assert.Equal(tt.extenders, firsts)
		})
	}
}

func TestMasterForwardsBankButtons(t *testing.T) {
	assert := assert.New(t)
	host := dawtest.New(40)
	d := &fakeDispatcher{n: 2}
	c, _ := newTestController(t, Master, host, Options{Dispatcher: d})

	press(t, c, mcu.FaderBankRight)
	ev := mcu.NoteOn{Key: mcu.FaderBankRight, Velocity: 0x7F}
	assert.Equal([]sent{{0, ev}, {1, ev}}, d.got)
}

func TestToggleSide(t *testing.T) {
	assert := assert.New(t)
	host := dawtest.New(40)
	d := &fakeDispatcher{n: 1}
	c, _ := newTestController(t, Master, host, Options{Dispatcher: d})

	press(t, c, mcu.Shift)
	press(t, c, mcu.NameValue)
	assert.Equal(Right, c.side)
	assert.Equal(1, c.FirstTrack())
	assert.Equal("Extender on right", c.Message())
}

func TestExtender(t *testing.T) {
	assert := assert.New(t)
	host := dawtest.New(40)
	c, port := newTestController(t, Extender, host, Options{})
	assert.Len(c.Tracks(), 8)

	handled, err := c.HandleMIDI(mcu.NoteOn{Key: mcu.FirstTrackKey, Velocity: 9}, mcu.FromDispatch)
	require.NoError(t, err)
	assert.True(handled)
	assert.Equal(9, c.FirstTrack())
	assert.Equal(9, c.Tracks()[0].Num)

	// Only the master may move the bank this way.
	handled, err = c.HandleMIDI(mcu.NoteOn{Key: mcu.FirstTrackKey, Velocity: 3}, mcu.FromDevice)
	require.NoError(t, err)
	assert.False(handled)
	assert.Equal(9, c.FirstTrack())

	// No transport section.
	handled, err = c.HandleMIDI(mcu.NoteOn{Key: mcu.Play, Velocity: 0x7F}, mcu.FromDevice)
	require.NoError(t, err)
	assert.False(handled)
	handled, err = c.HandleMIDI(mcu.ControlChange{Controller: mcu.JogCC, Value: 1}, mcu.FromDevice)
	require.NoError(t, err)
	assert.False(handled)

	// Page changes arrive from the master and are always applied.
	port.ClearSentMessages()
	handled, err = c.HandleMIDI(mcu.NoteOn{Key: mcu.PanButton, Velocity: 0x7F}, mcu.FromDispatch)
	require.NoError(t, err)
	assert.True(handled)
	assert.Equal(9, c.FirstTrack())

	// The extender has no EQ.
	require.NoError(t, c.setPage(mcu.Equalizer))
	for _, tr := range c.Tracks() {
		assert.Equal(daw.NoParam, tr.Knob)
	}
}

func TestMasterSectionLEDs(t *testing.T) {
	assert := assert.New(t)
	host := dawtest.New(20)
	c, port := newTestController(t, Master, host, Options{})

	host.Playing = true
	host.Tracks[2].Armed = true
	require.NoError(t, c.OnRefresh(daw.RefreshLEDs))
	msgs := port.GetSentMessages()
	assert.Equal([]midi.Message{
		mcu.LEDMsg(mcu.Stop, mcu.LEDOff),
		mcu.LEDMsg(mcu.RudeSoloLED, mcu.LEDOn),
	}, msgs)

	port.ClearSentMessages()
	host.Recording = true
	require.NoError(t, c.OnRefresh(daw.RefreshLEDs))
	assert.Contains(port.GetSentMessages(), mcu.LEDMsg(mcu.RudeSoloLED, mcu.LEDBlink))
}

func TestBeatIndicator(t *testing.T) {
	assert := assert.New(t)
	host := dawtest.New(4)
	c, port := newTestController(t, Master, host, Options{})

	require.NoError(t, c.OnUpdateBeatIndicator(1))
	require.NoError(t, c.OnUpdateBeatIndicator(2))
	require.NoError(t, c.OnUpdateBeatIndicator(0))
	assert.Equal([]midi.Message{
		mcu.LEDMsg(mcu.Play, mcu.LEDOn),
		mcu.LEDMsg(mcu.Play, mcu.LEDOff),
	}, port.GetSentMessages())
}

func TestIdle(t *testing.T) {
	assert := assert.New(t)
	host := dawtest.New(4)
	c, port := newTestController(t, Master, host, Options{})

	require.NoError(t, c.OnIdle())
	port.ClearSentMessages()

	require.NoError(t, c.OnIdle())
	assert.Empty(port.GetSentMessages())

	c.OnSendMessage("hello")
	require.NoError(t, c.OnIdle())
	assert.Equal([]midi.Message{mcu.TextMsg(mcu.ProductMaster, 0, "hello")}, port.GetSentMessages())

	port.ClearSentMessages()
	host.Clock = daw.Time{Bar: 2, Step: 1, Tick: 0}
	require.NoError(t, c.OnIdle())
	assert.NotEmpty(port.GetSentMessages())
}

func TestDeInitWhenClosing(t *testing.T) {
	host := dawtest.New(4)
	host.IsClosing = true
	c, port := newTestController(t, Master, host, Options{})
	c.now = func() time.Time { return time.Date(2024, 3, 9, 14, 5, 6, 0, time.UTC) }

	require.NoError(t, c.OnDeInit())
	assert.Contains(t, port.GetSentMessages(),
		mcu.TextMsg(mcu.ProductMaster, 0, "FL Studio session closed at Sat Mar  9 14:05:06 2024"))
}

func TestFormatTime(t *testing.T) {
	tests := []struct {
		name    string
		time    daw.Time
		minutes bool
		want    string
	}{
		{"bars", daw.Time{Bar: 12, Step: 3, Tick: 45}, false, " 1203  045"},
		{"bars truncate", daw.Time{Bar: 1234, Step: 16, Tick: 7}, false, "23416  007"},
		{"minutes", daw.Time{Bar: 75, Step: 3, Tick: 7}, true, "  1150307 "},
		{"waiting", daw.Time{Bar: daw.WaitingBar}, true, "-   00000 "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatTime(tt.time, tt.minutes))
		})
	}
}

func TestZeros(t *testing.T) {
	tests := []struct {
		v, n int
		pad  byte
		want string
	}{
		{7, 3, '0', "007"},
		{7, 3, ' ', "  7"},
		{1234, 3, ' ', "234"},
		{-5, 3, ' ', "- 5"},
		{0, 2, '0', "00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, zeros(tt.v, tt.n, tt.pad), "zeros(%d, %d, %q)", tt.v, tt.n, tt.pad)
	}
}

func TestWrap(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(2, wrap(18, 16))
	assert.Equal(15, wrap(-1, 16))
	assert.Equal(0, wrap(5, 0))
	assert.Equal(uint8(1), wrap[uint8](9, 8))
}
