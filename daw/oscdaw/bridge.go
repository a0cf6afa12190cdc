// Package oscdaw talks to a DAW-side script over OSC. The script pushes mixer, transport and
// UI state; the Bridge caches it, answers the surface's queries from the cache and turns
// mutations into outbound messages.
//
// Inbound addresses:
//
//	/track/count i                    /track/selected i
//	/track/@/name s                   /track/@/color i
//	/track/@/peak f                   /track/@/{armed,solo,enabled} b
//	/track/@/file s                   /track/@/send/@/active b
//	/track/@/plugin/@/valid b         /track/@/plugin/@/automation b
//	/param/@/value i                  /param/@/name s
//	/param/@/string s                 /tempo f
//	/transport/{playing,recording} b  /transport/loop i (0 pattern, 1 song)
//	/transport/position i             /time/{bar,step,tick} i
//	/flags/{changed,metronome,precount,timemin} b
//	/focus/@ b                        /snap i
//	/ui/{caption,hint,undo,title,version} s
//	/ui/selection/@ s                 /ui/closing b
//	/remote/@/value f                 /dirty i
//	/refresh i                        /beat i
//	/waiting i
package oscdaw

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/jdginn/fltouch/daw"
	"github.com/jdginn/fltouch/devices"
	"github.com/jdginn/fltouch/logging"
)

// defaultColor is reported for tracks the DAW has not described yet.
const defaultColor = -10261391

type trackState struct {
	name    string
	color   int
	peak    float64
	armed   bool
	solo    bool
	enabled bool
	file    string
}

type paramState struct {
	value int
	name  string
	str   string
}

type pair struct{ a, b int }

type state struct {
	trackCount int
	tracks     map[int]*trackState
	selected   int
	plugins    map[pair][2]bool // valid, automated
	sends      map[pair]bool
	params     map[daw.ParamID]*paramState
	tempo      float64

	playing   bool
	recording bool
	loopMode  int
	position  int
	time      daw.Time
	flags     map[string]bool
	focus     map[string]bool
	snap      int
	ui        map[string]string
	selection map[string]string
	closing   bool
	remote    map[int]float64
}

// Bridge implements daw.Host and daw.Notifier over an OSC device.
type Bridge struct {
	dev *devices.OscDevice
	log *slog.Logger

	mu sync.RWMutex
	s  state

	lmu     sync.Mutex
	dirty   []func(int)
	refresh []func(daw.RefreshFlags)
	beat    []func(int)
	waiting []func()
}

var (
	_ daw.Host     = (*Bridge)(nil)
	_ daw.Notifier = (*Bridge)(nil)
)

// New returns a Bridge on dev. Call Bind before dev starts serving.
func New(dev *devices.OscDevice) *Bridge {
	return &Bridge{
		dev: dev,
		log: logging.Get(logging.OSC_IN).With("component", "oscdaw"),
		s: state{
			tracks:    map[int]*trackState{},
			plugins:   map[pair][2]bool{},
			sends:     map[pair]bool{},
			params:    map[daw.ParamID]*paramState{},
			flags:     map[string]bool{},
			focus:     map[string]bool{},
			snap:      3,
			ui:        map[string]string{"title": "DAW"},
			selection: map[string]string{},
			remote:    map[int]float64{},
		},
	}
}

// Run serves inbound messages until ctx is cancelled.
func (b *Bridge) Run(ctx context.Context) error {
	return b.dev.Run(ctx)
}

func atoi(captures []string, i int) (int, error) {
	if i >= len(captures) {
		return 0, fmt.Errorf("missing capture %d", i)
	}
	n, err := strconv.Atoi(captures[i])
	if err != nil {
		return 0, fmt.Errorf("capture %q: %w", captures[i], err)
	}
	return n, nil
}

// track returns the cached state of t, creating it. b.mu must be held for writing.
func (b *Bridge) track(t int) *trackState {
	ts, ok := b.s.tracks[t]
	if !ok {
		ts = &trackState{color: defaultColor, enabled: true}
		b.s.tracks[t] = ts
	}
	return ts
}

func (b *Bridge) param(id daw.ParamID) *paramState {
	ps, ok := b.s.params[id]
	if !ok {
		ps = &paramState{}
		b.s.params[id] = ps
	}
	return ps
}

// update runs f with the cache locked for writing.
func (b *Bridge) update(f func(s *state)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	f(&b.s)
}

func (b *Bridge) updateTrack(captures []string, f func(t *trackState)) error {
	t, err := atoi(captures, 0)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	f(b.track(t))
	return nil
}

func (b *Bridge) updateParam(captures []string, f func(p *paramState)) error {
	id, err := atoi(captures, 0)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	f(b.param(daw.ParamID(id)))
	return nil
}

func (b *Bridge) updatePair(captures []string, f func(s *state, p pair)) error {
	x, err := atoi(captures, 0)
	if err != nil {
		return err
	}
	y, err := atoi(captures, 1)
	if err != nil {
		return err
	}
	b.update(func(s *state) { f(s, pair{x, y}) })
	return nil
}

// Bind registers every inbound address.
func (b *Bridge) Bind() error {
	d := b.dev
	binds := []func() error{
		func() error {
			return d.BindInt("/track/count", func(v int64) error {
				b.update(func(s *state) { s.trackCount = int(v) })
				return nil
			})
		},
		func() error {
			return d.BindInt("/track/selected", func(v int64) error {
				b.update(func(s *state) { s.selected = int(v) })
				return nil
			})
		},
		func() error {
			return d.BindCapturedString("/track/@/name", func(c []string, v string) error {
				return b.updateTrack(c, func(t *trackState) { t.name = v })
			})
		},
		func() error {
			return d.BindCapturedInt("/track/@/color", func(c []string, v int64) error {
				return b.updateTrack(c, func(t *trackState) { t.color = int(v) })
			})
		},
		func() error {
			return d.BindCapturedFloat("/track/@/peak", func(c []string, v float64) error {
				return b.updateTrack(c, func(t *trackState) { t.peak = v })
			})
		},
		func() error {
			return d.BindCapturedBool("/track/@/armed", func(c []string, v bool) error {
				return b.updateTrack(c, func(t *trackState) { t.armed = v })
			})
		},
		func() error {
			return d.BindCapturedBool("/track/@/solo", func(c []string, v bool) error {
				return b.updateTrack(c, func(t *trackState) { t.solo = v })
			})
		},
		func() error {
			return d.BindCapturedBool("/track/@/enabled", func(c []string, v bool) error {
				return b.updateTrack(c, func(t *trackState) { t.enabled = v })
			})
		},
		func() error {
			return d.BindCapturedString("/track/@/file", func(c []string, v string) error {
				return b.updateTrack(c, func(t *trackState) { t.file = v })
			})
		},
		func() error {
			return d.BindCapturedBool("/track/@/send/@/active", func(c []string, v bool) error {
				return b.updatePair(c, func(s *state, p pair) { s.sends[p] = v })
			})
		},
		func() error {
			return d.BindCapturedBool("/track/@/plugin/@/valid", func(c []string, v bool) error {
				return b.updatePair(c, func(s *state, p pair) {
					pl := s.plugins[p]
					pl[0] = v
					s.plugins[p] = pl
				})
			})
		},
		func() error {
			return d.BindCapturedBool("/track/@/plugin/@/automation", func(c []string, v bool) error {
				return b.updatePair(c, func(s *state, p pair) {
					pl := s.plugins[p]
					pl[1] = v
					s.plugins[p] = pl
				})
			})
		},
		func() error {
			return d.BindCapturedInt("/param/@/value", func(c []string, v int64) error {
				return b.updateParam(c, func(p *paramState) { p.value = int(v) })
			})
		},
		func() error {
			return d.BindCapturedString("/param/@/name", func(c []string, v string) error {
				return b.updateParam(c, func(p *paramState) { p.name = v })
			})
		},
		func() error {
			return d.BindCapturedString("/param/@/string", func(c []string, v string) error {
				return b.updateParam(c, func(p *paramState) { p.str = v })
			})
		},
		func() error {
			return d.BindFloat("/tempo", func(v float64) error {
				b.update(func(s *state) { s.tempo = v })
				return nil
			})
		},
		func() error {
			return d.BindBool("/transport/playing", func(v bool) error {
				b.update(func(s *state) { s.playing = v })
				return nil
			})
		},
		func() error {
			return d.BindBool("/transport/recording", func(v bool) error {
				b.update(func(s *state) { s.recording = v })
				return nil
			})
		},
		func() error {
			return d.BindInt("/transport/loop", func(v int64) error {
				b.update(func(s *state) { s.loopMode = int(v) })
				return nil
			})
		},
		func() error {
			return d.BindInt("/transport/position", func(v int64) error {
				b.update(func(s *state) { s.position = int(v) })
				return nil
			})
		},
		func() error {
			return d.BindCapturedInt("/time/@", func(c []string, v int64) error {
				var err error
				b.update(func(s *state) {
					switch c[0] {
					case "bar":
						s.time.Bar = int(v)
					case "step":
						s.time.Step = int(v)
					case "tick":
						s.time.Tick = int(v)
					default:
						err = fmt.Errorf("unknown time field %q", c[0])
					}
				})
				return err
			})
		},
		func() error {
			return d.BindCapturedBool("/flags/@", func(c []string, v bool) error {
				b.update(func(s *state) { s.flags[c[0]] = v })
				return nil
			})
		},
		func() error {
			return d.BindCapturedBool("/focus/@", func(c []string, v bool) error {
				b.update(func(s *state) { s.focus[c[0]] = v })
				return nil
			})
		},
		func() error {
			return d.BindInt("/snap", func(v int64) error {
				b.update(func(s *state) { s.snap = int(v) })
				return nil
			})
		},
		func() error {
			return d.BindCapturedString("/ui/selection/@", func(c []string, v string) error {
				b.update(func(s *state) { s.selection[c[0]] = v })
				return nil
			})
		},
		func() error {
			return d.BindCapturedString("/ui/@", func(c []string, v string) error {
				b.update(func(s *state) { s.ui[c[0]] = v })
				return nil
			})
		},
		func() error {
			return d.BindBool("/ui/closing", func(v bool) error {
				b.update(func(s *state) { s.closing = v })
				return nil
			})
		},
		func() error {
			return d.BindCapturedFloat("/remote/@/value", func(c []string, v float64) error {
				id, err := atoi(c, 0)
				if err != nil {
					return err
				}
				b.update(func(s *state) { s.remote[id] = v })
				return nil
			})
		},
		func() error {
			return d.BindInt("/dirty", func(v int64) error {
				b.notifyDirty(int(v))
				return nil
			})
		},
		func() error {
			return d.BindInt("/refresh", func(v int64) error {
				b.notifyRefresh(daw.RefreshFlags(v))
				return nil
			})
		},
		func() error {
			return d.BindInt("/beat", func(v int64) error {
				b.notifyBeat(int(v))
				return nil
			})
		},
		func() error {
			return d.BindInt("/waiting", func(int64) error {
				b.notifyWaiting()
				return nil
			})
		},
	}
	for _, bind := range binds {
		if err := bind(); err != nil {
			return fmt.Errorf("bind oscdaw: %w", err)
		}
	}
	return nil
}
