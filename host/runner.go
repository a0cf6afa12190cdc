// Package host runs the surface controllers against a DAW.
//
// Every unit (the master and each extender) is an actor: one goroutine owns its controller
// and drains a FIFO inbox. MIDI input, the tickers and DAW notifications only enqueue, so a
// dirty notification is always handled before the refresh that follows it.
package host

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	midi "gitlab.com/gomidi/midi/v2"

	"github.com/jdginn/fltouch/daw"
	"github.com/jdginn/fltouch/devices"
	"github.com/jdginn/fltouch/devices/mcu"
	"github.com/jdginn/fltouch/devices/xtouch"
	"github.com/jdginn/fltouch/logging"
	"github.com/jdginn/fltouch/surface"
)

const (
	DefaultIdleInterval  = 20 * time.Millisecond
	DefaultMeterInterval = 50 * time.Millisecond
)

type Options struct {
	IdleInterval  time.Duration
	MeterInterval time.Duration
}

// Runner owns the units and the tickers. It is also the master's dispatch channel: receiver
// n is the n-th extender added.
type Runner struct {
	host     daw.Host
	notifier daw.Notifier
	opts     Options
	log      *slog.Logger

	master    *unit
	extenders []*unit
	started   atomic.Bool
}

func New(host daw.Host, notifier daw.Notifier, opts Options) *Runner {
	if opts.IdleInterval <= 0 {
		opts.IdleInterval = DefaultIdleInterval
	}
	if opts.MeterInterval <= 0 {
		opts.MeterInterval = DefaultMeterInterval
	}
	return &Runner{
		host:     host,
		notifier: notifier,
		opts:     opts,
		log:      logging.Get(logging.HOST),
	}
}

// AddUnit creates the controller for the unit connected through port. Units must be added
// before Run.
func (r *Runner) AddUnit(port *devices.MidiDevice, opts surface.Options) (*surface.Controller, error) {
	if r.started.Load() {
		return nil, errors.New("add unit: runner already started")
	}
	if port == nil {
		return nil, errors.New("add unit: no midi device")
	}
	if opts.Role == surface.Master {
		if r.master != nil {
			return nil, errors.New("add unit: only one master is supported")
		}
		opts.Dispatcher = r
	}

	dev := xtouch.New(port, opts.Role.ProductID())
	u := &unit{
		ctrl:  surface.New(dev, r.host, opts),
		port:  port,
		inbox: newInbox(),
		log:   r.log.With("unit", opts.Role.String(), "port", opts.Port),
	}
	port.BindAll(func(msg midi.Message) error {
		ev, ok := mcu.Decode(msg)
		if !ok {
			return nil
		}
		u.push(handle(ev, mcu.FromDevice))
		return nil
	})

	if opts.Role == surface.Master {
		r.master = u
	} else {
		r.extenders = append(r.extenders, u)
	}
	r.log.Info("Added unit", "role", opts.Role, "port", opts.Port, "receiver", len(r.extenders)-1)
	return u.ctrl, nil
}

// ReceiverCount implements surface.Dispatcher.
func (r *Runner) ReceiverCount() int {
	return len(r.extenders)
}

// Dispatch implements surface.Dispatcher by queueing ev on extender receiver.
func (r *Runner) Dispatch(receiver int, ev mcu.Event) {
	if receiver < 0 || receiver >= len(r.extenders) {
		r.log.Warn("Dispatch to unknown receiver", "receiver", receiver, "event", ev.String())
		return
	}
	r.extenders[receiver].push(handle(ev, mcu.FromDispatch))
}

// Message shows s on every unit.
func (r *Runner) Message(s string) {
	r.broadcast(task{"message", func(u *unit) error {
		u.ctrl.OnSendMessage(s)
		return nil
	}})
}

func (r *Runner) units() []*unit {
	var all []*unit
	if r.master != nil {
		all = append(all, r.master)
	}
	return append(all, r.extenders...)
}

func (r *Runner) broadcast(t task) {
	for _, u := range r.units() {
		u.push(t)
	}
}

func (r *Runner) subscribe() {
	r.notifier.OnDirty(func(track int) {
		r.broadcast(task{"dirty", func(u *unit) error {
			u.ctrl.OnDirtyMixerTrack(track)
			return nil
		}})
	})
	r.notifier.OnRefresh(func(flags daw.RefreshFlags) {
		r.broadcast(task{"refresh", func(u *unit) error {
			return u.ctrl.OnRefresh(flags)
		}})
	})
	r.notifier.OnBeat(func(v int) {
		r.broadcast(task{"beat", func(u *unit) error {
			return u.ctrl.OnUpdateBeatIndicator(v)
		}})
	})
	r.notifier.OnWaiting(func() {
		r.broadcast(task{"waiting", func(u *unit) error {
			return u.ctrl.OnWaitingForInput()
		}})
	})
}

// Run starts every unit and blocks until ctx is cancelled or a MIDI port fails. Units are
// deinitialised before Run returns.
func (r *Runner) Run(ctx context.Context) error {
	if !r.started.CompareAndSwap(false, true) {
		return errors.New("runner already started")
	}
	units := r.units()
	if len(units) == 0 {
		return errors.New("runner has no units")
	}
	r.subscribe()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	// Ports stay open until every unit has deinitialised.
	portCtx, stopPorts := context.WithCancel(context.Background())
	defer stopPorts()

	var (
		ports, loops sync.WaitGroup
		mu           sync.Mutex
		errs         error
	)
	for _, u := range units {
		ports.Add(1)
		go func() {
			defer ports.Done()
			if err := u.port.Run(portCtx); err != nil {
				mu.Lock()
				errs = errors.Join(errs, fmt.Errorf("%s: %w", u, err))
				mu.Unlock()
				cancel()
			}
		}()
		loops.Add(1)
		go func() {
			defer loops.Done()
			u.loop(ctx)
		}()
	}
	loops.Add(1)
	go func() {
		defer loops.Done()
		r.tick(ctx)
	}()

	r.log.Info("Running", "units", len(units), "receivers", r.ReceiverCount())
	loops.Wait()
	stopPorts()
	ports.Wait()
	r.log.Info("Stopped")

	mu.Lock()
	defer mu.Unlock()
	return errs
}

var (
	idleTask = task{"idle", func(u *unit) error {
		return u.ctrl.OnIdle()
	}}
	meterTask = task{"meters", func(u *unit) error {
		return u.ctrl.OnUpdateMeters()
	}}
)

func (r *Runner) tick(ctx context.Context) {
	idle := time.NewTicker(r.opts.IdleInterval)
	defer idle.Stop()
	meters := time.NewTicker(r.opts.MeterInterval)
	defer meters.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-idle.C:
			r.broadcast(idleTask)
		case <-meters.C:
			r.broadcast(meterTask)
		}
	}
}
