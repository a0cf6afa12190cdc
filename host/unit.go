package host

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jdginn/fltouch/devices"
	"github.com/jdginn/fltouch/devices/mcu"
	"github.com/jdginn/fltouch/surface"
)

type task struct {
	name string
	run  func(u *unit) error
}

func handle(ev mcu.Event, src mcu.Source) task {
	return task{"midi", func(u *unit) error {
		handled, err := u.ctrl.HandleMIDI(ev, src)
		if !handled {
			u.log.Debug("Unhandled event", "event", ev.String(), "source", src)
		}
		return err
	}}
}

// inbox is an unbounded FIFO. Pushing never blocks.
type inbox struct {
	mu    sync.Mutex
	tasks []task
	wake  chan struct{}
}

func newInbox() *inbox {
	return &inbox{wake: make(chan struct{}, 1)}
}

func (b *inbox) push(t task) {
	b.mu.Lock()
	b.tasks = append(b.tasks, t)
	b.mu.Unlock()
	select {
	case b.wake <- struct{}{}:
	default:
	}
}

func (b *inbox) take() []task {
	b.mu.Lock()
	defer b.mu.Unlock()
	t := b.tasks
	b.tasks = nil
	return t
}

type unit struct {
	ctrl  *surface.Controller
	port  *devices.MidiDevice
	inbox *inbox
	log   *slog.Logger
}

func (u *unit) String() string {
	return fmt.Sprintf("%s unit", u.ctrl.Role())
}

func (u *unit) push(t task) {
	u.inbox.push(t)
}

func (u *unit) run(t task) {
	if err := t.run(u); err != nil {
		u.log.Error("Task failed", "task", t.name, "err", err)
	}
}

// loop owns the controller. It initialises the unit once its ports are open and
// deinitialises it when ctx is done.
func (u *unit) loop(ctx context.Context) {
	select {
	case <-ctx.Done():
		return
	case <-u.port.Ready():
	}

	dev := u.ctrl.Device()
	dev.SetAssigned(true)
	u.run(task{"init", func(u *unit) error { return u.ctrl.OnInit() }})

	for {
		select {
		case <-ctx.Done():
			u.run(task{"deinit", func(u *unit) error { return u.ctrl.OnDeInit() }})
			dev.SetAssigned(false)
			return
		case <-u.inbox.wake:
			for _, t := range u.inbox.take() {
				u.run(t)
			}
		}
	}
}
