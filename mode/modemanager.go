// Package mode tracks which mode of a surface is active and runs the callbacks registered for
// entering and leaving each mode.
package mode

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"golang.org/x/exp/constraints"
)

type callbackEvent[M constraints.Integer] struct {
	mode     M
	callback func() error
}

// Manager sets the current mode and runs transition callbacks.
//
// Callbacks run outside the lock, so they may call back into the Manager (e.g. Current).
type Manager[M constraints.Integer] struct {
	mu sync.Mutex

	currMode M
	valid    func(M) bool

	enter      []callbackEvent[M]
	leave      []callbackEvent[M]
	transition []func(from, to M) error
}

// NewManager returns a Manager starting in startingMode. valid may be nil, in which case every
// value of M is accepted by Set.
func NewManager[M constraints.Integer](startingMode M, valid func(M) bool) *Manager[M] {
	return &Manager[M]{
		currMode: startingMode,
		valid:    valid,
	}
}

// Current returns the active mode.
func (m *Manager[M]) Current() M {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currMode
}

// Is reports whether mode is active.
func (m *Manager[M]) Is(mode M) bool {
	return m.Current() == mode
}

// OnEnter registers callback to run whenever mode becomes active.
func (m *Manager[M]) OnEnter(mode M, callback func() error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enter = append(m.enter, callbackEvent[M]{mode: mode, callback: callback})
}

// OnLeave registers callback to run whenever mode stops being active.
func (m *Manager[M]) OnLeave(mode M, callback func() error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leave = append(m.leave, callbackEvent[M]{mode: mode, callback: callback})
}

// OnTransition registers callback to run on every mode change.
func (m *Manager[M]) OnTransition(callback func(from, to M) error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transition = append(m.transition, callback)
}

// Set makes newMode active and returns the previous mode.
//
// Setting the active mode again is a no-op. Otherwise leave callbacks for the old mode run first,
// then enter callbacks for the new mode, then transition callbacks. Every callback runs even
// if an earlier one fails; the failures are joined.
func (m *Manager[M]) Set(newMode M) (prev M, errs error) {
	m.mu.Lock()
	if m.valid != nil && !m.valid(newMode) {
		prev = m.currMode
		m.mu.Unlock()
		return prev, fmt.Errorf("invalid mode %v", newMode)
	}
	prev = m.currMode
	if newMode == prev {
		m.mu.Unlock()
		return prev, nil
	}
	m.currMode = newMode
	var run []func() error
	for _, cb := range m.leave {
		if cb.mode == prev {
			run = append(run, cb.callback)
		}
	}
	for _, cb := range m.enter {
		if cb.mode == newMode {
			run = append(run, cb.callback)
		}
	}
	transition := slices.Clone(m.transition)
	m.mu.Unlock()

	for _, cb := range run {
		if err := cb(); err != nil {
			errs = errors.Join(errs, err)
		}
	}
	for _, cb := range transition {
		if err := cb(prev, newMode); err != nil {
			errs = errors.Join(errs, err)
		}
	}
	return prev, errs
}
