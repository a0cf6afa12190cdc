package devices

import (
	"strings"
	"sync"
	"time"

	"github.com/hypebeast/go-osc/osc"
)

type namedHandler struct {
	name    string
	handler osc.HandlerFunc
}

// Dispatcher is a custom osc.Dispatcher, implementing the osc.Dispatcher interface.
//
// Handler addresses may contain "@" segments which match any single segment. Matched
// segments are appended, as strings, to the arguments of the message passed to the handler.
// An address ending in "*" matches any number of trailing segments.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers []namedHandler
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: []namedHandler{}}
}

func (s *Dispatcher) AddMsgHandler(addr string, handler osc.HandlerFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers = append(s.handlers, namedHandler{addr, handler})
	return nil
}

// matchAddr checks if messageAddr matches the path pattern.
// Each "@" in path acts as a wildcard for a segment, and captured segments are returned.
// If path ends with "*", any additional segments in messageAddr are ignored.
// "*" does not capture anything.
func matchAddr(path, messageAddr string) (bool, []string) {
	pathSegs := strings.Split(path, "/")
	addrSegs := strings.Split(messageAddr, "/")

	endsWithStar := len(pathSegs) > 0 && pathSegs[len(pathSegs)-1] == "*"
	matchLen := len(pathSegs)
	if endsWithStar {
		matchLen--
		if len(addrSegs) < matchLen {
			return false, nil
		}
	} else if len(pathSegs) != len(addrSegs) {
		return false, nil
	}

	var captures []string
	for i := 0; i < matchLen; i++ {
		p := pathSegs[i]
		if p == "@" {
			captures = append(captures, addrSegs[i])
		} else if p != addrSegs[i] {
			return false, nil
		}
	}
	return true, captures
}

func (s *Dispatcher) dispatchMessage(msg *osc.Message) {
	s.mu.RLock()
	handlers := s.handlers
	s.mu.RUnlock()

	oscInLog.Debug("Osc message", "addr", msg.Address, "args", msg.Arguments)
	matched := false
	for _, h := range handlers {
		ok, captures := matchAddr(h.name, msg.Address)
		if !ok {
			continue
		}
		matched = true
		// Each handler gets its own copy so captures never pile up across handlers.
		m := &osc.Message{Address: msg.Address, Arguments: make([]any, 0, len(msg.Arguments)+len(captures))}
		m.Arguments = append(m.Arguments, msg.Arguments...)
		for _, c := range captures {
			m.Arguments = append(m.Arguments, c)
		}
		h.handler(m)
	}
	if !matched {
		oscInLog.Debug("Unhandled osc message", "addr", msg.Address)
	}
}

// Dispatch dispatches OSC packets. Implements the Dispatcher interface.
func (s *Dispatcher) Dispatch(packet osc.Packet) {
	switch p := packet.(type) {
	default:
		return

	case *osc.Message:
		s.dispatchMessage(p)

	case *osc.Bundle:
		timer := time.NewTimer(p.Timetag.ExpiresIn())

		go func() {
			<-timer.C
			for _, message := range p.Messages {
				s.dispatchMessage(message)
			}
			for _, b := range p.Bundles {
				s.Dispatch(b)
			}
		}()
	}
}
