package devices

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/hypebeast/go-osc/osc"

	"github.com/jdginn/fltouch/logging"
)

var oscInLog, oscOutLog *slog.Logger

func init() {
	oscInLog = logging.Get(logging.OSC_IN)
	oscOutLog = logging.Get(logging.OSC_OUT)
}

// OscClient sends packets, satisfied by *osc.Client.
type OscClient interface {
	Send(packet osc.Packet) error
}

// OscServer serves incoming packets, satisfied by *osc.Server.
type OscServer interface {
	ListenAndServe() error
}

// OscDispatcher registers address handlers, satisfied by *Dispatcher and *osc.StandardDispatcher.
type OscDispatcher interface {
	AddMsgHandler(addr string, handler osc.HandlerFunc) error
}

// OscDevice is a bidirectional OSC endpoint.
type OscDevice struct {
	client     OscClient
	server     OscServer
	dispatcher OscDispatcher
}

func NewOscDevice(client OscClient, server OscServer, dispatcher OscDispatcher) *OscDevice {
	return &OscDevice{
		client:     client,
		server:     server,
		dispatcher: dispatcher,
	}
}

// Run serves incoming messages until ctx is cancelled or the server fails.
func (o *OscDevice) Run(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		errc <- o.server.ListenAndServe()
	}()
	select {
	case <-ctx.Done():
		return nil
	case err := <-errc:
		return fmt.Errorf("osc server: %w", err)
	}
}

// Send sends a message with arbitrary arguments.
func (o *OscDevice) Send(addr string, args ...any) error {
	oscOutLog.Debug("Sending", "addr", addr, "args", args)
	if err := o.client.Send(osc.NewMessage(addr, args...)); err != nil {
		return fmt.Errorf("send %s: %w", addr, err)
	}
	return nil
}

func (o *OscDevice) SetInt(addr string, val int64) error {
	return o.Send(addr, int32(val))
}

func (o *OscDevice) SetFloat(addr string, val float64) error {
	return o.Send(addr, float32(val))
}

func bindValue[T BaseTypes](o *OscDevice, addr string, convert func(any) (T, error), effect Callback[T]) error {
	return o.dispatcher.AddMsgHandler(addr, func(msg *osc.Message) {
		if len(msg.Arguments) == 0 {
			oscInLog.Warn("Message without arguments", "addr", msg.Address)
			return
		}
		val, err := convert(msg.Arguments[0])
		if err != nil {
			oscInLog.Error("Cannot convert argument", "addr", msg.Address, "err", err)
			return
		}
		if err := effect(val); err != nil {
			oscInLog.Error("Callback failed", "addr", msg.Address, "err", err)
		}
	})
}

// BindInt binds a callback to run whenever a message is received for the given OSC address.
//
// The first argument is converted to an int where possible.
func (o *OscDevice) BindInt(addr string, effect Callback[int64]) error {
	return bindValue(o, addr, toInt, effect)
}

// BindFloat binds a callback to run whenever a message is received for the given OSC address.
func (o *OscDevice) BindFloat(addr string, effect Callback[float64]) error {
	return bindValue(o, addr, toFloat, effect)
}

// BindString binds a callback to run whenever a message is received for the given OSC address.
func (o *OscDevice) BindString(addr string, effect Callback[string]) error {
	return bindValue(o, addr, toString, effect)
}

// BindBool binds a callback to run whenever a message is received for the given OSC address.
func (o *OscDevice) BindBool(addr string, effect Callback[bool]) error {
	return bindValue(o, addr, toBool, effect)
}

// BindCaptured binds a callback to a pattern containing "@" segments. The callback receives
// the captured segments and the message arguments separately.
//
// Captures are only available with a Dispatcher from this package.
func (o *OscDevice) BindCaptured(addr string, effect func(captures []string, args []any) error) error {
	n := 0
	for _, seg := range strings.Split(addr, "/") {
		if seg == "@" {
			n++
		}
	}
	return o.dispatcher.AddMsgHandler(addr, func(msg *osc.Message) {
		if len(msg.Arguments) < n {
			oscInLog.Warn("Missing captures", "addr", msg.Address)
			return
		}
		split := len(msg.Arguments) - n
		captures := make([]string, 0, n)
		for _, c := range msg.Arguments[split:] {
			s, _ := c.(string)
			captures = append(captures, s)
		}
		if err := effect(captures, msg.Arguments[:split]); err != nil {
			oscInLog.Error("Callback failed", "addr", msg.Address, "err", err)
		}
	})
}

func bindCapturedValue[T BaseTypes](o *OscDevice, addr string, convert func(any) (T, error), effect func([]string, T) error) error {
	return o.BindCaptured(addr, func(captures []string, args []any) error {
		if len(args) == 0 {
			return fmt.Errorf("%s: missing argument", addr)
		}
		val, err := convert(args[0])
		if err != nil {
			return err
		}
		return effect(captures, val)
	})
}

// BindCapturedInt is BindCaptured for messages carrying one int argument.
func (o *OscDevice) BindCapturedInt(addr string, effect func(captures []string, val int64) error) error {
	return bindCapturedValue(o, addr, toInt, effect)
}

func (o *OscDevice) BindCapturedFloat(addr string, effect func(captures []string, val float64) error) error {
	return bindCapturedValue(o, addr, toFloat, effect)
}

func (o *OscDevice) BindCapturedString(addr string, effect func(captures []string, val string) error) error {
	return bindCapturedValue(o, addr, toString, effect)
}

func (o *OscDevice) BindCapturedBool(addr string, effect func(captures []string, val bool) error) error {
	return bindCapturedValue(o, addr, toBool, effect)
}

func toInt(val any) (int64, error) {
	switch val := val.(type) {
	case int:
		return int64(val), nil
	case int32:
		return int64(val), nil
	case int64:
		return val, nil
	case float32:
		return int64(val), nil
	case float64:
		return int64(val), nil
	case bool:
		if val {
			return 1, nil
		}
		return 0, nil
	case string:
		i, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("int from %q: %w", val, err)
		}
		return i, nil
	}
	return 0, fmt.Errorf("int from %T", val)
}

func toFloat(val any) (float64, error) {
	switch val := val.(type) {
	case float64:
		return val, nil
	case float32:
		return float64(val), nil
	case int:
		return float64(val), nil
	case int32:
		return float64(val), nil
	case int64:
		return float64(val), nil
	case string:
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return 0, fmt.Errorf("float from %q: %w", val, err)
		}
		return f, nil
	}
	return 0, fmt.Errorf("float from %T", val)
}

func toString(val any) (string, error) {
	switch val := val.(type) {
	case string:
		return val, nil
	case nil:
		return "", nil
	case float32, float64:
		return fmt.Sprintf("%f", val), nil
	case int, int32, int64, bool:
		return fmt.Sprint(val), nil
	}
	return "", fmt.Errorf("string from %T", val)
}

func toBool(val any) (bool, error) {
	switch val := val.(type) {
	case bool:
		return val, nil
	case string:
		return val == "true", nil
	}
	f, err := toFloat(val)
	if err != nil {
		return false, fmt.Errorf("bool: %w", err)
	}
	return f > 0, nil
}
