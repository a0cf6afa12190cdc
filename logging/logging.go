package logging

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/hypebeast/go-osc/osc"
)

type LogCategory string

const (
	META     LogCategory = "meta" // For logs about logging
	MIDI_IN  LogCategory = "midi_in"
	MIDI_OUT LogCategory = "midi_out"
	OSC_IN   LogCategory = "osc_in"
	OSC_OUT  LogCategory = "osc_out"
	SURFACE  LogCategory = "surface" // Page/assignment engine and controller decisions
	HOST     LogCategory = "host"    // Unit runners, tickers and dispatch between units
	APP      LogCategory = "app"
)

var allCategories = []LogCategory{META, MIDI_IN, MIDI_OUT, OSC_IN, OSC_OUT, SURFACE, HOST, APP}

func strToLogCategory(s string) (LogCategory, bool) {
	for _, c := range allCategories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// Dispatcher is a custom osc.Dispatcher, implementing the osc.Dispatcher interface
type Dispatcher struct{}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Dispatch dispatches OSC packets. Implements the Dispatcher interface.
func (s *Dispatcher) Dispatch(packet osc.Packet) {
	switch p := packet.(type) {
	default:
		return

	case *osc.Message:
		HandleOSCSetCategoryLevel(p)
	}
}

// OscRouter listens for runtime logging configuration over OSC.
type OscRouter struct {
	Server     *osc.Server
	Dispatcher osc.Dispatcher

	addr string
}

// NewOscRouter returns a router that will listen on addr (host:port) once Run is called.
func NewOscRouter(addr string) *OscRouter {
	return &OscRouter{
		Dispatcher: NewDispatcher(),
		addr:       addr,
	}
}

// Run starts the OSC server. It blocks until the server fails.
func (o *OscRouter) Run() error {
	Get(META).Info("Starting logging control OSC server", "addr", o.addr)
	o.Server = &osc.Server{
		Addr:       o.addr,
		Dispatcher: o.Dispatcher,
	}
	return o.Server.ListenAndServe()
}

// Internal state for loggers per category
var (
	mu               = new(sync.RWMutex)
	loggers          = map[LogCategory]*slog.Logger{}
	categoryLvls     = map[LogCategory]*slog.LevelVar{}
	defaultLogLevels = map[LogCategory]slog.Level{
		META:     slog.LevelInfo,
		MIDI_IN:  slog.LevelWarn,
		MIDI_OUT: slog.LevelWarn,
		OSC_IN:   slog.LevelWarn,
		OSC_OUT:  slog.LevelWarn,
		SURFACE:  slog.LevelInfo,
		HOST:     slog.LevelInfo,
		APP:      slog.LevelInfo,
	}
)

// levelVar returns the LevelVar for category, creating it with the default level if needed.
//
// mu must be held for writing.
func levelVar(category LogCategory) *slog.LevelVar {
	lvlVar, ok := categoryLvls[category]
	if !ok {
		lvlVar = new(slog.LevelVar)
		lvlVar.Set(defaultLogLevels[category])
		categoryLvls[category] = lvlVar
	}
	return lvlVar
}

// Get returns a slog.Logger that always has the "category" attribute set.
// Each category gets its own logger instance.
func Get(category LogCategory) *slog.Logger {
	mu.RLock()
	l, ok := loggers[category]
	mu.RUnlock()
	if ok {
		return l
	}
	mu.Lock()
	defer mu.Unlock()
	// Double-check after locking
	if l, ok := loggers[category]; ok {
		return l
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: levelVar(category),
	})
	catLogger := slog.New(handler).With("category", category)
	loggers[category] = catLogger
	return catLogger
}

// SetCategoryLevel changes the level of a single category at runtime.
func SetCategoryLevel(category LogCategory, level slog.Level) {
	mu.Lock()
	defer mu.Unlock()
	levelVar(category).Set(level)
}

// CategoryLevel reports the level currently applied to category.
func CategoryLevel(category LogCategory) slog.Level {
	mu.Lock()
	defer mu.Unlock()
	return levelVar(category).Level()
}

// SetLevels applies textual levels ("debug", "info", "warn", "error") keyed by category name.
func SetLevels(levels map[string]string) error {
	for name, text := range levels {
		cat, ok := strToLogCategory(name)
		if !ok {
			return fmt.Errorf("unknown log category %q", name)
		}
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(text)); err != nil {
			return fmt.Errorf("log category %q: %w", name, err)
		}
		SetCategoryLevel(cat, lvl)
	}
	return nil
}

func splitOscPath(path string) []string {
	return strings.Split(path, "/")[1:]
}

// OSC handler for runtime config
//
// Routes:
// /meta/logging/{category}/level as int where -4 is Debug, 0 is Info, 4 is Warn, 8 is Error
func HandleOSCSetCategoryLevel(msg *osc.Message) {
	pathSegs := splitOscPath(msg.Address)

	if len(pathSegs) != 4 || pathSegs[0] != "meta" || pathSegs[1] != "logging" || pathSegs[3] != "level" {
		return
	}
	cat, ok := strToLogCategory(pathSegs[2])
	if !ok {
		Get(META).Info("Unrecognized log category in OSC message", "category", pathSegs[2])
		return
	}
	if len(msg.Arguments) == 0 {
		Get(META).Error("Missing level in OSC message", "address", msg.Address)
		return
	}
	level, ok := msg.Arguments[0].(int32)
	if !ok {
		Get(META).Error("Invalid level type in OSC message", "expected", "int32", "got", fmt.Sprintf("%T", msg.Arguments[0]))
		return
	}
	Get(META).Info("Setting category level via OSC",
		"category", cat,
		"level", level)
	SetCategoryLevel(cat, slog.Level(level))
}
