package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/hypebeast/go-osc/osc"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/midicatdrv"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"github.com/jdginn/fltouch/config"
	"github.com/jdginn/fltouch/daw/oscdaw"
	"github.com/jdginn/fltouch/devices"
	"github.com/jdginn/fltouch/host"
	"github.com/jdginn/fltouch/logging"
	"github.com/jdginn/fltouch/surface"
)

var log = logging.Get(logging.APP)

func openDriver(d config.Driver) (drivers.Driver, error) {
	switch d {
	case config.MidiCat:
		return midicatdrv.New()
	default:
		return rtmididrv.New()
	}
}

func newOscClient(addr string) (*osc.Client, error) {
	h, p, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, fmt.Errorf("osc send address: %w", err)
	}
	port, err := strconv.Atoi(p)
	if err != nil {
		return nil, fmt.Errorf("osc send port %q: %w", p, err)
	}
	return osc.NewClient(h, port), nil
}

func run(ctx context.Context, cfg config.Config) error {
	drv, err := openDriver(cfg.MIDI.Driver)
	if err != nil {
		return fmt.Errorf("open %s driver: %w", cfg.MIDI.Driver, err)
	}
	defer drv.Close()

	client, err := newOscClient(cfg.OSC.Send)
	if err != nil {
		return err
	}
	dispatcher := devices.NewDispatcher()
	bridge := oscdaw.New(devices.NewOscDevice(client, &osc.Server{Addr: cfg.OSC.Listen, Dispatcher: dispatcher}, dispatcher))
	if err := bridge.Bind(); err != nil {
		return err
	}

	idle, meter, err := cfg.Intervals()
	if err != nil {
		return err
	}
	runner := host.New(bridge, bridge, host.Options{IdleInterval: idle, MeterInterval: meter})

	// Extenders first so the master's dispatch receivers exist in order.
	for i, u := range cfg.MIDI.Extenders {
		port, err := devices.OpenMidiDevice(drv, u.In, u.Out)
		if err != nil {
			return fmt.Errorf("extender %d: %w", i, err)
		}
		opts := cfg.SurfaceOptions()
		opts.Role = surface.Extender
		opts.Port = i + 1
		if _, err := runner.AddUnit(port, opts); err != nil {
			return err
		}
	}
	port, err := devices.OpenMidiDevice(drv, cfg.MIDI.Master.In, cfg.MIDI.Master.Out)
	if err != nil {
		return fmt.Errorf("master: %w", err)
	}
	opts := cfg.SurfaceOptions()
	opts.Role = surface.Master
	if _, err := runner.AddUnit(port, opts); err != nil {
		return err
	}

	if cfg.OSC.Logging != "" {
		router := logging.NewOscRouter(cfg.OSC.Logging)
		go func() {
			if err := router.Run(); err != nil {
				log.Error("Logging control server stopped", "err", err)
			}
		}()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	errc := make(chan error, 1)
	go func() {
		errc <- bridge.Run(ctx)
	}()

	log.Info("Running", "master", cfg.MIDI.Master.In, "extenders", len(cfg.MIDI.Extenders), "daw", cfg.OSC.Send)
	err = runner.Run(ctx)
	cancel()
	return errors.Join(err, <-errc)
}

func main() {
	path := flag.String("config", "", "YAML configuration file")
	flag.Parse()

	cfg := config.Default()
	if *path != "" {
		var err error
		if cfg, err = config.Load(*path); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	if err := cfg.ApplyLogging(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := run(ctx, cfg); err != nil {
		log.Error("Stopped", "err", err)
		os.Exit(1)
	}
}
