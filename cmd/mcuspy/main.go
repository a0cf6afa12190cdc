// Command mcuspy prints what a control surface sends, decoded.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	midi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"github.com/jdginn/fltouch/devices"
	"github.com/jdginn/fltouch/devices/mcu"
)

func main() {
	port := flag.String("port", "X-Touch", "substring of the MIDI input port name")
	list := flag.Bool("list", false, "list MIDI inputs and exit")
	flag.Parse()

	drv, err := rtmididrv.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer drv.Close()

	if *list {
		ins, err := drv.Ins()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		for _, in := range ins {
			fmt.Println(in.String())
		}
		return
	}

	in, err := devices.FindInPort(drv, *port)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	dev := devices.NewMidiDevice(in, nil)
	dev.BindAll(func(msg midi.Message) error {
		if ev, ok := mcu.Decode(msg); ok {
			fmt.Println(describe(ev))
		}
		return nil
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	fmt.Println(dimStyle.Render("Listening on " + in.String()))
	if err := dev.Run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
