// Command listenosc prints the OSC traffic a DAW script sends to the bridge.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/hypebeast/go-osc/osc"

	"github.com/jdginn/fltouch/devices"
	"github.com/jdginn/fltouch/logging"
)

// format renders a message the way it is written in the bridge's address table.
func format(msg *osc.Message) string {
	var b strings.Builder
	b.WriteString(msg.Address)
	for _, arg := range msg.Arguments {
		switch v := arg.(type) {
		case string:
			fmt.Fprintf(&b, " %q", v)
		case float32, float64:
			fmt.Fprintf(&b, " %.4f", v)
		default:
			fmt.Fprintf(&b, " %v", v)
		}
	}
	return b.String()
}

func main() {
	addr := flag.String("addr", "127.0.0.1:9001", "UDP address to listen on")
	pattern := flag.String("match", "*", `address pattern, "@" matches one segment, trailing "*" any`)
	flag.Parse()

	log := logging.Get(logging.APP)
	dispatcher := devices.NewDispatcher()
	dispatcher.AddMsgHandler(*pattern, func(msg *osc.Message) {
		fmt.Println(format(msg))
	})

	server := &osc.Server{Addr: *addr, Dispatcher: dispatcher}
	log.Info("Listening for OSC messages", "addr", *addr, "match", *pattern)
	if err := server.ListenAndServe(); err != nil {
		log.Error("OSC server failed", "err", err)
		os.Exit(1)
	}
}
