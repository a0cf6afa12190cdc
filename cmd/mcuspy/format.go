package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/jdginn/fltouch/devices/mcu"
)

var (
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#555"))
	buttonStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#fff")).Bold(true)
	faderStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#5fd7ff"))
	encoderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffd75f"))
	sysexStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#af87ff"))
	labelStyle   = lipgloss.NewStyle().Width(10)
)

// describe renders one decoded event as a single line.
func describe(ev mcu.Event) string {
	switch e := ev.(type) {
	case mcu.NoteOn:
		state := "release"
		if e.Pressed() {
			state = "press"
		}
		return labelStyle.Render("button") + buttonStyle.Render(e.Key.String()) + " " + dimStyle.Render(state)
	case mcu.NoteOff:
		return labelStyle.Render("button") + buttonStyle.Render(e.Key.String()) + " " + dimStyle.Render("off")
	case mcu.PitchBend:
		name := fmt.Sprintf("fader %d", e.Channel+1)
		if e.Channel == 8 {
			name = "fader main"
		}
		pct := float64(e.Value) / 0x3FFF * 100
		return labelStyle.Render("fader") + faderStyle.Render(name) + " " + dimStyle.Render(fmt.Sprintf("%5d %5.1f%%", e.Value, pct))
	case mcu.ControlChange:
		switch {
		case e.IsJog():
			return labelStyle.Render("jog") + encoderStyle.Render(fmt.Sprintf("%+d", e.Delta()))
		case e.IsEncoder():
			n := e.Controller - mcu.EncoderCC1 + 1
			return labelStyle.Render("encoder") + encoderStyle.Render(fmt.Sprintf("%d %+d", n, e.Delta()))
		}
		return labelStyle.Render("cc") + dimStyle.Render(e.String())
	case mcu.SysEx:
		return labelStyle.Render("sysex") + sysexStyle.Render(fmt.Sprintf("% X", e.Data))
	}
	return dimStyle.Render(ev.String())
}
