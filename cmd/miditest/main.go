package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"time"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"keystrip/ledstrip"
	kmidi "keystrip/midi"
	"keystrip/theme"
	"keystrip/visualizer"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	var err error
	switch os.Args[1] {
	case "list":
		err = listPorts()
	case "monitor":
		err = monitor(os.Args[2:])
	case "palette":
		err = palette(os.Args[2:])
	case "strip":
		err = testStrip(os.Args[2:])
	default:
		usage()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("MIDI Test Scripts")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list                   - List MIDI inputs and serial ports")
	fmt.Println("  monitor [port]         - Print decoded messages from an input")
	fmt.Println("  palette [file.gpl]     - Print the pitch-class colors as a GIMP palette,")
	fmt.Println("                           or check an exported palette against them")
	fmt.Println("  strip <device> [baud]  - Walk a lit key across an LED strip")
}

func palette(args []string) error {
	want := theme.PitchClasses()
	if len(args) == 0 {
		return want.WriteGPL(os.Stdout)
	}

	got, err := theme.LoadGPL(args[0])
	if err != nil {
		return err
	}
	diff := theme.Compare(got, want)
	for _, i := range diff {
		if i < len(want.Colors) {
			fmt.Printf("  %-6s want %s\n", want.Names[i], theme.Hex(want.Colors[i]))
		} else {
			fmt.Printf("  extra color at %d\n", i)
		}
	}
	if len(diff) > 0 {
		return fmt.Errorf("%s: %d of %d colors differ", args[0], len(diff), len(want.Colors))
	}
	fmt.Printf("%s matches the %d pitch-class colors\n", args[0], len(want.Colors))
	return nil
}

func listPorts() error {
	fmt.Println("=== MIDI Input Ports ===")
	fmt.Println("(waiting up to 3 seconds...)")
	names, err := kmidi.ListInPorts()
	if err != nil {
		fmt.Println("Fix: sudo killall coreaudiod midiserver")
		return err
	}
	for i, name := range names {
		fmt.Printf("  %d: %s\n", i, name)
	}

	fmt.Println("\n=== Serial Ports ===")
	ports, err := ledstrip.Ports()
	if err != nil {
		return err
	}
	for i, p := range ports {
		fmt.Printf("  %d: %s\n", i, p)
	}
	return nil
}

func monitor(args []string) error {
	var in drivers.In
	ins := midi.GetInPorts()
	if len(args) > 0 {
		for _, p := range ins {
			if p.String() == args[0] {
				in = p
				break
			}
		}
	} else if len(ins) > 0 {
		in = ins[0]
	}
	if in == nil {
		return fmt.Errorf("no matching MIDI input")
	}

	fmt.Printf("Listening on %s (ctrl+c to stop)\n", in.String())
	stop, err := midi.ListenTo(in, func(msg midi.Message, timestampms int32) {
		ev, err := visualizer.Decode(msg)
		switch {
		case err != nil:
			fmt.Printf("%8dms  %-28s drop: %v\n", timestampms, msg.String(), err)
		case ev.Kind == visualizer.KindIgnored:
			fmt.Printf("%8dms  %-28s ignored\n", timestampms, msg.String())
		default:
			fmt.Printf("%8dms  %-28s %-8s key %2d %-4s value %.3f\n",
				timestampms, msg.String(), ev.Kind, ev.Key, ev.Key.Name(), ev.Value)
		}
	})
	if err != nil {
		return err
	}
	defer stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	<-sig
	return nil
}

func testStrip(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: strip <device> [baud]")
	}
	baud := 500000
	if len(args) > 1 {
		b, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("baud: %w", err)
		}
		baud = b
	}

	vis, err := visualizer.New(visualizer.NumKeys)
	if err != nil {
		return err
	}
	strip, err := ledstrip.Open(args[0], baud)
	if err != nil {
		return err
	}

	fmt.Println("Walking keys A0..C8")
	for k := visualizer.Key(0); k < visualizer.NumKeys; k++ {
		vis.Receive(midi.NoteOn(0, k.Note(), 100))
		strip.Push(vis.Pixels())
		time.Sleep(30 * time.Millisecond)
		vis.Receive(midi.NoteOff(0, k.Note()))
	}
	strip.Push(vis.Pixels())
	if err := strip.Close(); err != nil {
		return err
	}
	fmt.Printf("Sent %d frames\n", strip.Sent())
	return nil
}
