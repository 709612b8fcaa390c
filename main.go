package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"keystrip/config"
	"keystrip/debug"
	"keystrip/ledstrip"
	"keystrip/midi"
	"keystrip/theme"
	"keystrip/tui"
	"keystrip/visualizer"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "config file (default ~/.config/keystrip/config.json)")
	width := flag.Int("width", 0, "strip width in cells (overrides config)")
	height := flag.Int("height", 0, "rows to repeat the strip on screen (overrides config)")
	port := flag.String("port", "", "exact MIDI input port name")
	serialDev := flag.String("serial", "", "serial device for an LED strip, enables strip output")
	baud := flag.Int("baud", 0, "serial baud rate (overrides config)")
	headless := flag.Bool("headless", false, "no terminal UI, drive the LED strip only")
	debugLog := flag.Bool("debug", false, "write a debug log to ~/.config/keystrip/debug.log (stderr when headless)")
	saveConfig := flag.Bool("save-config", false, "write the merged settings to the config file and exit")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *width > 0 {
		cfg.Display.Width = *width
	}
	if *height > 0 {
		cfg.Display.Height = *height
	}
	if *port != "" {
		cfg.MIDI.Port = *port
	}
	if *serialDev != "" {
		cfg.Strip.Enabled = true
		cfg.Strip.Device = *serialDev
	}
	if *baud > 0 {
		cfg.Strip.Baud = *baud
	}
	if *debugLog {
		cfg.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if *saveConfig {
		if *configPath != "" {
			err = cfg.SaveTo(*configPath)
		} else {
			err = cfg.Save()
		}
		if err != nil {
			return fmt.Errorf("save config: %w", err)
		}
		fmt.Println("keystrip: config saved")
		return nil
	}

	if cfg.Debug && *headless {
		debug.EnableWriter(os.Stderr)
		defer debug.Disable()
	} else if cfg.Debug {
		path, err := config.DebugLogPath()
		if err != nil {
			return err
		}
		if err := debug.Enable(path); err != nil {
			return fmt.Errorf("debug log: %w", err)
		}
		defer debug.Disable()
	}

	vis, err := visualizer.New(cfg.Display.Width)
	if err != nil {
		return err
	}

	var strip *ledstrip.Strip
	if cfg.Strip.Enabled {
		strip, err = ledstrip.Open(cfg.Strip.Device, cfg.Strip.Baud)
		if err != nil {
			return err
		}
		defer strip.Close()
		strip.Push(vis.Pixels())
	} else if *headless {
		return fmt.Errorf("-headless needs a strip: set -serial or strip.enabled")
	}

	// Create MIDI device manager (handles hot-plug)
	deviceMgr := midi.NewDeviceManager(midi.Options{
		Port:     cfg.MIDI.Port,
		Prefer:   cfg.MIDI.PreferPatterns,
		Exclude:  cfg.MIDI.ExcludePatterns,
		PollRate: cfg.PollInterval(),
		Buffer:   cfg.MIDI.Buffer,
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	go deviceMgr.Run(ctx)

	if *headless {
		fmt.Println("keystrip: headless, waiting for MIDI (ctrl+c to quit)")
		err := vis.Run(ctx, deviceMgr.Messages(), strip.Push)
		if err == context.Canceled {
			return nil
		}
		return err
	}

	m := tui.NewModel(vis, deviceMgr, theme.New(theme.UI()), cfg.Display.Height)
	if strip != nil {
		m.Sink = strip
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFrom(path)
}
