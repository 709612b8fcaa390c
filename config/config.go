package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DisplayConfig sizes the strip. Width is the number of cells and is fixed
// once the visualizer is built; Height only affects how many times the row
// is repeated on screen.
type DisplayConfig struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// MIDIConfig controls input port selection
type MIDIConfig struct {
	Port            string   `json:"port,omitempty"` // exact port name, overrides patterns
	PreferPatterns  []string `json:"preferPatterns,omitempty"`
	ExcludePatterns []string `json:"excludePatterns,omitempty"`
	PollIntervalMs  int      `json:"pollIntervalMs,omitempty"`
	Buffer          int      `json:"buffer,omitempty"`
}

// StripConfig defines the serial LED strip output
type StripConfig struct {
	Enabled bool   `json:"enabled"`
	Device  string `json:"device,omitempty"`
	Baud    int    `json:"baud,omitempty"`
}

// Config is the main configuration structure
type Config struct {
	Display DisplayConfig `json:"display"`
	MIDI    MIDIConfig    `json:"midi"`
	Strip   StripConfig   `json:"strip"`
	Debug   bool          `json:"debug,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Display: DisplayConfig{
			Width:  88,
			Height: 3,
		},
		MIDI: MIDIConfig{
			PreferPatterns:  []string{"Keystation", "Piano", "Digital"},
			ExcludePatterns: []string{"Midi Through", "Through Port", "Dummy"},
			PollIntervalMs:  1000,
			Buffer:          256,
		},
		Strip: StripConfig{
			Device: "/dev/ttyACM0",
			Baud:   500000,
		},
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "keystrip"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// DebugLogPath returns where the debug log goes
func DebugLogPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "debug.log"), nil
}

// Load reads the config from the default path, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads the config at path. Fields missing from the file keep
// their default values.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to the default path
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the config to path, creating its directory
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate rejects settings the visualizer can't be built with
func (c *Config) Validate() error {
	var errs []error
	if c.Display.Width <= 0 {
		errs = append(errs, fmt.Errorf("display.width %d must be positive", c.Display.Width))
	}
	if c.Display.Height <= 0 {
		errs = append(errs, fmt.Errorf("display.height %d must be positive", c.Display.Height))
	}
	if c.MIDI.Buffer < 0 {
		errs = append(errs, fmt.Errorf("midi.buffer %d must not be negative", c.MIDI.Buffer))
	}
	if c.Strip.Enabled && c.Strip.Device == "" {
		errs = append(errs, errors.New("strip.device required when strip is enabled"))
	}
	return errors.Join(errs...)
}

// PollInterval returns the port rescan period
func (c *Config) PollInterval() time.Duration {
	if c.MIDI.PollIntervalMs <= 0 {
		return time.Second
	}
	return time.Duration(c.MIDI.PollIntervalMs) * time.Millisecond
}
