package midi

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"keystrip/debug"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver
)

// Options selects which input port the manager connects to
type Options struct {
	// Port, when set, is the only port name accepted
	Port    string
	Prefer  []string
	Exclude []string

	PollRate time.Duration
	Buffer   int
}

// DeviceManager keeps one keyboard connected, handling hot-plug. All raw
// messages from the connected keyboard arrive on Messages(), a single
// channel, so consumers see them serialized.
type DeviceManager struct {
	opts Options

	mu      sync.RWMutex
	current Controller

	messages chan []byte
	events   chan DeviceEvent

	listPorts func() []string
	openPort  func(name string, out chan<- []byte) (Controller, error)
}

// NewDeviceManager creates a new device manager
func NewDeviceManager(opts Options) *DeviceManager {
	if opts.PollRate <= 0 {
		opts.PollRate = time.Second
	}
	if opts.Buffer <= 0 {
		opts.Buffer = 256
	}
	return &DeviceManager{
		opts:      opts,
		messages:  make(chan []byte, opts.Buffer),
		events:    make(chan DeviceEvent, 16),
		listPorts: listInPorts,
		openPort:  openInPort,
	}
}

// Messages returns the channel of raw messages from the connected keyboard.
// It is closed when Run returns.
func (dm *DeviceManager) Messages() <-chan []byte {
	return dm.messages
}

// Events returns a channel of device connect/disconnect events
func (dm *DeviceManager) Events() <-chan DeviceEvent {
	return dm.events
}

// Current returns the connected port name, or "" when none is
func (dm *DeviceManager) Current() string {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	if dm.current == nil {
		return ""
	}
	return dm.current.ID()
}

// Run starts the polling loop (blocking - run in goroutine)
func (dm *DeviceManager) Run(ctx context.Context) {
	ticker := time.NewTicker(dm.opts.PollRate)
	defer ticker.Stop()

	// Initial scan
	dm.scan()

	for {
		select {
		case <-ctx.Done():
			dm.closeCurrent()
			close(dm.events)
			close(dm.messages)
			return
		case <-ticker.C:
			dm.scan()
		}
	}
}

func (dm *DeviceManager) scan() {
	names := dm.listPorts()

	dm.mu.RLock()
	current := dm.current
	dm.mu.RUnlock()

	if current != nil {
		if !current.Failed() && contains(names, current.ID()) {
			return
		}
		debug.Log("midi", "device gone: %s", current.ID())
		dm.closeCurrent()
	}

	name, ok := PickInput(names, dm.opts)
	if !ok {
		return
	}
	c, err := dm.openPort(name, dm.messages)
	if err != nil {
		debug.Log("midi", "connect %s failed: %v", name, err)
		return
	}

	dm.mu.Lock()
	dm.current = c
	dm.mu.Unlock()

	debug.Log("midi", "connected: %s", name)
	dm.emit(DeviceEvent{Type: DeviceConnected, Name: name})
}

func (dm *DeviceManager) closeCurrent() {
	dm.mu.Lock()
	c := dm.current
	dm.current = nil
	dm.mu.Unlock()

	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		debug.Log("midi", "close %s: %v", c.ID(), err)
	}
	dm.emit(DeviceEvent{Type: DeviceDisconnected, Name: c.ID()})
}

func (dm *DeviceManager) emit(ev DeviceEvent) {
	select {
	case dm.events <- ev:
	default:
	}
}

// PickInput chooses the port to connect from the available names.
// Excluded ports are never chosen. An explicit Port must match exactly;
// otherwise the first Prefer pattern with a match wins, and with no
// match a lone remaining port is taken.
func PickInput(names []string, opts Options) (string, bool) {
	var inputs []string
	for _, name := range names {
		if !matchesAny(name, opts.Exclude) {
			inputs = append(inputs, name)
		}
	}

	if opts.Port != "" {
		if contains(inputs, opts.Port) {
			return opts.Port, true
		}
		return "", false
	}

	for _, pat := range opts.Prefer {
		for _, name := range inputs {
			if containsCI(name, pat) {
				return name, true
			}
		}
	}
	if len(inputs) == 1 {
		return inputs[0], true
	}
	return "", false
}

// ListInPorts returns the names of all input ports. CoreMIDI can hang
// while enumerating, so it gives up after 3 seconds.
func ListInPorts() ([]string, error) {
	ch := make(chan []string, 1)
	go func() {
		var names []string
		for _, in := range gomidi.GetInPorts() {
			names = append(names, in.String())
		}
		ch <- names
	}()

	select {
	case names := <-ch:
		return names, nil
	case <-time.After(3 * time.Second):
		return nil, fmt.Errorf("listing MIDI inputs timed out")
	}
}

func listInPorts() []string {
	names, err := ListInPorts()
	if err != nil {
		// User needs to run: sudo killall coreaudiod midiserver
		debug.Log("midi", "scan skipped: %v", err)
		return nil
	}
	return names
}

func openInPort(name string, out chan<- []byte) (Controller, error) {
	var found drivers.In
	for _, in := range gomidi.GetInPorts() {
		if in.String() == name {
			found = in
			break
		}
	}
	if found == nil {
		return nil, fmt.Errorf("input %q not found", name)
	}
	return NewKeyboardController(name, found, out)
}

func matchesAny(name string, patterns []string) bool {
	for _, pat := range patterns {
		if containsCI(name, pat) {
			return true
		}
	}
	return false
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

func containsCI(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
