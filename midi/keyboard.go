package midi

import (
	"fmt"
	"sync"
	"sync/atomic"

	"keystrip/debug"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// KeyboardController forwards the raw bytes of every channel message from
// one input port. It never blocks the driver: when out is full the message
// is dropped.
type KeyboardController struct {
	id       string
	inPort   drivers.In
	stopFunc func()

	mu     sync.RWMutex
	out    chan<- []byte
	closed bool
	failed atomic.Bool
}

// NewKeyboardController opens inPort and starts listening
func NewKeyboardController(id string, inPort drivers.In, out chan<- []byte) (*KeyboardController, error) {
	kb := &KeyboardController{
		id:     id,
		inPort: inPort,
		out:    out,
	}

	stop, err := gomidi.ListenTo(inPort, func(msg gomidi.Message, timestampms int32) {
		kb.forward(msg)
	}, gomidi.HandleError(func(err error) {
		debug.Log("midi", "listener error on %s: %v", id, err)
		kb.failed.Store(true)
	}))
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	kb.stopFunc = stop

	return kb, nil
}

func (kb *KeyboardController) forward(msg []byte) {
	kb.mu.RLock()
	defer kb.mu.RUnlock()
	if kb.closed {
		return
	}

	// the driver may reuse its buffer
	raw := make([]byte, len(msg))
	copy(raw, msg)

	select {
	case kb.out <- raw:
	default:
		debug.LogEvery(32, "midi", "queue full, dropped message from %s", kb.id)
	}
}

func (kb *KeyboardController) ID() string {
	return kb.id
}

func (kb *KeyboardController) Type() ControllerType {
	return ControllerKeyboard
}

func (kb *KeyboardController) Failed() bool {
	return kb.failed.Load()
}

// Close stops the listener. No message is forwarded after Close returns.
func (kb *KeyboardController) Close() error {
	kb.mu.Lock()
	if kb.closed {
		kb.mu.Unlock()
		return nil
	}
	kb.closed = true
	kb.mu.Unlock()

	if kb.stopFunc != nil {
		kb.stopFunc()
	}
	if kb.inPort != nil && kb.inPort.IsOpen() {
		return kb.inPort.Close()
	}
	return nil
}
