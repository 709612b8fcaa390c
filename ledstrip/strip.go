package ledstrip

import (
	"fmt"
	"io"
	"sync"

	"keystrip/debug"

	"go.bug.st/serial"
)

// Strip sends frames to an LED controller from its own goroutine.
// Push never blocks: a frame that has not been written yet is replaced
// by the next one.
type Strip struct {
	w      io.WriteCloser
	frames chan []byte
	done   chan struct{}
	seq    byte

	mu     sync.Mutex
	closed bool
	sent   uint64
}

// Open opens the named serial device at the given baud rate
func Open(name string, baud int) (*Strip, error) {
	p, err := serial.Open(name, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, fmt.Errorf("open serial %q: %w", name, err)
	}
	debug.Log("strip", "port opened: %s @ %d", name, baud)
	return New(p), nil
}

// New starts a strip writing to w
func New(w io.WriteCloser) *Strip {
	s := &Strip{
		w:      w,
		frames: make(chan []byte, 1),
		done:   make(chan struct{}),
	}
	go s.loop()
	return s
}

// Push queues a copy of pixels (RGBA) for sending
func (s *Strip) Push(pixels []byte) {
	if len(pixels)/4 > MaxCells {
		debug.Log("strip", "frame of %d cells too long, dropped", len(pixels)/4)
		return
	}
	f := Frame{Seq: s.nextSeq(), Pixels: append([]byte(nil), pixels...)}
	data := f.Encode()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	for {
		select {
		case s.frames <- data:
			return
		default:
		}
		// latest frame wins
		select {
		case <-s.frames:
		default:
		}
	}
}

func (s *Strip) nextSeq() byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	seq := s.seq
	s.seq++
	return seq
}

func (s *Strip) loop() {
	defer close(s.done)
	for data := range s.frames {
		if _, err := s.w.Write(data); err != nil {
			debug.Log("strip", "write error: %v", err)
			continue
		}
		s.mu.Lock()
		s.sent++
		s.mu.Unlock()
	}
}

// Sent counts frames written successfully
func (s *Strip) Sent() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sent
}

// Close flushes the pending frame and closes the port
func (s *Strip) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.frames)
	s.mu.Unlock()

	<-s.done
	debug.Log("strip", "closing port")
	return s.w.Close()
}

// Ports lists serial devices
func Ports() ([]string, error) {
	return serial.GetPortsList()
}
