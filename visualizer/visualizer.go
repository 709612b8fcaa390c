package visualizer

import (
	"context"
	"fmt"

	"keystrip/debug"
)

// Visualizer owns the key state and the pixel buffer for one strip.
//
// Every call to Receive re-renders the whole buffer, whether or not the
// message changed anything. There is no dirty tracking.
//
// A Visualizer is not safe for concurrent use; deliver messages from a
// single goroutine and read pixels from that same goroutine.
type Visualizer struct {
	width  int
	state  KeyState
	pixels []byte
	frames uint64
}

// New returns a Visualizer for a strip of width cells, all dark
func New(width int) (*Visualizer, error) {
	if width <= 0 {
		return nil, fmt.Errorf("width %d: %w", width, ErrInvalidWidth)
	}
	v := &Visualizer{
		width:  width,
		pixels: make([]byte, 4*width),
	}
	RenderInto(v.pixels, &v.state, width)
	return v, nil
}

func (v *Visualizer) Width() int {
	return v.width
}

// Receive decodes one raw message into the key state and redraws.
// Malformed and out-of-range messages are dropped.
func (v *Visualizer) Receive(msg []byte) {
	ev, err := Decode(msg)
	switch {
	case err != nil:
		debug.Log("visualizer", "drop %s: %v", Describe(msg), err)
	case ev.Kind == KindNoteOn:
		debug.Log("visualizer", "%s %.2f", ev.Key.Name(), ev.Value)
	}
	if err == nil {
		v.state.apply(ev)
	}
	v.Render()
}

// Render recomputes the pixel buffer from the current state and returns it
func (v *Visualizer) Render() []byte {
	RenderInto(v.pixels, &v.state, v.width)
	v.frames++
	return v.pixels
}

// Pixels returns the last rendered buffer, 4 bytes (RGBA) per cell.
// The slice is overwritten by the next render; copy it to keep it.
func (v *Visualizer) Pixels() []byte {
	return v.pixels
}

// Pixel returns cell i of the last rendered buffer
func (v *Visualizer) Pixel(i int) RGBA {
	var px RGBA
	copy(px[:], v.pixels[i*4:i*4+4])
	return px
}

// State returns a copy of the key state
func (v *Visualizer) State() KeyState {
	return v.state
}

// Frames counts renders since construction
func (v *Visualizer) Frames() uint64 {
	return v.frames
}

// Run feeds messages into the visualizer until ctx is done or msgs is
// closed, calling onFrame after each one. onFrame must not retain the
// buffer.
func (v *Visualizer) Run(ctx context.Context, msgs <-chan []byte, onFrame func([]byte)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}
			v.Receive(msg)
			if onFrame != nil {
				onFrame(v.pixels)
			}
		}
	}
}
