package visualizer

import (
	"fmt"

	gomidi "gitlab.com/gomidi/midi/v2"
)

// Channel voice status nibbles
const (
	NoteOn  uint8 = 0x90
	NoteOff uint8 = 0x80
	CC      uint8 = 0xB0
)

type EventKind int

const (
	KindIgnored EventKind = iota
	KindNoteOn
	KindNoteOff
	KindPedal
)

func (k EventKind) String() string {
	switch k {
	case KindNoteOn:
		return "note-on"
	case KindNoteOff:
		return "note-off"
	case KindPedal:
		return "pedal"
	}
	return "ignored"
}

// Event is a decoded message. Value is the velocity for note-on and the
// pedal position for KindPedal, both scaled to 0..1.
type Event struct {
	Kind  EventKind
	Key   Key
	Value float64
}

// Decode classifies a raw message without touching any state.
// Messages that are not exactly 3 bytes return ErrMalformed. Notes outside
// the piano return ErrNoteOutOfRange. Other statuses, and controllers other
// than sustain, decode to KindIgnored with a nil error.
func Decode(msg []byte) (Event, error) {
	if len(msg) != 3 {
		return Event{}, fmt.Errorf("%d bytes: %w", len(msg), ErrMalformed)
	}
	status := msg[0] & 0xF0
	data1, data2 := msg[1], msg[2]

	switch status {
	case NoteOn:
		k, err := KeyFromNote(data1)
		if err != nil {
			return Event{}, err
		}
		// velocity 0 stays a note-on
		return Event{Kind: KindNoteOn, Key: k, Value: float64(data2) / 127}, nil
	case NoteOff:
		k, err := KeyFromNote(data1)
		if err != nil {
			return Event{}, err
		}
		return Event{Kind: KindNoteOff, Key: k}, nil
	case CC:
		if data1 == SustainController {
			return Event{Kind: KindPedal, Value: float64(data2) / 127}, nil
		}
	}
	return Event{Kind: KindIgnored}, nil
}

// Describe renders a raw message for logs
func Describe(msg []byte) string {
	if len(msg) != 3 {
		return fmt.Sprintf("[% X]", msg)
	}
	return gomidi.Message(msg).String()
}

func (s *KeyState) apply(ev Event) {
	switch ev.Kind {
	case KindNoteOn:
		s.noteOn(ev.Key, ev.Value)
	case KindNoteOff:
		s.noteOff(ev.Key)
	case KindPedal:
		s.setPedal(ev.Value)
	}
}
