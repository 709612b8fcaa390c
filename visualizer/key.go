package visualizer

import (
	"errors"
	"fmt"
)

// Piano range in MIDI note numbers
const (
	NumKeys     = 88
	LowestNote  = 21  // A0
	HighestNote = 108 // C8

	SustainController = 64
)

var (
	ErrNoteOutOfRange = errors.New("note outside piano range")
	ErrMalformed      = errors.New("malformed message")
	ErrInvalidWidth   = errors.New("width must be positive")
)

// Key is a piano key index, 0 = A0 through 87 = C8
type Key int

// KeyFromNote converts a MIDI note number to a key index.
// Notes outside [LowestNote, HighestNote] return ErrNoteOutOfRange.
func KeyFromNote(note uint8) (Key, error) {
	if note < LowestNote || note > HighestNote {
		return 0, fmt.Errorf("note %d: %w", note, ErrNoteOutOfRange)
	}
	return Key(note - LowestNote), nil
}

func (k Key) Valid() bool {
	return k >= 0 && k < NumKeys
}

// Note returns the MIDI note number for the key
func (k Key) Note() uint8 {
	return uint8(int(k) + LowestNote)
}

// PitchClass is the key index reduced modulo 12
func (k Key) PitchClass() PitchClass {
	return PitchClass(int(k) % 12)
}

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Name returns the scientific pitch name, e.g. "A0" or "C4"
func (k Key) Name() string {
	if !k.Valid() {
		return fmt.Sprintf("?%d", int(k))
	}
	n := int(k.Note())
	return fmt.Sprintf("%s%d", noteNames[n%12], n/12-1)
}
