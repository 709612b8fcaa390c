package midi

// ControllerType identifies the kind of controller
type ControllerType int

const (
	ControllerUnknown ControllerType = iota
	ControllerKeyboard
)

// Controller is an open MIDI input that forwards raw messages
type Controller interface {
	ID() string
	Type() ControllerType

	// Failed reports a listener error; the manager drops failed controllers
	Failed() bool

	Close() error
}
