package emailsink

import "time"

// Level is the severity of a log event. Higher values are more severe.
// The sink uses severity for exactly one thing: picking the event whose
// rendered form becomes the message subject.
type Level int8

const (
	LevelVerbose Level = iota
	LevelDebug
	LevelInformation
	LevelWarning
	LevelError
	LevelFatal
)

// String returns the canonical name of the level. Unknown values render
// as "Unknown".
func (l Level) String() string {
	switch l {
	case LevelVerbose:
		return "Verbose"
	case LevelDebug:
		return "Debug"
	case LevelInformation:
		return "Information"
	case LevelWarning:
		return "Warning"
	case LevelError:
		return "Error"
	case LevelFatal:
		return "Fatal"
	default:
		return "Unknown"
	}
}

// Event is a single structured log event handed to the sink by the
// batching host. Events are read-only to the sink.
type Event struct {
	Timestamp time.Time
	Level     Level
	Message   string

	// Properties carries optional structured context attached to the
	// event. Formatters render it sorted by key.
	Properties map[string]any

	// Err is the error associated with the event, if any.
	Err error
}
