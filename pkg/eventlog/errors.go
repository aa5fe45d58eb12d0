package eventlog

import "fmt"

// Level locates an attribute problem in the log hierarchy.
type Level int

const (
	LevelEvent Level = iota
	LevelTrace
	LevelLog
)

func (l Level) String() string {
	switch l {
	case LevelEvent:
		return "event"
	case LevelTrace:
		return "trace"
	case LevelLog:
		return "log"
	default:
		return "unknown"
	}
}

// ErrorKind distinguishes a missing attribute from one of the wrong type.
type ErrorKind int

const (
	ErrMissing ErrorKind = iota
	ErrTypeMismatch
)

// AttributeError reports a missing or type-mismatched attribute.  It indicates
// malformed input data and is always propagated to the caller.
type AttributeError struct {
	Level    Level
	Key      string
	Kind     ErrorKind
	Expected Kind
	Actual   Kind
}

func (e *AttributeError) Error() string {
	switch e.Kind {
	case ErrTypeMismatch:
		return fmt.Sprintf("%s-level attribute %q has unexpected type: expected %s, found %s",
			e.Level, e.Key, e.Expected, e.Actual)
	default:
		return fmt.Sprintf("%s-level attribute %q not found", e.Level, e.Key)
	}
}

func missingErr(level Level, key string) *AttributeError {
	return &AttributeError{Level: level, Key: key, Kind: ErrMissing}
}

func mismatchErr(level Level, key string, expected, actual Kind) *AttributeError {
	return &AttributeError{Level: level, Key: key, Kind: ErrTypeMismatch, Expected: expected, Actual: actual}
}
