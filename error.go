package emdiff

import "fmt"

// UsageError reports a problem with the invocation itself, such as a missing
// log file argument, as opposed to a failure while running the comparison.
type UsageError struct {
	Reason string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("usage error: %s", e.Reason)
}

func usageErr(format string, args ...interface{}) *UsageError {
	return &UsageError{Reason: fmt.Sprintf(format, args...)}
}
