package extract

import "fmt"

// Error represents a fatal media extraction failure. Extraction errors are
// not retried; they surface immediately and abort the run.
type Error struct {
	Reference string
	Message   string
	Cause     error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extract error for %s: %s: %v", e.Reference, e.Message, e.Cause)
	}
	return fmt.Sprintf("extract error for %s: %s", e.Reference, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
