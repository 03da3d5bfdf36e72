package timers

import "fmt"

// ValidationError reports input that cannot become a timer. Message is meant
// to be shown to the user as-is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// DeserializationError reports a persisted payload that could not be decoded
type DeserializationError struct {
	Err error
}

func (e *DeserializationError) Error() string {
	return fmt.Sprintf("failed to decode timers: %v", e.Err)
}

func (e *DeserializationError) Unwrap() error {
	return e.Err
}
