package analysis

import "fmt"

// InvalidInputError means a request referenced something that cannot be
// resolved. No analysis is saved when it is returned.
type InvalidInputError struct {
	Field   string
	Message string
	Cause   error
}

func (e *InvalidInputError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("invalid input: %s: %v", msg, e.Cause)
	}
	return fmt.Sprintf("invalid input: %s", msg)
}

func (e *InvalidInputError) Unwrap() error {
	return e.Cause
}

// PersistenceError means the analysis was computed but could not be saved.
// The computed response is discarded.
type PersistenceError struct {
	Message string
	Cause   error
}

func (e *PersistenceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("persistence error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("persistence error: %s", e.Message)
}

func (e *PersistenceError) Unwrap() error {
	return e.Cause
}
