package extraction

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonathan/resume-analyzer/internal/llm"
)

// ErrNoClassifier is the fallback cause when no classifier is configured.
var ErrNoClassifier = errors.New("no skill classifier configured")

// ParseError represents a classifier answer that is not the expected JSON shape.
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// reasonFor maps a classifier error to a fallback reason.
func reasonFor(err error) Reason {
	var statusErr *llm.StatusError
	var parseErr *ParseError

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return ReasonTimeout
	case errors.As(err, &statusErr):
		return ReasonBadStatus
	case errors.As(err, &parseErr), errors.Is(err, llm.ErrNoContent):
		return ReasonParseError
	default:
		return ReasonTransportError
	}
}
