package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/generative-ai-go/genai"
	"github.com/googleapis/gax-go/v2/apierror"
	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
)

// ErrNoContent means the provider answered but the answer held no usable text.
var ErrNoContent = errors.New("no content in response")

// StatusError is a non-success status returned by the provider.
type StatusError struct {
	Code    int
	Message string
	Err     error
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("provider returned status %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("provider returned status %d", e.Code)
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

// classifyErr converts provider errors into StatusError or ErrNoContent where
// the failure is recognizable; other errors are returned wrapped.
func classifyErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("failed to generate content: %w", err)
	}

	var blocked *genai.BlockedError
	if errors.As(err, &blocked) {
		return fmt.Errorf("%w: %v", ErrNoContent, blocked)
	}

	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		return &StatusError{Code: gErr.Code, Message: gErr.Message, Err: err}
	}

	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.HTTPCode()
		if code <= 0 && apiErr.GRPCStatus() != nil {
			code = httpStatusFromCode(apiErr.GRPCStatus().Code())
		}
		if code > 0 {
			return &StatusError{Code: code, Message: apiErr.Reason(), Err: err}
		}
	}

	return fmt.Errorf("failed to generate content: %w", err)
}

// httpStatusFromCode maps the gRPC codes the Gemini API returns to HTTP statuses.
func httpStatusFromCode(code codes.Code) int {
	switch code {
	case codes.OK:
		return http.StatusOK
	case codes.InvalidArgument, codes.FailedPrecondition, codes.OutOfRange:
		return http.StatusBadRequest
	case codes.Unauthenticated:
		return http.StatusUnauthorized
	case codes.PermissionDenied:
		return http.StatusForbidden
	case codes.NotFound:
		return http.StatusNotFound
	case codes.ResourceExhausted:
		return http.StatusTooManyRequests
	case codes.Unimplemented:
		return http.StatusNotImplemented
	case codes.Unavailable:
		return http.StatusServiceUnavailable
	case codes.DeadlineExceeded:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
