package server

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-analyzer/internal/analysis"
	"github.com/jonathan/resume-analyzer/internal/ingestion"
)

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		invalidInput *analysis.InvalidInputError
		fieldErrs    validator.ValidationErrors
		unsupported  *ingestion.UnsupportedFormatError
		maxBytes     *http.MaxBytesError
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &invalidInput), errors.As(err, &fieldErrs):
		return http.StatusBadRequest
	case errors.As(err, &unsupported):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, ingestion.ErrTooLarge), errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}
