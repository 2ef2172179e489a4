package api

import (
	"errors"
	"net/http"

	"github.com/photodeck/photodeck/internal/domain"
	"github.com/photodeck/photodeck/internal/generation"
	"github.com/photodeck/photodeck/internal/store"
	"github.com/photodeck/photodeck/internal/study"
)

// MapErrorToStatusCode translates domain and service errors into HTTP
// status codes. Unrecognized errors map to 500.
func MapErrorToStatusCode(err error) int {
	switch {
	case isValidationError(err):
		return http.StatusBadRequest

	case errors.Is(err, study.ErrNoActiveSession),
		errors.Is(err, study.ErrAnswerHidden):
		return http.StatusConflict

	case errors.Is(err, generation.ErrInvalidConfig):
		return http.StatusServiceUnavailable

	case errors.Is(err, generation.ErrContentBlocked):
		return http.StatusUnprocessableEntity

	case errors.Is(err, generation.ErrGenerationFailed),
		errors.Is(err, generation.ErrInvalidResponse):
		return http.StatusBadGateway

	case store.IsStorageUnavailable(err), store.IsStorageCorrupt(err):
		return http.StatusInternalServerError

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-safe message for the error.
// Validation and session errors carry their own message; everything
// else is reduced to a generic phrase so internals never leak into
// responses.
func GetSafeErrorMessage(err error) string {
	switch {
	case isValidationError(err),
		errors.Is(err, study.ErrNoActiveSession),
		errors.Is(err, study.ErrAnswerHidden):
		return err.Error()

	case errors.Is(err, generation.ErrInvalidConfig):
		return "card generation is not configured"

	case errors.Is(err, generation.ErrContentBlocked):
		return "content was blocked by the generation service"

	case errors.Is(err, generation.ErrGenerationFailed),
		errors.Is(err, generation.ErrInvalidResponse):
		return "card generation failed"

	default:
		return "an internal error occurred"
	}
}

func isValidationError(err error) bool {
	return errors.Is(err, domain.ErrCardIDEmpty) ||
		errors.Is(err, domain.ErrCardFrontEmpty) ||
		errors.Is(err, domain.ErrCardBackEmpty) ||
		errors.Is(err, domain.ErrCardNegativeCounter) ||
		errors.Is(err, domain.ErrFolderIDEmpty) ||
		errors.Is(err, domain.ErrFolderNameEmpty) ||
		errors.Is(err, domain.ErrFolderColorEmpty)
}
