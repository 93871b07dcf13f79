package api

import (
	"errors"
	"net/http"

	"github.com/weeklisthq/weeklist-api/internal/domain"
	"github.com/weeklisthq/weeklist-api/internal/service"
	"github.com/weeklisthq/weeklist-api/internal/service/auth"
	"github.com/weeklisthq/weeklist-api/internal/store"
)

// SomethingWentWrong is the message for any unexpected failure. Internals
// never leak to the client.
const SomethingWentWrong = "Something went wrong!"

// MapErrorToStatusCode maps internal errors to HTTP status codes. The
// message strings live with the handlers (they are per-operation); the
// status mapping is shared.
func MapErrorToStatusCode(err error) int {
	var validationErr *domain.ValidationError

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Not found errors
	case store.IsNotFoundError(err),
		errors.Is(err, service.ErrTaskNotFound):
		return http.StatusNotFound

	// Policy violations: the record exists but its lifecycle forbids the
	// operation.
	case errors.Is(err, service.ErrWindowExpired):
		return http.StatusForbidden

	// Conflicts with current state
	case store.IsDuplicateError(err),
		errors.Is(err, service.ErrQuotaExceeded),
		errors.Is(err, service.ErrWeeklistInactive),
		errors.Is(err, service.ErrWeeklistCompleted),
		errors.Is(err, store.ErrUpdateConflict):
		return http.StatusConflict

	// Bad request errors
	case errors.As(err, &validationErr),
		errors.Is(err, store.ErrInvalidEntity),
		isDomainValidationError(err):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// isDomainValidationError matches the domain's sentinel validation errors.
func isDomainValidationError(err error) bool {
	for _, sentinel := range []error{
		domain.ErrValidation,
		domain.ErrInvalidID,
		domain.ErrEmptyFullname,
		domain.ErrEmptyEmail,
		domain.ErrInvalidEmail,
		domain.ErrEmptyMobile,
		domain.ErrEmptyPassword,
		domain.ErrPasswordTooShort,
		domain.ErrPasswordTooLong,
		domain.ErrInvalidAge,
		domain.ErrEmptyTaskDescription,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
