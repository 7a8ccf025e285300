package api

import (
	"errors"
	"net/http"

	"github.com/crowdchain/crowdchain-api/internal/api/shared"
	"github.com/crowdchain/crowdchain-api/internal/domain"
	"github.com/crowdchain/crowdchain-api/internal/service"
	"github.com/crowdchain/crowdchain-api/internal/service/auth"
	"github.com/crowdchain/crowdchain-api/internal/store"
)

// Client-facing messages.
const (
	msgInternal          = "Internal server error"
	msgInvalidRequest    = "Invalid request format"
	msgInvalidCreds      = "Invalid credentials"
	msgAccountExists     = "User already exists"
	msgApplicationExists = "Application already exists for this wallet address"
	msgNotFound          = "Application not found"
	msgInvalidStatus     = "Invalid status. Must be PENDING, APPROVED, or REJECTED"
	msgInvalidToken      = "Invalid token"
	msgForbidden         = "Forbidden"
	msgBodyTooLarge      = "Request body too large"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// leaking internal error types to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK

	case errors.Is(err, errBodyTooLarge):
		return http.StatusRequestEntityTooLarge

	// Validation errors
	case domain.IsValidationError(err),
		errors.Is(err, domain.ErrInvalidApplicationStatus),
		errors.Is(err, domain.ErrTooManyDocuments),
		errors.Is(err, domain.ErrDocumentTooLarge),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrInvalidPassword),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Login with an unknown email is a bad request, not a 404
	case errors.Is(err, service.ErrAccountNotFound):
		return http.StatusBadRequest

	// Authentication errors
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized

	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusForbidden

	case errors.Is(err, service.ErrAccountExists),
		errors.Is(err, service.ErrApplicationExists),
		store.IsDuplicateError(err):
		return http.StatusConflict

	case store.IsNotFoundError(err):
		return http.StatusNotFound

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns the client-facing message for err. Validation
// errors name the offending field; everything unexpected gets a fixed message.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return msgInternal
	}

	switch {
	case errors.Is(err, errBodyTooLarge):
		return msgBodyTooLarge

	case errors.Is(err, domain.ErrInvalidApplicationStatus):
		return msgInvalidStatus

	case domain.IsValidationError(err):
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			return verr.Error()
		}
		return "Validation error"

	case errors.Is(err, service.ErrAccountNotFound),
		errors.Is(err, service.ErrInvalidCredentials):
		return msgInvalidCreds

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return msgInvalidToken

	case errors.Is(err, domain.ErrUnauthorized):
		return msgForbidden

	case errors.Is(err, service.ErrAccountExists), errors.Is(err, store.ErrEmailExists):
		return msgAccountExists

	case errors.Is(err, service.ErrApplicationExists), errors.Is(err, store.ErrWalletExists):
		return msgApplicationExists

	case errors.Is(err, store.ErrApplicationNotFound):
		return msgNotFound

	default:
		return msgInternal
	}
}

// HandleAPIError writes the mapped status and message for err and logs the
// redacted cause. A non-empty message overrides the safe message.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, message string) {
	status := MapErrorToStatusCode(err)
	if message == "" {
		message = GetSafeErrorMessage(err)
	}

	var opts []shared.ResponseOption
	if status == http.StatusUnauthorized {
		opts = append(opts, shared.WithElevatedLogLevel())
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}
