package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/ali-aktas/HocaLingo-sub002/internal/api/shared"
	"github.com/ali-aktas/HocaLingo-sub002/internal/domain/srs"
	"github.com/ali-aktas/HocaLingo-sub002/internal/service/auth"
	"github.com/ali-aktas/HocaLingo-sub002/internal/service/progress"
	"github.com/ali-aktas/HocaLingo-sub002/internal/service/review"
	"github.com/ali-aktas/HocaLingo-sub002/internal/service/triage"
	"github.com/ali-aktas/HocaLingo-sub002/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized

	// Not found errors
	case errors.Is(err, store.ErrUserNotFound),
		errors.Is(err, store.ErrConceptNotFound),
		errors.Is(err, triage.ErrPackageNotFound),
		errors.Is(err, triage.ErrNoActiveSession),
		errors.Is(err, review.ErrConceptNotInDeck):
		return http.StatusNotFound

	// Quota errors
	case errors.Is(err, triage.ErrQuotaExceeded):
		return http.StatusTooManyRequests

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists),
		errors.Is(err, triage.ErrNotQueueHead),
		errors.Is(err, triage.ErrConceptAlreadyDecided),
		errors.Is(err, triage.ErrEmptyDeck),
		errors.Is(err, review.ErrConceptHidden):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, review.ErrInvalidGrade),
		errors.Is(err, srs.ErrInvalidDays),
		errors.Is(err, progress.ErrInvalidMonth):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message based
// on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrConceptNotFound):
		return "Concept not found"

	case errors.Is(err, triage.ErrPackageNotFound):
		return "Word package not found"

	case errors.Is(err, triage.ErrNoActiveSession):
		return "No active triage session"

	case errors.Is(err, triage.ErrNotQueueHead):
		return "Concept is not next in the triage queue"

	case errors.Is(err, triage.ErrConceptAlreadyDecided):
		return "Concept was already decided"

	case errors.Is(err, triage.ErrQuotaExceeded):
		return "Daily selection quota exceeded"

	case errors.Is(err, triage.ErrEmptyDeck):
		return "Keep at least one word before finishing"

	case errors.Is(err, review.ErrConceptNotInDeck):
		return "Concept is not in your deck"

	case errors.Is(err, review.ErrConceptHidden):
		return "Concept was discarded during selection"

	case errors.Is(err, review.ErrInvalidGrade):
		return "Invalid review grade"

	case errors.Is(err, srs.ErrInvalidDays):
		return "Postpone days must be at least 1"

	case errors.Is(err, progress.ErrInvalidMonth):
		return "Invalid statistics month"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	if strings.Contains(errMsg, "Field validation") {
		// Example: "Key: 'LoginRequest.Email' Error:Field validation for
		// 'Email' failed on the 'required' tag"
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}

// HandleServiceError maps err to a status code and safe message and writes
// the response, logging the underlying error with redaction.
func HandleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
}
