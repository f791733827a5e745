package handler

import (
	"errors"

	"github.com/forgo/signup/api/internal/model"
	"github.com/forgo/signup/api/internal/service"
)

// Details shown to API callers. Clients match on these substrings.
const (
	detailActivityNotFound    = "Activity not found"
	detailParticipantNotFound = "Participant not found in this activity"
	detailAlreadySignedUp     = "Student is already signed up for this activity"
	detailStoreUnavailable    = "Activity store is unavailable"
)

// MapServiceError converts a service error to a ProblemDetails response.
// This centralizes error handling logic for all handlers, ensuring consistent
// HTTP status codes and error messages across the API.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	var pd *model.ProblemDetails
	if errors.As(err, &pd) {
		return pd
	}

	switch {
	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrActivityNotFound):
		return model.NewNotFoundError(detailActivityNotFound)
	case errors.Is(err, service.ErrParticipantNotFound):
		return model.NewNotFoundError(detailParticipantNotFound)

	// ===== Conflict Errors → 409 =====
	case errors.Is(err, service.ErrAlreadySignedUp):
		return model.NewConflictError(detailAlreadySignedUp)

	// ===== Validation Errors → 422 =====
	case errors.Is(err, service.ErrEmailRequired):
		return model.NewValidationError([]model.FieldError{
			{Field: "email", Message: "email is required"},
		})

	// ===== Store Errors → 503 =====
	case errors.Is(err, service.ErrStoreUnavailable):
		return model.NewUnavailableError(detailStoreUnavailable)

	// ===== Default → 500 =====
	default:
		return model.NewInternalError("")
	}
}

// MapServiceErrorWithContext converts a service error to a ProblemDetails response
// with additional context about the operation that failed.
func MapServiceErrorWithContext(err error, operation string) *model.ProblemDetails {
	pd := MapServiceError(err)
	if pd != nil && pd.Status == 500 {
		pd.Detail = operation + ": an unexpected error occurred"
	}
	return pd
}
