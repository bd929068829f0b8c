package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/presence-engine/internal/domain/auth"
	"github.com/cmlabs-hris/presence-engine/internal/domain/leave"
	"github.com/cmlabs-hris/presence-engine/internal/domain/report"
	"github.com/cmlabs-hris/presence-engine/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrMissingIdentity):
		Unauthorized(w, "Token does not identify an employee")
	case errors.Is(err, auth.ErrAdminAccessRequired):
		Forbidden(w, "Admin access required")

	// Report domain errors
	case errors.Is(err, report.ErrInvalidMonth):
		BadRequest(w, "month must be in YYYY-MM format", nil)
	case errors.Is(err, report.ErrInvalidDateRange),
		errors.Is(err, report.ErrWindowLengthMismatch):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, report.ErrEmployeeNotIdentified):
		BadRequest(w, "Employee not identified", nil)

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed):
		Conflict(w, "Leave request already processed")

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
