package response

import (
	"errors"
	"net/http"

	"github.com/pointagehq/attendance-backend-go/internal/domain/auth"
	"github.com/pointagehq/attendance-backend-go/internal/domain/stats"
	"github.com/pointagehq/attendance-backend-go/internal/domain/user"
	"github.com/pointagehq/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses. Data-quality anomalies
// never reach this point; they travel inside successful results.
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Statistics domain errors
	case errors.Is(err, stats.ErrInvalidRange):
		BadRequest(w, "End date precedes start date", nil)
	case errors.Is(err, stats.ErrUnknownUser):
		NotFound(w, "User not found")
	case errors.Is(err, stats.ErrUnknownTeam):
		NotFound(w, "Team not found")

	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")

	// Access control errors
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, user.ErrManagerAccessRequired):
		Forbidden(w, "Manager access required")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
