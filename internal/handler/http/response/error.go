package response

import (
	"errors"
	"net/http"

	"github.com/talenthub-id/ess-gateway-go/internal/domain/attendance"
	"github.com/talenthub-id/ess-gateway-go/internal/domain/auth"
	"github.com/talenthub-id/ess-gateway-go/internal/domain/leave"
	"github.com/talenthub-id/ess-gateway-go/internal/pkg/validator"
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
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrPasswordNotSet):
		Unauthorized(w, "App password has not been set for this account")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrESSDisabled):
		Forbidden(w, "Employee self service is not enabled for this account")
	case errors.Is(err, auth.ErrDeviceMismatch):
		Forbidden(w, "Account is registered to a different device")
	case errors.Is(err, auth.ErrNotPermitted):
		Forbidden(w, "Insufficient permissions")
	case errors.Is(err, auth.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrInvalidMonth):
		BadRequest(w, "Month must be between 1 and 12", nil)
	case errors.Is(err, attendance.ErrOutsideEditWindow):
		UnprocessableEntity(w, "Date is outside the editable window")
	case errors.Is(err, attendance.ErrDayAlreadyComplete):
		Conflict(w, "Day already has both punches")
	case errors.Is(err, attendance.ErrPresentDayLocked):
		Conflict(w, "Day is already marked present")
	case errors.Is(err, attendance.ErrRequiresWFHOrOD):
		UnprocessableEntity(w, "Date requires an approved WFH or OD application")
	case errors.Is(err, attendance.ErrMonthlyLimitReached):
		UnprocessableEntity(w, "Monthly manual entry limit reached")
	case errors.Is(err, attendance.ErrQuotaCheckFailed):
		ServiceUnavailable(w, "Could not verify the monthly entry limit, please try again")
	case errors.Is(err, attendance.ErrEntryNotEligible):
		UnprocessableEntity(w, "Date is not eligible for a manual entry")
	case errors.Is(err, attendance.ErrSubmissionInFlight):
		Conflict(w, "A submission for this entry is already in progress")

	// Leave domain errors
	case errors.Is(err, leave.ErrApplicationNotFound):
		NotFound(w, "Application not found")
	case errors.Is(err, leave.ErrApplicationAlreadyProcessed):
		Conflict(w, "Application has already been processed")
	case errors.Is(err, leave.ErrInvalidDateRange):
		BadRequest(w, "End date must not be before start date", nil)
	case errors.Is(err, leave.ErrNotPendingApproval):
		NotFound(w, "Application is not awaiting your approval")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
