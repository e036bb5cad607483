package leave

import "errors"

var (
	ErrApplicationNotFound         = errors.New("application not found")
	ErrApplicationAlreadyProcessed = errors.New("application has already been approved or rejected")
	ErrInvalidDateRange            = errors.New("end date is before start date")
	ErrNotPendingApproval          = errors.New("application is not awaiting your approval")
)
