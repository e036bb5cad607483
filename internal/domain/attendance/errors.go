package attendance

import "errors"

// Manual-entry eligibility errors. All are user-recoverable; only
// ErrOutsideEditWindow is silent (the client shows nothing for it).
var (
	ErrOutsideEditWindow   = errors.New("date is outside the editable window")
	ErrDayAlreadyComplete  = errors.New("both punches already recorded for this day")
	ErrPresentDayLocked    = errors.New("manual entry is not allowed on an officially present day")
	ErrRequiresWFHOrOD     = errors.New("manual entry requires an approved WFH or OD application")
	ErrMonthlyLimitReached = errors.New("monthly missing punch limit reached")
)

// General errors
var (
	ErrInvalidMonth       = errors.New("invalid calendar month")
	ErrQuotaCheckFailed   = errors.New("could not verify the monthly missing punch quota")
	ErrEntryNotEligible   = errors.New("day is not eligible for manual entry")
	ErrSubmissionInFlight = errors.New("a submission is already in progress")
)
