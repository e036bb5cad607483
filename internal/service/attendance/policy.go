package attendance

import (
	"github.com/talenthub-id/ess-gateway-go/internal/domain/attendance"
	"github.com/talenthub-id/ess-gateway-go/internal/pkg/dateutil"
)

const (
	// MaxMonthlyBackfills caps distinct manually backfilled dates per month.
	MaxMonthlyBackfills = 3

	// EditWindowDays is how many days back from today a day stays editable.
	EditWindowDays = 6
)

// Eligibility is the policy gate's verdict for one day. Err carries the
// rejection sentinel when Eligible is false; Direction is meaningful only
// when Eligible is true.
type Eligibility struct {
	Eligible  bool
	Direction attendance.Direction
	Err       error
}

func rejected(err error) Eligibility {
	return Eligibility{Err: err}
}

// EvaluateEntry runs the manual-entry eligibility gate for one day. Checks
// run in a fixed order so the caller always sees the highest-priority
// rejection. quotaUsed is the count of distinct backfilled dates in the
// displayed month.
func EvaluateEntry(day *attendance.DayRecord, today dateutil.Date, quotaUsed int) Eligibility {
	delta := today.DaysSince(day.Date)
	if delta < 0 || delta > EditWindowDays {
		return rejected(attendance.ErrOutsideEditWindow)
	}

	if day.IsComplete() {
		return rejected(attendance.ErrDayAlreadyComplete)
	}

	// An officially present day with no punches at all was not produced by
	// real punches; fabricating them is not allowed.
	if day.Official == attendance.StatusPresent && !day.HasIn() && !day.HasOut() {
		return rejected(attendance.ErrPresentDayLocked)
	}

	covered := day.IsWFH || day.IsOD

	if delta == 0 {
		// Same-day entry is an ordinary punch, permitted only under an
		// active WFH/OD application and never counted against the quota.
		if !covered {
			return rejected(attendance.ErrRequiresWFHOrOD)
		}
	} else {
		// Completing a partial punch finishes a real biometric event and
		// skips the WFH/OD requirement; a fully missing day does not.
		if !day.IsPartial() && !covered {
			return rejected(attendance.ErrRequiresWFHOrOD)
		}
		// Quota applies to any date not already counted; a date that
		// already holds a manual punch does not re-consume it.
		if !day.HasManualPunch && quotaUsed >= MaxMonthlyBackfills {
			return rejected(attendance.ErrMonthlyLimitReached)
		}
	}

	direction := attendance.DirectionIn
	if day.HasIn() && !day.HasOut() {
		direction = attendance.DirectionOut
	}
	return Eligibility{Eligible: true, Direction: direction}
}

// IsSilentRejection reports whether the rejection should surface nothing to
// the user. Days outside the editable window simply do not react.
func IsSilentRejection(err error) bool {
	return err == attendance.ErrOutsideEditWindow
}
