package attendance

import (
	"strings"
	"time"

	"github.com/talenthub-id/ess-gateway-go/internal/pkg/dateutil"
)

// Direction of a single punch event.
type Direction string

const (
	DirectionIn  Direction = "IN"
	DirectionOut Direction = "OUT"
)

// Status is the canonical per-day attendance classification. The first five
// tokens can also appear on official attendance records; StatusIncomplete is
// only ever produced by resolution, and StatusNone marks the absence of an
// official record.
type Status string

const (
	StatusNone         Status = ""
	StatusPresent      Status = "present"
	StatusAbsent       Status = "absent"
	StatusOnLeave      Status = "on_leave"
	StatusHalfDay      Status = "half_day"
	StatusWorkFromHome Status = "work_from_home"
	StatusIncomplete   Status = "incomplete"
)

// NormalizeStatus maps a raw backend status string ("On Leave", "half day",
// "WORK FROM HOME") to its canonical token. Unrecognized values normalize to
// StatusNone so they never short-circuit punch-based resolution.
func NormalizeStatus(raw string) Status {
	token := strings.ToLower(strings.TrimSpace(raw))
	token = strings.ReplaceAll(token, "-", " ")
	token = strings.Join(strings.Fields(token), "_")
	switch Status(token) {
	case StatusPresent, StatusAbsent, StatusOnLeave, StatusHalfDay, StatusWorkFromHome:
		return Status(token)
	default:
		return StatusNone
	}
}

// Punch is one biometric or manually entered attendance event. Immutable
// once created.
type Punch struct {
	ID               string
	EmployeeID       string
	Timestamp        time.Time
	Direction        Direction
	IsManualBackfill bool
}

// Record is an officially submitted daily attendance status. Only
// docstatus-submitted records are fetched, and at most one per
// (employee, date) is authoritative.
type Record struct {
	EmployeeID string
	Date       dateutil.Date
	Status     Status
}

// DayRecord is the resolved, derived view for one calendar date. Resolved is
// always computed by the resolver, never set directly.
type DayRecord struct {
	Date       dateutil.Date
	PunchesIn  []time.Time
	PunchesOut []time.Time
	Official   Status
	IsWFH      bool
	IsOD       bool
	Resolved   Status

	// HasManualPunch is true when any punch on this date was a manual
	// backfill; the monthly quota counts such dates, not punch rows.
	HasManualPunch bool
}

func (d *DayRecord) HasIn() bool  { return len(d.PunchesIn) > 0 }
func (d *DayRecord) HasOut() bool { return len(d.PunchesOut) > 0 }

// IsComplete reports whether both punch directions are recorded.
func (d *DayRecord) IsComplete() bool { return d.HasIn() && d.HasOut() }

// IsPartial reports whether exactly one punch direction is recorded.
func (d *DayRecord) IsPartial() bool { return d.HasIn() != d.HasOut() }

// HasSignal reports whether the day carries any attendance signal at all
// (a punch or an official record), as opposed to the default-absent state.
func (d *DayRecord) HasSignal() bool {
	return d.HasIn() || d.HasOut() || d.Official != StatusNone
}
