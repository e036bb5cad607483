package leave

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/talenthub-id/ess-gateway-go/internal/pkg/dateutil"
)

// Kind distinguishes the application doctypes an employee can raise.
type Kind string

const (
	KindLeave    Kind = "leave"
	KindGatepass Kind = "gatepass"
	KindOD       Kind = "od"
	KindWFH      Kind = "wfh"
)

type ApprovalStatus string

const (
	ApprovalStatusOpen      ApprovalStatus = "Open"
	ApprovalStatusApproved  ApprovalStatus = "Approved"
	ApprovalStatusRejected  ApprovalStatus = "Rejected"
	ApprovalStatusCancelled ApprovalStatus = "Cancelled"
)

// Application is an employee request whose effect spans an inclusive date
// range. For attendance reconciliation only approved and submitted WFH/OD
// applications are relevant.
type Application struct {
	ID         string
	EmployeeID string
	Kind       Kind
	StartDate  dateutil.Date
	EndDate    dateutil.Date
	Status     ApprovalStatus
	Reason     string
	LeaveType  string
	HalfDay    bool
	CreatedAt  time.Time
}

// CoveredDates expands the application's inclusive date range.
func (a Application) CoveredDates() []dateutil.Date {
	return ExpandRange(a.StartDate, a.EndDate)
}

// ExpandRange returns every calendar date from start to end inclusive, in
// order. The result is empty when end is before start.
func ExpandRange(start, end dateutil.Date) []dateutil.Date {
	if end.Before(start) {
		return nil
	}
	dates := make([]dateutil.Date, 0, end.DaysSince(start)+1)
	for d := start; !d.After(end); d = d.AddDays(1) {
		dates = append(dates, d)
	}
	return dates
}

// DayCoverage records which approved application kinds cover a date. WFH and
// OD are independent flags for all eligibility decisions; Badge only decides
// which single marker a calendar cell renders when both cover the date.
type DayCoverage struct {
	WFH   bool
	OD    bool
	Badge Kind

	badgeCreatedAt time.Time
}

// Coverage indexes per-date WFH/OD membership for a set of applications.
type Coverage map[dateutil.Date]DayCoverage

// BuildCoverage expands every application day by day. When a date is covered
// by both a WFH and an OD application, the badge goes to the one whose
// application was created most recently.
func BuildCoverage(apps []Application) Coverage {
	cov := make(Coverage)
	for _, app := range apps {
		if app.Kind != KindWFH && app.Kind != KindOD {
			continue
		}
		for _, d := range app.CoveredDates() {
			day := cov[d]
			switch app.Kind {
			case KindWFH:
				day.WFH = true
			case KindOD:
				day.OD = true
			}
			if day.Badge == "" || app.CreatedAt.After(day.badgeCreatedAt) {
				day.Badge = app.Kind
				day.badgeCreatedAt = app.CreatedAt
			}
			cov[d] = day
		}
	}
	return cov
}

// Balance is the remaining allocation for one leave type. Day counts are
// fractional because half-day leaves consume 0.5.
type Balance struct {
	LeaveType string
	Allocated decimal.Decimal
	Used      decimal.Decimal
	Remaining decimal.Decimal
}
