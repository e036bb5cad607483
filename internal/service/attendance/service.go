package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"github.com/talenthub-id/ess-gateway-go/internal/domain/attendance"
	"github.com/talenthub-id/ess-gateway-go/internal/domain/leave"
	"github.com/talenthub-id/ess-gateway-go/internal/pkg/dateutil"
)

type attendanceServiceImpl struct {
	fetcher attendance.RecordFetcher
	loc     *time.Location
	now     func() time.Time
}

// NewAttendanceService wires the reconciliation core to a record fetcher.
// All "today" decisions use the given location.
func NewAttendanceService(fetcher attendance.RecordFetcher, loc *time.Location) attendance.AttendanceService {
	return &attendanceServiceImpl{
		fetcher: fetcher,
		loc:     loc,
		now:     time.Now,
	}
}

// monthSnapshot is one fetched and resolved month for one employee.
type monthSnapshot struct {
	year      int
	month     time.Month
	days      map[dateutil.Date]*attendance.DayRecord
	coverage  leave.Coverage
	quotaUsed int
}

func (s *attendanceServiceImpl) today() dateutil.Date {
	return dateutil.FromTime(s.now().In(s.loc))
}

func employeeIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", fmt.Errorf("employee_id not found in token")
	}
	return employeeID, nil
}

// loadMonth fetches the month's punches, official records and approved
// WFH/OD applications, then resolves every day. Fetches always cover the
// whole month so the quota count is authoritative for it.
func (s *attendanceServiceImpl) loadMonth(ctx context.Context, employeeID string, year int, month time.Month) (*monthSnapshot, error) {
	from := dateutil.MonthStart(year, month)
	to := dateutil.MonthEnd(year, month)

	punches, err := s.fetcher.FetchPunches(ctx, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch punches: %w", err)
	}
	records, err := s.fetcher.FetchRecords(ctx, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch attendance records: %w", err)
	}
	wfh, err := s.fetcher.FetchApprovedApplications(ctx, leave.KindWFH, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch wfh applications: %w", err)
	}
	od, err := s.fetcher.FetchApprovedApplications(ctx, leave.KindOD, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch od applications: %w", err)
	}

	coverage := leave.BuildCoverage(append(wfh, od...))
	days := BuildMonth(year, month, punches, records, coverage)

	return &monthSnapshot{
		year:      year,
		month:     month,
		days:      days,
		coverage:  coverage,
		quotaUsed: CountBackfilledDates(days),
	}, nil
}

func (s *attendanceServiceImpl) GetMonthCalendar(ctx context.Context, year int, month time.Month) (attendance.MonthCalendarResponse, error) {
	if month < time.January || month > time.December {
		return attendance.MonthCalendarResponse{}, attendance.ErrInvalidMonth
	}
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return attendance.MonthCalendarResponse{}, err
	}

	snap, err := s.loadMonth(ctx, employeeID, year, month)
	if err != nil {
		return attendance.MonthCalendarResponse{}, err
	}

	return attendance.MonthCalendarResponse{
		Grid:  ProjectMonth(year, month, snap.days, snap.coverage, s.today()),
		Quota: attendance.QuotaStatusResponse{Used: snap.quotaUsed, Max: MaxMonthlyBackfills},
	}, nil
}

func (s *attendanceServiceImpl) GetDayEligibility(ctx context.Context, date dateutil.Date) (attendance.EligibilityResponse, error) {
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return attendance.EligibilityResponse{}, err
	}

	snap, err := s.loadMonth(ctx, employeeID, date.Year, date.Month)
	if err != nil {
		return attendance.EligibilityResponse{}, err
	}

	elig := EvaluateEntry(snap.days[date], s.today(), snap.quotaUsed)
	resp := attendance.EligibilityResponse{Date: date, Eligible: elig.Eligible}
	switch {
	case elig.Eligible:
		resp.AllowedDirection = elig.Direction
	case !IsSilentRejection(elig.Err):
		resp.Reason = elig.Err.Error()
	}
	return resp, nil
}

func (s *attendanceServiceImpl) SubmitEntry(ctx context.Context, req attendance.SubmitEntryRequest) (attendance.SubmitEntryResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.SubmitEntryResponse{}, err
	}
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return attendance.SubmitEntryResponse{}, err
	}

	date, err := dateutil.Parse(req.Date)
	if err != nil {
		return attendance.SubmitEntryResponse{}, err
	}
	clock, err := time.Parse(clockLayout, req.Time)
	if err != nil {
		return attendance.SubmitEntryResponse{}, err
	}

	snap, err := s.loadMonth(ctx, employeeID, date.Year, date.Month)
	if err != nil {
		return attendance.SubmitEntryResponse{}, err
	}

	today := s.today()
	day := snap.days[date]
	elig := EvaluateEntry(day, today, snap.quotaUsed)

	flow := NewEntryFlow()
	if err := flow.Open(date, elig); err != nil {
		return attendance.SubmitEntryResponse{}, err
	}

	isBackfill := date != today

	// The locally counted quota can be stale against the source of truth.
	// Re-verify whether this date already consumed it; a failed check
	// denies rather than risking a fourth backfilled date.
	if isBackfill && !day.HasManualPunch {
		hasManual, err := s.fetcher.DayHasManualPunch(ctx, employeeID, date)
		if err != nil {
			flow.Cancel()
			return attendance.SubmitEntryResponse{}, attendance.ErrQuotaCheckFailed
		}
		if !hasManual && snap.quotaUsed >= MaxMonthlyBackfills {
			flow.Cancel()
			return attendance.SubmitEntryResponse{}, attendance.ErrMonthlyLimitReached
		}
	}

	if err := flow.BeginSubmit(); err != nil {
		return attendance.SubmitEntryResponse{}, err
	}

	punch := attendance.Punch{
		EmployeeID:       employeeID,
		Timestamp:        date.At(clock.Hour(), clock.Minute(), s.loc),
		Direction:        flow.Direction(),
		IsManualBackfill: isBackfill,
	}
	created, err := s.fetcher.SubmitPunch(ctx, punch)
	flow.Complete(err)
	if err != nil {
		return attendance.SubmitEntryResponse{}, fmt.Errorf("failed to submit punch: %w", err)
	}

	// Refetch instead of incrementing locally: the quota is recomputed
	// from records, never counted up.
	refreshed, err := s.loadMonth(ctx, employeeID, date.Year, date.Month)
	if err != nil {
		return attendance.SubmitEntryResponse{}, err
	}

	return attendance.SubmitEntryResponse{
		Date:             date,
		Direction:        created.Direction,
		Timestamp:        created.Timestamp.Format("2006-01-02 15:04:05"),
		IsManualBackfill: created.IsManualBackfill,
		Quota:            attendance.QuotaStatusResponse{Used: refreshed.quotaUsed, Max: MaxMonthlyBackfills},
	}, nil
}

func (s *attendanceServiceImpl) GetQuotaStatus(ctx context.Context, year int, month time.Month) (attendance.QuotaStatusResponse, error) {
	if month < time.January || month > time.December {
		return attendance.QuotaStatusResponse{}, attendance.ErrInvalidMonth
	}
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return attendance.QuotaStatusResponse{}, err
	}

	snap, err := s.loadMonth(ctx, employeeID, year, month)
	if err != nil {
		return attendance.QuotaStatusResponse{}, err
	}
	return attendance.QuotaStatusResponse{Used: snap.quotaUsed, Max: MaxMonthlyBackfills}, nil
}
