package attendance

import (
	"context"
	"time"

	"github.com/talenthub-id/ess-gateway-go/internal/pkg/dateutil"
)

// AttendanceService exposes the reconciled month view and the manual entry
// workflow to the transport layer.
type AttendanceService interface {
	// GetMonthCalendar builds the week-major calendar grid for a month,
	// with each day's resolved status, coverage badge and the monthly
	// missing-punch quota.
	GetMonthCalendar(ctx context.Context, year int, month time.Month) (MonthCalendarResponse, error)

	// GetDayEligibility evaluates whether the date accepts a manual punch
	// entry and which direction would be recorded.
	GetDayEligibility(ctx context.Context, date dateutil.Date) (EligibilityResponse, error)

	// SubmitEntry records a manual punch for an eligible day and refreshes
	// the underlying records.
	SubmitEntry(ctx context.Context, req SubmitEntryRequest) (SubmitEntryResponse, error)

	// GetQuotaStatus reports the monthly missing-punch quota usage.
	GetQuotaStatus(ctx context.Context, year int, month time.Month) (QuotaStatusResponse, error)
}
