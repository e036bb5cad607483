package attendance

import (
	"context"

	"github.com/talenthub-id/ess-gateway-go/internal/domain/leave"
	"github.com/talenthub-id/ess-gateway-go/internal/pkg/dateutil"
)

// RecordFetcher retrieves and creates attendance records on the backend
// system of record. It is injected into the reconciliation core; the core
// never reaches for an ambient client.
type RecordFetcher interface {
	// FetchPunches retrieves check-in/out events between from and to
	// inclusive.
	FetchPunches(ctx context.Context, employeeID string, from, to dateutil.Date) ([]Punch, error)

	// FetchRecords retrieves officially submitted attendance records
	// between from and to inclusive. Draft and cancelled records are
	// excluded at the source.
	FetchRecords(ctx context.Context, employeeID string, from, to dateutil.Date) ([]Record, error)

	// FetchApprovedApplications retrieves approved, submitted WFH or OD
	// applications for the employee.
	FetchApprovedApplications(ctx context.Context, kind leave.Kind, employeeID string) ([]leave.Application, error)

	// SubmitPunch creates a new punch event. Creation is all-or-nothing.
	SubmitPunch(ctx context.Context, punch Punch) (Punch, error)

	// DayHasManualPunch reports whether the date already holds a manual
	// backfill punch. Used to decide whether a submission re-consumes the
	// monthly quota.
	DayHasManualPunch(ctx context.Context, employeeID string, date dateutil.Date) (bool, error)
}
