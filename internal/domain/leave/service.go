package leave

import "context"

// LeaveService defines business logic for applications and approvals.
type LeaveService interface {
	// Apply submits a leave, gatepass, OD or WFH application for the
	// authenticated employee.
	Apply(ctx context.Context, req ApplyRequest) (ApplicationResponse, error)

	// ListMyApplications retrieves the authenticated employee's applications.
	ListMyApplications(ctx context.Context, kind *Kind) (ListApplicationsResponse, error)

	// Cancel withdraws one of the employee's still-open applications.
	Cancel(ctx context.Context, kind Kind, id string) error

	// ListPendingApprovals retrieves applications awaiting the caller.
	ListPendingApprovals(ctx context.Context) (ListApplicationsResponse, error)

	// Decide approves or rejects an application awaiting the caller.
	Decide(ctx context.Context, req DecideRequest) error

	// GetBalances retrieves the employee's leave balances.
	GetBalances(ctx context.Context) ([]BalanceResponse, error)
}
