package leave

import (
	"context"
)

// WorkflowAction is a Frappe workflow transition applied by an approver.
type WorkflowAction string

const (
	ActionApprove WorkflowAction = "Approve"
	ActionReject  WorkflowAction = "Reject"
)

// ApplicationRepository defines access to application documents on the
// backend system of record.
type ApplicationRepository interface {
	// Create submits a new application document.
	Create(ctx context.Context, app Application) (Application, error)

	// ListByEmployee retrieves the employee's applications, optionally
	// filtered by kind, newest first.
	ListByEmployee(ctx context.Context, employeeID string, kind *Kind) ([]Application, error)

	// Cancel cancels a still-open application.
	Cancel(ctx context.Context, kind Kind, id string) error

	// ListPendingApprovals retrieves applications awaiting the approver.
	ListPendingApprovals(ctx context.Context, approverID string) ([]Application, error)

	// ApplyAction runs a workflow transition on an application. Reason is
	// required for rejections.
	ApplyAction(ctx context.Context, kind Kind, id string, action WorkflowAction, reason string) error

	// FetchBalances retrieves per-leave-type balances for the employee.
	FetchBalances(ctx context.Context, employeeID string) ([]Balance, error)
}
