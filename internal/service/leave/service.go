package leave

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"

	"github.com/talenthub-id/ess-gateway-go/internal/domain/leave"
	"github.com/talenthub-id/ess-gateway-go/internal/pkg/dateutil"
)

type leaveServiceImpl struct {
	repo leave.ApplicationRepository
}

func NewLeaveService(repo leave.ApplicationRepository) leave.LeaveService {
	return &leaveServiceImpl{repo: repo}
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

func toResponse(app leave.Application) leave.ApplicationResponse {
	return leave.ApplicationResponse{
		ID:         app.ID,
		EmployeeID: app.EmployeeID,
		Kind:       app.Kind,
		StartDate:  app.StartDate,
		EndDate:    app.EndDate,
		TotalDays:  len(app.CoveredDates()),
		Status:     string(app.Status),
		Reason:     app.Reason,
		HalfDay:    app.HalfDay,
		CreatedAt:  app.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func (s *leaveServiceImpl) Apply(ctx context.Context, req leave.ApplyRequest) (leave.ApplicationResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.ApplicationResponse{}, err
	}
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return leave.ApplicationResponse{}, err
	}

	start, err := dateutil.Parse(req.StartDate)
	if err != nil {
		return leave.ApplicationResponse{}, err
	}
	end, err := dateutil.Parse(req.EndDate)
	if err != nil {
		return leave.ApplicationResponse{}, err
	}
	if end.Before(start) {
		return leave.ApplicationResponse{}, leave.ErrInvalidDateRange
	}

	created, err := s.repo.Create(ctx, leave.Application{
		EmployeeID: employeeID,
		Kind:       leave.Kind(req.Kind),
		StartDate:  start,
		EndDate:    end,
		Status:     leave.ApprovalStatusOpen,
		Reason:     req.Reason,
		LeaveType:  req.LeaveType,
		HalfDay:    req.HalfDay,
	})
	if err != nil {
		return leave.ApplicationResponse{}, fmt.Errorf("failed to create application: %w", err)
	}
	return toResponse(created), nil
}

func (s *leaveServiceImpl) ListMyApplications(ctx context.Context, kind *leave.Kind) (leave.ListApplicationsResponse, error) {
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return leave.ListApplicationsResponse{}, err
	}

	apps, err := s.repo.ListByEmployee(ctx, employeeID, kind)
	if err != nil {
		return leave.ListApplicationsResponse{}, fmt.Errorf("failed to list applications: %w", err)
	}

	resp := leave.ListApplicationsResponse{
		TotalCount:   len(apps),
		Applications: make([]leave.ApplicationResponse, 0, len(apps)),
	}
	for _, app := range apps {
		resp.Applications = append(resp.Applications, toResponse(app))
	}
	return resp, nil
}

func (s *leaveServiceImpl) Cancel(ctx context.Context, kind leave.Kind, id string) error {
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return err
	}

	apps, err := s.repo.ListByEmployee(ctx, employeeID, &kind)
	if err != nil {
		return fmt.Errorf("failed to list applications: %w", err)
	}
	for _, app := range apps {
		if app.ID != id {
			continue
		}
		if app.Status != leave.ApprovalStatusOpen {
			return leave.ErrApplicationAlreadyProcessed
		}
		return s.repo.Cancel(ctx, kind, id)
	}
	// only the owner may cancel; anything else looks like a missing document
	return leave.ErrApplicationNotFound
}

func (s *leaveServiceImpl) ListPendingApprovals(ctx context.Context) (leave.ListApplicationsResponse, error) {
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return leave.ListApplicationsResponse{}, err
	}

	apps, err := s.repo.ListPendingApprovals(ctx, employeeID)
	if err != nil {
		return leave.ListApplicationsResponse{}, fmt.Errorf("failed to list pending approvals: %w", err)
	}

	resp := leave.ListApplicationsResponse{
		TotalCount:   len(apps),
		Applications: make([]leave.ApplicationResponse, 0, len(apps)),
	}
	for _, app := range apps {
		resp.Applications = append(resp.Applications, toResponse(app))
	}
	return resp, nil
}

func (s *leaveServiceImpl) Decide(ctx context.Context, req leave.DecideRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return err
	}

	pending, err := s.repo.ListPendingApprovals(ctx, employeeID)
	if err != nil {
		return fmt.Errorf("failed to list pending approvals: %w", err)
	}

	kind := leave.Kind(req.Kind)
	for _, app := range pending {
		if app.Kind == kind && app.ID == req.ID {
			return s.repo.ApplyAction(ctx, kind, req.ID, leave.WorkflowAction(req.Action), req.Reason)
		}
	}
	return leave.ErrNotPendingApproval
}

func (s *leaveServiceImpl) GetBalances(ctx context.Context) ([]leave.BalanceResponse, error) {
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	balances, err := s.repo.FetchBalances(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch leave balances: %w", err)
	}

	out := make([]leave.BalanceResponse, 0, len(balances))
	for _, b := range balances {
		out = append(out, leave.BalanceResponse{
			LeaveType: b.LeaveType,
			Allocated: b.Allocated.String(),
			Used:      b.Used.String(),
			Remaining: b.Remaining.String(),
		})
	}
	return out, nil
}
