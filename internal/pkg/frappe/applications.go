package frappe

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/talenthub-id/ess-gateway-go/internal/domain/leave"
	"github.com/talenthub-id/ess-gateway-go/internal/pkg/dateutil"
)

// Applications implements leave.ApplicationRepository over the Frappe
// "Leave Application", "Gatepass" and "Attendance Request" doctypes.
type Applications struct {
	client *Client
}

func NewApplications(client *Client) *Applications {
	return &Applications{client: client}
}

func kindDoctype(kind leave.Kind) (string, error) {
	switch kind {
	case leave.KindLeave:
		return "Leave Application", nil
	case leave.KindGatepass:
		return "Gatepass", nil
	case leave.KindWFH, leave.KindOD:
		return "Attendance Request", nil
	default:
		return "", fmt.Errorf("unknown application kind %q", kind)
	}
}

type applicationDoc struct {
	Name          string `json:"name"`
	Employee      string `json:"employee"`
	FromDate      string `json:"from_date"`
	ToDate        string `json:"to_date"`
	Status        string `json:"status"`
	WorkflowState string `json:"workflow_state"`
	Reason        string `json:"reason"`
	Description   string `json:"description"`
	LeaveType     string `json:"leave_type"`
	HalfDay       int    `json:"half_day"`
	Creation      string `json:"creation"`
}

func applicationFields(kind leave.Kind) []string {
	switch kind {
	case leave.KindLeave:
		return []string{"name", "employee", "from_date", "to_date", "status", "description", "leave_type", "half_day", "creation"}
	case leave.KindGatepass:
		return []string{"name", "employee", "from_date", "to_date", "workflow_state", "reason", "creation"}
	default:
		return []string{"name", "employee", "from_date", "to_date", "workflow_state", "reason", "creation"}
	}
}

func (a *Applications) toApplication(doc applicationDoc, kind leave.Kind) (leave.Application, error) {
	start, err := dateutil.Parse(doc.FromDate)
	if err != nil {
		return leave.Application{}, fmt.Errorf("application %s: %w", doc.Name, err)
	}
	end, err := dateutil.Parse(doc.ToDate)
	if err != nil {
		return leave.Application{}, fmt.Errorf("application %s: %w", doc.Name, err)
	}
	var created time.Time
	if doc.Creation != "" {
		created, err = a.client.parseDatetime(doc.Creation)
		if err != nil {
			return leave.Application{}, fmt.Errorf("application %s: %w", doc.Name, err)
		}
	}

	status := doc.Status
	if status == "" {
		status = doc.WorkflowState
	}
	reason := doc.Reason
	if reason == "" {
		reason = doc.Description
	}

	return leave.Application{
		ID:         doc.Name,
		EmployeeID: doc.Employee,
		Kind:       kind,
		StartDate:  start,
		EndDate:    end,
		Status:     leave.ApprovalStatus(status),
		Reason:     reason,
		LeaveType:  doc.LeaveType,
		HalfDay:    doc.HalfDay == 1,
		CreatedAt:  created,
	}, nil
}

// Create implements leave.ApplicationRepository.
func (a *Applications) Create(ctx context.Context, app leave.Application) (leave.Application, error) {
	doctype, err := kindDoctype(app.Kind)
	if err != nil {
		return leave.Application{}, err
	}

	doc := map[string]interface{}{
		"employee":  app.EmployeeID,
		"from_date": app.StartDate.String(),
		"to_date":   app.EndDate.String(),
	}
	switch app.Kind {
	case leave.KindLeave:
		doc["leave_type"] = app.LeaveType
		doc["description"] = app.Reason
		if app.HalfDay {
			doc["half_day"] = 1
			doc["half_day_date"] = app.StartDate.String()
		}
	case leave.KindGatepass:
		doc["reason"] = app.Reason
	case leave.KindWFH, leave.KindOD:
		reason, _ := attendanceRequestReason(app.Kind)
		doc["reason"] = reason
		doc["explanation"] = app.Reason
	}

	var created applicationDoc
	if err := a.client.insert(ctx, doctype, doc, &created); err != nil {
		return leave.Application{}, fmt.Errorf("create %s application: %w", app.Kind, err)
	}
	app.ID = created.Name
	app.Status = leave.ApprovalStatusOpen
	return app, nil
}

// ListByEmployee implements leave.ApplicationRepository.
func (a *Applications) ListByEmployee(ctx context.Context, employeeID string, kind *leave.Kind) ([]leave.Application, error) {
	kinds := []leave.Kind{leave.KindLeave, leave.KindGatepass, leave.KindOD, leave.KindWFH}
	if kind != nil {
		kinds = []leave.Kind{*kind}
	}

	var apps []leave.Application
	for _, k := range kinds {
		doctype, err := kindDoctype(k)
		if err != nil {
			return nil, err
		}
		filters := [][]interface{}{
			{"employee", "=", employeeID},
		}
		if reason, ok := attendanceRequestReason(k); ok {
			filters = append(filters, []interface{}{"reason", "=", reason})
		}

		var docs []applicationDoc
		err = a.client.getList(ctx, doctype, listOptions{
			Filters: filters,
			Fields:  applicationFields(k),
			OrderBy: "creation desc",
		}, &docs)
		if err != nil {
			return nil, fmt.Errorf("list %s applications: %w", k, err)
		}
		for _, doc := range docs {
			app, err := a.toApplication(doc, k)
			if err != nil {
				return nil, err
			}
			apps = append(apps, app)
		}
	}
	return apps, nil
}

// Cancel implements leave.ApplicationRepository.
func (a *Applications) Cancel(ctx context.Context, kind leave.Kind, id string) error {
	doctype, err := kindDoctype(kind)
	if err != nil {
		return err
	}
	if err := a.client.cancelDoc(ctx, doctype, id); err != nil {
		return fmt.Errorf("cancel %s %s: %w", doctype, id, err)
	}
	return nil
}

// ListPendingApprovals implements leave.ApplicationRepository. Pending
// documents carry the caller as their designated approver.
func (a *Applications) ListPendingApprovals(ctx context.Context, approverID string) ([]leave.Application, error) {
	var apps []leave.Application
	for _, k := range []leave.Kind{leave.KindLeave, leave.KindGatepass, leave.KindOD, leave.KindWFH} {
		doctype, err := kindDoctype(k)
		if err != nil {
			return nil, err
		}

		filters := [][]interface{}{
			{"docstatus", "=", 0},
		}
		if k == leave.KindLeave {
			filters = append(filters,
				[]interface{}{"leave_approver", "=", approverID},
				[]interface{}{"status", "=", string(leave.ApprovalStatusOpen)},
			)
		} else {
			filters = append(filters,
				[]interface{}{"custom_approver", "=", approverID},
				[]interface{}{"workflow_state", "=", string(leave.ApprovalStatusOpen)},
			)
		}
		if reason, ok := attendanceRequestReason(k); ok {
			filters = append(filters, []interface{}{"reason", "=", reason})
		}

		var docs []applicationDoc
		err = a.client.getList(ctx, doctype, listOptions{
			Filters: filters,
			Fields:  applicationFields(k),
			OrderBy: "creation asc",
		}, &docs)
		if err != nil {
			return nil, fmt.Errorf("list pending %s approvals: %w", k, err)
		}
		for _, doc := range docs {
			app, err := a.toApplication(doc, k)
			if err != nil {
				return nil, err
			}
			apps = append(apps, app)
		}
	}
	return apps, nil
}

// ApplyAction implements leave.ApplicationRepository. Transitions run
// through the backend workflow engine so its validations still apply.
func (a *Applications) ApplyAction(ctx context.Context, kind leave.Kind, id string, action leave.WorkflowAction, reason string) error {
	doctype, err := kindDoctype(kind)
	if err != nil {
		return err
	}

	if action == leave.ActionReject && reason != "" {
		if err := a.client.setValue(ctx, doctype, id, map[string]interface{}{
			"custom_rejection_reason": reason,
		}); err != nil {
			return fmt.Errorf("record rejection reason: %w", err)
		}
	}

	err = a.client.call(ctx, "frappe.model.workflow.apply_workflow", map[string]interface{}{
		"doc":    map[string]string{"doctype": doctype, "name": id},
		"action": string(action),
	}, nil)
	if err != nil {
		return fmt.Errorf("apply %s on %s %s: %w", action, doctype, id, err)
	}
	return nil
}

type leaveDetails struct {
	LeaveAllocation map[string]struct {
		TotalLeaves     float64 `json:"total_leaves"`
		LeavesTaken     float64 `json:"leaves_taken"`
		RemainingLeaves float64 `json:"remaining_leaves"`
	} `json:"leave_allocation"`
}

// FetchBalances implements leave.ApplicationRepository.
func (a *Applications) FetchBalances(ctx context.Context, employeeID string) ([]leave.Balance, error) {
	var details leaveDetails
	err := a.client.call(ctx, "hrms.hr.doctype.leave_application.leave_application.get_leave_details", map[string]string{
		"employee": employeeID,
		"date":     dateutil.Today(a.client.Location()).String(),
	}, &details)
	if err != nil {
		return nil, fmt.Errorf("fetch leave balances: %w", err)
	}

	balances := make([]leave.Balance, 0, len(details.LeaveAllocation))
	for leaveType, alloc := range details.LeaveAllocation {
		balances = append(balances, leave.Balance{
			LeaveType: leaveType,
			Allocated: decimal.NewFromFloat(alloc.TotalLeaves),
			Used:      decimal.NewFromFloat(alloc.LeavesTaken),
			Remaining: decimal.NewFromFloat(alloc.RemainingLeaves),
		})
	}
	return balances, nil
}
