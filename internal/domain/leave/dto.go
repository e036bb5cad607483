package leave

import (
	"github.com/talenthub-id/ess-gateway-go/internal/pkg/dateutil"
	"github.com/talenthub-id/ess-gateway-go/internal/pkg/validator"
)

type ApplyRequest struct {
	Kind      string `json:"kind"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`
	LeaveType string `json:"leave_type,omitempty"`
	HalfDay   bool   `json:"half_day,omitempty"`
}

var applicationKinds = []string{
	string(KindLeave), string(KindGatepass), string(KindOD), string(KindWFH),
}

func (r *ApplyRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Kind, applicationKinds) {
		errs = append(errs, validator.ValidationError{
			Field:   "kind",
			Message: "kind must be one of leave, gatepass, od, wfh",
		})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be a valid YYYY-MM-DD date",
		})
	}

	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be a valid YYYY-MM-DD date",
		})
	}

	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if r.Kind == string(KindLeave) && validator.IsEmpty(r.LeaveType) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type is required for leave applications",
		})
	}

	if r.HalfDay && r.StartDate != r.EndDate {
		errs = append(errs, validator.ValidationError{
			Field:   "half_day",
			Message: "half day applications must cover a single date",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DecideRequest struct {
	Kind   string `json:"kind"`
	ID     string `json:"-"`
	Action string `json:"action"`
	Reason string `json:"reason,omitempty"`
}

func (r *DecideRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Kind, applicationKinds) {
		errs = append(errs, validator.ValidationError{
			Field:   "kind",
			Message: "kind must be one of leave, gatepass, od, wfh",
		})
	}

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "application id is required",
		})
	}

	if !validator.IsInSlice(r.Action, []string{string(ActionApprove), string(ActionReject)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "action",
			Message: "action must be Approve or Reject",
		})
	}

	if r.Action == string(ActionReject) && validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required when rejecting",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ApplicationResponse struct {
	ID         string        `json:"id"`
	EmployeeID string        `json:"employee_id"`
	Kind       Kind          `json:"kind"`
	StartDate  dateutil.Date `json:"start_date"`
	EndDate    dateutil.Date `json:"end_date"`
	TotalDays  int           `json:"total_days"`
	Status     string        `json:"status"`
	Reason     string        `json:"reason,omitempty"`
	HalfDay    bool          `json:"half_day,omitempty"`
	CreatedAt  string        `json:"created_at"`
}

type ListApplicationsResponse struct {
	TotalCount   int                   `json:"total_count"`
	Applications []ApplicationResponse `json:"applications"`
}

type BalanceResponse struct {
	LeaveType string `json:"leave_type"`
	Allocated string `json:"allocated"`
	Used      string `json:"used"`
	Remaining string `json:"remaining"`
}
