package frappe

import (
	"context"
	"fmt"

	"github.com/talenthub-id/ess-gateway-go/internal/domain/attendance"
	"github.com/talenthub-id/ess-gateway-go/internal/domain/leave"
	"github.com/talenthub-id/ess-gateway-go/internal/pkg/dateutil"
)

// Records implements attendance.RecordFetcher on top of the Frappe
// "Employee Checkin", "Attendance" and "Attendance Request" doctypes.
type Records struct {
	client *Client
}

func NewRecords(client *Client) *Records {
	return &Records{client: client}
}

type checkinDoc struct {
	Name        string `json:"name"`
	Employee    string `json:"employee"`
	Time        string `json:"time"`
	LogType     string `json:"log_type"`
	ManualEntry int    `json:"custom_manual_entry"`
}

// FetchPunches implements attendance.RecordFetcher.
func (r *Records) FetchPunches(ctx context.Context, employeeID string, from, to dateutil.Date) ([]attendance.Punch, error) {
	var docs []checkinDoc
	err := r.client.getList(ctx, "Employee Checkin", listOptions{
		Filters: [][]interface{}{
			{"employee", "=", employeeID},
			{"time", ">=", from.String() + " 00:00:00"},
			{"time", "<=", to.String() + " 23:59:59"},
		},
		Fields:  []string{"name", "employee", "time", "log_type", "custom_manual_entry"},
		OrderBy: "time asc",
	}, &docs)
	if err != nil {
		return nil, fmt.Errorf("fetch punches: %w", err)
	}

	punches := make([]attendance.Punch, 0, len(docs))
	for _, doc := range docs {
		ts, err := r.client.parseDatetime(doc.Time)
		if err != nil {
			return nil, fmt.Errorf("punch %s: %w", doc.Name, err)
		}
		punches = append(punches, attendance.Punch{
			ID:               doc.Name,
			EmployeeID:       doc.Employee,
			Timestamp:        ts,
			Direction:        attendance.Direction(doc.LogType),
			IsManualBackfill: doc.ManualEntry == 1,
		})
	}
	return punches, nil
}

type attendanceDoc struct {
	Employee       string `json:"employee"`
	AttendanceDate string `json:"attendance_date"`
	Status         string `json:"status"`
}

// FetchRecords implements attendance.RecordFetcher. Only docstatus-submitted
// records are authoritative.
func (r *Records) FetchRecords(ctx context.Context, employeeID string, from, to dateutil.Date) ([]attendance.Record, error) {
	var docs []attendanceDoc
	err := r.client.getList(ctx, "Attendance", listOptions{
		Filters: [][]interface{}{
			{"employee", "=", employeeID},
			{"attendance_date", ">=", from.String()},
			{"attendance_date", "<=", to.String()},
			{"docstatus", "=", 1},
		},
		Fields:  []string{"employee", "attendance_date", "status"},
		OrderBy: "attendance_date asc",
	}, &docs)
	if err != nil {
		return nil, fmt.Errorf("fetch attendance records: %w", err)
	}

	records := make([]attendance.Record, 0, len(docs))
	for _, doc := range docs {
		date, err := dateutil.Parse(doc.AttendanceDate)
		if err != nil {
			return nil, fmt.Errorf("attendance record for %s: %w", doc.Employee, err)
		}
		records = append(records, attendance.Record{
			EmployeeID: doc.Employee,
			Date:       date,
			Status:     attendance.NormalizeStatus(doc.Status),
		})
	}
	return records, nil
}

type attendanceRequestDoc struct {
	Name     string `json:"name"`
	Employee string `json:"employee"`
	FromDate string `json:"from_date"`
	ToDate   string `json:"to_date"`
	Reason   string `json:"reason"`
	Creation string `json:"creation"`
}

// attendanceRequestReason maps an application kind to the Attendance Request
// reason value used by the backend.
func attendanceRequestReason(kind leave.Kind) (string, bool) {
	switch kind {
	case leave.KindWFH:
		return "Work From Home", true
	case leave.KindOD:
		return "On Duty", true
	default:
		return "", false
	}
}

// FetchApprovedApplications implements attendance.RecordFetcher. Approved
// WFH/OD requests are submitted Attendance Request documents.
func (r *Records) FetchApprovedApplications(ctx context.Context, kind leave.Kind, employeeID string) ([]leave.Application, error) {
	reason, ok := attendanceRequestReason(kind)
	if !ok {
		return nil, fmt.Errorf("unsupported application kind %q", kind)
	}

	var docs []attendanceRequestDoc
	err := r.client.getList(ctx, "Attendance Request", listOptions{
		Filters: [][]interface{}{
			{"employee", "=", employeeID},
			{"reason", "=", reason},
			{"docstatus", "=", 1},
		},
		Fields:  []string{"name", "employee", "from_date", "to_date", "reason", "creation"},
		OrderBy: "creation asc",
	}, &docs)
	if err != nil {
		return nil, fmt.Errorf("fetch %s applications: %w", kind, err)
	}

	apps := make([]leave.Application, 0, len(docs))
	for _, doc := range docs {
		start, err := dateutil.Parse(doc.FromDate)
		if err != nil {
			return nil, fmt.Errorf("application %s: %w", doc.Name, err)
		}
		end, err := dateutil.Parse(doc.ToDate)
		if err != nil {
			return nil, fmt.Errorf("application %s: %w", doc.Name, err)
		}
		created, err := r.client.parseDatetime(doc.Creation)
		if err != nil {
			return nil, fmt.Errorf("application %s: %w", doc.Name, err)
		}
		apps = append(apps, leave.Application{
			ID:         doc.Name,
			EmployeeID: doc.Employee,
			Kind:       kind,
			StartDate:  start,
			EndDate:    end,
			Status:     leave.ApprovalStatusApproved,
			Reason:     doc.Reason,
			CreatedAt:  created,
		})
	}
	return apps, nil
}

// SubmitPunch implements attendance.RecordFetcher.
func (r *Records) SubmitPunch(ctx context.Context, punch attendance.Punch) (attendance.Punch, error) {
	manual := 0
	if punch.IsManualBackfill {
		manual = 1
	}
	var created checkinDoc
	err := r.client.insert(ctx, "Employee Checkin", map[string]interface{}{
		"employee":            punch.EmployeeID,
		"time":                r.client.formatDatetime(punch.Timestamp),
		"log_type":            string(punch.Direction),
		"custom_manual_entry": manual,
	}, &created)
	if err != nil {
		return attendance.Punch{}, fmt.Errorf("submit punch: %w", err)
	}
	punch.ID = created.Name
	return punch, nil
}

// DayHasManualPunch implements attendance.RecordFetcher.
func (r *Records) DayHasManualPunch(ctx context.Context, employeeID string, date dateutil.Date) (bool, error) {
	var docs []struct {
		Name string `json:"name"`
	}
	err := r.client.getList(ctx, "Employee Checkin", listOptions{
		Filters: [][]interface{}{
			{"employee", "=", employeeID},
			{"custom_manual_entry", "=", 1},
			{"time", ">=", date.String() + " 00:00:00"},
			{"time", "<=", date.String() + " 23:59:59"},
		},
		Fields:    []string{"name"},
		LimitPage: 1,
	}, &docs)
	if err != nil {
		return false, fmt.Errorf("check manual punch on %s: %w", date, err)
	}
	return len(docs) > 0, nil
}
