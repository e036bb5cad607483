package attendance

import (
	"github.com/talenthub-id/ess-gateway-go/internal/domain/leave"
	"github.com/talenthub-id/ess-gateway-go/internal/pkg/dateutil"
	"github.com/talenthub-id/ess-gateway-go/internal/pkg/validator"
)

// CellEmphasis ranks what a calendar cell should foreground: a resolved
// attendance signal outranks WFH/OD coverage, which outranks the bare
// "today" highlight.
type CellEmphasis string

const (
	EmphasisNone     CellEmphasis = "none"
	EmphasisToday    CellEmphasis = "today"
	EmphasisCoverage CellEmphasis = "coverage"
	EmphasisStatus   CellEmphasis = "status"
)

// DayCell is one non-padding cell of the month grid.
type DayCell struct {
	Day      int           `json:"day"`
	Date     dateutil.Date `json:"date"`
	Status   Status        `json:"status,omitempty"`
	IsWFH    bool          `json:"is_wfh,omitempty"`
	IsOD     bool          `json:"is_od,omitempty"`
	Badge    leave.Kind    `json:"badge,omitempty"`
	Emphasis CellEmphasis  `json:"emphasis"`

	PunchesIn      []string `json:"punches_in,omitempty"`
	PunchesOut     []string `json:"punches_out,omitempty"`
	HasManualPunch bool     `json:"has_manual_punch,omitempty"`
}

// MonthGrid is the week-major projection of a month. Rows always hold seven
// entries, Sunday first; leading and trailing pads are nil.
type MonthGrid struct {
	Year  int          `json:"year"`
	Month int          `json:"month"`
	Weeks [][]*DayCell `json:"weeks"`
}

type QuotaStatusResponse struct {
	Used int `json:"used"`
	Max  int `json:"max"`
}

type MonthCalendarResponse struct {
	Grid  MonthGrid           `json:"grid"`
	Quota QuotaStatusResponse `json:"quota"`
}

// EligibilityResponse mirrors the policy gate's outcome. Reason is empty for
// the silent outside-window rejection; AllowedDirection is set only when
// Eligible is true.
type EligibilityResponse struct {
	Date             dateutil.Date `json:"date"`
	Eligible         bool          `json:"eligible"`
	Reason           string        `json:"reason,omitempty"`
	AllowedDirection Direction     `json:"allowed_direction,omitempty"`
}

type SubmitEntryRequest struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

func (r *SubmitEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be a valid YYYY-MM-DD date",
		})
	}

	if !validator.IsValidClockTime(r.Time) {
		errs = append(errs, validator.ValidationError{
			Field:   "time",
			Message: "time must be a valid HH:MM wall-clock time",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SubmitEntryResponse struct {
	Date             dateutil.Date       `json:"date"`
	Direction        Direction           `json:"direction"`
	Timestamp        string              `json:"timestamp"`
	IsManualBackfill bool                `json:"is_manual_backfill"`
	Quota            QuotaStatusResponse `json:"quota"`
}
