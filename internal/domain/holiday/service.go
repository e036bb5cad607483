package holiday

import (
	"context"
	"time"

	"github.com/talenthub-id/ess-gateway-go/internal/pkg/dateutil"
)

type HolidayResponse struct {
	Date        dateutil.Date `json:"date"`
	Description string        `json:"description"`
	IsWeeklyOff bool          `json:"is_weekly_off"`
}

type ListHolidaysResponse struct {
	Year     int               `json:"year"`
	Month    int               `json:"month,omitempty"`
	Holidays []HolidayResponse `json:"holidays"`
}

// HolidayService exposes the holiday calendar to the transport layer.
type HolidayService interface {
	// ListHolidays retrieves a year's holidays, optionally narrowed to one
	// month.
	ListHolidays(ctx context.Context, year int, month *time.Month) (ListHolidaysResponse, error)
}
