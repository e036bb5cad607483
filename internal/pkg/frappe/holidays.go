package frappe

import (
	"context"
	"fmt"
	"time"

	"github.com/talenthub-id/ess-gateway-go/internal/domain/holiday"
	"github.com/talenthub-id/ess-gateway-go/internal/pkg/dateutil"
)

func nowIn(loc *time.Location) time.Time {
	return time.Now().In(loc)
}

// Holidays implements holiday.HolidayRepository by resolving the employee's
// assigned holiday list and reading its child rows.
type Holidays struct {
	client *Client
}

func NewHolidays(client *Client) *Holidays {
	return &Holidays{client: client}
}

// FetchHolidays implements holiday.HolidayRepository.
func (h *Holidays) FetchHolidays(ctx context.Context, employeeID string, year int) ([]holiday.Holiday, error) {
	var employees []struct {
		HolidayList string `json:"holiday_list"`
	}
	err := h.client.getList(ctx, "Employee", listOptions{
		Filters:   [][]interface{}{{"name", "=", employeeID}},
		Fields:    []string{"holiday_list"},
		LimitPage: 1,
	}, &employees)
	if err != nil {
		return nil, fmt.Errorf("resolve holiday list: %w", err)
	}
	if len(employees) == 0 || employees[0].HolidayList == "" {
		return nil, nil
	}

	from := dateutil.New(year, time.January, 1)
	to := dateutil.New(year, time.December, 31)

	var docs []struct {
		HolidayDate string `json:"holiday_date"`
		Description string `json:"description"`
		WeeklyOff   int    `json:"weekly_off"`
	}
	err = h.client.getList(ctx, "Holiday", listOptions{
		Filters: [][]interface{}{
			{"parent", "=", employees[0].HolidayList},
			{"holiday_date", ">=", from.String()},
			{"holiday_date", "<=", to.String()},
		},
		Fields:  []string{"holiday_date", "description", "weekly_off"},
		OrderBy: "holiday_date asc",
		Parent:  "Holiday List",
	}, &docs)
	if err != nil {
		return nil, fmt.Errorf("fetch holidays: %w", err)
	}

	holidays := make([]holiday.Holiday, 0, len(docs))
	for _, doc := range docs {
		date, err := dateutil.Parse(doc.HolidayDate)
		if err != nil {
			return nil, fmt.Errorf("holiday row: %w", err)
		}
		holidays = append(holidays, holiday.Holiday{
			Date:        date,
			Description: doc.Description,
			IsWeeklyOff: doc.WeeklyOff == 1,
		})
	}
	return holidays, nil
}
