package holiday

import "context"

// HolidayRepository retrieves the employee's holiday list from the backend.
type HolidayRepository interface {
	// FetchHolidays retrieves all holidays of the employee's assigned
	// holiday list for a calendar year.
	FetchHolidays(ctx context.Context, employeeID string, year int) ([]Holiday, error)
}
