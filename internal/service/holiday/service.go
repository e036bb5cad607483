package holiday

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"github.com/talenthub-id/ess-gateway-go/internal/domain/holiday"
)

type holidayServiceImpl struct {
	repo holiday.HolidayRepository
}

func NewHolidayService(repo holiday.HolidayRepository) holiday.HolidayService {
	return &holidayServiceImpl{repo: repo}
}

func (s *holidayServiceImpl) ListHolidays(ctx context.Context, year int, month *time.Month) (holiday.ListHolidaysResponse, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return holiday.ListHolidaysResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}
	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return holiday.ListHolidaysResponse{}, fmt.Errorf("employee_id not found in token")
	}

	holidays, err := s.repo.FetchHolidays(ctx, employeeID, year)
	if err != nil {
		return holiday.ListHolidaysResponse{}, fmt.Errorf("failed to fetch holidays: %w", err)
	}

	resp := holiday.ListHolidaysResponse{Year: year}
	if month != nil {
		resp.Month = int(*month)
	}
	for _, h := range holidays {
		if month != nil && h.Date.Month != *month {
			continue
		}
		resp.Holidays = append(resp.Holidays, holiday.HolidayResponse{
			Date:        h.Date,
			Description: h.Description,
			IsWeeklyOff: h.IsWeeklyOff,
		})
	}
	return resp, nil
}
