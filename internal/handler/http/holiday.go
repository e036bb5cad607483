package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/talenthub-id/ess-gateway-go/internal/domain/holiday"
	"github.com/talenthub-id/ess-gateway-go/internal/handler/http/response"
)

type HolidayHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

type holidayHandlerImpl struct {
	holidayService holiday.HolidayService
}

func NewHolidayHandler(holidayService holiday.HolidayService) HolidayHandler {
	return &holidayHandlerImpl{holidayService: holidayService}
}

// List implements HolidayHandler.
func (h *holidayHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		response.BadRequest(w, "Query parameter 'year' is required", nil)
		return
	}

	var month *time.Month
	if raw := r.URL.Query().Get("month"); raw != "" {
		m, err := strconv.Atoi(raw)
		if err != nil || m < 1 || m > 12 {
			response.BadRequest(w, "Query parameter 'month' must be between 1 and 12", nil)
			return
		}
		mm := time.Month(m)
		month = &mm
	}

	resp, err := h.holidayService.ListHolidays(r.Context(), year, month)
	if err != nil {
		slog.Error("List holidays service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}
