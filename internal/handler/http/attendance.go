package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/talenthub-id/ess-gateway-go/internal/domain/attendance"
	"github.com/talenthub-id/ess-gateway-go/internal/handler/http/response"
	"github.com/talenthub-id/ess-gateway-go/internal/pkg/dateutil"
)

type AttendanceHandler interface {
	GetCalendar(w http.ResponseWriter, r *http.Request)
	GetEligibility(w http.ResponseWriter, r *http.Request)
	SubmitEntry(w http.ResponseWriter, r *http.Request)
	GetQuota(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService}
}

func yearMonthParams(r *http.Request) (int, time.Month, bool) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil || year < 1900 || year > 2200 {
		return 0, 0, false
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil {
		return 0, 0, false
	}
	return year, time.Month(month), true
}

// GetCalendar implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetCalendar(w http.ResponseWriter, r *http.Request) {
	year, month, ok := yearMonthParams(r)
	if !ok {
		response.BadRequest(w, "Query parameters 'year' and 'month' are required", nil)
		return
	}

	resp, err := h.attendanceService.GetMonthCalendar(r.Context(), year, month)
	if err != nil {
		slog.Error("GetCalendar service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// GetEligibility implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetEligibility(w http.ResponseWriter, r *http.Request) {
	date, err := dateutil.Parse(r.URL.Query().Get("date"))
	if err != nil {
		response.BadRequest(w, "Query parameter 'date' must be a valid YYYY-MM-DD date", nil)
		return
	}

	resp, err := h.attendanceService.GetDayEligibility(r.Context(), date)
	if err != nil {
		slog.Error("GetEligibility service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// SubmitEntry implements AttendanceHandler.
func (h *attendanceHandlerImpl) SubmitEntry(w http.ResponseWriter, r *http.Request) {
	var req attendance.SubmitEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SubmitEntry decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.attendanceService.SubmitEntry(r.Context(), req)
	if err != nil {
		slog.Error("SubmitEntry service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Entry recorded", resp)
}

// GetQuota implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetQuota(w http.ResponseWriter, r *http.Request) {
	year, month, ok := yearMonthParams(r)
	if !ok {
		response.BadRequest(w, "Query parameters 'year' and 'month' are required", nil)
		return
	}

	resp, err := h.attendanceService.GetQuotaStatus(r.Context(), year, month)
	if err != nil {
		slog.Error("GetQuota service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}
