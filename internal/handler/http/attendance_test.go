package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talenthub-id/ess-gateway-go/internal/domain/attendance"
	"github.com/talenthub-id/ess-gateway-go/internal/pkg/dateutil"
)

type stubAttendanceService struct {
	calendar    attendance.MonthCalendarResponse
	eligibility attendance.EligibilityResponse
	submit      attendance.SubmitEntryResponse
	quota       attendance.QuotaStatusResponse
	err         error
}

func (s *stubAttendanceService) GetMonthCalendar(_ context.Context, _ int, _ time.Month) (attendance.MonthCalendarResponse, error) {
	return s.calendar, s.err
}

func (s *stubAttendanceService) GetDayEligibility(_ context.Context, _ dateutil.Date) (attendance.EligibilityResponse, error) {
	return s.eligibility, s.err
}

func (s *stubAttendanceService) SubmitEntry(_ context.Context, _ attendance.SubmitEntryRequest) (attendance.SubmitEntryResponse, error) {
	return s.submit, s.err
}

func (s *stubAttendanceService) GetQuotaStatus(_ context.Context, _ int, _ time.Month) (attendance.QuotaStatusResponse, error) {
	return s.quota, s.err
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestAttendanceHandler_GetCalendar(t *testing.T) {
	handler := NewAttendanceHandler(&stubAttendanceService{
		calendar: attendance.MonthCalendarResponse{
			Grid:  attendance.MonthGrid{Year: 2025, Month: 6},
			Quota: attendance.QuotaStatusResponse{Used: 1, Max: 3},
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/attendance/calendar?year=2025&month=6", nil)
	rec := httptest.NewRecorder()
	handler.GetCalendar(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
}

func TestAttendanceHandler_GetCalendar_MissingParams(t *testing.T) {
	handler := NewAttendanceHandler(&stubAttendanceService{})

	for _, target := range []string{
		"/api/v1/attendance/calendar",
		"/api/v1/attendance/calendar?year=2025",
		"/api/v1/attendance/calendar?year=abc&month=6",
	} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		handler.GetCalendar(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestAttendanceHandler_GetEligibility(t *testing.T) {
	handler := NewAttendanceHandler(&stubAttendanceService{
		eligibility: attendance.EligibilityResponse{
			Date:             dateutil.New(2025, time.June, 12),
			Eligible:         true,
			AllowedDirection: attendance.DirectionOut,
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/attendance/eligibility?date=2025-06-12", nil)
	rec := httptest.NewRecorder()
	handler.GetEligibility(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/attendance/eligibility?date=12/06/2025", nil)
	rec = httptest.NewRecorder()
	handler.GetEligibility(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAttendanceHandler_SubmitEntry(t *testing.T) {
	handler := NewAttendanceHandler(&stubAttendanceService{
		submit: attendance.SubmitEntryResponse{
			Date:             dateutil.New(2025, time.June, 12),
			Direction:        attendance.DirectionOut,
			IsManualBackfill: true,
			Quota:            attendance.QuotaStatusResponse{Used: 1, Max: 3},
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/attendance/entries",
		strings.NewReader(`{"date":"2025-06-12","time":"18:00"}`))
	rec := httptest.NewRecorder()
	handler.SubmitEntry(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
}

func TestAttendanceHandler_SubmitEntry_RejectionsMapToStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"outside window", attendance.ErrOutsideEditWindow, http.StatusUnprocessableEntity},
		{"already complete", attendance.ErrDayAlreadyComplete, http.StatusConflict},
		{"needs coverage", attendance.ErrRequiresWFHOrOD, http.StatusUnprocessableEntity},
		{"quota exhausted", attendance.ErrMonthlyLimitReached, http.StatusUnprocessableEntity},
		{"quota check failed", attendance.ErrQuotaCheckFailed, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewAttendanceHandler(&stubAttendanceService{err: tt.err})
			req := httptest.NewRequest(http.MethodPost, "/api/v1/attendance/entries",
				strings.NewReader(`{"date":"2025-06-12","time":"18:00"}`))
			rec := httptest.NewRecorder()
			handler.SubmitEntry(rec, req)

			assert.Equal(t, tt.code, rec.Code)
			body := decodeBody(t, rec)
			assert.Equal(t, false, body["success"])
		})
	}
}

func TestAttendanceHandler_GetQuota(t *testing.T) {
	handler := NewAttendanceHandler(&stubAttendanceService{
		quota: attendance.QuotaStatusResponse{Used: 2, Max: 3},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/attendance/quota?year=2025&month=6", nil)
	rec := httptest.NewRecorder()
	handler.GetQuota(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(2), data["used"])
	assert.Equal(t, float64(3), data["max"])
}
