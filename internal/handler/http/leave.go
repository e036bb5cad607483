package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/talenthub-id/ess-gateway-go/internal/domain/leave"
	"github.com/talenthub-id/ess-gateway-go/internal/handler/http/response"
)

type LeaveHandler interface {
	Apply(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	ListPendingApprovals(w http.ResponseWriter, r *http.Request)
	Decide(w http.ResponseWriter, r *http.Request)
	GetBalances(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &leaveHandlerImpl{leaveService: leaveService}
}

// Apply implements LeaveHandler.
func (h *leaveHandlerImpl) Apply(w http.ResponseWriter, r *http.Request) {
	var req leave.ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Apply decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.leaveService.Apply(r.Context(), req)
	if err != nil {
		slog.Error("Apply service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Application submitted", resp)
}

// ListMine implements LeaveHandler.
func (h *leaveHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	var kind *leave.Kind
	if raw := r.URL.Query().Get("kind"); raw != "" {
		k := leave.Kind(raw)
		kind = &k
	}

	resp, err := h.leaveService.ListMyApplications(r.Context(), kind)
	if err != nil {
		slog.Error("ListMine service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// Cancel implements LeaveHandler.
func (h *leaveHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	kind := leave.Kind(chi.URLParam(r, "kind"))
	id := chi.URLParam(r, "id")

	if err := h.leaveService.Cancel(r.Context(), kind, id); err != nil {
		slog.Error("Cancel service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Application cancelled", nil)
}

// ListPendingApprovals implements LeaveHandler.
func (h *leaveHandlerImpl) ListPendingApprovals(w http.ResponseWriter, r *http.Request) {
	resp, err := h.leaveService.ListPendingApprovals(r.Context())
	if err != nil {
		slog.Error("ListPendingApprovals service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// Decide implements LeaveHandler.
func (h *leaveHandlerImpl) Decide(w http.ResponseWriter, r *http.Request) {
	var req leave.DecideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Decide decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.Kind = chi.URLParam(r, "kind")
	req.ID = chi.URLParam(r, "id")

	if err := h.leaveService.Decide(r.Context(), req); err != nil {
		slog.Error("Decide service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Decision recorded", nil)
}

// GetBalances implements LeaveHandler.
func (h *leaveHandlerImpl) GetBalances(w http.ResponseWriter, r *http.Request) {
	resp, err := h.leaveService.GetBalances(r.Context())
	if err != nil {
		slog.Error("GetBalances service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}
