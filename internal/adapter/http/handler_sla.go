package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/slatrack/slatrack/internal/domain"
	"github.com/slatrack/slatrack/internal/ports"
	"github.com/slatrack/slatrack/internal/usecase"
	"github.com/slatrack/slatrack/pkg/apperror"
)

const (
	recalculationLockKey = "recalculation"
	recalculationLockTTL = 2 * time.Hour

	// MaxDateRangeDays bounds how much history one run may cover
	MaxDateRangeDays = 365

	dateLayout = "2006-01-02"
)

// RecalculationService is the slice of the recalculation use case the
// handler needs
type RecalculationService interface {
	Recalculate(ctx context.Context, req usecase.RecalculationRequest) (*usecase.RecalculationResult, error)
}

// SLAService is the slice of the SLA use case the handler needs
type SLAService interface {
	RecalculateChat(ctx context.Context, chatID string) (*domain.SLAMetrics, error)
	GetChatMetrics(ctx context.Context, chatID string) (*domain.SLAMetrics, error)
}

// SLAHandler handles HTTP requests for SLA metrics and recalculation
type SLAHandler struct {
	recalcService RecalculationService
	slaService    SLAService
	runLock       ports.RunLocker
}

// NewSLAHandler creates a new SLA handler
func NewSLAHandler(recalcService RecalculationService, slaService SLAService, runLock ports.RunLocker) *SLAHandler {
	return &SLAHandler{
		recalcService: recalcService,
		slaService:    slaService,
		runLock:       runLock,
	}
}

// RegisterRoutes registers SLA routes
func (h *SLAHandler) RegisterRoutes(router *mux.Router, auth *AuthMiddleware) {
	router.HandleFunc("/api/v1/sla/recalculate", auth.RequireAuth(h.Recalculate)).Methods("POST")
	router.HandleFunc("/api/v1/chats/{id}/sla", h.GetChatMetrics).Methods("GET")
	router.HandleFunc("/api/v1/chats/{id}/sla/recalculate", auth.RequireAuth(h.RecalculateChat)).Methods("POST")
}

// RecalculateRequest is the trigger payload: either a single chat ID or a
// date range over chat open time
type RecalculateRequest struct {
	ChatID    string `json:"chat_id,omitempty"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
	BatchSize int    `json:"batch_size,omitempty"`
}

// Recalculate validates the trigger payload and runs a bulk recalculation.
// Runs are serialized through the run lock: a second trigger while one is
// active gets 409.
func (h *SLAHandler) Recalculate(w http.ResponseWriter, r *http.Request) {
	var req RecalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.NewBadRequest("Invalid request body"))
		return
	}

	ucReq, appErr := buildRecalculationRequest(req, time.Now().UTC())
	if appErr != nil {
		writeError(w, appErr)
		return
	}

	acquired, err := h.runLock.Acquire(r.Context(), recalculationLockKey, recalculationLockTTL)
	if err != nil {
		writeError(w, apperror.NewInternalServer("Failed to acquire run lock"))
		return
	}
	if !acquired {
		writeError(w, apperror.NewConflict("A recalculation run is already in progress"))
		return
	}
	defer h.runLock.Release(r.Context(), recalculationLockKey)

	result, err := h.recalcService.Recalculate(r.Context(), *ucReq)
	if err != nil {
		// Partial counts are surfaced even when the run aborted early
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"error":  apperror.NewInternalServer(err.Error()),
			"result": result,
		})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// RecalculateChat recomputes and returns the metrics for one chat
func (h *SLAHandler) RecalculateChat(w http.ResponseWriter, r *http.Request) {
	chatID := mux.Vars(r)["id"]
	if chatID == "" {
		writeError(w, apperror.NewBadRequest("Chat ID is required"))
		return
	}

	metrics, err := h.slaService.RecalculateChat(r.Context(), chatID)
	if err != nil {
		if errors.Is(err, domain.ErrChatNotFound) {
			writeError(w, apperror.NewNotFound("Chat not found"))
			return
		}
		writeError(w, apperror.NewInternalServer(err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, metrics)
}

// GetChatMetrics returns the stored metrics for one chat
func (h *SLAHandler) GetChatMetrics(w http.ResponseWriter, r *http.Request) {
	chatID := mux.Vars(r)["id"]
	if chatID == "" {
		writeError(w, apperror.NewBadRequest("Chat ID is required"))
		return
	}

	metrics, err := h.slaService.GetChatMetrics(r.Context(), chatID)
	if err != nil {
		if errors.Is(err, domain.ErrChatNotFound) {
			writeError(w, apperror.NewNotFound("No metrics stored for chat"))
			return
		}
		writeError(w, apperror.NewInternalServer(err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, metrics)
}

// buildRecalculationRequest validates the payload before the driver ever
// sees it: exactly one of chat_id or a date range, the range capped at
// MaxDateRangeDays with the end not in the future, and a batch size inside
// [1, MaxBatchSize]
func buildRecalculationRequest(req RecalculateRequest, now time.Time) (*usecase.RecalculationRequest, *apperror.AppError) {
	hasChat := req.ChatID != ""
	hasRange := req.StartDate != "" || req.EndDate != ""

	if hasChat == hasRange {
		return nil, apperror.NewBadRequest("Provide either chat_id or a start_date/end_date range")
	}

	if req.BatchSize < 0 || req.BatchSize > usecase.MaxBatchSize {
		return nil, apperror.NewBadRequest("batch_size must be between 1 and 2000")
	}

	ucReq := usecase.RecalculationRequest{BatchSize: req.BatchSize}

	if hasChat {
		ucReq.Filter.ChatID = &req.ChatID
		return &ucReq, nil
	}

	if req.StartDate == "" || req.EndDate == "" {
		return nil, apperror.NewBadRequest("Both start_date and end_date are required")
	}

	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return nil, apperror.NewBadRequest("start_date must use YYYY-MM-DD")
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return nil, apperror.NewBadRequest("end_date must use YYYY-MM-DD")
	}

	if end.Before(start) {
		return nil, apperror.NewBadRequest("end_date must not be before start_date")
	}
	if end.Sub(start) > MaxDateRangeDays*24*time.Hour {
		return nil, apperror.NewBadRequest("Date range must not exceed 365 days")
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if end.After(today) {
		return nil, apperror.NewBadRequest("end_date must not be in the future")
	}

	// End of day, inclusive
	endOfDay := end.Add(24*time.Hour - time.Second)
	ucReq.Filter.StartDate = &start
	ucReq.Filter.EndDate = &endOfDay

	return &ucReq, nil
}
