package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"stealthcompany.com/maternalhealth/internal/health"
)

// Handlers serves the report endpoints
type Handlers struct {
	service     ReportService
	modelLoaded func() bool
}

// NewHandlers creates the handlers. modelLoaded backs the /health report and may be nil.
func NewHandlers(service ReportService, modelLoaded func() bool) *Handlers {
	if modelLoaded == nil {
		modelLoaded = func() bool { return false }
	}
	return &Handlers{service: service, modelLoaded: modelLoaded}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

// statusFor maps the store error taxonomy onto HTTP
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, health.ErrNotFound):
		return http.StatusNotFound, "Not found"
	case errors.Is(err, health.ErrDataFormat):
		return http.StatusUnprocessableEntity, "Stored record has unexpected format"
	case errors.Is(err, health.ErrStore):
		return http.StatusBadGateway, "Document store unavailable"
	default:
		return http.StatusInternalServerError, "Internal error"
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := statusFor(err)
	event := log.Warn()
	if status >= http.StatusInternalServerError {
		event = log.Error()
	}
	event.Err(err).
		Str("path", r.URL.Path).
		Int("status", status).
		Str("request_id", RequestIDFromContext(r.Context())).
		Msg("Request failed")

	writeJSON(w, status, ErrorResponse{
		Error:     message,
		Message:   err.Error(),
		RequestID: RequestIDFromContext(r.Context()),
	})
}

// HealthHandler reports liveness and whether a risk model is loaded
func (h *Handlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:      "ok",
		ModelLoaded: h.modelLoaded(),
	})
}

// GetReportHandler builds the report from the stored record
func (h *Handlers) GetReportHandler(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	report, err := h.service.GetReport(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// GetHistoryHandler returns the stored record
func (h *Handlers) GetHistoryHandler(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	record, err := h.service.GetHistory(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// PutHistoryHandler saves new medical data and returns the report with the risk prediction
func (h *Handlers) PutHistoryHandler(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	var req HistoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn().
			Err(err).
			Str("user_id", userID).
			Msg("Failed to decode JSON request")
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:     "Invalid JSON format",
			RequestID: RequestIDFromContext(r.Context()),
		})
		return
	}

	if req.PersonalInformation == nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:     "Invalid request",
			Message:   "Field 'personalInformation' is required",
			RequestID: RequestIDFromContext(r.Context()),
		})
		return
	}

	report, err := h.service.SubmitHistory(r.Context(), userID, *req.PersonalInformation, req.PregnancyHistory)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}
