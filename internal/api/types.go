package api

import (
	"context"

	"stealthcompany.com/maternalhealth/internal/health"
)

// ReportService is the report and history use cases the API exposes.
// *history.Service satisfies it.
type ReportService interface {
	GetReport(ctx context.Context, userID string) (health.HealthReport, error)
	GetHistory(ctx context.Context, userID string) (health.MedicalHistory, error)
	SubmitHistory(ctx context.Context, userID string, personal health.PersonalInformation, pregnancy *health.PregnancyHistory) (health.HealthReport, error)
}

// HistoryRequest is the body of PUT /users/{userId}/history
type HistoryRequest struct {
	PersonalInformation *health.PersonalInformation `json:"personalInformation"`
	PregnancyHistory    *health.PregnancyHistory    `json:"pregnancyHistory"`
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"modelLoaded"`
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}
