package history

import (
	"context"

	"github.com/rs/zerolog/log"
	"stealthcompany.com/maternalhealth/internal/health"
	"stealthcompany.com/maternalhealth/internal/metrics"
	"stealthcompany.com/maternalhealth/internal/risk"
)

// DefaultPatientName is shown when the user's name cannot be read
const DefaultPatientName = "Patient"

// Predictor produces an optional risk label. *risk.Classifier satisfies it.
type Predictor interface {
	Predict(ctx context.Context, fv risk.FeatureVector) (health.RiskPrediction, bool)
}

// Service builds health reports from stored records
type Service struct {
	store     *Store
	predictor Predictor
	assembler *health.Assembler
}

// NewService wires the read and write paths
func NewService(store *Store, predictor Predictor, assembler *health.Assembler) *Service {
	return &Service{
		store:     store,
		predictor: predictor,
		assembler: assembler,
	}
}

func (s *Service) displayName(ctx context.Context, userID string) string {
	name, err := s.store.FetchDisplayName(ctx, userID)
	if err != nil {
		log.Debug().Err(err).Str("user_id", userID).Msg("Display name unavailable, using default")
		return DefaultPatientName
	}
	return name
}

// GetHistory returns the stored record
func (s *Service) GetHistory(ctx context.Context, userID string) (health.MedicalHistory, error) {
	return s.store.FetchHistory(ctx, userID)
}

// GetReport builds a report from the stored record. No prediction is made
// on this path, so the overall status comes from the metrics alone.
func (s *Service) GetReport(ctx context.Context, userID string) (health.HealthReport, error) {
	record, err := s.store.FetchHistory(ctx, userID)
	if err != nil {
		return health.HealthReport{}, err
	}

	name := s.displayName(ctx, userID)
	report := s.assembler.Assemble(record.PersonalInformation, name, record.PregnancyHistory.Info(), nil)

	metrics.RecordReport("read", report.OverallStatus.Title)
	return report, nil
}

// SubmitHistory predicts risk for the entered data, saves it with the label
// when one was produced, and returns the report built with that prediction.
func (s *Service) SubmitHistory(ctx context.Context, userID string, personal health.PersonalInformation, pregnancy *health.PregnancyHistory) (health.HealthReport, error) {
	var prediction *health.RiskPrediction
	if s.predictor != nil {
		if p, ok := s.predictor.Predict(ctx, risk.NewFeatureVector(personal, pregnancy)); ok {
			prediction = &p
		}
	}

	riskLevel := ""
	if prediction != nil {
		riskLevel = prediction.RiskLevel
	}

	record, err := s.store.SaveHistory(ctx, userID, personal, pregnancy, riskLevel)
	if err != nil {
		return health.HealthReport{}, err
	}

	log.Info().
		Str("user_id", userID).
		Str("risk_level", riskLevel).
		Msg("Medical history saved")

	name := s.displayName(ctx, userID)
	report := s.assembler.Assemble(record.PersonalInformation, name, record.PregnancyHistory.Info(), prediction)

	metrics.RecordReport("write", report.OverallStatus.Title)
	return report, nil
}
