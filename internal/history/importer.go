package history

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"stealthcompany.com/maternalhealth/internal/health"
)

// ImportRecord is one entry of a bulk import file
type ImportRecord struct {
	UserID              string                      `json:"userId"`
	PersonalInformation *health.PersonalInformation `json:"personalInformation"`
	PregnancyHistory    *health.PregnancyHistory    `json:"pregnancyHistory,omitempty"`
}

// ImportSummary counts the outcome of an import
type ImportSummary struct {
	Imported int
	Skipped  int
	Failed   int
}

// DecodeImportFile reads a JSON array of import records
func DecodeImportFile(r io.Reader) ([]ImportRecord, error) {
	var records []ImportRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode import file: %w", err)
	}
	return records, nil
}

// Import submits every record through the write path, so each stored record
// carries a risk label when the model is available. Invalid records are
// skipped; a failed save does not stop the rest. A cancelled ctx stops the import.
func (s *Service) Import(ctx context.Context, records []ImportRecord) (ImportSummary, error) {
	var summary ImportSummary

	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		if rec.UserID == "" || rec.PersonalInformation == nil {
			log.Warn().
				Int("index", i).
				Str("user_id", rec.UserID).
				Msg("Skipping import record without user id or personal information")
			summary.Skipped++
			continue
		}

		if _, err := s.SubmitHistory(ctx, rec.UserID, *rec.PersonalInformation, rec.PregnancyHistory); err != nil {
			log.Error().
				Err(err).
				Str("user_id", rec.UserID).
				Msg("Failed to import record")
			summary.Failed++
			continue
		}
		summary.Imported++
	}

	log.Info().
		Int("imported", summary.Imported).
		Int("skipped", summary.Skipped).
		Int("failed", summary.Failed).
		Msg("Import finished")
	return summary, nil
}
