package risk

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"

	"stealthcompany.com/maternalhealth/internal/health"
)

// LogisticModel is a pre-trained binary logistic model shipped as a JSON
// asset. Inputs are standardised with Mean and Scale before the weights apply.
// It is read-only once loaded and safe for concurrent use.
type LogisticModel struct {
	Name    string    `json:"name"`
	Mean    []float64 `json:"mean"`
	Scale   []float64 `json:"scale"`
	Weights []float64 `json:"weights"`
	Bias    float64   `json:"bias"`
}

// LoadLogisticModel reads a model asset from path
func LoadLogisticModel(path string) (*LogisticModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model asset %s: %w", path, err)
	}
	return ParseLogisticModel(data)
}

// ParseLogisticModel decodes and validates a model asset
func ParseLogisticModel(data []byte) (*LogisticModel, error) {
	var m LogisticModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse model asset: %w", err)
	}

	if len(m.Weights) != FeatureCount {
		return nil, fmt.Errorf("model has %d weights, want %d", len(m.Weights), FeatureCount)
	}
	if m.Mean == nil {
		m.Mean = make([]float64, FeatureCount)
	}
	if m.Scale == nil {
		m.Scale = make([]float64, FeatureCount)
		for i := range m.Scale {
			m.Scale[i] = 1
		}
	}
	if len(m.Mean) != FeatureCount || len(m.Scale) != FeatureCount {
		return nil, fmt.Errorf("model standardisation needs %d values", FeatureCount)
	}
	for i, s := range m.Scale {
		if s == 0 {
			return nil, fmt.Errorf("model scale %d is zero", i)
		}
	}

	return &m, nil
}

// Score implements Scorer
func (m *LogisticModel) Score(ctx context.Context, features []float64) ([]float64, error) {
	if len(features) != FeatureCount {
		return nil, fmt.Errorf("%w: got %d features, want %d", health.ErrModelUnavailable, len(features), FeatureCount)
	}

	z := m.Bias
	for i, x := range features {
		z += m.Weights[i] * (x - m.Mean[i]) / m.Scale[i]
	}
	p := 1 / (1 + math.Exp(-z))

	return []float64{1 - p, p}, nil
}
