package risk

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"stealthcompany.com/maternalhealth/internal/health"
)

func weightsJSON(n int, w float64) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("%g", w)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

func TestParseLogisticModel(t *testing.T) {
	tests := []struct {
		name    string
		asset   string
		wantErr bool
	}{
		{name: "valid without standardisation", asset: `{"weights":` + weightsJSON(14, 0) + `,"bias":0}`},
		{name: "valid with standardisation", asset: `{"weights":` + weightsJSON(14, 1) + `,"mean":` + weightsJSON(14, 0) + `,"scale":` + weightsJSON(14, 2) + `}`},
		{name: "not json", asset: `model.tflite`, wantErr: true},
		{name: "too few weights", asset: `{"weights":` + weightsJSON(13, 0) + `}`, wantErr: true},
		{name: "mismatched mean", asset: `{"weights":` + weightsJSON(14, 0) + `,"mean":[1,2]}`, wantErr: true},
		{name: "zero scale", asset: `{"weights":` + weightsJSON(14, 0) + `,"scale":` + weightsJSON(14, 0) + `}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseLogisticModel([]byte(tt.asset))
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, m)
				return
			}
			require.NoError(t, err)
			assert.Len(t, m.Mean, FeatureCount)
			assert.Len(t, m.Scale, FeatureCount)
		})
	}
}

func TestLogisticModel_Score(t *testing.T) {
	m, err := ParseLogisticModel([]byte(`{"weights":` + weightsJSON(14, 0) + `,"bias":0}`))
	require.NoError(t, err)

	probabilities, err := m.Score(context.Background(), make([]float64, FeatureCount))
	require.NoError(t, err)
	assert.InDelta(t, 0.5, probabilities[0], 1e-12)
	assert.InDelta(t, 0.5, probabilities[1], 1e-12)

	m.Bias = 2
	probabilities, err = m.Score(context.Background(), make([]float64, FeatureCount))
	require.NoError(t, err)
	assert.InDelta(t, 1/(1+math.Exp(-2)), probabilities[1], 1e-12)
	assert.InDelta(t, 1.0, probabilities[0]+probabilities[1], 1e-12)

	_, err = m.Score(context.Background(), []float64{1, 2, 3})
	assert.ErrorIs(t, err, health.ErrModelUnavailable)
}

func TestLoadLogisticModel_ShippedAsset(t *testing.T) {
	m, err := LoadLogisticModel(filepath.Join("..", "..", "assets", "maternal_risk_model.json"))
	require.NoError(t, err)

	c := NewClassifier(m)
	healthy := NewFeatureVector(health.PersonalInformation{
		Age: 27, LifestyleScore: 3, SystolicBloodPressure: 115, DiastolicBloodPressure: 75,
		Glucose: 7, BodyTemperature: 98.4, PulseRate: 74, HemoglobinLevel: 12, HbA1c: 5.5, RespirationRate: 16,
	}, &health.PregnancyHistory{NumberOfPregnancies: 1, NumberOfLiveBirths: 1})

	prediction, ok := c.Predict(context.Background(), healthy)
	assert.True(t, ok)
	assert.NotEmpty(t, prediction.RiskLevel)
}

func TestLoadLogisticModel_MissingFile(t *testing.T) {
	_, err := LoadLogisticModel(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestBootstrap(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "model.json")
	require.NoError(t, os.WriteFile(good, []byte(`{"weights":`+weightsJSON(14, 0)+`}`), 0o600))
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{}`), 0o600))

	assert.True(t, Bootstrap(ModelConfig{ModelPath: good}).Loaded())
	assert.False(t, Bootstrap(ModelConfig{ModelPath: bad}).Loaded())
	assert.False(t, Bootstrap(ModelConfig{}).Loaded())
	assert.True(t, Bootstrap(ModelConfig{ModelURL: "http://127.0.0.1:1/v1/models/risk:predict"}).Loaded())
}
