package risk

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"stealthcompany.com/maternalhealth/internal/health"
)

func TestRemoteScorer_Score(t *testing.T) {
	var received predictRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(predictResponse{Predictions: [][]float64{{0.2, 0.8}}})
	}))
	defer server.Close()

	scorer := NewRemoteScorer(server.URL+"/v1/models/risk:predict", 5*time.Second)
	fv := NewFeatureVector(health.PersonalInformation{Age: 33, SystolicBloodPressure: 150}, nil)

	probabilities, err := scorer.Score(context.Background(), fv.Slice())

	require.NoError(t, err)
	assert.Equal(t, []float64{0.2, 0.8}, probabilities)
	require.Len(t, received.Instances, 1)
	assert.Equal(t, fv.Slice(), received.Instances[0])

	prediction, ok := NewClassifier(scorer).Predict(context.Background(), fv)
	assert.True(t, ok)
	assert.Equal(t, health.RiskHigh, prediction.RiskLevel)
}

func TestRemoteScorer_ServerErrorIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	scorer := NewRemoteScorer(server.URL, 5*time.Second)

	_, err := scorer.Score(context.Background(), make([]float64, FeatureCount))

	assert.ErrorIs(t, err, health.ErrModelUnavailable)
}

func TestRemoteScorer_EmptyPredictionsIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"predictions":[]}`))
	}))
	defer server.Close()

	_, err := NewRemoteScorer(server.URL, 5*time.Second).Score(context.Background(), make([]float64, FeatureCount))

	assert.ErrorIs(t, err, health.ErrModelUnavailable)
}

func TestRemoteScorer_BreakerOpensAfterFailures(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	scorer := NewRemoteScorer(server.URL, 5*time.Second)
	for i := 0; i < 5; i++ {
		_, err := scorer.Score(context.Background(), make([]float64, FeatureCount))
		assert.ErrorIs(t, err, health.ErrModelUnavailable)
	}

	assert.Equal(t, int32(3), atomic.LoadInt32(&hits))
}
