package risk

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
	"stealthcompany.com/maternalhealth/internal/health"
)

type predictRequest struct {
	Instances [][]float64 `json:"instances"`
}

type predictResponse struct {
	Predictions [][]float64 `json:"predictions"`
}

// RemoteScorer calls a model served over HTTP. Requests use the
// TensorFlow Serving predict shape: {"instances": [[...]]} answered by
// {"predictions": [[p_low, p_high]]}.
type RemoteScorer struct {
	endpoint   string
	httpClient *resty.Client
	breaker    *gobreaker.CircuitBreaker
}

// NewRemoteScorer creates a scorer posting to endpoint
func NewRemoteScorer(endpoint string, timeout time.Duration) *RemoteScorer {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "risk-model",
		MaxRequests: 1,
		Interval:    30 * time.Second,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Circuit breaker changed state")
		},
	})

	return &RemoteScorer{
		endpoint:   endpoint,
		httpClient: client,
		breaker:    breaker,
	}
}

// Score implements Scorer. Every failure, including an open breaker, is
// reported as health.ErrModelUnavailable.
func (s *RemoteScorer) Score(ctx context.Context, features []float64) ([]float64, error) {
	out, err := s.breaker.Execute(func() (interface{}, error) {
		var response predictResponse
		resp, err := s.httpClient.R().
			SetContext(ctx).
			SetBody(predictRequest{Instances: [][]float64{features}}).
			SetResult(&response).
			Post(s.endpoint)
		if err != nil {
			return nil, fmt.Errorf("failed to call inference server: %w", err)
		}
		if resp.IsError() {
			return nil, fmt.Errorf("inference server returned status %d", resp.StatusCode())
		}
		if len(response.Predictions) == 0 {
			return nil, fmt.Errorf("inference server returned no predictions")
		}
		return response.Predictions[0], nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", health.ErrModelUnavailable, err)
	}

	return out.([]float64), nil
}
