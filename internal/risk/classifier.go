package risk

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/rs/zerolog/log"
	"stealthcompany.com/maternalhealth/internal/health"
	"stealthcompany.com/maternalhealth/internal/metrics"
)

// Probability thresholds on the high-risk class
const (
	highRiskThreshold     = 0.7
	moderateRiskThreshold = 0.4
)

// Scorer runs the trained model. It returns the two class probabilities
// [low risk, high risk] for a feature vector.
type Scorer interface {
	Score(ctx context.Context, features []float64) ([]float64, error)
}

// Classifier turns model output into a risk label. It holds either a loaded
// scorer or nothing; with nothing loaded every prediction is unavailable.
type Classifier struct {
	mu     sync.RWMutex
	scorer Scorer
}

// NewClassifier returns a classifier around scorer. scorer may be nil.
func NewClassifier(scorer Scorer) *Classifier {
	return &Classifier{scorer: scorer}
}

// Load installs the scorer produced by load unless one is already present.
// Concurrent calls may each run load; the first to finish wins.
func (c *Classifier) Load(load func() (Scorer, error)) error {
	if c.Loaded() {
		return nil
	}

	scorer, err := load()
	if err != nil {
		return fmt.Errorf("failed to load risk model: %w", err)
	}
	if scorer == nil {
		return fmt.Errorf("failed to load risk model: %w", health.ErrModelUnavailable)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.scorer == nil {
		c.scorer = scorer
	}
	return nil
}

// Loaded reports whether a scorer is installed
func (c *Classifier) Loaded() bool {
	if c == nil {
		return false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.scorer != nil
}

// Predict scores fv and labels the result. The boolean is false when no
// prediction could be made; callers fall back to metric-based status.
func (c *Classifier) Predict(ctx context.Context, fv FeatureVector) (health.RiskPrediction, bool) {
	if !c.Loaded() {
		metrics.RecordPrediction("unavailable")
		return health.RiskPrediction{}, false
	}

	c.mu.RLock()
	scorer := c.scorer
	c.mu.RUnlock()

	probabilities, err := score(ctx, scorer, fv)
	if err != nil {
		log.Warn().
			Err(err).
			Msg("Risk prediction unavailable")
		metrics.RecordPrediction("unavailable")
		return health.RiskPrediction{}, false
	}

	prediction := health.RiskPrediction{RiskLevel: LabelFor(probabilities[1])}
	log.Debug().
		Float64("p_high", probabilities[1]).
		Str("risk_level", prediction.RiskLevel).
		Msg("Risk prediction made")
	metrics.RecordPrediction(prediction.RiskLevel)
	return prediction, true
}

// score invokes the scorer and validates its output. A panic inside the
// scorer is reported as an error.
func score(ctx context.Context, scorer Scorer, fv FeatureVector) (probabilities []float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			probabilities = nil
			err = fmt.Errorf("%w: scorer panicked: %v", health.ErrModelUnavailable, r)
		}
	}()

	probabilities, err = scorer.Score(ctx, fv.Slice())
	if err != nil {
		return nil, err
	}
	if len(probabilities) != 2 {
		return nil, fmt.Errorf("%w: expected 2 probabilities, got %d", health.ErrModelUnavailable, len(probabilities))
	}
	for _, p := range probabilities {
		if math.IsNaN(p) || p < 0 || p > 1 {
			return nil, fmt.Errorf("%w: probability out of range: %v", health.ErrModelUnavailable, probabilities)
		}
	}
	return probabilities, nil
}

// LabelFor maps the high-risk probability to a label. Thresholds are exclusive.
func LabelFor(pHigh float64) string {
	switch {
	case pHigh > highRiskThreshold:
		return health.RiskHigh
	case pHigh > moderateRiskThreshold:
		return health.RiskModerate
	default:
		return health.RiskLow
	}
}
