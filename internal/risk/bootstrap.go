package risk

import (
	"time"

	"github.com/rs/zerolog/log"
)

// ModelConfig names the scoring backend to load. ModelPath wins when both are set.
type ModelConfig struct {
	ModelPath string
	ModelURL  string
	Timeout   time.Duration
}

// Bootstrap builds a classifier from cfg. A backend that fails to load is
// logged and leaves the classifier empty; it never fails startup.
func Bootstrap(cfg ModelConfig) *Classifier {
	c := NewClassifier(nil)

	switch {
	case cfg.ModelPath != "":
		err := c.Load(func() (Scorer, error) {
			return LoadLogisticModel(cfg.ModelPath)
		})
		if err != nil {
			log.Warn().
				Err(err).
				Str("model_path", cfg.ModelPath).
				Msg("Risk model not loaded, predictions disabled")
			return c
		}
		log.Info().Str("model_path", cfg.ModelPath).Msg("Risk model loaded")
	case cfg.ModelURL != "":
		// the remote backend is only reachable at prediction time; failures there degrade per request
		_ = c.Load(func() (Scorer, error) {
			return NewRemoteScorer(cfg.ModelURL, cfg.Timeout), nil
		})
		log.Info().Str("model_url", cfg.ModelURL).Msg("Remote risk model configured")
	default:
		log.Warn().Msg("No risk model configured, predictions disabled")
	}

	return c
}
