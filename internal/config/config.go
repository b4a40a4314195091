package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"stealthcompany.com/maternalhealth/internal/couchbase"
	"stealthcompany.com/maternalhealth/internal/risk"
)

// Config is the runtime configuration shared by the binaries
type Config struct {
	APIPort          string
	LogLevel         string
	ElasticsearchURL string
	LogIndex         string
	Couchbase        couchbase.Config
	Risk             risk.ModelConfig
	MetricsInterval  time.Duration
	ShutdownTimeout  time.Duration
}

// LoadDotEnv loads ../.env, falling back to .env. A missing file is not an error.
func LoadDotEnv() {
	err := godotenv.Load("../.env")
	if err != nil {
		log.Info().Msg("Not found .env file in parent directory, trying current directory")
		err = godotenv.Load(".env")
		if err != nil {
			log.Info().Msg("Not found .env file in current directory, assuming environment variables are set")
		}
	}
}

// Load reads the configuration from the environment
func Load() Config {
	return Config{
		APIPort:          getEnvOrDefault("API_PORT", "8080"),
		LogLevel:         getEnvOrDefault("API_LOG_LEVEL", "info"),
		ElasticsearchURL: os.Getenv("ELASTICSEARCH_URL"),
		LogIndex:         getEnvOrDefault("LOG_INDEX", "logs"),
		Couchbase: couchbase.Config{
			URL:      getEnvOrDefault("COUCHBASE_URL", "couchbase://localhost"),
			Username: os.Getenv("COUCHBASE_USERNAME"),
			Password: os.Getenv("COUCHBASE_PASSWORD"),
			Bucket:   getEnvOrDefault("COUCHBASE_BUCKET", "maternalhealth"),
			Scope:    getEnvOrDefault("COUCHBASE_SCOPE", "_default"),
		},
		Risk: risk.ModelConfig{
			ModelPath: os.Getenv("RISK_MODEL_PATH"),
			ModelURL:  os.Getenv("RISK_MODEL_URL"),
			Timeout:   getDurationOrDefault("RISK_MODEL_TIMEOUT", 5*time.Second),
		},
		MetricsInterval: getDurationOrDefault("SYSTEM_METRICS_INTERVAL", 15*time.Second),
		ShutdownTimeout: getDurationOrDefault("SHUTDOWN_TIMEOUT", 30*time.Second),
	}
}

// Helper function to get environment variable with default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDurationOrDefault accepts Go durations ("750ms") or whole seconds ("5")
func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	log.Warn().Str("key", key).Str("value", value).Msg("Invalid duration, using default")
	return defaultValue
}
