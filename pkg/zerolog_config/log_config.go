package zerolog_config

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.elastic.co/ecszerolog"
)

var appPrefix string
var setAppPrefixOnce *sync.Once = &sync.Once{}
var startupLoggerOnce *sync.Once = &sync.Once{}

// ElasticsearchWriter ships each ECS log line to an Elasticsearch index
type ElasticsearchWriter struct {
	URL    string
	client *resty.Client
}

// NewElasticsearchWriter creates a writer posting to <url>/<index>/_doc
func NewElasticsearchWriter(url, index string) *ElasticsearchWriter {
	return &ElasticsearchWriter{
		URL:    strings.TrimSuffix(url, "/") + "/" + index,
		client: resty.New().SetTimeout(5 * time.Second),
	}
}

func (ew *ElasticsearchWriter) Write(p []byte) (n int, err error) {
	// zerolog reuses p after Write returns
	body := make([]byte, len(p))
	copy(body, p)

	resp, err := ew.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(ew.URL + "/_doc")
	if err != nil {
		return 0, err
	}

	if resp.StatusCode() >= 400 {
		return 0, fmt.Errorf("elasticsearch returned %d", resp.StatusCode())
	}

	return len(p), nil
}

// ParseLevel maps a configured level name to a zerolog level, defaulting to info
func ParseLevel(level string) zerolog.Level {
	parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || parsed == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return parsed
}

func newLogger(console io.Writer, elasticsearchURL, index string) zerolog.Logger {
	consoleWriter := zerolog.ConsoleWriter{Out: console, TimeFormat: time.RFC3339}

	if elasticsearchURL == "" {
		return zerolog.New(consoleWriter).With().Str("app", appPrefix).
			Timestamp().Logger()
	}

	// ECS to Elasticsearch, pretty to console
	ecsLogger := ecszerolog.New(NewElasticsearchWriter(elasticsearchURL, index))
	multi := zerolog.MultiLevelWriter(ecsLogger, consoleWriter)

	return zerolog.New(multi).With().Str("app", appPrefix).
		Timestamp().Logger()
}

// SetAppPrefix sets the app prefix
func SetAppPrefix(name string) {
	setAppPrefixOnce.Do(func() {
		appPrefix = name
	})
}

// StartupWithEnv installs the global logger. Logs also go to the given
// Elasticsearch index when elasticsearchURL is set.
// Run SetAppPrefix before StartupWithEnv.
func StartupWithEnv(elasticsearchURL, index, level string) error {
	if index == "" {
		return fmt.Errorf("index is required")
	}
	startupLoggerOnce.Do(func() {
		zerolog.SetGlobalLevel(ParseLevel(level))
		log.Logger = newLogger(os.Stdout, elasticsearchURL, index)
	})
	return nil
}
