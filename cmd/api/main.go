package main

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"stealthcompany.com/maternalhealth/internal/api"
	"stealthcompany.com/maternalhealth/internal/config"
	"stealthcompany.com/maternalhealth/internal/couchbase"
	"stealthcompany.com/maternalhealth/internal/health"
	"stealthcompany.com/maternalhealth/internal/history"
	"stealthcompany.com/maternalhealth/internal/metrics"
	"stealthcompany.com/maternalhealth/internal/orchestrator"
	"stealthcompany.com/maternalhealth/internal/risk"
	"stealthcompany.com/maternalhealth/pkg/zerolog_config"
)

func main() {
	config.LoadDotEnv()
	cfg := config.Load()

	zerolog_config.SetAppPrefix("api")
	if err := zerolog_config.StartupWithEnv(cfg.ElasticsearchURL, cfg.LogIndex, cfg.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("Failed to configure logging")
	}

	log.Info().Msg("Starting maternal health API service")

	signals := orchestrator.NewSignalHandler()
	defer signals.Stop()
	ctx, cancel := signals.Context(context.Background())
	defer cancel()

	metrics.StartSystemMetrics(ctx, "api", cfg.MetricsInterval)

	dbClient, err := couchbase.NewClient(cfg.Couchbase)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Couchbase")
	}
	defer func() {
		log.Info().Msg("Closing database connection...")
		if err := dbClient.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close database connection")
		}
	}()

	classifier := risk.Bootstrap(cfg.Risk)
	service := history.NewService(history.NewStore(dbClient), classifier, health.NewAssembler())
	router := api.SetupRoutes(api.NewHandlers(service, classifier.Loaded))

	listener, err := net.Listen("tcp", ":"+cfg.APIPort)
	if err != nil {
		log.Fatal().Err(err).Str("port", cfg.APIPort).Msg("Failed to listen")
	}

	server := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if err := orchestrator.RunServer(ctx, server, listener, cfg.ShutdownTimeout); err != nil {
		log.Error().Err(err).Msg("Server stopped with error")
	}

	log.Info().Msg("API service shutdown complete")
}
