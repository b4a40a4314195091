package main

import (
	"context"
	"os"
	"runtime"

	"github.com/rs/zerolog/log"
	"stealthcompany.com/maternalhealth/internal/config"
	"stealthcompany.com/maternalhealth/internal/orchestrator"
	"stealthcompany.com/maternalhealth/pkg/zerolog_config"
)

// The orchestrator runs the optional import first, then keeps the API up
// until a shutdown signal arrives.
func main() {
	config.LoadDotEnv()
	cfg := config.Load()

	zerolog_config.SetAppPrefix("orchestrator")
	if err := zerolog_config.StartupWithEnv(cfg.ElasticsearchURL, cfg.LogIndex, cfg.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("Failed to configure logging")
	}

	log.Info().Msg("Starting maternal health orchestrator")

	binExt := ""
	if runtime.GOOS == "windows" {
		binExt = ".exe"
	}

	signals := orchestrator.NewSignalHandler()
	defer signals.Stop()
	ctx, cancel := signals.Context(context.Background())
	defer cancel()

	manager := orchestrator.NewServiceManager(".", binExt)

	if importFile := os.Getenv("IMPORT_FILE"); importFile != "" {
		if err := manager.RunToCompletion(ctx, "import", "-file", importFile); err != nil {
			log.Error().Err(err).Msg("Import failed, starting API with existing data")
		}
	}

	if err := manager.Start(ctx, "api"); err != nil {
		log.Fatal().Err(err).Msg("Failed to start API service")
	}

	if err := manager.Wait(ctx); err != nil {
		log.Error().Err(err).Msg("Services stopped with error")
	}

	log.Info().Msg("Orchestrator shutdown complete")
}
