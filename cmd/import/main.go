package main

import (
	"context"
	"flag"
	"os"

	"github.com/rs/zerolog/log"
	"stealthcompany.com/maternalhealth/internal/config"
	"stealthcompany.com/maternalhealth/internal/couchbase"
	"stealthcompany.com/maternalhealth/internal/health"
	"stealthcompany.com/maternalhealth/internal/history"
	"stealthcompany.com/maternalhealth/internal/orchestrator"
	"stealthcompany.com/maternalhealth/internal/risk"
	"stealthcompany.com/maternalhealth/pkg/zerolog_config"
)

func main() {
	config.LoadDotEnv()
	cfg := config.Load()

	file := flag.String("file", os.Getenv("IMPORT_FILE"), "JSON file with the medical history records to import")
	flag.Parse()

	zerolog_config.SetAppPrefix("import")
	if err := zerolog_config.StartupWithEnv(cfg.ElasticsearchURL, cfg.LogIndex, cfg.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("Failed to configure logging")
	}

	if *file == "" {
		log.Fatal().Msg("No import file given, set -file or IMPORT_FILE")
	}

	log.Info().Str("file", *file).Msg("Starting maternal health import")

	if code := run(cfg, *file); code != 0 {
		os.Exit(code)
	}
}

// run holds the import so deferred unlock and close happen before exit
func run(cfg config.Config, file string) int {
	signals := orchestrator.NewSignalHandler()
	defer signals.Stop()
	ctx, cancel := signals.Context(context.Background())
	defer cancel()

	f, err := os.Open(file)
	if err != nil {
		log.Error().Err(err).Str("file", file).Msg("Failed to open import file")
		return 1
	}
	defer f.Close()

	records, err := history.DecodeImportFile(f)
	if err != nil {
		log.Error().Err(err).Str("file", file).Msg("Failed to read import file")
		return 1
	}

	dbClient, err := couchbase.NewClient(cfg.Couchbase)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to Couchbase")
		return 1
	}
	defer dbClient.Close()

	locker := dbClient.GetLocker()
	log.Info().Msg("Locking database for import")
	if err := locker.Lock(ctx, "maternalhealth-import"); err != nil {
		log.Error().Err(err).Msg("Failed to lock database")
		return 1
	}
	defer func() {
		log.Info().Msg("Unlocking database after import")
		if err := locker.Unlock(context.Background()); err != nil {
			log.Error().Err(err).Msg("Failed to unlock database")
		}
	}()

	classifier := risk.Bootstrap(cfg.Risk)
	service := history.NewService(history.NewStore(dbClient), classifier, health.NewAssembler())

	summary, err := service.Import(ctx, records)
	if err != nil {
		log.Error().Err(err).Msg("Import interrupted")
		return 1
	}
	if summary.Failed > 0 {
		return 2
	}

	log.Info().Msg("Import completed successfully")
	return 0
}
