package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/skybi/table-server/internal/api"
	"github.com/skybi/table-server/internal/config"
	"github.com/skybi/table-server/internal/stats"
	"github.com/skybi/table-server/internal/store"
)

func main() {
	// Set up zerolog to use pretty printing
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out: os.Stderr,
	})
	log.Info().Msg("starting up...")

	// Load the application configuration
	log.Info().Msg("loading configuration...")
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("could not load the configuration")
	}
	if cfg.IsEnvProduction() {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Debug().Str("config", fmt.Sprintf("%+v", cfg)).Msg("")

	// Create the table store
	log.Info().
		Int("key_width", cfg.MaxKeyLength).
		Int("value_width", cfg.MaxValueLength).
		Msg("creating the table store...")
	tableStore := store.New(cfg.InitialCapacity, cfg.MaxKeyLength, cfg.MaxValueLength)
	defer tableStore.Close()
	if err := tableStore.SetThresholds(cfg.ShrinkThreshold, cfg.GrowThreshold); err != nil {
		log.Fatal().Err(err).Msg("could not apply the configured resize thresholds")
	}

	// Schedule the task that periodically logs table statistics
	reporter := stats.NewReporter(tableStore.Stats, cfg.StatsInterval)
	reporter.Start()
	defer reporter.Stop(true)

	// Start up the debug API
	log.Info().Str("address", cfg.ListenAddress).Msg("starting up the debug API...")
	service := &api.Service{
		Config: cfg,
		Store:  tableStore,
	}
	apiErrs := make(chan error, 1)
	go func() {
		if err := service.Startup(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			apiErrs <- err
		}
	}()
	go func() {
		err := <-apiErrs
		log.Fatal().Err(err).Msg("the debug API raised an unexpected error")
	}()
	defer func() {
		log.Info().Msg("shutting down the debug API...")
		service.Shutdown()
	}()

	log.Info().Msg("done!")
	defer log.Info().Msg("shutting down...")

	// Wait for the application to be terminated
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt)
	<-shutdown
}
