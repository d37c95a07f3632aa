package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/mydia/mydia/internal/api"
	"github.com/mydia/mydia/internal/config"
	"github.com/mydia/mydia/internal/indexer/cardigann"
	"github.com/mydia/mydia/internal/logger"
)

func main() {
	// A missing .env is fine; values come from the environment or config file.
	_ = godotenv.Load()

	configPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Path:   cfg.Logging.Path,
	})
	defer log.Close()

	log.Info().
		Str("logLevel", cfg.Logging.Level).
		Msg("starting mydia")

	loadDefinitions(cfg.Definitions.Dir, log.WithComponent("definitions"))

	server := api.NewServer(cfg, log.Logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start(cfg.Server.Address())
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	case err := <-errCh:
		if err != nil {
			log.Fatal().Err(err).Msg("server failed")
		}
		return
	}

	if err := server.Shutdown(context.Background()); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
}

// loadDefinitions validates every YAML definition in dir at startup. A bad
// definition only disables that indexer; startup continues.
func loadDefinitions(dir string, log *logger.Logger) {
	if dir == "" {
		return
	}

	matches, err := filepath.Glob(filepath.Join(dir, "*.yml"))
	if err != nil {
		log.Warn().Err(err).Str("dir", dir).Msg("failed to scan definitions directory")
		return
	}
	yamls, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err == nil {
		matches = append(matches, yamls...)
	}

	loaded := 0
	for _, path := range matches {
		def, err := cardigann.ParseDefinitionFile(path)
		if err != nil {
			log.Warn().
				Err(err).
				Str("file", filepath.Base(path)).
				Str("code", cardigann.ErrorCode(err)).
				Msg("skipping invalid indexer definition")
			continue
		}
		loaded++
		log.Debug().
			Str("id", def.ID).
			Str("privacy", def.GetPrivacy()).
			Msg("loaded indexer definition")
	}

	log.Info().
		Int("loaded", loaded).
		Int("skipped", len(matches)-loaded).
		Str("dir", dir).
		Msg("indexer definitions loaded")
}
