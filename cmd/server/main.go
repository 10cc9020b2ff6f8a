package main

import (
	"fmt"
	"os"

	"github.com/thereayou/crocnet/internal/config"
	"github.com/thereayou/crocnet/internal/logger"
)

func main() {
	loaded := config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	if !loaded {
		log.Info().Msg(".env not found, using environment variables")
	}

	srv, err := NewServer(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("server init failed")
	}

	if err := srv.Run(); err != nil {
		log.Fatal().Err(err).Msg("server run error")
	}
}
