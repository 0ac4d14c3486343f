package main

import (
	"context"
	"os"
	"os/signal"
	"studyhall/config"
	"studyhall/di"
	"studyhall/helper"
	"studyhall/shared/logger"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
)

const closeTimeout = 10 * time.Second

func main() {
	logger.InitLogger()

	cfg := config.Get()

	logger.Configure(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := di.InitializeApp()

	runErr := app.Run(ctx)

	closeCtx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	app.Close(closeCtx)

	if runErr != nil {
		log.Error().Err(runErr).Msg("Application exited with error")
		os.Exit(1) //nolint:gocritic
	}
}
