package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bliinmaker/dating-bot/internal/config"
	"github.com/bliinmaker/dating-bot/internal/infrastructure/container"
	"github.com/bliinmaker/dating-bot/internal/infrastructure/logger"
	"github.com/bliinmaker/dating-bot/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)

	app, err := container.NewContainer(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize application")
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Error().Err(err).Msg("error closing application")
		}
	}()

	handlers := worker.NewHandlers(
		app.RatingUseCase,
		app.FeedUseCase,
		app.MatchRepo,
		cfg.Tasks.StaleMatchAge,
		log,
	)
	w := worker.NewWorker(cfg, handlers, log)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := w.Start(); err != nil {
			log.Error().Err(err).Msg("worker error")
			quit <- syscall.SIGTERM
		}
	}()

	<-quit
	w.Shutdown()
}
