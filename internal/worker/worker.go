package worker

import (
	"fmt"

	"github.com/bliinmaker/dating-bot/internal/config"
	"github.com/bliinmaker/dating-bot/internal/tasks"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// Worker runs the asynq task server plus the cron scheduler for the periodic
// jobs. Both share the redis connection settings of the main application.
type Worker struct {
	srv       *asynq.Server
	scheduler *asynq.Scheduler
	mux       *asynq.ServeMux
	log       zerolog.Logger
}

func NewWorker(cfg *config.Config, handlers *Handlers, log zerolog.Logger) *Worker {
	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}

	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: cfg.Tasks.Concurrency,
	})

	scheduler := asynq.NewScheduler(redisOpt, nil)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeRatingSweep, handlers.HandleRatingSweep)
	mux.HandleFunc(tasks.TypeMatchArchive, handlers.HandleMatchArchive)
	mux.HandleFunc(tasks.TypeFeedPreload, handlers.HandleFeedPreload)

	w := &Worker{
		srv:       srv,
		scheduler: scheduler,
		mux:       mux,
		log:       log,
	}

	w.registerCron(cfg.Tasks)
	return w
}

func (w *Worker) registerCron(cfg config.TasksConfig) {
	if _, err := w.scheduler.Register(cfg.RatingSweepSpec, tasks.NewRatingSweepTask()); err != nil {
		w.log.Error().Err(err).Str("spec", cfg.RatingSweepSpec).Msg("failed to register rating sweep")
	}
	if _, err := w.scheduler.Register(cfg.MatchArchiveSpec, tasks.NewMatchArchiveTask()); err != nil {
		w.log.Error().Err(err).Str("spec", cfg.MatchArchiveSpec).Msg("failed to register match archival")
	}
}

// Start runs the scheduler and then blocks serving tasks.
func (w *Worker) Start() error {
	if err := w.scheduler.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}

	w.log.Info().Msg("worker started")
	if err := w.srv.Run(w.mux); err != nil {
		return fmt.Errorf("worker server failed: %w", err)
	}
	return nil
}

// Shutdown stops the scheduler and drains in-flight tasks.
func (w *Worker) Shutdown() {
	w.scheduler.Shutdown()
	w.srv.Shutdown()
	w.log.Info().Msg("worker stopped")
}
