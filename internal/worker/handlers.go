package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bliinmaker/dating-bot/internal/repository"
	"github.com/bliinmaker/dating-bot/internal/tasks"
	"github.com/bliinmaker/dating-bot/internal/usecase/feed"
	"github.com/bliinmaker/dating-bot/internal/usecase/rating"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// Handlers implements the background task handlers. Per-item failures inside
// a task are logged and skipped; a returned error means the whole task should
// be retried.
type Handlers struct {
	ratingUseCase *rating.RatingUseCase
	feedUseCase   *feed.FeedUseCase
	matchRepo     repository.MatchRepository
	staleMatchAge time.Duration
	log           zerolog.Logger
}

func NewHandlers(
	ratingUseCase *rating.RatingUseCase,
	feedUseCase *feed.FeedUseCase,
	matchRepo repository.MatchRepository,
	staleMatchAge time.Duration,
	log zerolog.Logger,
) *Handlers {
	return &Handlers{
		ratingUseCase: ratingUseCase,
		feedUseCase:   feedUseCase,
		matchRepo:     matchRepo,
		staleMatchAge: staleMatchAge,
		log:           log,
	}
}

// HandleRatingSweep recomputes every profile's rating.
func (h *Handlers) HandleRatingSweep(ctx context.Context, t *asynq.Task) error {
	updated, total, err := h.ratingUseCase.SweepAll(ctx)
	if err != nil {
		return fmt.Errorf("rating sweep failed: %w", err)
	}
	h.log.Info().Int("updated", updated).Int("total", total).Msg("rating sweep task done")
	return nil
}

// HandleMatchArchive archives active matches older than the cutoff where a
// chat was never started.
func (h *Handlers) HandleMatchArchive(ctx context.Context, t *asynq.Task) error {
	cutoff := time.Now().Add(-h.staleMatchAge)
	archived, err := h.matchRepo.ArchiveStale(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("match archival failed: %w", err)
	}
	h.log.Info().Int("archived", archived).Time("cutoff", cutoff).Msg("stale matches archived")
	return nil
}

// HandleFeedPreload warms one user's candidate cache.
func (h *Handlers) HandleFeedPreload(ctx context.Context, t *asynq.Task) error {
	var payload tasks.FeedPreloadPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("invalid preload payload: %w", err)
	}

	count, err := h.feedUseCase.Preload(ctx, payload.UserID)
	if err != nil {
		return fmt.Errorf("feed preload for user %d failed: %w", payload.UserID, err)
	}
	h.log.Debug().Int("user_id", payload.UserID).Int("count", count).Msg("feed preloaded")
	return nil
}
