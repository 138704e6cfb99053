package rating

import (
	"context"
	"fmt"

	"github.com/bliinmaker/dating-bot/internal/domain"
	"github.com/bliinmaker/dating-bot/internal/repository"
	"github.com/rs/zerolog"
)

// DetailCache is the slice of the cache layer the rating service touches: a
// rating refresh makes the cached detail view stale.
type DetailCache interface {
	DeleteProfileDetail(ctx context.Context, profileID int)
}

// RatingUseCase keeps the materialized rating rows in step with the profile,
// interaction and match state they are derived from. Synchronous recomputes
// fire after profile edits, photo adds and match creation; the periodic sweep
// catches everything that drifted in between (likes received, chat starts).
type RatingUseCase struct {
	profileRepo     repository.ProfileRepository
	interactionRepo repository.InteractionRepository
	matchRepo       repository.MatchRepository
	ratingRepo      repository.RatingRepository
	cache           DetailCache
	weights         Weights
	log             zerolog.Logger
}

func NewRatingUseCase(
	profileRepo repository.ProfileRepository,
	interactionRepo repository.InteractionRepository,
	matchRepo repository.MatchRepository,
	ratingRepo repository.RatingRepository,
	cache DetailCache,
	weights Weights,
	log zerolog.Logger,
) *RatingUseCase {
	return &RatingUseCase{
		profileRepo:     profileRepo,
		interactionRepo: interactionRepo,
		matchRepo:       matchRepo,
		ratingRepo:      ratingRepo,
		cache:           cache,
		weights:         weights,
		log:             log,
	}
}

// Recompute recalculates all three scores for a profile and upserts the
// rating row. It joins an ambient transaction when the caller runs one.
func (uc *RatingUseCase) Recompute(ctx context.Context, profileID int) (*domain.Rating, error) {
	profile, err := uc.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile %d: %w", profileID, err)
	}

	stats, err := uc.collectStats(ctx, profileID)
	if err != nil {
		return nil, err
	}

	primary := PrimaryScore(profile.Completeness, profile.PhotoCount, profile.HasFullPreferences())
	behavioral := BehavioralScore(stats)

	rating := &domain.Rating{
		ProfileID:  profileID,
		Primary:    primary,
		Behavioral: behavioral,
		Combined:   CombinedScore(primary, behavioral, uc.weights),
	}

	if err := uc.ratingRepo.Upsert(ctx, rating); err != nil {
		return nil, fmt.Errorf("failed to upsert rating for profile %d: %w", profileID, err)
	}

	uc.cache.DeleteProfileDetail(ctx, profileID)

	uc.log.Debug().
		Int("profile_id", profileID).
		Float64("combined", rating.Combined).
		Msg("rating recomputed")

	return rating, nil
}

// Get returns a profile's rating; a missing row reads as all-zero scores.
func (uc *RatingUseCase) Get(ctx context.Context, profileID int) (*domain.Rating, error) {
	rating, err := uc.ratingRepo.GetByProfileID(ctx, profileID)
	if err != nil {
		if err == domain.ErrRatingNotFound {
			return &domain.Rating{ProfileID: profileID}, nil
		}
		return nil, err
	}
	return rating, nil
}

// SweepAll recomputes every profile's rating. One profile failing is logged
// and skipped, the sweep carries on. Returns updated and total counts.
func (uc *RatingUseCase) SweepAll(ctx context.Context) (int, int, error) {
	ids, err := uc.profileRepo.ListIDs(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to list profiles: %w", err)
	}

	updated := 0
	for _, id := range ids {
		if _, err := uc.Recompute(ctx, id); err != nil {
			uc.log.Error().Err(err).Int("profile_id", id).Msg("rating sweep: recompute failed")
			continue
		}
		updated++
	}

	uc.log.Info().Int("updated", updated).Int("total", len(ids)).Msg("rating sweep finished")
	return updated, len(ids), nil
}

func (uc *RatingUseCase) collectStats(ctx context.Context, profileID int) (BehaviorStats, error) {
	var stats BehaviorStats
	var err error

	if stats.TotalIncoming, err = uc.interactionRepo.CountIncoming(ctx, profileID); err != nil {
		return stats, fmt.Errorf("failed to count incoming interactions: %w", err)
	}
	if stats.LikesReceived, err = uc.interactionRepo.CountLikesReceived(ctx, profileID); err != nil {
		return stats, fmt.Errorf("failed to count likes received: %w", err)
	}
	if stats.Matches, err = uc.matchRepo.CountByProfile(ctx, profileID); err != nil {
		return stats, fmt.Errorf("failed to count matches: %w", err)
	}
	if stats.ChatsInitiated, err = uc.matchRepo.CountChatInitiated(ctx, profileID); err != nil {
		return stats, fmt.Errorf("failed to count initiated chats: %w", err)
	}

	return stats, nil
}
