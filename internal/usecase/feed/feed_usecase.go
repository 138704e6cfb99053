package feed

import (
	"context"
	"fmt"

	"github.com/bliinmaker/dating-bot/internal/repository"
	"github.com/rs/zerolog"
)

// CandidateCache is the per-user candidate list projection. The primary call
// path never reads through it: NextCandidates always queries storage and
// writes the result as a side channel, CachedCandidates serves consumers of
// the preload job. Explicit contract, chosen over mixing both behaviors.
type CandidateCache interface {
	SetCandidateList(ctx context.Context, userID int, candidates interface{})
	GetCandidateList(ctx context.Context, userID int, dest interface{}) bool
	DeleteCandidateList(ctx context.Context, userID int)
}

type FeedUseCase struct {
	profileRepo     repository.ProfileRepository
	interactionRepo repository.InteractionRepository
	cache           CandidateCache
	preloadCount    int
	log             zerolog.Logger
}

func NewFeedUseCase(
	profileRepo repository.ProfileRepository,
	interactionRepo repository.InteractionRepository,
	cache CandidateCache,
	preloadCount int,
	log zerolog.Logger,
) *FeedUseCase {
	return &FeedUseCase{
		profileRepo:     profileRepo,
		interactionRepo: interactionRepo,
		cache:           cache,
		preloadCount:    preloadCount,
		log:             log,
	}
}

// RatingSummary mirrors the three materialized scores in feed responses.
type RatingSummary struct {
	Primary    float64 `json:"primary"`
	Behavioral float64 `json:"behavioral"`
	Combined   float64 `json:"combined"`
}

// Candidate is the public projection of a profile in the feed.
type Candidate struct {
	ID         int           `json:"id"`
	Name       string        `json:"name"`
	Age        int           `json:"age"`
	Gender     string        `json:"gender"`
	Bio        *string       `json:"bio"`
	Location   *string       `json:"location"`
	Interests  []string      `json:"interests"`
	PhotoCount int           `json:"photo_count"`
	Rating     RatingSummary `json:"rating"`
}

// NextCandidates returns up to limit eligible candidates for a viewer,
// ordered by combined rating descending (ties broken by ascending profile
// id). Profiles the viewer already interacted with, and the viewer itself,
// are excluded; the viewer's preference filters apply only where set. The
// candidate's own preferences are not consulted — the filter is
// one-directional, matching the recorded product behavior.
func (uc *FeedUseCase) NextCandidates(ctx context.Context, userID, limit int) ([]*Candidate, error) {
	if limit <= 0 {
		limit = uc.preloadCount
	}

	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get viewer profile: %w", err)
	}

	interacted, err := uc.interactionRepo.InteractedProfileIDs(ctx, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get interacted profiles: %w", err)
	}

	filter := repository.CandidateFilter{
		AgeMin:     profile.PreferredAgeMin,
		AgeMax:     profile.PreferredAgeMax,
		Location:   profile.PreferredLocation,
		ExcludeIDs: append(interacted, profile.ID),
		Limit:      limit,
	}
	// "any" disables the gender filter just like an unset preference.
	if profile.PreferredGender != nil && *profile.PreferredGender != "any" {
		filter.Gender = profile.PreferredGender
	}

	ranked, err := uc.profileRepo.FindCandidates(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find candidates: %w", err)
	}

	candidates := make([]*Candidate, 0, len(ranked))
	for _, rp := range ranked {
		candidates = append(candidates, toCandidate(rp))
	}

	if len(candidates) > 0 {
		uc.cache.SetCandidateList(ctx, userID, candidates)
	}

	uc.log.Debug().Int("user_id", userID).Int("count", len(candidates)).Msg("candidates selected")
	return candidates, nil
}

// CachedCandidates returns the preloaded candidate batch, if any.
func (uc *FeedUseCase) CachedCandidates(ctx context.Context, userID int) ([]*Candidate, bool) {
	var candidates []*Candidate
	if !uc.cache.GetCandidateList(ctx, userID, &candidates) {
		return nil, false
	}
	return candidates, true
}

// Refresh drops the viewer's candidate cache; the next fetch rebuilds it.
// Called when the user (re-)enters browse mode or asks for a fresh feed.
func (uc *FeedUseCase) Refresh(ctx context.Context, userID int) {
	uc.cache.DeleteCandidateList(ctx, userID)
}

// Preload warms the candidate cache for a user with the configured batch
// size. Runs from the background worker, never on a request path.
func (uc *FeedUseCase) Preload(ctx context.Context, userID int) (int, error) {
	candidates, err := uc.NextCandidates(ctx, userID, uc.preloadCount)
	if err != nil {
		return 0, err
	}
	return len(candidates), nil
}

func toCandidate(rp *repository.RankedProfile) *Candidate {
	return &Candidate{
		ID:         rp.Profile.ID,
		Name:       rp.Profile.Name,
		Age:        rp.Profile.Age,
		Gender:     rp.Profile.Gender,
		Bio:        rp.Profile.Bio,
		Location:   rp.Profile.Location,
		Interests:  rp.Profile.Interests,
		PhotoCount: rp.Profile.PhotoCount,
		Rating: RatingSummary{
			Primary:    rp.Rating.Primary,
			Behavioral: rp.Rating.Behavioral,
			Combined:   rp.Rating.Combined,
		},
	}
}
