package stats

import (
	"context"
	"fmt"

	"github.com/bliinmaker/dating-bot/internal/repository"
)

// Overview is the platform-wide counters snapshot.
type Overview struct {
	Users        int `json:"users"`
	Profiles     int `json:"profiles"`
	Interactions int `json:"interactions"`
	Matches      int `json:"matches"`
}

type StatsUseCase struct {
	userRepo        repository.UserRepository
	profileRepo     repository.ProfileRepository
	interactionRepo repository.InteractionRepository
	matchRepo       repository.MatchRepository
}

func NewStatsUseCase(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	interactionRepo repository.InteractionRepository,
	matchRepo repository.MatchRepository,
) *StatsUseCase {
	return &StatsUseCase{
		userRepo:        userRepo,
		profileRepo:     profileRepo,
		interactionRepo: interactionRepo,
		matchRepo:       matchRepo,
	}
}

func (uc *StatsUseCase) Overview(ctx context.Context) (*Overview, error) {
	var o Overview
	var err error

	if o.Users, err = uc.userRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	if o.Profiles, err = uc.profileRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count profiles: %w", err)
	}
	if o.Interactions, err = uc.interactionRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count interactions: %w", err)
	}
	if o.Matches, err = uc.matchRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count matches: %w", err)
	}

	return &o, nil
}
