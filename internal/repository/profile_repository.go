package repository

import (
	"context"

	"github.com/bliinmaker/dating-bot/internal/domain"
)

// CandidateFilter describes the feed query: every filter field applies only
// when set, the exclusion list is always applied. Filtering is one-directional
// on purpose — only the viewer's preferences are consulted, not whether the
// candidate would accept the viewer back.
type CandidateFilter struct {
	Gender     *string
	AgeMin     *int
	AgeMax     *int
	Location   *string
	ExcludeIDs []int
	Limit      int
}

// RankedProfile pairs a candidate profile with its materialized rating.
type RankedProfile struct {
	Profile domain.Profile
	Rating  domain.Rating
}

type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	GetByID(ctx context.Context, id int) (*domain.Profile, error)
	GetByUserID(ctx context.Context, userID int) (*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
	IncrementPhotoCount(ctx context.Context, id int) error
	ListIDs(ctx context.Context) ([]int, error)
	// FindCandidates returns profiles matching the filter joined with their
	// ratings, ordered by combined rating descending with ascending profile
	// id as the tie-break.
	FindCandidates(ctx context.Context, filter CandidateFilter) ([]*RankedProfile, error)
	Count(ctx context.Context) (int, error)
}
