package rating

import (
	"context"
	"errors"
	"testing"

	"github.com/bliinmaker/dating-bot/internal/domain"
	"github.com/bliinmaker/dating-bot/internal/repository"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProfileRepo struct {
	repository.ProfileRepository
	profiles map[int]*domain.Profile
	ids      []int
}

func (f *fakeProfileRepo) GetByID(_ context.Context, id int) (*domain.Profile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return p, nil
}

func (f *fakeProfileRepo) ListIDs(_ context.Context) ([]int, error) {
	return f.ids, nil
}

type fakeInteractionRepo struct {
	repository.InteractionRepository
	incoming map[int]int
	likes    map[int]int
}

func (f *fakeInteractionRepo) CountIncoming(_ context.Context, id int) (int, error) {
	return f.incoming[id], nil
}

func (f *fakeInteractionRepo) CountLikesReceived(_ context.Context, id int) (int, error) {
	return f.likes[id], nil
}

type fakeMatchRepo struct {
	repository.MatchRepository
	matches map[int]int
	chats   map[int]int
}

func (f *fakeMatchRepo) CountByProfile(_ context.Context, id int) (int, error) {
	return f.matches[id], nil
}

func (f *fakeMatchRepo) CountChatInitiated(_ context.Context, id int) (int, error) {
	return f.chats[id], nil
}

type fakeRatingRepo struct {
	upserts map[int]*domain.Rating
}

func (f *fakeRatingRepo) Upsert(_ context.Context, r *domain.Rating) error {
	f.upserts[r.ProfileID] = r
	return nil
}

func (f *fakeRatingRepo) GetByProfileID(_ context.Context, profileID int) (*domain.Rating, error) {
	r, ok := f.upserts[profileID]
	if !ok {
		return nil, domain.ErrRatingNotFound
	}
	return r, nil
}

type fakeDetailCache struct {
	deleted []int
}

func (f *fakeDetailCache) DeleteProfileDetail(_ context.Context, profileID int) {
	f.deleted = append(f.deleted, profileID)
}

func strptr(s string) *string { return &s }
func intptr(i int) *int       { return &i }

func fullProfile(id int) *domain.Profile {
	return &domain.Profile{
		ID:              id,
		Name:            "A",
		Age:             25,
		Gender:          domain.GenderFemale,
		Bio:             strptr("hi"),
		Location:        strptr("Berlin"),
		Interests:       []string{"go"},
		PreferredAgeMin: intptr(20),
		PreferredAgeMax: intptr(30),
		PreferredGender: strptr(domain.GenderMale),
		Completeness:    1.0,
		PhotoCount:      3,
	}
}

func newTestRating(profiles *fakeProfileRepo) (*RatingUseCase, *fakeRatingRepo, *fakeDetailCache) {
	interactions := &fakeInteractionRepo{incoming: map[int]int{}, likes: map[int]int{}}
	matches := &fakeMatchRepo{matches: map[int]int{}, chats: map[int]int{}}
	ratings := &fakeRatingRepo{upserts: make(map[int]*domain.Rating)}
	cache := &fakeDetailCache{}

	uc := NewRatingUseCase(profiles, interactions, matches, ratings, cache, DefaultWeights(), zerolog.Nop())
	return uc, ratings, cache
}

func TestRecompute(t *testing.T) {
	profiles := &fakeProfileRepo{profiles: map[int]*domain.Profile{1: fullProfile(1)}}
	uc, ratings, cache := newTestRating(profiles)

	r, err := uc.Recompute(context.Background(), 1)
	require.NoError(t, err)

	// Full profile with no interaction history: perfect primary, zero
	// behavioral.
	assert.InDelta(t, 100.0, r.Primary, 0.0001)
	assert.InDelta(t, 0.0, r.Behavioral, 0.0001)
	assert.InDelta(t, 40.0, r.Combined, 0.0001)

	assert.Contains(t, ratings.upserts, 1)
	assert.Contains(t, cache.deleted, 1)
}

func TestRecomputeUnknownProfile(t *testing.T) {
	profiles := &fakeProfileRepo{profiles: map[int]*domain.Profile{}}
	uc, _, _ := newTestRating(profiles)

	_, err := uc.Recompute(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestGetMissingRatingReadsAsZero(t *testing.T) {
	profiles := &fakeProfileRepo{profiles: map[int]*domain.Profile{}}
	uc, _, _ := newTestRating(profiles)

	r, err := uc.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 7, r.ProfileID)
	assert.Equal(t, 0.0, r.Combined)
}

func TestSweepAllContinuesOnFailure(t *testing.T) {
	// Profile 2 is listed but missing, so its recompute fails.
	profiles := &fakeProfileRepo{
		profiles: map[int]*domain.Profile{1: fullProfile(1), 3: fullProfile(3)},
		ids:      []int{1, 2, 3},
	}
	uc, ratings, _ := newTestRating(profiles)

	updated, total, err := uc.SweepAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, updated)
	assert.Equal(t, 3, total)
	assert.Contains(t, ratings.upserts, 1)
	assert.Contains(t, ratings.upserts, 3)
	assert.NotContains(t, ratings.upserts, 2)
}

func TestSweepAllListFailure(t *testing.T) {
	profiles := &failingListRepo{}
	interactions := &fakeInteractionRepo{incoming: map[int]int{}, likes: map[int]int{}}
	matches := &fakeMatchRepo{matches: map[int]int{}, chats: map[int]int{}}
	ratings := &fakeRatingRepo{upserts: make(map[int]*domain.Rating)}

	uc := NewRatingUseCase(profiles, interactions, matches, ratings, &fakeDetailCache{}, DefaultWeights(), zerolog.Nop())

	_, _, err := uc.SweepAll(context.Background())
	assert.Error(t, err)
}

type failingListRepo struct {
	repository.ProfileRepository
}

func (failingListRepo) ListIDs(_ context.Context) ([]int, error) {
	return nil, errors.New("db down")
}
