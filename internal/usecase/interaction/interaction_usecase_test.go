package interaction

import (
	"context"
	"testing"
	"time"

	"github.com/bliinmaker/dating-bot/internal/domain"
	"github.com/bliinmaker/dating-bot/internal/repository"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTxManager struct{}

func (fakeTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeProfileRepo struct {
	repository.ProfileRepository
	profiles map[int]*domain.Profile
}

func (f *fakeProfileRepo) GetByID(_ context.Context, id int) (*domain.Profile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return p, nil
}

type fakeInteractionRepo struct {
	repository.InteractionRepository
	records []*domain.Interaction
}

func (f *fakeInteractionRepo) Create(_ context.Context, i *domain.Interaction) error {
	i.ID = len(f.records) + 1
	f.records = append(f.records, i)
	return nil
}

func (f *fakeInteractionRepo) HasLike(_ context.Context, from, to int) (bool, error) {
	for _, r := range f.records {
		if r.FromProfileID == from && r.ToProfileID == to && r.Type == domain.InteractionLike {
			return true, nil
		}
	}
	return false, nil
}

type fakeMatchRepo struct {
	repository.MatchRepository
	matches []*domain.Match
}

func (f *fakeMatchRepo) Create(_ context.Context, m *domain.Match) error {
	m.Profile1ID, m.Profile2ID = domain.NormalizePair(m.Profile1ID, m.Profile2ID)
	m.ID = len(f.matches) + 1
	m.CreatedAt = time.Now()
	f.matches = append(f.matches, m)
	return nil
}

func (f *fakeMatchRepo) GetActiveByProfiles(_ context.Context, a, b int) (*domain.Match, error) {
	p1, p2 := domain.NormalizePair(a, b)
	for _, m := range f.matches {
		if m.Profile1ID == p1 && m.Profile2ID == p2 && m.Status == domain.MatchStatusActive {
			return m, nil
		}
	}
	return nil, domain.ErrMatchNotFound
}

func (f *fakeMatchRepo) GetActiveMatches(_ context.Context, profileID int) ([]*domain.Match, error) {
	var out []*domain.Match
	for _, m := range f.matches {
		if m.HasProfile(profileID) && m.Status == domain.MatchStatusActive {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMatchRepo) MarkChatInitiated(_ context.Context, id int) error {
	for _, m := range f.matches {
		if m.ID == id {
			m.ChatInitiated = true
			return nil
		}
	}
	return domain.ErrMatchNotFound
}

type fakeMessageRepo struct {
	last map[int]*domain.Message
}

func (f *fakeMessageRepo) GetLastByMatch(_ context.Context, matchID int) (*domain.Message, error) {
	return f.last[matchID], nil
}

type fakeUserRepo struct {
	repository.UserRepository
	touched []int
}

func (f *fakeUserRepo) TouchLastActive(_ context.Context, id int) error {
	f.touched = append(f.touched, id)
	return nil
}

type fakeRecomputer struct {
	recomputed []int
}

func (f *fakeRecomputer) Recompute(_ context.Context, profileID int) (*domain.Rating, error) {
	f.recomputed = append(f.recomputed, profileID)
	return &domain.Rating{ProfileID: profileID}, nil
}

type fakeCache struct {
	deleted []int
}

func (f *fakeCache) DeleteCandidateList(_ context.Context, userID int) {
	f.deleted = append(f.deleted, userID)
}

type fixture struct {
	uc           *InteractionUseCase
	interactions *fakeInteractionRepo
	matches      *fakeMatchRepo
	messages     *fakeMessageRepo
	users        *fakeUserRepo
	recomputer   *fakeRecomputer
	cache        *fakeCache
}

func newFixture() *fixture {
	profiles := &fakeProfileRepo{profiles: map[int]*domain.Profile{
		1: {ID: 1, UserID: 101, Name: "Alice", Age: 25, Gender: domain.GenderFemale},
		2: {ID: 2, UserID: 102, Name: "Bob", Age: 27, Gender: domain.GenderMale},
		3: {ID: 3, UserID: 103, Name: "Carol", Age: 24, Gender: domain.GenderFemale},
	}}
	interactions := &fakeInteractionRepo{}
	matches := &fakeMatchRepo{}
	messages := &fakeMessageRepo{last: map[int]*domain.Message{}}
	users := &fakeUserRepo{}
	recomputer := &fakeRecomputer{}
	cache := &fakeCache{}

	uc := NewInteractionUseCase(
		fakeTxManager{},
		profiles,
		interactions,
		matches,
		messages,
		users,
		recomputer,
		cache,
		zerolog.Nop(),
	)

	return &fixture{
		uc:           uc,
		interactions: interactions,
		matches:      matches,
		messages:     messages,
		users:        users,
		recomputer:   recomputer,
		cache:        cache,
	}
}

func TestLikeWithoutReciprocal(t *testing.T) {
	f := newFixture()

	result, err := f.uc.Like(context.Background(), 1, 2)
	require.NoError(t, err)

	assert.False(t, result.IsMatch)
	assert.Nil(t, result.MatchID)
	assert.Len(t, f.interactions.records, 1)
	assert.Empty(t, f.matches.matches)
	assert.Empty(t, f.recomputer.recomputed)
	assert.Equal(t, []int{101}, f.users.touched)
}

func TestMutualLikeCreatesMatch(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Like(context.Background(), 2, 1)
	require.NoError(t, err)

	result, err := f.uc.Like(context.Background(), 1, 2)
	require.NoError(t, err)

	assert.True(t, result.IsMatch)
	require.NotNil(t, result.MatchID)

	require.Len(t, f.matches.matches, 1)
	match := f.matches.matches[0]
	assert.Equal(t, 1, match.Profile1ID)
	assert.Equal(t, 2, match.Profile2ID)
	assert.Equal(t, domain.MatchStatusActive, match.Status)
	assert.False(t, match.ChatInitiated)

	assert.ElementsMatch(t, []int{1, 2}, f.recomputer.recomputed)
	assert.ElementsMatch(t, []int{101, 102}, f.cache.deleted)
}

func TestRepeatLikeNoDuplicateMatch(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Like(context.Background(), 2, 1)
	require.NoError(t, err)
	_, err = f.uc.Like(context.Background(), 1, 2)
	require.NoError(t, err)

	result, err := f.uc.Like(context.Background(), 1, 2)
	require.NoError(t, err)

	assert.False(t, result.IsMatch)
	assert.Len(t, f.matches.matches, 1)
	// The repeat is still appended to the history.
	assert.Len(t, f.interactions.records, 3)
}

func TestSkipNeverMatches(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Like(context.Background(), 2, 1)
	require.NoError(t, err)

	err = f.uc.Skip(context.Background(), 1, 2)
	require.NoError(t, err)

	assert.Empty(t, f.matches.matches)
	require.Len(t, f.interactions.records, 2)
	assert.Equal(t, domain.InteractionSkip, f.interactions.records[1].Type)
}

func TestSelfInteractionRejected(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Like(context.Background(), 1, 1)
	assert.ErrorIs(t, err, domain.ErrSelfInteraction)

	err = f.uc.Skip(context.Background(), 1, 1)
	assert.ErrorIs(t, err, domain.ErrSelfInteraction)

	assert.Empty(t, f.interactions.records)
}

func TestLikeUnknownProfile(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Like(context.Background(), 1, 99)
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestMatchesListing(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Like(context.Background(), 2, 1)
	require.NoError(t, err)
	_, err = f.uc.Like(context.Background(), 1, 2)
	require.NoError(t, err)

	f.messages.last[1] = &domain.Message{
		MatchID:   1,
		SenderID:  2,
		Content:   "hi",
		CreatedAt: time.Now(),
	}

	infos, err := f.uc.Matches(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, infos, 1)

	info := infos[0]
	assert.Equal(t, 1, info.MatchID)
	assert.Equal(t, 2, info.Counterpart.ProfileID)
	assert.Equal(t, "Bob", info.Counterpart.Name)
	require.NotNil(t, info.LastMessage)
	assert.Equal(t, "hi", info.LastMessage.Content)
}

func TestMarkChatInitiatedIdempotent(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Like(context.Background(), 2, 1)
	require.NoError(t, err)
	_, err = f.uc.Like(context.Background(), 1, 2)
	require.NoError(t, err)

	require.NoError(t, f.uc.MarkChatInitiated(context.Background(), 1))
	require.NoError(t, f.uc.MarkChatInitiated(context.Background(), 1))

	assert.True(t, f.matches.matches[0].ChatInitiated)
}
