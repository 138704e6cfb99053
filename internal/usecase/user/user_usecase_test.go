package user

import (
	"context"
	"testing"

	"github.com/bliinmaker/dating-bot/internal/domain"
	"github.com/bliinmaker/dating-bot/internal/repository"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	repository.UserRepository
	byTelegram map[int64]*domain.User
	touched    []int
	renamed    []int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byTelegram: make(map[int64]*domain.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, u *domain.User) error {
	u.ID = len(f.byTelegram) + 1
	f.byTelegram[u.TelegramID] = u
	return nil
}

func (f *fakeUserRepo) GetByTelegramID(_ context.Context, telegramID int64) (*domain.User, error) {
	u, ok := f.byTelegram[telegramID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) UpdateUsername(_ context.Context, id int, username *string) error {
	f.renamed = append(f.renamed, id)
	return nil
}

func (f *fakeUserRepo) TouchLastActive(_ context.Context, id int) error {
	f.touched = append(f.touched, id)
	return nil
}

func strptr(s string) *string { return &s }

func TestGetOrCreateNewUser(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewUserUseCase(repo, zerolog.Nop())

	u, err := uc.GetOrCreate(context.Background(), 555, strptr("alice"))
	require.NoError(t, err)

	assert.Equal(t, int64(555), u.TelegramID)
	assert.Equal(t, "alice", *u.Username)
	assert.Empty(t, repo.touched)
}

func TestGetOrCreateExistingUser(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewUserUseCase(repo, zerolog.Nop())

	first, err := uc.GetOrCreate(context.Background(), 555, strptr("alice"))
	require.NoError(t, err)

	second, err := uc.GetOrCreate(context.Background(), 555, strptr("alice"))
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, []int{first.ID}, repo.touched)
	assert.Empty(t, repo.renamed)
}

func TestGetOrCreateUsernameChange(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewUserUseCase(repo, zerolog.Nop())

	first, err := uc.GetOrCreate(context.Background(), 555, strptr("alice"))
	require.NoError(t, err)

	updated, err := uc.GetOrCreate(context.Background(), 555, strptr("alice_new"))
	require.NoError(t, err)

	assert.Equal(t, "alice_new", *updated.Username)
	assert.Equal(t, []int{first.ID}, repo.renamed)
}

func TestGetOrCreateNilUsernameKeepsStored(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewUserUseCase(repo, zerolog.Nop())

	_, err := uc.GetOrCreate(context.Background(), 555, strptr("alice"))
	require.NoError(t, err)

	u, err := uc.GetOrCreate(context.Background(), 555, nil)
	require.NoError(t, err)

	require.NotNil(t, u.Username)
	assert.Equal(t, "alice", *u.Username)
	assert.Empty(t, repo.renamed)
}
