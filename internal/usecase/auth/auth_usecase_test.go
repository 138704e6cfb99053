package auth

import (
	"context"
	"testing"

	"github.com/bliinmaker/dating-bot/internal/config"
	"github.com/bliinmaker/dating-bot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsers struct {
	users map[int64]*domain.User
}

func (f *fakeUsers) GetOrCreate(_ context.Context, telegramID int64, username *string) (*domain.User, error) {
	if u, ok := f.users[telegramID]; ok {
		return u, nil
	}
	u := &domain.User{ID: len(f.users) + 1, TelegramID: telegramID, Username: username}
	f.users[telegramID] = u
	return u, nil
}

func newTestAuth() *AuthUseCase {
	return NewAuthUseCase(
		&fakeUsers{users: make(map[int64]*domain.User)},
		&config.JWTConfig{Secret: "0123456789abcdef0123456789abcdef", ExpiryMin: 60},
	)
}

func TestAuthenticateRoundTrip(t *testing.T) {
	uc := newTestAuth()

	resp, err := uc.Authenticate(context.Background(), 123456, nil)
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, int64(123456), resp.User.TelegramID)

	userID, err := uc.VerifyToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, userID)
}

func TestAuthenticateSameTelegramIDSameUser(t *testing.T) {
	uc := newTestAuth()

	first, err := uc.Authenticate(context.Background(), 777, nil)
	require.NoError(t, err)
	second, err := uc.Authenticate(context.Background(), 777, nil)
	require.NoError(t, err)

	assert.Equal(t, first.User.ID, second.User.ID)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	uc := newTestAuth()

	_, err := uc.VerifyToken("not-a-token")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	issuer := newTestAuth()
	verifier := NewAuthUseCase(
		&fakeUsers{users: make(map[int64]*domain.User)},
		&config.JWTConfig{Secret: "ffffffffffffffffffffffffffffffff", ExpiryMin: 60},
	)

	resp, err := issuer.Authenticate(context.Background(), 1, nil)
	require.NoError(t, err)

	_, err = verifier.VerifyToken(resp.Token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}
