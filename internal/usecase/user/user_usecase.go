package user

import (
	"context"
	"errors"

	"github.com/bliinmaker/dating-bot/internal/domain"
	"github.com/bliinmaker/dating-bot/internal/repository"
	"github.com/rs/zerolog"
)

// UserUseCase keys accounts by Telegram id. There is no password flow: a
// Telegram id seen for the first time becomes a new account.
type UserUseCase struct {
	userRepo repository.UserRepository
	log      zerolog.Logger
}

func NewUserUseCase(userRepo repository.UserRepository, log zerolog.Logger) *UserUseCase {
	return &UserUseCase{userRepo: userRepo, log: log}
}

// GetOrCreate resolves a Telegram id to a user, creating the account on first
// contact. On subsequent contacts the stored username tracks the current one
// and last_active is refreshed.
func (uc *UserUseCase) GetOrCreate(ctx context.Context, telegramID int64, username *string) (*domain.User, error) {
	user, err := uc.userRepo.GetByTelegramID(ctx, telegramID)
	if err == nil {
		if usernameChanged(user.Username, username) {
			if err := uc.userRepo.UpdateUsername(ctx, user.ID, username); err != nil {
				return nil, err
			}
			user.Username = username
		}
		if err := uc.userRepo.TouchLastActive(ctx, user.ID); err != nil {
			uc.log.Warn().Err(err).Int("user_id", user.ID).Msg("failed to touch last_active")
		}
		return user, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	user = &domain.User{
		TelegramID: telegramID,
		Username:   username,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	uc.log.Info().Int("user_id", user.ID).Int64("telegram_id", telegramID).Msg("user created")
	return user, nil
}

// Get returns a user by internal id.
func (uc *UserUseCase) Get(ctx context.Context, id int) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, id)
}

func usernameChanged(stored, incoming *string) bool {
	if incoming == nil {
		return false
	}
	return stored == nil || *stored != *incoming
}
