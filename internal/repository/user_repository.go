package repository

import (
	"context"

	"github.com/bliinmaker/dating-bot/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int) (*domain.User, error)
	GetByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error)
	UpdateUsername(ctx context.Context, id int, username *string) error
	TouchLastActive(ctx context.Context, id int) error
	Count(ctx context.Context) (int, error)
}
