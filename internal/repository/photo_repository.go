package repository

import (
	"context"

	"github.com/bliinmaker/dating-bot/internal/domain"
)

type PhotoRepository interface {
	Create(ctx context.Context, photo *domain.Photo) error
	ListByProfile(ctx context.Context, profileID int) ([]*domain.Photo, error)
	// ClearMain demotes the current main photo so that at most one photo per
	// profile carries the flag.
	ClearMain(ctx context.Context, profileID int) error
}
