package repository

import (
	"context"

	"github.com/bliinmaker/dating-bot/internal/domain"
)

type RatingRepository interface {
	// Upsert writes the rating row for a profile, creating it on first
	// computation and refreshing last_calculated on every write.
	Upsert(ctx context.Context, rating *domain.Rating) error
	GetByProfileID(ctx context.Context, profileID int) (*domain.Rating, error)
}
