package repository

import (
	"context"

	"github.com/bliinmaker/dating-bot/internal/domain"
)

// InteractionRepository is append-only: interactions are never updated or
// deleted once written.
type InteractionRepository interface {
	Create(ctx context.Context, interaction *domain.Interaction) error
	HasLike(ctx context.Context, fromProfileID, toProfileID int) (bool, error)
	InteractedProfileIDs(ctx context.Context, fromProfileID int) ([]int, error)
	CountIncoming(ctx context.Context, toProfileID int) (int, error)
	CountLikesReceived(ctx context.Context, toProfileID int) (int, error)
	Count(ctx context.Context) (int, error)
}
