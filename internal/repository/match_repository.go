package repository

import (
	"context"
	"time"

	"github.com/bliinmaker/dating-bot/internal/domain"
)

type MatchRepository interface {
	Create(ctx context.Context, match *domain.Match) error
	GetByID(ctx context.Context, id int) (*domain.Match, error)
	// GetActiveByProfiles looks up the active match for an unordered pair.
	GetActiveByProfiles(ctx context.Context, profile1ID, profile2ID int) (*domain.Match, error)
	GetActiveMatches(ctx context.Context, profileID int) ([]*domain.Match, error)
	CountByProfile(ctx context.Context, profileID int) (int, error)
	CountChatInitiated(ctx context.Context, profileID int) (int, error)
	// MarkChatInitiated flips chat_initiated to true; calling it again is a
	// no-op, the flag never goes back.
	MarkChatInitiated(ctx context.Context, id int) error
	// ArchiveStale archives active matches created before cutoff where a chat
	// was never initiated. Returns the number of matches archived.
	ArchiveStale(ctx context.Context, cutoff time.Time) (int, error)
	Count(ctx context.Context) (int, error)
}
