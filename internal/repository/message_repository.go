package repository

import (
	"context"

	"github.com/bliinmaker/dating-bot/internal/domain"
)

// MessageRepository is read-only: the core only needs the latest message per
// match for the matches listing. Message ingest lives with the external
// messenger integration.
type MessageRepository interface {
	// GetLastByMatch returns the most recent message of a match, or nil when
	// the match has no messages yet.
	GetLastByMatch(ctx context.Context, matchID int) (*domain.Message, error)
}
