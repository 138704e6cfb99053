package domain

import "time"

const (
	InteractionLike = "like"
	InteractionSkip = "skip"
)

// Interaction is a directed like/skip edge between two profiles.
// Records are append-only: once written they are never updated or deleted,
// the full history feeds the behavioral score.
type Interaction struct {
	ID            int       `json:"id" db:"id"`
	FromProfileID int       `json:"from_profile_id" db:"from_profile_id"`
	ToProfileID   int       `json:"to_profile_id" db:"to_profile_id"`
	Type          string    `json:"type" db:"type"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
