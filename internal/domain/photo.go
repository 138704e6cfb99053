package domain

import "time"

// Photo belongs to exactly one profile. The object-store key is the owning
// reference; the platform file id is a transient convenience cache that lets
// the bot resend an already-uploaded photo without touching the object store.
type Photo struct {
	ID             int       `json:"id" db:"id"`
	ProfileID      int       `json:"profile_id" db:"profile_id"`
	StorageKey     string    `json:"-" db:"storage_key"`
	TelegramFileID *string   `json:"telegram_file_id,omitempty" db:"telegram_file_id"`
	IsMain         bool      `json:"is_main" db:"is_main"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}
