package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Record is the persisted session state for one user.
type Record struct {
	State     State     `json:"state"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store keeps session records in redis so a bot restart does not reset
// everyone's conversation. Unknown users read as StateStart.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
	log zerolog.Logger
}

func NewStore(rdb *redis.Client, ttl time.Duration, log zerolog.Logger) *Store {
	return &Store{rdb: rdb, ttl: ttl, log: log}
}

func sessionKey(userID int) string {
	return fmt.Sprintf("session:%d", userID)
}

// Get returns the user's current state, StateStart when none is stored or
// the record cannot be read.
func (s *Store) Get(ctx context.Context, userID int) State {
	data, err := s.rdb.Get(ctx, sessionKey(userID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.log.Warn().Err(err).Int("user_id", userID).Msg("failed to read session")
		}
		return StateStart
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		s.log.Warn().Err(err).Int("user_id", userID).Msg("corrupt session record")
		return StateStart
	}
	return rec.State
}

// Set stores the user's state.
func (s *Store) Set(ctx context.Context, userID int, state State) error {
	rec := Record{State: state, UpdatedAt: time.Now()}
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, sessionKey(userID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

// Advance applies an event to the stored state and persists the result. The
// effect is returned for the caller to act on.
func (s *Store) Advance(ctx context.Context, userID int, event Event) (State, Effect, error) {
	current := s.Get(ctx, userID)
	next, effect, err := Next(current, event)
	if err != nil {
		return current, EffectNone, err
	}
	if err := s.Set(ctx, userID, next); err != nil {
		return current, EffectNone, err
	}
	return next, effect, nil
}

// Reset drops the user's session record.
func (s *Store) Reset(ctx context.Context, userID int) {
	if err := s.rdb.Del(ctx, sessionKey(userID)).Err(); err != nil {
		s.log.Warn().Err(err).Int("user_id", userID).Msg("failed to delete session")
	}
}
