package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Cache maintains the two cached projections: the per-user candidate list and
// the per-profile detail view. The two key spaces are independent — no
// invalidation crosses from one to the other. All operations are best-effort:
// failures are logged and never surfaced, a cache outage degrades latency,
// not correctness.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
	log zerolog.Logger
}

func New(rdb *redis.Client, ttl time.Duration, log zerolog.Logger) *Cache {
	return &Cache{rdb: rdb, ttl: ttl, log: log}
}

func candidateKey(userID int) string {
	return fmt.Sprintf("profiles:%d", userID)
}

func profileKey(profileID int) string {
	return fmt.Sprintf("profile:%d", profileID)
}

func (c *Cache) set(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("failed to marshal cache value")
		return
	}
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("failed to write cache")
	}
}

// get returns false on miss and on any failure; a broken cache reads as empty.
func (c *Cache) get(ctx context.Context, key string, dest interface{}) bool {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn().Err(err).Str("key", key).Msg("failed to read cache")
		}
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("failed to unmarshal cache value")
		return false
	}
	return true
}

func (c *Cache) delete(ctx context.Context, key string) {
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("failed to delete cache key")
	}
}

// SetCandidateList caches a user's ranked candidate batch.
func (c *Cache) SetCandidateList(ctx context.Context, userID int, candidates interface{}) {
	c.set(ctx, candidateKey(userID), candidates)
}

// GetCandidateList loads a cached candidate batch into dest, reporting
// whether anything was found.
func (c *Cache) GetCandidateList(ctx context.Context, userID int, dest interface{}) bool {
	return c.get(ctx, candidateKey(userID), dest)
}

// DeleteCandidateList drops a user's candidate cache. Called on the viewer's
// profile edit, photo add, browse re-entry and on either side of a new match.
func (c *Cache) DeleteCandidateList(ctx context.Context, userID int) {
	c.delete(ctx, candidateKey(userID))
}

// SetProfileDetail caches an assembled profile detail view.
func (c *Cache) SetProfileDetail(ctx context.Context, profileID int, detail interface{}) {
	c.set(ctx, profileKey(profileID), detail)
}

// GetProfileDetail loads a cached detail view into dest.
func (c *Cache) GetProfileDetail(ctx context.Context, profileID int, dest interface{}) bool {
	return c.get(ctx, profileKey(profileID), dest)
}

// DeleteProfileDetail drops a profile's detail cache. Called on that
// profile's own edit, photo add or rating update.
func (c *Cache) DeleteProfileDetail(ctx context.Context, profileID int) {
	c.delete(ctx, profileKey(profileID))
}
