// Package cache holds read-through caches for candidate aggregates.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"go-candidate-backend/internal/domain"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "candidate:"

// versionTTL bounds how long an invalidation counter outlives its last write.
const versionTTL = 24 * time.Hour

// Writes the entry only while the version counter still holds the value the
// reader saw before loading. A missing counter counts as version 0.
const setIfVersionLuaScript = `
local current = redis.call('GET', KEYS[2])
if (current or '0') ~= ARGV[1] then
	return 0
end
if tonumber(ARGV[3]) > 0 then
	redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
else
	redis.call('SET', KEYS[1], ARGV[2])
end
return 1
`

// RedisCandidateCache keeps serialized aggregates in Redis with a TTL. Each id
// has a version counter bumped by Invalidate, so a load that raced an update
// cannot write its older aggregate back.
type RedisCandidateCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCandidateCache(client *redis.Client, ttl time.Duration) *RedisCandidateCache {
	return &RedisCandidateCache{client: client, ttl: ttl}
}

func key(id int64) string {
	return keyPrefix + strconv.FormatInt(id, 10)
}

func versionKey(id int64) string {
	return key(id) + ":version"
}

// Get returns nil, nil on a miss.
func (c *RedisCandidateCache) Get(ctx context.Context, id int64) (*domain.Candidate, error) {
	raw, err := c.client.Get(ctx, key(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}

	var candidate domain.Candidate
	if err := json.Unmarshal(raw, &candidate); err != nil {
		// A payload written by an older build; drop it and treat as a miss.
		_ = c.client.Del(ctx, key(id)).Err()
		return nil, nil
	}
	return &candidate, nil
}

func (c *RedisCandidateCache) Version(ctx context.Context, id int64) (int64, error) {
	version, err := c.client.Get(ctx, versionKey(id)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("cache version: %w", err)
	}
	return version, nil
}

// Set stores candidate unless its id was invalidated after version was read.
// A skipped write is not an error.
func (c *RedisCandidateCache) Set(ctx context.Context, candidate *domain.Candidate, version int64) error {
	raw, err := json.Marshal(candidate)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}

	keys := []string{key(candidate.ID), versionKey(candidate.ID)}
	err = c.client.Eval(ctx, setIfVersionLuaScript, keys,
		strconv.FormatInt(version, 10), raw, c.ttl.Milliseconds()).Err()
	if err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

func (c *RedisCandidateCache) Invalidate(ctx context.Context, id int64) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, versionKey(id))
		pipe.Expire(ctx, versionKey(id), versionTTL)
		pipe.Del(ctx, key(id))
		return nil
	})
	if err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}

// Nop is used when Redis is not configured.
type Nop struct{}

func (Nop) Get(context.Context, int64) (*domain.Candidate, error) { return nil, nil }

func (Nop) Version(context.Context, int64) (int64, error) { return 0, nil }

func (Nop) Set(context.Context, *domain.Candidate, int64) error { return nil }

func (Nop) Invalidate(context.Context, int64) error { return nil }
