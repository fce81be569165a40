// Copyright (c) 2026 MangaVault. All rights reserved.
// Author: vu.hoanganh.dev@gmail.com

package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hoanganhvu/mangavault/internal/platform/constants"
	"github.com/hoanganhvu/mangavault/internal/platform/sec"
)

// # Revoked Token Repository

// RedisRevokedTokenRepository implements [RevokedTokenRepository] using Redis.
//
// Tokens are keyed by their SHA-256 digest, never stored verbatim, and the
// entry TTL matches the token's remaining lifetime so the denylist is
// self-cleaning.
type RedisRevokedTokenRepository struct {
	client *redis.Client
}

// NewRevokedTokenRepository creates a new Redis-backed [RevokedTokenRepository].
func NewRevokedTokenRepository(client *redis.Client) *RedisRevokedTokenRepository {
	return &RedisRevokedTokenRepository{client: client}
}

/*
Revoke marks a token as invalid for its remaining lifetime.

Parameters:
  - context: context.Context
  - token: string (raw bearer token)
  - ttl: time.Duration (remaining validity of the token)

Returns:
  - error: Storage failures
*/
func (repository *RedisRevokedTokenRepository) Revoke(context context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		// Already expired; nothing to deny.
		return nil
	}

	key := constants.RedisPrefixRevokedToken + sec.HashToken(token)

	if err := repository.client.Set(context, key, "1", ttl).Err(); err != nil {
		return fmt.Errorf("redis_revoked_token_set_failed: %w", err)
	}

	return nil
}

/*
IsRevoked reports whether a token is on the denylist.

Parameters:
  - context: context.Context
  - token: string (raw bearer token)

Returns:
  - bool: true when the token has been revoked
  - error: Connectivity errors
*/
func (repository *RedisRevokedTokenRepository) IsRevoked(context context.Context, token string) (bool, error) {
	key := constants.RedisPrefixRevokedToken + sec.HashToken(token)

	_, err := repository.client.Get(context, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("redis_revoked_token_get_failed: %w", err)
	}

	return true, nil
}
