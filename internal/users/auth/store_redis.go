// Copyright (c) 2026 Planora. All rights reserved.

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/planora/planora/internal/platform/apperr"
	"github.com/planora/planora/internal/platform/constants"
)

// # Refresh Token Store

// RedisRefreshTokenStore implements RefreshTokenStore using Redis.
//
// The key format is refreshToken:<userID>; the value is the raw refresh-token
// string with TTL equal to the configured refresh-token lifetime.
type RedisRefreshTokenStore struct {
	client *redis.Client
}

// NewRefreshTokenStore creates a new Redis-backed RefreshTokenStore.
func NewRefreshTokenStore(client *redis.Client) *RedisRefreshTokenStore {
	return &RedisRefreshTokenStore{client: client}
}

/*
Save unconditionally upserts the single slot for userID.

Description: A plain SET with TTL. If the user already had a valid refresh
token, it is overwritten and thereby invalidated (single active session).

Parameters:
  - context: context.Context
  - userID: string
  - token: string
  - ttl: time.Duration

Returns:
  - error: Execution errors
*/
func (store *RedisRefreshTokenStore) Save(context context.Context, userID, token string, ttl time.Duration) error {

	// Key the single slot by user
	key := constants.RedisPrefixRefreshToken + userID

	// Set the token with TTL
	if err := store.client.Set(context, key, token, ttl).Err(); err != nil {
		return fmt.Errorf("redis_refresh_token_save_failed: %w", err)
	}

	// Return nil on success
	return nil
}

/*
Find retrieves the current refresh token for userID.

Description: Returns apperr.NotFound if the slot is absent, expired, or was
explicitly revoked — the three cases are indistinguishable to the caller.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - string: The stored refresh token
  - error: apperr.NotFound or connectivity errors
*/
func (store *RedisRefreshTokenStore) Find(context context.Context, userID string) (string, error) {

	// Key the single slot by user
	key := constants.RedisPrefixRefreshToken + userID

	// Get the token from Redis
	token, err := store.client.Get(context, key).Result()

	// Handle errors
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.NotFound("Refresh session")
		}
		return "", fmt.Errorf("redis_refresh_token_find_failed: %w", err)
	}

	// Return the token
	return token, nil
}

/*
Delete removes the slot (logout/revocation).

Description: Deleting an absent slot is a no-op, which makes logout idempotent.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Deletion failures
*/
func (store *RedisRefreshTokenStore) Delete(context context.Context, userID string) error {

	// Key the single slot by user
	key := constants.RedisPrefixRefreshToken + userID

	// Delete the slot from Redis
	if err := store.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_refresh_token_delete_failed: %w", err)
	}

	// Return nil on success
	return nil
}

/*
Update replaces the slot with a new token and refreshes the TTL.

Description: Implemented as a single atomic SET rather than delete-then-save,
so no concurrent reader can ever observe an absent slot mid-rotation. The
external contract is unchanged: after Update, the old token is
unconditionally invalid and the new token is the only valid one.

Parameters:
  - context: context.Context
  - userID: string
  - newToken: string
  - ttl: time.Duration

Returns:
  - error: Execution errors
*/
func (store *RedisRefreshTokenStore) Update(context context.Context, userID, newToken string, ttl time.Duration) error {
	return store.Save(context, userID, newToken, ttl)
}
