// Copyright (c) 2026 Planora. All rights reserved.

package plan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/planora/planora/internal/platform/apperr"
	"github.com/planora/planora/internal/platform/constants"
)

// RedisInviteCodeStore implements [InviteCodeStore] on Redis.
//
// Each code is a single key under [constants.RedisPrefixInviteCode] whose
// value is the plan ID; expiry is delegated entirely to the key TTL.
type RedisInviteCodeStore struct {
	client *redis.Client
}

// NewInviteCodeStore constructs a Redis backed invite-code store.
func NewInviteCodeStore(client *redis.Client) *RedisInviteCodeStore {
	return &RedisInviteCodeStore{client: client}
}

// key builds the namespaced Redis key for an invite code.
func (store *RedisInviteCodeStore) key(code string) string {
	return constants.RedisPrefixInviteCode + code
}

/*
SaveCode claims a code for a plan if the code is currently free.

Description: Uses SET NX so concurrent generators can never overwrite each
other's codes; the caller retries with a fresh code on collision.

Parameters:
  - context: context.Context
  - code: string
  - planID: string
  - ttl: time.Duration

Returns:
  - bool: true when the code was claimed
  - error: Storage failures
*/
func (store *RedisInviteCodeStore) SaveCode(context context.Context, code, planID string, ttl time.Duration) (bool, error) {
	claimed, err := store.client.SetNX(context, store.key(code), planID, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis_invite_code_save_failed: %w", err)
	}
	return claimed, nil
}

/*
FindPlanID resolves an invite code to its target plan ID.

Parameters:
  - context: context.Context
  - code: string

Returns:
  - string: Plan ID the code points at
  - error: apperr.NotFound for unknown or expired codes, or storage failures
*/
func (store *RedisInviteCodeStore) FindPlanID(context context.Context, code string) (string, error) {
	planID, err := store.client.Get(context, store.key(code)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.NotFound("Invite code")
		}
		return "", fmt.Errorf("redis_invite_code_find_failed: %w", err)
	}
	return planID, nil
}
