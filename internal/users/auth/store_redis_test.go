// Copyright (c) 2026 Planora. All rights reserved.

package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planora/planora/internal/platform/apperr"
	"github.com/planora/planora/internal/users/auth"
)

// newTestStore boots an in-memory Redis and a store bound to it.
func newTestStore(t *testing.T) (*auth.RedisRefreshTokenStore, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return auth.NewRefreshTokenStore(client), server
}

/*
TestRefreshTokenStore_SaveAndFind tests the basic slot round trip.
*/
func TestRefreshTokenStore_SaveAndFind(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "user-1", "token-abc", time.Hour))

	token, err := store.Find(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "token-abc", token)
}

/*
TestRefreshTokenStore_FindMissing tests the NotFound mapping for empty slots.
*/
func TestRefreshTokenStore_FindMissing(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Find(context.Background(), "ghost")
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}

/*
TestRefreshTokenStore_Delete tests revocation and its idempotency.
*/
func TestRefreshTokenStore_Delete(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "user-1", "token-abc", time.Hour))
	require.NoError(t, store.Delete(ctx, "user-1"))

	_, err := store.Find(ctx, "user-1")
	assert.Error(t, err)

	// Deleting an absent slot is not an error
	assert.NoError(t, store.Delete(ctx, "user-1"))
}

/*
TestRefreshTokenStore_Update tests single-slot rotation semantics.
*/
func TestRefreshTokenStore_Update(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "user-1", "old-token", time.Hour))
	require.NoError(t, store.Update(ctx, "user-1", "new-token", time.Hour))

	token, err := store.Find(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "new-token", token)

	// Rotation into an empty slot also succeeds (upsert)
	require.NoError(t, store.Update(ctx, "user-2", "first-token", time.Hour))
	token, err = store.Find(ctx, "user-2")
	require.NoError(t, err)
	assert.Equal(t, "first-token", token)
}

/*
TestRefreshTokenStore_TTLExpiry tests that slots lapse at their TTL.
*/
func TestRefreshTokenStore_TTLExpiry(t *testing.T) {
	store, server := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "user-1", "token-abc", time.Minute))

	server.FastForward(2 * time.Minute)

	_, err := store.Find(ctx, "user-1")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}
