// Copyright (c) 2026 Planora. All rights reserved.

package auth_test

import (
	"context"
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planora/planora/internal/platform/apperr"
	"github.com/planora/planora/internal/platform/sec"
	"github.com/planora/planora/internal/users/auth"
)

// # Test Doubles

// fakeUserRepository is a map-backed stand-in for the Postgres repository.
type fakeUserRepository struct {
	byID      map[string]*auth.User
	byLoginID map[string]*auth.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{
		byID:      map[string]*auth.User{},
		byLoginID: map[string]*auth.User{},
	}
}

func (repo *fakeUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	if user, ok := repo.byID[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, apperr.NotFound("User")
}

func (repo *fakeUserRepository) FindByLoginID(_ context.Context, loginID string) (*auth.User, error) {
	if user, ok := repo.byLoginID[loginID]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, apperr.NotFound("User")
}

func (repo *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	if _, ok := repo.byLoginID[user.LoginID]; ok {
		return apperr.Conflict("Login ID is already registered")
	}
	copied := *user
	repo.byID[user.ID] = &copied
	repo.byLoginID[user.LoginID] = &copied
	return nil
}

func (repo *fakeUserRepository) UpdateStatus(_ context.Context, id string, status auth.UserStatus) error {
	user, ok := repo.byID[id]
	if !ok {
		return apperr.NotFound("User")
	}
	user.Status = status
	return nil
}

// fakeRefreshTokenStore mirrors the Redis single-slot semantics in memory.
type fakeRefreshTokenStore struct {
	slots map[string]string
}

func newFakeRefreshTokenStore() *fakeRefreshTokenStore {
	return &fakeRefreshTokenStore{slots: map[string]string{}}
}

func (store *fakeRefreshTokenStore) Save(_ context.Context, userID, token string, _ time.Duration) error {
	store.slots[userID] = token
	return nil
}

func (store *fakeRefreshTokenStore) Find(_ context.Context, userID string) (string, error) {
	token, ok := store.slots[userID]
	if !ok {
		return "", apperr.NotFound("Refresh session")
	}
	return token, nil
}

func (store *fakeRefreshTokenStore) Delete(_ context.Context, userID string) error {
	delete(store.slots, userID)
	return nil
}

func (store *fakeRefreshTokenStore) Update(_ context.Context, userID, newToken string, _ time.Duration) error {
	store.slots[userID] = newToken
	return nil
}

// newTestService wires a Service against the fakes and a real signer.
func newTestService(t *testing.T) (*auth.Service, *fakeUserRepository, *fakeRefreshTokenStore) {
	t.Helper()

	secret := base64.StdEncoding.EncodeToString([]byte("planora-test-secret-0123456789"))
	signing, err := sec.NewSigningContext(secret, "planora.app", 30*time.Minute, 14*24*time.Hour)
	require.NoError(t, err)

	repo := newFakeUserRepository()
	store := newFakeRefreshTokenStore()
	service := auth.NewService(repo, store, sec.NewTokenService(signing), signing)

	return service, repo, store
}

func signupUser(t *testing.T, service *auth.Service) *auth.User {
	t.Helper()

	user, err := service.Signup(context.Background(), auth.SignupInput{
		LoginID:  "traveler01",
		Password: "correct horse battery",
		Nickname: "Traveler",
	})
	require.NoError(t, err)
	return user
}

// # Tests

/*
TestService_Signup tests account creation and duplicate rejection.
*/
func TestService_Signup(t *testing.T) {
	service, _, _ := newTestService(t)

	user := signupUser(t, service)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, auth.StatusActive, user.Status)
	assert.NotEqual(t, "correct horse battery", user.PasswordHash)

	// Same login ID again must conflict
	_, err := service.Signup(context.Background(), auth.SignupInput{
		LoginID:  "traveler01",
		Password: "another password",
		Nickname: "Impostor",
	})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}

/*
TestService_Login tests credential verification and slot population.
*/
func TestService_Login(t *testing.T) {
	service, _, store := newTestService(t)
	user := signupUser(t, service)
	ctx := context.Background()

	pair, err := service.Login(ctx, "traveler01", "correct horse battery")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, user.ID, pair.User.ID)

	// The refresh slot now holds exactly the issued token
	stored, err := store.Find(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, pair.RefreshToken, stored)

	// Wrong password
	_, err = service.Login(ctx, "traveler01", "wrong password")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)

	// Unknown login ID yields the same generic error
	_, err = service.Login(ctx, "nobody", "whatever password")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
}

/*
TestService_Login_DisplacesPreviousSession tests single-session behavior.
*/
func TestService_Login_DisplacesPreviousSession(t *testing.T) {
	service, _, store := newTestService(t)
	user := signupUser(t, service)
	ctx := context.Background()

	first, err := service.Login(ctx, "traveler01", "correct horse battery")
	require.NoError(t, err)

	second, err := service.Login(ctx, "traveler01", "correct horse battery")
	require.NoError(t, err)

	stored, err := store.Find(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, second.RefreshToken, stored)

	// The first session's refresh token was rotated out
	_, err = service.Reissue(ctx, first.RefreshToken)
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
}

/*
TestService_Reissue tests refresh rotation end to end.
*/
func TestService_Reissue(t *testing.T) {
	service, _, store := newTestService(t)
	user := signupUser(t, service)
	ctx := context.Background()

	pair, err := service.Login(ctx, "traveler01", "correct horse battery")
	require.NoError(t, err)

	rotated, err := service.Reissue(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, rotated.AccessToken)
	assert.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)

	// Slot was atomically replaced
	stored, err := store.Find(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, rotated.RefreshToken, stored)

	// Replaying the consumed token fails
	_, err = service.Reissue(ctx, pair.RefreshToken)
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
}

/*
TestService_Reissue_RejectsNonRefreshTokens tests token-type enforcement.
*/
func TestService_Reissue_RejectsNonRefreshTokens(t *testing.T) {
	service, _, _ := newTestService(t)
	signupUser(t, service)
	ctx := context.Background()

	pair, err := service.Login(ctx, "traveler01", "correct horse battery")
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"access_token", pair.AccessToken},
		{"garbage", "not.a.token"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Reissue(ctx, tt.token)
			require.Error(t, err)
			assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
		})
	}
}

/*
TestService_Logout tests revocation and idempotency.
*/
func TestService_Logout(t *testing.T) {
	service, _, store := newTestService(t)
	user := signupUser(t, service)
	ctx := context.Background()

	_, err := service.Login(ctx, "traveler01", "correct horse battery")
	require.NoError(t, err)

	require.NoError(t, service.Logout(ctx, user.ID))
	_, err = store.Find(ctx, user.ID)
	assert.Error(t, err)

	// Second logout is a no-op
	assert.NoError(t, service.Logout(ctx, user.ID))
}

/*
TestService_Withdraw tests the terminal account transition.
*/
func TestService_Withdraw(t *testing.T) {
	service, repo, store := newTestService(t)
	user := signupUser(t, service)
	ctx := context.Background()

	pair, err := service.Login(ctx, "traveler01", "correct horse battery")
	require.NoError(t, err)

	require.NoError(t, service.Withdraw(ctx, user.ID))

	// Status flipped and session revoked
	withdrawn, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, auth.StatusWithdrawn, withdrawn.Status)
	_, err = store.Find(ctx, user.ID)
	assert.Error(t, err)

	// No further logins or refreshes
	_, err = service.Login(ctx, "traveler01", "correct horse battery")
	require.Error(t, err)
	_, err = service.Reissue(ctx, pair.RefreshToken)
	require.Error(t, err)
}
