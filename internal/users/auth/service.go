// Copyright (c) 2026 Planora. All rights reserved.

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/planora/planora/internal/platform/apperr"
	"github.com/planora/planora/internal/platform/ctxutil"
	"github.com/planora/planora/internal/platform/sec"
	"github.com/planora/planora/pkg/uuid"
)

// # Contracts & Types

// TokenProvider defines the contract for issuing and classifying signed tokens.
//
// The concrete implementation is [sec.TokenService]; the interface exists so
// the service can be unit-tested against the real signer without a network.
type TokenProvider interface {
	// IssueAccessToken creates a signed access token for the user.
	IssueAccessToken(userID string) (string, error)

	// IssueRefreshToken creates a signed refresh token for the user.
	IssueRefreshToken(userID string) (string, error)

	// IsRefreshToken reports whether the token is a valid refresh token
	// from this issuer. Any validation failure yields false.
	IsRefreshToken(tokenString string) bool

	// Parse decodes and verifies a token, returning its claim set.
	Parse(tokenString string) (*sec.TokenClaims, error)
}

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, token
// issuance, or rotation logic must be reviewed by the security team.
type Service struct {
	userRepository UserRepository
	refreshStore   RefreshTokenStore
	tokenProvider  TokenProvider
	signing        sec.SigningContext
}

// NewService constructs a new auth [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	refreshStore RefreshTokenStore,
	tokenProv TokenProvider,
	signing sec.SigningContext,
) *Service {
	return &Service{
		userRepository: userRepo,
		refreshStore:   refreshStore,
		tokenProvider:  tokenProv,
		signing:        signing,
	}
}

// # Registration Flow

// SignupInput holds the data required to enroll a new member.
type SignupInput struct {
	LoginID  string
	Password string
	Nickname string
}

/*
Signup validates, hashes, and persists a brand new user account.

Parameters:
  - context: context.Context
  - input: SignupInput

Returns:
  - *User: Created entity (status ACTIVE)
  - error: Conflict (if the login ID exists) or storage errors
*/
func (service *Service) Signup(context context.Context, input SignupInput) (*User, error) {

	// Verify login ID uniqueness. Return a client-safe Conflict error.
	_, err := service.userRepository.FindByLoginID(context, input.LoginID)
	if err == nil {
		return nil, apperr.Conflict("Login ID is already registered")
	}

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Construct the new User entity. Time-sortable ID to prevent PG index fragmentation.
	user := &User{
		ID:           uuid.New(),
		LoginID:      input.LoginID,
		PasswordHash: hashedPassword,
		Nickname:     input.Nickname,
		Status:       StatusActive,
	}

	// Persist the user to the database
	if err := service.userRepository.Create(context, user); err != nil {
		return nil, fmt.Errorf("auth_service_signup_failed: %w", err)
	}

	ctxutil.GetLogger(context).Info("user_signed_up", slog.String("user_id", user.ID))

	return user, nil
}

// # Authentication Flow

// TokenPair represents a successfully established session.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64 // Access-token lifetime in seconds
	User         *User
}

/*
Login validates user credentials and issues a fresh token pair.

Description: Verifies identity with a constant-time password comparison,
issues an access/refresh pair, and writes the refresh token into the user's
single Redis slot — displacing any previous session.

Parameters:
  - context: context.Context
  - loginID: string
  - password: string

Returns:
  - *TokenPair: Transport-ready session credentials
  - error: Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, loginID, password string) (*TokenPair, error) {

	// Look up the account. Generic message to prevent enumeration.
	user, err := service.userRepository.FindByLoginID(context, loginID)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	// Withdrawn accounts can never authenticate again.
	if user.Status != StatusActive {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	// Verify password hash using constant-time comparison to prevent timing attacks
	if !sec.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	return service.issuePair(context, user)
}

/*
Reissue implements single-slot refresh-token rotation.

Description: Verifies the presented refresh token cryptographically AND
against the stored slot (both must agree), then issues a fresh pair and
atomically replaces the slot. The previous refresh token is invalid the
moment the update lands, even if its expiry is still in the future.

Parameters:
  - context: context.Context
  - refreshToken: string

Returns:
  - *TokenPair: New session credentials
  - error: Unauthorized or storage failures
*/
func (service *Service) Reissue(context context.Context, refreshToken string) (*TokenPair, error) {

	// Cryptographic check: signature, expiry, typ=refresh, issuer.
	if !service.tokenProvider.IsRefreshToken(refreshToken) {
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}

	// Decode the subject. Parse cannot fail after IsRefreshToken succeeded.
	claims, err := service.tokenProvider.Parse(refreshToken)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}
	userID := claims.Subject

	// State check: the presented token must be the current slot value.
	// A mismatch means the token was already rotated out (or revoked).
	storedToken, err := service.refreshStore.Find(context, userID)
	if err != nil || storedToken != refreshToken {
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}

	// Fetch the user associated with this session
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil || user.Status != StatusActive {
		return nil, apperr.Unauthorized("User not found or withdrawn")
	}

	return service.issuePair(context, user)
}

/*
Logout revokes the user's active session.

Description: Deletes the refresh-token slot. Idempotent — logging out an
already-absent session succeeds.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Revocation failures
*/
func (service *Service) Logout(context context.Context, userID string) error {
	if err := service.refreshStore.Delete(context, userID); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}

	ctxutil.GetLogger(context).Info("user_logged_out", slog.String("user_id", userID))
	return nil
}

/*
Withdraw closes the user's account.

Description: Transitions the account to WITHDRAWN (terminal) and revokes the
active refresh session. Outstanding access tokens expire naturally at their
TTL; there is no active eviction.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Storage failures
*/
func (service *Service) Withdraw(context context.Context, userID string) error {
	if err := service.userRepository.UpdateStatus(context, userID, StatusWithdrawn); err != nil {
		return err
	}

	// Best-effort session revocation; the account is already closed.
	_ = service.refreshStore.Delete(context, userID)

	ctxutil.GetLogger(context).Info("user_withdrawn", slog.String("user_id", userID))
	return nil
}

// issuePair mints an access/refresh pair and writes the refresh slot.
//
// The slot write is an unconditional upsert: logging in on a second device
// displaces the first device's session (single active session per user).
func (service *Service) issuePair(context context.Context, user *User) (*TokenPair, error) {
	accessToken, err := service.tokenProvider.IssueAccessToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("auth_service_access_token_failed: %w", err)
	}

	refreshToken, err := service.tokenProvider.IssueRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	if err := service.refreshStore.Update(context, user.ID, refreshToken, service.signing.RefreshTTL()); err != nil {
		return nil, fmt.Errorf("auth_service_session_save_failed: %w", err)
	}

	ctxutil.GetLogger(context).Info("session_established", slog.String("user_id", user.ID))

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(service.signing.AccessTTL() / time.Second),
		User:         user,
	}, nil
}
