// Copyright (c) 2026 Planora. All rights reserved.

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByLoginID returns the account with the given external login ID.

		Parameters:
		  - context: context.Context
		  - loginID: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByLoginID(context context.Context, loginID string) (*User, error)

	/*
		Create persists a brand-new user account to the storage.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Persistence failures (duplicate login IDs surface as Conflict)
	*/
	Create(context context.Context, user *User) error

	/*
		UpdateStatus transitions the account lifecycle state.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - status: UserStatus

		Returns:
		  - error: Persistence failures
	*/
	UpdateStatus(context context.Context, userID string, status UserStatus) error
}

// # Refresh Session Data Access

// RefreshTokenStore defines the single-slot-per-user persistence of the
// current valid refresh token.
//
// # Invariant
//
// At most one valid refresh token exists per user at any time: writing a new
// token invalidates the previous one even if unexpired. The slot is owned
// exclusively by this store; no other component may write it directly.
type RefreshTokenStore interface {

	/*
		Save unconditionally upserts the single slot for userID with the given TTL.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - token: string
		  - ttl: time.Duration

		Returns:
		  - error: Persistence failures
	*/
	Save(context context.Context, userID, token string, ttl time.Duration) error

	/*
		Find returns the current refresh token for userID.

		Once the TTL store drops the key, Find reports absence exactly like an
		explicit revocation: there is no observable "expired-but-present" state.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - string: The stored token
		  - error: apperr.NotFound when the slot is absent or expired
	*/
	Find(context context.Context, userID string) (string, error)

	/*
		Delete removes the slot (logout/revocation). Deleting an absent slot
		is not an error.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - error: Persistence failures
	*/
	Delete(context context.Context, userID string) error

	/*
		Update replaces the slot with a new token and refreshes the TTL.

		After Update completes the old token is unconditionally invalid and the
		new token is valid. Implementations should use a single atomic
		set-with-TTL; a delete-then-save fallback leaves a narrow window where
		a concurrent Find observes absence.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - newToken: string
		  - ttl: time.Duration

		Returns:
		  - error: Persistence failures
	*/
	Update(context context.Context, userID, newToken string, ttl time.Duration) error
}
