// Copyright (c) 2026 Planora. All rights reserved.

/*
Package auth implements the user identity and session management layer.

It defines the core domain entity (User) and the logic for signup, login,
token reissue, logout, and account withdrawal.

# Architecture

This layer is the "Truth" of the identity subsystem. The entity defined here
has no external dependencies and encapsulates all business rules related to
user identity. Session state lives in a single Redis slot per user; access
tokens are stateless.
*/
package auth

import "time"

// # Domain Entities

// UserStatus is the lifecycle state of an account.
type UserStatus string

const (
	// StatusActive is the normal state of a registered account.
	StatusActive UserStatus = "ACTIVE"

	// StatusWithdrawn marks a closed account. The transition ACTIVE→WITHDRAWN
	// is terminal; no further transition is modeled.
	StatusWithdrawn UserStatus = "WITHDRAWN"
)

// User represents a registered member of the Planora platform.
type User struct {
	ID           string     `json:"id"`
	LoginID      string     `json:"login_id"`
	PasswordHash string     `json:"-"` // Explicitly omitted from JSON for security.
	Nickname     string     `json:"nickname"`
	Status       UserStatus `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldLoginID      = "login_id"
	FieldPassword     = "password"
	FieldNickname     = "nickname"
	FieldRefreshToken = "refresh_token"
)
