// Copyright (c) 2026 Planora. All rights reserved.

/*
Package sec provides cryptographic primitives and token management.

It isolates security-sensitive code (Hashing, JWT Signing) from the domain
logic. It acts as an Infrastructure service injected into the Application
layer via small interfaces defined at the consumer side.

Components:

  - SigningContext: immutable process-wide signing configuration.
  - TokenService: HMAC-SHA256 JWT issuance and validation.
  - Password hashing (bcrypt) and opaque random codes.
*/
package sec

import (
	"encoding/base64"
	"fmt"
	"time"
)

// SigningContext holds the process-wide token signing configuration.
//
// # Concurrency
//
// It is constructed once at startup from environment configuration and never
// mutated afterwards, which makes unsynchronized concurrent reads safe. No
// component may alter the key or the TTLs after construction.
type SigningContext struct {
	key        []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewSigningContext decodes the base64-encoded symmetric secret and binds it
// to the issuer and token lifetimes.
//
// # Parameters
//   - base64Secret: The HMAC key, base64 (std encoding) as stored in config.
//   - issuer: The 'iss' claim stamped on and required from every token.
//   - accessTTL: Lifetime of access tokens.
//   - refreshTTL: Lifetime of refresh tokens and of the Redis session slot.
//
// # Returns
//   - SigningContext: Immutable signing configuration.
//   - error: Secret decoding failures (startup-fatal).
func NewSigningContext(base64Secret, issuer string, accessTTL, refreshTTL time.Duration) (SigningContext, error) {
	key, err := base64.StdEncoding.DecodeString(base64Secret)
	if err != nil {
		return SigningContext{}, fmt.Errorf("sec: failed to decode signing secret: %w", err)
	}

	if len(key) == 0 {
		return SigningContext{}, fmt.Errorf("sec: signing secret is empty")
	}

	return SigningContext{
		key:        key,
		issuer:     issuer,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}, nil
}

// Issuer returns the configured 'iss' claim value.
func (c SigningContext) Issuer() string { return c.issuer }

// AccessTTL returns the configured access-token lifetime.
func (c SigningContext) AccessTTL() time.Duration { return c.accessTTL }

// RefreshTTL returns the configured refresh-token lifetime.
func (c SigningContext) RefreshTTL() time.Duration { return c.refreshTTL }
