// Copyright (c) 2026 Planora. All rights reserved.

package middleware

import (
	"net/http"
	"strings"

	"github.com/planora/planora/internal/platform/apperr"
	"github.com/planora/planora/internal/platform/constants"
	"github.com/planora/planora/internal/platform/ctxutil"
	"github.com/planora/planora/internal/platform/respond"
	"github.com/planora/planora/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify tokens in middleware.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from the concrete
// [sec.TokenService], allowing us to easily inject mocks during unit testing.
type TokenVerifier interface {
	ExtractUserID(authorizationHeader string) (string, error)
	Parse(tokenString string) (*sec.TokenClaims, error)
}

// Authenticate extracts and verifies the access token from the Authorization header.
//
// # Flow
//  1. Check for 'Authorization: Bearer <token>' header.
//  2. If absent, request proceeds as anonymous.
//  3. If present, resolve the identity via [TokenVerifier.ExtractUserID],
//     which enforces the case-sensitive "Bearer " prefix and rejects
//     refresh tokens, foreign issuers, and expired credentials.
//  4. Inject [*sec.TokenClaims] into the request context for downstream use.
//
// Validation is pure and stateless: no server-side state is consulted for
// access tokens, so this path scales horizontally.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get(constants.HeaderAuthorization)

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Identity Extraction ────────────────────────────────────────
			if _, err := verifier.ExtractUserID(authHeader); err != nil {
				respond.Error(writer, request, err)
				return
			}

			// ── 3. Claim Decoding ─────────────────────────────────────────────
			tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, constants.BearerPrefix))
			claims, err := verifier.Parse(tokenString)
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired access token"))
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithAuthUser(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
//
// # Flow
//  1. Check if [*sec.TokenClaims] exists in context.
//  2. If missing, abort with HTTP 401 Unauthorized.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		claims := ctxutil.GetAuthUser(request.Context())
		if claims == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}
