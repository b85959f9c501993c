// Copyright (c) 2026 Planora. All rights reserved.

package sec

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/planora/planora/internal/platform/apperr"
	"github.com/planora/planora/internal/platform/constants"
	"github.com/planora/planora/pkg/uuid"
)

// # Token Types

const (
	// TokenTypeAccess marks a short-lived credential for a single request window.
	TokenTypeAccess = "access"

	// TokenTypeRefresh marks the long-lived credential used to obtain new pairs.
	TokenTypeRefresh = "refresh"
)

// TokenClaims represents the payload embedded inside a Planora JWT.
//
// # Why a redundant id claim?
//
// Access tokens duplicate the subject into an explicit 'id' claim so that the
// [middleware.Authenticate] path can reconstruct the active user context
// WITHOUT querying the database on every single API request. Refresh tokens
// omit it; they are only ever exchanged at the reissue endpoint.
type TokenClaims struct {
	jwt.RegisteredClaims

	// TokenType discriminates access from refresh tokens ("access"|"refresh").
	TokenType string `json:"typ"`

	// UserID mirrors the subject on access tokens. Empty on refresh tokens.
	UserID string `json:"id,omitempty"`
}

// TokenService handles generation and verification of JWT tokens using HS256.
//
// # Statelessness
//
// Access-token validation consults no server-side state; only refresh tokens
// touch the shared Redis slot (for revocation), and that lookup lives in the
// auth service, not here.
type TokenService struct {
	signing SigningContext
}

// NewTokenService creates a new TokenService bound to the signing context.
func NewTokenService(signing SigningContext) *TokenService {
	return &TokenService{signing: signing}
}

// IssueAccessToken creates a signed access token for the given user.
//
// # Claims
//
// sub=userID, iss=issuer, iat=now, exp=now+accessTTL, jti=random UUID,
// typ="access", id=userID.
func (service *TokenService) IssueAccessToken(userID string) (string, error) {
	return service.issue(userID, TokenTypeAccess, userID, service.signing.accessTTL)
}

// IssueRefreshToken creates a signed refresh token for the given user.
//
// Same claim shape as access tokens with typ="refresh", exp=now+refreshTTL,
// and no duplicated id claim.
func (service *TokenService) IssueRefreshToken(userID string) (string, error) {
	return service.issue(userID, TokenTypeRefresh, "", service.signing.refreshTTL)
}

// issue signs a claim set with the symmetric key.
func (service *TokenService) issue(subject, tokenType, idClaim string, timeToLive time.Duration) (string, error) {
	currentTime := time.Now()
	claims := TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    service.signing.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
			ID:        uuid.New(),
		},
		TokenType: tokenType,
		UserID:    idClaim,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.signing.key)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// Parse checks the signature, structure, and expiry of a JWT string.
//
// # Returns
//   - *TokenClaims: The decoded claim set on success.
//   - error: Signature mismatch, malformed structure, or expiry. This is the
//     only accessor that propagates the underlying parse error; the boolean
//     predicates below coerce every failure to false.
func (service *TokenService) Parse(tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.signing.key, nil
	})

	if err != nil {
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("sec: invalid token claims")
	}

	return claims, nil
}

// IsAccessToken reports whether the token is a valid access token issued by
// this process's issuer. It never returns an error: any validation failure
// yields false.
func (service *TokenService) IsAccessToken(tokenString string) bool {
	return service.isTokenOfType(tokenString, TokenTypeAccess)
}

// IsRefreshToken reports whether the token is a valid refresh token issued by
// this process's issuer. It never returns an error: any validation failure
// yields false.
func (service *TokenService) IsRefreshToken(tokenString string) bool {
	return service.isTokenOfType(tokenString, TokenTypeRefresh)
}

// isTokenOfType validates and checks the typ and iss claims.
func (service *TokenService) isTokenOfType(tokenString, tokenType string) bool {
	claims, err := service.Parse(tokenString)
	if err != nil {
		return false
	}
	return claims.TokenType == tokenType && claims.Issuer == service.signing.issuer
}

// ExtractUserID resolves the authenticated user ID from a raw Authorization
// header value.
//
// # Flow
//  1. The header must start with the literal "Bearer " prefix (case-sensitive).
//  2. The prefix is stripped and surrounding whitespace removed.
//  3. A blank remainder or a token failing [IsAccessToken] is rejected.
//  4. The 'id' claim (falling back to 'sub') is returned.
//
// # Returns
//   - string: The authenticated user ID.
//   - error: apperr.Unauthorized on any missing/malformed credential.
func (service *TokenService) ExtractUserID(authorizationHeader string) (string, error) {
	if !strings.HasPrefix(authorizationHeader, constants.BearerPrefix) {
		return "", apperr.Unauthorized("Missing or malformed authorization header")
	}

	tokenString := strings.TrimSpace(strings.TrimPrefix(authorizationHeader, constants.BearerPrefix))
	if tokenString == "" {
		return "", apperr.Unauthorized("Missing or malformed authorization header")
	}

	if !service.IsAccessToken(tokenString) {
		return "", apperr.Unauthorized("Invalid or expired access token")
	}

	claims, err := service.Parse(tokenString)
	if err != nil {
		return "", apperr.Unauthorized("Invalid or expired access token")
	}

	if claims.UserID != "" {
		return claims.UserID, nil
	}
	return claims.Subject, nil
}
