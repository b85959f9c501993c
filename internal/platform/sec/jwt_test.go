// Copyright (c) 2026 Planora. All rights reserved.

package sec_test

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planora/planora/internal/platform/constants"
	"github.com/planora/planora/internal/platform/sec"
)

func newTestTokenService(t *testing.T, accessTTL, refreshTTL time.Duration) *sec.TokenService {
	t.Helper()

	secret := base64.StdEncoding.EncodeToString([]byte("jwt-signing-secret-for-tests-01"))
	signing, err := sec.NewSigningContext(secret, constants.AuthIssuer, accessTTL, refreshTTL)
	require.NoError(t, err)

	return sec.NewTokenService(signing)
}

/*
TestNewSigningContext tests secret decoding and rejection of unusable keys.
*/
func TestNewSigningContext(t *testing.T) {
	tests := []struct {
		name    string
		secret  string
		wantErr bool
	}{
		{"valid_base64", base64.StdEncoding.EncodeToString([]byte("some-key")), false},
		{"not_base64", "%%%not-base64%%%", true},
		{"empty_secret", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sec.NewSigningContext(tt.secret, constants.AuthIssuer, time.Minute, time.Hour)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

/*
TestTokenService_IssueAndParse tests the issue/parse round trip for both token types.
*/
func TestTokenService_IssueAndParse(t *testing.T) {
	service := newTestTokenService(t, 30*time.Minute, 14*24*time.Hour)

	accessToken, err := service.IssueAccessToken("user-42")
	require.NoError(t, err)

	claims, err := service.Parse(accessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-42", claims.Subject)
	assert.Equal(t, "user-42", claims.UserID)
	assert.Equal(t, sec.TokenTypeAccess, claims.TokenType)
	assert.Equal(t, constants.AuthIssuer, claims.Issuer)
	assert.NotEmpty(t, claims.ID)

	refreshToken, err := service.IssueRefreshToken("user-42")
	require.NoError(t, err)

	claims, err = service.Parse(refreshToken)
	require.NoError(t, err)
	assert.Equal(t, "user-42", claims.Subject)
	assert.Equal(t, sec.TokenTypeRefresh, claims.TokenType)
}

/*
TestTokenService_TypePredicates tests that access/refresh classification is strict.
*/
func TestTokenService_TypePredicates(t *testing.T) {
	service := newTestTokenService(t, 30*time.Minute, 14*24*time.Hour)

	accessToken, err := service.IssueAccessToken("user-42")
	require.NoError(t, err)
	refreshToken, err := service.IssueRefreshToken("user-42")
	require.NoError(t, err)

	assert.True(t, service.IsAccessToken(accessToken))
	assert.False(t, service.IsRefreshToken(accessToken))

	assert.True(t, service.IsRefreshToken(refreshToken))
	assert.False(t, service.IsAccessToken(refreshToken))

	// Predicates never panic or error on garbage
	assert.False(t, service.IsAccessToken("not.a.token"))
	assert.False(t, service.IsRefreshToken(""))
}

/*
TestTokenService_TamperedToken tests signature enforcement.
*/
func TestTokenService_TamperedToken(t *testing.T) {
	service := newTestTokenService(t, 30*time.Minute, 14*24*time.Hour)

	token, err := service.IssueAccessToken("user-42")
	require.NoError(t, err)

	// Extend the signature segment so it no longer verifies
	tampered := token + "xx"

	_, err = service.Parse(tampered)
	assert.Error(t, err)
	assert.False(t, service.IsAccessToken(tampered))
}

/*
TestTokenService_Expiry tests that expired tokens are rejected.
*/
func TestTokenService_Expiry(t *testing.T) {
	service := newTestTokenService(t, time.Second, time.Second)

	token, err := service.IssueAccessToken("user-42")
	require.NoError(t, err)
	assert.True(t, service.IsAccessToken(token))

	time.Sleep(1100 * time.Millisecond)

	_, err = service.Parse(token)
	assert.Error(t, err)
	assert.False(t, service.IsAccessToken(token))
}

/*
TestTokenService_IssuerMismatch tests that foreign issuers are refused.
*/
func TestTokenService_IssuerMismatch(t *testing.T) {
	secret := base64.StdEncoding.EncodeToString([]byte("jwt-signing-secret-for-tests-01"))

	foreignSigning, err := sec.NewSigningContext(secret, "someone-else.example", time.Minute, time.Hour)
	require.NoError(t, err)
	foreign := sec.NewTokenService(foreignSigning)

	token, err := foreign.IssueAccessToken("user-42")
	require.NoError(t, err)

	// Same key, wrong issuer: signature verifies but classification fails
	service := newTestTokenService(t, time.Minute, time.Hour)
	assert.False(t, service.IsAccessToken(token))
}

/*
TestTokenService_ExtractUserID tests Authorization header parsing rules.
*/
func TestTokenService_ExtractUserID(t *testing.T) {
	service := newTestTokenService(t, 30*time.Minute, 14*24*time.Hour)

	accessToken, err := service.IssueAccessToken("user-42")
	require.NoError(t, err)
	refreshToken, err := service.IssueRefreshToken("user-42")
	require.NoError(t, err)

	userID, err := service.ExtractUserID(constants.BearerPrefix + accessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-42", userID)

	// Surrounding whitespace after the prefix is tolerated
	userID, err = service.ExtractUserID(constants.BearerPrefix + "  " + accessToken + "  ")
	require.NoError(t, err)
	assert.Equal(t, "user-42", userID)

	tests := []struct {
		name   string
		header string
	}{
		{"empty_header", ""},
		{"missing_prefix", accessToken},
		{"lowercase_prefix", "bearer " + accessToken},
		{"prefix_only", strings.TrimSuffix(constants.BearerPrefix, " ")},
		{"blank_token", constants.BearerPrefix + "   "},
		{"refresh_token_rejected", constants.BearerPrefix + refreshToken},
		{"garbage_token", constants.BearerPrefix + "not.a.token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.ExtractUserID(tt.header)
			assert.Error(t, err)
		})
	}
}
