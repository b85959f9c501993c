// Copyright (c) 2026 Planora. All rights reserved.

package place_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planora/planora/internal/platform/apperr"
	"github.com/planora/planora/internal/trips/place"
)

/*
TestFoldQuery tests accent removal and case folding.
*/
func TestFoldQuery(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain_ascii", "Kyoto Station", "kyoto station"},
		{"accents", "Café de la Überstraße", "cafe de la uberstraße"},
		{"surrounding_whitespace", "  Gion  ", "gion"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, place.FoldQuery(tt.input))
		})
	}
}

/*
TestHTTPSearchClient_Search tests the wire contract against a stub provider.
*/
func TestHTTPSearchClient_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v1/search", request.URL.Path)
		assert.Equal(t, "kinkaku-ji", request.URL.Query().Get("q"))
		assert.Equal(t, "10", request.URL.Query().Get("limit"))
		assert.Equal(t, "test-key", request.Header.Get("X-Api-Key"))

		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`{"results":[{"name":"Kinkaku-ji","address":"1 Kinkakujicho, Kyoto","latitude":35.0394,"longitude":135.7292}]}`))
	}))
	defer server.Close()

	client := place.NewHTTPSearchClient(server.URL, "test-key")

	results, err := client.Search(context.Background(), "kinkaku-ji", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Kinkaku-ji", results[0].Name)
	assert.InDelta(t, 35.0394, results[0].Latitude, 0.0001)
}

/*
TestHTTPSearchClient_ProviderDown tests the 503 mapping for upstream failures.
*/
func TestHTTPSearchClient_ProviderDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := place.NewHTTPSearchClient(server.URL, "")

	_, err := client.Search(context.Background(), "anything", 10)
	require.Error(t, err)
	assert.Equal(t, "SERVICE_UNAVAILABLE", apperr.As(err).Code)

	// A dead endpoint maps the same way
	server.Close()
	_, err = client.Search(context.Background(), "anything", 10)
	require.Error(t, err)
	assert.Equal(t, "SERVICE_UNAVAILABLE", apperr.As(err).Code)
}
