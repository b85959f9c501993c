// Copyright (c) 2026 Planora. All rights reserved.

package place

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/planora/planora/internal/platform/apperr"
)

// searchTimeout bounds a single upstream search call.
const searchTimeout = 5 * time.Second

// FoldQuery normalizes a free-text search query for the upstream provider.
//
// # Transformation Pipeline
//
// 1. Normalizes to NFD (decomposes accented chars: é → e + combining acute).
// 2. Removes combining marks (accents).
// 3. Converts to lowercase and collapses surrounding whitespace.
//
// Folding on our side keeps results stable across providers with inconsistent
// diacritic handling.
func FoldQuery(query string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn))
	folded, _, _ := transform.String(t, query)
	return strings.ToLower(strings.TrimSpace(folded))
}

// isMn reports whether the rune is a nonspacing combining mark.
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}

// HTTPSearchClient implements [SearchClient] against the Planora place-search
// HTTP API.
type HTTPSearchClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPSearchClient constructs a search client for the given provider.
func NewHTTPSearchClient(baseURL, apiKey string) *HTTPSearchClient {
	return &HTTPSearchClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: searchTimeout},
	}
}

// searchResponse mirrors the provider's wire format.
type searchResponse struct {
	Results []SearchResult `json:"results"`
}

/*
Search returns location candidates for a free-text query.

Description: Issues GET /v1/search against the provider with the folded
query. Transport failures and non-200 responses surface as 503 so clients
can distinguish provider downtime from their own bad input.

Parameters:
  - context: context.Context
  - query: string
  - limit: int

Returns:
  - []SearchResult: Candidates, best match first
  - error: apperr.ServiceUnavailable or decoding failures
*/
func (searchClient *HTTPSearchClient) Search(context context.Context, query string, limit int) ([]SearchResult, error) {
	endpoint := fmt.Sprintf("%s/v1/search?q=%s&limit=%s",
		searchClient.baseURL,
		url.QueryEscape(query),
		strconv.Itoa(limit),
	)

	request, err := http.NewRequestWithContext(context, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("place_search_request_failed: %w", err)
	}
	request.Header.Set("Accept", "application/json")
	if searchClient.apiKey != "" {
		request.Header.Set("X-Api-Key", searchClient.apiKey)
	}

	response, err := searchClient.client.Do(request)
	if err != nil {
		return nil, apperr.ServiceUnavailable("Place search is temporarily unavailable")
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, apperr.ServiceUnavailable("Place search is temporarily unavailable")
	}

	var decoded searchResponse
	if err := json.NewDecoder(response.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("place_search_decode_failed: %w", err)
	}

	return decoded.Results, nil
}
