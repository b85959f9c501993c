// Copyright (c) 2026 Planora. All rights reserved.

/*
Package place implements saved places within a plan and the external
place-search integration used to find them.

Saved places are plan-scoped bookmarks with an optional free-form memo.
Search goes through a [SearchClient] so the upstream geocoding provider can
be swapped (or faked in tests) without touching the service.
*/
package place

import "time"

// Place is a saved location within a plan.
type Place struct {
	ID        string    `json:"id"`
	PlanID    string    `json:"plan_id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Memo      string    `json:"memo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SearchResult is one candidate returned by the search provider.
type SearchResult struct {
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Standardized field names for validation errors and API payloads.
const (
	FieldName      = "name"
	FieldAddress   = "address"
	FieldLatitude  = "latitude"
	FieldLongitude = "longitude"
	FieldMemo      = "memo"
	FieldQuery     = "query"
)
