// Copyright (c) 2026 Planora. All rights reserved.

// Package marker implements map markers pinned to a plan.
package marker

import "time"

// Marker is a single map pin within a plan.
type Marker struct {
	ID        string    `json:"id"`
	PlanID    string    `json:"plan_id"`
	Name      string    `json:"name"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Color     string    `json:"color"`
	Icon      string    `json:"icon"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Standardized field names for validation errors and API payloads.
const (
	FieldName      = "name"
	FieldLatitude  = "latitude"
	FieldLongitude = "longitude"
	FieldColor     = "color"
	FieldIcon      = "icon"
)
