// Copyright (c) 2026 Planora. All rights reserved.

package schema

// TripMarkerTable represents the 'trips.marker' table
type TripMarkerTable struct {
	Table     string
	ID        string
	PlanID    string
	Name      string
	Latitude  string
	Longitude string
	Color     string
	Icon      string
	CreatedAt string
	UpdatedAt string
}

// TripMarker is the schema definition for trips.marker
var TripMarker = TripMarkerTable{
	Table:     "trips.marker",
	ID:        "id",
	PlanID:    "planid",
	Name:      "name",
	Latitude:  "latitude",
	Longitude: "longitude",
	Color:     "color",
	Icon:      "icon",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}
