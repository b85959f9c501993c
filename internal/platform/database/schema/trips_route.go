// Copyright (c) 2026 Planora. All rights reserved.

package schema

// TripRouteTable represents the 'trips.routewaypoint' table.
//
// Waypoints are ordered per (planid, day); the position column is contiguous
// starting at 1 and is rewritten wholesale on every route update.
type TripRouteTable struct {
	Table     string
	ID        string
	PlanID    string
	Day       string
	Position  string
	Name      string
	Latitude  string
	Longitude string
	CreatedAt string
}

// TripRoute is the schema definition for trips.routewaypoint
var TripRoute = TripRouteTable{
	Table:     "trips.routewaypoint",
	ID:        "id",
	PlanID:    "planid",
	Day:       "day",
	Position:  "position",
	Name:      "name",
	Latitude:  "latitude",
	Longitude: "longitude",
	CreatedAt: "createdat",
}
