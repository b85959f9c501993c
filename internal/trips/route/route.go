// Copyright (c) 2026 Planora. All rights reserved.

/*
Package route implements per-day itinerary routes for a plan.

A route is the ordered list of waypoints for one plan day. Routes are not
edited point by point: the client always submits the full list for a day and
the previous list is replaced wholesale, keeping positions contiguous from 1.
*/
package route

import "time"

// Waypoint is one ordered stop in a day's route.
type Waypoint struct {
	ID        string    `json:"id"`
	PlanID    string    `json:"plan_id"`
	Day       int       `json:"day"`
	Position  int       `json:"position"`
	Name      string    `json:"name"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	CreatedAt time.Time `json:"created_at"`
}

// MaxWaypointsPerDay bounds a single day's route length.
const MaxWaypointsPerDay = 50

// Standardized field names for validation errors and API payloads.
const (
	FieldDay       = "day"
	FieldWaypoints = "waypoints"
	FieldName      = "name"
	FieldLatitude  = "latitude"
	FieldLongitude = "longitude"
)
