// Copyright (c) 2026 Planora. All rights reserved.

package schema

// TripPlaceTable represents the 'trips.place' table (saved places per plan)
type TripPlaceTable struct {
	Table     string
	ID        string
	PlanID    string
	Name      string
	Address   string
	Latitude  string
	Longitude string
	Memo      string
	CreatedAt string
	UpdatedAt string
}

// TripPlace is the schema definition for trips.place
var TripPlace = TripPlaceTable{
	Table:     "trips.place",
	ID:        "id",
	PlanID:    "planid",
	Name:      "name",
	Address:   "address",
	Latitude:  "latitude",
	Longitude: "longitude",
	Memo:      "memo",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}
