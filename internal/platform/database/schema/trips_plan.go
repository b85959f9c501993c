// Copyright (c) 2026 Planora. All rights reserved.

package schema

// TripPlanTable represents the 'trips.plan' table
type TripPlanTable struct {
	Table      string
	ID         string
	Name       string
	Visibility string
	StartDate  string
	EndDate    string
	CreatorID  string
	CreatedAt  string
	UpdatedAt  string
	DeletedAt  string
}

// TripPlan is the schema definition for trips.plan
var TripPlan = TripPlanTable{
	Table:      "trips.plan",
	ID:         "id",
	Name:       "name",
	Visibility: "visibility",
	StartDate:  "startdate",
	EndDate:    "enddate",
	CreatorID:  "creatorid",
	CreatedAt:  "createdat",
	UpdatedAt:  "updatedat",
	DeletedAt:  "deletedat",
}
