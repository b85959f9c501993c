// Copyright (c) 2026 Planora. All rights reserved.

package schema

// TripPlanMemberTable represents the 'trips.planmember' table.
//
// A user holds at most one row per plan (unique (planid, userid)).
type TripPlanMemberTable struct {
	Table     string
	PlanID    string
	UserID    string
	Role      string
	CreatedAt string
}

// TripPlanMember is the schema definition for trips.planmember
var TripPlanMember = TripPlanMemberTable{
	Table:     "trips.planmember",
	PlanID:    "planid",
	UserID:    "userid",
	Role:      "role",
	CreatedAt: "createdat",
}
