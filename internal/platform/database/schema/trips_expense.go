// Copyright (c) 2026 Planora. All rights reserved.

package schema

// TripExpenseTable represents the 'trips.expense' table
type TripExpenseTable struct {
	Table     string
	ID        string
	PlanID    string
	Title     string
	Amount    string
	Category  string
	Day       string
	CreatedAt string
	UpdatedAt string
}

// TripExpense is the schema definition for trips.expense
var TripExpense = TripExpenseTable{
	Table:     "trips.expense",
	ID:        "id",
	PlanID:    "planid",
	Title:     "title",
	Amount:    "amount",
	Category:  "category",
	Day:       "day",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}
