// Copyright (c) 2026 Planora. All rights reserved.

/*
Package expense implements shared trip expenses scoped to a plan.

Amounts are stored in minor currency units (e.g. cents, yen) as integers;
the API never deals in floating-point money.
*/
package expense

import "time"

// Expense is a single spend entry within a plan.
type Expense struct {
	ID        string    `json:"id"`
	PlanID    string    `json:"plan_id"`
	Title     string    `json:"title"`
	Amount    int64     `json:"amount"`
	Category  string    `json:"category"`
	Day       int       `json:"day"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CategoryTotal is one row of a plan's spend summary.
type CategoryTotal struct {
	Category string `json:"category"`
	Total    int64  `json:"total"`
}

// Standardized field names for validation errors and API payloads.
const (
	FieldTitle    = "title"
	FieldAmount   = "amount"
	FieldCategory = "category"
	FieldDay      = "day"
)
