// Copyright (c) 2026 Planora. All rights reserved.

package marker

import (
	"context"

	"github.com/planora/planora/internal/trips/plan"
)

// Repository defines the persistence contract for markers.
type Repository interface {
	// Create inserts a new marker row.
	Create(context context.Context, marker *Marker) error

	// FindByID retrieves a marker by primary key.
	FindByID(context context.Context, id string) (*Marker, error)

	// ListByPlan returns every marker in a plan, oldest first. Maps render
	// all pins at once, so there is no pagination here.
	ListByPlan(context context.Context, planID string) ([]*Marker, error)

	// Update persists mutable marker fields.
	Update(context context.Context, marker *Marker) error

	// Delete hard-deletes a marker row.
	Delete(context context.Context, id string) error
}

// PlanGuard supplies the plan metadata and roster the service needs for
// authorization checks. The plan module's repository satisfies it.
type PlanGuard interface {
	FindByID(context context.Context, planID string) (*plan.Plan, error)
	ListMembers(context context.Context, planID string) ([]*plan.Member, error)
}
