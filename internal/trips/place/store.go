// Copyright (c) 2026 Planora. All rights reserved.

package place

import (
	"context"

	"github.com/planora/planora/internal/trips/plan"
)

// Repository defines the persistence contract for saved places.
type Repository interface {
	// Create inserts a new saved place row.
	Create(context context.Context, place *Place) error

	// FindByID retrieves a saved place by primary key.
	FindByID(context context.Context, id string) (*Place, error)

	// ListByPlan returns a plan's saved places, newest first.
	ListByPlan(context context.Context, planID string, limit, offset int) ([]*Place, int, error)

	// Update persists mutable place fields.
	Update(context context.Context, place *Place) error

	// Delete hard-deletes a saved place row.
	Delete(context context.Context, id string) error
}

// SearchClient queries the external place-search provider.
type SearchClient interface {
	/*
		Search returns location candidates for a free-text query.

		Parameters:
		  - context: context.Context
		  - query: string (already folded by the caller)
		  - limit: int

		Returns:
		  - []SearchResult: Candidates, best match first
		  - error: apperr.ServiceUnavailable when the provider is down
	*/
	Search(context context.Context, query string, limit int) ([]SearchResult, error)
}

// PlanGuard supplies the plan metadata and roster the service needs for
// authorization checks. The plan module's repository satisfies it.
type PlanGuard interface {
	FindByID(context context.Context, planID string) (*plan.Plan, error)
	ListMembers(context context.Context, planID string) ([]*plan.Member, error)
}
