// Copyright (c) 2026 Planora. All rights reserved.

package route

import (
	"context"

	"github.com/planora/planora/internal/trips/plan"
)

// Repository defines the persistence contract for route waypoints.
type Repository interface {
	/*
		ReplaceDay swaps a day's waypoint list atomically: the existing rows
		for (plan, day) are deleted and the given list inserted in one
		transaction. Positions must already be contiguous from 1.

		Parameters:
		  - context: context.Context
		  - planID: string
		  - day: int
		  - waypoints: []*Waypoint (may be empty to clear the day)

		Returns:
		  - error: Transactional or persistence failures
	*/
	ReplaceDay(context context.Context, planID string, day int, waypoints []*Waypoint) error

	/*
		ListByDay returns a single day's waypoints in position order.
	*/
	ListByDay(context context.Context, planID string, day int) ([]*Waypoint, error)

	/*
		ListByPlan returns every waypoint in a plan ordered by day, then
		position.
	*/
	ListByPlan(context context.Context, planID string) ([]*Waypoint, error)
}

// PlanGuard supplies the plan metadata and roster the service needs for
// authorization checks. The plan module's repository satisfies it.
type PlanGuard interface {
	FindByID(context context.Context, planID string) (*plan.Plan, error)
	ListMembers(context context.Context, planID string) ([]*plan.Member, error)
}
