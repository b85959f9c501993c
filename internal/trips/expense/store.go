// Copyright (c) 2026 Planora. All rights reserved.

package expense

import (
	"context"

	"github.com/planora/planora/internal/trips/plan"
)

// Repository defines the persistence contract for expenses.
type Repository interface {
	/*
		Create inserts a new expense row.

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, expense *Expense) error

	/*
		FindByID retrieves an expense by primary key.

		Returns:
		  - *Expense: Hydrated entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*Expense, error)

	/*
		ListByPlan returns a plan's expenses ordered by day then creation
		time, with total count for pagination metadata.
	*/
	ListByPlan(context context.Context, planID string, limit, offset int) ([]*Expense, int, error)

	/*
		SummarizeByCategory aggregates a plan's total spend per category.
	*/
	SummarizeByCategory(context context.Context, planID string) ([]*CategoryTotal, error)

	/*
		Update persists mutable expense fields.

		Returns:
		  - error: apperr.NotFound or storage failures
	*/
	Update(context context.Context, expense *Expense) error

	/*
		Delete hard-deletes an expense row.
	*/
	Delete(context context.Context, id string) error
}

// PlanGuard supplies the plan metadata and roster the service needs for
// authorization checks. The plan module's repository satisfies it.
type PlanGuard interface {
	FindByID(context context.Context, planID string) (*plan.Plan, error)
	ListMembers(context context.Context, planID string) ([]*plan.Member, error)
}
