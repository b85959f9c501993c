// Copyright (c) 2026 Planora. All rights reserved.

package expense

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/planora/planora/internal/platform/apperr"
	"github.com/planora/planora/internal/platform/ctxutil"
	"github.com/planora/planora/internal/trips/access"
	"github.com/planora/planora/internal/trips/plan"
	"github.com/planora/planora/pkg/pagination"
	"github.com/planora/planora/pkg/uuid"
)

// Service implements expense use cases under the plan authorization policy.
type Service struct {
	repository Repository
	plans      PlanGuard
}

// NewService constructs a new expense [Service] with necessary dependencies.
func NewService(repository Repository, plans PlanGuard) *Service {
	return &Service{repository: repository, plans: plans}
}

// accessMembers converts roster rows into the shared predicate shape.
func accessMembers(members []*plan.Member) []access.Member {
	converted := make([]access.Member, 0, len(members))
	for _, member := range members {
		converted = append(converted, access.Member{UserID: member.UserID, Role: member.Role})
	}
	return converted
}

// guard fetches the target plan's policy inputs fresh for one check.
func (service *Service) guard(context context.Context, planID string) (access.Visibility, []access.Member, error) {
	target, err := service.plans.FindByID(context, planID)
	if err != nil {
		return "", nil, err
	}
	roster, err := service.plans.ListMembers(context, planID)
	if err != nil {
		return "", nil, err
	}
	return target.Visibility, accessMembers(roster), nil
}

// Input holds the writable expense fields.
type Input struct {
	Title    string
	Amount   int64
	Category string
	Day      int
}

/*
Create records a new expense in a plan.

Description: Requires write permission on the plan (OWNER or MEMBER).

Parameters:
  - context: context.Context
  - userID: string
  - planID: string
  - input: Input

Returns:
  - *Expense: Created entity
  - error: apperr.NotFound, apperr.Forbidden, or persistence failures
*/
func (service *Service) Create(context context.Context, userID, planID string, input Input) (*Expense, error) {
	_, members, err := service.guard(context, planID)
	if err != nil {
		return nil, err
	}
	if !access.CanWrite(userID, members) {
		return nil, apperr.Forbidden("You do not have permission to add expenses to this plan")
	}

	expense := &Expense{
		ID:       uuid.New(),
		PlanID:   planID,
		Title:    input.Title,
		Amount:   input.Amount,
		Category: input.Category,
		Day:      input.Day,
	}

	if err := service.repository.Create(context, expense); err != nil {
		return nil, fmt.Errorf("expense_service_create_failed: %w", err)
	}

	ctxutil.GetLogger(context).Info("expense_created",
		slog.String("plan_id", planID),
		slog.String("expense_id", expense.ID),
	)
	return expense, nil
}

/*
List returns a plan's expenses with pagination metadata.

Description: Requires read permission under the plan's visibility policy.

Parameters:
  - context: context.Context
  - userID: string
  - planID: string
  - params: pagination.Params

Returns:
  - []*Expense: Page of expenses
  - pagination.Meta: Total/page metadata
  - error: apperr.NotFound, apperr.Forbidden, or retrieval failures
*/
func (service *Service) List(context context.Context, userID, planID string, params pagination.Params) ([]*Expense, pagination.Meta, error) {
	visibility, members, err := service.guard(context, planID)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	if !access.CanRead(visibility, userID, members) {
		return nil, pagination.Meta{}, apperr.Forbidden("You do not have access to this plan's expenses")
	}

	expenses, total, err := service.repository.ListByPlan(context, planID, params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("expense_service_list_failed: %w", err)
	}
	return expenses, pagination.NewMeta(params.Page, params.Limit, total), nil
}

/*
Summary aggregates a plan's spend per category.

Parameters:
  - context: context.Context
  - userID: string
  - planID: string

Returns:
  - []*CategoryTotal: Totals ordered by descending spend
  - error: apperr.NotFound, apperr.Forbidden, or retrieval failures
*/
func (service *Service) Summary(context context.Context, userID, planID string) ([]*CategoryTotal, error) {
	visibility, members, err := service.guard(context, planID)
	if err != nil {
		return nil, err
	}
	if !access.CanRead(visibility, userID, members) {
		return nil, apperr.Forbidden("You do not have access to this plan's expenses")
	}

	totals, err := service.repository.SummarizeByCategory(context, planID)
	if err != nil {
		return nil, fmt.Errorf("expense_service_summary_failed: %w", err)
	}
	return totals, nil
}

/*
Update modifies an existing expense.

Description: The expense's plan is resolved from storage, never from the
request, so a caller cannot smuggle an expense across plans.

Parameters:
  - context: context.Context
  - userID: string
  - expenseID: string
  - input: Input

Returns:
  - *Expense: Updated entity
  - error: apperr.NotFound, apperr.Forbidden, or persistence failures
*/
func (service *Service) Update(context context.Context, userID, expenseID string, input Input) (*Expense, error) {
	expense, err := service.repository.FindByID(context, expenseID)
	if err != nil {
		return nil, err
	}

	_, members, err := service.guard(context, expense.PlanID)
	if err != nil {
		return nil, err
	}
	if !access.CanWrite(userID, members) {
		return nil, apperr.Forbidden("You do not have permission to modify this expense")
	}

	expense.Title = input.Title
	expense.Amount = input.Amount
	expense.Category = input.Category
	expense.Day = input.Day

	if err := service.repository.Update(context, expense); err != nil {
		return nil, fmt.Errorf("expense_service_update_failed: %w", err)
	}
	return expense, nil
}

/*
Delete removes an expense.

Parameters:
  - context: context.Context
  - userID: string
  - expenseID: string

Returns:
  - error: apperr.NotFound, apperr.Forbidden, or persistence failures
*/
func (service *Service) Delete(context context.Context, userID, expenseID string) error {
	expense, err := service.repository.FindByID(context, expenseID)
	if err != nil {
		return err
	}

	_, members, err := service.guard(context, expense.PlanID)
	if err != nil {
		return err
	}
	if !access.CanWrite(userID, members) {
		return apperr.Forbidden("You do not have permission to delete this expense")
	}

	if err := service.repository.Delete(context, expenseID); err != nil {
		return fmt.Errorf("expense_service_delete_failed: %w", err)
	}
	return nil
}
