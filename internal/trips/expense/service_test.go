// Copyright (c) 2026 Planora. All rights reserved.

package expense_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planora/planora/internal/platform/apperr"
	"github.com/planora/planora/internal/trips/access"
	"github.com/planora/planora/internal/trips/expense"
	"github.com/planora/planora/internal/trips/plan"
	"github.com/planora/planora/pkg/pagination"
)

// # Test Doubles

// fakePlanGuard serves fixed plan metadata and rosters.
type fakePlanGuard struct {
	plans   map[string]*plan.Plan
	rosters map[string][]*plan.Member
}

func (guard *fakePlanGuard) FindByID(_ context.Context, planID string) (*plan.Plan, error) {
	if p, ok := guard.plans[planID]; ok {
		return p, nil
	}
	return nil, apperr.NotFound("Plan")
}

func (guard *fakePlanGuard) ListMembers(_ context.Context, planID string) ([]*plan.Member, error) {
	return guard.rosters[planID], nil
}

// fakeRepository is a map-backed stand-in for the Postgres repository.
type fakeRepository struct {
	expenses map[string]*expense.Expense
}

func (repo *fakeRepository) Create(_ context.Context, e *expense.Expense) error {
	copied := *e
	repo.expenses[e.ID] = &copied
	return nil
}

func (repo *fakeRepository) FindByID(_ context.Context, id string) (*expense.Expense, error) {
	if e, ok := repo.expenses[id]; ok {
		copied := *e
		return &copied, nil
	}
	return nil, apperr.NotFound("Expense")
}

func (repo *fakeRepository) ListByPlan(_ context.Context, planID string, limit, offset int) ([]*expense.Expense, int, error) {
	var result []*expense.Expense
	for _, e := range repo.expenses {
		if e.PlanID == planID {
			copied := *e
			result = append(result, &copied)
		}
	}
	return result, len(result), nil
}

func (repo *fakeRepository) SummarizeByCategory(_ context.Context, planID string) ([]*expense.CategoryTotal, error) {
	totals := map[string]int64{}
	for _, e := range repo.expenses {
		if e.PlanID == planID {
			totals[e.Category] += e.Amount
		}
	}
	var result []*expense.CategoryTotal
	for category, total := range totals {
		result = append(result, &expense.CategoryTotal{Category: category, Total: total})
	}
	return result, nil
}

func (repo *fakeRepository) Update(_ context.Context, e *expense.Expense) error {
	if _, ok := repo.expenses[e.ID]; !ok {
		return apperr.NotFound("Expense")
	}
	copied := *e
	repo.expenses[e.ID] = &copied
	return nil
}

func (repo *fakeRepository) Delete(_ context.Context, id string) error {
	delete(repo.expenses, id)
	return nil
}

func newTestService(visibility access.Visibility) (*expense.Service, *fakeRepository) {
	guard := &fakePlanGuard{
		plans: map[string]*plan.Plan{
			"plan-1": {ID: "plan-1", Visibility: visibility, CreatorID: "owner-1"},
		},
		rosters: map[string][]*plan.Member{
			"plan-1": {
				{PlanID: "plan-1", UserID: "owner-1", Role: access.RoleOwner},
				{PlanID: "plan-1", UserID: "member-1", Role: access.RoleMember},
				{PlanID: "plan-1", UserID: "pariah", Role: access.RoleBlocked},
			},
		},
	}
	repo := &fakeRepository{expenses: map[string]*expense.Expense{}}
	return expense.NewService(repo, guard), repo
}

var testInput = expense.Input{Title: "Shinkansen tickets", Amount: 28400, Category: "transport", Day: 1}

// # Tests

/*
TestService_Create tests write gating on expense creation.
*/
func TestService_Create(t *testing.T) {
	service, _ := newTestService(access.VisibilityPublic)
	ctx := context.Background()

	created, err := service.Create(ctx, "member-1", "plan-1", testInput)
	require.NoError(t, err)
	assert.Equal(t, "plan-1", created.PlanID)
	assert.EqualValues(t, 28400, created.Amount)

	// Strangers and blocked users cannot write, even on public plans
	for _, userID := range []string{"stranger", "pariah"} {
		_, err := service.Create(ctx, userID, "plan-1", testInput)
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
	}

	// Unknown plan
	_, err = service.Create(ctx, "owner-1", "missing", testInput)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

/*
TestService_List tests the visibility policy on expense reads.
*/
func TestService_List(t *testing.T) {
	ctx := context.Background()
	params := pagination.Params{Page: 1, Limit: 20}

	t.Run("public_plan", func(t *testing.T) {
		service, _ := newTestService(access.VisibilityPublic)
		_, err := service.Create(ctx, "owner-1", "plan-1", testInput)
		require.NoError(t, err)

		// Anyone not blocked can read
		expenses, meta, err := service.List(ctx, "stranger", "plan-1", params)
		require.NoError(t, err)
		assert.Len(t, expenses, 1)
		assert.Equal(t, 1, meta.Total)

		_, _, err = service.List(ctx, "pariah", "plan-1", params)
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
	})

	t.Run("private_plan", func(t *testing.T) {
		service, _ := newTestService(access.VisibilityPrivate)

		_, _, err := service.List(ctx, "member-1", "plan-1", params)
		assert.NoError(t, err)

		_, _, err = service.List(ctx, "stranger", "plan-1", params)
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
	})
}

/*
TestService_Summary tests per-category aggregation and its read gate.
*/
func TestService_Summary(t *testing.T) {
	service, _ := newTestService(access.VisibilityPrivate)
	ctx := context.Background()

	_, err := service.Create(ctx, "owner-1", "plan-1", testInput)
	require.NoError(t, err)
	_, err = service.Create(ctx, "owner-1", "plan-1", expense.Input{
		Title: "Ryokan night", Amount: 52000, Category: "lodging", Day: 2,
	})
	require.NoError(t, err)

	totals, err := service.Summary(ctx, "member-1", "plan-1")
	require.NoError(t, err)
	assert.Len(t, totals, 2)

	_, err = service.Summary(ctx, "stranger", "plan-1")
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
}

/*
TestService_UpdateAndDelete tests that authorization follows the stored plan.
*/
func TestService_UpdateAndDelete(t *testing.T) {
	service, _ := newTestService(access.VisibilityPrivate)
	ctx := context.Background()

	created, err := service.Create(ctx, "owner-1", "plan-1", testInput)
	require.NoError(t, err)

	updatedInput := testInput
	updatedInput.Amount = 30000

	updated, err := service.Update(ctx, "member-1", created.ID, updatedInput)
	require.NoError(t, err)
	assert.EqualValues(t, 30000, updated.Amount)

	_, err = service.Update(ctx, "stranger", created.ID, updatedInput)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	err = service.Delete(ctx, "stranger", created.ID)
	require.Error(t, err)

	require.NoError(t, service.Delete(ctx, "member-1", created.ID))
	_, err = service.Update(ctx, "member-1", created.ID, updatedInput)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}
