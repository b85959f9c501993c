// Copyright (c) 2026 Planora. All rights reserved.

package marker_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planora/planora/internal/platform/apperr"
	"github.com/planora/planora/internal/trips/access"
	"github.com/planora/planora/internal/trips/marker"
	"github.com/planora/planora/internal/trips/plan"
)

// # Test Doubles

type fakePlanGuard struct {
	visibility access.Visibility
	roster     []*plan.Member
}

func (guard *fakePlanGuard) FindByID(_ context.Context, planID string) (*plan.Plan, error) {
	if planID != "plan-1" {
		return nil, apperr.NotFound("Plan")
	}
	return &plan.Plan{ID: "plan-1", Visibility: guard.visibility}, nil
}

func (guard *fakePlanGuard) ListMembers(_ context.Context, _ string) ([]*plan.Member, error) {
	return guard.roster, nil
}

type fakeRepository struct {
	markers map[string]*marker.Marker
}

func (repo *fakeRepository) Create(_ context.Context, m *marker.Marker) error {
	copied := *m
	repo.markers[m.ID] = &copied
	return nil
}

func (repo *fakeRepository) FindByID(_ context.Context, id string) (*marker.Marker, error) {
	if m, ok := repo.markers[id]; ok {
		copied := *m
		return &copied, nil
	}
	return nil, apperr.NotFound("Marker")
}

func (repo *fakeRepository) ListByPlan(_ context.Context, planID string) ([]*marker.Marker, error) {
	var result []*marker.Marker
	for _, m := range repo.markers {
		if m.PlanID == planID {
			copied := *m
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (repo *fakeRepository) Update(_ context.Context, m *marker.Marker) error {
	if _, ok := repo.markers[m.ID]; !ok {
		return apperr.NotFound("Marker")
	}
	copied := *m
	repo.markers[m.ID] = &copied
	return nil
}

func (repo *fakeRepository) Delete(_ context.Context, id string) error {
	delete(repo.markers, id)
	return nil
}

func newTestService(visibility access.Visibility) *marker.Service {
	guard := &fakePlanGuard{
		visibility: visibility,
		roster: []*plan.Member{
			{PlanID: "plan-1", UserID: "owner-1", Role: access.RoleOwner},
			{PlanID: "plan-1", UserID: "member-1", Role: access.RoleMember},
			{PlanID: "plan-1", UserID: "pariah", Role: access.RoleBlocked},
		},
	}
	return marker.NewService(&fakeRepository{markers: map[string]*marker.Marker{}}, guard)
}

var testInput = marker.Input{
	Name:      "Fushimi Inari",
	Latitude:  34.9671,
	Longitude: 135.7727,
	Color:     "#2ed573",
	Icon:      "shrine",
}

// # Tests

/*
TestService_Create tests write gating and the default color fallback.
*/
func TestService_Create(t *testing.T) {
	service := newTestService(access.VisibilityPrivate)
	ctx := context.Background()

	created, err := service.Create(ctx, "member-1", "plan-1", testInput)
	require.NoError(t, err)
	assert.Equal(t, "#2ed573", created.Color)

	// Color defaults when omitted
	noColor := testInput
	noColor.Color = ""
	created, err = service.Create(ctx, "owner-1", "plan-1", noColor)
	require.NoError(t, err)
	assert.Equal(t, marker.DefaultColor, created.Color)

	_, err = service.Create(ctx, "stranger", "plan-1", testInput)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
}

/*
TestService_List tests the visibility policy on marker reads.
*/
func TestService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("public_plan", func(t *testing.T) {
		service := newTestService(access.VisibilityPublic)
		_, err := service.Create(ctx, "owner-1", "plan-1", testInput)
		require.NoError(t, err)

		markers, err := service.List(ctx, "stranger", "plan-1")
		require.NoError(t, err)
		assert.Len(t, markers, 1)

		_, err = service.List(ctx, "pariah", "plan-1")
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
	})

	t.Run("private_plan", func(t *testing.T) {
		service := newTestService(access.VisibilityPrivate)

		_, err := service.List(ctx, "stranger", "plan-1")
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
	})
}

/*
TestService_UpdateAndDelete tests mutations through the stored plan binding.
*/
func TestService_UpdateAndDelete(t *testing.T) {
	service := newTestService(access.VisibilityPrivate)
	ctx := context.Background()

	created, err := service.Create(ctx, "owner-1", "plan-1", testInput)
	require.NoError(t, err)

	moved := testInput
	moved.Name = "Kinkaku-ji"
	moved.Color = "" // keep the existing color

	updated, err := service.Update(ctx, "member-1", created.ID, moved)
	require.NoError(t, err)
	assert.Equal(t, "Kinkaku-ji", updated.Name)
	assert.Equal(t, "#2ed573", updated.Color)

	_, err = service.Update(ctx, "stranger", created.ID, moved)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	require.NoError(t, service.Delete(ctx, "owner-1", created.ID))
	err = service.Delete(ctx, "owner-1", created.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}
