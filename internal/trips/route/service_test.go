// Copyright (c) 2026 Planora. All rights reserved.

package route_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planora/planora/internal/platform/apperr"
	"github.com/planora/planora/internal/trips/access"
	"github.com/planora/planora/internal/trips/plan"
	"github.com/planora/planora/internal/trips/route"
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

type dayKey struct {
	planID string
	day    int
}

// fakeRepository keeps whole-day waypoint lists, mirroring the wholesale
// replacement contract.
type fakeRepository struct {
	days map[dayKey][]*route.Waypoint
}

func (repo *fakeRepository) ReplaceDay(_ context.Context, planID string, day int, waypoints []*route.Waypoint) error {
	stored := make([]*route.Waypoint, 0, len(waypoints))
	for _, waypoint := range waypoints {
		copied := *waypoint
		stored = append(stored, &copied)
	}
	repo.days[dayKey{planID, day}] = stored
	return nil
}

func (repo *fakeRepository) ListByDay(_ context.Context, planID string, day int) ([]*route.Waypoint, error) {
	return repo.days[dayKey{planID, day}], nil
}

func (repo *fakeRepository) ListByPlan(_ context.Context, planID string) ([]*route.Waypoint, error) {
	var all []*route.Waypoint
	for key, waypoints := range repo.days {
		if key.planID == planID {
			all = append(all, waypoints...)
		}
	}
	return all, nil
}

func newTestService(visibility access.Visibility) *route.Service {
	guard := &fakePlanGuard{
		visibility: visibility,
		roster: []*plan.Member{
			{PlanID: "plan-1", UserID: "owner-1", Role: access.RoleOwner},
			{PlanID: "plan-1", UserID: "member-1", Role: access.RoleMember},
			{PlanID: "plan-1", UserID: "pariah", Role: access.RoleBlocked},
		},
	}
	return route.NewService(&fakeRepository{days: map[dayKey][]*route.Waypoint{}}, guard)
}

var dayOne = []route.WaypointInput{
	{Name: "Nishiki Market", Latitude: 35.0051, Longitude: 135.7649},
	{Name: "Gion", Latitude: 35.0037, Longitude: 135.7780},
	{Name: "Kiyomizu-dera", Latitude: 34.9949, Longitude: 135.7850},
}

// # Tests

/*
TestService_ReplaceDay tests wholesale replacement and position assignment.
*/
func TestService_ReplaceDay(t *testing.T) {
	service := newTestService(access.VisibilityPrivate)
	ctx := context.Background()

	stored, err := service.ReplaceDay(ctx, "member-1", "plan-1", 1, dayOne)
	require.NoError(t, err)
	require.Len(t, stored, 3)

	// Positions are contiguous from 1 in submission order
	for index, waypoint := range stored {
		assert.Equal(t, index+1, waypoint.Position)
		assert.Equal(t, 1, waypoint.Day)
		assert.Equal(t, dayOne[index].Name, waypoint.Name)
		assert.NotEmpty(t, waypoint.ID)
	}

	// Resubmitting replaces, never appends
	shorter, err := service.ReplaceDay(ctx, "member-1", "plan-1", 1, dayOne[:1])
	require.NoError(t, err)
	require.Len(t, shorter, 1)

	current, err := service.GetDay(ctx, "member-1", "plan-1", 1)
	require.NoError(t, err)
	assert.Len(t, current, 1)

	// An empty submission clears the day
	_, err = service.ReplaceDay(ctx, "member-1", "plan-1", 1, nil)
	require.NoError(t, err)
	current, err = service.GetDay(ctx, "member-1", "plan-1", 1)
	require.NoError(t, err)
	assert.Empty(t, current)
}

/*
TestService_ReplaceDay_Authorization tests the write gate.
*/
func TestService_ReplaceDay_Authorization(t *testing.T) {
	service := newTestService(access.VisibilityPublic)
	ctx := context.Background()

	for _, userID := range []string{"stranger", "pariah"} {
		_, err := service.ReplaceDay(ctx, userID, "plan-1", 1, dayOne)
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
	}

	_, err := service.ReplaceDay(ctx, "owner-1", "missing", 1, dayOne)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

/*
TestService_Reads tests the visibility policy on route reads.
*/
func TestService_Reads(t *testing.T) {
	ctx := context.Background()

	t.Run("public_plan", func(t *testing.T) {
		service := newTestService(access.VisibilityPublic)
		_, err := service.ReplaceDay(ctx, "owner-1", "plan-1", 2, dayOne)
		require.NoError(t, err)

		waypoints, err := service.GetDay(ctx, "stranger", "plan-1", 2)
		require.NoError(t, err)
		assert.Len(t, waypoints, 3)

		all, err := service.GetAll(ctx, "stranger", "plan-1")
		require.NoError(t, err)
		assert.Len(t, all, 3)

		_, err = service.GetDay(ctx, "pariah", "plan-1", 2)
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
	})

	t.Run("private_plan", func(t *testing.T) {
		service := newTestService(access.VisibilityPrivate)

		_, err := service.GetAll(ctx, "stranger", "plan-1")
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

		// Unplanned days read back empty, not as an error
		waypoints, err := service.GetDay(ctx, "member-1", "plan-1", 9)
		require.NoError(t, err)
		assert.Empty(t, waypoints)
	})
}
