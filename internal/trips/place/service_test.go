// Copyright (c) 2026 Planora. All rights reserved.

package place_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planora/planora/internal/platform/apperr"
	"github.com/planora/planora/internal/trips/access"
	"github.com/planora/planora/internal/trips/place"
	"github.com/planora/planora/internal/trips/plan"
	"github.com/planora/planora/pkg/pagination"
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
	places map[string]*place.Place
}

func (repo *fakeRepository) Create(_ context.Context, p *place.Place) error {
	copied := *p
	repo.places[p.ID] = &copied
	return nil
}

func (repo *fakeRepository) FindByID(_ context.Context, id string) (*place.Place, error) {
	if p, ok := repo.places[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, apperr.NotFound("Place")
}

func (repo *fakeRepository) ListByPlan(_ context.Context, planID string, limit, offset int) ([]*place.Place, int, error) {
	var result []*place.Place
	for _, p := range repo.places {
		if p.PlanID == planID {
			copied := *p
			result = append(result, &copied)
		}
	}
	return result, len(result), nil
}

func (repo *fakeRepository) Update(_ context.Context, p *place.Place) error {
	if _, ok := repo.places[p.ID]; !ok {
		return apperr.NotFound("Place")
	}
	copied := *p
	repo.places[p.ID] = &copied
	return nil
}

func (repo *fakeRepository) Delete(_ context.Context, id string) error {
	delete(repo.places, id)
	return nil
}

// fakeSearchClient records the forwarded query.
type fakeSearchClient struct {
	lastQuery string
	results   []place.SearchResult
}

func (client *fakeSearchClient) Search(_ context.Context, query string, _ int) ([]place.SearchResult, error) {
	client.lastQuery = query
	return client.results, nil
}

func newTestService(visibility access.Visibility) (*place.Service, *fakeSearchClient) {
	guard := &fakePlanGuard{
		visibility: visibility,
		roster: []*plan.Member{
			{PlanID: "plan-1", UserID: "owner-1", Role: access.RoleOwner},
			{PlanID: "plan-1", UserID: "member-1", Role: access.RoleMember},
			{PlanID: "plan-1", UserID: "pariah", Role: access.RoleBlocked},
		},
	}
	search := &fakeSearchClient{
		results: []place.SearchResult{{Name: "Kinkaku-ji", Latitude: 35.0394, Longitude: 135.7292}},
	}
	service := place.NewService(&fakeRepository{places: map[string]*place.Place{}}, search, guard)
	return service, search
}

var testInput = place.Input{
	Name:      "Kinkaku-ji",
	Address:   "1 Kinkakujicho, Kita Ward, Kyoto",
	Latitude:  35.0394,
	Longitude: 135.7292,
	Memo:      "Golden pavilion, go early",
}

// # Tests

/*
TestService_Search tests query folding and empty-query rejection.
*/
func TestService_Search(t *testing.T) {
	service, search := newTestService(access.VisibilityPrivate)
	ctx := context.Background()

	results, err := service.Search(ctx, "  Kinkaku-JI  ")
	require.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, "kinkaku-ji", search.lastQuery)

	_, err = service.Search(ctx, "   ")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

/*
TestService_SaveAndList tests write gating and the visibility read policy.
*/
func TestService_SaveAndList(t *testing.T) {
	service, _ := newTestService(access.VisibilityPublic)
	ctx := context.Background()
	params := pagination.Params{Page: 1, Limit: 20}

	saved, err := service.Save(ctx, "member-1", "plan-1", testInput)
	require.NoError(t, err)
	assert.Equal(t, "plan-1", saved.PlanID)

	_, err = service.Save(ctx, "stranger", "plan-1", testInput)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	// Public plan: strangers read, blocked users do not
	places, meta, err := service.List(ctx, "stranger", "plan-1", params)
	require.NoError(t, err)
	assert.Len(t, places, 1)
	assert.Equal(t, 1, meta.Total)

	_, _, err = service.List(ctx, "pariah", "plan-1", params)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
}

/*
TestService_UpdateAndDelete tests mutations through the stored plan binding.
*/
func TestService_UpdateAndDelete(t *testing.T) {
	service, _ := newTestService(access.VisibilityPrivate)
	ctx := context.Background()

	saved, err := service.Save(ctx, "owner-1", "plan-1", testInput)
	require.NoError(t, err)

	edited := testInput
	edited.Memo = "Closed on Mondays"

	updated, err := service.Update(ctx, "member-1", saved.ID, edited)
	require.NoError(t, err)
	assert.Equal(t, "Closed on Mondays", updated.Memo)

	_, err = service.Update(ctx, "stranger", saved.ID, edited)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	require.NoError(t, service.Delete(ctx, "owner-1", saved.ID))
	err = service.Delete(ctx, "owner-1", saved.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}
