// Copyright (c) 2026 Planora. All rights reserved.

package place

import (
	"context"
	"fmt"

	"github.com/planora/planora/internal/platform/apperr"
	"github.com/planora/planora/internal/trips/access"
	"github.com/planora/planora/internal/trips/plan"
	"github.com/planora/planora/pkg/pagination"
	"github.com/planora/planora/pkg/uuid"
)

// searchLimit caps the number of candidates requested from the provider.
const searchLimit = 10

// Service implements saved-place use cases and place search.
type Service struct {
	repository Repository
	search     SearchClient
	plans      PlanGuard
}

// NewService constructs a new place [Service] with necessary dependencies.
func NewService(repository Repository, search SearchClient, plans PlanGuard) *Service {
	return &Service{repository: repository, search: search, plans: plans}
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

// Input holds the writable place fields.
type Input struct {
	Name      string
	Address   string
	Latitude  float64
	Longitude float64
	Memo      string
}

/*
Search queries the external provider for location candidates.

Description: Folds the query (accent removal, lowercasing) before forwarding
so results stay stable across providers. Search is not plan-scoped; any
authenticated user can search.

Parameters:
  - context: context.Context
  - query: string

Returns:
  - []SearchResult: Candidates, best match first
  - error: apperr.ServiceUnavailable when the provider is down
*/
func (service *Service) Search(context context.Context, query string) ([]SearchResult, error) {
	folded := FoldQuery(query)
	if folded == "" {
		return nil, apperr.ValidationError("Validation failed",
			apperr.FieldError{Field: FieldQuery, Message: "Search query must not be empty"})
	}

	results, err := service.search.Search(context, folded, searchLimit)
	if err != nil {
		return nil, err
	}
	return results, nil
}

/*
Save bookmarks a place within a plan.

Description: Requires write permission on the plan.

Parameters:
  - context: context.Context
  - userID: string
  - planID: string
  - input: Input

Returns:
  - *Place: Created entity
  - error: apperr.NotFound, apperr.Forbidden, or persistence failures
*/
func (service *Service) Save(context context.Context, userID, planID string, input Input) (*Place, error) {
	_, members, err := service.guard(context, planID)
	if err != nil {
		return nil, err
	}
	if !access.CanWrite(userID, members) {
		return nil, apperr.Forbidden("You do not have permission to save places to this plan")
	}

	place := &Place{
		ID:        uuid.New(),
		PlanID:    planID,
		Name:      input.Name,
		Address:   input.Address,
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
		Memo:      input.Memo,
	}

	if err := service.repository.Create(context, place); err != nil {
		return nil, fmt.Errorf("place_service_save_failed: %w", err)
	}
	return place, nil
}

/*
List returns a plan's saved places with pagination metadata.

Parameters:
  - context: context.Context
  - userID: string
  - planID: string
  - params: pagination.Params

Returns:
  - []*Place: Page of saved places, newest first
  - pagination.Meta: Total/page metadata
  - error: apperr.NotFound, apperr.Forbidden, or retrieval failures
*/
func (service *Service) List(context context.Context, userID, planID string, params pagination.Params) ([]*Place, pagination.Meta, error) {
	visibility, members, err := service.guard(context, planID)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	if !access.CanRead(visibility, userID, members) {
		return nil, pagination.Meta{}, apperr.Forbidden("You do not have access to this plan's places")
	}

	places, total, err := service.repository.ListByPlan(context, planID, params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("place_service_list_failed: %w", err)
	}
	return places, pagination.NewMeta(params.Page, params.Limit, total), nil
}

/*
Update modifies a saved place.

Parameters:
  - context: context.Context
  - userID: string
  - placeID: string
  - input: Input

Returns:
  - *Place: Updated entity
  - error: apperr.NotFound, apperr.Forbidden, or persistence failures
*/
func (service *Service) Update(context context.Context, userID, placeID string, input Input) (*Place, error) {
	place, err := service.repository.FindByID(context, placeID)
	if err != nil {
		return nil, err
	}

	_, members, err := service.guard(context, place.PlanID)
	if err != nil {
		return nil, err
	}
	if !access.CanWrite(userID, members) {
		return nil, apperr.Forbidden("You do not have permission to modify this place")
	}

	place.Name = input.Name
	place.Address = input.Address
	place.Latitude = input.Latitude
	place.Longitude = input.Longitude
	place.Memo = input.Memo

	if err := service.repository.Update(context, place); err != nil {
		return nil, fmt.Errorf("place_service_update_failed: %w", err)
	}
	return place, nil
}

/*
Delete removes a saved place.

Parameters:
  - context: context.Context
  - userID: string
  - placeID: string

Returns:
  - error: apperr.NotFound, apperr.Forbidden, or persistence failures
*/
func (service *Service) Delete(context context.Context, userID, placeID string) error {
	place, err := service.repository.FindByID(context, placeID)
	if err != nil {
		return err
	}

	_, members, err := service.guard(context, place.PlanID)
	if err != nil {
		return err
	}
	if !access.CanWrite(userID, members) {
		return apperr.Forbidden("You do not have permission to delete this place")
	}

	if err := service.repository.Delete(context, placeID); err != nil {
		return fmt.Errorf("place_service_delete_failed: %w", err)
	}
	return nil
}
