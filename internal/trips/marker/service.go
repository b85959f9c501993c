// Copyright (c) 2026 Planora. All rights reserved.

package marker

import (
	"context"
	"fmt"

	"github.com/planora/planora/internal/platform/apperr"
	"github.com/planora/planora/internal/trips/access"
	"github.com/planora/planora/internal/trips/plan"
	"github.com/planora/planora/pkg/uuid"
)

// DefaultColor is used when a marker is created without an explicit color.
const DefaultColor = "#ff4757"

// Service implements marker use cases under the plan authorization policy.
type Service struct {
	repository Repository
	plans      PlanGuard
}

// NewService constructs a new marker [Service] with necessary dependencies.
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

// Input holds the writable marker fields.
type Input struct {
	Name      string
	Latitude  float64
	Longitude float64
	Color     string
	Icon      string
}

/*
Create pins a new marker on a plan's map.

Description: Requires write permission on the plan. An empty color falls back
to [DefaultColor].

Parameters:
  - context: context.Context
  - userID: string
  - planID: string
  - input: Input

Returns:
  - *Marker: Created entity
  - error: apperr.NotFound, apperr.Forbidden, or persistence failures
*/
func (service *Service) Create(context context.Context, userID, planID string, input Input) (*Marker, error) {
	_, members, err := service.guard(context, planID)
	if err != nil {
		return nil, err
	}
	if !access.CanWrite(userID, members) {
		return nil, apperr.Forbidden("You do not have permission to add markers to this plan")
	}

	color := input.Color
	if color == "" {
		color = DefaultColor
	}

	marker := &Marker{
		ID:        uuid.New(),
		PlanID:    planID,
		Name:      input.Name,
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
		Color:     color,
		Icon:      input.Icon,
	}

	if err := service.repository.Create(context, marker); err != nil {
		return nil, fmt.Errorf("marker_service_create_failed: %w", err)
	}
	return marker, nil
}

/*
List returns every marker in a plan.

Parameters:
  - context: context.Context
  - userID: string
  - planID: string

Returns:
  - []*Marker: All pins, oldest first
  - error: apperr.NotFound, apperr.Forbidden, or retrieval failures
*/
func (service *Service) List(context context.Context, userID, planID string) ([]*Marker, error) {
	visibility, members, err := service.guard(context, planID)
	if err != nil {
		return nil, err
	}
	if !access.CanRead(visibility, userID, members) {
		return nil, apperr.Forbidden("You do not have access to this plan's markers")
	}

	markers, err := service.repository.ListByPlan(context, planID)
	if err != nil {
		return nil, fmt.Errorf("marker_service_list_failed: %w", err)
	}
	return markers, nil
}

/*
Update modifies an existing marker.

Parameters:
  - context: context.Context
  - userID: string
  - markerID: string
  - input: Input

Returns:
  - *Marker: Updated entity
  - error: apperr.NotFound, apperr.Forbidden, or persistence failures
*/
func (service *Service) Update(context context.Context, userID, markerID string, input Input) (*Marker, error) {
	marker, err := service.repository.FindByID(context, markerID)
	if err != nil {
		return nil, err
	}

	_, members, err := service.guard(context, marker.PlanID)
	if err != nil {
		return nil, err
	}
	if !access.CanWrite(userID, members) {
		return nil, apperr.Forbidden("You do not have permission to modify this marker")
	}

	marker.Name = input.Name
	marker.Latitude = input.Latitude
	marker.Longitude = input.Longitude
	if input.Color != "" {
		marker.Color = input.Color
	}
	marker.Icon = input.Icon

	if err := service.repository.Update(context, marker); err != nil {
		return nil, fmt.Errorf("marker_service_update_failed: %w", err)
	}
	return marker, nil
}

/*
Delete removes a marker.

Parameters:
  - context: context.Context
  - userID: string
  - markerID: string

Returns:
  - error: apperr.NotFound, apperr.Forbidden, or persistence failures
*/
func (service *Service) Delete(context context.Context, userID, markerID string) error {
	marker, err := service.repository.FindByID(context, markerID)
	if err != nil {
		return err
	}

	_, members, err := service.guard(context, marker.PlanID)
	if err != nil {
		return err
	}
	if !access.CanWrite(userID, members) {
		return apperr.Forbidden("You do not have permission to delete this marker")
	}

	if err := service.repository.Delete(context, markerID); err != nil {
		return fmt.Errorf("marker_service_delete_failed: %w", err)
	}
	return nil
}
