// Copyright (c) 2026 Planora. All rights reserved.

package route

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/planora/planora/internal/platform/apperr"
	"github.com/planora/planora/internal/platform/ctxutil"
	"github.com/planora/planora/internal/trips/access"
	"github.com/planora/planora/internal/trips/plan"
	"github.com/planora/planora/pkg/uuid"
)

// Service implements route use cases under the plan authorization policy.
type Service struct {
	repository Repository
	plans      PlanGuard
}

// NewService constructs a new route [Service] with necessary dependencies.
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

// WaypointInput is one stop in a submitted day route.
type WaypointInput struct {
	Name      string
	Latitude  float64
	Longitude float64
}

/*
ReplaceDay replaces a day's route with the submitted waypoint list.

Description: Requires write permission on the plan. Waypoints are assigned
fresh IDs and contiguous positions starting at 1 in submission order; the
previous list for the day is discarded atomically. An empty list clears the
day.

Parameters:
  - context: context.Context
  - userID: string
  - planID: string
  - day: int
  - inputs: []WaypointInput

Returns:
  - []*Waypoint: The stored route in position order
  - error: apperr.NotFound, apperr.Forbidden, or persistence failures
*/
func (service *Service) ReplaceDay(context context.Context, userID, planID string, day int, inputs []WaypointInput) ([]*Waypoint, error) {
	_, members, err := service.guard(context, planID)
	if err != nil {
		return nil, err
	}
	if !access.CanWrite(userID, members) {
		return nil, apperr.Forbidden("You do not have permission to edit this plan's routes")
	}

	waypoints := make([]*Waypoint, 0, len(inputs))
	for index, input := range inputs {
		waypoints = append(waypoints, &Waypoint{
			ID:        uuid.New(),
			PlanID:    planID,
			Day:       day,
			Position:  index + 1,
			Name:      input.Name,
			Latitude:  input.Latitude,
			Longitude: input.Longitude,
		})
	}

	if err := service.repository.ReplaceDay(context, planID, day, waypoints); err != nil {
		return nil, fmt.Errorf("route_service_replace_failed: %w", err)
	}

	ctxutil.GetLogger(context).Info("route_day_replaced",
		slog.String("plan_id", planID),
		slog.Int("day", day),
		slog.Int("waypoints", len(waypoints)),
	)
	return waypoints, nil
}

/*
GetDay returns a single day's route.

Parameters:
  - context: context.Context
  - userID: string
  - planID: string
  - day: int

Returns:
  - []*Waypoint: Waypoints in position order (empty for an unplanned day)
  - error: apperr.NotFound, apperr.Forbidden, or retrieval failures
*/
func (service *Service) GetDay(context context.Context, userID, planID string, day int) ([]*Waypoint, error) {
	visibility, members, err := service.guard(context, planID)
	if err != nil {
		return nil, err
	}
	if !access.CanRead(visibility, userID, members) {
		return nil, apperr.Forbidden("You do not have access to this plan's routes")
	}

	waypoints, err := service.repository.ListByDay(context, planID, day)
	if err != nil {
		return nil, fmt.Errorf("route_service_get_day_failed: %w", err)
	}
	return waypoints, nil
}

/*
GetAll returns every waypoint in a plan, ordered by day then position.

Parameters:
  - context: context.Context
  - userID: string
  - planID: string

Returns:
  - []*Waypoint: The full itinerary
  - error: apperr.NotFound, apperr.Forbidden, or retrieval failures
*/
func (service *Service) GetAll(context context.Context, userID, planID string) ([]*Waypoint, error) {
	visibility, members, err := service.guard(context, planID)
	if err != nil {
		return nil, err
	}
	if !access.CanRead(visibility, userID, members) {
		return nil, apperr.Forbidden("You do not have access to this plan's routes")
	}

	waypoints, err := service.repository.ListByPlan(context, planID)
	if err != nil {
		return nil, fmt.Errorf("route_service_get_all_failed: %w", err)
	}
	return waypoints, nil
}
