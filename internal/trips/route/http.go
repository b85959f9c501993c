// Copyright (c) 2026 Planora. All rights reserved.

package route

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/planora/planora/internal/platform/middleware"
	requestutil "github.com/planora/planora/internal/platform/request"
	"github.com/planora/planora/internal/platform/respond"
	"github.com/planora/planora/internal/platform/validate"
)

// Handler implements route-related HTTP endpoints.
type Handler struct {
	routeService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{routeService: service}
}

// PlanRoutes returns the routes mounted under /plans/{planID}/routes.
func (handler *Handler) PlanRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.getAll)
	router.Get("/{day}", handler.getDay)
	router.Put("/{day}", handler.replaceDay)

	return router
}

type waypointRequest struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type replaceDayRequest struct {
	Waypoints []waypointRequest `json:"waypoints"`
}

// dayParam parses and bounds-checks the {day} URL segment.
func dayParam(request *http.Request) (int, error) {
	day, err := strconv.Atoi(requestutil.ID(request, "day"))
	if err != nil || day < 1 {
		return 0, validate.RequiredError(FieldDay, "must be a positive integer")
	}
	return day, nil
}

/*
ReplaceDay replaces a day's route wholesale.

PUT /api/v1/plans/{planID}/routes/{day}

Description: The submitted list becomes the day's entire route; order in the
array is the stored visit order. An empty list clears the day.

Request:
  - Body: replaceDayRequest (Waypoints)

Response:
  - 200: []Waypoint: The stored route
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 403: ErrForbidden: Caller lacks write permission
*/
func (handler *Handler) replaceDay(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	day, err := dayParam(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input replaceDayRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Custom(FieldWaypoints, len(input.Waypoints) > MaxWaypointsPerDay,
		fmt.Sprintf("Must not exceed %d waypoints per day", MaxWaypointsPerDay))

	inputs := make([]WaypointInput, 0, len(input.Waypoints))
	for index, waypoint := range input.Waypoints {
		prefix := fmt.Sprintf("waypoints[%d].", index)
		validator.Required(prefix+FieldName, waypoint.Name).
			MaxLen(prefix+FieldName, waypoint.Name, 120).
			Latitude(prefix+FieldLatitude, waypoint.Latitude).
			Longitude(prefix+FieldLongitude, waypoint.Longitude)

		inputs = append(inputs, WaypointInput{
			Name:      waypoint.Name,
			Latitude:  waypoint.Latitude,
			Longitude: waypoint.Longitude,
		})
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	waypoints, err := handler.routeService.ReplaceDay(request.Context(), userID, requestutil.ID(request, "planID"), day, inputs)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, waypoints)
}

/*
GetDay returns a single day's route.

GET /api/v1/plans/{planID}/routes/{day}

Response:
  - 200: []Waypoint (empty array for an unplanned day)
*/
func (handler *Handler) getDay(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	day, err := dayParam(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	waypoints, err := handler.routeService.GetDay(request.Context(), userID, requestutil.ID(request, "planID"), day)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, waypoints)
}

/*
GetAll returns the full itinerary across all days.

GET /api/v1/plans/{planID}/routes

Response:
  - 200: []Waypoint ordered by day, then position
*/
func (handler *Handler) getAll(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	waypoints, err := handler.routeService.GetAll(request.Context(), userID, requestutil.ID(request, "planID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, waypoints)
}
