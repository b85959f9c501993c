// Copyright (c) 2026 Planora. All rights reserved.

package marker

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/planora/planora/internal/platform/middleware"
	requestutil "github.com/planora/planora/internal/platform/request"
	"github.com/planora/planora/internal/platform/respond"
	"github.com/planora/planora/internal/platform/validate"
)

// Handler implements marker-related HTTP endpoints.
type Handler struct {
	markerService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{markerService: service}
}

// PlanRoutes returns the routes mounted under /plans/{planID}/markers.
func (handler *Handler) PlanRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Post("/", handler.create)
	router.Get("/", handler.list)

	return router
}

// Routes returns the routes mounted under /markers (by marker ID).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Put("/{markerID}", handler.update)
	router.Delete("/{markerID}", handler.remove)

	return router
}

type markerRequest struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Color     string  `json:"color"`
	Icon      string  `json:"icon"`
}

// parseMarkerRequest validates the shared marker payload.
func parseMarkerRequest(input markerRequest) (Input, error) {
	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, 120).
		Latitude(FieldLatitude, input.Latitude).
		Longitude(FieldLongitude, input.Longitude).
		MaxLen(FieldIcon, input.Icon, 40)

	// Color is optional; when present it must be a hex triplet
	if input.Color != "" {
		validator.HexColor(FieldColor, input.Color)
	}

	if err := validator.Err(); err != nil {
		return Input{}, err
	}

	return Input{
		Name:      input.Name,
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
		Color:     input.Color,
		Icon:      input.Icon,
	}, nil
}

/*
Create pins a new marker on a plan's map.

POST /api/v1/plans/{planID}/markers

Response:
  - 201: Marker
  - 403: ErrForbidden: Caller lacks write permission
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input markerRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	parsed, err := parseMarkerRequest(input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	marker, err := handler.markerService.Create(request.Context(), userID, requestutil.ID(request, "planID"), parsed)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, marker)
}

/*
List returns every marker in a plan.

GET /api/v1/plans/{planID}/markers

Response:
  - 200: []Marker
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	markers, err := handler.markerService.List(request.Context(), userID, requestutil.ID(request, "planID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, markers)
}

/*
Update modifies an existing marker.

PUT /api/v1/markers/{markerID}

Response:
  - 200: Marker
  - 403: ErrForbidden
  - 404: ErrNotFound
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input markerRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	parsed, err := parseMarkerRequest(input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	marker, err := handler.markerService.Update(request.Context(), userID, requestutil.ID(request, "markerID"), parsed)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, marker)
}

/*
Remove deletes a marker.

DELETE /api/v1/markers/{markerID}

Response:
  - 204: No Content
  - 403: ErrForbidden
  - 404: ErrNotFound
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.markerService.Delete(request.Context(), userID, requestutil.ID(request, "markerID")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
