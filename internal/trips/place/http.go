// Copyright (c) 2026 Planora. All rights reserved.

package place

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/planora/planora/internal/platform/middleware"
	requestutil "github.com/planora/planora/internal/platform/request"
	"github.com/planora/planora/internal/platform/respond"
	"github.com/planora/planora/internal/platform/validate"
	"github.com/planora/planora/pkg/pagination"
)

// Handler implements place-related HTTP endpoints.
type Handler struct {
	placeService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{placeService: service}
}

// PlanRoutes returns the routes mounted under /plans/{planID}/places.
func (handler *Handler) PlanRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Post("/", handler.save)
	router.Get("/", handler.list)

	return router
}

// Routes returns the routes mounted under /places.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/search", handler.search)
	router.Put("/{placeID}", handler.update)
	router.Delete("/{placeID}", handler.remove)

	return router
}

type placeRequest struct {
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Memo      string  `json:"memo"`
}

// parsePlaceRequest validates the shared place payload.
func parsePlaceRequest(input placeRequest) (Input, error) {
	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, 120).
		MaxLen(FieldAddress, input.Address, 255).
		Latitude(FieldLatitude, input.Latitude).
		Longitude(FieldLongitude, input.Longitude).
		MaxLen(FieldMemo, input.Memo, 500)

	if err := validator.Err(); err != nil {
		return Input{}, err
	}

	return Input{
		Name:      input.Name,
		Address:   input.Address,
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
		Memo:      input.Memo,
	}, nil
}

/*
Search queries the external provider for location candidates.

GET /api/v1/places/search?q=

Response:
  - 200: []SearchResult
  - 503: ErrServiceUnavailable: Provider is down
*/
func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	if _, err := requestutil.RequiredUserID(request); err != nil {
		respond.Error(writer, request, err)
		return
	}

	results, err := handler.placeService.Search(request.Context(), request.URL.Query().Get("q"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, results)
}

/*
Save bookmarks a place within a plan.

POST /api/v1/plans/{planID}/places

Response:
  - 201: Place
  - 403: ErrForbidden: Caller lacks write permission
*/
func (handler *Handler) save(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input placeRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	parsed, err := parsePlaceRequest(input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	place, err := handler.placeService.Save(request.Context(), userID, requestutil.ID(request, "planID"), parsed)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, place)
}

/*
List returns a plan's saved places with pagination.

GET /api/v1/plans/{planID}/places?page=&limit=

Response:
  - 200: []Place + pagination metadata
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	places, meta, err := handler.placeService.List(request.Context(), userID, requestutil.ID(request, "planID"), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, places, meta)
}

/*
Update modifies a saved place.

PUT /api/v1/places/{placeID}

Response:
  - 200: Place
  - 403: ErrForbidden
  - 404: ErrNotFound
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input placeRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	parsed, err := parsePlaceRequest(input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	place, err := handler.placeService.Update(request.Context(), userID, requestutil.ID(request, "placeID"), parsed)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, place)
}

/*
Remove deletes a saved place.

DELETE /api/v1/places/{placeID}

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

	if err := handler.placeService.Delete(request.Context(), userID, requestutil.ID(request, "placeID")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
