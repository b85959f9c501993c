// Copyright (c) 2026 Planora. All rights reserved.

package plan

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/planora/planora/internal/platform/middleware"
	requestutil "github.com/planora/planora/internal/platform/request"
	"github.com/planora/planora/internal/platform/respond"
	"github.com/planora/planora/internal/platform/validate"
	"github.com/planora/planora/internal/trips/access"
	"github.com/planora/planora/pkg/pagination"
)

// dateLayout is the wire format for plan date ranges.
const dateLayout = "2006-01-02"

// Handler implements plan-related HTTP endpoints.
type Handler struct {
	planService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{planService: service}
}

// Routes returns a [chi.Router] configured with plan routes.
//
// # Endpoints
//   - GET  /{planID} : Public-readable plan detail (auth optional).
//   - Everything else requires an authenticated user.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Reads that honor PUBLIC visibility for anonymous callers
	router.Get("/{planID}", handler.get)
	router.Get("/{planID}/members", handler.members)

	// Participant endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Post("/", handler.create)
		r.Get("/", handler.list)
		r.Put("/{planID}", handler.update)
		r.Delete("/{planID}", handler.remove)

		r.Delete("/{planID}/members/{userID}", handler.kick)
		r.Post("/{planID}/members/{userID}/block", handler.block)

		r.Post("/{planID}/invites", handler.createInvite)
		r.Post("/invites/redeem", handler.redeem)
	})

	return router
}

// # Request Payloads

type planRequest struct {
	Name       string `json:"name"`
	Visibility string `json:"visibility"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
}

type redeemRequest struct {
	InviteCode string `json:"invite_code"`
}

// parsePlanRequest validates the shared plan payload and parses its dates.
func parsePlanRequest(input planRequest) (CreateInput, error) {
	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, 120).
		Required(FieldVisibility, input.Visibility).
		OneOf(FieldVisibility, input.Visibility, string(access.VisibilityPublic), string(access.VisibilityPrivate)).
		Required(FieldStartDate, input.StartDate).
		Required(FieldEndDate, input.EndDate)

	if err := validator.Err(); err != nil {
		return CreateInput{}, err
	}

	startDate, err := time.Parse(dateLayout, input.StartDate)
	if err != nil {
		validator.Custom(FieldStartDate, true, "must be a valid date (YYYY-MM-DD)")
	}
	endDate, err := time.Parse(dateLayout, input.EndDate)
	if err != nil {
		validator.Custom(FieldEndDate, true, "must be a valid date (YYYY-MM-DD)")
	}
	validator.DateOrder(FieldEndDate, startDate, endDate)

	if err := validator.Err(); err != nil {
		return CreateInput{}, err
	}

	return CreateInput{
		Name:       input.Name,
		Visibility: access.Visibility(input.Visibility),
		StartDate:  startDate,
		EndDate:    endDate,
	}, nil
}

/*
Create opens a new trip plan.

POST /api/v1/plans

Description: Persists the plan and seats the caller as its OWNER atomically.

Request:
  - Body: planRequest (Name, Visibility, StartDate, EndDate)

Response:
  - 201: Plan: Created plan
  - 400: ErrInvalidJSON: Bad input or validation failure
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input planRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	parsed, err := parsePlanRequest(input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	plan, err := handler.planService.Create(request.Context(), userID, parsed)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, plan)
}

/*
List returns the caller's plans with pagination.

GET /api/v1/plans?page=&limit=

Response:
  - 200: []Plan + pagination metadata
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	plans, meta, err := handler.planService.List(request.Context(), userID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, plans, meta)
}

/*
Get returns a single plan honoring the visibility policy.

GET /api/v1/plans/{planID}

Response:
  - 200: Plan
  - 403: ErrForbidden: Private plan, or caller is blocked
  - 404: ErrNotFound: Unknown or deleted plan
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	userID := callerID(request)

	plan, err := handler.planService.Get(request.Context(), userID, requestutil.ID(request, "planID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, plan)
}

/*
Update modifies plan metadata.

PUT /api/v1/plans/{planID}

Response:
  - 200: Plan: Updated plan
  - 403: ErrForbidden: Caller lacks write permission
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input planRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	parsed, err := parsePlanRequest(input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	plan, err := handler.planService.Update(request.Context(), userID, requestutil.ID(request, "planID"), UpdateInput(parsed))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, plan)
}

/*
Remove soft-deletes a plan. Owner only.

DELETE /api/v1/plans/{planID}

Response:
  - 204: No Content
  - 403: ErrForbidden: Caller is not the owner
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.planService.Delete(request.Context(), userID, requestutil.ID(request, "planID")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
Members returns the plan roster honoring the visibility policy.

GET /api/v1/plans/{planID}/members

Response:
  - 200: []Member
  - 403: ErrForbidden
*/
func (handler *Handler) members(writer http.ResponseWriter, request *http.Request) {
	userID := callerID(request)

	members, err := handler.planService.Members(request.Context(), userID, requestutil.ID(request, "planID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, members)
}

/*
Kick removes a participant from the roster. Owner only.

DELETE /api/v1/plans/{planID}/members/{userID}

Response:
  - 204: No Content
  - 403: ErrForbidden: Caller is not the owner
*/
func (handler *Handler) kick(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.planService.Kick(
		request.Context(),
		userID,
		requestutil.ID(request, "planID"),
		requestutil.ID(request, "userID"),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
Block bars a user from the plan. Owner only.

POST /api/v1/plans/{planID}/members/{userID}/block

Response:
  - 204: No Content
  - 403: ErrForbidden: Caller is not the owner
*/
func (handler *Handler) block(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.planService.Block(
		request.Context(),
		userID,
		requestutil.ID(request, "planID"),
		requestutil.ID(request, "userID"),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
CreateInvite mints a redeemable invite code for a plan.

POST /api/v1/plans/{planID}/invites

Response:
  - 201: invite_code and expiry
  - 403: ErrForbidden: Caller lacks write permission
*/
func (handler *Handler) createInvite(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	code, err := handler.planService.CreateInviteCode(request.Context(), userID, requestutil.ID(request, "planID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, map[string]any{
		FieldInviteCode: code,
		"expires_in":    int64(InviteCodeTTL / time.Second),
	})
}

/*
Redeem joins the caller to the plan behind an invite code.

POST /api/v1/plans/invites/redeem

Request:
  - Body: redeemRequest (InviteCode)

Response:
  - 200: Plan: The joined plan
  - 403: ErrForbidden: Caller is blocked from the plan
  - 404: ErrNotFound: Unknown or expired code
*/
func (handler *Handler) redeem(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input redeemRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldInviteCode, input.InviteCode)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	plan, err := handler.planService.Redeem(request.Context(), userID, input.InviteCode)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, plan)
}

// callerID resolves the user ID for endpoints where auth is optional.
func callerID(request *http.Request) string {
	if claims := requestutil.Claims(request); claims != nil {
		if claims.UserID != "" {
			return claims.UserID
		}
		return claims.Subject
	}
	return ""
}
