// Copyright (c) 2026 Planora. All rights reserved.

package expense

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/planora/planora/internal/platform/middleware"
	requestutil "github.com/planora/planora/internal/platform/request"
	"github.com/planora/planora/internal/platform/respond"
	"github.com/planora/planora/internal/platform/validate"
	"github.com/planora/planora/pkg/pagination"
)

// Handler implements expense-related HTTP endpoints.
type Handler struct {
	expenseService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{expenseService: service}
}

// PlanRoutes returns the routes mounted under /plans/{planID}/expenses.
func (handler *Handler) PlanRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Post("/", handler.create)
	router.Get("/", handler.list)
	router.Get("/summary", handler.summary)

	return router
}

// Routes returns the routes mounted under /expenses (by expense ID).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Put("/{expenseID}", handler.update)
	router.Delete("/{expenseID}", handler.remove)

	return router
}

type expenseRequest struct {
	Title    string `json:"title"`
	Amount   int64  `json:"amount"`
	Category string `json:"category"`
	Day      int    `json:"day"`
}

// parseExpenseRequest validates the shared expense payload.
func parseExpenseRequest(input expenseRequest) (Input, error) {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, 120).
		Positive(FieldAmount, input.Amount).
		Required(FieldCategory, input.Category).
		MaxLen(FieldCategory, input.Category, 40).
		Custom(FieldDay, input.Day < 1, "Must be at least 1")

	if err := validator.Err(); err != nil {
		return Input{}, err
	}

	return Input{
		Title:    input.Title,
		Amount:   input.Amount,
		Category: input.Category,
		Day:      input.Day,
	}, nil
}

/*
Create records a new expense in a plan.

POST /api/v1/plans/{planID}/expenses

Response:
  - 201: Expense
  - 403: ErrForbidden: Caller lacks write permission
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input expenseRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	parsed, err := parseExpenseRequest(input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	expense, err := handler.expenseService.Create(request.Context(), userID, requestutil.ID(request, "planID"), parsed)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, expense)
}

/*
List returns a plan's expenses with pagination.

GET /api/v1/plans/{planID}/expenses?page=&limit=

Response:
  - 200: []Expense + pagination metadata
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	expenses, meta, err := handler.expenseService.List(request.Context(), userID, requestutil.ID(request, "planID"), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, expenses, meta)
}

/*
Summary returns a plan's spend totals per category.

GET /api/v1/plans/{planID}/expenses/summary

Response:
  - 200: []CategoryTotal
*/
func (handler *Handler) summary(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	totals, err := handler.expenseService.Summary(request.Context(), userID, requestutil.ID(request, "planID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, totals)
}

/*
Update modifies an existing expense.

PUT /api/v1/expenses/{expenseID}

Response:
  - 200: Expense
  - 403: ErrForbidden
  - 404: ErrNotFound
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input expenseRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	parsed, err := parseExpenseRequest(input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	expense, err := handler.expenseService.Update(request.Context(), userID, requestutil.ID(request, "expenseID"), parsed)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, expense)
}

/*
Remove deletes an expense.

DELETE /api/v1/expenses/{expenseID}

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

	if err := handler.expenseService.Delete(request.Context(), userID, requestutil.ID(request, "expenseID")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
