// Copyright (c) 2026 Planora. All rights reserved.

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/planora/planora/internal/platform/middleware"
	requestutil "github.com/planora/planora/internal/platform/request"
	"github.com/planora/planora/internal/platform/respond"
	"github.com/planora/planora/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /signup  : Creates a new account.
//   - POST /login   : Authenticates and returns a token pair.
//   - POST /reissue : Rotates a refresh token into a fresh pair.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/signup", handler.signup)
	router.Post("/login", handler.login)
	router.Post("/reissue", handler.reissue)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/logout", handler.logout)
		r.Delete("/withdraw", handler.withdraw)
	})

	return router
}

// # Request Payloads

type signupRequest struct {
	LoginID  string `json:"login_id"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
}

type loginRequest struct {
	LoginID  string `json:"login_id"`
	Password string `json:"password"`
}

type reissueRequest struct {
	RefreshToken string `json:"refresh_token"`
}

/*
Signup handles the creation of a new user account.

POST /api/v1/auth/signup

Description: Validates input, checks for identity conflicts, and persists
a new user profile to the database.

Request:
  - Body: signupRequest (LoginID, Password, Nickname)

Response:
  - 201: User: Created user profile
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 409: ErrConflict: Login ID already exists
*/
func (handler *Handler) signup(writer http.ResponseWriter, request *http.Request) {
	var input signupRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldLoginID, input.LoginID).
		MinLen(FieldLoginID, input.LoginID, 4).
		MaxLen(FieldLoginID, input.LoginID, 64).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, 8).
		Required(FieldNickname, input.Nickname).
		MaxLen(FieldNickname, input.Nickname, 40)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Signup(request.Context(), SignupInput{
		LoginID:  input.LoginID,
		Password: input.Password,
		Nickname: input.Nickname,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

/*
Login authenticates a user and establishes a session.

POST /api/v1/auth/login

Description: Verifies credentials and returns an access/refresh token pair.
Any previously active session for the user is displaced.

Request:
  - Body: loginRequest (LoginID, Password)

Response:
  - 200: TokenPair: Access token, refresh token, and user profile
  - 401: ErrUnauthorized: Invalid credentials or withdrawn account
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldLoginID, input.LoginID)
	validator.Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	pair, err := handler.authService.Login(request.Context(), input.LoginID, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, sessionPayload(pair))
}

/*
Reissue rotates a refresh token into a new token pair.

POST /api/v1/auth/reissue

Description: Validates the presented refresh token against the stored slot
and atomically replaces it. The previous refresh token is unusable afterwards.

Request:
  - Body: reissueRequest (RefreshToken)

Response:
  - 200: TokenPair: New access and refresh tokens
  - 401: ErrUnauthorized: Invalid, expired, or already-rotated token
*/
func (handler *Handler) reissue(writer http.ResponseWriter, request *http.Request) {
	var input reissueRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldRefreshToken, input.RefreshToken)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	pair, err := handler.authService.Reissue(request.Context(), input.RefreshToken)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, sessionPayload(pair))
}

/*
Logout terminates the current user session.

POST /api/v1/auth/logout

Description: Deletes the refresh-token slot. Idempotent.

Response:
  - 204: No Content: Session terminated
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.Logout(request.Context(), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
Withdraw closes the authenticated user's account.

DELETE /api/v1/auth/withdraw

Description: Marks the account WITHDRAWN (terminal) and revokes the active
session. Outstanding access tokens lapse at their natural expiry.

Response:
  - 204: No Content: Account closed
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) withdraw(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.Withdraw(request.Context(), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// sessionPayload shapes a token pair for the wire.
func sessionPayload(pair *TokenPair) map[string]any {
	return map[string]any{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"token_type":    "Bearer",
		"expires_in":    pair.ExpiresIn,
		"user":          pair.User,
	}
}
