// Copyright (c) 2026 MangaVault. All rights reserved.
// Author: vu.hoanganh.dev@gmail.com

package users

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/hoanganhvu/mangavault/internal/platform/apperr"
	"github.com/hoanganhvu/mangavault/internal/platform/constants"
	"github.com/hoanganhvu/mangavault/internal/platform/middleware"
	requestutil "github.com/hoanganhvu/mangavault/internal/platform/request"
	"github.com/hoanganhvu/mangavault/internal/platform/respond"
	"github.com/hoanganhvu/mangavault/internal/platform/validate"
	"github.com/hoanganhvu/mangavault/pkg/pagination"
)

// # Definitions & Constructors

// Handler implements the user account HTTP endpoints.
//
// # Scope
//
// This handler manages the full user lifecycle: registration, login,
// logout, profile management, and role administration.
type Handler struct {
	userService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{userService: service}
}

// Routes returns a [chi.Router] configured with user account routes.
//
// # Endpoints
//   - POST   /                 : Creates a new account (public).
//   - POST   /login            : Authenticates and returns a JWT (public).
//   - POST   /login/admin      : Admin-gated login (public).
//   - GET    /{id}             : Public user profile.
//   - POST   /logout           : Revokes the presented token (auth).
//   - GET    /me               : Current user profile (auth).
//   - PUT    /{id}             : Profile update, self-or-admin (auth).
//   - PUT    /change-password  : Password rotation (auth).
//   - DELETE /{id}             : Account deletion, self-or-admin (auth).
//   - GET    /                 : Paginated account listing (admin).
//   - PUT    /role/{id}        : Role assignment (admin).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/", handler.register)
	router.Post("/login", handler.login)
	router.Post("/login/admin", handler.adminLogin)
	router.Get("/{id}", handler.get)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/logout", handler.logout)
		r.Get("/me", handler.me)
		r.Put("/change-password", handler.changePassword)
		r.Put("/{id}", handler.update)
		r.Delete("/{id}", handler.delete)
	})

	// Admin endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin)
		r.Get("/", handler.list)
		r.Put("/role/{id}", handler.changeRole)
	})

	return router
}

// # Request Payloads

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type updateRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type changeRoleRequest struct {
	Role string `json:"role"`
}

// # Authentication Endpoints

/*
Register handles the creation of a new user account.

POST /users/

Description: Validates input and persists a new account. The role is
always "user"; elevation happens only through the admin role endpoint.

Request:
  - Body: registerRequest (Username, Email, Password)

Response:
  - 201: User: Created account
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 409: Conflict: Username or email already exists
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		MinLen(FieldUsername, input.Username, 3).
		MaxLen(FieldUsername, input.Username, 50).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, 8)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.userService.Register(request.Context(), RegisterInput{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

/*
Login authenticates a user and issues an access token.

POST /users/login

Response:
  - 200: LoginResult: {auth_token, user}
  - 401: Unauthorized: Invalid username or password
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.userService.Login(request.Context(), input.Username, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

/*
AdminLogin authenticates a user and requires the admin role.

POST /users/login/admin

Response:
  - 200: LoginResult: {auth_token, user}
  - 401: Unauthorized: Invalid username or password
  - 403: Forbidden: Access denied: Not an admin
*/
func (handler *Handler) adminLogin(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.userService.AdminLogin(request.Context(), input.Username, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

/*
Logout revokes the presented bearer token until it expires naturally.

POST /users/logout

Response:
  - 200: {"message": "Successfully logged out"}
  - 401: Unauthorized: Token is missing
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// The raw token is needed for the denylist digest; RequireAuth has
	// already guaranteed the header is present and well formed.
	token := bearerToken(request)
	if token == "" {
		respond.Error(writer, request, apperr.Unauthorized("Token is missing"))
		return
	}

	if err := handler.userService.Logout(request.Context(), token, claims.ExpiresAt.Time); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{"message": "Successfully logged out"})
}

// bearerToken extracts the raw token from the Authorization header.
func bearerToken(request *http.Request) string {
	parts := strings.Split(request.Header.Get(constants.HeaderAuthorization), " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// # Account Endpoints

/*
Get returns a public user profile by id.

GET /users/{id}

Response:
  - 200: User
  - 404: NotFound: User not found
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	user, err := handler.userService.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
Me returns the profile of the authenticated caller.

GET /users/me

Response:
  - 200: User
  - 401: Unauthorized: Token is missing
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.userService.Get(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
List returns one page of user accounts. Admin-only.

GET /users/?page=&per_page=

Response:
  - 200: {page, per_page, total_users, users}
  - 403: Forbidden: Admin role required
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request, pagination.DefaultPerPage)

	users, total, err := handler.userService.List(request.Context(), params.PerPage, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, "users", users, params, total)
}

/*
Update modifies a user's profile fields. The caller must be the target
user or an admin.

PUT /users/{id}

Response:
  - 200: User: Updated account
  - 403: Forbidden: You may only update your own account
  - 404: NotFound: User not found
  - 409: Conflict: Username or email already exists
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	if input.Username != nil {
		validator.Required(FieldUsername, *input.Username).
			MinLen(FieldUsername, *input.Username, 3).
			MaxLen(FieldUsername, *input.Username, 50)
	}
	if input.Email != nil {
		validator.Required(FieldEmail, *input.Email).
			Email(FieldEmail, *input.Email)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.userService.Update(request.Context(), claims, requestutil.Param(request, "id"), UpdateInput{
		Username: input.Username,
		Email:    input.Email,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
ChangePassword rotates the caller's own password.

PUT /users/change-password

Response:
  - 200: {"message": "Password updated"}
  - 400: ValidationError: Old password is incorrect
  - 401: Unauthorized: Token is missing
*/
func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input changePasswordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldOldPassword, input.OldPassword).
		Required(FieldNewPassword, input.NewPassword).
		MinLen(FieldNewPassword, input.NewPassword, 8)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.userService.ChangePassword(request.Context(), userID, input.OldPassword, input.NewPassword); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{"message": "Password updated"})
}

/*
ChangeRole assigns a role to a user. Admin-only.

PUT /users/role/{id}

Response:
  - 200: User: Updated account
  - 400: ValidationError: Invalid role
  - 403: Forbidden: Admin role required
  - 404: NotFound: User not found
*/
func (handler *Handler) changeRole(writer http.ResponseWriter, request *http.Request) {
	var input changeRoleRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	user, err := handler.userService.ChangeRole(request.Context(), requestutil.Param(request, "id"), input.Role)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
Delete removes a user account. The caller must be the target user or an
admin.

DELETE /users/{id}

Response:
  - 204: No Content
  - 403: Forbidden: You may only delete your own account
  - 404: NotFound: User not found
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.userService.Delete(request.Context(), claims, requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
