// Copyright (c) 2026 MangaVault. All rights reserved.
// Author: vu.hoanganh.dev@gmail.com

package history

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hoanganhvu/mangavault/internal/platform/apperr"
	"github.com/hoanganhvu/mangavault/internal/platform/middleware"
	requestutil "github.com/hoanganhvu/mangavault/internal/platform/request"
	"github.com/hoanganhvu/mangavault/internal/platform/respond"
	"github.com/hoanganhvu/mangavault/internal/platform/validate"
	"github.com/hoanganhvu/mangavault/pkg/pagination"
)

// # Definitions & Constructors

// Handler implements the reading-history HTTP endpoints.
type Handler struct {
	historyService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{historyService: service}
}

// Routes returns a [chi.Router] configured with history routes.
//
// # Endpoints
//   - GET    /user                  : Own history (auth).
//   - PUT    /user/{user_id}        : Correct own progress (self-only).
//   - DELETE /user/{user_id}        : Wipe own history (self-only).
//   - GET    /                      : Paginated all-user listing (admin).
//   - GET    /admin/user/{user_id}  : Any user's history (admin).
//   - DELETE /admin/user/{user_id}  : Wipe any user's history (admin).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/user", handler.listMine)
		r.Put("/user/{user_id}", handler.update)
		r.Delete("/user/{user_id}", handler.deleteMine)
	})

	// Admin endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin)
		r.Get("/", handler.list)
		r.Get("/admin/user/{user_id}", handler.listForUser)
		r.Delete("/admin/user/{user_id}", handler.deleteForUser)
	})

	return router
}

// # Request Payloads

type updateRequest struct {
	MangaID     string `json:"manga_id"`
	LastChapter string `json:"last_chapter"`
}

// # Endpoints

/*
List returns one page of all history rows. Admin-only.

GET /history/?page=&per_page=

Response:
  - 200: {page, per_page, total_history, history}
  - 403: Forbidden: Admin role required
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request, pagination.DefaultPerPage)

	items, total, err := handler.historyService.List(request.Context(), params.PerPage, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, "history", items, params, total)
}

/*
ListMine returns the calling user's history, most recent first.

GET /history/user

Response:
  - 200: {"history": [...]}
  - 401: Unauthorized: Token is missing
*/
func (handler *Handler) listMine(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	items, err := handler.historyService.ListForUser(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]interface{}{"history": items})
}

/*
ListForUser returns any user's history. Admin-only.

GET /history/admin/user/{user_id}

Response:
  - 200: {"history": [...]}
  - 403: Forbidden: Admin role required
*/
func (handler *Handler) listForUser(writer http.ResponseWriter, request *http.Request) {
	items, err := handler.historyService.ListForUser(request.Context(), requestutil.Param(request, "user_id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]interface{}{"history": items})
}

/*
Update corrects the caller's progress for one series. Self-only: the path
user id must match the authenticated caller. Never creates rows.

PUT /history/user/{user_id}

Response:
  - 200: Entry: Updated row
  - 400: ValidationError: Missing manga_id or last_chapter
  - 403: Forbidden: You may only modify your own history
  - 404: NotFound: Reading history not found
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if requestutil.Param(request, "user_id") != userID {
		respond.Error(writer, request, apperr.Forbidden("You may only modify your own history"))
		return
	}

	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldMangaID, input.MangaID).
		UUID(FieldMangaID, input.MangaID).
		Required(FieldLastChapter, input.LastChapter)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry, err := handler.historyService.Update(request.Context(), userID, input.MangaID, input.LastChapter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entry)
}

/*
DeleteMine wipes the caller's own history. Self-only.

DELETE /history/user/{user_id}

Response:
  - 204: No Content
  - 403: Forbidden: You may only modify your own history
  - 404: NotFound: Reading history not found
*/
func (handler *Handler) deleteMine(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if requestutil.Param(request, "user_id") != userID {
		respond.Error(writer, request, apperr.Forbidden("You may only modify your own history"))
		return
	}

	if err := handler.historyService.DeleteForUser(request.Context(), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
DeleteForUser wipes any user's history. Admin-only.

DELETE /history/admin/user/{user_id}

Response:
  - 204: No Content
  - 403: Forbidden: Admin role required
  - 404: NotFound: Reading history not found
*/
func (handler *Handler) deleteForUser(writer http.ResponseWriter, request *http.Request) {
	if err := handler.historyService.DeleteForUser(request.Context(), requestutil.Param(request, "user_id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
