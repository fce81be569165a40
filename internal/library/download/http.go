// Copyright (c) 2026 MangaVault. All rights reserved.
// Author: vu.hoanganh.dev@gmail.com

package download

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hoanganhvu/mangavault/internal/platform/middleware"
	requestutil "github.com/hoanganhvu/mangavault/internal/platform/request"
	"github.com/hoanganhvu/mangavault/internal/platform/respond"
	"github.com/hoanganhvu/mangavault/internal/platform/validate"
	"github.com/hoanganhvu/mangavault/pkg/pagination"
)

// # Definitions & Constructors

// Handler implements the download tracking HTTP endpoints.
type Handler struct {
	downloadService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{downloadService: service}
}

// Routes returns a [chi.Router] configured with download routes.
//
// # Endpoints
//   - POST   /     : Record a downloaded chapter (auth).
//   - PUT    /{id} : Re-point a record (owner-only).
//   - DELETE /{id} : Remove a record (owner-only).
//   - GET    /     : Paginated listing of all records (admin).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/", handler.create)
		r.Put("/{id}", handler.update)
		r.Delete("/{id}", handler.delete)
	})

	// Admin endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin)
		r.Get("/", handler.list)
	})

	return router
}

// # Request Payloads

type createRequest struct {
	ChapterID string `json:"chapter_id"`
}

type updateRequest struct {
	ChapterID string `json:"chapter_id"`
}

// # Endpoints

/*
Create records that the calling user downloaded a chapter.

POST /download/

Response:
  - 201: Download: Created record
  - 400: ValidationError: Bad input or unknown chapter
  - 409: Conflict: Chapter already downloaded
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldChapterID, input.ChapterID).
		UUID(FieldChapterID, input.ChapterID)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entity, err := handler.downloadService.Create(request.Context(), userID, input.ChapterID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, entity)
}

/*
List returns one page of all download records. Admin-only.

GET /download/?page=&per_page=

Response:
  - 200: {page, per_page, total_downloads, downloads}
  - 403: Forbidden: Admin role required
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request, pagination.DefaultPerPage)

	items, total, err := handler.downloadService.List(request.Context(), params.PerPage, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, "downloads", items, params, total)
}

/*
Update re-points a download record at another chapter. Owner-only.

PUT /download/{id}

Response:
  - 200: Download: Updated record
  - 403: Forbidden: You may only access your own downloads
  - 404: NotFound: Download not found
  - 409: Conflict: Chapter already downloaded
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
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
	validator.Required(FieldChapterID, input.ChapterID).
		UUID(FieldChapterID, input.ChapterID)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entity, err := handler.downloadService.Update(request.Context(), userID, requestutil.Param(request, "id"), input.ChapterID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entity)
}

/*
Delete removes a download record. Owner-only.

DELETE /download/{id}

Response:
  - 204: No Content
  - 403: Forbidden: You may only access your own downloads
  - 404: NotFound: Download not found
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.downloadService.Delete(request.Context(), userID, requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
