// Copyright (c) 2026 MangaVault. All rights reserved.
// Author: vu.hoanganh.dev@gmail.com

package bookmark

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

// Handler implements the bookmark HTTP endpoints. Every route requires
// authentication; ownership is enforced in the service.
type Handler struct {
	bookmarkService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{bookmarkService: service}
}

// Routes returns a [chi.Router] configured with bookmark routes.
//
// # Endpoints
//   - POST   /                  : Bookmark a series.
//   - POST   /toggle/{manga_id} : Flip the bookmark for a series.
//   - GET    /                  : Paginated listing of own bookmarks.
//   - GET    /manga/{manga_id}  : Own bookmark for one series.
//   - GET    /{id}              : Single bookmark (owner-only).
//   - PUT    /{id}              : Update progress fields (owner-only).
//   - DELETE /{id}              : Remove a bookmark (owner-only).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequireAuth)

	router.Post("/", handler.add)
	router.Post("/toggle/{manga_id}", handler.toggle)
	router.Get("/", handler.listMine)
	router.Get("/manga/{manga_id}", handler.getForManga)
	router.Get("/{id}", handler.get)
	router.Put("/{id}", handler.update)
	router.Delete("/{id}", handler.delete)

	return router
}

// # Request Payloads

type addRequest struct {
	MangaID         string  `json:"manga_id"`
	Favorited       bool    `json:"favorited"`
	LastReadChapter *string `json:"last_read_chapter"`
}

type updateRequest struct {
	Favorited       *bool   `json:"favorited"`
	LastReadChapter *string `json:"last_read_chapter"`
}

// # Endpoints

/*
Add bookmarks a series for the calling user.

POST /bookmarks/

Response:
  - 201: Bookmark: Created bookmark
  - 400: ValidationError: Bad input or unknown manga
  - 409: Conflict: Bookmark already exists for this manga
*/
func (handler *Handler) add(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input addRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldMangaID, input.MangaID).
		UUID(FieldMangaID, input.MangaID)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entity, err := handler.bookmarkService.Add(request.Context(), userID, AddInput{
		MangaID:         input.MangaID,
		Favorited:       input.Favorited,
		LastReadChapter: input.LastReadChapter,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, entity)
}

/*
Toggle flips the calling user's bookmark for a series.

POST /bookmarks/toggle/{manga_id}

Response:
  - 201: {"message": "added", "bookmark": Bookmark}
  - 200: {"message": "removed"}
  - 400: ValidationError: Unknown manga
*/
func (handler *Handler) toggle(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.bookmarkService.Toggle(request.Context(), userID, requestutil.Param(request, "manga_id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if result.Added {
		respond.Created(writer, map[string]interface{}{
			"message":  "added",
			"bookmark": result.Bookmark,
		})
		return
	}

	respond.OK(writer, map[string]string{"message": "removed"})
}

/*
ListMine returns one page of the calling user's bookmarks.

GET /bookmarks/?page=&per_page=

Response:
  - 200: {page, per_page, total_bookmarks, bookmarks}
*/
func (handler *Handler) listMine(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request, pagination.DefaultPerPage)

	items, total, err := handler.bookmarkService.ListMine(request.Context(), userID, params.PerPage, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, "bookmarks", items, params, total)
}

/*
GetForManga returns the calling user's bookmark for one series.

GET /bookmarks/manga/{manga_id}

Response:
  - 200: Bookmark
  - 404: NotFound: Bookmark not found
*/
func (handler *Handler) getForManga(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entity, err := handler.bookmarkService.GetForManga(request.Context(), userID, requestutil.Param(request, "manga_id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entity)
}

/*
Get returns a single bookmark by id. Owner-only.

GET /bookmarks/{id}

Response:
  - 200: Bookmark
  - 403: Forbidden: You may only access your own bookmarks
  - 404: NotFound: Bookmark not found
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entity, err := handler.bookmarkService.Get(request.Context(), userID, requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entity)
}

/*
Update modifies a bookmark's progress fields. Owner-only.

PUT /bookmarks/{id}

Response:
  - 200: Bookmark: Updated bookmark
  - 403: Forbidden: You may only access your own bookmarks
  - 404: NotFound: Bookmark not found
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

	entity, err := handler.bookmarkService.Update(request.Context(), userID, requestutil.Param(request, "id"), UpdateInput{
		Favorited:       input.Favorited,
		LastReadChapter: input.LastReadChapter,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entity)
}

/*
Delete removes a bookmark. Owner-only.

DELETE /bookmarks/{id}

Response:
  - 204: No Content
  - 403: Forbidden: You may only access your own bookmarks
  - 404: NotFound: Bookmark not found
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.bookmarkService.Delete(request.Context(), userID, requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
