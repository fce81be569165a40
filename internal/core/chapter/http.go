// Copyright (c) 2026 MangaVault. All rights reserved.
// Author: vu.hoanganh.dev@gmail.com

package chapter

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hoanganhvu/mangavault/internal/platform/middleware"
	requestutil "github.com/hoanganhvu/mangavault/internal/platform/request"
	"github.com/hoanganhvu/mangavault/internal/platform/respond"
	"github.com/hoanganhvu/mangavault/internal/platform/validate"
	"github.com/hoanganhvu/mangavault/pkg/pagination"
)

// # Definitions & Constructors

// Handler implements the chapter HTTP endpoints.
type Handler struct {
	chapterService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{chapterService: service}
}

// Routes returns a [chi.Router] configured with chapter routes.
//
// # Endpoints
//   - GET    /                 : Paginated chapter listing (public).
//   - GET    /search           : Title/language search (public).
//   - GET    /manga/{manga_id} : All chapters of one series (public).
//   - GET    /{id}             : Single chapter; records progress when
//     the caller is authenticated.
//   - GET    /{id}/next        : Successor in release order (public).
//   - POST   /                 : Publish a chapter (admin).
//   - PUT    /{id}             : Partial update (admin).
//   - DELETE /{id}             : Remove a chapter (admin).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Get("/", handler.list)
	router.Get("/search", handler.search)
	router.Get("/manga/{manga_id}", handler.listByManga)
	router.Get("/{id}", handler.get)
	router.Get("/{id}/next", handler.next)

	// Admin endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin)
		r.Post("/", handler.create)
		r.Put("/{id}", handler.update)
		r.Delete("/{id}", handler.delete)
	})

	return router
}

// # Request Payloads

type createRequest struct {
	MangaID       string     `json:"manga_id"`
	ChapterNumber string     `json:"chapter_number"`
	Title         *string    `json:"title"`
	ReleaseDate   *time.Time `json:"release_date"`
	Language      string     `json:"language"`
}

type updateRequest struct {
	ChapterNumber *string    `json:"chapter_number"`
	Title         *string    `json:"title"`
	ReleaseDate   *time.Time `json:"release_date"`
	Language      *string    `json:"language"`
}

// # Endpoints

/*
Create publishes a new chapter. Admin-only.

POST /chapter/

Response:
  - 201: Chapter: Published chapter
  - 400: ValidationError: Bad input or unknown manga_id
  - 409: Conflict: Chapter number already exists for this manga
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldMangaID, input.MangaID).
		UUID(FieldMangaID, input.MangaID).
		Required(FieldChapterNumber, input.ChapterNumber).
		MaxLen(FieldChapterNumber, input.ChapterNumber, 50)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	serviceInput := CreateInput{
		MangaID:       input.MangaID,
		ChapterNumber: input.ChapterNumber,
		Title:         input.Title,
		Language:      input.Language,
	}
	if input.ReleaseDate != nil {
		serviceInput.ReleaseDate = *input.ReleaseDate
	}

	entity, err := handler.chapterService.Create(request.Context(), serviceInput)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, entity)
}

/*
List returns one page of all chapters in release order.

GET /chapter/?page=&per_page=

Response:
  - 200: {page, per_page, total_chapters, chapters}
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request, pagination.DefaultPerPage)

	items, total, err := handler.chapterService.List(request.Context(), params.PerPage, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, "chapters", items, params, total)
}

/*
Get returns a single chapter by id.

GET /chapter/{id}

Description: Authentication is optional. When the caller is authenticated,
their reading history for the chapter's series is updated as a side effect.

Response:
  - 200: Chapter
  - 404: NotFound: Chapter not found
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	var readerID string
	if claims := requestutil.Claims(request); claims != nil {
		readerID = claims.UserID
	}

	entity, err := handler.chapterService.Get(request.Context(), requestutil.Param(request, "id"), readerID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entity)
}

/*
ListByManga returns every chapter of one series in release order.

GET /chapter/manga/{manga_id}

Response:
  - 200: {"chapters": [...]}
  - 404: NotFound: Chapters not found (series empty or unknown)
*/
func (handler *Handler) listByManga(writer http.ResponseWriter, request *http.Request) {
	items, err := handler.chapterService.ListByManga(request.Context(), requestutil.Param(request, "manga_id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]interface{}{"chapters": items})
}

/*
Search returns chapters filtered by title substring and/or language.

GET /chapter/search?title=&language=

Response:
  - 200: {"chapters": [...]} (possibly empty)
*/
func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	filter := SearchFilter{
		Title:    request.URL.Query().Get("title"),
		Language: request.URL.Query().Get("language"),
	}

	items, err := handler.chapterService.Search(request.Context(), filter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]interface{}{"chapters": items})
}

/*
Next returns the successor of a chapter in its series' release order.

GET /chapter/{id}/next

Description: A chapter with no successor is a normal reading position, so
the endpoint answers 200 with a message rather than 404.

Response:
  - 200: Chapter, or {"message": "No next chapter"}
  - 404: NotFound: Chapter not found (starting chapter unknown)
*/
func (handler *Handler) next(writer http.ResponseWriter, request *http.Request) {
	entity, err := handler.chapterService.Next(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if entity == nil {
		respond.OK(writer, map[string]string{"message": "No next chapter"})
		return
	}

	respond.OK(writer, entity)
}

/*
Update applies a partial modification to a chapter. Admin-only.

PUT /chapter/{id}

Response:
  - 200: Chapter: Updated chapter
  - 404: NotFound: Chapter not found
  - 409: Conflict: Chapter number already exists for this manga
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input updateRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	if input.ChapterNumber != nil {
		validator.Required(FieldChapterNumber, *input.ChapterNumber).
			MaxLen(FieldChapterNumber, *input.ChapterNumber, 50)
	}
	if input.Language != nil {
		validator.Required(FieldLanguage, *input.Language)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entity, err := handler.chapterService.Update(request.Context(), requestutil.Param(request, "id"), UpdateInput{
		ChapterNumber: input.ChapterNumber,
		Title:         input.Title,
		ReleaseDate:   input.ReleaseDate,
		Language:      input.Language,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entity)
}

/*
Delete removes a chapter. Admin-only.

DELETE /chapter/{id}

Response:
  - 204: No Content
  - 404: NotFound: Chapter not found
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.chapterService.Delete(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
