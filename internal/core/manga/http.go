// Copyright (c) 2026 MangaVault. All rights reserved.
// Author: vu.hoanganh.dev@gmail.com

package manga

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

// Handler implements the catalogue HTTP endpoints.
type Handler struct {
	mangaService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{mangaService: service}
}

// Routes returns a [chi.Router] configured with catalogue routes.
//
// # Endpoints
//   - GET    /     : Paginated catalogue listing (public).
//   - GET    /{id} : Single series (public).
//   - POST   /     : Register a series (admin).
//   - PUT    /{id} : Partial update (admin).
//   - DELETE /{id} : Remove a series (admin).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Get("/", handler.list)
	router.Get("/{id}", handler.get)

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

// dateOnly accepts "2006-01-02" date strings in JSON payloads.
type dateOnly struct {
	time.Time
}

func (d *dateOnly) UnmarshalJSON(data []byte) error {
	trimmed := string(data)
	if trimmed == "null" {
		return nil
	}
	parsed, err := time.Parse(`"2006-01-02"`, trimmed)
	if err != nil {
		return err
	}
	d.Time = parsed
	return nil
}

type createRequest struct {
	Title         string   `json:"title"`
	Author        string   `json:"author"`
	Status        string   `json:"status"`
	CoverURL      string   `json:"cover_url"`
	Genre         string   `json:"genre"`
	BookType      string   `json:"book_type"`
	PublishedDate dateOnly `json:"published_date"`
	Rating        float64  `json:"rating"`
	Description   *string  `json:"description"`
}

type updateRequest struct {
	Title         *string   `json:"title"`
	Author        *string   `json:"author"`
	Status        *string   `json:"status"`
	CoverURL      *string   `json:"cover_url"`
	Genre         *string   `json:"genre"`
	BookType      *string   `json:"book_type"`
	PublishedDate *dateOnly `json:"published_date"`
	Rating        *float64  `json:"rating"`
	Description   *string   `json:"description"`
}

// # Endpoints

/*
Create registers a new series in the catalogue. Admin-only.

POST /manga/

Response:
  - 201: Manga: Created series
  - 400: ValidationError: Bad input
  - 409: Conflict: Manga with this title and author already exists
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, 350).
		Required(FieldAuthor, input.Author).
		MaxLen(FieldAuthor, input.Author, 350).
		Required(FieldStatus, input.Status).
		Required(FieldBookType, input.BookType).
		Custom(FieldPublishedDate, input.PublishedDate.IsZero(), "This field is required").
		Custom(FieldRating, input.Rating < 0 || input.Rating > 10, "Must be between 0 and 10")

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entity, err := handler.mangaService.Create(request.Context(), CreateInput{
		Title:         input.Title,
		Author:        input.Author,
		Status:        input.Status,
		CoverURL:      input.CoverURL,
		Genre:         input.Genre,
		BookType:      input.BookType,
		PublishedDate: input.PublishedDate.Time,
		Rating:        input.Rating,
		Description:   input.Description,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, entity)
}

/*
List returns one page of the catalogue.

GET /manga/?page=&per_page=

Description: The catalogue page size defaults to 100 so browsing clients
get a full shelf per request.

Response:
  - 200: {page, per_page, total_mangas, mangas}
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request, pagination.CataloguePerPage)

	items, total, err := handler.mangaService.List(request.Context(), params.PerPage, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, "mangas", items, params, total)
}

/*
Get returns a single series by id.

GET /manga/{id}

Response:
  - 200: Manga
  - 404: NotFound: Manga not found
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	entity, err := handler.mangaService.Get(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entity)
}

/*
Update applies a partial modification to a series. Admin-only.

PUT /manga/{id}

Response:
  - 200: Manga: Updated series
  - 404: NotFound: Manga not found
  - 409: Conflict: Manga with this title and author already exists
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input updateRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	if input.Title != nil {
		validator.Required(FieldTitle, *input.Title).MaxLen(FieldTitle, *input.Title, 350)
	}
	if input.Author != nil {
		validator.Required(FieldAuthor, *input.Author).MaxLen(FieldAuthor, *input.Author, 350)
	}
	if input.Rating != nil {
		validator.Custom(FieldRating, *input.Rating < 0 || *input.Rating > 10, "Must be between 0 and 10")
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	var publishedDate *time.Time
	if input.PublishedDate != nil {
		publishedDate = &input.PublishedDate.Time
	}

	entity, err := handler.mangaService.Update(request.Context(), requestutil.Param(request, "id"), UpdateInput{
		Title:         input.Title,
		Author:        input.Author,
		Status:        input.Status,
		CoverURL:      input.CoverURL,
		Genre:         input.Genre,
		BookType:      input.BookType,
		PublishedDate: publishedDate,
		Rating:        input.Rating,
		Description:   input.Description,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entity)
}

/*
Delete removes a series. Admin-only. Chapters cascade.

DELETE /manga/{id}

Response:
  - 204: No Content
  - 404: NotFound: Manga not found
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.mangaService.Delete(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
