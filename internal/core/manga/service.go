// Copyright (c) 2026 MangaVault. All rights reserved.
// Author: vu.hoanganh.dev@gmail.com

package manga

import (
	"context"
	"time"

	"github.com/hoanganhvu/mangavault/pkg/slug"
	"github.com/hoanganhvu/mangavault/pkg/uuid"
)

// Service implements the catalogue use cases.
type Service struct {
	mangaRepository MangaRepository
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(repo MangaRepository) *Service {
	return &Service{mangaRepository: repo}
}

// CreateInput holds the data required to register a new series.
type CreateInput struct {
	Title         string
	Author        string
	Status        string
	CoverURL      string
	Genre         string
	BookType      string
	PublishedDate time.Time
	Rating        float64
	Description   *string
}

/*
Create registers a new series in the catalogue.

Description: The URL slug is derived from the title; the view counter
starts at zero.

Returns:
  - *Manga: Created entity
  - error: Conflict when the (title, author) pair exists
*/
func (service *Service) Create(context context.Context, input CreateInput) (*Manga, error) {
	entity := &Manga{
		ID:            uuid.New(),
		Title:         input.Title,
		Author:        input.Author,
		Slug:          slug.From(input.Title),
		Status:        input.Status,
		CoverURL:      input.CoverURL,
		Genre:         input.Genre,
		BookType:      input.BookType,
		PublishedDate: input.PublishedDate,
		Rating:        input.Rating,
		Description:   input.Description,
	}

	if err := service.mangaRepository.Create(context, entity); err != nil {
		return nil, err
	}

	return entity, nil
}

/*
Get returns the series with the given id.

Returns:
  - *Manga: Hydrated entity
  - error: apperr.NotFound when absent
*/
func (service *Service) Get(context context.Context, id string) (*Manga, error) {
	return service.mangaRepository.FindByID(context, id)
}

/*
List returns one page of the catalogue plus the total series count.
*/
func (service *Service) List(context context.Context, limit, offset int) ([]*Manga, int, error) {
	return service.mangaRepository.List(context, limit, offset)
}

// UpdateInput holds the mutable series fields. Nil pointers leave the
// corresponding column untouched.
type UpdateInput struct {
	Title         *string
	Author        *string
	Status        *string
	CoverURL      *string
	Genre         *string
	BookType      *string
	PublishedDate *time.Time
	Rating        *float64
	Description   *string
}

/*
Update applies a partial modification to an existing series.

Description: The slug is refreshed whenever the title changes so catalogue
URLs stay in sync with the display title.

Returns:
  - *Manga: Updated entity
  - error: NotFound, Conflict, or storage failures
*/
func (service *Service) Update(context context.Context, id string, input UpdateInput) (*Manga, error) {
	entity, err := service.mangaRepository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		entity.Title = *input.Title
		entity.Slug = slug.From(*input.Title)
	}
	if input.Author != nil {
		entity.Author = *input.Author
	}
	if input.Status != nil {
		entity.Status = *input.Status
	}
	if input.CoverURL != nil {
		entity.CoverURL = *input.CoverURL
	}
	if input.Genre != nil {
		entity.Genre = *input.Genre
	}
	if input.BookType != nil {
		entity.BookType = *input.BookType
	}
	if input.PublishedDate != nil {
		entity.PublishedDate = *input.PublishedDate
	}
	if input.Rating != nil {
		entity.Rating = *input.Rating
	}
	if input.Description != nil {
		entity.Description = input.Description
	}

	if err := service.mangaRepository.Update(context, entity); err != nil {
		return nil, err
	}

	return entity, nil
}

/*
Delete removes a series from the catalogue. Chapters cascade.

Returns:
  - error: NotFound or storage failures
*/
func (service *Service) Delete(context context.Context, id string) error {
	return service.mangaRepository.Delete(context, id)
}
