// Copyright (c) 2026 MangaVault. All rights reserved.
// Author: vu.hoanganh.dev@gmail.com

/*
Package manga implements the catalogue of manga series.

It owns the metadata that every other resource hangs off: chapters belong
to a manga, bookmarks and reading history reference one. Mutations are
admin-only; the read surface is public.

# Architecture

  - manga.go          : Entity and field identifiers.
  - store.go          : Repository contract.
  - store_postgres.go : pgx implementation.
  - service.go        : Business rules (slug derivation, partial updates).
  - http.go           : REST delivery layer.
*/
package manga

import "time"

// Manga represents one catalogued series.
type Manga struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Slug          string    `json:"slug"`
	Status        string    `json:"status"`
	CoverURL      string    `json:"cover_url"`
	Genre         string    `json:"genre"`
	BookType      string    `json:"book_type"`
	PublishedDate time.Time `json:"published_date"`
	Rating        float64   `json:"rating"`
	Views         int       `json:"views"`
	Description   *string   `json:"description,omitempty"`
}

// JSON field identifiers used by validation error details.
const (
	FieldTitle         = "title"
	FieldAuthor        = "author"
	FieldStatus        = "status"
	FieldCoverURL      = "cover_url"
	FieldGenre         = "genre"
	FieldBookType      = "book_type"
	FieldPublishedDate = "published_date"
	FieldRating        = "rating"
)
