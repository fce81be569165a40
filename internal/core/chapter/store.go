// Copyright (c) 2026 MangaVault. All rights reserved.
// Author: vu.hoanganh.dev@gmail.com

package chapter

import (
	"context"
	"time"
)

// SearchFilter narrows a chapter search. Zero values mean "no filter".
type SearchFilter struct {
	// Title is matched as a case-insensitive substring.
	Title string
	// Language is matched exactly.
	Language string
}

// ChapterRepository defines the persistence contract for chapters.
type ChapterRepository interface {
	// Create persists a new chapter. Duplicate (manga_id, chapter_number)
	// pairs surface as a Conflict; an unknown manga_id as a 400.
	Create(ctx context.Context, chapter *Chapter) error

	// FindByID returns the chapter with the given id, or NotFound.
	FindByID(ctx context.Context, id string) (*Chapter, error)

	// List returns one page of all chapters plus the total count.
	List(ctx context.Context, limit, offset int) ([]*Chapter, int, error)

	// ListByManga returns every chapter of a series in release order.
	ListByManga(ctx context.Context, mangaID string) ([]*Chapter, error)

	// Search returns chapters matching the filter in release order.
	Search(ctx context.Context, filter SearchFilter) ([]*Chapter, error)

	// NextAfter returns the chapter of the same series with the smallest
	// release date strictly greater than the given one, or nil when the
	// given chapter is the most recent.
	NextAfter(ctx context.Context, mangaID string, releaseDate time.Time) (*Chapter, error)

	// Update rewrites every column of an existing chapter, or NotFound.
	Update(ctx context.Context, chapter *Chapter) error

	// Delete removes a chapter, or NotFound.
	Delete(ctx context.Context, id string) error
}
