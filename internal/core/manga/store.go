// Copyright (c) 2026 MangaVault. All rights reserved.
// Author: vu.hoanganh.dev@gmail.com

package manga

import "context"

// MangaRepository defines the persistence contract for the catalogue.
//
// # Implementations
//
//   - [PostgresMangaRepository]: Production implementation backed by pgx.
//   - In-memory fakes in the service tests.
type MangaRepository interface {
	// Create persists a new series. Duplicate (title, author) pairs
	// surface as a Conflict.
	Create(ctx context.Context, manga *Manga) error

	// FindByID returns the series with the given id, or NotFound.
	FindByID(ctx context.Context, id string) (*Manga, error)

	// List returns one page of the catalogue plus the total series count.
	List(ctx context.Context, limit, offset int) ([]*Manga, int, error)

	// Update rewrites every column of an existing series, or NotFound.
	Update(ctx context.Context, manga *Manga) error

	// Delete removes a series and cascades its chapters, or NotFound.
	Delete(ctx context.Context, id string) error
}
