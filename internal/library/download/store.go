// Copyright (c) 2026 MangaVault. All rights reserved.
// Author: vu.hoanganh.dev@gmail.com

package download

import "context"

// DownloadRepository defines the persistence contract for download records.
type DownloadRepository interface {
	// Create persists a new record. A second record for the same
	// (user, chapter) pair surfaces as a Conflict.
	Create(ctx context.Context, download *Download) error

	// FindByID returns the record with the given id, or NotFound.
	FindByID(ctx context.Context, id string) (*Download, error)

	// List returns one page of all records plus the total count.
	List(ctx context.Context, limit, offset int) ([]*Download, int, error)

	// Update rewrites the chapter reference of an existing record.
	Update(ctx context.Context, download *Download) error

	// Delete removes a record, or NotFound.
	Delete(ctx context.Context, id string) error
}
