// Copyright (c) 2026 MangaVault. All rights reserved.
// Author: vu.hoanganh.dev@gmail.com

package history

import "context"

// HistoryRepository defines the persistence contract for reading history.
type HistoryRepository interface {
	// Touch upserts the (user, manga) row, recording the given chapter as
	// the last one read and refreshing the timestamp. This is the only
	// operation that creates history rows.
	Touch(ctx context.Context, userID, mangaID, chapterID string) error

	// List returns one page of all history rows plus the total count.
	List(ctx context.Context, limit, offset int) ([]*Entry, int, error)

	// ListByUser returns every history row of one user, most recent first.
	ListByUser(ctx context.Context, userID string) ([]*Entry, error)

	// Update rewrites the last chapter of an existing (user, manga) row.
	// It never creates rows; a missing row surfaces as NotFound.
	Update(ctx context.Context, userID, mangaID, lastChapter string) (*Entry, error)

	// DeleteByUser removes every history row of one user. Zero removed
	// rows surface as NotFound.
	DeleteByUser(ctx context.Context, userID string) error
}
