// Copyright (c) 2026 MangaVault. All rights reserved.
// Author: vu.hoanganh.dev@gmail.com

package bookmark

import "context"

// BookmarkRepository defines the persistence contract for bookmarks.
type BookmarkRepository interface {
	// Create persists a new bookmark. A second bookmark for the same
	// (user, manga) pair surfaces as a Conflict.
	Create(ctx context.Context, bookmark *Bookmark) error

	// FindByID returns the bookmark with the given id, or NotFound.
	FindByID(ctx context.Context, id string) (*Bookmark, error)

	// FindByUserAndManga returns the caller's bookmark for one series,
	// or NotFound.
	FindByUserAndManga(ctx context.Context, userID, mangaID string) (*Bookmark, error)

	// ListByUser returns one page of the caller's bookmarks plus their
	// total count.
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*Bookmark, int, error)

	// Toggle atomically removes the (user, manga) bookmark if it exists,
	// or creates it otherwise. It reports added=true when a bookmark was
	// created and returns the created entity; on removal the entity is nil.
	Toggle(ctx context.Context, userID, mangaID string) (*Bookmark, bool, error)

	// Update rewrites the mutable columns of an existing bookmark.
	Update(ctx context.Context, bookmark *Bookmark) error

	// Delete removes a bookmark, or NotFound.
	Delete(ctx context.Context, id string) error
}
