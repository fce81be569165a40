// Copyright (c) 2026 MangaVault. All rights reserved.
// Author: vu.hoanganh.dev@gmail.com

/*
Package bookmark implements per-user manga bookmarks.

A user holds at most one bookmark per series; the toggle endpoint flips
the bookmark atomically so double-taps from a client never create
duplicates. Every read and mutation is scoped to the owning user.
*/
package bookmark

import "time"

// Bookmark represents one user's saved position for a series.
type Bookmark struct {
	ID              string     `json:"id"`
	UserID          string     `json:"user_id"`
	MangaID         string     `json:"manga_id"`
	Favorited       bool       `json:"favorited"`
	AddedAt         time.Time  `json:"added_at"`
	LastReadChapter *string    `json:"last_read_chapter,omitempty"`
	LastUpdated     *time.Time `json:"last_updated,omitempty"`
}

// JSON field identifiers used by validation error details.
const (
	FieldMangaID         = "manga_id"
	FieldFavorited       = "favorited"
	FieldLastReadChapter = "last_read_chapter"
)
