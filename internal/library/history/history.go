// Copyright (c) 2026 MangaVault. All rights reserved.
// Author: vu.hoanganh.dev@gmail.com

/*
Package history implements per-user reading history.

The catalogue keeps exactly one row per (user, manga) pair: reading a
chapter upserts that row, so concurrent reads of the same series never
fork the progress record. Explicit updates require the row to exist; the
upsert path is the only one that creates rows.
*/
package history

import "time"

// Entry represents one user's reading position within a series.
type Entry struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	MangaID     string    `json:"manga_id"`
	LastChapter *string   `json:"last_chapter,omitempty"`
	LastReadAt  time.Time `json:"last_read_at"`
}

// JSON field identifiers used by validation error details.
const (
	FieldMangaID     = "manga_id"
	FieldLastChapter = "last_chapter"
)
