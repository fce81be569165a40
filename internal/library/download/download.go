// Copyright (c) 2026 MangaVault. All rights reserved.
// Author: vu.hoanganh.dev@gmail.com

/*
Package download tracks which chapters a user has downloaded.

Each (user, chapter) pair is recorded at most once. Creation is
user-scoped; the full listing is an admin view.
*/
package download

import "time"

// Download represents one downloaded chapter record.
type Download struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	ChapterID    string    `json:"chapter_id"`
	DownloadedAt time.Time `json:"downloaded_at"`
}

// JSON field identifiers used by validation error details.
const (
	FieldChapterID = "chapter_id"
)
