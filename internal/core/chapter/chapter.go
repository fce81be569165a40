// Copyright (c) 2026 MangaVault. All rights reserved.
// Author: vu.hoanganh.dev@gmail.com

/*
Package chapter implements the per-series chapter index.

Chapters hang off a manga and carry the release metadata that drives
reading order. Fetching a chapter while authenticated also records the
reader's progress through [HistoryRecorder].

# Architecture

  - chapter.go        : Entity, field identifiers, history contract.
  - store.go          : Repository contract.
  - store_postgres.go : pgx implementation.
  - service.go        : Business rules (reading-order, progress recording).
  - http.go           : REST delivery layer.
*/
package chapter

import (
	"context"
	"time"
)

// Chapter represents one released chapter of a series.
type Chapter struct {
	ID            string    `json:"id"`
	MangaID       string    `json:"manga_id"`
	ChapterNumber string    `json:"chapter_number"`
	Title         *string   `json:"title,omitempty"`
	ReleaseDate   time.Time `json:"release_date"`
	Language      string    `json:"language"`
}

// JSON field identifiers used by validation error details.
const (
	FieldMangaID       = "manga_id"
	FieldChapterNumber = "chapter_number"
	FieldTitle         = "title"
	FieldReleaseDate   = "release_date"
	FieldLanguage      = "language"
)

// DefaultLanguage is applied when a chapter is created without one.
const DefaultLanguage = "en"

// HistoryRecorder records that a user has read a chapter of a manga.
//
// # Why an interface?
//
// The reading-history package depends on nothing here; declaring the
// contract on the consumer side keeps the dependency arrow pointing one
// way and lets the service be tested with a recording fake.
type HistoryRecorder interface {
	// Touch upserts the (user, manga) progress row, setting last_chapter
	// to the given chapter id and refreshing the read timestamp.
	Touch(ctx context.Context, userID, mangaID, chapterID string) error
}
