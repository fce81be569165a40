// Copyright (c) 2026 MangaVault. All rights reserved.
// Author: vu.hoanganh.dev@gmail.com

package chapter

import (
	"context"
	"log/slog"
	"time"

	"github.com/hoanganhvu/mangavault/internal/platform/apperr"
	"github.com/hoanganhvu/mangavault/internal/platform/ctxutil"
	"github.com/hoanganhvu/mangavault/pkg/uuid"
)

// errNoChapters is returned when a series exists without any chapters (or
// the series id is unknown); both cases read as an empty shelf.
var errNoChapters = apperr.NotFound("Chapters")

// Service implements the chapter use cases.
type Service struct {
	chapterRepository ChapterRepository
	historyRecorder   HistoryRecorder
}

// NewService constructs a new [Service].
//
// The recorder may be nil, in which case authenticated reads do not
// record progress (used by tests that only exercise the catalogue side).
func NewService(repo ChapterRepository, recorder HistoryRecorder) *Service {
	return &Service{
		chapterRepository: repo,
		historyRecorder:   recorder,
	}
}

// CreateInput holds the data required to publish a new chapter.
type CreateInput struct {
	MangaID       string
	ChapterNumber string
	Title         *string
	ReleaseDate   time.Time
	Language      string
}

/*
Create publishes a new chapter for a series.

Description: The language defaults to "en" when omitted; a zero release
date defaults to the current time.

Returns:
  - *Chapter: Created entity
  - error: Conflict on duplicate numbering, ValidationError on unknown manga
*/
func (service *Service) Create(context context.Context, input CreateInput) (*Chapter, error) {
	if input.Language == "" {
		input.Language = DefaultLanguage
	}
	if input.ReleaseDate.IsZero() {
		input.ReleaseDate = time.Now()
	}

	entity := &Chapter{
		ID:            uuid.New(),
		MangaID:       input.MangaID,
		ChapterNumber: input.ChapterNumber,
		Title:         input.Title,
		ReleaseDate:   input.ReleaseDate,
		Language:      input.Language,
	}

	if err := service.chapterRepository.Create(context, entity); err != nil {
		return nil, err
	}

	return entity, nil
}

/*
Get returns a chapter and, for authenticated readers, records progress.

Description: When readerID is non-empty the (reader, manga) history row is
upserted with this chapter. Recording is best-effort: a denied or failed
upsert is logged but never blocks the read itself.

Parameters:
  - id: string (chapter id)
  - readerID: string (authenticated user id, empty for anonymous)

Returns:
  - *Chapter: Hydrated entity
  - error: apperr.NotFound when absent
*/
func (service *Service) Get(context context.Context, id, readerID string) (*Chapter, error) {
	entity, err := service.chapterRepository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if readerID != "" && service.historyRecorder != nil {
		if err := service.historyRecorder.Touch(context, readerID, entity.MangaID, entity.ID); err != nil {
			ctxutil.GetLogger(context).WarnContext(context, "reading_history_touch_failed",
				slog.String("chapter_id", entity.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	return entity, nil
}

/*
List returns one page of all chapters plus the total count.
*/
func (service *Service) List(context context.Context, limit, offset int) ([]*Chapter, int, error) {
	return service.chapterRepository.List(context, limit, offset)
}

/*
ListByManga returns every chapter of one series in release order.

Returns:
  - []*Chapter: Non-empty slice
  - error: apperr.NotFound when the series has no chapters
*/
func (service *Service) ListByManga(context context.Context, mangaID string) ([]*Chapter, error) {
	items, err := service.chapterRepository.ListByManga(context, mangaID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errNoChapters
	}
	return items, nil
}

/*
Search returns chapters matching the filter.
*/
func (service *Service) Search(context context.Context, filter SearchFilter) ([]*Chapter, error) {
	return service.chapterRepository.Search(context, filter)
}

/*
Next returns the successor of a chapter in its series' release order.

Returns:
  - *Chapter: The successor, or nil when the chapter is the most recent
  - error: apperr.NotFound when the starting chapter is absent
*/
func (service *Service) Next(context context.Context, id string) (*Chapter, error) {
	current, err := service.chapterRepository.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	return service.chapterRepository.NextAfter(context, current.MangaID, current.ReleaseDate)
}

// UpdateInput holds the mutable chapter fields. Nil pointers leave the
// corresponding column untouched.
type UpdateInput struct {
	ChapterNumber *string
	Title         *string
	ReleaseDate   *time.Time
	Language      *string
}

/*
Update applies a partial modification to an existing chapter.

Returns:
  - *Chapter: Updated entity
  - error: NotFound, Conflict, or storage failures
*/
func (service *Service) Update(context context.Context, id string, input UpdateInput) (*Chapter, error) {
	entity, err := service.chapterRepository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if input.ChapterNumber != nil {
		entity.ChapterNumber = *input.ChapterNumber
	}
	if input.Title != nil {
		entity.Title = input.Title
	}
	if input.ReleaseDate != nil {
		entity.ReleaseDate = *input.ReleaseDate
	}
	if input.Language != nil {
		entity.Language = *input.Language
	}

	if err := service.chapterRepository.Update(context, entity); err != nil {
		return nil, err
	}

	return entity, nil
}

/*
Delete removes a chapter.

Returns:
  - error: NotFound or storage failures
*/
func (service *Service) Delete(context context.Context, id string) error {
	return service.chapterRepository.Delete(context, id)
}
