// Copyright (c) 2026 MangaVault. All rights reserved.
// Author: vu.hoanganh.dev@gmail.com

package bookmark

import (
	"context"
	"time"

	"github.com/hoanganhvu/mangavault/internal/platform/apperr"
	"github.com/hoanganhvu/mangavault/pkg/uuid"
)

// Service implements the bookmark use cases. Every operation is scoped
// to the calling user; cross-user access is rejected with Forbidden.
type Service struct {
	bookmarkRepository BookmarkRepository
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(repo BookmarkRepository) *Service {
	return &Service{bookmarkRepository: repo}
}

// AddInput holds the data required to bookmark a series.
type AddInput struct {
	MangaID         string
	Favorited       bool
	LastReadChapter *string
}

/*
Add creates a bookmark for the calling user.

Returns:
  - *Bookmark: Created entity
  - error: Conflict when the series is already bookmarked
*/
func (service *Service) Add(context context.Context, userID string, input AddInput) (*Bookmark, error) {
	entity := &Bookmark{
		ID:              uuid.New(),
		UserID:          userID,
		MangaID:         input.MangaID,
		Favorited:       input.Favorited,
		AddedAt:         time.Now(),
		LastReadChapter: input.LastReadChapter,
	}

	if err := service.bookmarkRepository.Create(context, entity); err != nil {
		return nil, err
	}

	return entity, nil
}

// ToggleResult reports the outcome of a bookmark toggle.
type ToggleResult struct {
	// Added is true when the toggle created a bookmark.
	Added bool
	// Bookmark is the created entity; nil when the toggle removed one.
	Bookmark *Bookmark
}

/*
Toggle flips the calling user's bookmark for a series.

Description: Removal and creation are decided atomically in the store,
so two racing toggles settle on exactly one outcome.

Returns:
  - *ToggleResult: Outcome plus the created entity when added
*/
func (service *Service) Toggle(context context.Context, userID, mangaID string) (*ToggleResult, error) {
	entity, added, err := service.bookmarkRepository.Toggle(context, userID, mangaID)
	if err != nil {
		return nil, err
	}
	return &ToggleResult{Added: added, Bookmark: entity}, nil
}

/*
ListMine returns one page of the calling user's bookmarks.
*/
func (service *Service) ListMine(context context.Context, userID string, limit, offset int) ([]*Bookmark, int, error) {
	return service.bookmarkRepository.ListByUser(context, userID, limit, offset)
}

/*
GetForManga returns the calling user's bookmark for one series.

Returns:
  - *Bookmark: Hydrated entity
  - error: apperr.NotFound when the series is not bookmarked
*/
func (service *Service) GetForManga(context context.Context, userID, mangaID string) (*Bookmark, error) {
	return service.bookmarkRepository.FindByUserAndManga(context, userID, mangaID)
}

/*
Get returns a bookmark by id, enforcing ownership.

Returns:
  - *Bookmark: Hydrated entity
  - error: NotFound when absent, Forbidden when owned by another user
*/
func (service *Service) Get(context context.Context, userID, id string) (*Bookmark, error) {
	return service.findOwned(context, userID, id)
}

// UpdateInput holds the mutable bookmark fields. Nil pointers leave the
// corresponding column untouched.
type UpdateInput struct {
	Favorited       *bool
	LastReadChapter *string
}

/*
Update modifies a bookmark's progress fields, enforcing ownership.

Description: Any change stamps last_updated with the current time.

Returns:
  - *Bookmark: Updated entity
  - error: NotFound, Forbidden, or storage failures
*/
func (service *Service) Update(context context.Context, userID, id string, input UpdateInput) (*Bookmark, error) {
	entity, err := service.findOwned(context, userID, id)
	if err != nil {
		return nil, err
	}

	if input.Favorited != nil {
		entity.Favorited = *input.Favorited
	}
	if input.LastReadChapter != nil {
		entity.LastReadChapter = input.LastReadChapter
	}
	now := time.Now()
	entity.LastUpdated = &now

	if err := service.bookmarkRepository.Update(context, entity); err != nil {
		return nil, err
	}

	return entity, nil
}

/*
Delete removes a bookmark by id, enforcing ownership.

Returns:
  - error: NotFound, Forbidden, or storage failures
*/
func (service *Service) Delete(context context.Context, userID, id string) error {
	if _, err := service.findOwned(context, userID, id); err != nil {
		return err
	}
	return service.bookmarkRepository.Delete(context, id)
}

// findOwned loads a bookmark and verifies it belongs to the caller.
func (service *Service) findOwned(context context.Context, userID, id string) (*Bookmark, error) {
	entity, err := service.bookmarkRepository.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	if entity.UserID != userID {
		return nil, apperr.Forbidden("You may only access your own bookmarks")
	}
	return entity, nil
}
