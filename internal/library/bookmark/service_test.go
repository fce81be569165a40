// Copyright (c) 2026 MangaVault. All rights reserved.
// Author: vu.hoanganh.dev@gmail.com

package bookmark_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoanganhvu/mangavault/internal/library/bookmark"
	"github.com/hoanganhvu/mangavault/internal/platform/apperr"
	"github.com/hoanganhvu/mangavault/pkg/uuid"
)

// fakeBookmarkRepository is an in-memory [bookmark.BookmarkRepository].
// Toggle mirrors the transactional delete-or-insert of the real store.
type fakeBookmarkRepository struct {
	byID map[string]*bookmark.Bookmark
}

func newFakeBookmarkRepository() *fakeBookmarkRepository {
	return &fakeBookmarkRepository{byID: map[string]*bookmark.Bookmark{}}
}

func (f *fakeBookmarkRepository) Create(_ context.Context, entity *bookmark.Bookmark) error {
	for _, existing := range f.byID {
		if existing.UserID == entity.UserID && existing.MangaID == entity.MangaID {
			return apperr.Conflict("Bookmark already exists for this manga")
		}
	}
	clone := *entity
	f.byID[entity.ID] = &clone
	return nil
}

func (f *fakeBookmarkRepository) FindByID(_ context.Context, id string) (*bookmark.Bookmark, error) {
	if entity, found := f.byID[id]; found {
		clone := *entity
		return &clone, nil
	}
	return nil, apperr.NotFound("Bookmark")
}

func (f *fakeBookmarkRepository) FindByUserAndManga(_ context.Context, userID, mangaID string) (*bookmark.Bookmark, error) {
	for _, entity := range f.byID {
		if entity.UserID == userID && entity.MangaID == mangaID {
			clone := *entity
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("Bookmark")
}

func (f *fakeBookmarkRepository) ListByUser(_ context.Context, userID string, limit, offset int) ([]*bookmark.Bookmark, int, error) {
	mine := []*bookmark.Bookmark{}
	for _, entity := range f.byID {
		if entity.UserID == userID {
			mine = append(mine, entity)
		}
	}
	total := len(mine)
	if offset >= total {
		return []*bookmark.Bookmark{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return mine[offset:end], total, nil
}

func (f *fakeBookmarkRepository) Toggle(_ context.Context, userID, mangaID string) (*bookmark.Bookmark, bool, error) {
	for id, entity := range f.byID {
		if entity.UserID == userID && entity.MangaID == mangaID {
			delete(f.byID, id)
			return nil, false, nil
		}
	}
	entity := &bookmark.Bookmark{
		ID:      uuid.New(),
		UserID:  userID,
		MangaID: mangaID,
		AddedAt: time.Now(),
	}
	f.byID[entity.ID] = entity
	return entity, true, nil
}

func (f *fakeBookmarkRepository) Update(_ context.Context, entity *bookmark.Bookmark) error {
	if _, found := f.byID[entity.ID]; !found {
		return apperr.NotFound("Bookmark")
	}
	clone := *entity
	f.byID[entity.ID] = &clone
	return nil
}

func (f *fakeBookmarkRepository) Delete(_ context.Context, id string) error {
	if _, found := f.byID[id]; !found {
		return apperr.NotFound("Bookmark")
	}
	delete(f.byID, id)
	return nil
}

/*
TestService_Add verifies creation and the one-bookmark-per-series rule.
*/
func TestService_Add(t *testing.T) {
	service := bookmark.NewService(newFakeBookmarkRepository())

	entity, err := service.Add(context.Background(), "user-1", bookmark.AddInput{MangaID: "manga-1"})
	require.NoError(t, err)
	assert.Equal(t, "user-1", entity.UserID)

	// Second bookmark for the same series is a 409.
	_, err = service.Add(context.Background(), "user-1", bookmark.AddInput{MangaID: "manga-1"})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperr.As(err).HTTPStatus)

	// Another user can bookmark the same series.
	_, err = service.Add(context.Background(), "user-2", bookmark.AddInput{MangaID: "manga-1"})
	assert.NoError(t, err)
}

/*
TestService_Toggle verifies that two toggles return the state to baseline.
*/
func TestService_Toggle(t *testing.T) {
	repo := newFakeBookmarkRepository()
	service := bookmark.NewService(repo)

	// First toggle adds.
	result, err := service.Toggle(context.Background(), "user-1", "manga-1")
	require.NoError(t, err)
	assert.True(t, result.Added)
	require.NotNil(t, result.Bookmark)

	// Second toggle removes the same bookmark.
	result, err = service.Toggle(context.Background(), "user-1", "manga-1")
	require.NoError(t, err)
	assert.False(t, result.Added)
	assert.Nil(t, result.Bookmark)

	// Baseline restored: nothing left for the user.
	items, total, err := service.ListMine(context.Background(), "user-1", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Zero(t, total)
}

/*
TestService_OwnershipGate verifies that a non-owner gets 403 and the
resource stays unchanged.
*/
func TestService_OwnershipGate(t *testing.T) {
	service := bookmark.NewService(newFakeBookmarkRepository())

	entity, err := service.Add(context.Background(), "owner", bookmark.AddInput{MangaID: "manga-1"})
	require.NoError(t, err)

	// Reads, updates, and deletes by a stranger are all forbidden.
	_, err = service.Get(context.Background(), "stranger", entity.ID)
	assert.Equal(t, http.StatusForbidden, apperr.As(err).HTTPStatus)

	favorited := true
	_, err = service.Update(context.Background(), "stranger", entity.ID, bookmark.UpdateInput{Favorited: &favorited})
	assert.Equal(t, http.StatusForbidden, apperr.As(err).HTTPStatus)

	err = service.Delete(context.Background(), "stranger", entity.ID)
	assert.Equal(t, http.StatusForbidden, apperr.As(err).HTTPStatus)

	// The bookmark is intact and unmodified for its owner.
	kept, err := service.Get(context.Background(), "owner", entity.ID)
	require.NoError(t, err)
	assert.False(t, kept.Favorited)
}

/*
TestService_Update verifies field updates and the last_updated stamp.
*/
func TestService_Update(t *testing.T) {
	service := bookmark.NewService(newFakeBookmarkRepository())

	entity, err := service.Add(context.Background(), "owner", bookmark.AddInput{MangaID: "manga-1"})
	require.NoError(t, err)
	assert.Nil(t, entity.LastUpdated)

	favorited := true
	lastRead := "chapter-42"
	updated, err := service.Update(context.Background(), "owner", entity.ID, bookmark.UpdateInput{
		Favorited:       &favorited,
		LastReadChapter: &lastRead,
	})
	require.NoError(t, err)
	assert.True(t, updated.Favorited)
	require.NotNil(t, updated.LastReadChapter)
	assert.Equal(t, "chapter-42", *updated.LastReadChapter)
	assert.NotNil(t, updated.LastUpdated)
}
