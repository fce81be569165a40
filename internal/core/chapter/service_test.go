// Copyright (c) 2026 MangaVault. All rights reserved.
// Author: vu.hoanganh.dev@gmail.com

package chapter_test

import (
	"context"
	"net/http"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoanganhvu/mangavault/internal/core/chapter"
	"github.com/hoanganhvu/mangavault/internal/platform/apperr"
)

// fakeChapterRepository is an in-memory [chapter.ChapterRepository].
type fakeChapterRepository struct {
	byID map[string]*chapter.Chapter
}

func newFakeChapterRepository() *fakeChapterRepository {
	return &fakeChapterRepository{byID: map[string]*chapter.Chapter{}}
}

func (f *fakeChapterRepository) Create(_ context.Context, entity *chapter.Chapter) error {
	for _, existing := range f.byID {
		if existing.MangaID == entity.MangaID && existing.ChapterNumber == entity.ChapterNumber {
			return apperr.Conflict("Chapter number already exists for this manga")
		}
	}
	clone := *entity
	f.byID[entity.ID] = &clone
	return nil
}

func (f *fakeChapterRepository) FindByID(_ context.Context, id string) (*chapter.Chapter, error) {
	if entity, found := f.byID[id]; found {
		clone := *entity
		return &clone, nil
	}
	return nil, apperr.NotFound("Chapter")
}

func (f *fakeChapterRepository) List(_ context.Context, limit, offset int) ([]*chapter.Chapter, int, error) {
	all := f.sorted()
	total := len(all)
	if offset >= total {
		return []*chapter.Chapter{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (f *fakeChapterRepository) ListByManga(_ context.Context, mangaID string) ([]*chapter.Chapter, error) {
	items := []*chapter.Chapter{}
	for _, entity := range f.sorted() {
		if entity.MangaID == mangaID {
			items = append(items, entity)
		}
	}
	return items, nil
}

func (f *fakeChapterRepository) Search(_ context.Context, filter chapter.SearchFilter) ([]*chapter.Chapter, error) {
	items := []*chapter.Chapter{}
	for _, entity := range f.sorted() {
		if filter.Language != "" && entity.Language != filter.Language {
			continue
		}
		items = append(items, entity)
	}
	return items, nil
}

func (f *fakeChapterRepository) NextAfter(_ context.Context, mangaID string, releaseDate time.Time) (*chapter.Chapter, error) {
	var next *chapter.Chapter
	for _, entity := range f.byID {
		if entity.MangaID != mangaID || !entity.ReleaseDate.After(releaseDate) {
			continue
		}
		if next == nil || entity.ReleaseDate.Before(next.ReleaseDate) {
			clone := *entity
			next = &clone
		}
	}
	return next, nil
}

func (f *fakeChapterRepository) Update(_ context.Context, entity *chapter.Chapter) error {
	if _, found := f.byID[entity.ID]; !found {
		return apperr.NotFound("Chapter")
	}
	clone := *entity
	f.byID[entity.ID] = &clone
	return nil
}

func (f *fakeChapterRepository) Delete(_ context.Context, id string) error {
	if _, found := f.byID[id]; !found {
		return apperr.NotFound("Chapter")
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeChapterRepository) sorted() []*chapter.Chapter {
	all := make([]*chapter.Chapter, 0, len(f.byID))
	for _, entity := range f.byID {
		all = append(all, entity)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ReleaseDate.Before(all[j].ReleaseDate) })
	return all
}

// recordingHistory captures Touch calls.
type recordingHistory struct {
	calls [][3]string
}

func (r *recordingHistory) Touch(_ context.Context, userID, mangaID, chapterID string) error {
	r.calls = append(r.calls, [3]string{userID, mangaID, chapterID})
	return nil
}

func release(day int) time.Time {
	return time.Date(2026, 1, day, 0, 0, 0, 0, time.UTC)
}

/*
TestService_Create verifies defaulting and duplicate-number rejection.
*/
func TestService_Create(t *testing.T) {
	service := chapter.NewService(newFakeChapterRepository(), nil)

	entity, err := service.Create(context.Background(), chapter.CreateInput{
		MangaID:       "manga-1",
		ChapterNumber: "1",
	})
	require.NoError(t, err)
	assert.Equal(t, "en", entity.Language)
	assert.False(t, entity.ReleaseDate.IsZero())

	// Duplicate numbering within the same series.
	_, err = service.Create(context.Background(), chapter.CreateInput{
		MangaID:       "manga-1",
		ChapterNumber: "1",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperr.As(err).HTTPStatus)

	// Same number in another series is fine.
	_, err = service.Create(context.Background(), chapter.CreateInput{
		MangaID:       "manga-2",
		ChapterNumber: "1",
	})
	assert.NoError(t, err)
}

/*
TestService_Get_RecordsProgress verifies that authenticated reads upsert
reading history and anonymous reads do not.
*/
func TestService_Get_RecordsProgress(t *testing.T) {
	repo := newFakeChapterRepository()
	recorder := &recordingHistory{}
	service := chapter.NewService(repo, recorder)

	entity, err := service.Create(context.Background(), chapter.CreateInput{
		MangaID:       "manga-1",
		ChapterNumber: "1",
		ReleaseDate:   release(1),
	})
	require.NoError(t, err)

	// Anonymous read: no history side effect.
	_, err = service.Get(context.Background(), entity.ID, "")
	require.NoError(t, err)
	assert.Empty(t, recorder.calls)

	// Authenticated read: one Touch with (user, manga, chapter).
	_, err = service.Get(context.Background(), entity.ID, "user-1")
	require.NoError(t, err)
	require.Len(t, recorder.calls, 1)
	assert.Equal(t, [3]string{"user-1", "manga-1", entity.ID}, recorder.calls[0])
}

/*
TestService_ListByManga verifies release ordering and the empty-series 404.
*/
func TestService_ListByManga(t *testing.T) {
	repo := newFakeChapterRepository()
	service := chapter.NewService(repo, nil)

	for day, number := range map[int]string{3: "3", 1: "1", 2: "2"} {
		_, err := service.Create(context.Background(), chapter.CreateInput{
			MangaID:       "manga-1",
			ChapterNumber: number,
			ReleaseDate:   release(day),
		})
		require.NoError(t, err)
	}

	items, err := service.ListByManga(context.Background(), "manga-1")
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "1", items[0].ChapterNumber)
	assert.Equal(t, "3", items[2].ChapterNumber)

	// A series with no chapters answers 404.
	_, err = service.ListByManga(context.Background(), "empty-series")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.As(err).HTTPStatus)
}

/*
TestService_Next verifies successor selection and the explicit no-next
signal (nil without error).
*/
func TestService_Next(t *testing.T) {
	repo := newFakeChapterRepository()
	service := chapter.NewService(repo, nil)

	first, err := service.Create(context.Background(), chapter.CreateInput{
		MangaID: "manga-1", ChapterNumber: "1", ReleaseDate: release(1),
	})
	require.NoError(t, err)
	second, err := service.Create(context.Background(), chapter.CreateInput{
		MangaID: "manga-1", ChapterNumber: "2", ReleaseDate: release(5),
	})
	require.NoError(t, err)

	// A later chapter of ANOTHER series must never be chosen.
	_, err = service.Create(context.Background(), chapter.CreateInput{
		MangaID: "manga-2", ChapterNumber: "1", ReleaseDate: release(3),
	})
	require.NoError(t, err)

	next, err := service.Next(context.Background(), first.ID)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, second.ID, next.ID)

	// The latest chapter has no successor: nil, no error.
	next, err = service.Next(context.Background(), second.ID)
	require.NoError(t, err)
	assert.Nil(t, next)

	// Unknown starting chapter is a 404.
	_, err = service.Next(context.Background(), "missing-id")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.As(err).HTTPStatus)
}
