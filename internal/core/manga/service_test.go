// Copyright (c) 2026 MangaVault. All rights reserved.
// Author: vu.hoanganh.dev@gmail.com

package manga_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoanganhvu/mangavault/internal/core/manga"
	"github.com/hoanganhvu/mangavault/internal/platform/apperr"
)

// fakeMangaRepository is an in-memory [manga.MangaRepository].
type fakeMangaRepository struct {
	byID map[string]*manga.Manga
}

func newFakeMangaRepository() *fakeMangaRepository {
	return &fakeMangaRepository{byID: map[string]*manga.Manga{}}
}

func (f *fakeMangaRepository) Create(_ context.Context, entity *manga.Manga) error {
	for _, existing := range f.byID {
		if existing.Title == entity.Title && existing.Author == entity.Author {
			return apperr.Conflict("Manga with this title and author already exists")
		}
	}
	clone := *entity
	f.byID[entity.ID] = &clone
	return nil
}

func (f *fakeMangaRepository) FindByID(_ context.Context, id string) (*manga.Manga, error) {
	if entity, found := f.byID[id]; found {
		clone := *entity
		return &clone, nil
	}
	return nil, apperr.NotFound("Manga")
}

func (f *fakeMangaRepository) List(_ context.Context, limit, offset int) ([]*manga.Manga, int, error) {
	all := make([]*manga.Manga, 0, len(f.byID))
	for _, entity := range f.byID {
		all = append(all, entity)
	}
	total := len(all)
	if offset >= total {
		return []*manga.Manga{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (f *fakeMangaRepository) Update(_ context.Context, entity *manga.Manga) error {
	if _, found := f.byID[entity.ID]; !found {
		return apperr.NotFound("Manga")
	}
	for id, existing := range f.byID {
		if id != entity.ID && existing.Title == entity.Title && existing.Author == entity.Author {
			return apperr.Conflict("Manga with this title and author already exists")
		}
	}
	clone := *entity
	f.byID[entity.ID] = &clone
	return nil
}

func (f *fakeMangaRepository) Delete(_ context.Context, id string) error {
	if _, found := f.byID[id]; !found {
		return apperr.NotFound("Manga")
	}
	delete(f.byID, id)
	return nil
}

func sampleInput(title, author string) manga.CreateInput {
	return manga.CreateInput{
		Title:         title,
		Author:        author,
		Status:        "ongoing",
		CoverURL:      "https://cdn.mangavault.app/covers/x.jpg",
		Genre:         "action",
		BookType:      "manga",
		PublishedDate: time.Date(1997, 7, 22, 0, 0, 0, 0, time.UTC),
		Rating:        9.2,
	}
}

/*
TestService_Create verifies id/slug assignment and duplicate rejection.
*/
func TestService_Create(t *testing.T) {
	service := manga.NewService(newFakeMangaRepository())

	entity, err := service.Create(context.Background(), sampleInput("One Piece", "Eiichiro Oda"))
	require.NoError(t, err)

	assert.NotEmpty(t, entity.ID)
	assert.Equal(t, "one-piece", entity.Slug)
	assert.Zero(t, entity.Views)

	// Same title by a different author is a separate series.
	_, err = service.Create(context.Background(), sampleInput("One Piece", "Someone Else"))
	assert.NoError(t, err)

	// Exact (title, author) duplicate is rejected.
	_, err = service.Create(context.Background(), sampleInput("One Piece", "Eiichiro Oda"))
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperr.As(err).HTTPStatus)
}

/*
TestService_Update verifies partial updates and slug refresh on retitle.
*/
func TestService_Update(t *testing.T) {
	repo := newFakeMangaRepository()
	service := manga.NewService(repo)

	entity, err := service.Create(context.Background(), sampleInput("Old Title", "Author"))
	require.NoError(t, err)

	// Updating only the status leaves the slug alone.
	status := "completed"
	updated, err := service.Update(context.Background(), entity.ID, manga.UpdateInput{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, "completed", updated.Status)
	assert.Equal(t, "old-title", updated.Slug)

	// Retitling refreshes the slug.
	title := "Brand New Title"
	updated, err = service.Update(context.Background(), entity.ID, manga.UpdateInput{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "brand-new-title", updated.Slug)

	// Unknown id is a 404.
	_, err = service.Update(context.Background(), "missing-id", manga.UpdateInput{Status: &status})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.As(err).HTTPStatus)
}

/*
TestService_Delete verifies removal and the 404 on unknown ids.
*/
func TestService_Delete(t *testing.T) {
	service := manga.NewService(newFakeMangaRepository())

	entity, err := service.Create(context.Background(), sampleInput("Short Lived", "Author"))
	require.NoError(t, err)

	require.NoError(t, service.Delete(context.Background(), entity.ID))

	_, err = service.Get(context.Background(), entity.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.As(err).HTTPStatus)
}
