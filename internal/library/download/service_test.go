// Copyright (c) 2026 MangaVault. All rights reserved.
// Author: vu.hoanganh.dev@gmail.com

package download_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoanganhvu/mangavault/internal/library/download"
	"github.com/hoanganhvu/mangavault/internal/platform/apperr"
)

// fakeDownloadRepository is an in-memory [download.DownloadRepository].
type fakeDownloadRepository struct {
	byID map[string]*download.Download
}

func newFakeDownloadRepository() *fakeDownloadRepository {
	return &fakeDownloadRepository{byID: map[string]*download.Download{}}
}

func (f *fakeDownloadRepository) Create(_ context.Context, entity *download.Download) error {
	for _, existing := range f.byID {
		if existing.UserID == entity.UserID && existing.ChapterID == entity.ChapterID {
			return apperr.Conflict("Chapter already downloaded")
		}
	}
	clone := *entity
	f.byID[entity.ID] = &clone
	return nil
}

func (f *fakeDownloadRepository) FindByID(_ context.Context, id string) (*download.Download, error) {
	if entity, found := f.byID[id]; found {
		clone := *entity
		return &clone, nil
	}
	return nil, apperr.NotFound("Download")
}

func (f *fakeDownloadRepository) List(_ context.Context, limit, offset int) ([]*download.Download, int, error) {
	all := make([]*download.Download, 0, len(f.byID))
	for _, entity := range f.byID {
		all = append(all, entity)
	}
	total := len(all)
	if offset >= total {
		return []*download.Download{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (f *fakeDownloadRepository) Update(_ context.Context, entity *download.Download) error {
	if _, found := f.byID[entity.ID]; !found {
		return apperr.NotFound("Download")
	}
	clone := *entity
	f.byID[entity.ID] = &clone
	return nil
}

func (f *fakeDownloadRepository) Delete(_ context.Context, id string) error {
	if _, found := f.byID[id]; !found {
		return apperr.NotFound("Download")
	}
	delete(f.byID, id)
	return nil
}

/*
TestService_Create verifies the per-user, per-chapter uniqueness rule.
*/
func TestService_Create(t *testing.T) {
	service := download.NewService(newFakeDownloadRepository())

	entity, err := service.Create(context.Background(), "user-1", "chapter-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", entity.UserID)
	assert.False(t, entity.DownloadedAt.IsZero())

	// Same user, same chapter: 409.
	_, err = service.Create(context.Background(), "user-1", "chapter-1")
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperr.As(err).HTTPStatus)

	// A different user may download the same chapter.
	_, err = service.Create(context.Background(), "user-2", "chapter-1")
	assert.NoError(t, err)
}

/*
TestService_OwnershipGate verifies non-owners cannot touch a record.
*/
func TestService_OwnershipGate(t *testing.T) {
	service := download.NewService(newFakeDownloadRepository())

	entity, err := service.Create(context.Background(), "owner", "chapter-1")
	require.NoError(t, err)

	_, err = service.Update(context.Background(), "stranger", entity.ID, "chapter-2")
	assert.Equal(t, http.StatusForbidden, apperr.As(err).HTTPStatus)

	err = service.Delete(context.Background(), "stranger", entity.ID)
	assert.Equal(t, http.StatusForbidden, apperr.As(err).HTTPStatus)

	// Owner update succeeds and re-points the chapter.
	updated, err := service.Update(context.Background(), "owner", entity.ID, "chapter-2")
	require.NoError(t, err)
	assert.Equal(t, "chapter-2", updated.ChapterID)

	require.NoError(t, service.Delete(context.Background(), "owner", entity.ID))
}
