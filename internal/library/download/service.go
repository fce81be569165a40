// Copyright (c) 2026 MangaVault. All rights reserved.
// Author: vu.hoanganh.dev@gmail.com

package download

import (
	"context"
	"time"

	"github.com/hoanganhvu/mangavault/internal/platform/apperr"
	"github.com/hoanganhvu/mangavault/pkg/uuid"
)

// Service implements the download tracking use cases.
type Service struct {
	downloadRepository DownloadRepository
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(repo DownloadRepository) *Service {
	return &Service{downloadRepository: repo}
}

/*
Create records that the calling user downloaded a chapter.

Returns:
  - *Download: Created record
  - error: Conflict when the chapter was already recorded for this user
*/
func (service *Service) Create(context context.Context, userID, chapterID string) (*Download, error) {
	entity := &Download{
		ID:           uuid.New(),
		UserID:       userID,
		ChapterID:    chapterID,
		DownloadedAt: time.Now(),
	}

	if err := service.downloadRepository.Create(context, entity); err != nil {
		return nil, err
	}

	return entity, nil
}

/*
List returns one page of all download records. Admin view.
*/
func (service *Service) List(context context.Context, limit, offset int) ([]*Download, int, error) {
	return service.downloadRepository.List(context, limit, offset)
}

/*
Update re-points a download record at another chapter, enforcing ownership.

Returns:
  - *Download: Updated record
  - error: NotFound, Forbidden, Conflict, or storage failures
*/
func (service *Service) Update(context context.Context, userID, id, chapterID string) (*Download, error) {
	entity, err := service.findOwned(context, userID, id)
	if err != nil {
		return nil, err
	}

	entity.ChapterID = chapterID
	entity.DownloadedAt = time.Now()

	if err := service.downloadRepository.Update(context, entity); err != nil {
		return nil, err
	}

	return entity, nil
}

/*
Delete removes a download record, enforcing ownership.

Returns:
  - error: NotFound, Forbidden, or storage failures
*/
func (service *Service) Delete(context context.Context, userID, id string) error {
	if _, err := service.findOwned(context, userID, id); err != nil {
		return err
	}
	return service.downloadRepository.Delete(context, id)
}

// findOwned loads a download record and verifies it belongs to the caller.
func (service *Service) findOwned(context context.Context, userID, id string) (*Download, error) {
	entity, err := service.downloadRepository.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	if entity.UserID != userID {
		return nil, apperr.Forbidden("You may only access your own downloads")
	}
	return entity, nil
}
