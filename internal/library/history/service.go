// Copyright (c) 2026 MangaVault. All rights reserved.
// Author: vu.hoanganh.dev@gmail.com

package history

import "context"

// Service implements the reading-history use cases.
//
// Self-versus-admin access is resolved at the route and handler level;
// the service only carries the storage semantics.
type Service struct {
	historyRepository HistoryRepository
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(repo HistoryRepository) *Service {
	return &Service{historyRepository: repo}
}

/*
Touch upserts the (user, manga) reading position. This is the hook the
chapter read path calls; it satisfies the chapter package's
HistoryRecorder contract.
*/
func (service *Service) Touch(context context.Context, userID, mangaID, chapterID string) error {
	return service.historyRepository.Touch(context, userID, mangaID, chapterID)
}

/*
List returns one page of all history rows. Admin view.
*/
func (service *Service) List(context context.Context, limit, offset int) ([]*Entry, int, error) {
	return service.historyRepository.List(context, limit, offset)
}

/*
ListForUser returns every history row of one user, most recent first.
*/
func (service *Service) ListForUser(context context.Context, userID string) ([]*Entry, error) {
	return service.historyRepository.ListByUser(context, userID)
}

/*
Update corrects the last chapter of an existing (user, manga) row. It
never creates rows.

Returns:
  - *Entry: Updated row
  - error: apperr.NotFound when the user has no history for the series
*/
func (service *Service) Update(context context.Context, userID, mangaID, lastChapter string) (*Entry, error) {
	return service.historyRepository.Update(context, userID, mangaID, lastChapter)
}

/*
DeleteForUser removes every history row of one user.

Returns:
  - error: apperr.NotFound when the user had no history
*/
func (service *Service) DeleteForUser(context context.Context, userID string) error {
	return service.historyRepository.DeleteByUser(context, userID)
}
