// Copyright (c) 2026 MangaVault. All rights reserved.
// Author: vu.hoanganh.dev@gmail.com

package history

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hoanganhvu/mangavault/internal/platform/dberr"
	"github.com/hoanganhvu/mangavault/pkg/uuid"
)

// # PostgreSQL Repository

// PostgresHistoryRepository implements [HistoryRepository] using pgx.
//
// It also satisfies the chapter package's HistoryRecorder contract, which
// is how reading a chapter feeds this table.
type PostgresHistoryRepository struct {
	pool *pgxpool.Pool
}

// NewHistoryRepository creates a new PostgreSQL implementation of the [HistoryRepository].
func NewHistoryRepository(pool *pgxpool.Pool) *PostgresHistoryRepository {
	return &PostgresHistoryRepository{pool: pool}
}

const historyColumns = `id, user_id, manga_id, last_chapter, last_read_at`

/*
Touch upserts the (user, manga) reading position.

Description: A single INSERT ... ON CONFLICT DO UPDATE against the
(user_id, manga_id) unique constraint, so two concurrent reads of the
same series settle on one row with the later timestamp.

Parameters:
  - userID/mangaID: the progress row key
  - chapterID: recorded as last_chapter

Returns:
  - error: ValidationError on unknown user/manga, or database errors
*/
func (repository *PostgresHistoryRepository) Touch(context context.Context, userID, mangaID, chapterID string) error {
	const query = `
		INSERT INTO reading_history (id, user_id, manga_id, last_chapter, last_read_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (user_id, manga_id)
		DO UPDATE SET last_chapter = EXCLUDED.last_chapter, last_read_at = now()`

	_, err := repository.pool.Exec(context, query, uuid.New(), userID, mangaID, chapterID)
	return dberr.Classify(err, "Reading history", "")
}

/*
List returns one page of all history rows, most recent first, plus the
total count via a window function.
*/
func (repository *PostgresHistoryRepository) List(context context.Context, limit, offset int) ([]*Entry, int, error) {
	const query = `
		SELECT ` + historyColumns + `, COUNT(*) OVER() AS total
		FROM reading_history
		ORDER BY last_read_at DESC, id
		LIMIT $1 OFFSET $2`

	rows, err := repository.pool.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Classify(err, "Reading history", "")
	}
	defer rows.Close()

	var (
		items = []*Entry{}
		total int
	)
	for rows.Next() {
		entry := &Entry{}
		if err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.MangaID,
			&entry.LastChapter,
			&entry.LastReadAt,
			&total,
		); err != nil {
			return nil, 0, dberr.Classify(err, "Reading history", "")
		}
		items = append(items, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Classify(err, "Reading history", "")
	}

	return items, total, nil
}

/*
ListByUser returns every history row of one user, most recent first.
*/
func (repository *PostgresHistoryRepository) ListByUser(context context.Context, userID string) ([]*Entry, error) {
	const query = `
		SELECT ` + historyColumns + `
		FROM reading_history
		WHERE user_id = $1
		ORDER BY last_read_at DESC, id`

	rows, err := repository.pool.Query(context, query, userID)
	if err != nil {
		return nil, dberr.Classify(err, "Reading history", "")
	}
	defer rows.Close()

	items := []*Entry{}
	for rows.Next() {
		entry := &Entry{}
		if err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.MangaID,
			&entry.LastChapter,
			&entry.LastReadAt,
		); err != nil {
			return nil, dberr.Classify(err, "Reading history", "")
		}
		items = append(items, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Classify(err, "Reading history", "")
	}

	return items, nil
}

/*
Update rewrites the last chapter of an existing (user, manga) row.

Description: Unlike Touch this never creates rows: clients can only
correct progress for a series they have actually read.

Returns:
  - *Entry: Updated row
  - error: apperr.NotFound when no row exists, or database errors
*/
func (repository *PostgresHistoryRepository) Update(context context.Context, userID, mangaID, lastChapter string) (*Entry, error) {
	const query = `
		UPDATE reading_history
		SET last_chapter = $3, last_read_at = now()
		WHERE user_id = $1 AND manga_id = $2
		RETURNING ` + historyColumns

	entry := &Entry{}
	err := repository.pool.QueryRow(context, query, userID, mangaID, lastChapter).Scan(
		&entry.ID,
		&entry.UserID,
		&entry.MangaID,
		&entry.LastChapter,
		&entry.LastReadAt,
	)
	if err != nil {
		return nil, dberr.Classify(err, "Reading history", "")
	}

	return entry, nil
}

/*
DeleteByUser removes every history row of one user.

Returns:
  - error: apperr.NotFound when the user had no history, or database errors
*/
func (repository *PostgresHistoryRepository) DeleteByUser(context context.Context, userID string) error {
	const query = `DELETE FROM reading_history WHERE user_id = $1`

	tag, err := repository.pool.Exec(context, query, userID)
	if err != nil {
		return dberr.Classify(err, "Reading history", "")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Classify(pgx.ErrNoRows, "Reading history", "")
	}

	return nil
}
