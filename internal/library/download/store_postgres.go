// Copyright (c) 2026 MangaVault. All rights reserved.
// Author: vu.hoanganh.dev@gmail.com

package download

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hoanganhvu/mangavault/internal/platform/dberr"
)

// # PostgreSQL Repository

// PostgresDownloadRepository implements [DownloadRepository] using pgx.
type PostgresDownloadRepository struct {
	pool *pgxpool.Pool
}

// NewDownloadRepository creates a new PostgreSQL implementation of the [DownloadRepository].
func NewDownloadRepository(pool *pgxpool.Pool) *PostgresDownloadRepository {
	return &PostgresDownloadRepository{pool: pool}
}

const downloadColumns = `id, user_id, chapter_id, downloaded_at`

/*
Create persists a new download record.

Description: The (user_id, chapter_id) unique constraint rejects duplicate
records (409); an unknown chapter or user violates the foreign keys and
surfaces as a 400.

Returns:
  - error: Conflict, ValidationError, or connectivity errors
*/
func (repository *PostgresDownloadRepository) Create(context context.Context, download *Download) error {
	const query = `
		INSERT INTO download (id, user_id, chapter_id, downloaded_at)
		VALUES ($1, $2, $3, $4)`

	if download.DownloadedAt.IsZero() {
		download.DownloadedAt = time.Now()
	}

	_, err := repository.pool.Exec(context, query,
		download.ID,
		download.UserID,
		download.ChapterID,
		download.DownloadedAt,
	)

	return dberr.Classify(err, "Download", "Chapter already downloaded")
}

/*
FindByID retrieves a download record by its primary key.

Returns:
  - *Download: Hydrated entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresDownloadRepository) FindByID(context context.Context, id string) (*Download, error) {
	const query = `SELECT ` + downloadColumns + ` FROM download WHERE id = $1`

	entity := &Download{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&entity.ID,
		&entity.UserID,
		&entity.ChapterID,
		&entity.DownloadedAt,
	)
	if err != nil {
		return nil, dberr.Classify(err, "Download", "")
	}

	return entity, nil
}

/*
List returns one page of all download records, newest first, plus the
total count via a window function.
*/
func (repository *PostgresDownloadRepository) List(context context.Context, limit, offset int) ([]*Download, int, error) {
	const query = `
		SELECT ` + downloadColumns + `, COUNT(*) OVER() AS total
		FROM download
		ORDER BY downloaded_at DESC, id
		LIMIT $1 OFFSET $2`

	rows, err := repository.pool.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Classify(err, "Download", "")
	}
	defer rows.Close()

	var (
		items = []*Download{}
		total int
	)
	for rows.Next() {
		entity := &Download{}
		if err := rows.Scan(
			&entity.ID,
			&entity.UserID,
			&entity.ChapterID,
			&entity.DownloadedAt,
			&total,
		); err != nil {
			return nil, 0, dberr.Classify(err, "Download", "")
		}
		items = append(items, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Classify(err, "Download", "")
	}

	return items, total, nil
}

/*
Update rewrites the chapter reference of an existing record.

Returns:
  - error: NotFound, Conflict, or database errors
*/
func (repository *PostgresDownloadRepository) Update(context context.Context, download *Download) error {
	const query = `
		UPDATE download
		SET chapter_id = $2, downloaded_at = $3
		WHERE id = $1`

	tag, err := repository.pool.Exec(context, query,
		download.ID,
		download.ChapterID,
		download.DownloadedAt,
	)
	if err != nil {
		return dberr.Classify(err, "Download", "Chapter already downloaded")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Classify(pgx.ErrNoRows, "Download", "")
	}

	return nil
}

/*
Delete removes a download record by id.

Returns:
  - error: NotFound or database errors
*/
func (repository *PostgresDownloadRepository) Delete(context context.Context, id string) error {
	const query = `DELETE FROM download WHERE id = $1`

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Classify(err, "Download", "")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Classify(pgx.ErrNoRows, "Download", "")
	}

	return nil
}
