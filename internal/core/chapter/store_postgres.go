// Copyright (c) 2026 MangaVault. All rights reserved.
// Author: vu.hoanganh.dev@gmail.com

package chapter

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hoanganhvu/mangavault/internal/platform/dberr"
)

// # PostgreSQL Repository

// PostgresChapterRepository implements [ChapterRepository] using pgx.
type PostgresChapterRepository struct {
	pool *pgxpool.Pool
}

// NewChapterRepository creates a new PostgreSQL implementation of the [ChapterRepository].
func NewChapterRepository(pool *pgxpool.Pool) *PostgresChapterRepository {
	return &PostgresChapterRepository{pool: pool}
}

const chapterColumns = `id, manga_id, chapter_number, title, release_date, language`

/*
Create persists a new chapter.

Description: The (manga_id, chapter_number) unique constraint rejects
duplicate numbering within a series (409); an unknown manga_id violates
the foreign key and surfaces as a 400.

Returns:
  - error: Conflict, ValidationError, or connectivity errors
*/
func (repository *PostgresChapterRepository) Create(context context.Context, chapter *Chapter) error {
	const query = `
		INSERT INTO chapter (id, manga_id, chapter_number, title, release_date, language)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := repository.pool.Exec(context, query,
		chapter.ID,
		chapter.MangaID,
		chapter.ChapterNumber,
		chapter.Title,
		chapter.ReleaseDate,
		chapter.Language,
	)

	return dberr.Classify(err, "Chapter", "Chapter number already exists for this manga")
}

/*
FindByID retrieves a chapter by its primary key.

Returns:
  - *Chapter: Hydrated entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresChapterRepository) FindByID(context context.Context, id string) (*Chapter, error) {
	const query = `SELECT ` + chapterColumns + ` FROM chapter WHERE id = $1`

	entity := &Chapter{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&entity.ID,
		&entity.MangaID,
		&entity.ChapterNumber,
		&entity.Title,
		&entity.ReleaseDate,
		&entity.Language,
	)
	if err != nil {
		return nil, dberr.Classify(err, "Chapter", "")
	}

	return entity, nil
}

/*
List returns one page of all chapters in release order, plus the total
count via a window function.
*/
func (repository *PostgresChapterRepository) List(context context.Context, limit, offset int) ([]*Chapter, int, error) {
	const query = `
		SELECT ` + chapterColumns + `, COUNT(*) OVER() AS total
		FROM chapter
		ORDER BY release_date, id
		LIMIT $1 OFFSET $2`

	rows, err := repository.pool.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Classify(err, "Chapter", "")
	}
	defer rows.Close()

	var (
		items = []*Chapter{}
		total int
	)
	for rows.Next() {
		entity := &Chapter{}
		if err := rows.Scan(
			&entity.ID,
			&entity.MangaID,
			&entity.ChapterNumber,
			&entity.Title,
			&entity.ReleaseDate,
			&entity.Language,
			&total,
		); err != nil {
			return nil, 0, dberr.Classify(err, "Chapter", "")
		}
		items = append(items, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Classify(err, "Chapter", "")
	}

	return items, total, nil
}

/*
ListByManga returns every chapter of one series in release order.
*/
func (repository *PostgresChapterRepository) ListByManga(context context.Context, mangaID string) ([]*Chapter, error) {
	const query = `
		SELECT ` + chapterColumns + `
		FROM chapter
		WHERE manga_id = $1
		ORDER BY release_date, id`

	return repository.queryMany(context, query, mangaID)
}

/*
Search returns chapters matching the filter in release order.

Description: Title matches are case-insensitive substrings; language
matches are exact. Filters are combinable and an empty filter returns
everything.
*/
func (repository *PostgresChapterRepository) Search(context context.Context, filter SearchFilter) ([]*Chapter, error) {
	const query = `
		SELECT ` + chapterColumns + `
		FROM chapter
		WHERE ($1 = '' OR title ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR language = $2)
		ORDER BY release_date, id`

	return repository.queryMany(context, query, filter.Title, filter.Language)
}

/*
NextAfter returns the next chapter of a series in release order.

Returns:
  - *Chapter: The successor, or nil when none exists
  - error: Database errors only; "no successor" is not an error
*/
func (repository *PostgresChapterRepository) NextAfter(context context.Context, mangaID string, releaseDate time.Time) (*Chapter, error) {
	const query = `
		SELECT ` + chapterColumns + `
		FROM chapter
		WHERE manga_id = $1 AND release_date > $2
		ORDER BY release_date, id
		LIMIT 1`

	entity := &Chapter{}
	err := repository.pool.QueryRow(context, query, mangaID, releaseDate).Scan(
		&entity.ID,
		&entity.MangaID,
		&entity.ChapterNumber,
		&entity.Title,
		&entity.ReleaseDate,
		&entity.Language,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dberr.Classify(err, "Chapter", "")
	}

	return entity, nil
}

/*
Update rewrites every column of an existing chapter.

Returns:
  - error: NotFound, Conflict, or database errors
*/
func (repository *PostgresChapterRepository) Update(context context.Context, chapter *Chapter) error {
	const query = `
		UPDATE chapter
		SET manga_id = $2, chapter_number = $3, title = $4, release_date = $5, language = $6
		WHERE id = $1`

	tag, err := repository.pool.Exec(context, query,
		chapter.ID,
		chapter.MangaID,
		chapter.ChapterNumber,
		chapter.Title,
		chapter.ReleaseDate,
		chapter.Language,
	)
	if err != nil {
		return dberr.Classify(err, "Chapter", "Chapter number already exists for this manga")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Classify(pgx.ErrNoRows, "Chapter", "")
	}

	return nil
}

/*
Delete removes a chapter by id.

Returns:
  - error: NotFound or database errors
*/
func (repository *PostgresChapterRepository) Delete(context context.Context, id string) error {
	const query = `DELETE FROM chapter WHERE id = $1`

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Classify(err, "Chapter", "")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Classify(pgx.ErrNoRows, "Chapter", "")
	}

	return nil
}

// queryMany executes a multi-row chapter query with the shared column set.
func (repository *PostgresChapterRepository) queryMany(context context.Context, query string, args ...any) ([]*Chapter, error) {
	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Classify(err, "Chapter", "")
	}
	defer rows.Close()

	items := []*Chapter{}
	for rows.Next() {
		entity := &Chapter{}
		if err := rows.Scan(
			&entity.ID,
			&entity.MangaID,
			&entity.ChapterNumber,
			&entity.Title,
			&entity.ReleaseDate,
			&entity.Language,
		); err != nil {
			return nil, dberr.Classify(err, "Chapter", "")
		}
		items = append(items, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Classify(err, "Chapter", "")
	}

	return items, nil
}
