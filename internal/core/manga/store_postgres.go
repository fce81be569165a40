// Copyright (c) 2026 MangaVault. All rights reserved.
// Author: vu.hoanganh.dev@gmail.com

package manga

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hoanganhvu/mangavault/internal/platform/dberr"
)

// # PostgreSQL Repository

// PostgresMangaRepository implements [MangaRepository] using pgx.
type PostgresMangaRepository struct {
	pool *pgxpool.Pool
}

// NewMangaRepository creates a new PostgreSQL implementation of the [MangaRepository].
func NewMangaRepository(pool *pgxpool.Pool) *PostgresMangaRepository {
	return &PostgresMangaRepository{pool: pool}
}

const mangaColumns = `id, title, author, slug, status, cover_url, genre, book_type, published_date, rating, views, description`

/*
Create persists a new series into the manga table.

Description: Relies on the (title, author) unique constraint to reject
duplicate catalogue entries, surfacing as a 409 Conflict.

Parameters:
  - context: context.Context
  - manga: *Manga (Entity to persist)

Returns:
  - error: Conflict, or connectivity errors
*/
func (repository *PostgresMangaRepository) Create(context context.Context, manga *Manga) error {
	const query = `
		INSERT INTO manga (id, title, author, slug, status, cover_url, genre, book_type, published_date, rating, views, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := repository.pool.Exec(context, query,
		manga.ID,
		manga.Title,
		manga.Author,
		manga.Slug,
		manga.Status,
		manga.CoverURL,
		manga.Genre,
		manga.BookType,
		manga.PublishedDate,
		manga.Rating,
		manga.Views,
		manga.Description,
	)

	return dberr.Classify(err, "Manga", "Manga with this title and author already exists")
}

/*
FindByID retrieves a series by its primary key.

Returns:
  - *Manga: Hydrated catalogue entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresMangaRepository) FindByID(context context.Context, id string) (*Manga, error) {
	const query = `SELECT ` + mangaColumns + ` FROM manga WHERE id = $1`

	entity := &Manga{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&entity.ID,
		&entity.Title,
		&entity.Author,
		&entity.Slug,
		&entity.Status,
		&entity.CoverURL,
		&entity.Genre,
		&entity.BookType,
		&entity.PublishedDate,
		&entity.Rating,
		&entity.Views,
		&entity.Description,
	)
	if err != nil {
		return nil, dberr.Classify(err, "Manga", "")
	}

	return entity, nil
}

/*
List returns one page of the catalogue ordered by title, plus the total
series count computed in the same query via a window function.

Parameters:
  - limit/offset: pagination window

Returns:
  - []*Manga, int: Page slice and total count
*/
func (repository *PostgresMangaRepository) List(context context.Context, limit, offset int) ([]*Manga, int, error) {
	const query = `
		SELECT ` + mangaColumns + `, COUNT(*) OVER() AS total
		FROM manga
		ORDER BY title, author
		LIMIT $1 OFFSET $2`

	rows, err := repository.pool.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Classify(err, "Manga", "")
	}
	defer rows.Close()

	var (
		items = []*Manga{}
		total int
	)
	for rows.Next() {
		entity := &Manga{}
		if err := rows.Scan(
			&entity.ID,
			&entity.Title,
			&entity.Author,
			&entity.Slug,
			&entity.Status,
			&entity.CoverURL,
			&entity.Genre,
			&entity.BookType,
			&entity.PublishedDate,
			&entity.Rating,
			&entity.Views,
			&entity.Description,
			&total,
		); err != nil {
			return nil, 0, dberr.Classify(err, "Manga", "")
		}
		items = append(items, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Classify(err, "Manga", "")
	}

	return items, total, nil
}

/*
Update rewrites every column of an existing series.

Description: A zero-row update means the id does not exist and is
reported as NotFound. (title, author) conflicts re-surface as 409.

Returns:
  - error: NotFound, Conflict, or database errors
*/
func (repository *PostgresMangaRepository) Update(context context.Context, manga *Manga) error {
	const query = `
		UPDATE manga
		SET title = $2, author = $3, slug = $4, status = $5, cover_url = $6,
		    genre = $7, book_type = $8, published_date = $9, rating = $10,
		    views = $11, description = $12
		WHERE id = $1`

	tag, err := repository.pool.Exec(context, query,
		manga.ID,
		manga.Title,
		manga.Author,
		manga.Slug,
		manga.Status,
		manga.CoverURL,
		manga.Genre,
		manga.BookType,
		manga.PublishedDate,
		manga.Rating,
		manga.Views,
		manga.Description,
	)
	if err != nil {
		return dberr.Classify(err, "Manga", "Manga with this title and author already exists")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Classify(pgx.ErrNoRows, "Manga", "")
	}

	return nil
}

/*
Delete removes a series by id. Chapters cascade at the database level.

Returns:
  - error: NotFound or database errors
*/
func (repository *PostgresMangaRepository) Delete(context context.Context, id string) error {
	const query = `DELETE FROM manga WHERE id = $1`

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Classify(err, "Manga", "")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Classify(pgx.ErrNoRows, "Manga", "")
	}

	return nil
}
