// Copyright (c) 2026 MangaVault. All rights reserved.
// Author: vu.hoanganh.dev@gmail.com

package bookmark

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hoanganhvu/mangavault/internal/platform/dberr"
	"github.com/hoanganhvu/mangavault/pkg/uuid"
)

// # PostgreSQL Repository

// PostgresBookmarkRepository implements [BookmarkRepository] using pgx.
type PostgresBookmarkRepository struct {
	pool *pgxpool.Pool
}

// NewBookmarkRepository creates a new PostgreSQL implementation of the [BookmarkRepository].
func NewBookmarkRepository(pool *pgxpool.Pool) *PostgresBookmarkRepository {
	return &PostgresBookmarkRepository{pool: pool}
}

const bookmarkColumns = `id, user_id, manga_id, favorited, added_at, last_read_chapter, last_updated`

/*
Create persists a new bookmark.

Description: The (user_id, manga_id) unique constraint rejects a second
bookmark for the same series (409); an unknown manga or user violates the
foreign keys and surfaces as a 400.

Returns:
  - error: Conflict, ValidationError, or connectivity errors
*/
func (repository *PostgresBookmarkRepository) Create(context context.Context, bookmark *Bookmark) error {
	const query = `
		INSERT INTO bookmark (id, user_id, manga_id, favorited, added_at, last_read_chapter, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	if bookmark.AddedAt.IsZero() {
		bookmark.AddedAt = time.Now()
	}

	_, err := repository.pool.Exec(context, query,
		bookmark.ID,
		bookmark.UserID,
		bookmark.MangaID,
		bookmark.Favorited,
		bookmark.AddedAt,
		bookmark.LastReadChapter,
		bookmark.LastUpdated,
	)

	return dberr.Classify(err, "Bookmark", "Bookmark already exists for this manga")
}

/*
FindByID retrieves a bookmark by its primary key.

Returns:
  - *Bookmark: Hydrated entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresBookmarkRepository) FindByID(context context.Context, id string) (*Bookmark, error) {
	const query = `SELECT ` + bookmarkColumns + ` FROM bookmark WHERE id = $1`
	return repository.findOne(context, query, id)
}

/*
FindByUserAndManga retrieves one user's bookmark for one series.

Returns:
  - *Bookmark: Hydrated entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresBookmarkRepository) FindByUserAndManga(context context.Context, userID, mangaID string) (*Bookmark, error) {
	const query = `SELECT ` + bookmarkColumns + ` FROM bookmark WHERE user_id = $1 AND manga_id = $2`
	return repository.findOne(context, query, userID, mangaID)
}

/*
ListByUser returns one page of a user's bookmarks, newest first, plus the
total count via a window function.
*/
func (repository *PostgresBookmarkRepository) ListByUser(context context.Context, userID string, limit, offset int) ([]*Bookmark, int, error) {
	const query = `
		SELECT ` + bookmarkColumns + `, COUNT(*) OVER() AS total
		FROM bookmark
		WHERE user_id = $1
		ORDER BY added_at DESC, id
		LIMIT $2 OFFSET $3`

	rows, err := repository.pool.Query(context, query, userID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Classify(err, "Bookmark", "")
	}
	defer rows.Close()

	var (
		items = []*Bookmark{}
		total int
	)
	for rows.Next() {
		entity := &Bookmark{}
		if err := rows.Scan(
			&entity.ID,
			&entity.UserID,
			&entity.MangaID,
			&entity.Favorited,
			&entity.AddedAt,
			&entity.LastReadChapter,
			&entity.LastUpdated,
			&total,
		); err != nil {
			return nil, 0, dberr.Classify(err, "Bookmark", "")
		}
		items = append(items, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Classify(err, "Bookmark", "")
	}

	return items, total, nil
}

/*
Toggle atomically flips the (user, manga) bookmark.

Description: Runs inside one transaction: a DELETE first removes an
existing bookmark; when nothing was deleted, an INSERT creates one. The
unique constraint on (user_id, manga_id) makes concurrent toggles settle
on exactly one of the two outcomes.

Returns:
  - *Bookmark, bool: Created entity and added=true, or nil and added=false
  - error: ValidationError on unknown manga, or database errors
*/
func (repository *PostgresBookmarkRepository) Toggle(context context.Context, userID, mangaID string) (*Bookmark, bool, error) {
	tx, err := repository.pool.Begin(context)
	if err != nil {
		return nil, false, dberr.Classify(err, "Bookmark", "")
	}
	defer tx.Rollback(context)

	tag, err := tx.Exec(context,
		`DELETE FROM bookmark WHERE user_id = $1 AND manga_id = $2`,
		userID, mangaID,
	)
	if err != nil {
		return nil, false, dberr.Classify(err, "Bookmark", "")
	}

	if tag.RowsAffected() > 0 {
		if err := tx.Commit(context); err != nil {
			return nil, false, dberr.Classify(err, "Bookmark", "")
		}
		return nil, false, nil
	}

	entity := &Bookmark{
		ID:      uuid.New(),
		UserID:  userID,
		MangaID: mangaID,
		AddedAt: time.Now(),
	}

	_, err = tx.Exec(context,
		`INSERT INTO bookmark (id, user_id, manga_id, favorited, added_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		entity.ID, entity.UserID, entity.MangaID, entity.Favorited, entity.AddedAt,
	)
	if err != nil {
		return nil, false, dberr.Classify(err, "Bookmark", "Bookmark already exists for this manga")
	}

	if err := tx.Commit(context); err != nil {
		return nil, false, dberr.Classify(err, "Bookmark", "")
	}

	return entity, true, nil
}

/*
Update rewrites the mutable columns of an existing bookmark.

Returns:
  - error: NotFound or database errors
*/
func (repository *PostgresBookmarkRepository) Update(context context.Context, bookmark *Bookmark) error {
	const query = `
		UPDATE bookmark
		SET favorited = $2, last_read_chapter = $3, last_updated = $4
		WHERE id = $1`

	tag, err := repository.pool.Exec(context, query,
		bookmark.ID,
		bookmark.Favorited,
		bookmark.LastReadChapter,
		bookmark.LastUpdated,
	)
	if err != nil {
		return dberr.Classify(err, "Bookmark", "")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Classify(pgx.ErrNoRows, "Bookmark", "")
	}

	return nil
}

/*
Delete removes a bookmark by id.

Returns:
  - error: NotFound or database errors
*/
func (repository *PostgresBookmarkRepository) Delete(context context.Context, id string) error {
	const query = `DELETE FROM bookmark WHERE id = $1`

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Classify(err, "Bookmark", "")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Classify(pgx.ErrNoRows, "Bookmark", "")
	}

	return nil
}

// findOne executes a single-row bookmark lookup with the shared column set.
func (repository *PostgresBookmarkRepository) findOne(context context.Context, query string, args ...any) (*Bookmark, error) {
	entity := &Bookmark{}
	err := repository.pool.QueryRow(context, query, args...).Scan(
		&entity.ID,
		&entity.UserID,
		&entity.MangaID,
		&entity.Favorited,
		&entity.AddedAt,
		&entity.LastReadChapter,
		&entity.LastUpdated,
	)
	if err != nil {
		return nil, dberr.Classify(err, "Bookmark", "")
	}
	return entity, nil
}
