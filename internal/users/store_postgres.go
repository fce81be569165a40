// Copyright (c) 2026 MangaVault. All rights reserved.
// Author: vu.hoanganh.dev@gmail.com

package users

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hoanganhvu/mangavault/internal/platform/dberr"
)

// # PostgreSQL Repository

// PostgresUserRepository implements the [UserRepository] interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the [UserRepository].
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

const userColumns = `id, username, email, password_hash, role, created_at, updated_at`

/*
Create persists a new user record into the account table.

Description: Initializes timestamps and relies on the table's unique
constraints to reject duplicate usernames or emails, which surface as a
409 Conflict through [dberr.Classify].

Parameters:
  - context: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: Conflict, or connectivity errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	const query = `
		INSERT INTO account (id, username, email, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.CreatedAt,
		user.UpdatedAt,
	)

	return dberr.Classify(err, "User", "Username or email already exists")
}

/*
FindByID retrieves a user record by its primary key.

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	const query = `SELECT ` + userColumns + ` FROM account WHERE id = $1`
	return repository.findOne(context, query, id)
}

/*
FindByUsername retrieves a user record by its unique username.

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	const query = `SELECT ` + userColumns + ` FROM account WHERE username = $1`
	return repository.findOne(context, query, username)
}

/*
FindByEmail retrieves a user record by its unique email address.

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	const query = `SELECT ` + userColumns + ` FROM account WHERE email = $1`
	return repository.findOne(context, query, email)
}

// findOne executes a single-row account lookup with the shared column set.
func (repository *PostgresUserRepository) findOne(context context.Context, query string, arg any) (*User, error) {
	user := &User{}
	err := repository.pool.QueryRow(context, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Classify(err, "User", "")
	}
	return user, nil
}

/*
List returns one page of accounts ordered by creation time, plus the total
row count computed in the same round-trip via a window function.

Parameters:
  - limit/offset: SQL pagination window

Returns:
  - []*User: Page slice
  - int: Total accounts
*/
func (repository *PostgresUserRepository) List(context context.Context, limit, offset int) ([]*User, int, error) {
	const query = `
		SELECT ` + userColumns + `, COUNT(*) OVER() AS total_count
		FROM account
		ORDER BY created_at
		LIMIT $1 OFFSET $2`

	rows, err := repository.pool.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Classify(err, "User", "")
	}
	defer rows.Close()

	var users []*User
	var totalCount int

	for rows.Next() {
		user := &User{}
		err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.Email,
			&user.PasswordHash,
			&user.Role,
			&user.CreatedAt,
			&user.UpdatedAt,
			&totalCount,
		)
		if err != nil {
			return nil, 0, dberr.Classify(err, "User", "")
		}
		users = append(users, user)
	}

	return users, totalCount, nil
}

/*
Update persists the mutable fields of an existing account.

Description: Username and email changes re-enter the unique constraints,
so duplicates surface as 409 Conflict.

Returns:
  - error: apperr.NotFound when the id is absent, Conflict, or storage failures
*/
func (repository *PostgresUserRepository) Update(context context.Context, user *User) error {
	const query = `
		UPDATE account
		SET username = $2, email = $3, password_hash = $4, role = $5, updated_at = $6
		WHERE id = $1`

	user.UpdatedAt = time.Now()

	tag, err := repository.pool.Exec(context, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.UpdatedAt,
	)
	if err != nil {
		return dberr.Classify(err, "User", "Username or email already exists")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Classify(pgx.ErrNoRows, "User", "")
	}
	return nil
}

/*
Delete removes the user row; dependent library rows cascade.

Returns:
  - error: apperr.NotFound when the id is absent, or storage failures
*/
func (repository *PostgresUserRepository) Delete(context context.Context, id string) error {
	const query = `DELETE FROM account WHERE id = $1`

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Classify(err, "User", "")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Classify(pgx.ErrNoRows, "User", "")
	}
	return nil
}
