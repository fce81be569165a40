// Copyright (c) 2026 MangaVault. All rights reserved.
// Author: vu.hoanganh.dev@gmail.com

package users

import (
	"context"
	"time"
)

// # Account Data Access

// UserRepository defines the persistence contract for user accounts.
type UserRepository interface {

	/*
		Create persists a new user record.

		Parameters:
		  - context: context.Context
		  - user: *User (Entity to persist)

		Returns:
		  - error: Conflict on duplicate username/email, or storage failures
	*/
	Create(context context.Context, user *User) error

	/*
		FindByID retrieves a user record by its unique ID.

		Returns:
		  - *User: Hydrated account entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByUsername retrieves a user record by its unique username.

		Returns:
		  - *User: Hydrated account entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		FindByEmail retrieves a user record by its unique email address.

		Returns:
		  - *User: Hydrated account entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		List returns one page of users plus the total account count.

		Parameters:
		  - limit/offset: SQL pagination window

		Returns:
		  - []*User: Page slice
		  - int: Total rows regardless of the window
	*/
	List(context context.Context, limit, offset int) ([]*User, int, error)

	/*
		Update persists changes to username, email, role, and password hash.

		Returns:
		  - error: apperr.NotFound, Conflict on uniqueness, or storage failures
	*/
	Update(context context.Context, user *User) error

	/*
		Delete removes the user row. Dependent bookmarks, downloads, and
		reading history are removed by the schema's cascade rules.

		Returns:
		  - error: apperr.NotFound or storage failures
	*/
	Delete(context context.Context, id string) error
}

// # Token Revocation

// RevokedTokenRepository tracks bearer tokens invalidated by logout.
// Entries expire together with the token itself, so the denylist never grows
// beyond one access-token lifetime.
type RevokedTokenRepository interface {

	// Revoke marks a token as invalid for the given remaining lifetime.
	Revoke(context context.Context, token string, ttl time.Duration) error

	// IsRevoked reports whether a token is on the denylist.
	IsRevoked(context context.Context, token string) (bool, error)
}
