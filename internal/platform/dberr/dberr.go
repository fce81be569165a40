// Copyright (c) 2026 MangaVault. All rights reserved.
// Author: vu.hoanganh.dev@gmail.com

// Package dberr provides a bridge between low-level PostgreSQL errors and
// higher-level application errors.
//
// # Classification
//
// Repositories call [Classify] on any pgx error so that constraint
// violations surface as typed [apperr.AppError] values instead of raw
// SQLSTATE strings. The uniqueness rules of the schema (one bookmark per
// user per manga, one chapter number per manga, and so on) all funnel
// through this single mapping.
package dberr

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hoanganhvu/mangavault/internal/platform/apperr"
)

// Classify inspects a database error and wraps it into a meaningful
// [apperr.AppError]. It hides database internals from the client while
// preserving the error class:
//
//   - pgx.ErrNoRows            → 404 NotFound for the named resource
//   - SQLSTATE 23505 (unique)  → 409 Conflict with the given message
//   - SQLSTATE 23503 (fk)      → 400 ValidationError (referenced row missing)
//   - anything else            → 500 Internal (cause retained for logging)
func Classify(err error, resource, conflictMsg string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return apperr.Conflict(conflictMsg)
		case pgerrcode.ForeignKeyViolation:
			return apperr.ValidationError("Referenced resource does not exist")
		}
	}

	return apperr.Internal(err)
}

// IsUniqueViolation reports whether err is a PostgreSQL unique-constraint
// violation. Used by the check-and-act paths (bookmark toggle, history
// upsert) that deliberately race against the constraint.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
