// Copyright (c) 2026 MangaVault. All rights reserved.
// Author: vu.hoanganh.dev@gmail.com

/*
Package users implements the identity and account management layer.

It defines the User entity and the full account lifecycle: registration,
login (user and admin), logout via token revocation, profile updates,
password changes, role administration, and deletion.

# Architecture

  - Service: Orchestrates business logic and ownership rules.
  - Repository: Abstracted interfaces for PostgreSQL (accounts) and
    Redis (revoked tokens).
  - Security: bcrypt password hashes and HS256-signed JWTs via the
    platform sec package.
*/
package users

import (
	"time"

	"github.com/hoanganhvu/mangavault/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of the MangaVault platform.
type User struct {
	ID           string       `json:"id"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // Explicitly omitted from JSON for security.
	Role         sec.UserRole `json:"role"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// # Field Identifiers

// Field names used in validation errors and JSON payloads.
const (
	FieldUsername    = "username"
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldOldPassword = "old_password"
	FieldNewPassword = "new_password"
	FieldRole        = "role"
)
