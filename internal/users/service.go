// Copyright (c) 2026 MangaVault. All rights reserved.
// Author: vu.hoanganh.dev@gmail.com

package users

import (
	"context"
	"fmt"
	"time"

	"github.com/hoanganhvu/mangavault/internal/platform/apperr"
	"github.com/hoanganhvu/mangavault/internal/platform/sec"
	"github.com/hoanganhvu/mangavault/pkg/uuid"
)

// # Contracts & Types

// TokenProvider defines the contract for generating access tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT embedding the user id and role.
	GenerateAccessToken(userID string, role sec.UserRole) (string, error)
}

// Service implements the user account use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing,
// registration, or login logic must be reviewed carefully.
type Service struct {
	userRepository UserRepository
	revokedTokens  RevokedTokenRepository
	tokenProvider  TokenProvider
}

// NewService constructs a new [Service] with its dependencies.
func NewService(userRepo UserRepository, revokedRepo RevokedTokenRepository, tokenProv TokenProvider) *Service {
	return &Service{
		userRepository: userRepo,
		revokedTokens:  revokedRepo,
		tokenProvider:  tokenProv,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

/*
Register validates, hashes, and persists a brand new user account.

Description: The role is always forced to "user" regardless of the input;
privileges are only ever granted later through ChangeRole by an admin.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Created entity (password hash never serialized)
  - error: Conflict when the username or email is taken, or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {

	// Verify username and email uniqueness up front for a client-safe
	// Conflict message. The unique constraints still guard the race.
	if _, err := service.userRepository.FindByUsername(context, input.Username); err == nil {
		return nil, apperr.Conflict("Username or email already exists")
	}
	if _, err := service.userRepository.FindByEmail(context, input.Email); err == nil {
		return nil, apperr.Conflict("Username or email already exists")
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("users_service_hash_failed: %w", err)
	}

	// Time-sortable ID to prevent PG index fragmentation.
	user := &User{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Role:         sec.RoleUser,
	}

	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	return user, nil
}

// # Authentication Flow

// LoginResult couples an issued access token with the authenticated user.
type LoginResult struct {
	Token string `json:"auth_token"`
	User  *User  `json:"user"`
}

/*
Login validates credentials and issues an access token.

Description: Looks the account up by username and performs a constant-time
password comparison. Unknown usernames and wrong passwords produce the
same generic message to prevent account enumeration.

Parameters:
  - context: context.Context
  - username, password: credentials

Returns:
  - *LoginResult: Signed token plus the user record
  - error: Unauthorized on any credential failure
*/
func (service *Service) Login(context context.Context, username, password string) (*LoginResult, error) {
	user, err := service.userRepository.FindByUsername(context, username)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid username or password")
	}

	if !sec.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid username or password")
	}

	token, err := service.tokenProvider.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("users_service_token_generation_failed: %w", err)
	}

	return &LoginResult{Token: token, User: user}, nil
}

/*
AdminLogin authenticates like Login but additionally requires the admin role.

Returns:
  - *LoginResult: Signed token plus the user record
  - error: Unauthorized on credential failure, Forbidden for non-admins
*/
func (service *Service) AdminLogin(context context.Context, username, password string) (*LoginResult, error) {
	user, err := service.userRepository.FindByUsername(context, username)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid username or password")
	}

	if !sec.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid username or password")
	}

	// The role gate comes after credential verification so a failed
	// password never reveals whether the account is privileged.
	if !user.Role.AtLeast(sec.RoleAdmin) {
		return nil, apperr.Forbidden("Access denied: Not an admin")
	}

	token, err := service.tokenProvider.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("users_service_token_generation_failed: %w", err)
	}

	return &LoginResult{Token: token, User: user}, nil
}

/*
Logout revokes the presented bearer token until its natural expiry.

Description: Idempotent; revoking an already-revoked or expired token
succeeds silently.

Parameters:
  - context: context.Context
  - token: string (raw bearer token)
  - expiresAt: time.Time (the token's exp claim)

Returns:
  - error: Denylist storage failures
*/
func (service *Service) Logout(context context.Context, token string, expiresAt time.Time) error {
	return service.revokedTokens.Revoke(context, token, time.Until(expiresAt))
}

// # Account Management

/*
Get returns the user with the given id.

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound when absent
*/
func (service *Service) Get(context context.Context, id string) (*User, error) {
	return service.userRepository.FindByID(context, id)
}

/*
List returns one page of users plus the total account count.

Parameters:
  - limit/offset: pagination window

Returns:
  - []*User, int: Page slice and total count
*/
func (service *Service) List(context context.Context, limit, offset int) ([]*User, int, error) {
	return service.userRepository.List(context, limit, offset)
}

// UpdateInput holds the mutable profile fields. Nil pointers leave the
// corresponding column untouched.
type UpdateInput struct {
	Username *string
	Email    *string
}

/*
Update modifies a user's profile fields.

Description: The caller must be the target user or an admin. Username and
email changes re-enter the uniqueness checks.

Parameters:
  - actor: *sec.AuthClaims (the authenticated caller)
  - id: string (target user)
  - input: UpdateInput

Returns:
  - *User: Updated entity
  - error: Forbidden for non-owners, NotFound, Conflict, or storage failures
*/
func (service *Service) Update(context context.Context, actor *sec.AuthClaims, id string, input UpdateInput) (*User, error) {
	if actor.UserID != id && !sec.UserRole(actor.Role).AtLeast(sec.RoleAdmin) {
		return nil, apperr.Forbidden("You may only update your own account")
	}

	user, err := service.userRepository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if input.Username != nil {
		user.Username = *input.Username
	}
	if input.Email != nil {
		user.Email = *input.Email
	}

	if err := service.userRepository.Update(context, user); err != nil {
		return nil, err
	}

	return user, nil
}

/*
ChangePassword replaces the caller's password after verifying the old one.

Parameters:
  - userID: string (authenticated caller)
  - oldPassword, newPassword: credentials

Returns:
  - error: ValidationError when the old password does not match
*/
func (service *Service) ChangePassword(context context.Context, userID, oldPassword, newPassword string) error {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return err
	}

	if !sec.CheckPasswordHash(oldPassword, user.PasswordHash) {
		return apperr.ValidationError("Old password is incorrect")
	}

	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("users_service_hash_failed: %w", err)
	}

	user.PasswordHash = hashedPassword
	return service.userRepository.Update(context, user)
}

/*
ChangeRole grants or revokes the admin role. Admin-only (enforced at the
route level); the role value itself is validated here.

Parameters:
  - id: string (target user)
  - newRole: string ("user" or "admin")

Returns:
  - *User: Updated entity
  - error: ValidationError for unknown roles, NotFound when the id is absent
*/
func (service *Service) ChangeRole(context context.Context, id string, newRole string) (*User, error) {
	role := sec.UserRole(newRole)
	if !role.Valid() {
		return nil, apperr.ValidationError("Invalid role", apperr.FieldError{
			Field:   FieldRole,
			Message: "Must be one of: user, admin",
		})
	}

	user, err := service.userRepository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	user.Role = role
	if err := service.userRepository.Update(context, user); err != nil {
		return nil, err
	}

	return user, nil
}

/*
Delete removes a user account. The caller must be the target user or an admin.

Returns:
  - error: Forbidden for non-owners, NotFound, or storage failures
*/
func (service *Service) Delete(context context.Context, actor *sec.AuthClaims, id string) error {
	if actor.UserID != id && !sec.UserRole(actor.Role).AtLeast(sec.RoleAdmin) {
		return apperr.Forbidden("You may only delete your own account")
	}
	return service.userRepository.Delete(context, id)
}
