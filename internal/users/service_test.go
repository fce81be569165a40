// Copyright (c) 2026 MangaVault. All rights reserved.
// Author: vu.hoanganh.dev@gmail.com

package users_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoanganhvu/mangavault/internal/platform/apperr"
	"github.com/hoanganhvu/mangavault/internal/platform/sec"
	"github.com/hoanganhvu/mangavault/internal/users"
)

// # Test Fakes

// fakeUserRepository is an in-memory [users.UserRepository].
type fakeUserRepository struct {
	byID map[string]*users.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{byID: map[string]*users.User{}}
}

func (f *fakeUserRepository) Create(_ context.Context, user *users.User) error {
	for _, existing := range f.byID {
		if existing.Username == user.Username || existing.Email == user.Email {
			return apperr.Conflict("Username or email already exists")
		}
	}
	clone := *user
	f.byID[user.ID] = &clone
	return nil
}

func (f *fakeUserRepository) FindByID(_ context.Context, id string) (*users.User, error) {
	if user, found := f.byID[id]; found {
		clone := *user
		return &clone, nil
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUserRepository) FindByUsername(_ context.Context, username string) (*users.User, error) {
	for _, user := range f.byID {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUserRepository) FindByEmail(_ context.Context, email string) (*users.User, error) {
	for _, user := range f.byID {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUserRepository) List(_ context.Context, limit, offset int) ([]*users.User, int, error) {
	all := make([]*users.User, 0, len(f.byID))
	for _, user := range f.byID {
		all = append(all, user)
	}
	total := len(all)
	if offset >= total {
		return []*users.User{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (f *fakeUserRepository) Update(_ context.Context, user *users.User) error {
	if _, found := f.byID[user.ID]; !found {
		return apperr.NotFound("User")
	}
	clone := *user
	f.byID[user.ID] = &clone
	return nil
}

func (f *fakeUserRepository) Delete(_ context.Context, id string) error {
	if _, found := f.byID[id]; !found {
		return apperr.NotFound("User")
	}
	delete(f.byID, id)
	return nil
}

// fakeRevokedTokens is an in-memory denylist.
type fakeRevokedTokens struct {
	revoked map[string]bool
}

func newFakeRevokedTokens() *fakeRevokedTokens {
	return &fakeRevokedTokens{revoked: map[string]bool{}}
}

func (f *fakeRevokedTokens) Revoke(_ context.Context, token string, ttl time.Duration) error {
	if ttl > 0 {
		f.revoked[token] = true
	}
	return nil
}

func (f *fakeRevokedTokens) IsRevoked(_ context.Context, token string) (bool, error) {
	return f.revoked[token], nil
}

// fakeTokenProvider issues deterministic tokens.
type fakeTokenProvider struct{}

func (fakeTokenProvider) GenerateAccessToken(userID string, role sec.UserRole) (string, error) {
	return "token-" + userID + "-" + string(role), nil
}

func newService(repo *fakeUserRepository) *users.Service {
	return users.NewService(repo, newFakeRevokedTokens(), fakeTokenProvider{})
}

func mustRegister(t *testing.T, service *users.Service, username, email, password string) *users.User {
	t.Helper()
	user, err := service.Register(context.Background(), users.RegisterInput{
		Username: username,
		Email:    email,
		Password: password,
	})
	require.NoError(t, err)
	return user
}

// # Registration

/*
TestService_Register verifies hashing, role forcing, and duplicate
rejection.
*/
func TestService_Register(t *testing.T) {
	repo := newFakeUserRepository()
	service := newService(repo)

	user := mustRegister(t, service, "reader", "reader@example.com", "secret-pass")

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, sec.RoleUser, user.Role)
	assert.NotEqual(t, "secret-pass", user.PasswordHash)
	assert.True(t, sec.CheckPasswordHash("secret-pass", user.PasswordHash))

	// Duplicate username
	_, err := service.Register(context.Background(), users.RegisterInput{
		Username: "reader", Email: "other@example.com", Password: "secret-pass",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperr.As(err).HTTPStatus)

	// Duplicate email
	_, err = service.Register(context.Background(), users.RegisterInput{
		Username: "other", Email: "reader@example.com", Password: "secret-pass",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperr.As(err).HTTPStatus)
}

// # Authentication

/*
TestService_Login verifies the credential check and token issuance.
*/
func TestService_Login(t *testing.T) {
	repo := newFakeUserRepository()
	service := newService(repo)
	user := mustRegister(t, service, "reader", "reader@example.com", "secret-pass")

	result, err := service.Login(context.Background(), "reader", "secret-pass")
	require.NoError(t, err)
	assert.Equal(t, "token-"+user.ID+"-user", result.Token)
	assert.Equal(t, user.ID, result.User.ID)

	// Wrong password and unknown user yield the same 401.
	_, err = service.Login(context.Background(), "reader", "wrong-pass")
	require.Error(t, err)
	assert.Equal(t, "Invalid username or password", apperr.As(err).Message)

	_, err = service.Login(context.Background(), "ghost", "secret-pass")
	require.Error(t, err)
	assert.Equal(t, "Invalid username or password", apperr.As(err).Message)
}

/*
TestService_AdminLogin verifies the role gate on the admin login path.
*/
func TestService_AdminLogin(t *testing.T) {
	repo := newFakeUserRepository()
	service := newService(repo)
	user := mustRegister(t, service, "reader", "reader@example.com", "secret-pass")

	// Plain users are rejected with 403 after passing the credential check.
	_, err := service.AdminLogin(context.Background(), "reader", "secret-pass")
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, apperr.As(err).HTTPStatus)
	assert.Equal(t, "Access denied: Not an admin", apperr.As(err).Message)

	// Wrong password stays a 401 even for admins.
	repo.byID[user.ID].Role = sec.RoleAdmin
	_, err = service.AdminLogin(context.Background(), "reader", "wrong-pass")
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, apperr.As(err).HTTPStatus)

	result, err := service.AdminLogin(context.Background(), "reader", "secret-pass")
	require.NoError(t, err)
	assert.Equal(t, "token-"+user.ID+"-admin", result.Token)
}

/*
TestService_Logout verifies the token lands on the denylist until expiry.
*/
func TestService_Logout(t *testing.T) {
	repo := newFakeUserRepository()
	revoked := newFakeRevokedTokens()
	service := users.NewService(repo, revoked, fakeTokenProvider{})

	err := service.Logout(context.Background(), "live-token", time.Now().Add(time.Hour))
	require.NoError(t, err)
	isRevoked, _ := revoked.IsRevoked(context.Background(), "live-token")
	assert.True(t, isRevoked)

	// An already-expired token needs no denylist entry.
	err = service.Logout(context.Background(), "dead-token", time.Now().Add(-time.Minute))
	require.NoError(t, err)
	isRevoked, _ = revoked.IsRevoked(context.Background(), "dead-token")
	assert.False(t, isRevoked)
}

// # Account Management

/*
TestService_Update verifies the self-or-admin ownership rule.
*/
func TestService_Update(t *testing.T) {
	repo := newFakeUserRepository()
	service := newService(repo)
	owner := mustRegister(t, service, "owner", "owner@example.com", "secret-pass")
	other := mustRegister(t, service, "other", "other@example.com", "secret-pass")

	newName := "renamed"

	// A stranger cannot update someone else's account.
	strangerClaims := &sec.AuthClaims{UserID: other.ID, Role: "user"}
	_, err := service.Update(context.Background(), strangerClaims, owner.ID, users.UpdateInput{Username: &newName})
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, apperr.As(err).HTTPStatus)

	// The record is unchanged after the rejected attempt.
	unchanged, err := service.Get(context.Background(), owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "owner", unchanged.Username)

	// The owner can.
	ownerClaims := &sec.AuthClaims{UserID: owner.ID, Role: "user"}
	updated, err := service.Update(context.Background(), ownerClaims, owner.ID, users.UpdateInput{Username: &newName})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Username)

	// An admin can update anyone.
	adminName := "admin-renamed"
	adminClaims := &sec.AuthClaims{UserID: "someone-else", Role: "admin"}
	updated, err = service.Update(context.Background(), adminClaims, owner.ID, users.UpdateInput{Username: &adminName})
	require.NoError(t, err)
	assert.Equal(t, "admin-renamed", updated.Username)
}

/*
TestService_ChangePassword verifies the old-password check.
*/
func TestService_ChangePassword(t *testing.T) {
	repo := newFakeUserRepository()
	service := newService(repo)
	user := mustRegister(t, service, "reader", "reader@example.com", "secret-pass")

	err := service.ChangePassword(context.Background(), user.ID, "wrong-old", "new-secret")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.As(err).HTTPStatus)
	assert.Equal(t, "Old password is incorrect", apperr.As(err).Message)

	require.NoError(t, service.ChangePassword(context.Background(), user.ID, "secret-pass", "new-secret"))

	// The new password works for login; the old one no longer does.
	_, err = service.Login(context.Background(), "reader", "new-secret")
	assert.NoError(t, err)
	_, err = service.Login(context.Background(), "reader", "secret-pass")
	assert.Error(t, err)
}

/*
TestService_ChangeRole verifies role validation and persistence.
*/
func TestService_ChangeRole(t *testing.T) {
	repo := newFakeUserRepository()
	service := newService(repo)
	user := mustRegister(t, service, "reader", "reader@example.com", "secret-pass")

	// Unknown role values are a 400, not a silent write.
	_, err := service.ChangeRole(context.Background(), user.ID, "superuser")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.As(err).HTTPStatus)
	assert.Equal(t, "Invalid role", apperr.As(err).Message)

	// Unknown target is a 404.
	_, err = service.ChangeRole(context.Background(), "missing-id", "admin")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.As(err).HTTPStatus)

	promoted, err := service.ChangeRole(context.Background(), user.ID, "admin")
	require.NoError(t, err)
	assert.Equal(t, sec.RoleAdmin, promoted.Role)
}

/*
TestService_Delete verifies the self-or-admin rule on deletion.
*/
func TestService_Delete(t *testing.T) {
	repo := newFakeUserRepository()
	service := newService(repo)
	owner := mustRegister(t, service, "owner", "owner@example.com", "secret-pass")
	other := mustRegister(t, service, "other", "other@example.com", "secret-pass")

	strangerClaims := &sec.AuthClaims{UserID: other.ID, Role: "user"}
	err := service.Delete(context.Background(), strangerClaims, owner.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, apperr.As(err).HTTPStatus)

	ownerClaims := &sec.AuthClaims{UserID: owner.ID, Role: "user"}
	require.NoError(t, service.Delete(context.Background(), ownerClaims, owner.ID))

	_, err = service.Get(context.Background(), owner.ID)
	assert.Equal(t, http.StatusNotFound, apperr.As(err).HTTPStatus)
}
