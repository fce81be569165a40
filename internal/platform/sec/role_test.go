// Copyright (c) 2026 MangaVault. All rights reserved.
// Author: vu.hoanganh.dev@gmail.com

package sec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

/*
TestUserRole_Valid exercises the closed role set.
*/
func TestUserRole_Valid(t *testing.T) {
	assert.True(t, RoleUser.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, UserRole("moderator").Valid())
	assert.False(t, UserRole("").Valid())
}

/*
TestUserRole_AtLeast exercises the role ordering used by the admin gate.
*/
func TestUserRole_AtLeast(t *testing.T) {
	assert.True(t, RoleAdmin.AtLeast(RoleUser))
	assert.True(t, RoleAdmin.AtLeast(RoleAdmin))
	assert.True(t, RoleUser.AtLeast(RoleUser))
	assert.False(t, RoleUser.AtLeast(RoleAdmin))
	assert.False(t, UserRole("unknown").AtLeast(RoleUser))
}
