// Copyright (c) 2026 Planora. All rights reserved.

package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/planora/planora/internal/trips/access"
)

/*
TestIsOwnerOrMember covers the role matrix for the write-side predicate.
*/
func TestIsOwnerOrMember(t *testing.T) {
	tests := []struct {
		name    string
		userID  string
		members []access.Member
		want    bool
	}{
		{"empty_list", "u1", []access.Member{}, false},
		{"nil_list", "u1", nil, false},
		{"owner", "u1", []access.Member{{UserID: "u1", Role: access.RoleOwner}}, true},
		{"member", "u1", []access.Member{{UserID: "u1", Role: access.RoleMember}}, true},
		{"blocked", "u1", []access.Member{{UserID: "u1", Role: access.RoleBlocked}}, false},
		{"other_user_only", "u1", []access.Member{{UserID: "u2", Role: access.RoleOwner}}, false},
		{"member_among_others", "u1", []access.Member{
			{UserID: "u2", Role: access.RoleOwner},
			{UserID: "u1", Role: access.RoleMember},
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, access.IsOwnerOrMember(tt.userID, tt.members))
		})
	}
}

/*
TestHasPublicReadPermission verifies that only an explicit BLOCKED entry
denies reading a public plan.
*/
func TestHasPublicReadPermission(t *testing.T) {
	tests := []struct {
		name    string
		userID  string
		members []access.Member
		want    bool
	}{
		{"no_membership", "u1", []access.Member{}, true},
		{"owner", "u1", []access.Member{{UserID: "u1", Role: access.RoleOwner}}, true},
		{"member", "u1", []access.Member{{UserID: "u1", Role: access.RoleMember}}, true},
		{"blocked", "u1", []access.Member{{UserID: "u1", Role: access.RoleBlocked}}, false},
		{"someone_else_blocked", "u1", []access.Member{{UserID: "u2", Role: access.RoleBlocked}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, access.HasPublicReadPermission(tt.userID, tt.members))
		})
	}
}

/*
TestIsOwner verifies the owner-only predicate.
*/
func TestIsOwner(t *testing.T) {
	members := []access.Member{
		{UserID: "owner", Role: access.RoleOwner},
		{UserID: "member", Role: access.RoleMember},
	}

	assert.True(t, access.IsOwner("owner", members))
	assert.False(t, access.IsOwner("member", members))
	assert.False(t, access.IsOwner("stranger", members))
	assert.False(t, access.IsOwner("owner", nil))
}

/*
TestPolicyTable exercises CanRead/CanWrite against the visibility matrix.
*/
func TestPolicyTable(t *testing.T) {
	members := []access.Member{
		{UserID: "owner", Role: access.RoleOwner},
		{UserID: "member", Role: access.RoleMember},
		{UserID: "blocked", Role: access.RoleBlocked},
	}

	// Private plans: read and write both require OWNER/MEMBER.
	assert.True(t, access.CanRead(access.VisibilityPrivate, "member", members))
	assert.False(t, access.CanRead(access.VisibilityPrivate, "stranger", members))
	assert.False(t, access.CanRead(access.VisibilityPrivate, "blocked", members))

	// Public plans: anyone but BLOCKED may read, writes stay restricted.
	assert.True(t, access.CanRead(access.VisibilityPublic, "stranger", members))
	assert.False(t, access.CanRead(access.VisibilityPublic, "blocked", members))
	assert.True(t, access.CanWrite("owner", members))
	assert.True(t, access.CanWrite("member", members))
	assert.False(t, access.CanWrite("stranger", members))
	assert.False(t, access.CanWrite("blocked", members))
}
