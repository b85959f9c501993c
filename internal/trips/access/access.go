// Copyright (c) 2026 Planora. All rights reserved.

/*
Package access implements the plan-membership role model shared by every
trip resource module (expenses, markers, places, routes).

The role model is flat: one role per user per plan. Each resource module
fetches the membership list for the target plan fresh per authorization
check, converts it into []Member with a small per-module conversion
function, and asks this package for an allow/deny answer.

# Policy

	| Plan visibility | Read                     | Write              |
	|-----------------|--------------------------|--------------------|
	| PRIVATE         | IsOwnerOrMember          | IsOwnerOrMember    |
	| PUBLIC          | HasPublicReadPermission  | IsOwnerOrMember    |

# Purity

Every predicate here is a pure function over an already-fetched list. None
of them ever returns an error or panics: callers decide to deny and raise
[apperr.Forbidden] with a resource-specific message.
*/
package access

// # Roles

// Role is the authorization level a user holds within a single plan.
type Role string

const (
	// RoleOwner is the plan creator. Exactly one OWNER exists per plan,
	// established atomically at plan creation and never reassigned.
	RoleOwner Role = "OWNER"

	// RoleMember is a regular participant, added via invite-code redemption.
	RoleMember Role = "MEMBER"

	// RoleBlocked marks a user explicitly barred from the plan. A BLOCKED
	// entry denies even public-plan reads.
	RoleBlocked Role = "BLOCKED"
)

// Member is the minimal (user, role) pair the predicates evaluate.
//
// Resource modules map their own membership row shapes into this type rather
// than sharing an entity, keeping the bounded contexts separate.
type Member struct {
	UserID string
	Role   Role
}

// # Visibility

// Visibility controls who may read a plan's resources.
type Visibility string

const (
	VisibilityPublic  Visibility = "PUBLIC"
	VisibilityPrivate Visibility = "PRIVATE"
)

// # Predicates

// IsOwnerOrMember reports whether the user holds an OWNER or MEMBER role in
// the membership list. A BLOCKED entry or no entry at all yields false.
func IsOwnerOrMember(userID string, members []Member) bool {
	for _, member := range members {
		if member.UserID == userID && (member.Role == RoleOwner || member.Role == RoleMember) {
			return true
		}
	}
	return false
}

// HasPublicReadPermission reports whether the user may read a PUBLIC plan.
//
// Absence of a membership grants read; OWNER and MEMBER grant read; only an
// explicit BLOCKED entry denies it.
func HasPublicReadPermission(userID string, members []Member) bool {
	for _, member := range members {
		if member.UserID == userID && member.Role == RoleBlocked {
			return false
		}
	}
	return true
}

// IsOwner reports whether the user holds the OWNER role in the membership list.
func IsOwner(userID string, members []Member) bool {
	for _, member := range members {
		if member.UserID == userID && member.Role == RoleOwner {
			return true
		}
	}
	return false
}

// # Policy Helpers

// CanRead applies the visibility policy table for read operations.
func CanRead(visibility Visibility, userID string, members []Member) bool {
	if visibility == VisibilityPublic {
		return HasPublicReadPermission(userID, members)
	}
	return IsOwnerOrMember(userID, members)
}

// CanWrite applies the policy table for create/update/delete operations.
// Writes require OWNER or MEMBER regardless of plan visibility.
func CanWrite(userID string, members []Member) bool {
	return IsOwnerOrMember(userID, members)
}
