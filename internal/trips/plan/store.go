// Copyright (c) 2026 Planora. All rights reserved.

package plan

import (
	"context"
	"time"

	"github.com/planora/planora/internal/trips/access"
)

// # Persistence Contracts

// Repository defines the persistence contract for plans and their rosters.
type Repository interface {
	/*
		CreateWithOwner persists a new plan and its initial OWNER membership
		in a single transaction. No observable state exists where the plan
		has zero or multiple owners.

		Parameters:
		  - context: context.Context
		  - plan: *Plan (ID and CreatorID must be set)

		Returns:
		  - error: Persistence failures
	*/
	CreateWithOwner(context context.Context, plan *Plan) error

	/*
		FindByID retrieves a plan by primary key, excluding soft-deleted rows.

		Returns:
		  - *Plan: Hydrated entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*Plan, error)

	/*
		Update persists mutable plan metadata (name, visibility, date range).

		Returns:
		  - error: apperr.NotFound or storage failures
	*/
	Update(context context.Context, plan *Plan) error

	/*
		SoftDelete flags a plan as deleted. Resources under it become
		unreachable through the API without being physically removed.
	*/
	SoftDelete(context context.Context, id string) error

	/*
		ListByUser returns plans where the user holds an OWNER or MEMBER
		role, newest first, with total count for pagination metadata.
	*/
	ListByUser(context context.Context, userID string, limit, offset int) ([]*Plan, int, error)

	/*
		ListMembers returns the full roster for a plan, oldest joiner first.
		An empty roster yields an empty slice, not an error.
	*/
	ListMembers(context context.Context, planID string) ([]*Member, error)

	/*
		InsertMember adds a roster row. Duplicate (plan, user) pairs map to
		apperr.Conflict via the unique constraint.
	*/
	InsertMember(context context.Context, member *Member) error

	/*
		UpsertMemberRole inserts or overwrites the user's role in the plan.
		Used for BLOCK, which must stick whether or not the user was on the
		roster before.
	*/
	UpsertMemberRole(context context.Context, planID, userID string, role access.Role) error

	/*
		RemoveMember hard-deletes a roster row. Removing an absent row is
		not an error.
	*/
	RemoveMember(context context.Context, planID, userID string) error
}

// InviteCodeStore defines the TTL-bound code-to-plan mapping.
//
// Codes live in Redis under a shared prefix and expire on their own; there
// is no explicit revocation in the join flow.
type InviteCodeStore interface {
	/*
		SaveCode claims a code for a plan if and only if the code is free.

		Returns:
		  - bool: true when the code was claimed, false on collision
		  - error: Storage failures
	*/
	SaveCode(context context.Context, code, planID string, ttl time.Duration) (bool, error)

	/*
		FindPlanID resolves a code to its plan ID.

		Returns:
		  - string: Target plan ID
		  - error: apperr.NotFound for unknown/expired codes, or storage failures
	*/
	FindPlanID(context context.Context, code string) (string, error)
}
