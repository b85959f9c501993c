// Copyright (c) 2026 Planora. All rights reserved.

/*
Package plan implements the trip plan aggregate: plan metadata, the
membership roster, and the invite-code join flow.

# Domain Model

A plan is created by exactly one user, who becomes its single OWNER in the
same transaction. Other users join as MEMBER by redeeming an invite code;
the owner can kick or block participants. Visibility (PUBLIC/PRIVATE)
controls read access for non-participants across every resource module.
*/
package plan

import (
	"time"

	"github.com/planora/planora/internal/trips/access"
)

// # Entities

// Plan is the root aggregate for a trip.
type Plan struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Visibility access.Visibility `json:"visibility"`
	StartDate  time.Time         `json:"start_date"`
	EndDate    time.Time         `json:"end_date"`
	CreatorID  string            `json:"creator_id"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// Member is one row of a plan's roster. A user holds at most one role per plan.
type Member struct {
	PlanID    string      `json:"plan_id"`
	UserID    string      `json:"user_id"`
	Role      access.Role `json:"role"`
	CreatedAt time.Time   `json:"joined_at"`
}

// # Invite Codes

const (
	// InviteCodeLength is the number of base62 characters in a code.
	InviteCodeLength = 10

	// InviteCodeTTL bounds how long a code stays redeemable.
	InviteCodeTTL = 7 * 24 * time.Hour

	// inviteCodeRetries bounds collision retries during generation.
	inviteCodeRetries = 3
)

// # Field Identifiers

// Standardized field names for validation errors and API payloads.
const (
	FieldName       = "name"
	FieldVisibility = "visibility"
	FieldStartDate  = "start_date"
	FieldEndDate    = "end_date"
	FieldInviteCode = "invite_code"
	FieldUserID     = "user_id"
)
