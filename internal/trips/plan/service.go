// Copyright (c) 2026 Planora. All rights reserved.

package plan

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/planora/planora/internal/platform/apperr"
	"github.com/planora/planora/internal/platform/ctxutil"
	"github.com/planora/planora/internal/platform/sec"
	"github.com/planora/planora/internal/trips/access"
	"github.com/planora/planora/pkg/pagination"
	"github.com/planora/planora/pkg/uuid"
)

// Service implements trip plan use cases: lifecycle, roster management, and
// the invite-code join flow.
type Service struct {
	repository  Repository
	inviteCodes InviteCodeStore
}

// NewService constructs a new plan [Service] with necessary dependencies.
func NewService(repository Repository, inviteCodes InviteCodeStore) *Service {
	return &Service{
		repository:  repository,
		inviteCodes: inviteCodes,
	}
}

// accessMembers converts roster rows into the shared predicate shape.
func accessMembers(members []*Member) []access.Member {
	converted := make([]access.Member, 0, len(members))
	for _, member := range members {
		converted = append(converted, access.Member{UserID: member.UserID, Role: member.Role})
	}
	return converted
}

// # Plan Lifecycle

// CreateInput holds the data required to open a new plan.
type CreateInput struct {
	Name       string
	Visibility access.Visibility
	StartDate  time.Time
	EndDate    time.Time
}

/*
Create opens a new plan owned by the acting user.

Description: The plan row and the creator's OWNER roster row are committed in
one transaction, so the single-owner invariant holds from the first moment
the plan is visible.

Parameters:
  - context: context.Context
  - userID: string (acting user, becomes OWNER)
  - input: CreateInput

Returns:
  - *Plan: Created aggregate
  - error: Persistence failures
*/
func (service *Service) Create(context context.Context, userID string, input CreateInput) (*Plan, error) {
	plan := &Plan{
		ID:         uuid.New(),
		Name:       input.Name,
		Visibility: input.Visibility,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		CreatorID:  userID,
	}

	if err := service.repository.CreateWithOwner(context, plan); err != nil {
		return nil, fmt.Errorf("plan_service_create_failed: %w", err)
	}

	ctxutil.GetLogger(context).Info("plan_created",
		slog.String("plan_id", plan.ID),
		slog.String("creator_id", userID),
	)

	return plan, nil
}

/*
Get retrieves a plan the acting user may read.

Parameters:
  - context: context.Context
  - userID: string
  - planID: string

Returns:
  - *Plan: Hydrated aggregate
  - error: apperr.NotFound or apperr.Forbidden
*/
func (service *Service) Get(context context.Context, userID, planID string) (*Plan, error) {
	plan, roster, err := service.load(context, planID)
	if err != nil {
		return nil, err
	}

	if !access.CanRead(plan.Visibility, userID, accessMembers(roster)) {
		return nil, apperr.Forbidden("You do not have access to this plan")
	}

	return plan, nil
}

// UpdateInput holds the mutable plan metadata.
type UpdateInput struct {
	Name       string
	Visibility access.Visibility
	StartDate  time.Time
	EndDate    time.Time
}

/*
Update modifies plan metadata.

Description: Requires write permission (OWNER or MEMBER). Visibility and the
date range are replaced wholesale with the validated input.

Parameters:
  - context: context.Context
  - userID: string
  - planID: string
  - input: UpdateInput

Returns:
  - *Plan: Updated aggregate
  - error: apperr.NotFound, apperr.Forbidden, or persistence failures
*/
func (service *Service) Update(context context.Context, userID, planID string, input UpdateInput) (*Plan, error) {
	plan, roster, err := service.load(context, planID)
	if err != nil {
		return nil, err
	}

	if !access.CanWrite(userID, accessMembers(roster)) {
		return nil, apperr.Forbidden("You do not have permission to modify this plan")
	}

	plan.Name = input.Name
	plan.Visibility = input.Visibility
	plan.StartDate = input.StartDate
	plan.EndDate = input.EndDate

	if err := service.repository.Update(context, plan); err != nil {
		return nil, fmt.Errorf("plan_service_update_failed: %w", err)
	}

	return plan, nil
}

/*
Delete soft-deletes a plan. Owner only.

Parameters:
  - context: context.Context
  - userID: string
  - planID: string

Returns:
  - error: apperr.NotFound, apperr.Forbidden, or persistence failures
*/
func (service *Service) Delete(context context.Context, userID, planID string) error {
	_, roster, err := service.load(context, planID)
	if err != nil {
		return err
	}

	if !access.IsOwner(userID, accessMembers(roster)) {
		return apperr.Forbidden("Only the plan owner can delete the plan")
	}

	if err := service.repository.SoftDelete(context, planID); err != nil {
		return fmt.Errorf("plan_service_delete_failed: %w", err)
	}

	ctxutil.GetLogger(context).Info("plan_deleted", slog.String("plan_id", planID))
	return nil
}

/*
List returns the acting user's plans with pagination metadata.

Parameters:
  - context: context.Context
  - userID: string
  - params: pagination.Params

Returns:
  - []*Plan: Page of plans, newest first
  - pagination.Meta: Total/page metadata
  - error: Retrieval failures
*/
func (service *Service) List(context context.Context, userID string, params pagination.Params) ([]*Plan, pagination.Meta, error) {
	plans, total, err := service.repository.ListByUser(context, userID, params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("plan_service_list_failed: %w", err)
	}
	return plans, pagination.NewMeta(params.Page, params.Limit, total), nil
}

// # Roster Management

/*
Members returns the roster of a plan the acting user may read.

Parameters:
  - context: context.Context
  - userID: string
  - planID: string

Returns:
  - []*Member: Roster rows
  - error: apperr.NotFound or apperr.Forbidden
*/
func (service *Service) Members(context context.Context, userID, planID string) ([]*Member, error) {
	plan, roster, err := service.load(context, planID)
	if err != nil {
		return nil, err
	}

	if !access.CanRead(plan.Visibility, userID, accessMembers(roster)) {
		return nil, apperr.Forbidden("You do not have access to this plan")
	}

	return roster, nil
}

/*
Kick removes a participant from the roster. Owner only.

Description: The OWNER row itself can never be removed; ownership is fixed at
creation. Kicking a user who is not on the roster is a no-op.

Parameters:
  - context: context.Context
  - userID: string (acting user)
  - planID: string
  - targetUserID: string

Returns:
  - error: apperr.Forbidden, apperr.ValidationError, or persistence failures
*/
func (service *Service) Kick(context context.Context, userID, planID, targetUserID string) error {
	_, roster, err := service.load(context, planID)
	if err != nil {
		return err
	}

	members := accessMembers(roster)
	if !access.IsOwner(userID, members) {
		return apperr.Forbidden("Only the plan owner can remove participants")
	}
	if access.IsOwner(targetUserID, members) {
		return apperr.ValidationError("The plan owner cannot be removed")
	}

	if err := service.repository.RemoveMember(context, planID, targetUserID); err != nil {
		return fmt.Errorf("plan_service_kick_failed: %w", err)
	}

	ctxutil.GetLogger(context).Info("member_kicked",
		slog.String("plan_id", planID),
		slog.String("user_id", targetUserID),
	)
	return nil
}

/*
Block bars a user from the plan. Owner only.

Description: Writes a BLOCKED roster row whether or not the target was a
participant, so the bar also holds against future invite redemptions and
public-plan reads.

Parameters:
  - context: context.Context
  - userID: string (acting user)
  - planID: string
  - targetUserID: string

Returns:
  - error: apperr.Forbidden, apperr.ValidationError, or persistence failures
*/
func (service *Service) Block(context context.Context, userID, planID, targetUserID string) error {
	_, roster, err := service.load(context, planID)
	if err != nil {
		return err
	}

	if !access.IsOwner(userID, accessMembers(roster)) {
		return apperr.Forbidden("Only the plan owner can block users")
	}
	if targetUserID == userID {
		return apperr.ValidationError("The plan owner cannot be blocked")
	}

	if err := service.repository.UpsertMemberRole(context, planID, targetUserID, access.RoleBlocked); err != nil {
		return fmt.Errorf("plan_service_block_failed: %w", err)
	}

	ctxutil.GetLogger(context).Info("member_blocked",
		slog.String("plan_id", planID),
		slog.String("user_id", targetUserID),
	)
	return nil
}

// # Invite Flow

/*
CreateInviteCode mints a redeemable join code for a plan.

Description: Requires write permission. Generates a random base62 code and
claims it with SET NX, retrying with a fresh code on the (rare) collision.
Codes expire after [InviteCodeTTL].

Parameters:
  - context: context.Context
  - userID: string
  - planID: string

Returns:
  - string: The claimed invite code
  - error: apperr.Forbidden, generation, or storage failures
*/
func (service *Service) CreateInviteCode(context context.Context, userID, planID string) (string, error) {
	_, roster, err := service.load(context, planID)
	if err != nil {
		return "", err
	}

	if !access.CanWrite(userID, accessMembers(roster)) {
		return "", apperr.Forbidden("You do not have permission to invite users to this plan")
	}

	for attempt := 0; attempt < inviteCodeRetries; attempt++ {
		code, err := sec.RandomCode(InviteCodeLength)
		if err != nil {
			return "", fmt.Errorf("plan_service_invite_generate_failed: %w", err)
		}

		claimed, err := service.inviteCodes.SaveCode(context, code, planID, InviteCodeTTL)
		if err != nil {
			return "", fmt.Errorf("plan_service_invite_save_failed: %w", err)
		}
		if claimed {
			ctxutil.GetLogger(context).Info("invite_code_created", slog.String("plan_id", planID))
			return code, nil
		}
	}

	return "", apperr.Internal(fmt.Errorf("invite code space exhausted after %d attempts", inviteCodeRetries))
}

/*
Redeem joins the acting user to the plan behind an invite code.

Description: Resolves the code, then applies roster policy:
  - BLOCKED users are refused.
  - Existing OWNER/MEMBER participants succeed silently without a new row.
  - Everyone else is inserted as MEMBER.

Parameters:
  - context: context.Context
  - userID: string
  - code: string

Returns:
  - *Plan: The joined plan
  - error: apperr.NotFound for unknown/expired codes, apperr.Forbidden for
    blocked users, or persistence failures
*/
func (service *Service) Redeem(context context.Context, userID, code string) (*Plan, error) {
	planID, err := service.inviteCodes.FindPlanID(context, code)
	if err != nil {
		return nil, err
	}

	plan, roster, err := service.load(context, planID)
	if err != nil {
		return nil, err
	}

	for _, member := range roster {
		if member.UserID != userID {
			continue
		}
		if member.Role == access.RoleBlocked {
			return nil, apperr.Forbidden("You are blocked from this plan")
		}
		// Already a participant: redeeming again is a silent no-op
		return plan, nil
	}

	member := &Member{PlanID: planID, UserID: userID, Role: access.RoleMember}
	if err := service.repository.InsertMember(context, member); err != nil {
		return nil, fmt.Errorf("plan_service_redeem_failed: %w", err)
	}

	ctxutil.GetLogger(context).Info("invite_redeemed",
		slog.String("plan_id", planID),
		slog.String("user_id", userID),
	)

	return plan, nil
}

// load fetches a plan and its roster together; most operations need both.
func (service *Service) load(context context.Context, planID string) (*Plan, []*Member, error) {
	plan, err := service.repository.FindByID(context, planID)
	if err != nil {
		return nil, nil, err
	}

	roster, err := service.repository.ListMembers(context, planID)
	if err != nil {
		return nil, nil, err
	}

	return plan, roster, nil
}
