// Copyright (c) 2026 Planora. All rights reserved.

package plan

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/planora/planora/internal/platform/database/schema"
	"github.com/planora/planora/internal/platform/dberr"
	"github.com/planora/planora/internal/trips/access"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed plan store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// # Plan Lifecycle

/*
CreateWithOwner persists a plan and its OWNER roster row atomically.

Description: Executes within an ACID transaction to guarantee the single-owner
invariant. Rolls back completely if either insert fails, so no plan ever
exists without exactly one OWNER.

Parameters:
  - context: context.Context
  - plan: *Plan

Returns:
  - error: Transactional or database failures
*/
func (repository *PostgresRepository) CreateWithOwner(context context.Context, plan *Plan) error {

	// Establish Transactional Boundary
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_create_plan_tx")
	}
	defer transaction.Rollback(context)

	// Step 1: Persist Plan Row
	planQuery := fmt.Sprintf(`
		INSERT INTO %s (id, name, visibility, startdate, enddate, creatorid, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING createdat, updatedat
	`, schema.TripPlan.Table)

	err = transaction.QueryRow(context, planQuery,
		plan.ID, plan.Name, plan.Visibility, plan.StartDate, plan.EndDate, plan.CreatorID,
	).Scan(&plan.CreatedAt, &plan.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "insert_plan")
	}

	// Step 2: Seed Owner Roster Row
	memberQuery := fmt.Sprintf(`
		INSERT INTO %s (planid, userid, role, createdat)
		VALUES ($1, $2, $3, NOW())
	`, schema.TripPlanMember.Table)

	_, err = transaction.Exec(context, memberQuery, plan.ID, plan.CreatorID, access.RoleOwner)
	if err != nil {
		return dberr.Wrap(err, "insert_plan_owner")
	}

	// Persist Atomic Changeset
	return transaction.Commit(context)
}

/*
FindByID retrieves a single plan record by its primary key.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Plan: Hydrated entity
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Plan, error) {
	query := fmt.Sprintf(`
		SELECT id, name, visibility, startdate, enddate, creatorid, createdat, updatedat
		FROM %s
		WHERE id = $1 AND deletedat IS NULL
	`, schema.TripPlan.Table)

	plan := &Plan{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&plan.ID, &plan.Name, &plan.Visibility, &plan.StartDate, &plan.EndDate,
		&plan.CreatorID, &plan.CreatedAt, &plan.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_plan_by_id")
	}
	return plan, nil
}

/*
Update modifies plan metadata fields.

Parameters:
  - context: context.Context
  - plan: *Plan

Returns:
  - error: Persistence failures
*/
func (repository *PostgresRepository) Update(context context.Context, plan *Plan) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $2, visibility = $3, startdate = $4, enddate = $5, updatedat = NOW()
		WHERE id = $1 AND deletedat IS NULL
		RETURNING updatedat
	`, schema.TripPlan.Table)

	err := repository.db.QueryRow(context, query,
		plan.ID, plan.Name, plan.Visibility, plan.StartDate, plan.EndDate,
	).Scan(&plan.UpdatedAt)
	return dberr.Wrap(err, "update_plan")
}

/*
SoftDelete flags a plan as deleted.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: Persistence failures
*/
func (repository *PostgresRepository) SoftDelete(context context.Context, id string) error {
	query := fmt.Sprintf(`UPDATE %s SET deletedat = NOW() WHERE id = $1`, schema.TripPlan.Table)
	_, err := repository.db.Exec(context, query, id)
	return dberr.Wrap(err, "delete_plan")
}

/*
ListByUser returns a paginated list of plans the user participates in.

Description: Joins through the roster so BLOCKED users never see the plan in
their listing, and uses COUNT(*) OVER() for total metadata.

Parameters:
  - context: context.Context
  - userID: string
  - limit: int
  - offset: int

Returns:
  - []*Plan: Slice of matching plans
  - int: Total record count
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) ListByUser(context context.Context, userID string, limit, offset int) ([]*Plan, int, error) {
	query := fmt.Sprintf(`
		SELECT
			p.id, p.name, p.visibility, p.startdate, p.enddate, p.creatorid,
			p.createdat, p.updatedat,
			COUNT(*) OVER() as total
		FROM %s p
		JOIN %s m ON m.planid = p.id
		WHERE m.userid = $1 AND m.role IN ($2, $3) AND p.deletedat IS NULL
		ORDER BY p.createdat DESC
		LIMIT $4 OFFSET $5
	`, schema.TripPlan.Table, schema.TripPlanMember.Table)

	rows, err := repository.db.Query(context, query, userID, access.RoleOwner, access.RoleMember, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_plans")
	}
	defer rows.Close()

	var plans []*Plan
	var total int
	for rows.Next() {
		plan := &Plan{}
		err := rows.Scan(
			&plan.ID, &plan.Name, &plan.Visibility, &plan.StartDate, &plan.EndDate,
			&plan.CreatorID, &plan.CreatedAt, &plan.UpdatedAt, &total,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_plan")
		}
		plans = append(plans, plan)
	}

	return plans, total, nil
}

// # Roster Implementation

/*
ListMembers retrieves the full roster of a plan.

Parameters:
  - context: context.Context
  - planID: string

Returns:
  - []*Member: Roster rows, oldest joiner first
  - error: Retrieval failures
*/
func (repository *PostgresRepository) ListMembers(context context.Context, planID string) ([]*Member, error) {
	query := fmt.Sprintf(`
		SELECT planid, userid, role, createdat
		FROM %s
		WHERE planid = $1
		ORDER BY createdat ASC
	`, schema.TripPlanMember.Table)

	rows, err := repository.db.Query(context, query, planID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_plan_members")
	}
	defer rows.Close()

	var members []*Member
	for rows.Next() {
		member := &Member{}
		if err := rows.Scan(&member.PlanID, &member.UserID, &member.Role, &member.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_plan_member")
		}
		members = append(members, member)
	}

	return members, nil
}

/*
InsertMember adds a new roster row.

Parameters:
  - context: context.Context
  - member: *Member

Returns:
  - error: apperr.Conflict on duplicate (plan, user), or persistence failures
*/
func (repository *PostgresRepository) InsertMember(context context.Context, member *Member) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (planid, userid, role, createdat)
		VALUES ($1, $2, $3, NOW())
		RETURNING createdat
	`, schema.TripPlanMember.Table)

	err := repository.db.QueryRow(context, query, member.PlanID, member.UserID, member.Role).Scan(&member.CreatedAt)
	return dberr.Wrap(err, "insert_plan_member")
}

/*
UpsertMemberRole inserts or overwrites a user's role within a plan.

Parameters:
  - context: context.Context
  - planID: string
  - userID: string
  - role: access.Role

Returns:
  - error: Persistence failures
*/
func (repository *PostgresRepository) UpsertMemberRole(context context.Context, planID, userID string, role access.Role) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (planid, userid, role, createdat)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (planid, userid) DO UPDATE SET role = EXCLUDED.role
	`, schema.TripPlanMember.Table)

	_, err := repository.db.Exec(context, query, planID, userID, role)
	return dberr.Wrap(err, "upsert_plan_member_role")
}

/*
RemoveMember hard-deletes a roster row.

Parameters:
  - context: context.Context
  - planID: string
  - userID: string

Returns:
  - error: Persistence failures
*/
func (repository *PostgresRepository) RemoveMember(context context.Context, planID, userID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE planid = $1 AND userid = $2`, schema.TripPlanMember.Table)
	_, err := repository.db.Exec(context, query, planID, userID)
	return dberr.Wrap(err, "remove_plan_member")
}
