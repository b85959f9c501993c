// Copyright (c) 2026 Planora. All rights reserved.

package route

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/planora/planora/internal/platform/database/schema"
	"github.com/planora/planora/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed route store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

/*
ReplaceDay swaps a day's waypoint list atomically.

Description: Executes within an ACID transaction: a blanket DELETE for the
(plan, day) pair followed by ordered INSERTs. Readers never observe a
half-replaced route.

Parameters:
  - context: context.Context
  - planID: string
  - day: int
  - waypoints: []*Waypoint

Returns:
  - error: Transactional or database failures
*/
func (repository *PostgresRepository) ReplaceDay(context context.Context, planID string, day int, waypoints []*Waypoint) error {

	// Establish Transactional Boundary
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_replace_route_tx")
	}
	defer transaction.Rollback(context)

	// Step 1: Clear the previous route for this day
	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE planid = $1 AND day = $2`, schema.TripRoute.Table)
	if _, err := transaction.Exec(context, deleteQuery, planID, day); err != nil {
		return dberr.Wrap(err, "delete_route_day")
	}

	// Step 2: Insert the replacement list in position order
	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (id, planid, day, position, name, latitude, longitude, createdat)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING createdat
	`, schema.TripRoute.Table)

	for _, waypoint := range waypoints {
		err := transaction.QueryRow(context, insertQuery,
			waypoint.ID, waypoint.PlanID, waypoint.Day, waypoint.Position,
			waypoint.Name, waypoint.Latitude, waypoint.Longitude,
		).Scan(&waypoint.CreatedAt)
		if err != nil {
			return dberr.Wrap(err, "insert_route_waypoint")
		}
	}

	// Persist Atomic Changeset
	return transaction.Commit(context)
}

/*
ListByDay returns a single day's waypoints in position order.

Parameters:
  - context: context.Context
  - planID: string
  - day: int

Returns:
  - []*Waypoint: Ordered waypoints
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) ListByDay(context context.Context, planID string, day int) ([]*Waypoint, error) {
	query := fmt.Sprintf(`
		SELECT id, planid, day, position, name, latitude, longitude, createdat
		FROM %s
		WHERE planid = $1 AND day = $2
		ORDER BY position ASC
	`, schema.TripRoute.Table)

	rows, err := repository.db.Query(context, query, planID, day)
	if err != nil {
		return nil, dberr.Wrap(err, "list_route_day")
	}
	defer rows.Close()

	return scanWaypoints(rows)
}

/*
ListByPlan returns every waypoint in a plan ordered by day, then position.

Parameters:
  - context: context.Context
  - planID: string

Returns:
  - []*Waypoint: Ordered waypoints for all days
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) ListByPlan(context context.Context, planID string) ([]*Waypoint, error) {
	query := fmt.Sprintf(`
		SELECT id, planid, day, position, name, latitude, longitude, createdat
		FROM %s
		WHERE planid = $1
		ORDER BY day ASC, position ASC
	`, schema.TripRoute.Table)

	rows, err := repository.db.Query(context, query, planID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_route_plan")
	}
	defer rows.Close()

	return scanWaypoints(rows)
}

// scanWaypoints drains a result set into waypoint entities.
func scanWaypoints(rows pgx.Rows) ([]*Waypoint, error) {
	var waypoints []*Waypoint
	for rows.Next() {
		waypoint := &Waypoint{}
		err := rows.Scan(
			&waypoint.ID, &waypoint.PlanID, &waypoint.Day, &waypoint.Position,
			&waypoint.Name, &waypoint.Latitude, &waypoint.Longitude, &waypoint.CreatedAt,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_route_waypoint")
		}
		waypoints = append(waypoints, waypoint)
	}
	return waypoints, nil
}
