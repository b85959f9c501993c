// Copyright (c) 2026 Planora. All rights reserved.

package marker

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/planora/planora/internal/platform/database/schema"
	"github.com/planora/planora/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed marker store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) Create(context context.Context, marker *Marker) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, planid, name, latitude, longitude, color, icon, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING createdat, updatedat
	`, schema.TripMarker.Table)

	err := repository.db.QueryRow(context, query,
		marker.ID, marker.PlanID, marker.Name, marker.Latitude, marker.Longitude, marker.Color, marker.Icon,
	).Scan(&marker.CreatedAt, &marker.UpdatedAt)
	return dberr.Wrap(err, "create_marker")
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Marker, error) {
	query := fmt.Sprintf(`
		SELECT id, planid, name, latitude, longitude, color, icon, createdat, updatedat
		FROM %s
		WHERE id = $1
	`, schema.TripMarker.Table)

	marker := &Marker{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&marker.ID, &marker.PlanID, &marker.Name, &marker.Latitude, &marker.Longitude,
		&marker.Color, &marker.Icon, &marker.CreatedAt, &marker.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_marker_by_id")
	}
	return marker, nil
}

func (repository *PostgresRepository) ListByPlan(context context.Context, planID string) ([]*Marker, error) {
	query := fmt.Sprintf(`
		SELECT id, planid, name, latitude, longitude, color, icon, createdat, updatedat
		FROM %s
		WHERE planid = $1
		ORDER BY createdat ASC
	`, schema.TripMarker.Table)

	rows, err := repository.db.Query(context, query, planID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_markers")
	}
	defer rows.Close()

	var markers []*Marker
	for rows.Next() {
		marker := &Marker{}
		err := rows.Scan(
			&marker.ID, &marker.PlanID, &marker.Name, &marker.Latitude, &marker.Longitude,
			&marker.Color, &marker.Icon, &marker.CreatedAt, &marker.UpdatedAt,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_marker")
		}
		markers = append(markers, marker)
	}

	return markers, nil
}

func (repository *PostgresRepository) Update(context context.Context, marker *Marker) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $2, latitude = $3, longitude = $4, color = $5, icon = $6, updatedat = NOW()
		WHERE id = $1
		RETURNING updatedat
	`, schema.TripMarker.Table)

	err := repository.db.QueryRow(context, query,
		marker.ID, marker.Name, marker.Latitude, marker.Longitude, marker.Color, marker.Icon,
	).Scan(&marker.UpdatedAt)
	return dberr.Wrap(err, "update_marker")
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, schema.TripMarker.Table)
	_, err := repository.db.Exec(context, query, id)
	return dberr.Wrap(err, "delete_marker")
}
