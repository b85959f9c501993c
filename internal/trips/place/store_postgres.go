// Copyright (c) 2026 Planora. All rights reserved.

package place

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

// NewPostgresRepository constructs a PostgreSQL backed place store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) Create(context context.Context, place *Place) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, planid, name, address, latitude, longitude, memo, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING createdat, updatedat
	`, schema.TripPlace.Table)

	err := repository.db.QueryRow(context, query,
		place.ID, place.PlanID, place.Name, place.Address, place.Latitude, place.Longitude, place.Memo,
	).Scan(&place.CreatedAt, &place.UpdatedAt)
	return dberr.Wrap(err, "create_place")
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Place, error) {
	query := fmt.Sprintf(`
		SELECT id, planid, name, address, latitude, longitude, memo, createdat, updatedat
		FROM %s
		WHERE id = $1
	`, schema.TripPlace.Table)

	place := &Place{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&place.ID, &place.PlanID, &place.Name, &place.Address, &place.Latitude,
		&place.Longitude, &place.Memo, &place.CreatedAt, &place.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_place_by_id")
	}
	return place, nil
}

func (repository *PostgresRepository) ListByPlan(context context.Context, planID string, limit, offset int) ([]*Place, int, error) {
	query := fmt.Sprintf(`
		SELECT
			id, planid, name, address, latitude, longitude, memo, createdat, updatedat,
			COUNT(*) OVER() as total
		FROM %s
		WHERE planid = $1
		ORDER BY createdat DESC
		LIMIT $2 OFFSET $3
	`, schema.TripPlace.Table)

	rows, err := repository.db.Query(context, query, planID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_places")
	}
	defer rows.Close()

	var places []*Place
	var total int
	for rows.Next() {
		place := &Place{}
		err := rows.Scan(
			&place.ID, &place.PlanID, &place.Name, &place.Address, &place.Latitude,
			&place.Longitude, &place.Memo, &place.CreatedAt, &place.UpdatedAt, &total,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_place")
		}
		places = append(places, place)
	}

	return places, total, nil
}

func (repository *PostgresRepository) Update(context context.Context, place *Place) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $2, address = $3, latitude = $4, longitude = $5, memo = $6, updatedat = NOW()
		WHERE id = $1
		RETURNING updatedat
	`, schema.TripPlace.Table)

	err := repository.db.QueryRow(context, query,
		place.ID, place.Name, place.Address, place.Latitude, place.Longitude, place.Memo,
	).Scan(&place.UpdatedAt)
	return dberr.Wrap(err, "update_place")
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, schema.TripPlace.Table)
	_, err := repository.db.Exec(context, query, id)
	return dberr.Wrap(err, "delete_place")
}
