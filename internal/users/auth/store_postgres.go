// Copyright (c) 2026 Planora. All rights reserved.

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/planora/planora/internal/platform/apperr"
	"github.com/planora/planora/internal/platform/database/schema"
	"github.com/planora/planora/internal/platform/dberr"
)

// # User Repository

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

/*
Create persists a new user record into the users.account table.

Description: Deep-persists account metadata, ensuring timestamps are initialized
if not provided. A duplicate login ID surfaces as apperr.Conflict via dberr.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: Database constraint violations or connectivity errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		schema.UserAccount.Table,
		schema.UserAccount.ID, schema.UserAccount.LoginID, schema.UserAccount.Password,
		schema.UserAccount.Nickname, schema.UserAccount.Status,
		schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
	)

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.LoginID,
		user.PasswordHash,
		user.Nickname,
		user.Status,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "create_user")
	}

	return nil
}

/*
FindByID retrieves a user record by its primary key.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1`,
		schema.UserAccount.ID, schema.UserAccount.LoginID, schema.UserAccount.Password,
		schema.UserAccount.Nickname, schema.UserAccount.Status,
		schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
		schema.UserAccount.Table,
		schema.UserAccount.ID,
	)

	return repository.scanOne(context, query, id)
}

/*
FindByLoginID retrieves a user record by its unique external login ID.

Parameters:
  - context: context.Context
  - loginID: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByLoginID(context context.Context, loginID string) (*User, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1`,
		schema.UserAccount.ID, schema.UserAccount.LoginID, schema.UserAccount.Password,
		schema.UserAccount.Nickname, schema.UserAccount.Status,
		schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
		schema.UserAccount.Table,
		schema.UserAccount.LoginID,
	)

	return repository.scanOne(context, query, loginID)
}

/*
UpdateStatus transitions the account lifecycle state (e.g. ACTIVE → WITHDRAWN).

Parameters:
  - context: context.Context
  - userID: string
  - status: UserStatus

Returns:
  - error: apperr.NotFound if the account does not exist, or database errors
*/
func (repository *PostgresUserRepository) UpdateStatus(context context.Context, userID string, status UserStatus) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1`,
		schema.UserAccount.Table,
		schema.UserAccount.Status, schema.UserAccount.UpdatedAt,
		schema.UserAccount.ID,
	)

	cmd, err := repository.pool.Exec(context, query, userID, status)
	if err != nil {
		return dberr.Wrap(err, "update_user_status")
	}

	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	return nil
}

// scanOne executes a single-row account query and hydrates the entity.
func (repository *PostgresUserRepository) scanOne(context context.Context, query string, arg any) (*User, error) {
	user := &User{}
	err := repository.pool.QueryRow(context, query, arg).Scan(
		&user.ID,
		&user.LoginID,
		&user.PasswordHash,
		&user.Nickname,
		&user.Status,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, dberr.Wrap(err, "find_user")
	}

	return user, nil
}
