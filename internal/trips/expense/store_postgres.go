// Copyright (c) 2026 Planora. All rights reserved.

package expense

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

// NewPostgresRepository constructs a PostgreSQL backed expense store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

/*
Create inserts a new expense row.

Parameters:
  - context: context.Context
  - expense: *Expense

Returns:
  - error: Persistence failures
*/
func (repository *PostgresRepository) Create(context context.Context, expense *Expense) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, planid, title, amount, category, day, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING createdat, updatedat
	`, schema.TripExpense.Table)

	err := repository.db.QueryRow(context, query,
		expense.ID, expense.PlanID, expense.Title, expense.Amount, expense.Category, expense.Day,
	).Scan(&expense.CreatedAt, &expense.UpdatedAt)
	return dberr.Wrap(err, "create_expense")
}

/*
FindByID retrieves a single expense record by its primary key.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Expense: Hydrated entity
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Expense, error) {
	query := fmt.Sprintf(`
		SELECT id, planid, title, amount, category, day, createdat, updatedat
		FROM %s
		WHERE id = $1
	`, schema.TripExpense.Table)

	expense := &Expense{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&expense.ID, &expense.PlanID, &expense.Title, &expense.Amount,
		&expense.Category, &expense.Day, &expense.CreatedAt, &expense.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_expense_by_id")
	}
	return expense, nil
}

/*
ListByPlan returns a paginated list of a plan's expenses.

Parameters:
  - context: context.Context
  - planID: string
  - limit: int
  - offset: int

Returns:
  - []*Expense: Slice of expenses ordered by day, then creation time
  - int: Total record count
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) ListByPlan(context context.Context, planID string, limit, offset int) ([]*Expense, int, error) {
	query := fmt.Sprintf(`
		SELECT
			id, planid, title, amount, category, day, createdat, updatedat,
			COUNT(*) OVER() as total
		FROM %s
		WHERE planid = $1
		ORDER BY day ASC, createdat ASC
		LIMIT $2 OFFSET $3
	`, schema.TripExpense.Table)

	rows, err := repository.db.Query(context, query, planID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_expenses")
	}
	defer rows.Close()

	var expenses []*Expense
	var total int
	for rows.Next() {
		expense := &Expense{}
		err := rows.Scan(
			&expense.ID, &expense.PlanID, &expense.Title, &expense.Amount,
			&expense.Category, &expense.Day, &expense.CreatedAt, &expense.UpdatedAt, &total,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_expense")
		}
		expenses = append(expenses, expense)
	}

	return expenses, total, nil
}

/*
SummarizeByCategory aggregates a plan's total spend per category.

Parameters:
  - context: context.Context
  - planID: string

Returns:
  - []*CategoryTotal: Totals ordered by descending spend
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) SummarizeByCategory(context context.Context, planID string) ([]*CategoryTotal, error) {
	query := fmt.Sprintf(`
		SELECT category, COALESCE(SUM(amount), 0) as total
		FROM %s
		WHERE planid = $1
		GROUP BY category
		ORDER BY total DESC
	`, schema.TripExpense.Table)

	rows, err := repository.db.Query(context, query, planID)
	if err != nil {
		return nil, dberr.Wrap(err, "summarize_expenses")
	}
	defer rows.Close()

	var totals []*CategoryTotal
	for rows.Next() {
		row := &CategoryTotal{}
		if err := rows.Scan(&row.Category, &row.Total); err != nil {
			return nil, dberr.Wrap(err, "scan_expense_summary")
		}
		totals = append(totals, row)
	}

	return totals, nil
}

/*
Update modifies mutable expense fields.

Parameters:
  - context: context.Context
  - expense: *Expense

Returns:
  - error: Persistence failures
*/
func (repository *PostgresRepository) Update(context context.Context, expense *Expense) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $2, amount = $3, category = $4, day = $5, updatedat = NOW()
		WHERE id = $1
		RETURNING updatedat
	`, schema.TripExpense.Table)

	err := repository.db.QueryRow(context, query,
		expense.ID, expense.Title, expense.Amount, expense.Category, expense.Day,
	).Scan(&expense.UpdatedAt)
	return dberr.Wrap(err, "update_expense")
}

/*
Delete hard-deletes an expense row.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: Persistence failures
*/
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, schema.TripExpense.Table)
	_, err := repository.db.Exec(context, query, id)
	return dberr.Wrap(err, "delete_expense")
}
