package storage

import (
	"fmt"

	"trip-tracker/internal/models"
)

// CreateExpense inserts a new expense. The insert runs in a transaction so
// a failed write rolls back before the connection is reused.
func (db *DB) CreateExpense(e *models.Expense) (int64, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		`INSERT INTO expenses (user_id, trip_id, category, amount, description, location, method)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.UserID, e.TripID, e.Category, e.Amount, e.Description, e.Location, e.Method,
	)
	if err != nil {
		return 0, fmt.Errorf("insert expense: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

// ListExpenses returns all expenses for a trip, scoped to its owner.
func (db *DB) ListExpenses(tripID, ownerID int64) ([]models.Expense, error) {
	rows, err := db.conn.Query(
		`SELECT expense_id, user_id, trip_id, category, amount, description, location, method, created_at
		 FROM expenses WHERE trip_id = ? AND user_id = ?`,
		tripID, ownerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.UserID, &e.TripID, &e.Category, &e.Amount,
			&e.Description, &e.Location, &e.Method, &e.CreatedAt); err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}

	return expenses, rows.Err()
}

// DeleteExpense removes an expense, scoped to its owner. Returns ErrNotFound
// when no row matched, which covers both absent and foreign expenses.
func (db *DB) DeleteExpense(expenseID, ownerID int64) error {
	result, err := db.conn.Exec(
		"DELETE FROM expenses WHERE expense_id = ? AND user_id = ?",
		expenseID, ownerID,
	)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// AggregateByCategory sums expense amounts for a trip grouped into the fixed
// category buckets. A trip with no expenses (or one that does not belong to
// the user) yields an all-zero breakdown, not an error.
func (db *DB) AggregateByCategory(tripID, ownerID int64) (*models.CategoryBreakdown, error) {
	row := db.conn.QueryRow(`
		SELECT
			COALESCE(SUM(CASE WHEN category = 'General' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN category = 'Food' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN category = 'Travel' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN category = 'Night Stay' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN category NOT IN ('General', 'Food', 'Travel', 'Night Stay') THEN amount ELSE 0 END), 0),
			COALESCE(SUM(amount), 0)
		FROM expenses
		WHERE trip_id = ? AND user_id = ?
	`, tripID, ownerID)

	var b models.CategoryBreakdown
	if err := row.Scan(&b.General, &b.Food, &b.Travel, &b.NightStay, &b.Other, &b.Total); err != nil {
		return nil, err
	}
	return &b, nil
}
