package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"expense-tracker/internal/domain"
	"expense-tracker/internal/repository"
)

type ExpenseRepository struct {
	db *sql.DB
}

func NewExpenseRepository(db *sql.DB) repository.ExpenseRepository {
	return &ExpenseRepository{db: db}
}

func (r *ExpenseRepository) Create(ctx context.Context, expense *domain.Expense) (int64, error) {
	now := time.Now().UTC()
	expense.CreatedAt = now
	expense.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO expenses (user_id, category, amount, date, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		expense.UserID,
		expense.Category,
		expense.Amount,
		expense.Date.Format(domain.DateLayout),
		expense.CreatedAt,
		expense.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert expense: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("expense last insert id: %w", err)
	}
	expense.ID = id
	return id, nil
}

func (r *ExpenseRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Expense, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, category, amount, date, created_at, updated_at
FROM expenses
WHERE user_id = ?
ORDER BY id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []domain.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, *expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return expenses, nil
}

func (r *ExpenseRepository) SumByMonth(ctx context.Context, userID int64, year int, month int) (float64, error) {
	monthKey := fmt.Sprintf("%04d-%02d", year, month)
	row := r.db.QueryRowContext(ctx, `
SELECT COALESCE(SUM(amount), 0)
FROM expenses
WHERE user_id = ? AND substr(date, 1, 7) = ?`,
		userID,
		monthKey,
	)

	var total float64
	if err := row.Scan(&total); err != nil {
		return 0, fmt.Errorf("sum expenses by month: %w", err)
	}
	return total, nil
}

func (r *ExpenseRepository) CategoryTotals(ctx context.Context, userID int64) ([]domain.CategoryTotal, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT category, SUM(amount) AS total
FROM expenses
WHERE user_id = ?
GROUP BY category
ORDER BY total DESC, category`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("category totals: %w", err)
	}
	defer rows.Close()

	var totals []domain.CategoryTotal
	for rows.Next() {
		var ct domain.CategoryTotal
		if err := rows.Scan(&ct.Category, &ct.Total); err != nil {
			return nil, fmt.Errorf("scan category total: %w", err)
		}
		totals = append(totals, ct)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category totals: %w", err)
	}
	return totals, nil
}

func scanExpense(row interface {
	Scan(dest ...any) error
}) (*domain.Expense, error) {
	var (
		expense domain.Expense
		date    string
	)
	if err := row.Scan(
		&expense.ID,
		&expense.UserID,
		&expense.Category,
		&expense.Amount,
		&date,
		&expense.CreatedAt,
		&expense.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("scan expense: %w", err)
	}

	parsed, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("parse expense date %q: %w", date, err)
	}
	expense.Date = parsed
	return &expense, nil
}
