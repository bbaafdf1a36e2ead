package repository

import (
	"context"

	"expense-tracker/internal/domain"
)

// ExpenseRepository defines persistence operations for Expense entities.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *domain.Expense) (int64, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Expense, error)
	SumByMonth(ctx context.Context, userID int64, year int, month int) (float64, error)
	CategoryTotals(ctx context.Context, userID int64) ([]domain.CategoryTotal, error)
}
