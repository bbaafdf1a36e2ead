package service

import (
	"context"
	"strings"
	"time"

	"expense-tracker/internal/domain"
	"expense-tracker/internal/repository"
)

// ExpenseService coordinates expense level operations backed by repositories.
type ExpenseService interface {
	Log(ctx context.Context, userID int64, category string, amount float64, date string) (*domain.Expense, error)
	List(ctx context.Context, userID int64) ([]domain.Expense, error)
	MonthlyTotal(ctx context.Context, userID int64, year int, month int) (float64, error)
	CategoryBreakdown(ctx context.Context, userID int64) ([]domain.CategoryTotal, error)
}

type expenseService struct {
	expenses repository.ExpenseRepository
}

func NewExpenseService(expenses repository.ExpenseRepository) ExpenseService {
	return &expenseService{expenses: expenses}
}

func (s *expenseService) Log(ctx context.Context, userID int64, category string, amount float64, date string) (*domain.Expense, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, validationErrorf("category is required")
	}
	if amount < 0 {
		return nil, validationErrorf("amount must not be negative")
	}

	parsed, err := time.Parse(domain.DateLayout, strings.TrimSpace(date))
	if err != nil {
		return nil, validationErrorf("date must be in %s format", "YYYY-MM-DD")
	}

	expense := &domain.Expense{
		UserID:   userID,
		Category: category,
		Amount:   amount,
		Date:     parsed,
	}

	if _, err := s.expenses.Create(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *expenseService) List(ctx context.Context, userID int64) ([]domain.Expense, error) {
	return s.expenses.ListByUser(ctx, userID)
}

func (s *expenseService) MonthlyTotal(ctx context.Context, userID int64, year int, month int) (float64, error) {
	if year < 1 || month < 1 || month > 12 {
		return 0, validationErrorf("invalid year or month")
	}
	return s.expenses.SumByMonth(ctx, userID, year, month)
}

func (s *expenseService) CategoryBreakdown(ctx context.Context, userID int64) ([]domain.CategoryTotal, error) {
	return s.expenses.CategoryTotals(ctx, userID)
}
