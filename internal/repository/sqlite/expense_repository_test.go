package sqlite

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expense-tracker/internal/domain"
)

func seedUser(t *testing.T, db *sql.DB, name string) int64 {
	t.Helper()
	id, err := NewUserRepository(db).Create(context.Background(), &domain.User{
		Username:     name,
		PasswordHash: "hash",
	})
	require.NoError(t, err)
	return id
}

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse(domain.DateLayout, value)
	require.NoError(t, err)
	return d
}

func TestExpenseCreateRequiresExistingUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewExpenseRepository(db)

	_, err := repo.Create(context.Background(), &domain.Expense{
		UserID:   9999,
		Category: "food",
		Amount:   10,
		Date:     mustDate(t, "2024-01-05"),
	})
	assert.Error(t, err, "foreign key on user_id must reject unknown users")
}

func TestExpenseListInsertionOrder(t *testing.T) {
	db := newTestDB(t)
	repo := NewExpenseRepository(db)
	ctx := context.Background()
	alice := seedUser(t, db, "alice")

	for _, e := range []struct {
		category string
		date     string
	}{
		{"zoo", "2024-03-01"},
		{"food", "2024-01-01"},
		{"rent", "2024-02-01"},
	} {
		_, err := repo.Create(ctx, &domain.Expense{
			UserID:   alice,
			Category: e.category,
			Amount:   1,
			Date:     mustDate(t, e.date),
		})
		require.NoError(t, err)
	}

	expenses, err := repo.ListByUser(ctx, alice)
	require.NoError(t, err)
	require.Len(t, expenses, 3)
	assert.Equal(t, "zoo", expenses[0].Category)
	assert.Equal(t, "food", expenses[1].Category)
	assert.Equal(t, "rent", expenses[2].Category)
}

func TestExpenseSumByMonthWindowsOnYear(t *testing.T) {
	db := newTestDB(t)
	repo := NewExpenseRepository(db)
	ctx := context.Background()
	alice := seedUser(t, db, "alice")

	for _, e := range []struct {
		amount float64
		date   string
	}{
		{10, "2024-01-05"},
		{15, "2024-01-31"},
		{70, "2023-01-05"},
		{5, "2024-02-01"},
	} {
		_, err := repo.Create(ctx, &domain.Expense{
			UserID:   alice,
			Category: "misc",
			Amount:   e.amount,
			Date:     mustDate(t, e.date),
		})
		require.NoError(t, err)
	}

	total, err := repo.SumByMonth(ctx, alice, 2024, 1)
	require.NoError(t, err)
	assert.Equal(t, 25.0, total)

	total, err = repo.SumByMonth(ctx, alice, 2022, 1)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestExpenseCategoryTotalsOrdering(t *testing.T) {
	db := newTestDB(t)
	repo := NewExpenseRepository(db)
	ctx := context.Background()
	alice := seedUser(t, db, "alice")

	for _, e := range []struct {
		category string
		amount   float64
	}{
		{"food", 20},
		{"rent", 500},
		{"books", 20},
	} {
		_, err := repo.Create(ctx, &domain.Expense{
			UserID:   alice,
			Category: e.category,
			Amount:   e.amount,
			Date:     mustDate(t, "2024-01-05"),
		})
		require.NoError(t, err)
	}

	totals, err := repo.CategoryTotals(ctx, alice)
	require.NoError(t, err)
	require.Len(t, totals, 3)
	assert.Equal(t, "rent", totals[0].Category)
	// equal totals fall back to category order
	assert.Equal(t, "books", totals[1].Category)
	assert.Equal(t, "food", totals[2].Category)
}
