package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expense-tracker/internal/domain"
	"expense-tracker/internal/repository/sqlite"
)

func newExpenseFixture(t *testing.T) (ExpenseService, UserService, *sql.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewExpenseService(sqlite.NewExpenseRepository(db)),
		NewUserService(sqlite.NewUserRepository(db)),
		db
}

func registerUser(t *testing.T, users UserService, name string) int64 {
	t.Helper()
	user, err := users.Register(context.Background(), name, "pw123")
	require.NoError(t, err)
	return user.ID
}

func TestLogAndListRoundTrip(t *testing.T) {
	expenses, users, _ := newExpenseFixture(t)
	ctx := context.Background()
	alice := registerUser(t, users, "alice")

	logged, err := expenses.Log(ctx, alice, "food", 12.5, "2024-03-15")
	require.NoError(t, err)
	assert.NotZero(t, logged.ID)

	listed, err := expenses.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "food", listed[0].Category)
	assert.Equal(t, 12.5, listed[0].Amount)
	assert.Equal(t, "2024-03-15", listed[0].Date.Format(domain.DateLayout))
}

func TestLogValidation(t *testing.T) {
	expenses, users, _ := newExpenseFixture(t)
	ctx := context.Background()
	alice := registerUser(t, users, "alice")

	var vErr *ValidationError

	_, err := expenses.Log(ctx, alice, "", 10, "2024-01-01")
	assert.ErrorAs(t, err, &vErr)

	_, err = expenses.Log(ctx, alice, "food", -1, "2024-01-01")
	assert.ErrorAs(t, err, &vErr)

	_, err = expenses.Log(ctx, alice, "food", 10, "15-03-2024")
	assert.ErrorAs(t, err, &vErr)

	_, err = expenses.Log(ctx, alice, "food", 10, "2024-13-40")
	assert.ErrorAs(t, err, &vErr)
}

func TestListIsolationBetweenUsers(t *testing.T) {
	expenses, users, _ := newExpenseFixture(t)
	ctx := context.Background()
	alice := registerUser(t, users, "alice")
	bob := registerUser(t, users, "bob")

	_, err := expenses.Log(ctx, alice, "food", 10, "2024-01-05")
	require.NoError(t, err)
	_, err = expenses.Log(ctx, bob, "games", 30, "2024-01-06")
	require.NoError(t, err)

	aliceList, err := expenses.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, aliceList, 1)
	assert.Equal(t, "food", aliceList[0].Category)

	bobList, err := expenses.List(ctx, bob)
	require.NoError(t, err)
	require.Len(t, bobList, 1)
	assert.Equal(t, "games", bobList[0].Category)
}

func TestMonthlyTotal(t *testing.T) {
	expenses, users, _ := newExpenseFixture(t)
	ctx := context.Background()
	alice := registerUser(t, users, "alice")
	bob := registerUser(t, users, "bob")

	seed := []struct {
		category string
		amount   float64
		date     string
	}{
		{"food", 12.5, "2024-01-05"},
		{"food", 7.5, "2024-01-20"},
		{"rent", 500, "2024-02-01"},
		{"food", 99, "2023-01-15"}, // same month, different year
	}
	for _, e := range seed {
		_, err := expenses.Log(ctx, alice, e.category, e.amount, e.date)
		require.NoError(t, err)
	}
	_, err := expenses.Log(ctx, bob, "food", 1000, "2024-01-10")
	require.NoError(t, err)

	total, err := expenses.MonthlyTotal(ctx, alice, 2024, 1)
	require.NoError(t, err)
	assert.Equal(t, 20.0, total)

	total, err = expenses.MonthlyTotal(ctx, alice, 2023, 1)
	require.NoError(t, err)
	assert.Equal(t, 99.0, total)

	total, err = expenses.MonthlyTotal(ctx, alice, 2024, 7)
	require.NoError(t, err)
	assert.Zero(t, total)

	var vErr *ValidationError
	_, err = expenses.MonthlyTotal(ctx, alice, 2024, 13)
	assert.ErrorAs(t, err, &vErr)
}

func TestCategoryBreakdownPartitionsExpenses(t *testing.T) {
	expenses, users, _ := newExpenseFixture(t)
	ctx := context.Background()
	alice := registerUser(t, users, "alice")

	seed := []struct {
		category string
		amount   float64
		date     string
	}{
		{"food", 12.5, "2024-01-05"},
		{"food", 7.5, "2024-01-20"},
		{"rent", 500, "2024-02-01"},
	}
	for _, e := range seed {
		_, err := expenses.Log(ctx, alice, e.category, e.amount, e.date)
		require.NoError(t, err)
	}

	totals, err := expenses.CategoryBreakdown(ctx, alice)
	require.NoError(t, err)
	require.Len(t, totals, 2)

	// descending by total
	assert.Equal(t, domain.CategoryTotal{Category: "rent", Total: 500}, totals[0])
	assert.Equal(t, domain.CategoryTotal{Category: "food", Total: 20}, totals[1])

	var sum float64
	for _, ct := range totals {
		sum += ct.Total
	}
	assert.Equal(t, 520.0, sum)
}
