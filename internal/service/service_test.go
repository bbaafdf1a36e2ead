package service

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"expense-tracker/internal/repository/sqlite"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, sqlite.Migrate(db))
	return db
}
