package dbhelper

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/konaseemakart/backend/database"
)

// setupMock swaps the package pool for a sqlmock handle for the duration of
// one test.
func setupMock(t *testing.T) sqlmock.Sqlmock {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	prev := database.Kart
	database.Kart = db
	t.Cleanup(func() {
		database.Kart = prev
		db.Close()
	})
	return mock
}
