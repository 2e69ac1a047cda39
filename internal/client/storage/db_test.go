package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInitDatabase_CreatesTokensTable(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "client.db")

	db, err := InitDatabase(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`INSERT INTO tokens(key,value) VALUES('access','A')`)
	require.NoError(t, err)
}

func TestInitDatabase_IdempotentAcrossReopens(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "client.db")
	ctx := context.Background()

	db, err := InitDatabase(ctx, dsn)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO tokens(key,value) VALUES('access','A')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// Reopening must not re-run migrations destructively.
	db, err = InitDatabase(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var v string
	require.NoError(t, db.QueryRow(`SELECT value FROM tokens WHERE key='access'`).Scan(&v))
	require.Equal(t, "A", v)
}
