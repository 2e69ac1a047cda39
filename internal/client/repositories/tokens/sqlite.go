package tokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"remindcli/internal/client/models"
	"remindcli/internal/dbx"
)

// Storage keys, stable across versions.
const (
	keyAccess  = "access"
	keyRefresh = "refresh"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func get(ctx context.Context, q dbx.DBTX, key string) (string, error) {
	var value string
	err := q.QueryRowContext(ctx, `SELECT value FROM tokens WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get tokens[%s]: %w", key, err)
	}
	return value, nil
}

func set(ctx context.Context, q dbx.DBTX, key, value string) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO tokens (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set tokens[%s]: %w", key, err)
	}
	return nil
}

// Save writes both tokens in one transaction so a crash can never leave a
// half-replaced pair behind.
func (r *SQLiteRepository) Save(ctx context.Context, pair models.TokenPair) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := set(ctx, tx, keyAccess, pair.Access); err != nil {
			return err
		}
		return set(ctx, tx, keyRefresh, pair.Refresh)
	})
}

// SaveAccess rewrites the access token only. The refresh endpoint does not
// rotate refresh tokens, so the stored one must be left as-is.
func (r *SQLiteRepository) SaveAccess(ctx context.Context, access string) error {
	return set(ctx, r.db, keyAccess, access)
}

func (r *SQLiteRepository) Load(ctx context.Context) (*models.TokenPair, error) {
	access, err := get(ctx, r.db, keyAccess)
	if err != nil {
		return nil, err
	}
	refresh, err := get(ctx, r.db, keyRefresh)
	if err != nil {
		return nil, err
	}
	if access == "" && refresh == "" {
		return nil, nil
	}
	return &models.TokenPair{Access: access, Refresh: refresh}, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM tokens`); err != nil {
		return fmt.Errorf("failed to clear tokens: %w", err)
	}
	return nil
}
