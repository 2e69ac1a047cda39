// Package tokens persists the session's token pair in the client database.
// The pair survives process restarts; no expiry is tracked here — a stored
// token is only ever invalidated by the server rejecting it.
package tokens

import (
	"context"

	"remindcli/internal/client/models"
)

// Repository is the durable token store.
//
// Load returns (nil, nil) when no session is stored. Save replaces both
// values atomically; SaveAccess rewrites only the access token, leaving the
// stored refresh token untouched.
type Repository interface {
	Save(ctx context.Context, pair models.TokenPair) error
	SaveAccess(ctx context.Context, access string) error
	Load(ctx context.Context) (*models.TokenPair, error)
	Clear(ctx context.Context) error
}
