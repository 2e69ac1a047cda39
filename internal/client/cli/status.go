package cli

import (
	"context"
	"fmt"
	"time"

	"remindcli/internal/client/models"
)

// Status prints the current session: the logged-in user and what the access
// token claims about itself. The claims are displayed as-is, without
// verification; only the server's word counts for authentication.
func (a *App) Status(ctx context.Context) error {
	snap := a.state.Snapshot()

	if snap.Tokens == nil || snap.Tokens.Access == "" {
		printlnFn("No session.")
		return nil
	}

	if snap.Authenticated && snap.User != nil {
		printlnFn(fmt.Sprintf("Logged in as %s <%s>", snap.User.Username, snap.User.Email))
	} else {
		printlnFn("Stored session present, not verified yet.")
	}

	claims, err := models.PeekAccessClaims(snap.Tokens.Access)
	if err != nil {
		printlnFn("Access token: unreadable:", err.Error())
		return nil
	}

	printlnFn(fmt.Sprintf("Access token: user id %d, issued %s, expires %s",
		claims.UserID,
		claims.IssuedAt.Format(time.RFC3339),
		claims.ExpiresAt.Format(time.RFC3339)))
	if time.Now().After(claims.ExpiresAt) {
		printlnFn("The access token looks expired; it will be refreshed on the next command.")
	}
	return nil
}
