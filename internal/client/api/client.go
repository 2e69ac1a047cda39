// Package api defines the transport seam to the remote reminder service:
// a Client interface with one method per endpoint, an HTTP implementation,
// and the error taxonomy surfaced to the service layer.
package api

import (
	"context"

	"remindcli/internal/client/models"
)

// Client is the wire-level contract with the reminder API. Implementations
// map transport failures onto the package's error taxonomy; callers branch
// with errors.Is / errors.As and never inspect status codes.
//
// Authenticated calls take the access token explicitly. Keeping the token a
// parameter (instead of client state) lets the session layer decide which
// token a call uses — in particular the login flow and the guard's retry
// pass a just-obtained token that session state may not carry yet.
type Client interface {
	Close() error

	Login(ctx context.Context, username, password string) (models.TokenPair, error)
	Register(ctx context.Context, username, email, password string) error
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Profile(ctx context.Context, accessToken string) (*models.UserProfile, error)

	Reminders(ctx context.Context, accessToken string) ([]models.Reminder, error)
	CreateReminder(ctx context.Context, accessToken string, draft models.ReminderDraft) (*models.Reminder, error)
	UpdateReminder(ctx context.Context, accessToken string, id int64, draft models.ReminderDraft) (*models.Reminder, error)
	DeleteReminder(ctx context.Context, accessToken string, id int64) error
}
