// Package services contains the application services of the reminder
// client: authentication (login, register, profile, refresh) and the
// reminder CRUD layered over the session.
package services

import (
	"context"
	"errors"
	"fmt"

	"remindcli/internal/client/api"
	"remindcli/internal/client/models"
	"remindcli/internal/client/repositories/tokens"
	"remindcli/internal/client/session"
	"remindcli/internal/logging"
)

// ErrNoSession is returned when a refresh is attempted with no stored
// refresh token.
var ErrNoSession = errors.New("no stored session")

// AuthService performs the session operations against the remote API and
// keeps session state and the token store in step.
//
// Contract:
//   - Login: authenticate, persist the pair, fetch the profile.
//   - Register: create the account, then log in with the same credentials.
//   - FetchProfile: load the profile into session state; any failure is a
//     fatal credential failure and clears the session.
//   - RefreshAccessToken: exchange the stored refresh token; failure is
//     reported without clearing anything — the caller decides.
//   - Probe: check whether a token is still accepted by the server.
//
// All methods honor context cancellation.
type AuthService interface {
	Login(ctx context.Context, username, password string) (models.TokenPair, error)
	Register(ctx context.Context, username, email, password string) error
	FetchProfile(ctx context.Context, tokenOverride string) (*models.UserProfile, error)
	RefreshAccessToken(ctx context.Context) (string, error)
	Probe(ctx context.Context, accessToken string) error
	Logout(ctx context.Context) error
	Close() error
}

type authService struct {
	client api.Client
	state  *session.State
	store  tokens.Repository
	log    logging.Logger
}

// NewAuthService constructs an AuthService bound to the given transport,
// session state and token store.
func NewAuthService(client api.Client, state *session.State, store tokens.Repository, log logging.Logger) AuthService {
	return &authService{client: client, state: state, store: store, log: log}
}

// Login exchanges credentials for a token pair, persists it, and fetches
// the profile with the pair's own access token — not the one in session
// state, which may not have propagated yet.
//
// A profile-fetch failure after a successful login follows the usual
// fetch policy (session cleared); it is logged, not returned, and the next
// guard pass redirects to login.
func (a *authService) Login(ctx context.Context, username, password string) (models.TokenPair, error) {
	pair, err := a.client.Login(ctx, username, password)
	if err != nil {
		return models.TokenPair{}, err
	}

	if err := a.state.SetSession(ctx, pair); err != nil {
		return models.TokenPair{}, fmt.Errorf("persisting session: %w", err)
	}

	if _, err := a.FetchProfile(ctx, pair.Access); err != nil {
		a.log.Warn(ctx, "profile fetch after login failed", "error", err)
	}

	return pair, nil
}

// Register creates the account and immediately logs in with the same
// credentials; registration alone does not yield a session.
func (a *authService) Register(ctx context.Context, username, email, password string) error {
	if err := a.client.Register(ctx, username, email, password); err != nil {
		return err
	}

	if _, err := a.Login(ctx, username, password); err != nil {
		return fmt.Errorf("login after registration: %w", err)
	}
	return nil
}

// FetchProfile loads the profile using tokenOverride when given, else the
// session's current access token. With no token in either source it is a
// no-op. Any failure — expired, revoked or unreachable are deliberately
// not distinguished — clears the session as a side effect.
func (a *authService) FetchProfile(ctx context.Context, tokenOverride string) (*models.UserProfile, error) {
	token := tokenOverride
	if token == "" {
		token = a.state.AccessToken()
	}
	if token == "" {
		return nil, nil
	}

	profile, err := a.client.Profile(ctx, token)
	if err != nil {
		if clearErr := a.state.ClearSession(ctx); clearErr != nil {
			a.log.Warn(ctx, "clearing session failed", "error", clearErr)
		}
		return nil, fmt.Errorf("session invalid: %w", err)
	}

	a.state.SetUser(profile)
	return profile, nil
}

// RefreshAccessToken reads the refresh token from the durable store — not
// from session state, which may not be hydrated yet — and exchanges it for
// a new access token. On success only the access token is persisted; the
// refresh token is reused, not rotated. On failure nothing is cleared.
func (a *authService) RefreshAccessToken(ctx context.Context) (string, error) {
	pair, err := a.store.Load(ctx)
	if err != nil {
		return "", err
	}
	if pair == nil || pair.Refresh == "" {
		return "", ErrNoSession
	}

	access, err := a.client.Refresh(ctx, pair.Refresh)
	if err != nil {
		return "", err
	}

	if err := a.state.UpdateAccess(ctx, access); err != nil {
		return "", fmt.Errorf("persisting refreshed token: %w", err)
	}
	return access, nil
}

// Probe asks the server whether the token is still accepted. The response
// body is discarded; only acceptance matters.
func (a *authService) Probe(ctx context.Context, accessToken string) error {
	_, err := a.client.Profile(ctx, accessToken)
	return err
}

// Logout clears the session and the durable token store.
func (a *authService) Logout(ctx context.Context) error {
	return a.state.ClearSession(ctx)
}

// Close releases resources held by the underlying transport.
func (a *authService) Close() error {
	return a.client.Close()
}
