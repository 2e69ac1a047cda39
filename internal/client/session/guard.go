package session

import (
	"context"

	"remindcli/internal/client/models"
	"remindcli/internal/logging"
)

// GuardState is the guard's position in its lifecycle. Authenticated and
// Redirecting are terminal for a single Ensure pass.
type GuardState string

const (
	StateUnchecked     GuardState = "unchecked"
	StateVerifying     GuardState = "verifying"
	StateAuthenticated GuardState = "authenticated"
	StateRedirecting   GuardState = "redirecting"
)

// Authenticator is the slice of the auth service the guard drives. Probe
// checks whether a token is still accepted; FetchProfile populates session
// state (clearing the session on failure); RefreshAccessToken exchanges the
// stored refresh token for a new access token, persisting it on success.
type Authenticator interface {
	Probe(ctx context.Context, accessToken string) error
	FetchProfile(ctx context.Context, tokenOverride string) (*models.UserProfile, error)
	RefreshAccessToken(ctx context.Context) (string, error)
}

// Guard gates protected work behind a verified, live access token. Every
// pass terminates in exactly one of Authenticated or Redirecting, and any
// failure fully clears the session before redirecting so a stale partial
// session cannot linger.
type Guard struct {
	state   *State
	auth    Authenticator
	log     logging.Logger
	current GuardState
}

func NewGuard(state *State, auth Authenticator, log logging.Logger) *Guard {
	return &Guard{state: state, auth: auth, log: log, current: StateUnchecked}
}

// State reports the outcome of the last Ensure pass (StateUnchecked before
// the first one).
func (g *Guard) State() GuardState {
	return g.current
}

func (g *Guard) setState(ctx context.Context, next GuardState) GuardState {
	if g.current != next {
		g.log.Debug(ctx, "guard transition", "from", string(g.current), "to", string(next))
		g.current = next
	}
	return next
}

// Ensure runs the entry check. Steps are strictly sequential — probe, then
// a single refresh, then one retry — so no two network calls ever race.
//
//  1. A warm session (authenticated with a loaded profile) passes with zero
//     network calls.
//  2. Otherwise the access-token candidate comes from session state, falling
//     back to the durable store. No candidate means redirect.
//  3. The candidate is probed against the server. A rejected probe earns one
//     refresh attempt and one retry with the refreshed token; any further
//     failure clears the session and redirects.
func (g *Guard) Ensure(ctx context.Context) GuardState {
	snap := g.state.Snapshot()
	if snap.Authenticated && snap.User != nil {
		return g.setState(ctx, StateAuthenticated)
	}

	g.setState(ctx, StateVerifying)

	// State may not be hydrated yet on a cold start; the store is the
	// fallback source of the candidate token.
	if snap.Tokens == nil {
		if err := g.state.Hydrate(ctx); err != nil {
			g.log.Warn(ctx, "token store read failed", "error", err)
		}
	}
	candidate := g.state.AccessToken()
	if candidate == "" {
		return g.setState(ctx, StateRedirecting)
	}

	if err := g.auth.Probe(ctx, candidate); err == nil {
		return g.finish(ctx, candidate)
	}

	access, err := g.auth.RefreshAccessToken(ctx)
	if err != nil || access == "" {
		g.log.Info(ctx, "token refresh failed, clearing session", "error", err)
		g.clearAndRedirect(ctx)
		return g.current
	}

	if err := g.auth.Probe(ctx, access); err != nil {
		g.log.Info(ctx, "refreshed token rejected, clearing session", "error", err)
		g.clearAndRedirect(ctx)
		return g.current
	}

	return g.finish(ctx, access)
}

// finish populates the profile with the verified token and settles the
// terminal state. FetchProfile clears the session itself on failure.
func (g *Guard) finish(ctx context.Context, token string) GuardState {
	if _, err := g.auth.FetchProfile(ctx, token); err != nil {
		g.log.Warn(ctx, "profile fetch failed after successful probe", "error", err)
		return g.setState(ctx, StateRedirecting)
	}
	return g.setState(ctx, StateAuthenticated)
}

func (g *Guard) clearAndRedirect(ctx context.Context) {
	if err := g.state.ClearSession(ctx); err != nil {
		g.log.Warn(ctx, "clearing session failed", "error", err)
	}
	g.setState(ctx, StateRedirecting)
}
