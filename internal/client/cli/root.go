package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"remindcli/internal/client/session"
)

// getStatus renders the prompt decoration: the username when a session is
// live, nothing otherwise.
func (a *App) getStatus() string {
	snap := a.state.Snapshot()
	if snap.Authenticated && snap.User != nil {
		return fmt.Sprintf("(%s) ", snap.User.Username)
	}
	return ""
}

// Root resumes any stored session, greets the user accordingly, and hands
// control to the REPL.
func (a *App) Root(ctx context.Context) {
	printlnFn("Reminder CLI (type 'help' for commands)")

	// Silent resume attempt: a stored token pair may still be good.
	if a.guard.Ensure(ctx) == session.StateAuthenticated {
		snap := a.state.Snapshot()
		if snap.User != nil {
			printlnFn(fmt.Sprintf("Welcome back, %s!", snap.User.Username))
		}
	} else {
		printlnFn("No active session. Use 'login' or 'register'.")
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
