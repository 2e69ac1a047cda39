// Package cli provides the interactive reminder command-line client.
//
// It wires configuration, the local token store, API services, and an
// interactive REPL. On startup the app tries to resume a stored session;
// every protected command passes through the session guard, which probes
// the access token and refreshes it once before giving up and asking the
// user to log in again.
//
// Key features:
//   - Register / Login / Logout
//   - List, add, edit and delete reminders
//   - Session status with access token claims
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, Root, and runREPL for details.
package cli
