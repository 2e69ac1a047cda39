package cli

import (
	"context"
	"errors"
	"os"

	"remindcli/internal/client/api"
)

// getSimpleText, getPassword and confirm are indirections used to facilitate
// testing. They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword
var confirm = Confirm

// reportAuthError prints a server-side auth failure with its original
// message; anything else gets a generic line plus the error text.
func reportAuthError(err error) {
	var authErr *api.AuthError
	switch {
	case errors.As(err, &authErr):
		printlnFn(authErr.Message)
	case errors.Is(err, api.ErrUnavailable):
		printlnFn("Server unavailable, try again later.")
	default:
		printlnFn("Error:", err.Error())
	}
}

// Register prompts for username, email and password and creates an account.
// A successful registration immediately logs the user in.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	if err := a.auth.Register(ctx, username, email, password); err != nil {
		reportAuthError(err)
		return err
	}

	printlnFn("Account created, you are now logged in.")
	return nil
}

// Login prompts for credentials and authenticates. On success the profile
// is already loaded into session state by the auth service.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	if _, err := a.auth.Login(ctx, username, password); err != nil {
		reportAuthError(err)
		return err
	}

	printlnFn("Login successful.")
	return nil
}

// Logout drops the session and the stored tokens.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	printlnFn("Logged out.")
	return nil
}
