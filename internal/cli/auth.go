package cli

import (
	"context"
	"fmt"
	"os"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for a username, email and password and attempts to create
// a new account. Registration never authenticates: on success the user is
// told to log in.
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

	ok, err := a.session.Register(ctx, username, email, password)
	if err != nil {
		fmt.Println(a.session.Err())
		return err
	}
	if ok {
		fmt.Println("Account created, please log in.")
	}
	return nil
}

// Login prompts for credentials and authenticates against the server.
// On success the session is persisted locally and the guard lands the user
// on the dashboard. On failure the session's error message is shown.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	if err := a.session.Login(ctx, username, password); err != nil {
		fmt.Println(a.session.Err())
		return err
	}

	fmt.Printf("Logged in as %s\n", username)
	return nil
}

// Logout clears the session in memory and on disk and sends the user back to
// the login screen. Safe to call when not logged in.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	fmt.Println("Logged out.")
	return nil
}
