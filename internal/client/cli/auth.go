package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/forkahq/forka-cli/internal/client/api"
)

// getSimpleText, getPassword and getMultiline are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword
var getMultiline = GetMultiline

// Login prompts for credentials and establishes a session. Business failures
// are reported inline: remaining attempts, lockout, or a jump straight into
// email verification when the account was never verified.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out, "Password: ")
	if err != nil {
		return err
	}
	defer wipe(password)

	err = a.store.Login(ctx, username, string(password))
	if err == nil {
		fmt.Fprintf(a.out, "Logged in as %s\n", a.store.User().Username)
		return nil
	}

	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		return err
	}

	if apiErr.EmailVerificationRequired {
		fmt.Fprintln(a.out, "Your email address has not been verified yet.")
		return a.verifyEmail(ctx, apiErr.Email)
	}

	fmt.Fprintln(a.out, "Login failed:", apiErr.Message)
	if apiErr.AttemptsRemaining != nil {
		fmt.Fprintf(a.out, "Attempts remaining: %d\n", *apiErr.AttemptsRemaining)
	}
	if apiErr.LockedUntil != "" {
		fmt.Fprintf(a.out, "Account locked until %s\n", apiErr.LockedUntil)
	}
	return nil
}

// Logout clears the persisted and in-memory session.
func (a *App) Logout(ctx context.Context) error {
	a.store.Logout(ctx)
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// Whoami prints the cached user record, refreshing it from the server when
// reachable.
func (a *App) Whoami(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}
	if err := a.store.RefreshUser(ctx); err != nil {
		a.logger.Debug(ctx, "refreshing user failed, showing cached copy", "error", err)
	}

	u := a.store.User()
	fmt.Fprintf(a.out, "%s <%s> role=%s posts=%d comments=%d\n",
		u.Username, u.Email, u.Role, u.PostsCount, u.CommentsCount)
	if u.Bio != "" {
		fmt.Fprintln(a.out, u.Bio)
	}
	return nil
}
