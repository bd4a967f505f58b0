package cli

import (
	"context"
	"fmt"
)

// User prints another user's public profile.
func (a *App) User(ctx context.Context, args []string) error {
	id, err := parseID(args, "usage: user <id>")
	if err != nil {
		return err
	}
	u, err := a.api.GetUser(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s role=%s posts=%d comments=%d joined=%s\n",
		u.Username, u.Role, u.PostsCount, u.CommentsCount, u.DateJoined.Format("2006-01-02"))
	if u.Bio != "" {
		fmt.Fprintln(a.out, u.Bio)
	}
	return nil
}

// Users lists all accounts. The listing endpoint is meant for moderator
// screens; the server decides who may call it.
func (a *App) Users(ctx context.Context) error {
	users, err := a.api.ListUsers(ctx)
	if err != nil {
		return err
	}
	for _, u := range users {
		fmt.Fprintf(a.out, "[%d] %s (%s)\n", u.ID, u.Username, u.Role)
	}
	return nil
}
