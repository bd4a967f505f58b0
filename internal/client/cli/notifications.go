package cli

import (
	"context"
	"errors"
	"fmt"
)

// Notifications lists the user's notifications, unread ones marked.
func (a *App) Notifications(ctx context.Context) error {
	notifications, err := a.api.ListNotifications(ctx)
	if err != nil {
		return err
	}
	if len(notifications) == 0 {
		fmt.Fprintln(a.out, "No notifications.")
		return nil
	}
	for _, n := range notifications {
		mark := " "
		if !n.IsRead {
			mark = "*"
		}
		fmt.Fprintf(a.out, "%s [%d] %s: %s\n", mark, n.ID, n.Sender.Username, n.Message)
	}
	return nil
}

// Read marks one notification read, or all of them with "read all".
func (a *App) Read(ctx context.Context, args []string) error {
	if len(args) > 0 && args[0] == "all" {
		if err := a.api.MarkAllRead(ctx); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "All notifications marked read.")
		return nil
	}

	id, err := parseID(args, "usage: read <id>|all")
	if err != nil {
		return errors.New("usage: read <id>|all")
	}
	if err := a.api.MarkRead(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Notification marked read.")
	return nil
}
