package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a stub.
type execIface interface {
	isLoggedIn() bool

	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Register(ctx context.Context) error
	ResetPassword(ctx context.Context) error
	Whoami(ctx context.Context) error

	Posts(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	NewPost(ctx context.Context) error
	EditPost(ctx context.Context, args []string) error
	DeletePost(ctx context.Context, args []string) error
	Comment(ctx context.Context, args []string) error
	Replies(ctx context.Context, args []string) error
	EditComment(ctx context.Context, args []string) error
	DeleteComment(ctx context.Context, args []string) error
	Like(ctx context.Context, args []string) error
	LikeComment(ctx context.Context, args []string) error
	Pin(ctx context.Context, args []string) error
	CloseThread(ctx context.Context, args []string) error
	Solve(ctx context.Context, args []string) error
	MyPosts(ctx context.Context) error

	Categories(ctx context.Context) error
	CategoryPosts(ctx context.Context, args []string) error

	Notifications(ctx context.Context) error
	Read(ctx context.Context, args []string) error

	Profile(ctx context.Context) error
	EditProfile(ctx context.Context) error
	ChangePassword(ctx context.Context) error

	User(ctx context.Context, args []string) error
	Users(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the ForKa CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Command handlers return their errors here; the loop prints them and keeps
// going, so a failed request never tears the session down.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner, w io.Writer) {
	for {
		fmt.Fprintf(w, "forka %s> ", statusFn())
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, "Available commands: posts [query], show <id>, new, edit <id>, delete <id>,")
				fmt.Fprintln(w, "  comment <post-id>, replies <id>, editcomment <id>, delcomment <id>, like <id>,")
				fmt.Fprintln(w, "  likecomment <id>, pin <id>, close <id>, solve <id>, myposts, categories,")
				fmt.Fprintln(w, "  category <slug>, notifications, read <id>|all, profile, editprofile, passwd,")
				fmt.Fprintln(w, "  user <id>, users, whoami, logout, exit")
			} else {
				fmt.Fprintln(w, "Available commands: login, register, reset, posts [query], show <id>, categories, exit")
			}

		case "login":
			err = a.Login(ctx)
		case "logout":
			err = a.Logout(ctx)
		case "register":
			err = a.Register(ctx)
		case "reset":
			err = a.ResetPassword(ctx)
		case "whoami":
			err = a.Whoami(ctx)

		case "p", "posts":
			err = a.Posts(ctx, args)
		case "show":
			err = a.Show(ctx, args)
		case "new":
			err = a.NewPost(ctx)
		case "edit":
			err = a.EditPost(ctx, args)
		case "delete":
			err = a.DeletePost(ctx, args)
		case "comment":
			err = a.Comment(ctx, args)
		case "replies":
			err = a.Replies(ctx, args)
		case "editcomment":
			err = a.EditComment(ctx, args)
		case "delcomment":
			err = a.DeleteComment(ctx, args)
		case "like":
			err = a.Like(ctx, args)
		case "likecomment":
			err = a.LikeComment(ctx, args)
		case "pin":
			err = a.Pin(ctx, args)
		case "close":
			err = a.CloseThread(ctx, args)
		case "solve":
			err = a.Solve(ctx, args)
		case "myposts":
			err = a.MyPosts(ctx)

		case "categories":
			err = a.Categories(ctx)
		case "category":
			err = a.CategoryPosts(ctx, args)

		case "notifications":
			err = a.Notifications(ctx)
		case "read":
			err = a.Read(ctx, args)

		case "user":
			err = a.User(ctx, args)
		case "users":
			err = a.Users(ctx)

		case "profile":
			err = a.Profile(ctx)
		case "editprofile":
			err = a.EditProfile(ctx)
		case "passwd":
			err = a.ChangePassword(ctx)

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}

		if err != nil {
			fmt.Fprintln(w, "Error:", errText(err))
		}
	}
}
