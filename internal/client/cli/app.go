package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/forkahq/forka-cli/internal/client/api"
	"github.com/forkahq/forka-cli/internal/client/config"
	"github.com/forkahq/forka-cli/internal/client/models"
	"github.com/forkahq/forka-cli/internal/client/repositories/postcache"
	"github.com/forkahq/forka-cli/internal/client/session"
	"github.com/forkahq/forka-cli/internal/client/storage"
	"github.com/forkahq/forka-cli/internal/logging"
)

// forumAPI is the API surface the CLI commands use. *api.Client satisfies it;
// tests substitute a stub.
type forumAPI interface {
	Register(ctx context.Context, req api.RegisterRequest) error
	VerifyEmail(ctx context.Context, email, code string) (*api.Credentials, error)
	ResendCode(ctx context.Context, email string) error
	ForgotPassword(ctx context.Context, email string) error
	VerifyResetCode(ctx context.Context, email, code string) error
	ResetPassword(ctx context.Context, email, code, newPassword, newPassword2 string) error

	ListPosts(ctx context.Context, f api.PostFilter) ([]models.Post, error)
	GetPost(ctx context.Context, id int64) (*models.Post, error)
	CreatePost(ctx context.Context, draft models.PostDraft) (*models.Post, error)
	UpdatePost(ctx context.Context, id int64, draft models.PostDraft) (*models.Post, error)
	DeletePost(ctx context.Context, id int64) error
	LikePost(ctx context.Context, id int64) (*api.LikeResult, error)
	PinPost(ctx context.Context, id int64) (bool, error)
	ClosePost(ctx context.Context, id int64) (bool, error)
	MarkSolved(ctx context.Context, id int64, commentID *int64) error

	ListComments(ctx context.Context, postID int64, topLevel bool) ([]models.Comment, error)
	CreateComment(ctx context.Context, draft models.CommentDraft) (*models.Comment, error)
	UpdateComment(ctx context.Context, id int64, content string) (*models.Comment, error)
	DeleteComment(ctx context.Context, id int64) error
	LikeComment(ctx context.Context, id int64) (*api.LikeResult, error)
	Replies(ctx context.Context, id int64) ([]models.Comment, error)

	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, slug string) (*models.Category, error)
	CategoryPosts(ctx context.Context, slug string) ([]models.Post, error)

	ListNotifications(ctx context.Context) ([]models.Notification, error)
	MarkRead(ctx context.Context, id int64) error
	MarkAllRead(ctx context.Context) error

	MyPosts(ctx context.Context) ([]models.Post, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateProfile(ctx context.Context, up api.ProfileUpdate) (*models.User, error)
	ChangePassword(ctx context.Context, oldPassword, newPassword, newPassword2 string) error
}

// App holds everything the interactive client needs.
type App struct {
	config  *config.Config
	api     forumAPI
	store   *session.Store
	posts   postcache.Repository
	storage *storage.Storage
	logger  logging.Logger
	reader  *bufio.Reader
	out     io.Writer
}

func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	st, err := storage.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("opening local storage: %w", err)
	}

	app := &App{
		config:  cfg,
		posts:   st.PostCache,
		storage: st,
		logger:  logger,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}

	client := api.New(cfg.ServerBaseURL, session.NewKeyring(st.DB), logger, api.Options{
		Timeout:          cfg.RequestTimeout,
		OnSessionExpired: app.sessionExpired,
	})
	app.api = client
	app.store = session.NewStore(client, st.DB, logger)

	return app, nil
}

// Run restores the persisted session and hands control to the REPL. It blocks
// until the user exits.
func (a *App) Run(ctx context.Context) error {
	if err := a.store.Initialize(ctx); err != nil {
		return fmt.Errorf("restoring session: %w", err)
	}

	fmt.Fprintln(a.out, "Welcome to ForKa (type 'help' for commands)")
	if u := a.store.User(); u != nil {
		fmt.Fprintf(a.out, "Logged in as %s\n", u.Username)
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner, a.out)
	return nil
}

func (a *App) Close() error {
	return a.storage.Close()
}

func (a *App) isLoggedIn() bool {
	return a.store.IsAuthenticated()
}

func (a *App) status() string {
	u := a.store.User()
	if u == nil {
		return ""
	}
	s := u.Username
	if u.IsModerator() {
		s += "*"
	}
	return fmt.Sprintf("(%s)", s)
}

// sessionExpired is invoked by the transport after an unrecoverable 401
// purged the persisted session.
func (a *App) sessionExpired() {
	a.store.ForceLogout()
	fmt.Fprintln(a.out, "Session expired. Please log in again.")
}

// errText turns command errors into a line fit for the terminal.
func errText(err error) string {
	var apiErr *api.Error
	switch {
	case errors.Is(err, api.ErrUnavailable):
		return "server unavailable"
	case errors.As(err, &apiErr):
		return apiErr.Message
	default:
		return err.Error()
	}
}
