package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/forkahq/forka-cli/internal/client/api"
	"github.com/forkahq/forka-cli/internal/client/models"
	"github.com/forkahq/forka-cli/internal/logging"
)

// stubAPI overrides just the forumAPI methods a test needs; calling anything
// else panics, which is what we want.
type stubAPI struct {
	forumAPI
	listPosts func(context.Context, api.PostFilter) ([]models.Post, error)
	getPost   func(context.Context, int64) (*models.Post, error)
	comments  func(context.Context, int64, bool) ([]models.Comment, error)
}

func (s *stubAPI) ListPosts(ctx context.Context, f api.PostFilter) ([]models.Post, error) {
	return s.listPosts(ctx, f)
}

func (s *stubAPI) GetPost(ctx context.Context, id int64) (*models.Post, error) {
	return s.getPost(ctx, id)
}

func (s *stubAPI) ListComments(ctx context.Context, postID int64, topLevel bool) ([]models.Comment, error) {
	return s.comments(ctx, postID, topLevel)
}

type memCache struct {
	posts []models.Post
}

func (m *memCache) ReplaceAll(_ context.Context, posts []models.Post) error {
	m.posts = append([]models.Post(nil), posts...)
	return nil
}

func (m *memCache) List(context.Context) ([]models.Post, error) {
	return m.posts, nil
}

func (m *memCache) Get(_ context.Context, id int64) (*models.Post, error) {
	for i := range m.posts {
		if m.posts[i].ID == id {
			return &m.posts[i], nil
		}
	}
	return nil, nil
}

func (m *memCache) Clear(context.Context) error {
	m.posts = nil
	return nil
}

func newPostsApp(client forumAPI, cache *memCache) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	return &App{
		api:    client,
		posts:  cache,
		logger: logging.NewTextLogger(io.Discard, slog.LevelDebug),
		out:    &out,
	}, &out
}

func TestPostsRefreshesCacheOnSuccess(t *testing.T) {
	fetched := []models.Post{{ID: 1, Title: "hello", Author: models.User{Username: "alice"}}}
	client := &stubAPI{listPosts: func(context.Context, api.PostFilter) ([]models.Post, error) {
		return fetched, nil
	}}
	cache := &memCache{posts: []models.Post{{ID: 9, Title: "old"}}}
	app, out := newPostsApp(client, cache)

	require.NoError(t, app.Posts(context.Background(), nil))
	require.Contains(t, out.String(), "#1 hello")
	require.Equal(t, fetched, cache.posts)
}

func TestPostsFallsBackToCacheWhenOffline(t *testing.T) {
	client := &stubAPI{listPosts: func(context.Context, api.PostFilter) ([]models.Post, error) {
		return nil, api.ErrUnavailable
	}}
	cache := &memCache{posts: []models.Post{{ID: 2, Title: "cached", Author: models.User{Username: "bob"}}}}
	app, out := newPostsApp(client, cache)

	require.NoError(t, app.Posts(context.Background(), nil))
	require.Contains(t, out.String(), "cached posts")
	require.Contains(t, out.String(), "#2 cached")
}

func TestPostsOfflineWithEmptyCacheReturnsError(t *testing.T) {
	client := &stubAPI{listPosts: func(context.Context, api.PostFilter) ([]models.Post, error) {
		return nil, api.ErrUnavailable
	}}
	app, _ := newPostsApp(client, &memCache{})

	err := app.Posts(context.Background(), nil)
	require.ErrorIs(t, err, api.ErrUnavailable)
}

func TestPostsSearchDoesNotTouchCache(t *testing.T) {
	var gotFilter api.PostFilter
	client := &stubAPI{listPosts: func(_ context.Context, f api.PostFilter) ([]models.Post, error) {
		gotFilter = f
		return []models.Post{{ID: 3, Title: "match"}}, nil
	}}
	cache := &memCache{posts: []models.Post{{ID: 9, Title: "old"}}}
	app, _ := newPostsApp(client, cache)

	require.NoError(t, app.Posts(context.Background(), []string{"routing", "tips"}))
	require.Equal(t, "routing tips", gotFilter.Search)

	// A filtered result set must not overwrite the full-list cache.
	require.Equal(t, int64(9), cache.posts[0].ID)
}

func TestShowFallsBackToCachedCopy(t *testing.T) {
	client := &stubAPI{getPost: func(context.Context, int64) (*models.Post, error) {
		return nil, api.ErrUnavailable
	}}
	cache := &memCache{posts: []models.Post{{ID: 5, Title: "offline read", Author: models.User{Username: "bob"}}}}
	app, out := newPostsApp(client, cache)

	require.NoError(t, app.Show(context.Background(), []string{"5"}))
	require.Contains(t, out.String(), "cached copy")
	require.Contains(t, out.String(), "offline read")
}

func TestShowRequiresNumericID(t *testing.T) {
	app, _ := newPostsApp(&stubAPI{}, &memCache{})
	require.Error(t, app.Show(context.Background(), nil))
	require.Error(t, app.Show(context.Background(), []string{"abc"}))
}
