package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/forkahq/forka-cli/internal/client/models"
)

// PostFilter narrows ListPosts. Zero values mean "no filter".
type PostFilter struct {
	Search   string
	Category int64
	Author   int64
	// Sort is one of "new", "top", "hot" (server-defined).
	Sort string
}

func (f PostFilter) query() string {
	q := url.Values{}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Category != 0 {
		q.Set("category", strconv.FormatInt(f.Category, 10))
	}
	if f.Author != 0 {
		q.Set("author", strconv.FormatInt(f.Author, 10))
	}
	if f.Sort != "" {
		q.Set("filter", f.Sort)
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// ListPosts lists posts, optionally filtered.
func (c *Client) ListPosts(ctx context.Context, f PostFilter) ([]models.Post, error) {
	var out []models.Post
	if err := c.do(ctx, http.MethodGet, "/posts/"+f.query(), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// GetPost fetches one post; the server bumps its view counter.
func (c *Client) GetPost(ctx context.Context, id int64) (*models.Post, error) {
	var out models.Post
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/posts/%d/", id), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreatePost publishes a new post.
func (c *Client) CreatePost(ctx context.Context, draft models.PostDraft) (*models.Post, error) {
	var out models.Post
	if err := c.do(ctx, http.MethodPost, "/posts/", draft, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdatePost replaces the editable fields of an owned post.
func (c *Client) UpdatePost(ctx context.Context, id int64, draft models.PostDraft) (*models.Post, error) {
	var out models.Post
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/posts/%d/", id), draft, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeletePost removes an owned (or moderated) post.
func (c *Client) DeletePost(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/posts/%d/", id), nil, nil, http.StatusNoContent)
}

// LikeResult reports the toggle outcome of a like action.
type LikeResult struct {
	Status     string `json:"status"`
	LikesCount int    `json:"likes_count"`
}

// LikePost toggles the caller's like on a post.
func (c *Client) LikePost(ctx context.Context, id int64) (*LikeResult, error) {
	var out LikeResult
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/posts/%d/like/", id), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// PinPost toggles the pinned state. Moderator or admin only.
func (c *Client) PinPost(ctx context.Context, id int64) (bool, error) {
	var out struct {
		Status   string `json:"status"`
		IsPinned bool   `json:"is_pinned"`
	}
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/posts/%d/pin/", id), nil, &out, http.StatusOK); err != nil {
		return false, err
	}
	return out.IsPinned, nil
}

// ClosePost toggles the closed state. Moderator or admin only.
func (c *Client) ClosePost(ctx context.Context, id int64) (bool, error) {
	var out struct {
		Status   string `json:"status"`
		IsClosed bool   `json:"is_closed"`
	}
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/posts/%d/close/", id), nil, &out, http.StatusOK); err != nil {
		return false, err
	}
	return out.IsClosed, nil
}

// MarkSolved flags the caller's own post as solved, optionally naming the
// best-answer comment.
func (c *Client) MarkSolved(ctx context.Context, id int64, commentID *int64) error {
	var in any
	if commentID != nil {
		in = map[string]int64{"comment_id": *commentID}
	}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/posts/%d/mark_solved/", id), in, nil, http.StatusOK)
}
