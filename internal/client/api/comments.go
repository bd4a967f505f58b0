package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/forkahq/forka-cli/internal/client/models"
)

// ListComments lists comments on a post. When topLevel is true, replies are
// excluded and fetched on demand through Replies.
func (c *Client) ListComments(ctx context.Context, postID int64, topLevel bool) ([]models.Comment, error) {
	path := fmt.Sprintf("/comments/?post=%d", postID)
	if topLevel {
		path += "&top_level=true"
	}
	var out []models.Comment
	if err := c.do(ctx, http.MethodGet, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateComment posts a comment or, when draft.Parent is set, a reply.
func (c *Client) CreateComment(ctx context.Context, draft models.CommentDraft) (*models.Comment, error) {
	var out models.Comment
	if err := c.do(ctx, http.MethodPost, "/comments/", draft, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateComment edits an owned comment's content.
func (c *Client) UpdateComment(ctx context.Context, id int64, content string) (*models.Comment, error) {
	in := map[string]string{"content": content}
	var out models.Comment
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/comments/%d/", id), in, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteComment removes an owned (or moderated) comment.
func (c *Client) DeleteComment(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/comments/%d/", id), nil, nil, http.StatusNoContent)
}

// LikeComment toggles the caller's like on a comment.
func (c *Client) LikeComment(ctx context.Context, id int64) (*LikeResult, error) {
	var out LikeResult
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/comments/%d/like/", id), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Replies lists the direct replies of a comment.
func (c *Client) Replies(ctx context.Context, id int64) ([]models.Comment, error) {
	var out []models.Comment
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/comments/%d/replies/", id), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}
