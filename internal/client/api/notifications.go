package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/forkahq/forka-cli/internal/client/models"
)

// ListNotifications lists the caller's notifications, newest first.
func (c *Client) ListNotifications(ctx context.Context) ([]models.Notification, error) {
	var out []models.Notification
	if err := c.do(ctx, http.MethodGet, "/notifications/", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkRead marks a single notification as read.
func (c *Client) MarkRead(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/notifications/%d/mark_read/", id), nil, nil, http.StatusOK)
}

// MarkAllRead marks every unread notification as read.
func (c *Client) MarkAllRead(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/notifications/mark_all_read/", nil, nil, http.StatusOK)
}
