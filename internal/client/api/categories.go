package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/forkahq/forka-cli/internal/client/models"
)

// ListCategories lists all post categories.
func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	if err := c.do(ctx, http.MethodGet, "/categories/", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// GetCategory fetches one category by slug.
func (c *Client) GetCategory(ctx context.Context, slug string) (*models.Category, error) {
	var out models.Category
	if err := c.do(ctx, http.MethodGet, "/categories/"+url.PathEscape(slug)+"/", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// CategoryPosts lists the posts filed under a category.
func (c *Client) CategoryPosts(ctx context.Context, slug string) ([]models.Post, error) {
	var out []models.Post
	if err := c.do(ctx, http.MethodGet, "/categories/"+url.PathEscape(slug)+"/posts/", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}
