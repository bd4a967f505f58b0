// Package postcache keeps the most recently fetched post list in the local
// database so listing keeps working while the server is unreachable.
package postcache

import (
	"context"

	"github.com/forkahq/forka-cli/internal/client/models"
)

type Repository interface {
	// ReplaceAll swaps the cached list for the given posts.
	ReplaceAll(ctx context.Context, posts []models.Post) error

	// List returns the cached posts, newest first.
	List(ctx context.Context) ([]models.Post, error)

	// Get returns one cached post, or nil when absent.
	Get(ctx context.Context, id int64) (*models.Post, error)

	// Clear drops the cache.
	Clear(ctx context.Context) error
}
