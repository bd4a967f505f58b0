// Package sessiondata persists the client session group: access token,
// refresh token and the serialized user record. It is the durable-storage
// analogue of the browser client's localStorage.
package sessiondata

import "context"

// Keys of the persisted session group. They are written and cleared together.
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
	KeyUser         = "user"
)

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
