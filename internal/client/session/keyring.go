package session

import (
	"context"
	"database/sql"

	"github.com/forkahq/forka-cli/internal/client/models"
	"github.com/forkahq/forka-cli/internal/client/repositories/sessiondata"
)

// Keyring is the persisted-token view handed to the API transport. It reads
// and writes the same session_data rows the Store manages, so a token
// refreshed mid-request is immediately visible to the rest of the app.
type Keyring struct {
	db *sql.DB
}

func NewKeyring(db *sql.DB) *Keyring {
	return &Keyring{db: db}
}

func (k *Keyring) repo() sessiondata.Repository {
	return sessiondata.NewSQLiteRepository(k.db)
}

// Tokens returns the persisted pair; both fields empty when logged out.
func (k *Keyring) Tokens(ctx context.Context) (models.TokenPair, error) {
	repo := k.repo()

	access, err := repo.Get(ctx, sessiondata.KeyAccessToken)
	if err != nil {
		return models.TokenPair{}, err
	}
	refresh, err := repo.Get(ctx, sessiondata.KeyRefreshToken)
	if err != nil {
		return models.TokenPair{}, err
	}
	return models.TokenPair{Access: string(access), Refresh: string(refresh)}, nil
}

// SetAccess replaces only the access token, the post-refresh contract.
func (k *Keyring) SetAccess(ctx context.Context, access string) error {
	return k.repo().Set(ctx, sessiondata.KeyAccessToken, []byte(access))
}

// Purge drops the whole session group.
func (k *Keyring) Purge(ctx context.Context) error {
	return k.repo().Clear(ctx)
}
