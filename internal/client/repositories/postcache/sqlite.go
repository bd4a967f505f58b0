package postcache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/forkahq/forka-cli/internal/client/models"
	"github.com/forkahq/forka-cli/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) ReplaceAll(ctx context.Context, posts []models.Post) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM cached_posts`); err != nil {
		return fmt.Errorf("failed to clear post cache: %w", err)
	}
	for i := range posts {
		payload, err := json.Marshal(&posts[i])
		if err != nil {
			return fmt.Errorf("failed to encode post %d: %w", posts[i].ID, err)
		}
		_, err = r.db.ExecContext(ctx, `
			INSERT INTO cached_posts (id, title, payload) VALUES (?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET title = excluded.title, payload = excluded.payload
		`, posts[i].ID, posts[i].Title, payload)
		if err != nil {
			return fmt.Errorf("failed to cache post %d: %w", posts[i].ID, err)
		}
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]models.Post, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT payload FROM cached_posts ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list cached posts: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan cached post: %w", err)
		}
		var p models.Post
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, fmt.Errorf("failed to decode cached post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cached posts: %w", err)
	}
	return posts, nil
}

func (r *SQLiteRepository) Get(ctx context.Context, id int64) (*models.Post, error) {
	var payload []byte
	err := r.db.QueryRowContext(ctx, `SELECT payload FROM cached_posts WHERE id = ?`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached post %d: %w", id, err)
	}
	var p models.Post
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, fmt.Errorf("failed to decode cached post %d: %w", id, err)
	}
	return &p, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM cached_posts`); err != nil {
		return fmt.Errorf("failed to clear post cache: %w", err)
	}
	return nil
}
