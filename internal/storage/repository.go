package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/glabrego/pulse-cli/internal/social"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(path string) (*Repository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func (r *Repository) Init(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS items (
  id INTEGER NOT NULL,
  kind TEXT NOT NULL,
  author_id INTEGER NOT NULL DEFAULT 0,
  author TEXT NOT NULL,
  caption TEXT,
  media_url TEXT,
  likes INTEGER NOT NULL DEFAULT 0,
  comments INTEGER NOT NULL DEFAULT 0,
  liked INTEGER NOT NULL DEFAULT 0,
  following INTEGER NOT NULL DEFAULT 0,
  created_at TEXT NOT NULL,
  fetched_at TEXT NOT NULL,
  PRIMARY KEY (kind, id)
);
CREATE TABLE IF NOT EXISTS preferences (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
`
	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// CheckWritable round-trips a throwaway preference so a read-only path fails at start-up.
func (r *Repository) CheckWritable(ctx context.Context) error {
	if err := r.SavePreference(ctx, "_write_check", time.Now().UTC().Format(time.RFC3339)); err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM preferences WHERE key = '_write_check'`); err != nil {
		return fmt.Errorf("cleanup write check: %w", err)
	}
	return nil
}

func (r *Repository) SaveItems(ctx context.Context, items []social.Item) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO items (id, kind, author_id, author, caption, media_url, likes, comments, liked, following, created_at, fetched_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(kind, id) DO UPDATE SET
  author_id=excluded.author_id,
  author=excluded.author,
  caption=excluded.caption,
  media_url=excluded.media_url,
  likes=excluded.likes,
  comments=excluded.comments,
  liked=excluded.liked,
  following=excluded.following,
  created_at=excluded.created_at,
  fetched_at=excluded.fetched_at
`)
	if err != nil {
		return fmt.Errorf("prepare save statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	for _, item := range items {
		if !item.Kind.Valid() {
			return fmt.Errorf("save item %d: unknown kind %q", item.ID, item.Kind)
		}
		_, err := stmt.ExecContext(
			ctx,
			item.ID,
			string(item.Kind),
			item.AuthorID,
			item.Author,
			item.Caption,
			item.MediaURL,
			item.Likes,
			item.Comments,
			boolToInt(item.Liked),
			boolToInt(item.Following),
			item.CreatedAt.UTC().Format(time.RFC3339Nano),
			now,
		)
		if err != nil {
			return fmt.Errorf("save item %d: %w", item.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (r *Repository) ListItems(ctx context.Context, kind social.FeedKind, limit int) ([]social.Item, error) {
	if limit < 1 {
		limit = 10
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT id, author_id, author, caption, media_url, likes, comments, liked, following, created_at
FROM items
WHERE kind = ?
ORDER BY created_at DESC, id DESC
LIMIT ?
`, string(kind), limit)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	items := make([]social.Item, 0, limit)
	for rows.Next() {
		item := social.Item{Kind: kind}
		var liked, following int
		var createdAt string
		if err := rows.Scan(
			&item.ID,
			&item.AuthorID,
			&item.Author,
			&item.Caption,
			&item.MediaURL,
			&item.Likes,
			&item.Comments,
			&liked,
			&following,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		item.Liked = liked != 0
		item.Following = following != 0

		item.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse item created_at %q: %w", createdAt, err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return items, nil
}

// LoadPreference returns ok=false when the key was never saved.
func (r *Repository) LoadPreference(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM preferences WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("load preference %s: %w", key, err)
	}
	return value, true, nil
}

func (r *Repository) SavePreference(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO preferences (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value=excluded.value
`, key, value)
	if err != nil {
		return fmt.Errorf("save preference %s: %w", key, err)
	}
	return nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
