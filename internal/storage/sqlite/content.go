package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/NJCA88/SneakyElves/internal/models"
)

// GetContent returns the stored page, or nil, nil when it was never set.
func (s *SQLiteStore) GetContent(ctx context.Context, key models.ContentKey) (*models.Content, error) {
	c := &models.Content{}
	err := s.db.QueryRowContext(ctx,
		"SELECT key, value, updated_at FROM app_config WHERE key = ?", key,
	).Scan(&c.Key, &c.Value, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get content %s: %w", key, err)
	}
	return c, nil
}

// SetContent inserts or replaces a page.
func (s *SQLiteStore) SetContent(ctx context.Context, c *models.Content) error {
	c.UpdatedAt = time.Now().Unix()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO app_config (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		c.Key, c.Value, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to set content %s: %w", c.Key, err)
	}
	return nil
}
