package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/NJCA88/SneakyElves/internal/models"
	"github.com/NJCA88/SneakyElves/internal/storage"
)

const itemColumns = `id, wishlist_id, name, price, url, note, image_url, purchased, rank, created_at`

func scanItem(row rowScanner) (*models.Item, error) {
	item := &models.Item{}
	var price sql.NullFloat64
	var url, note, imageURL sql.NullString
	if err := row.Scan(&item.ID, &item.WishlistID, &item.Name, &price, &url, &note, &imageURL,
		&item.Purchased, &item.Rank, &item.CreatedAt); err != nil {
		return nil, err
	}
	if price.Valid {
		p := price.Float64
		item.Price = &p
	}
	item.URL = url.String
	item.Note = note.String
	item.ImageURL = imageURL.String
	return item, nil
}

func nullPrice(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

// queryItems runs an item query with the given WHERE clause, ordered by rank then ID.
func (s *SQLiteStore) queryItems(ctx context.Context, where string, args ...any) ([]models.Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items `+where+` ORDER BY rank, id`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get items: %w", err)
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}
	return items, nil
}

// CreateItem persists a new item ranked after the wishlist's existing items.
func (s *SQLiteStore) CreateItem(ctx context.Context, item *models.Item) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.CreatedAt == 0 {
		item.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, "SELECT 1 FROM wishlists WHERE id = ?", item.WishlistID).Scan(&exists)
	if err == sql.ErrNoRows {
		return notFound("wishlist", item.WishlistID)
	}
	if err != nil {
		return fmt.Errorf("failed to check wishlist existence: %w", err)
	}

	err = tx.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(rank) + 1, 0) FROM items WHERE wishlist_id = ?",
		item.WishlistID,
	).Scan(&item.Rank)
	if err != nil {
		return fmt.Errorf("failed to compute item rank: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO items (`+itemColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.WishlistID, item.Name, nullPrice(item.Price), nullIfEmpty(item.URL),
		nullIfEmpty(item.Note), nullIfEmpty(item.ImageURL), item.Purchased, item.Rank, item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert item: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetItem retrieves an item by ID.
func (s *SQLiteStore) GetItem(ctx context.Context, itemID string) (*models.Item, error) {
	item, err := scanItem(s.db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = ?`, itemID,
	))
	if err == sql.ErrNoRows {
		return nil, notFound("item", itemID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return item, nil
}

// UpdateItem writes the editable fields of an item. Purchased and rank have their own methods.
func (s *SQLiteStore) UpdateItem(ctx context.Context, item *models.Item) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE items SET name = ?, price = ?, url = ?, note = ?, image_url = ? WHERE id = ?",
		item.Name, nullPrice(item.Price), nullIfEmpty(item.URL), nullIfEmpty(item.Note),
		nullIfEmpty(item.ImageURL), item.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	return requireAffected(res, "item", item.ID)
}

// DeleteItem removes an item.
func (s *SQLiteStore) DeleteItem(ctx context.Context, itemID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM items WHERE id = ?", itemID)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	return requireAffected(res, "item", itemID)
}

// SetItemPurchased writes the purchased flag only when it changes.
// The conditional update makes concurrent identical requests race to a single winner.
func (s *SQLiteStore) SetItemPurchased(ctx context.Context, itemID string, purchased bool) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		"UPDATE items SET purchased = ? WHERE id = ? AND purchased <> ?",
		purchased, itemID, purchased,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update purchased flag: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n > 0 {
		return true, nil
	}

	// No row changed: either the flag already had this value or the item is missing.
	var exists int
	err = s.db.QueryRowContext(ctx, "SELECT 1 FROM items WHERE id = ?", itemID).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, notFound("item", itemID)
	}
	if err != nil {
		return false, fmt.Errorf("failed to check item existence: %w", err)
	}
	return false, nil
}

// ReorderItems sets rank to the array index of each supplied item, all or nothing.
// Every ID must belong to the wishlist.
func (s *SQLiteStore) ReorderItems(ctx context.Context, wishlistID string, itemIDs []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for rank, itemID := range itemIDs {
		res, err := tx.ExecContext(ctx,
			"UPDATE items SET rank = ? WHERE id = ? AND wishlist_id = ?",
			rank, itemID, wishlistID,
		)
		if err != nil {
			return fmt.Errorf("failed to update item rank: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read affected rows: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("item %s in wishlist %s: %w", itemID, wishlistID, storage.ErrNotFound)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
