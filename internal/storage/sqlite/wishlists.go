package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/NJCA88/SneakyElves/internal/models"
)

const wishlistColumns = `w.id, w.user_id, w.title, w.share_token, w.general_instructions, w.created_at,
	u.name, u.email, u.profile_picture_url`

func scanWishlist(row rowScanner) (*models.Wishlist, error) {
	w := &models.Wishlist{Owner: &models.UserSummary{}}
	var shareToken, instructions, picture sql.NullString
	if err := row.Scan(&w.ID, &w.UserID, &w.Title, &shareToken, &instructions, &w.CreatedAt,
		&w.Owner.Name, &w.Owner.Email, &picture); err != nil {
		return nil, err
	}
	w.ShareToken = shareToken.String
	w.GeneralInstructions = instructions.String
	w.Owner.ID = w.UserID
	w.Owner.ProfilePictureURL = picture.String
	return w, nil
}

// CreateWishlist persists a new wishlist.
func (s *SQLiteStore) CreateWishlist(ctx context.Context, w *models.Wishlist) error {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	if w.CreatedAt == 0 {
		w.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO wishlists (id, user_id, title, share_token, general_instructions, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		w.ID, w.UserID, w.Title, nullIfEmpty(w.ShareToken), nullIfEmpty(w.GeneralInstructions), w.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert wishlist: %w", err)
	}
	return nil
}

// GetWishlist retrieves a wishlist with its owner and items.
func (s *SQLiteStore) GetWishlist(ctx context.Context, wishlistID string) (*models.Wishlist, error) {
	w, err := scanWishlist(s.db.QueryRowContext(ctx,
		`SELECT `+wishlistColumns+` FROM wishlists w JOIN users u ON u.id = w.user_id WHERE w.id = ?`,
		wishlistID,
	))
	if err == sql.ErrNoRows {
		return nil, notFound("wishlist", wishlistID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get wishlist: %w", err)
	}

	items, err := s.queryItems(ctx, "WHERE wishlist_id = ?", wishlistID)
	if err != nil {
		return nil, err
	}
	w.Items = items

	return w, nil
}

// GetWishlistByOwner returns the user's primary (earliest) wishlist.
func (s *SQLiteStore) GetWishlistByOwner(ctx context.Context, userID string) (*models.Wishlist, error) {
	w, err := scanWishlist(s.db.QueryRowContext(ctx,
		`SELECT `+wishlistColumns+` FROM wishlists w JOIN users u ON u.id = w.user_id
		 WHERE w.user_id = ? ORDER BY w.created_at, w.rowid LIMIT 1`,
		userID,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get wishlist by owner: %w", err)
	}
	return w, nil
}

// ListWishlists returns wishlists owned by ownerIDs (all when nil), each with items.
func (s *SQLiteStore) ListWishlists(ctx context.Context, ownerIDs []string) ([]*models.Wishlist, error) {
	query := `SELECT ` + wishlistColumns + ` FROM wishlists w JOIN users u ON u.id = w.user_id`
	var args []any
	if ownerIDs != nil {
		if len(ownerIDs) == 0 {
			return nil, nil
		}
		query += ` WHERE w.user_id IN (` + placeholders(len(ownerIDs)) + `)`
		args = stringArgs(ownerIDs)
	}
	query += ` ORDER BY u.name, w.created_at`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlists: %w", err)
	}
	var wishlists []*models.Wishlist
	for rows.Next() {
		w, err := scanWishlist(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan wishlist: %w", err)
		}
		wishlists = append(wishlists, w)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate wishlists: %w", err)
	}

	// Items are loaded after the wishlist rows are closed; the store runs on one connection.
	for _, w := range wishlists {
		items, err := s.queryItems(ctx, "WHERE wishlist_id = ?", w.ID)
		if err != nil {
			return nil, err
		}
		w.Items = items
	}

	return wishlists, nil
}

// UpdateWishlist writes title and general instructions.
func (s *SQLiteStore) UpdateWishlist(ctx context.Context, w *models.Wishlist) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE wishlists SET title = ?, general_instructions = ? WHERE id = ?",
		w.Title, nullIfEmpty(w.GeneralInstructions), w.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update wishlist: %w", err)
	}
	return requireAffected(res, "wishlist", w.ID)
}

// SetShareToken stores the wishlist's public share token.
func (s *SQLiteStore) SetShareToken(ctx context.Context, wishlistID, token string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE wishlists SET share_token = ? WHERE id = ?",
		nullIfEmpty(token), wishlistID,
	)
	if err != nil {
		return fmt.Errorf("failed to set share token: %w", err)
	}
	return requireAffected(res, "wishlist", wishlistID)
}

// DeleteWishlist removes a wishlist; items, invites and conversations cascade.
func (s *SQLiteStore) DeleteWishlist(ctx context.Context, wishlistID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM wishlists WHERE id = ?", wishlistID)
	if err != nil {
		return fmt.Errorf("failed to delete wishlist: %w", err)
	}
	return requireAffected(res, "wishlist", wishlistID)
}

// CreateInvite persists an invite token and the groups it enrolls into.
func (s *SQLiteStore) CreateInvite(ctx context.Context, invite *models.WishlistInvite) error {
	if invite.Token == "" {
		invite.Token = uuid.New().String()
	}
	if invite.CreatedAt == 0 {
		invite.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO wishlist_invites (token, wishlist_id, created_at) VALUES (?, ?, ?)",
		invite.Token, invite.WishlistID, invite.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert invite: %w", err)
	}

	for _, groupID := range invite.GroupIDs {
		_, err = tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO wishlist_invite_groups (token, group_id) VALUES (?, ?)",
			invite.Token, groupID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert invite group: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetInvite retrieves an invite with its group IDs, or nil if the token is unknown.
func (s *SQLiteStore) GetInvite(ctx context.Context, token string) (*models.WishlistInvite, error) {
	invite := &models.WishlistInvite{}
	err := s.db.QueryRowContext(ctx,
		"SELECT token, wishlist_id, created_at FROM wishlist_invites WHERE token = ?",
		token,
	).Scan(&invite.Token, &invite.WishlistID, &invite.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get invite: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT group_id FROM wishlist_invite_groups WHERE token = ? ORDER BY group_id",
		token,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get invite groups: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var groupID string
		if err := rows.Scan(&groupID); err != nil {
			return nil, fmt.Errorf("failed to scan invite group: %w", err)
		}
		invite.GroupIDs = append(invite.GroupIDs, groupID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate invite groups: %w", err)
	}

	return invite, nil
}
