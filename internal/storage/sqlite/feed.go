package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/NJCA88/SneakyElves/internal/models"
)

// ListCoMemberIDs returns the distinct members of every group userID belongs to.
func (s *SQLiteStore) ListCoMemberIDs(ctx context.Context, userID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT m.user_id FROM group_memberships m
		 WHERE m.group_id IN (SELECT group_id FROM group_memberships WHERE user_id = ?)
		 ORDER BY m.user_id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list co-member IDs: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan co-member ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate co-member IDs: %w", err)
	}
	return ids, nil
}

// CreateFeedItems inserts a broadcast's rows in one transaction.
func (s *SQLiteStore) CreateFeedItems(ctx context.Context, items []*models.FeedItem) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO feed_items (id, user_id, actor_id, type, data, related_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("failed to prepare feed insert: %w", err)
	}
	defer stmt.Close()

	for _, item := range items {
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		data, err := models.MarshalFeedPayload(item.Payload)
		if err != nil {
			return err
		}
		_, err = stmt.ExecContext(ctx,
			item.ID, item.UserID, item.ActorID, item.Type, string(data), nullIfEmpty(item.RelatedID), item.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert feed item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListFeedItems returns a page of a recipient's feed, newest first, with the actor joined.
// Rows sharing a timestamp come back in reverse insertion order.
func (s *SQLiteStore) ListFeedItems(ctx context.Context, userID string, limit, offset int) ([]*models.FeedItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT f.id, f.user_id, f.actor_id, f.type, f.data, f.related_id, f.created_at,
		        u.name, u.profile_picture_url
		 FROM feed_items f JOIN users u ON u.id = f.actor_id
		 WHERE f.user_id = ?
		 ORDER BY f.created_at DESC, f.rowid DESC
		 LIMIT ? OFFSET ?`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list feed items: %w", err)
	}
	defer rows.Close()

	items := []*models.FeedItem{}
	for rows.Next() {
		item := &models.FeedItem{Actor: &models.UserSummary{}}
		var data string
		var relatedID, picture sql.NullString
		if err := rows.Scan(&item.ID, &item.UserID, &item.ActorID, &item.Type, &data, &relatedID,
			&item.CreatedAt, &item.Actor.Name, &picture); err != nil {
			return nil, fmt.Errorf("failed to scan feed item: %w", err)
		}
		payload, err := models.UnmarshalFeedPayload(item.Type, []byte(data))
		if err != nil {
			return nil, err
		}
		item.Payload = payload
		item.RelatedID = relatedID.String
		item.Actor.ID = item.ActorID
		item.Actor.ProfilePictureURL = picture.String
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate feed items: %w", err)
	}
	return items, nil
}

// DeleteFeedItems removes every row of eventType about relatedID, whoever received it.
func (s *SQLiteStore) DeleteFeedItems(ctx context.Context, eventType models.EventType, relatedID string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM feed_items WHERE type = ? AND related_id = ?",
		eventType, relatedID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete feed items: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n, nil
}
