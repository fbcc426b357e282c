package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/NJCA88/SneakyElves/internal/models"
)

// CreateConversation persists a conversation and its opening message together.
func (s *SQLiteStore) CreateConversation(ctx context.Context, c *models.Conversation, first *models.Message) error {
	now := time.Now().Unix()
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	c.CreatedAt = now
	c.UpdatedAt = now

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO conversations (id, wishlist_id, author_id, item_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.WishlistID, c.AuthorID, nullIfEmpty(c.ItemID), c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert conversation: %w", err)
	}

	if first != nil {
		if first.ID == "" {
			first.ID = uuid.New().String()
		}
		first.ConversationID = c.ID
		first.CreatedAt = now
		_, err = tx.ExecContext(ctx,
			"INSERT INTO messages (id, conversation_id, author_id, body, created_at) VALUES (?, ?, ?, ?, ?)",
			first.ID, first.ConversationID, first.AuthorID, first.Body, first.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert message: %w", err)
		}
		c.Messages = []models.Message{*first}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetConversation retrieves a conversation with all messages, oldest first.
func (s *SQLiteStore) GetConversation(ctx context.Context, conversationID string) (*models.Conversation, error) {
	c := &models.Conversation{}
	var itemID, itemName sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT c.id, c.wishlist_id, c.author_id, c.item_id, i.name, c.created_at, c.updated_at
		 FROM conversations c LEFT JOIN items i ON i.id = c.item_id
		 WHERE c.id = ?`,
		conversationID,
	).Scan(&c.ID, &c.WishlistID, &c.AuthorID, &itemID, &itemName, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, notFound("conversation", conversationID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}
	c.ItemID = itemID.String
	c.ItemName = itemName.String

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, conversation_id, author_id, body, created_at FROM messages
		 WHERE conversation_id = ? ORDER BY created_at, rowid`,
		conversationID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get messages: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.AuthorID, &m.Body, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		c.Messages = append(c.Messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate messages: %w", err)
	}
	return c, nil
}

// ListConversations returns a wishlist's threads, most recently active first, each with
// its latest message.
func (s *SQLiteStore) ListConversations(ctx context.Context, wishlistID, authorID string) ([]*models.Conversation, error) {
	query := `
		SELECT c.id, c.wishlist_id, c.author_id, c.item_id, i.name, c.created_at, c.updated_at,
		       m.id, m.author_id, m.body, m.created_at
		FROM conversations c
		LEFT JOIN items i ON i.id = c.item_id
		LEFT JOIN messages m ON m.id = (
			SELECT id FROM messages WHERE conversation_id = c.id ORDER BY created_at DESC, rowid DESC LIMIT 1
		)
		WHERE c.wishlist_id = ?`
	args := []any{wishlistID}
	if authorID != "" {
		query += ` AND c.author_id = ?`
		args = append(args, authorID)
	}
	query += ` ORDER BY c.updated_at DESC, c.rowid DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	defer rows.Close()

	var conversations []*models.Conversation
	for rows.Next() {
		c := &models.Conversation{}
		var itemID, itemName, msgID, msgAuthor, msgBody sql.NullString
		var msgCreated sql.NullInt64
		if err := rows.Scan(&c.ID, &c.WishlistID, &c.AuthorID, &itemID, &itemName, &c.CreatedAt, &c.UpdatedAt,
			&msgID, &msgAuthor, &msgBody, &msgCreated); err != nil {
			return nil, fmt.Errorf("failed to scan conversation: %w", err)
		}
		c.ItemID = itemID.String
		c.ItemName = itemName.String
		if msgID.Valid {
			c.LastMessage = &models.Message{
				ID:             msgID.String,
				ConversationID: c.ID,
				AuthorID:       msgAuthor.String,
				Body:           msgBody.String,
				CreatedAt:      msgCreated.Int64,
			}
		}
		conversations = append(conversations, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate conversations: %w", err)
	}
	return conversations, nil
}

// AddMessage appends a message to a conversation and bumps its UpdatedAt.
func (s *SQLiteStore) AddMessage(ctx context.Context, msg *models.Message) error {
	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	if msg.CreatedAt == 0 {
		msg.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"UPDATE conversations SET updated_at = ? WHERE id = ?",
		msg.CreatedAt, msg.ConversationID,
	)
	if err != nil {
		return fmt.Errorf("failed to update conversation: %w", err)
	}
	if err := requireAffected(res, "conversation", msg.ConversationID); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO messages (id, conversation_id, author_id, body, created_at) VALUES (?, ?, ?, ?, ?)",
		msg.ID, msg.ConversationID, msg.AuthorID, msg.Body, msg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
