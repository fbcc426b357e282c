package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/NJCA88/SneakyElves/internal/models"
	"github.com/NJCA88/SneakyElves/internal/storage"
)

const userColumns = `id, email, name, password_hash, is_admin, profile_picture_url, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	user := &models.User{}
	var picture sql.NullString
	if err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.PasswordHash,
		&user.IsAdmin,
		&picture,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	user.ProfilePictureURL = picture.String
	return user, nil
}

// CreateUser inserts a new user into the database.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.Name,
		user.PasswordHash,
		user.IsAdmin,
		nullIfEmpty(user.ProfilePictureURL),
		user.CreatedAt,
		user.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("user %s: %w", user.Email, storage.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetUserByEmail retrieves a user by their email address.
func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ?`

	user, err := scanUser(s.db.QueryRowContext(ctx, query, email))
	if err == sql.ErrNoRows {
		return nil, nil // User not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

// GetUserByID retrieves a user by their ID.
func (s *SQLiteStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`

	user, err := scanUser(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil // User not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}

	return user, nil
}

// GetUsersByIDs retrieves multiple users by their IDs.
// Returns a map of user ID to User object.
// Users that don't exist are omitted from the result.
func (s *SQLiteStore) GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error) {
	if len(ids) == 0 {
		return make(map[string]*models.User), nil
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE id IN (` + placeholders(len(ids)) + `)`

	users, err := s.queryUsers(ctx, query, stringArgs(ids)...)
	if err != nil {
		return nil, fmt.Errorf("failed to get users by IDs: %w", err)
	}

	byID := make(map[string]*models.User, len(users))
	for _, user := range users {
		byID[user.ID] = user
	}
	return byID, nil
}

// UpdateUser writes name, email, password hash and picture.
func (s *SQLiteStore) UpdateUser(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now().Unix()

	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET name = ?, email = ?, password_hash = ?, profile_picture_url = ?, updated_at = ?
		 WHERE id = ?`,
		user.Name, user.Email, user.PasswordHash, nullIfEmpty(user.ProfilePictureURL), user.UpdatedAt, user.ID,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("user %s: %w", user.Email, storage.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return requireAffected(res, "user", user.ID)
}

// SetUserAdmin grants or revokes system admin.
func (s *SQLiteStore) SetUserAdmin(ctx context.Context, userID string, isAdmin bool) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE users SET is_admin = ?, updated_at = ? WHERE id = ?",
		isAdmin, time.Now().Unix(), userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update system role: %w", err)
	}
	return requireAffected(res, "user", userID)
}

// DeleteUser removes a user. Memberships, wishlists, items, feed rows and
// assignments go with it through ON DELETE CASCADE.
func (s *SQLiteStore) DeleteUser(ctx context.Context, userID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", userID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return requireAffected(res, "user", userID)
}

// ListUsers returns every user ordered by name.
func (s *SQLiteStore) ListUsers(ctx context.Context) ([]*models.User, error) {
	users, err := s.queryUsers(ctx, `SELECT `+userColumns+` FROM users ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// ListCoMembers returns users sharing at least one group with userID.
func (s *SQLiteStore) ListCoMembers(ctx context.Context, userID string) ([]*models.User, error) {
	query := `
		SELECT ` + userColumns + ` FROM users
		WHERE id IN (
			SELECT DISTINCT m.user_id FROM group_memberships m
			WHERE m.group_id IN (SELECT group_id FROM group_memberships WHERE user_id = ?)
		)
		ORDER BY name, id`

	users, err := s.queryUsers(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list co-members: %w", err)
	}
	return users, nil
}

func (s *SQLiteStore) queryUsers(ctx context.Context, query string, args ...any) ([]*models.User, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}
	return users, nil
}
