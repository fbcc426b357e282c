package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/NJCA88/SneakyElves/internal/models"
	"github.com/NJCA88/SneakyElves/internal/storage"
)

// CreateGroup persists a new group, and the creator's ADMIN membership when creatorID is set.
func (s *SQLiteStore) CreateGroup(ctx context.Context, group *models.Group, creatorID string) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}
	group.InviteCode = strings.ToUpper(group.InviteCode)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO groups (id, name, invite_code, created_at) VALUES (?, ?, ?, ?)",
		group.ID, group.Name, group.InviteCode, group.CreatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("invite code %s: %w", group.InviteCode, storage.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}

	if creatorID != "" {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO group_memberships (user_id, group_id, role, created_at) VALUES (?, ?, ?, ?)",
			creatorID, group.ID, models.RoleAdmin, group.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert creator membership: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetGroup retrieves a group by ID with its members.
func (s *SQLiteStore) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	group := &models.Group{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, invite_code, created_at FROM groups WHERE id = ?",
		groupID,
	).Scan(&group.ID, &group.Name, &group.InviteCode, &group.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, notFound("group", groupID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT m.user_id, m.role, u.name, u.email, u.profile_picture_url
		 FROM group_memberships m JOIN users u ON u.id = m.user_id
		 WHERE m.group_id = ?
		 ORDER BY u.name, u.id`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get group members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		m := models.Membership{GroupID: group.ID, GroupName: group.Name, User: &models.UserSummary{}}
		var picture sql.NullString
		if err := rows.Scan(&m.UserID, &m.Role, &m.User.Name, &m.User.Email, &picture); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		m.User.ID = m.UserID
		m.User.ProfilePictureURL = picture.String
		group.Members = append(group.Members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}
	group.MemberCount = len(group.Members)

	return group, nil
}

// GetGroupByInviteCode looks a group up by its code, case-insensitively.
func (s *SQLiteStore) GetGroupByInviteCode(ctx context.Context, code string) (*models.Group, error) {
	group := &models.Group{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, invite_code, created_at FROM groups WHERE invite_code = ?",
		strings.ToUpper(code),
	).Scan(&group.ID, &group.Name, &group.InviteCode, &group.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group by invite code: %w", err)
	}
	return group, nil
}

// ListGroups retrieves all groups with member counts.
func (s *SQLiteStore) ListGroups(ctx context.Context) ([]*models.Group, error) {
	return s.queryGroups(ctx, `
		SELECT g.id, g.name, g.invite_code, g.created_at,
		       (SELECT COUNT(*) FROM group_memberships m WHERE m.group_id = g.id)
		FROM groups g
		ORDER BY g.created_at DESC, g.name`)
}

// ListGroupsForUser retrieves the groups userID belongs to.
func (s *SQLiteStore) ListGroupsForUser(ctx context.Context, userID string) ([]*models.Group, error) {
	return s.queryGroups(ctx, `
		SELECT g.id, g.name, g.invite_code, g.created_at,
		       (SELECT COUNT(*) FROM group_memberships m WHERE m.group_id = g.id)
		FROM groups g
		JOIN group_memberships mine ON mine.group_id = g.id AND mine.user_id = ?
		ORDER BY g.created_at DESC, g.name`, userID)
}

func (s *SQLiteStore) queryGroups(ctx context.Context, query string, args ...any) ([]*models.Group, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []*models.Group
	for rows.Next() {
		group := &models.Group{}
		if err := rows.Scan(&group.ID, &group.Name, &group.InviteCode, &group.CreatedAt, &group.MemberCount); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	return groups, nil
}

// DeleteGroup removes a group; memberships cascade.
func (s *SQLiteStore) DeleteGroup(ctx context.Context, groupID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM groups WHERE id = ?", groupID)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	return requireAffected(res, "group", groupID)
}

// AddMembership adds a user to a group. Adding an existing member is a conflict.
func (s *SQLiteStore) AddMembership(ctx context.Context, m *models.Membership) error {
	if m.Role == "" {
		m.Role = models.RoleMember
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO group_memberships (user_id, group_id, role, created_at) VALUES (?, ?, ?, ?)",
		m.UserID, m.GroupID, m.Role, time.Now().Unix(),
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("user %s in group %s: %w", m.UserID, m.GroupID, storage.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("failed to add membership: %w", err)
	}
	return nil
}

// RemoveMembership removes a user from a group.
func (s *SQLiteStore) RemoveMembership(ctx context.Context, userID, groupID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM group_memberships WHERE user_id = ? AND group_id = ?",
		userID, groupID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove membership: %w", err)
	}
	return requireAffected(res, "membership", userID+"/"+groupID)
}

// UpdateMembershipRole changes a member's role.
func (s *SQLiteStore) UpdateMembershipRole(ctx context.Context, userID, groupID string, role models.Role) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE group_memberships SET role = ? WHERE user_id = ? AND group_id = ?",
		role, userID, groupID,
	)
	if err != nil {
		return fmt.Errorf("failed to update membership role: %w", err)
	}
	return requireAffected(res, "membership", userID+"/"+groupID)
}

// GetMembership returns the membership, or nil if the user is not in the group.
func (s *SQLiteStore) GetMembership(ctx context.Context, userID, groupID string) (*models.Membership, error) {
	m := &models.Membership{}
	err := s.db.QueryRowContext(ctx,
		`SELECT m.user_id, m.group_id, m.role, g.name
		 FROM group_memberships m JOIN groups g ON g.id = m.group_id
		 WHERE m.user_id = ? AND m.group_id = ?`,
		userID, groupID,
	).Scan(&m.UserID, &m.GroupID, &m.Role, &m.GroupName)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}
	return m, nil
}

// ListMembershipsForUser returns the user's memberships with group names.
func (s *SQLiteStore) ListMembershipsForUser(ctx context.Context, userID string) ([]models.Membership, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT m.user_id, m.group_id, m.role, g.name
		 FROM group_memberships m JOIN groups g ON g.id = m.group_id
		 WHERE m.user_id = ?
		 ORDER BY g.name, g.id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}
	defer rows.Close()

	var memberships []models.Membership
	for rows.Next() {
		var m models.Membership
		if err := rows.Scan(&m.UserID, &m.GroupID, &m.Role, &m.GroupName); err != nil {
			return nil, fmt.Errorf("failed to scan membership: %w", err)
		}
		memberships = append(memberships, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate memberships: %w", err)
	}
	return memberships, nil
}
