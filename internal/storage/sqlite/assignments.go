package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/NJCA88/SneakyElves/internal/models"
)

// ReplaceAssignments swaps a year's assignments for a new set, all or nothing.
func (s *SQLiteStore) ReplaceAssignments(ctx context.Context, year int, assignments []*models.Assignment) error {
	now := time.Now().Unix()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM assignments WHERE year = ?", year); err != nil {
		return fmt.Errorf("failed to delete assignments: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO assignments (id, giver_id, receiver_id, role, year, active, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("failed to prepare assignment insert: %w", err)
	}
	defer stmt.Close()

	for _, a := range assignments {
		if a.ID == "" {
			a.ID = uuid.New().String()
		}
		if a.CreatedAt == 0 {
			a.CreatedAt = now
		}
		a.Year = year
		if _, err := stmt.ExecContext(ctx, a.ID, a.GiverID, a.ReceiverID, a.Role, a.Year, a.Active, a.CreatedAt); err != nil {
			return fmt.Errorf("failed to insert assignment %s -> %s: %w", a.GiverID, a.ReceiverID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteAssignments removes every assignment of the year.
func (s *SQLiteStore) DeleteAssignments(ctx context.Context, year int) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM assignments WHERE year = ?", year)
	if err != nil {
		return 0, fmt.Errorf("failed to delete assignments: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n, nil
}

const assignmentQuery = `
	SELECT a.id, a.giver_id, a.receiver_id, a.role, a.year, a.active, a.created_at,
	       g.name, g.email, r.name, r.email
	FROM assignments a
	JOIN users g ON g.id = a.giver_id
	JOIN users r ON r.id = a.receiver_id
	WHERE a.active = 1 AND a.year = ?`

// ListAssignments returns a year's active assignments.
func (s *SQLiteStore) ListAssignments(ctx context.Context, year int) ([]*models.Assignment, error) {
	return s.queryAssignments(ctx, assignmentQuery+` ORDER BY g.name, a.role DESC, r.name`, year)
}

// ListAssignmentsByGiver returns one giver's active assignments for a year.
func (s *SQLiteStore) ListAssignmentsByGiver(ctx context.Context, giverID string, year int) ([]*models.Assignment, error) {
	return s.queryAssignments(ctx, assignmentQuery+` AND a.giver_id = ? ORDER BY a.role DESC, r.name`, year, giverID)
}

func (s *SQLiteStore) queryAssignments(ctx context.Context, query string, args ...any) ([]*models.Assignment, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	defer rows.Close()

	var assignments []*models.Assignment
	for rows.Next() {
		a := &models.Assignment{Giver: &models.UserSummary{}, Receiver: &models.UserSummary{}}
		var giverEmail, receiverEmail sql.NullString
		if err := rows.Scan(&a.ID, &a.GiverID, &a.ReceiverID, &a.Role, &a.Year, &a.Active, &a.CreatedAt,
			&a.Giver.Name, &giverEmail, &a.Receiver.Name, &receiverEmail); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		a.Giver.ID = a.GiverID
		a.Giver.Email = giverEmail.String
		a.Receiver.ID = a.ReceiverID
		a.Receiver.Email = receiverEmail.String
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate assignments: %w", err)
	}
	return assignments, nil
}
