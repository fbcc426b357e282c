package service

import (
	"context"
	"fmt"

	"github.com/NJCA88/SneakyElves/internal/middleware"
	"github.com/NJCA88/SneakyElves/internal/models"
)

// callerID returns the identified caller, or an error for anonymous calls to public procedures.
func callerID(ctx context.Context) (string, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return "", middleware.ErrMissingIdentity
	}
	return userID, nil
}

func requireAdmin(ctx context.Context) error {
	if _, err := callerID(ctx); err != nil {
		return err
	}
	if !middleware.IsAdmin(ctx) {
		return fmt.Errorf("system admin required: %w", errPermissionDenied)
	}
	return nil
}

// requireOwner allows the wishlist owner and system admins.
func requireOwner(ctx context.Context, w *models.Wishlist) error {
	userID, err := callerID(ctx)
	if err != nil {
		return err
	}
	if w.UserID != userID && !middleware.IsAdmin(ctx) {
		return fmt.Errorf("not the owner of wishlist %s: %w", w.ID, errPermissionDenied)
	}
	return nil
}

type membershipLookup interface {
	GetMembership(ctx context.Context, userID, groupID string) (*models.Membership, error)
}

// requireGroupAdmin allows system admins and ADMIN members of the group.
func requireGroupAdmin(ctx context.Context, store membershipLookup, groupID string) error {
	userID, err := callerID(ctx)
	if err != nil {
		return err
	}
	if middleware.IsAdmin(ctx) {
		return nil
	}
	m, err := store.GetMembership(ctx, userID, groupID)
	if err != nil {
		return err
	}
	if m == nil || m.Role != models.RoleAdmin {
		return fmt.Errorf("group admin required for %s: %w", groupID, errPermissionDenied)
	}
	return nil
}
