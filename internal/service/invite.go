package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/NJCA88/SneakyElves/internal/models"
	"github.com/NJCA88/SneakyElves/internal/storage"
)

const (
	inviteCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	inviteCodeLength   = 6
	inviteCodeAttempts = 10
)

// generateInviteCode returns a random six character code of A-Z and 0-9.
func generateInviteCode() string {
	code := make([]byte, inviteCodeLength)
	for i := range code {
		code[i] = inviteCodeAlphabet[rand.IntN(len(inviteCodeAlphabet))]
	}
	return string(code)
}

type groupCreator interface {
	CreateGroup(ctx context.Context, group *models.Group, creatorID string) error
}

// createGroupWithCode stores a group under a fresh invite code, retrying on collisions.
// When creatorID is set the creator becomes the group's ADMIN.
func createGroupWithCode(ctx context.Context, store groupCreator, name, creatorID string) (*models.Group, error) {
	return createGroupNamed(ctx, store, creatorID, func(string) string { return name })
}

// createGroupNamed is createGroupWithCode for names that include the invite code.
func createGroupNamed(ctx context.Context, store groupCreator, creatorID string, name func(code string) string) (*models.Group, error) {
	for attempt := 0; attempt < inviteCodeAttempts; attempt++ {
		code := generateInviteCode()
		group := &models.Group{Name: name(code), InviteCode: code}
		err := store.CreateGroup(ctx, group, creatorID)
		if err == nil {
			return group, nil
		}
		if !errors.Is(err, storage.ErrConflict) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("no free invite code after %d attempts", inviteCodeAttempts)
}
