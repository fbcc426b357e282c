package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Name is the display name shown to other group members.
	Name string

	// Email is the user's login address (unique).
	Email string

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string

	// IsAdmin marks a system administrator, who can see and manage every group.
	IsAdmin bool

	// ProfilePictureURL is an optional avatar URL.
	ProfilePictureURL string

	CreatedAt int64
	UpdatedAt int64
}

// NewUser builds a user with a fresh ID and timestamps.
func NewUser(email, name, passwordHash string) *User {
	now := time.Now().Unix()
	return &User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Summary returns the public identity of the user.
func (u *User) Summary() *UserSummary {
	return &UserSummary{ID: u.ID, Name: u.Name, ProfilePictureURL: u.ProfilePictureURL}
}

// UserSummary is the display identity attached to feed rows, members and assignments.
type UserSummary struct {
	ID                string
	Name              string
	Email             string
	ProfilePictureURL string
}
