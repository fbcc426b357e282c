package auth

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/NJCA88/SneakyElves/internal/storage/sqlite"
)

func newTestAuthenticator(t *testing.T) *PasswordAuthenticator {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "auth.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return NewPasswordAuthenticator(store).WithCost(bcrypt.MinCost)
}

func TestRegister(t *testing.T) {
	a := newTestAuthenticator(t)
	ctx := context.Background()

	user, err := a.Register(ctx, "  Alice@Example.com ", "Alice", "correct-horse")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.ID == "" {
		t.Error("expected generated ID")
	}
	if user.Email != "alice@example.com" {
		t.Errorf("Email = %q, want normalized alice@example.com", user.Email)
	}
	if user.PasswordHash == "correct-horse" || user.PasswordHash == "" {
		t.Error("password must be stored hashed")
	}

	tests := []struct {
		name    string
		email   string
		uname   string
		pass    string
		wantErr error
	}{
		{"duplicate email", "alice@example.com", "Other", "password123", ErrEmailExists},
		{"duplicate email different case", "ALICE@example.com", "Other", "password123", ErrEmailExists},
		{"short password", "bob@example.com", "Bob", "short", ErrWeakPassword},
		{"bad email", "not-an-email", "Bob", "password123", ErrInvalidEmail},
		{"missing name", "bob@example.com", "  ", "password123", ErrNameRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.Register(ctx, tt.email, tt.uname, tt.pass)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Register error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAuthenticate(t *testing.T) {
	a := newTestAuthenticator(t)
	ctx := context.Background()

	registered, err := a.Register(ctx, "carol@example.com", "Carol", "s3cret-pass")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	t.Run("valid credentials", func(t *testing.T) {
		user, err := a.Authenticate(ctx, "Carol@Example.com", "s3cret-pass")
		if err != nil {
			t.Fatalf("Authenticate failed: %v", err)
		}
		if user.ID != registered.ID {
			t.Errorf("user ID = %s, want %s", user.ID, registered.ID)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		if _, err := a.Authenticate(ctx, "carol@example.com", "wrong-pass"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("error = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		if _, err := a.Authenticate(ctx, "nobody@example.com", "s3cret-pass"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("error = %v, want ErrInvalidCredentials", err)
		}
	})
}

func TestChangeCredential(t *testing.T) {
	a := newTestAuthenticator(t)
	ctx := context.Background()

	user, err := a.Register(ctx, "dave@example.com", "Dave", "old-password")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if err := a.ChangeCredential(ctx, user.ID, "tiny"); !errors.Is(err, ErrWeakPassword) {
		t.Errorf("weak password error = %v, want ErrWeakPassword", err)
	}
	if err := a.ChangeCredential(ctx, user.ID, "new-password"); err != nil {
		t.Fatalf("ChangeCredential failed: %v", err)
	}

	if _, err := a.Authenticate(ctx, "dave@example.com", "old-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("old password still accepted: %v", err)
	}
	if _, err := a.Authenticate(ctx, "dave@example.com", "new-password"); err != nil {
		t.Errorf("new password rejected: %v", err)
	}
}
