package middleware

import (
	"context"
	"errors"
	"strings"

	"connectrpc.com/connect"

	"github.com/NJCA88/SneakyElves/internal/models"
)

// UserIDHeader carries the caller's user ID, returned by Signup and Login.
const UserIDHeader = "X-User-Id"

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// UserIDKey is the context key for storing the caller's user ID.
	UserIDKey contextKey = "user_id"
	// AdminKey is the context key for the caller's system admin flag.
	AdminKey contextKey = "is_admin"
)

var (
	// ErrMissingIdentity is returned when a protected procedure is called without a user ID.
	ErrMissingIdentity = errors.New("missing " + UserIDHeader + " header")

	// ErrUnknownUser is returned when the header names a user that does not exist.
	ErrUnknownUser = errors.New("unknown user")
)

// UserLookup resolves user IDs.
type UserLookup interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// GetUserID extracts the user ID from the context.
// Returns empty string if not found.
func GetUserID(ctx context.Context) string {
	userID, _ := ctx.Value(UserIDKey).(string)
	return userID
}

// IsAdmin reports whether the caller is a system administrator.
func IsAdmin(ctx context.Context) bool {
	admin, _ := ctx.Value(AdminKey).(bool)
	return admin
}

// WithUser returns a context identifying the given user.
func WithUser(ctx context.Context, user *models.User) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, user.ID)
	return context.WithValue(ctx, AdminKey, user.IsAdmin)
}

// RequireUser returns an interceptor that resolves the X-User-Id header to a user and
// stores the identity in the request context. Procedures listed in public are served
// without an identity; when they do carry the header it is still resolved.
func RequireUser(users UserLookup, public ...string) connect.UnaryInterceptorFunc {
	open := make(map[string]bool, len(public))
	for _, p := range public {
		open[p] = true
	}

	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			procedure := req.Spec().Procedure
			userID := strings.TrimSpace(req.Header().Get(UserIDHeader))

			if userID == "" {
				if open[procedure] {
					return next(ctx, req)
				}
				return nil, connect.NewError(connect.CodeUnauthenticated, ErrMissingIdentity)
			}

			user, err := users.GetUserByID(ctx, userID)
			if err != nil {
				return nil, connect.NewError(connect.CodeInternal, err)
			}
			if user == nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, ErrUnknownUser)
			}

			return next(WithUser(ctx, user), req)
		}
	}
}
