package service

import (
	"errors"
	"fmt"

	"connectrpc.com/connect"

	"github.com/NJCA88/SneakyElves/internal/auth"
	"github.com/NJCA88/SneakyElves/internal/middleware"
	"github.com/NJCA88/SneakyElves/internal/santa"
	"github.com/NJCA88/SneakyElves/internal/storage"
)

var (
	errPermissionDenied  = errors.New("permission denied")
	errInvalidInviteCode = errors.New("invalid invite code")
	errInvalidRole       = errors.New("invalid role")
)

// toConnectError maps domain errors onto Connect codes. Unknown errors become
// CodeInternal.
func toConnectError(err error) *connect.Error {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr
	}

	switch {
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, storage.ErrConflict), errors.Is(err, auth.ErrEmailExists):
		return connect.NewError(connect.CodeAlreadyExists, err)
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, middleware.ErrMissingIdentity):
		return connect.NewError(connect.CodeUnauthenticated, err)
	case errors.Is(err, errPermissionDenied):
		return connect.NewError(connect.CodePermissionDenied, err)
	case errors.Is(err, santa.ErrInsufficientParticipants):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, santa.ErrInvalidAssignment),
		errors.Is(err, auth.ErrWeakPassword),
		errors.Is(err, auth.ErrInvalidEmail),
		errors.Is(err, auth.ErrNameRequired),
		errors.Is(err, errInvalidInviteCode),
		errors.Is(err, errInvalidRole):
		return connect.NewError(connect.CodeInvalidArgument, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

// invalidArgument builds a CodeInvalidArgument error from a format string.
func invalidArgument(format string, args ...any) *connect.Error {
	return connect.NewError(connect.CodeInvalidArgument, fmt.Errorf(format, args...))
}
