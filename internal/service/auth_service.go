package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/NJCA88/SneakyElves/internal/auth"
	"github.com/NJCA88/SneakyElves/internal/feed"
	"github.com/NJCA88/SneakyElves/internal/middleware"
	"github.com/NJCA88/SneakyElves/internal/models"
	"github.com/NJCA88/SneakyElves/internal/storage"
	"github.com/NJCA88/SneakyElves/pkg/api"
)

// EventPublisher queues feed events without blocking the request.
type EventPublisher interface {
	Broadcast(ev feed.Event)
}

// AuthService implements the AuthService RPC interface.
type AuthService struct {
	authenticator auth.Authenticator
	store         storage.Store
	publisher     EventPublisher
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, store storage.Store, publisher EventPublisher, logger *slog.Logger) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		store:         store,
		publisher:     publisher,
		logger:        logger,
	}
}

// Handler returns the mount path and HTTP handler for the service.
func (s *AuthService) Handler(opts ...connect.HandlerOption) (string, http.Handler) {
	opts = api.HandlerOptions(opts...)
	mux := http.NewServeMux()
	mux.Handle(api.AuthSignupProcedure, connect.NewUnaryHandler(api.AuthSignupProcedure, s.Signup, opts...))
	mux.Handle(api.AuthLoginProcedure, connect.NewUnaryHandler(api.AuthLoginProcedure, s.Login, opts...))
	mux.Handle(api.AuthGetCurrentUserProcedure, connect.NewUnaryHandler(api.AuthGetCurrentUserProcedure, s.GetCurrentUser, opts...))
	mux.Handle(api.AuthUpdateProfileProcedure, connect.NewUnaryHandler(api.AuthUpdateProfileProcedure, s.UpdateProfile, opts...))
	mux.Handle(api.AuthChangePasswordProcedure, connect.NewUnaryHandler(api.AuthChangePasswordProcedure, s.ChangePassword, opts...))
	return api.ServicePath(api.AuthServiceName), mux
}

// Signup creates an account, enrolls it in groups and creates its primary wishlist.
//
// The account joins the group named by InviteCode and the groups linked to InviteToken.
// Without either it gets a group of its own, with the new user as ADMIN.
func (s *AuthService) Signup(ctx context.Context, req *connect.Request[api.SignupRequest]) (*connect.Response[api.SignupResponse], error) {
	msg := req.Msg
	s.logger.Info("Signup request", "email", msg.Email, "has_invite_code", msg.InviteCode != "", "has_invite_token", msg.InviteToken != "")

	var groups []*models.Group
	if code := strings.TrimSpace(msg.InviteCode); code != "" {
		group, err := s.store.GetGroupByInviteCode(ctx, code)
		if err != nil {
			return nil, toConnectError(err)
		}
		if group == nil {
			return nil, toConnectError(fmt.Errorf("%q: %w", code, errInvalidInviteCode))
		}
		groups = append(groups, group)
	}
	if msg.InviteToken != "" {
		invite, err := s.store.GetInvite(ctx, msg.InviteToken)
		if err != nil {
			return nil, toConnectError(err)
		}
		// An unknown token is ignored; the visitor still gets an account.
		if invite != nil {
			for _, groupID := range invite.GroupIDs {
				group, err := s.store.GetGroup(ctx, groupID)
				if err != nil {
					s.logger.Warn("Invite group missing", "token", msg.InviteToken, "group_id", groupID, "error", err)
					continue
				}
				groups = append(groups, group)
			}
		}
	}

	user, err := s.authenticator.Register(ctx, msg.Email, msg.Name, msg.Password)
	if err != nil {
		s.logger.Warn("Registration failed", "email", msg.Email, "error", err)
		return nil, toConnectError(err)
	}

	if len(groups) == 0 {
		if _, err := createGroupWithCode(ctx, s.store, user.Name+"'s Group", user.ID); err != nil {
			s.logger.Error("Failed to create personal group", "user_id", user.ID, "error", err)
			return nil, toConnectError(err)
		}
	}

	joined := make(map[string]bool, len(groups))
	for _, group := range groups {
		if joined[group.ID] {
			continue
		}
		joined[group.ID] = true
		if err := s.store.AddMembership(ctx, &models.Membership{UserID: user.ID, GroupID: group.ID, Role: models.RoleMember}); err != nil {
			s.logger.Error("Failed to join group", "user_id", user.ID, "group_id", group.ID, "error", err)
			return nil, toConnectError(err)
		}
		s.publisher.Broadcast(feed.Event{
			ActorID:   user.ID,
			Payload:   models.MemberJoinedPayload{GroupID: group.ID, GroupName: group.Name},
			RelatedID: group.ID,
		})
	}

	if err := s.store.CreateWishlist(ctx, &models.Wishlist{UserID: user.ID, Title: user.Name}); err != nil {
		s.logger.Error("Failed to create wishlist", "user_id", user.ID, "error", err)
		return nil, toConnectError(err)
	}

	out, err := s.loadUser(ctx, user)
	if err != nil {
		return nil, toConnectError(err)
	}

	s.logger.Info("User registered successfully", "user_id", user.ID, "groups_joined", len(joined))
	return connect.NewResponse(&api.SignupResponse{User: out}), nil
}

// Login checks the credentials and returns the user. Clients send the returned ID in
// the X-User-Id header afterwards.
func (s *AuthService) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	s.logger.Info("Login request", "email", req.Msg.Email)

	if req.Msg.Email == "" || req.Msg.Password == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, auth.ErrInvalidCredentials)
	}

	user, err := s.authenticator.Authenticate(ctx, req.Msg.Email, req.Msg.Password)
	if err != nil {
		s.logger.Warn("Login failed", "email", req.Msg.Email, "error", err)
		return nil, toConnectError(err)
	}

	out, err := s.loadUser(ctx, user)
	if err != nil {
		return nil, toConnectError(err)
	}

	s.logger.Info("User logged in successfully", "user_id", user.ID)
	return connect.NewResponse(&api.LoginResponse{User: out}), nil
}

// GetCurrentUser returns the caller with their memberships.
func (s *AuthService) GetCurrentUser(ctx context.Context, req *connect.Request[api.Empty]) (*connect.Response[api.GetCurrentUserResponse], error) {
	user, err := s.currentUser(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	out, err := s.loadUser(ctx, user)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.GetCurrentUserResponse{User: out}), nil
}

// UpdateProfile changes the caller's display name and picture.
func (s *AuthService) UpdateProfile(ctx context.Context, req *connect.Request[api.UpdateProfileRequest]) (*connect.Response[api.UpdateProfileResponse], error) {
	user, err := s.currentUser(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}

	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, toConnectError(auth.ErrNameRequired)
	}
	user.Name = name
	user.ProfilePictureURL = strings.TrimSpace(req.Msg.ProfilePictureURL)

	if err := s.store.UpdateUser(ctx, user); err != nil {
		s.logger.Error("UpdateProfile failed", "user_id", user.ID, "error", err)
		return nil, toConnectError(err)
	}

	out, err := s.loadUser(ctx, user)
	if err != nil {
		return nil, toConnectError(err)
	}
	s.logger.Info("Profile updated", "user_id", user.ID)
	return connect.NewResponse(&api.UpdateProfileResponse{User: out}), nil
}

// ChangePassword replaces the caller's password after checking the current one.
func (s *AuthService) ChangePassword(ctx context.Context, req *connect.Request[api.ChangePasswordRequest]) (*connect.Response[api.Empty], error) {
	user, err := s.currentUser(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}

	if _, err := s.authenticator.Authenticate(ctx, user.Email, req.Msg.CurrentPassword); err != nil {
		s.logger.Warn("ChangePassword rejected", "user_id", user.ID, "error", err)
		return nil, toConnectError(err)
	}
	if err := s.authenticator.ChangeCredential(ctx, user.ID, req.Msg.NewPassword); err != nil {
		return nil, toConnectError(err)
	}

	s.logger.Info("Password changed", "user_id", user.ID)
	return connect.NewResponse(&api.Empty{}), nil
}

func (s *AuthService) currentUser(ctx context.Context) (*models.User, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil, middleware.ErrMissingIdentity
	}
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", userID, storage.ErrNotFound)
	}
	return user, nil
}

func (s *AuthService) loadUser(ctx context.Context, user *models.User) (*api.User, error) {
	memberships, err := s.store.ListMembershipsForUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return toAPIUser(user, memberships), nil
}
