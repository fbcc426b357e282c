package service

import (
	"context"
	"errors"
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

// GroupService implements the Connect GroupService: groups, memberships and the
// administrator's view of users.
type GroupService struct {
	store         storage.Store
	authenticator auth.Authenticator
	publisher     EventPublisher
	logger        *slog.Logger
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store, authenticator auth.Authenticator, publisher EventPublisher, logger *slog.Logger) *GroupService {
	return &GroupService{store: store, authenticator: authenticator, publisher: publisher, logger: logger}
}

// Handler returns the mount path and HTTP handler for the service.
func (s *GroupService) Handler(opts ...connect.HandlerOption) (string, http.Handler) {
	opts = api.HandlerOptions(opts...)
	mux := http.NewServeMux()
	mux.Handle(api.GroupCreateGroupProcedure, connect.NewUnaryHandler(api.GroupCreateGroupProcedure, s.CreateGroup, opts...))
	mux.Handle(api.GroupGetGroupProcedure, connect.NewUnaryHandler(api.GroupGetGroupProcedure, s.GetGroup, opts...))
	mux.Handle(api.GroupListGroupsProcedure, connect.NewUnaryHandler(api.GroupListGroupsProcedure, s.ListGroups, opts...))
	mux.Handle(api.GroupDeleteGroupProcedure, connect.NewUnaryHandler(api.GroupDeleteGroupProcedure, s.DeleteGroup, opts...))
	mux.Handle(api.GroupValidateInviteCodeProcedure, connect.NewUnaryHandler(api.GroupValidateInviteCodeProcedure, s.ValidateInviteCode, opts...))
	mux.Handle(api.GroupJoinGroupProcedure, connect.NewUnaryHandler(api.GroupJoinGroupProcedure, s.JoinGroup, opts...))
	mux.Handle(api.GroupAddMemberProcedure, connect.NewUnaryHandler(api.GroupAddMemberProcedure, s.AddMember, opts...))
	mux.Handle(api.GroupRemoveMemberProcedure, connect.NewUnaryHandler(api.GroupRemoveMemberProcedure, s.RemoveMember, opts...))
	mux.Handle(api.GroupUpdateMemberRoleProcedure, connect.NewUnaryHandler(api.GroupUpdateMemberRoleProcedure, s.UpdateMemberRole, opts...))
	mux.Handle(api.GroupSetSystemAdminProcedure, connect.NewUnaryHandler(api.GroupSetSystemAdminProcedure, s.SetSystemAdmin, opts...))
	mux.Handle(api.GroupListUsersProcedure, connect.NewUnaryHandler(api.GroupListUsersProcedure, s.ListUsers, opts...))
	mux.Handle(api.GroupDeleteUserProcedure, connect.NewUnaryHandler(api.GroupDeleteUserProcedure, s.DeleteUser, opts...))
	mux.Handle(api.GroupResetPasswordProcedure, connect.NewUnaryHandler(api.GroupResetPasswordProcedure, s.ResetPassword, opts...))
	return api.ServicePath(api.GroupServiceName), mux
}

// CreateGroup creates a group with a fresh invite code. The caller becomes its ADMIN.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	userID := middleware.GetUserID(ctx)
	name := strings.TrimSpace(req.Msg.Name)
	s.logger.Info("CreateGroup request received", "name", name, "user_id", userID)

	if name == "" {
		return nil, invalidArgument("group name required")
	}

	group, err := createGroupWithCode(ctx, s.store, name, userID)
	if err != nil {
		s.logger.Error("CreateGroup failed", "error", err)
		return nil, toConnectError(err)
	}
	group.MemberCount = 1

	s.logger.Info("Group created", "group_id", group.ID, "invite_code", group.InviteCode)
	return connect.NewResponse(&api.CreateGroupResponse{Group: toAPIGroup(group)}), nil
}

// GetGroup retrieves a group with its members. Only members and system admins may look.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	groupID := req.Msg.GroupID
	s.logger.Info("GetGroup request received", "group_id", groupID)

	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		s.logger.Warn("GetGroup failed", "group_id", groupID, "error", err)
		return nil, toConnectError(err)
	}

	if !middleware.IsAdmin(ctx) && !hasMember(group, middleware.GetUserID(ctx)) {
		return nil, toConnectError(fmt.Errorf("not a member of group %s: %w", groupID, errPermissionDenied))
	}

	return connect.NewResponse(&api.GetGroupResponse{Group: toAPIGroup(group)}), nil
}

// ListGroups returns every group to system admins and the caller's own groups to everyone else.
func (s *GroupService) ListGroups(ctx context.Context, req *connect.Request[api.Empty]) (*connect.Response[api.ListGroupsResponse], error) {
	var (
		groups []*models.Group
		err    error
	)
	if middleware.IsAdmin(ctx) {
		groups, err = s.store.ListGroups(ctx)
	} else {
		groups, err = s.store.ListGroupsForUser(ctx, middleware.GetUserID(ctx))
	}
	if err != nil {
		s.logger.Error("ListGroups failed", "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*api.Group, len(groups))
	for i, group := range groups {
		out[i] = toAPIGroup(group)
	}

	s.logger.Info("ListGroups successful", "count", len(out))
	return connect.NewResponse(&api.ListGroupsResponse{Groups: out}), nil
}

// DeleteGroup removes a group. System admins and the group's ADMIN members may delete it.
func (s *GroupService) DeleteGroup(ctx context.Context, req *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.Empty], error) {
	groupID := req.Msg.GroupID
	s.logger.Info("DeleteGroup request received", "group_id", groupID)

	if err := requireGroupAdmin(ctx, s.store, groupID); err != nil {
		return nil, toConnectError(err)
	}
	if err := s.store.DeleteGroup(ctx, groupID); err != nil {
		s.logger.Error("DeleteGroup failed", "group_id", groupID, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("Group deleted", "group_id", groupID)
	return connect.NewResponse(&api.Empty{}), nil
}

// ValidateInviteCode reports whether a code names a group. It needs no identity.
func (s *GroupService) ValidateInviteCode(ctx context.Context, req *connect.Request[api.ValidateInviteCodeRequest]) (*connect.Response[api.ValidateInviteCodeResponse], error) {
	code := strings.TrimSpace(req.Msg.Code)
	if code == "" {
		return connect.NewResponse(&api.ValidateInviteCodeResponse{}), nil
	}

	group, err := s.store.GetGroupByInviteCode(ctx, code)
	if err != nil {
		return nil, toConnectError(err)
	}
	if group == nil {
		return connect.NewResponse(&api.ValidateInviteCodeResponse{}), nil
	}
	return connect.NewResponse(&api.ValidateInviteCodeResponse{Valid: true, GroupName: group.Name}), nil
}

// JoinGroup adds the caller to the group named by an invite code.
func (s *GroupService) JoinGroup(ctx context.Context, req *connect.Request[api.JoinGroupRequest]) (*connect.Response[api.JoinGroupResponse], error) {
	userID := middleware.GetUserID(ctx)
	code := strings.TrimSpace(req.Msg.InviteCode)
	s.logger.Info("JoinGroup request received", "user_id", userID, "invite_code", code)

	group, err := s.store.GetGroupByInviteCode(ctx, code)
	if err != nil {
		return nil, toConnectError(err)
	}
	if group == nil {
		return nil, toConnectError(fmt.Errorf("%q: %w", code, errInvalidInviteCode))
	}

	m, err := s.join(ctx, userID, group, models.RoleMember)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.JoinGroupResponse{Membership: m}), nil
}

// AddMember puts a user into a group. Requires group admin rights.
func (s *GroupService) AddMember(ctx context.Context, req *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error) {
	msg := req.Msg
	s.logger.Info("AddMember request received", "group_id", msg.GroupID, "user_id", msg.UserID, "role", msg.Role)

	role := models.RoleMember
	if msg.Role != "" {
		role = models.Role(strings.ToUpper(msg.Role))
	}
	if !role.Valid() {
		return nil, toConnectError(fmt.Errorf("%q: %w", msg.Role, errInvalidRole))
	}
	if err := requireGroupAdmin(ctx, s.store, msg.GroupID); err != nil {
		return nil, toConnectError(err)
	}

	user, err := s.store.GetUserByID(ctx, msg.UserID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if user == nil {
		return nil, toConnectError(fmt.Errorf("user %s: %w", msg.UserID, storage.ErrNotFound))
	}
	group, err := s.store.GetGroup(ctx, msg.GroupID)
	if err != nil {
		return nil, toConnectError(err)
	}

	m, err := s.join(ctx, user.ID, group, role)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.AddMemberResponse{Membership: m}), nil
}

// RemoveMember takes a user out of a group. Members may remove themselves; removing
// anyone else requires group admin rights.
func (s *GroupService) RemoveMember(ctx context.Context, req *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.Empty], error) {
	msg := req.Msg
	s.logger.Info("RemoveMember request received", "group_id", msg.GroupID, "user_id", msg.UserID)

	if msg.UserID != middleware.GetUserID(ctx) {
		if err := requireGroupAdmin(ctx, s.store, msg.GroupID); err != nil {
			return nil, toConnectError(err)
		}
	}
	if err := s.store.RemoveMembership(ctx, msg.UserID, msg.GroupID); err != nil {
		s.logger.Warn("RemoveMember failed", "group_id", msg.GroupID, "user_id", msg.UserID, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("Member removed", "group_id", msg.GroupID, "user_id", msg.UserID)
	return connect.NewResponse(&api.Empty{}), nil
}

// UpdateMemberRole promotes or demotes a member. Requires group admin rights.
func (s *GroupService) UpdateMemberRole(ctx context.Context, req *connect.Request[api.UpdateMemberRoleRequest]) (*connect.Response[api.UpdateMemberRoleResponse], error) {
	msg := req.Msg
	role := models.Role(strings.ToUpper(msg.Role))
	s.logger.Info("UpdateMemberRole request received", "group_id", msg.GroupID, "user_id", msg.UserID, "role", role)

	if !role.Valid() {
		return nil, toConnectError(fmt.Errorf("%q: %w", msg.Role, errInvalidRole))
	}
	if err := requireGroupAdmin(ctx, s.store, msg.GroupID); err != nil {
		return nil, toConnectError(err)
	}
	if err := s.store.UpdateMembershipRole(ctx, msg.UserID, msg.GroupID, role); err != nil {
		return nil, toConnectError(err)
	}

	m, err := s.store.GetMembership(ctx, msg.UserID, msg.GroupID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if m == nil {
		return nil, toConnectError(fmt.Errorf("membership %s/%s: %w", msg.UserID, msg.GroupID, storage.ErrNotFound))
	}
	out := toAPIMembership(*m)
	return connect.NewResponse(&api.UpdateMemberRoleResponse{Membership: &out}), nil
}

// SetSystemAdmin grants or revokes system admin. System admins only.
func (s *GroupService) SetSystemAdmin(ctx context.Context, req *connect.Request[api.SetSystemAdminRequest]) (*connect.Response[api.SetSystemAdminResponse], error) {
	msg := req.Msg
	s.logger.Info("SetSystemAdmin request received", "user_id", msg.UserID, "is_admin", msg.IsAdmin)

	if err := requireAdmin(ctx); err != nil {
		return nil, toConnectError(err)
	}
	if err := s.store.SetUserAdmin(ctx, msg.UserID, msg.IsAdmin); err != nil {
		return nil, toConnectError(err)
	}

	user, err := s.store.GetUserByID(ctx, msg.UserID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if user == nil {
		return nil, toConnectError(fmt.Errorf("user %s: %w", msg.UserID, storage.ErrNotFound))
	}
	memberships, err := s.store.ListMembershipsForUser(ctx, user.ID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.SetSystemAdminResponse{User: toAPIUser(user, memberships)}), nil
}

// ListUsers returns every user to system admins. Everyone else sees the people they
// share a group with, or only themselves when they have no group.
func (s *GroupService) ListUsers(ctx context.Context, req *connect.Request[api.Empty]) (*connect.Response[api.ListUsersResponse], error) {
	userID := middleware.GetUserID(ctx)

	var (
		users []*models.User
		err   error
	)
	if middleware.IsAdmin(ctx) {
		users, err = s.store.ListUsers(ctx)
	} else {
		users, err = s.store.ListCoMembers(ctx, userID)
		if err == nil && len(users) == 0 {
			var self *models.User
			self, err = s.store.GetUserByID(ctx, userID)
			if self != nil {
				users = []*models.User{self}
			}
		}
	}
	if err != nil {
		s.logger.Error("ListUsers failed", "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*api.User, 0, len(users))
	for _, user := range users {
		memberships, err := s.store.ListMembershipsForUser(ctx, user.ID)
		if err != nil {
			return nil, toConnectError(err)
		}
		out = append(out, toAPIUser(user, memberships))
	}

	s.logger.Info("ListUsers successful", "count", len(out))
	return connect.NewResponse(&api.ListUsersResponse{Users: out}), nil
}

// DeleteUser removes an account and everything it owns. System admins only, and never
// their own account.
func (s *GroupService) DeleteUser(ctx context.Context, req *connect.Request[api.DeleteUserRequest]) (*connect.Response[api.Empty], error) {
	target := req.Msg.UserID
	s.logger.Info("DeleteUser request received", "user_id", target)

	if err := requireAdmin(ctx); err != nil {
		return nil, toConnectError(err)
	}
	if target == middleware.GetUserID(ctx) {
		return nil, connect.NewError(connect.CodeFailedPrecondition, errors.New("cannot delete your own account"))
	}
	if err := s.store.DeleteUser(ctx, target); err != nil {
		return nil, toConnectError(err)
	}

	s.logger.Info("User deleted", "user_id", target)
	return connect.NewResponse(&api.Empty{}), nil
}

// ResetPassword sets a new password for any user. System admins only.
func (s *GroupService) ResetPassword(ctx context.Context, req *connect.Request[api.ResetPasswordRequest]) (*connect.Response[api.Empty], error) {
	target := req.Msg.UserID
	s.logger.Info("ResetPassword request received", "user_id", target)

	if err := requireAdmin(ctx); err != nil {
		return nil, toConnectError(err)
	}
	if err := s.authenticator.ChangeCredential(ctx, target, req.Msg.NewPassword); err != nil {
		return nil, toConnectError(err)
	}

	s.logger.Info("Password reset", "user_id", target)
	return connect.NewResponse(&api.Empty{}), nil
}

// join adds the membership and announces it to the new member's co-members.
func (s *GroupService) join(ctx context.Context, userID string, group *models.Group, role models.Role) (*api.Membership, error) {
	m := &models.Membership{UserID: userID, GroupID: group.ID, Role: role, GroupName: group.Name}
	if err := s.store.AddMembership(ctx, m); err != nil {
		s.logger.Warn("Failed to add membership", "group_id", group.ID, "user_id", userID, "error", err)
		return nil, err
	}

	s.publisher.Broadcast(feed.Event{
		ActorID:   userID,
		Payload:   models.MemberJoinedPayload{GroupID: group.ID, GroupName: group.Name},
		RelatedID: group.ID,
	})

	s.logger.Info("Member joined", "group_id", group.ID, "user_id", userID, "role", role)
	out := toAPIMembership(*m)
	return &out, nil
}

func hasMember(group *models.Group, userID string) bool {
	for _, m := range group.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}
