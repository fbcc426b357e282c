package service

import (
	"context"
	"strings"
	"testing"

	"connectrpc.com/connect"

	"github.com/NJCA88/SneakyElves/internal/models"
	"github.com/NJCA88/SneakyElves/pkg/api"
)

func TestCreateGroup(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	alice := env.signup(t, "Alice", "")

	resp, err := env.groups.CreateGroup(ctx, as(alice.ID, &api.CreateGroupRequest{Name: "  Book Club "}))
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	group := resp.Msg.Group
	if group.ID == "" {
		t.Error("expected non-empty group ID")
	}
	if group.Name != "Book Club" {
		t.Errorf("name = %q, want Book Club", group.Name)
	}
	if len(group.InviteCode) != inviteCodeLength || strings.ToUpper(group.InviteCode) != group.InviteCode {
		t.Errorf("invite code %q is not %d upper-case characters", group.InviteCode, inviteCodeLength)
	}
	if group.MemberCount != 1 {
		t.Errorf("member count = %d, want 1", group.MemberCount)
	}

	got, err := env.groups.GetGroup(ctx, as(alice.ID, &api.GetGroupRequest{GroupID: group.ID}))
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	if len(got.Msg.Group.Members) != 1 {
		t.Fatalf("members = %d, want 1", len(got.Msg.Group.Members))
	}
	if m := got.Msg.Group.Members[0]; m.UserID != alice.ID || m.Role != string(models.RoleAdmin) {
		t.Errorf("member = %+v, want Alice as ADMIN", m)
	}

	_, err = env.groups.CreateGroup(ctx, as(alice.ID, &api.CreateGroupRequest{Name: " "}))
	assertCode(t, err, connect.CodeInvalidArgument)
}

func TestGetGroup_Access(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	alice := env.signup(t, "Alice", "")
	bob := env.signup(t, "Bob", "")
	groupID := alice.Memberships[0].GroupID

	_, err := env.groups.GetGroup(ctx, as(bob.ID, &api.GetGroupRequest{GroupID: groupID}))
	assertCode(t, err, connect.CodePermissionDenied)

	_, err = env.groups.GetGroup(ctx, as(alice.ID, &api.GetGroupRequest{GroupID: "missing"}))
	assertCode(t, err, connect.CodeNotFound)

	env.makeAdmin(t, bob.ID)
	if _, err := env.groups.GetGroup(ctx, as(bob.ID, &api.GetGroupRequest{GroupID: groupID})); err != nil {
		t.Errorf("system admin GetGroup failed: %v", err)
	}
}

func TestListGroups(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	alice := env.signup(t, "Alice", "")
	bob := env.signup(t, "Bob", "")

	resp, err := env.groups.ListGroups(ctx, as(bob.ID, &api.Empty{}))
	if err != nil {
		t.Fatalf("ListGroups failed: %v", err)
	}
	if len(resp.Msg.Groups) != 1 || resp.Msg.Groups[0].Name != "Bob's Group" {
		t.Errorf("Bob sees %+v, want only Bob's Group", resp.Msg.Groups)
	}

	env.makeAdmin(t, alice.ID)
	resp, err = env.groups.ListGroups(ctx, as(alice.ID, &api.Empty{}))
	if err != nil {
		t.Fatalf("ListGroups failed: %v", err)
	}
	if len(resp.Msg.Groups) != 2 {
		t.Errorf("admin sees %d groups, want 2", len(resp.Msg.Groups))
	}
}

func TestValidateInviteCode(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	_, _, code := env.family(t, "Alice")

	tests := []struct {
		name      string
		code      string
		wantValid bool
	}{
		{"exact", code, true},
		{"lower case", strings.ToLower(code), true},
		{"unknown", "ZZZZZZ", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := env.groups.ValidateInviteCode(ctx, as("", &api.ValidateInviteCodeRequest{Code: tt.code}))
			if err != nil {
				t.Fatalf("ValidateInviteCode failed: %v", err)
			}
			if resp.Msg.Valid != tt.wantValid {
				t.Errorf("valid = %v, want %v", resp.Msg.Valid, tt.wantValid)
			}
			if tt.wantValid && resp.Msg.GroupName != "Alice's Group" {
				t.Errorf("group name = %q", resp.Msg.GroupName)
			}
		})
	}
}

func TestJoinGroup(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	alice, _, code := env.family(t, "Alice")
	bob := env.signup(t, "Bob", "")

	resp, err := env.groups.JoinGroup(ctx, as(bob.ID, &api.JoinGroupRequest{InviteCode: code}))
	if err != nil {
		t.Fatalf("JoinGroup failed: %v", err)
	}
	if resp.Msg.Membership.GroupID != alice.Memberships[0].GroupID || resp.Msg.Membership.Role != string(models.RoleMember) {
		t.Errorf("membership = %+v", resp.Msg.Membership)
	}

	_, err = env.groups.JoinGroup(ctx, as(bob.ID, &api.JoinGroupRequest{InviteCode: code}))
	assertCode(t, err, connect.CodeAlreadyExists)

	_, err = env.groups.JoinGroup(ctx, as(bob.ID, &api.JoinGroupRequest{InviteCode: "NOPE99"}))
	assertCode(t, err, connect.CodeInvalidArgument)
}

func TestMemberManagement(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	alice, others, _ := env.family(t, "Alice", "Bob")
	bob := others[0]
	carol := env.signup(t, "Carol", "")
	groupID := alice.Memberships[0].GroupID

	t.Run("member cannot add", func(t *testing.T) {
		_, err := env.groups.AddMember(ctx, as(bob.ID, &api.AddMemberRequest{GroupID: groupID, UserID: carol.ID}))
		assertCode(t, err, connect.CodePermissionDenied)
	})

	t.Run("invalid role", func(t *testing.T) {
		_, err := env.groups.AddMember(ctx, as(alice.ID, &api.AddMemberRequest{GroupID: groupID, UserID: carol.ID, Role: "owner"}))
		assertCode(t, err, connect.CodeInvalidArgument)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := env.groups.AddMember(ctx, as(alice.ID, &api.AddMemberRequest{GroupID: groupID, UserID: "ghost"}))
		assertCode(t, err, connect.CodeNotFound)
	})

	t.Run("group admin adds", func(t *testing.T) {
		resp, err := env.groups.AddMember(ctx, as(alice.ID, &api.AddMemberRequest{GroupID: groupID, UserID: carol.ID, Role: "admin"}))
		if err != nil {
			t.Fatalf("AddMember failed: %v", err)
		}
		if resp.Msg.Membership.Role != string(models.RoleAdmin) {
			t.Errorf("role = %q, want ADMIN", resp.Msg.Membership.Role)
		}
	})

	t.Run("update role", func(t *testing.T) {
		_, err := env.groups.UpdateMemberRole(ctx, as(bob.ID, &api.UpdateMemberRoleRequest{GroupID: groupID, UserID: bob.ID, Role: "ADMIN"}))
		assertCode(t, err, connect.CodePermissionDenied)

		resp, err := env.groups.UpdateMemberRole(ctx, as(carol.ID, &api.UpdateMemberRoleRequest{GroupID: groupID, UserID: bob.ID, Role: "admin"}))
		if err != nil {
			t.Fatalf("UpdateMemberRole failed: %v", err)
		}
		if resp.Msg.Membership.Role != string(models.RoleAdmin) {
			t.Errorf("role = %q, want ADMIN", resp.Msg.Membership.Role)
		}
	})

	t.Run("remove", func(t *testing.T) {
		_, err := env.groups.RemoveMember(ctx, as(env.signup(t, "Dave", "").ID, &api.RemoveMemberRequest{GroupID: groupID, UserID: carol.ID}))
		assertCode(t, err, connect.CodePermissionDenied)

		if _, err := env.groups.RemoveMember(ctx, as(carol.ID, &api.RemoveMemberRequest{GroupID: groupID, UserID: carol.ID})); err != nil {
			t.Fatalf("self removal failed: %v", err)
		}
		_, err = env.groups.RemoveMember(ctx, as(alice.ID, &api.RemoveMemberRequest{GroupID: groupID, UserID: carol.ID}))
		assertCode(t, err, connect.CodeNotFound)
	})
}

func TestDeleteGroup(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	alice, others, _ := env.family(t, "Alice", "Bob")
	groupID := alice.Memberships[0].GroupID

	_, err := env.groups.DeleteGroup(ctx, as(others[0].ID, &api.DeleteGroupRequest{GroupID: groupID}))
	assertCode(t, err, connect.CodePermissionDenied)

	if _, err := env.groups.DeleteGroup(ctx, as(alice.ID, &api.DeleteGroupRequest{GroupID: groupID})); err != nil {
		t.Fatalf("DeleteGroup failed: %v", err)
	}
	_, err = env.groups.GetGroup(ctx, as(alice.ID, &api.GetGroupRequest{GroupID: groupID}))
	assertCode(t, err, connect.CodeNotFound)
}

func TestListUsers(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	alice, others, _ := env.family(t, "Alice", "Bob")
	carol := env.signup(t, "Carol", "")

	resp, err := env.groups.ListUsers(ctx, as(others[0].ID, &api.Empty{}))
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	names := map[string]bool{}
	for _, u := range resp.Msg.Users {
		names[u.Name] = true
	}
	if len(names) != 2 || !names["Alice"] || !names["Bob"] {
		t.Errorf("Bob sees %v, want Alice and Bob", names)
	}

	// Without any group a user only sees themselves.
	if _, err := env.groups.RemoveMember(ctx, as(carol.ID, &api.RemoveMemberRequest{GroupID: carol.Memberships[0].GroupID, UserID: carol.ID})); err != nil {
		t.Fatalf("RemoveMember failed: %v", err)
	}
	resp, err = env.groups.ListUsers(ctx, as(carol.ID, &api.Empty{}))
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if len(resp.Msg.Users) != 1 || resp.Msg.Users[0].ID != carol.ID {
		t.Errorf("Carol sees %d users, want only herself", len(resp.Msg.Users))
	}

	env.makeAdmin(t, alice.ID)
	resp, err = env.groups.ListUsers(ctx, as(alice.ID, &api.Empty{}))
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if len(resp.Msg.Users) != 3 {
		t.Errorf("admin sees %d users, want 3", len(resp.Msg.Users))
	}
}

func TestAdministration(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	alice := env.signup(t, "Alice", "")
	bob := env.signup(t, "Bob", "")

	_, err := env.groups.SetSystemAdmin(ctx, as(bob.ID, &api.SetSystemAdminRequest{UserID: bob.ID, IsAdmin: true}))
	assertCode(t, err, connect.CodePermissionDenied)
	_, err = env.groups.ResetPassword(ctx, as(bob.ID, &api.ResetPasswordRequest{UserID: alice.ID, NewPassword: "hijacked!"}))
	assertCode(t, err, connect.CodePermissionDenied)
	_, err = env.groups.DeleteUser(ctx, as(bob.ID, &api.DeleteUserRequest{UserID: alice.ID}))
	assertCode(t, err, connect.CodePermissionDenied)

	env.makeAdmin(t, alice.ID)

	resp, err := env.groups.SetSystemAdmin(ctx, as(alice.ID, &api.SetSystemAdminRequest{UserID: bob.ID, IsAdmin: true}))
	if err != nil {
		t.Fatalf("SetSystemAdmin failed: %v", err)
	}
	if !resp.Msg.User.IsAdmin {
		t.Error("Bob should be a system admin")
	}

	if _, err := env.groups.ResetPassword(ctx, as(alice.ID, &api.ResetPasswordRequest{UserID: bob.ID, NewPassword: "reset-password"})); err != nil {
		t.Fatalf("ResetPassword failed: %v", err)
	}
	if _, err := env.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{Email: "bob@example.com", Password: "reset-password"})); err != nil {
		t.Errorf("login after reset failed: %v", err)
	}

	_, err = env.groups.DeleteUser(ctx, as(alice.ID, &api.DeleteUserRequest{UserID: alice.ID}))
	assertCode(t, err, connect.CodeFailedPrecondition)

	if _, err := env.groups.DeleteUser(ctx, as(alice.ID, &api.DeleteUserRequest{UserID: bob.ID})); err != nil {
		t.Fatalf("DeleteUser failed: %v", err)
	}
	_, err = env.auth.GetCurrentUser(ctx, as(bob.ID, &api.Empty{}))
	assertCode(t, err, connect.CodeUnauthenticated)
}
