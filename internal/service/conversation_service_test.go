package service

import (
	"context"
	"strings"
	"testing"

	"connectrpc.com/connect"

	"github.com/NJCA88/SneakyElves/internal/models"
	"github.com/NJCA88/SneakyElves/pkg/api"
)

type conversationFixture struct {
	env      *testEnv
	owner    *api.User
	asker    *api.User
	other    *api.User
	wishlist string
	item     string
}

func newConversationFixture(t *testing.T) *conversationFixture {
	t.Helper()
	env := setupTestServer(t)
	owner, others, _ := env.family(t, "Alice", "Bob", "Carol")
	w := env.wishlistOf(t, owner.ID)

	added, err := env.wishlists.AddItem(context.Background(), as(owner.ID, &api.AddItemRequest{WishlistID: w.ID, Name: "Bicycle"}))
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	return &conversationFixture{env: env, owner: owner, asker: others[0], other: others[1], wishlist: w.ID, item: added.Msg.Item.ID}
}

func (f *conversationFixture) notifications(t *testing.T, userID string) *api.ListNotificationsResponse {
	t.Helper()
	resp, err := f.env.notifications.ListNotifications(context.Background(), as(userID, &api.Empty{}))
	if err != nil {
		t.Fatalf("ListNotifications failed: %v", err)
	}
	return resp.Msg
}

func TestStartConversation(t *testing.T) {
	f := newConversationFixture(t)
	ctx := context.Background()

	resp, err := f.env.conversations.StartConversation(ctx, as(f.asker.ID, &api.StartConversationRequest{
		WishlistID: f.wishlist,
		ItemID:     f.item,
		Body:       "Which size?",
	}))
	if err != nil {
		t.Fatalf("StartConversation failed: %v", err)
	}
	c := resp.Msg.Conversation
	if c.ItemName != "Bicycle" || !c.Mine {
		t.Errorf("conversation = %+v", c)
	}
	if len(c.Messages) != 1 || c.Messages[0].Body != "Which size?" || c.Messages[0].FromOwner {
		t.Errorf("messages = %+v", c.Messages)
	}

	n := f.notifications(t, f.owner.ID)
	if len(n.Notifications) != 1 || n.UnreadCount != 1 {
		t.Fatalf("owner notifications = %+v, want one unread", n)
	}
	got := n.Notifications[0]
	if got.Type != string(models.NotificationNewQuestion) {
		t.Errorf("type = %q, want NEW_QUESTION", got.Type)
	}
	if got.Message != "Someone asked a question about Bicycle." {
		t.Errorf("message = %q", got.Message)
	}
	if want := "/wishlists/" + f.wishlist + "?conversationId=" + c.ID; got.Link != want {
		t.Errorf("link = %q, want %q", got.Link, want)
	}
	if strings.Contains(got.Message, "Bob") {
		t.Error("notification reveals the asker")
	}

	if n := f.notifications(t, f.asker.ID); len(n.Notifications) != 0 {
		t.Errorf("asker got %d notifications, want 0", len(n.Notifications))
	}
}

func TestStartConversation_Errors(t *testing.T) {
	f := newConversationFixture(t)
	ctx := context.Background()

	stranger := f.env.signup(t, "Eve", "")
	strangerItem, err := f.env.wishlists.AddItem(ctx, as(stranger.ID, &api.AddItemRequest{WishlistID: f.env.wishlistOf(t, stranger.ID).ID, Name: "Hat"}))
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	tests := []struct {
		name   string
		caller string
		req    *api.StartConversationRequest
		want   connect.Code
	}{
		{"empty body", f.asker.ID, &api.StartConversationRequest{WishlistID: f.wishlist, Body: "  "}, connect.CodeInvalidArgument},
		{"own wishlist", f.owner.ID, &api.StartConversationRequest{WishlistID: f.wishlist, Body: "Hello?"}, connect.CodeFailedPrecondition},
		{"unknown wishlist", f.asker.ID, &api.StartConversationRequest{WishlistID: "missing", Body: "Hello?"}, connect.CodeNotFound},
		{"item from another list", f.asker.ID, &api.StartConversationRequest{WishlistID: f.wishlist, ItemID: strangerItem.Msg.Item.ID, Body: "Hello?"}, connect.CodeInvalidArgument},
		{"anonymous", "", &api.StartConversationRequest{WishlistID: f.wishlist, Body: "Hello?"}, connect.CodeUnauthenticated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.env.conversations.StartConversation(ctx, as(tt.caller, tt.req))
			assertCode(t, err, tt.want)
		})
	}
}

func TestConversationThread(t *testing.T) {
	f := newConversationFixture(t)
	ctx := context.Background()

	started, err := f.env.conversations.StartConversation(ctx, as(f.asker.ID, &api.StartConversationRequest{WishlistID: f.wishlist, Body: "Any colour preference?"}))
	if err != nil {
		t.Fatalf("StartConversation failed: %v", err)
	}
	convID := started.Msg.Conversation.ID

	n := f.notifications(t, f.owner.ID)
	if len(n.Notifications) != 1 || n.Notifications[0].Message != "Someone asked a question about your wishlist." {
		t.Fatalf("owner notifications = %+v", n.Notifications)
	}

	reply, err := f.env.conversations.PostMessage(ctx, as(f.owner.ID, &api.PostMessageRequest{ConversationID: convID, Body: "Blue, please"}))
	if err != nil {
		t.Fatalf("owner PostMessage failed: %v", err)
	}
	if !reply.Msg.Message.FromOwner || !reply.Msg.Message.Mine {
		t.Errorf("reply = %+v, want FromOwner and Mine", reply.Msg.Message)
	}

	asker := f.notifications(t, f.asker.ID)
	if len(asker.Notifications) != 1 || asker.Notifications[0].Type != string(models.NotificationNewReply) {
		t.Fatalf("asker notifications = %+v, want one NEW_REPLY", asker.Notifications)
	}
	if asker.Notifications[0].Message != "The wishlist owner replied to your question." {
		t.Errorf("message = %q", asker.Notifications[0].Message)
	}

	if _, err := f.env.conversations.PostMessage(ctx, as(f.asker.ID, &api.PostMessageRequest{ConversationID: convID, Body: "Thanks!"})); err != nil {
		t.Fatalf("asker PostMessage failed: %v", err)
	}
	n = f.notifications(t, f.owner.ID)
	if len(n.Notifications) != 2 || n.Notifications[0].Message != "Someone replied to their question." {
		t.Errorf("owner notifications = %+v, want the reply first", n.Notifications)
	}

	_, err = f.env.conversations.PostMessage(ctx, as(f.other.ID, &api.PostMessageRequest{ConversationID: convID, Body: "Me too"}))
	assertCode(t, err, connect.CodePermissionDenied)
	_, err = f.env.conversations.PostMessage(ctx, as(f.owner.ID, &api.PostMessageRequest{ConversationID: convID}))
	assertCode(t, err, connect.CodeInvalidArgument)

	got, err := f.env.conversations.GetConversation(ctx, as(f.owner.ID, &api.GetConversationRequest{ConversationID: convID}))
	if err != nil {
		t.Fatalf("GetConversation failed: %v", err)
	}
	msgs := got.Msg.Conversation.Messages
	if len(msgs) != 3 {
		t.Fatalf("messages = %d, want 3", len(msgs))
	}
	wantFromOwner := []bool{false, true, false}
	for i, m := range msgs {
		if m.FromOwner != wantFromOwner[i] {
			t.Errorf("message %d FromOwner = %v, want %v", i, m.FromOwner, wantFromOwner[i])
		}
	}
	if got.Msg.Conversation.Mine {
		t.Error("owner did not start the conversation")
	}

	_, err = f.env.conversations.GetConversation(ctx, as(f.other.ID, &api.GetConversationRequest{ConversationID: convID}))
	assertCode(t, err, connect.CodePermissionDenied)
	_, err = f.env.conversations.GetConversation(ctx, as(f.owner.ID, &api.GetConversationRequest{ConversationID: "missing"}))
	assertCode(t, err, connect.CodeNotFound)
}

func TestListConversations(t *testing.T) {
	f := newConversationFixture(t)
	ctx := context.Background()

	for _, u := range []*api.User{f.asker, f.other} {
		if _, err := f.env.conversations.StartConversation(ctx, as(u.ID, &api.StartConversationRequest{WishlistID: f.wishlist, Body: "Question from " + u.Name})); err != nil {
			t.Fatalf("StartConversation failed: %v", err)
		}
	}

	owner, err := f.env.conversations.ListConversations(ctx, as(f.owner.ID, &api.ListConversationsRequest{WishlistID: f.wishlist}))
	if err != nil {
		t.Fatalf("ListConversations failed: %v", err)
	}
	if len(owner.Msg.Conversations) != 2 {
		t.Errorf("owner sees %d conversations, want 2", len(owner.Msg.Conversations))
	}
	for _, c := range owner.Msg.Conversations {
		if c.LastMessage == nil {
			t.Errorf("conversation %s has no last message", c.ID)
		}
	}

	asker, err := f.env.conversations.ListConversations(ctx, as(f.asker.ID, &api.ListConversationsRequest{WishlistID: f.wishlist}))
	if err != nil {
		t.Fatalf("ListConversations failed: %v", err)
	}
	if len(asker.Msg.Conversations) != 1 || !asker.Msg.Conversations[0].Mine {
		t.Errorf("asker sees %+v, want only their own thread", asker.Msg.Conversations)
	}

	_, err = f.env.conversations.ListConversations(ctx, as(f.owner.ID, &api.ListConversationsRequest{WishlistID: "missing"}))
	assertCode(t, err, connect.CodeNotFound)
}
