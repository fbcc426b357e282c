package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"

	"github.com/NJCA88/SneakyElves/internal/models"
	"github.com/NJCA88/SneakyElves/pkg/api"
)

func TestGetFeed_Paging(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	alice, others, _ := env.family(t, "Alice", "Bob")
	bob := others[0]
	w := env.wishlistOf(t, alice.ID)

	for _, name := range []string{"One", "Two", "Three"} {
		if _, err := env.wishlists.AddItem(ctx, as(alice.ID, &api.AddItemRequest{WishlistID: w.ID, Name: name})); err != nil {
			t.Fatalf("AddItem failed: %v", err)
		}
	}

	all, err := env.feed.GetFeed(ctx, as(bob.ID, &api.GetFeedRequest{}))
	if err != nil {
		t.Fatalf("GetFeed failed: %v", err)
	}
	if len(all.Msg.Items) != 3 {
		t.Fatalf("feed items = %d, want 3", len(all.Msg.Items))
	}

	page, err := env.feed.GetFeed(ctx, as(bob.ID, &api.GetFeedRequest{Limit: 2, Offset: 1}))
	if err != nil {
		t.Fatalf("GetFeed failed: %v", err)
	}
	if len(page.Msg.Items) != 2 {
		t.Fatalf("page items = %d, want 2", len(page.Msg.Items))
	}
	if page.Msg.Items[0].ID != all.Msg.Items[1].ID {
		t.Error("offset page does not continue the full listing")
	}

	// The owner's own activity never lands in their feed.
	own, err := env.feed.GetFeed(ctx, as(alice.ID, &api.GetFeedRequest{}))
	if err != nil {
		t.Fatalf("GetFeed failed: %v", err)
	}
	for _, item := range own.Msg.Items {
		if item.Type == string(models.EventItemAdded) {
			t.Errorf("owner sees own ITEM_ADDED entry %s", item.ID)
		}
	}

	_, err = env.feed.GetFeed(ctx, as("", &api.GetFeedRequest{}))
	assertCode(t, err, connect.CodeUnauthenticated)
}

func TestRevokeFeedItems(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	alice, others, _ := env.family(t, "Alice", "Bob")
	bob := others[0]
	w := env.wishlistOf(t, alice.ID)

	added, err := env.wishlists.AddItem(ctx, as(alice.ID, &api.AddItemRequest{WishlistID: w.ID, Name: "Lamp"}))
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	itemID := added.Msg.Item.ID

	tests := []struct {
		name   string
		caller string
		req    *api.RevokeFeedItemsRequest
		want   connect.Code
	}{
		{"not admin", bob.ID, &api.RevokeFeedItemsRequest{Type: "ITEM_ADDED", RelatedID: itemID}, connect.CodePermissionDenied},
		{"unknown type", alice.ID, &api.RevokeFeedItemsRequest{Type: "LIKED", RelatedID: itemID}, connect.CodeInvalidArgument},
		{"missing related id", alice.ID, &api.RevokeFeedItemsRequest{Type: "ITEM_ADDED"}, connect.CodeInvalidArgument},
	}
	env.makeAdmin(t, alice.ID)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.feed.RevokeFeedItems(ctx, as(tt.caller, tt.req))
			assertCode(t, err, tt.want)
		})
	}

	resp, err := env.feed.RevokeFeedItems(ctx, as(alice.ID, &api.RevokeFeedItemsRequest{Type: "item_added", RelatedID: itemID}))
	if err != nil {
		t.Fatalf("RevokeFeedItems failed: %v", err)
	}
	if resp.Msg.Revoked != 1 {
		t.Errorf("revoked = %d, want 1", resp.Msg.Revoked)
	}

	feed, err := env.feed.GetFeed(ctx, as(bob.ID, &api.GetFeedRequest{}))
	if err != nil {
		t.Fatalf("GetFeed failed: %v", err)
	}
	for _, item := range feed.Msg.Items {
		if item.RelatedID == itemID {
			t.Errorf("revoked entry %s still in feed", item.ID)
		}
	}
}
