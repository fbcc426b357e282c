package service

import (
	"context"
	"encoding/json"
	"testing"

	"connectrpc.com/connect"

	"github.com/NJCA88/SneakyElves/internal/models"
	"github.com/NJCA88/SneakyElves/pkg/api"
)

func TestCreateWishlist_Idempotent(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	alice := env.signup(t, "Alice", "")
	existing := env.wishlistOf(t, alice.ID)

	resp, err := env.wishlists.CreateWishlist(ctx, as(alice.ID, &api.CreateWishlistRequest{Title: "Another"}))
	if err != nil {
		t.Fatalf("CreateWishlist failed: %v", err)
	}
	if resp.Msg.Wishlist.ID != existing.ID {
		t.Errorf("got wishlist %s, want existing %s", resp.Msg.Wishlist.ID, existing.ID)
	}
}

func TestGetWishlist_Access(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	alice, others, _ := env.family(t, "Alice", "Bob")
	w := env.wishlistOf(t, alice.ID)

	share, err := env.wishlists.ShareWishlist(ctx, as(alice.ID, &api.ShareWishlistRequest{WishlistID: w.ID}))
	if err != nil {
		t.Fatalf("ShareWishlist failed: %v", err)
	}
	again, err := env.wishlists.ShareWishlist(ctx, as(alice.ID, &api.ShareWishlistRequest{WishlistID: w.ID}))
	if err != nil {
		t.Fatalf("ShareWishlist failed: %v", err)
	}
	if again.Msg.ShareToken != share.Msg.ShareToken {
		t.Error("share token should be stable once created")
	}

	tests := []struct {
		name      string
		caller    string
		token     string
		wantCode  connect.Code
		wantOwner bool
	}{
		{name: "owner", caller: alice.ID, wantOwner: true},
		{name: "co-member", caller: others[0].ID},
		{name: "share token", token: share.Msg.ShareToken},
		{name: "anonymous", wantCode: connect.CodeUnauthenticated},
		{name: "bad token", token: "bogus", wantCode: connect.CodePermissionDenied},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := env.wishlists.GetWishlist(ctx, as(tt.caller, &api.GetWishlistRequest{WishlistID: w.ID, ShareToken: tt.token}))
			if tt.wantCode != 0 {
				assertCode(t, err, tt.wantCode)
				return
			}
			if err != nil {
				t.Fatalf("GetWishlist failed: %v", err)
			}
			if resp.Msg.IsOwner != tt.wantOwner {
				t.Errorf("isOwner = %v, want %v", resp.Msg.IsOwner, tt.wantOwner)
			}
			if hasToken := resp.Msg.Wishlist.ShareToken != ""; hasToken != tt.wantOwner {
				t.Errorf("share token visible = %v, want %v", hasToken, tt.wantOwner)
			}
		})
	}

	_, err = env.wishlists.ShareWishlist(ctx, as(others[0].ID, &api.ShareWishlistRequest{WishlistID: w.ID}))
	assertCode(t, err, connect.CodePermissionDenied)
}

func TestListWishlists(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	alice, others, _ := env.family(t, "Alice", "Bob")
	carol := env.signup(t, "Carol", "")

	resp, err := env.wishlists.ListWishlists(ctx, as(others[0].ID, &api.Empty{}))
	if err != nil {
		t.Fatalf("ListWishlists failed: %v", err)
	}
	if len(resp.Msg.Wishlists) != 2 {
		t.Errorf("Bob sees %d wishlists, want 2", len(resp.Msg.Wishlists))
	}

	resp, err = env.wishlists.ListWishlists(ctx, as(carol.ID, &api.Empty{}))
	if err != nil {
		t.Fatalf("ListWishlists failed: %v", err)
	}
	if len(resp.Msg.Wishlists) != 1 || resp.Msg.Wishlists[0].Owner.ID != carol.ID {
		t.Errorf("Carol should only see her own wishlist")
	}

	env.makeAdmin(t, alice.ID)
	resp, err = env.wishlists.ListWishlists(ctx, as(alice.ID, &api.Empty{}))
	if err != nil {
		t.Fatalf("ListWishlists failed: %v", err)
	}
	if len(resp.Msg.Wishlists) != 3 {
		t.Errorf("admin sees %d wishlists, want 3", len(resp.Msg.Wishlists))
	}
}

func TestUpdateAndDeleteWishlist(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	alice, others, _ := env.family(t, "Alice", "Bob")
	w := env.wishlistOf(t, alice.ID)

	_, err := env.wishlists.UpdateWishlist(ctx, as(others[0].ID, &api.UpdateWishlistRequest{WishlistID: w.ID, Title: "Mine now"}))
	assertCode(t, err, connect.CodePermissionDenied)

	_, err = env.wishlists.UpdateWishlist(ctx, as(alice.ID, &api.UpdateWishlistRequest{WishlistID: w.ID}))
	assertCode(t, err, connect.CodeInvalidArgument)

	resp, err := env.wishlists.UpdateWishlist(ctx, as(alice.ID, &api.UpdateWishlistRequest{
		WishlistID:          w.ID,
		Title:               "Alice's Birthday",
		GeneralInstructions: "Size M, no wool",
	}))
	if err != nil {
		t.Fatalf("UpdateWishlist failed: %v", err)
	}
	if resp.Msg.Wishlist.Title != "Alice's Birthday" || resp.Msg.Wishlist.GeneralInstructions != "Size M, no wool" {
		t.Errorf("wishlist = %+v", resp.Msg.Wishlist)
	}

	_, err = env.wishlists.DeleteWishlist(ctx, as(others[0].ID, &api.DeleteWishlistRequest{WishlistID: w.ID}))
	assertCode(t, err, connect.CodePermissionDenied)
	if _, err := env.wishlists.DeleteWishlist(ctx, as(alice.ID, &api.DeleteWishlistRequest{WishlistID: w.ID})); err != nil {
		t.Fatalf("DeleteWishlist failed: %v", err)
	}
	_, err = env.wishlists.GetWishlist(ctx, as(alice.ID, &api.GetWishlistRequest{WishlistID: w.ID}))
	assertCode(t, err, connect.CodeNotFound)
}

func TestItems(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	alice, others, _ := env.family(t, "Alice", "Bob")
	bob := others[0]
	w := env.wishlistOf(t, alice.ID)

	price := 24.5
	var ids []string
	for _, name := range []string{"Scarf", "Kettle", "Novel"} {
		resp, err := env.wishlists.AddItem(ctx, as(alice.ID, &api.AddItemRequest{WishlistID: w.ID, Name: name, Price: &price}))
		if err != nil {
			t.Fatalf("AddItem(%s) failed: %v", name, err)
		}
		ids = append(ids, resp.Msg.Item.ID)
	}

	_, err := env.wishlists.AddItem(ctx, as(bob.ID, &api.AddItemRequest{WishlistID: w.ID, Name: "Sneaky"}))
	assertCode(t, err, connect.CodePermissionDenied)
	_, err = env.wishlists.AddItem(ctx, as(alice.ID, &api.AddItemRequest{WishlistID: w.ID, Name: "  "}))
	assertCode(t, err, connect.CodeInvalidArgument)

	// Bob hears about every new item.
	feedResp, err := env.feed.GetFeed(ctx, as(bob.ID, &api.GetFeedRequest{}))
	if err != nil {
		t.Fatalf("GetFeed failed: %v", err)
	}
	added := 0
	for _, item := range feedResp.Msg.Items {
		if item.Type == string(models.EventItemAdded) {
			added++
		}
	}
	if added != 3 {
		t.Errorf("ITEM_ADDED entries = %d, want 3", added)
	}

	updated, err := env.wishlists.UpdateItem(ctx, as(alice.ID, &api.UpdateItemRequest{ItemID: ids[0], Name: "Wool Scarf", Note: "green"}))
	if err != nil {
		t.Fatalf("UpdateItem failed: %v", err)
	}
	if updated.Msg.Item.Name != "Wool Scarf" || updated.Msg.Item.Note != "green" || updated.Msg.Item.Price != nil {
		t.Errorf("updated item = %+v", updated.Msg.Item)
	}

	_, err = env.wishlists.ReorderItems(ctx, as(alice.ID, &api.ReorderItemsRequest{WishlistID: w.ID, ItemIDs: []string{ids[0], ids[0]}}))
	assertCode(t, err, connect.CodeInvalidArgument)

	order := []string{ids[2], ids[0], ids[1]}
	if _, err := env.wishlists.ReorderItems(ctx, as(alice.ID, &api.ReorderItemsRequest{WishlistID: w.ID, ItemIDs: order})); err != nil {
		t.Fatalf("ReorderItems failed: %v", err)
	}
	got, err := env.wishlists.GetWishlist(ctx, as(bob.ID, &api.GetWishlistRequest{WishlistID: w.ID}))
	if err != nil {
		t.Fatalf("GetWishlist failed: %v", err)
	}
	if len(got.Msg.Wishlist.Items) != 3 {
		t.Fatalf("items = %d, want 3", len(got.Msg.Wishlist.Items))
	}
	for i, item := range got.Msg.Wishlist.Items {
		if item.ID != order[i] {
			t.Errorf("position %d = %s, want %s", i, item.ID, order[i])
		}
	}

	_, err = env.wishlists.DeleteItem(ctx, as(bob.ID, &api.DeleteItemRequest{ItemID: ids[1]}))
	assertCode(t, err, connect.CodePermissionDenied)
	if _, err := env.wishlists.DeleteItem(ctx, as(alice.ID, &api.DeleteItemRequest{ItemID: ids[1]})); err != nil {
		t.Fatalf("DeleteItem failed: %v", err)
	}
	_, err = env.wishlists.DeleteItem(ctx, as(alice.ID, &api.DeleteItemRequest{ItemID: ids[1]}))
	assertCode(t, err, connect.CodeNotFound)
}

func TestCreateInvite_RequiresOwnerMembership(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	alice := env.signup(t, "Alice", "")
	bob := env.signup(t, "Bob", "")
	w := env.wishlistOf(t, alice.ID)

	_, err := env.wishlists.CreateInvite(ctx, as(alice.ID, &api.CreateInviteRequest{WishlistID: w.ID, GroupIDs: []string{bob.Memberships[0].GroupID}}))
	assertCode(t, err, connect.CodePermissionDenied)

	_, err = env.wishlists.CreateInvite(ctx, as(bob.ID, &api.CreateInviteRequest{WishlistID: w.ID}))
	assertCode(t, err, connect.CodePermissionDenied)
}

func purchasedFeedEntries(t *testing.T, env *testEnv, userID, itemID string) []api.FeedItem {
	t.Helper()
	resp, err := env.feed.GetFeed(context.Background(), as(userID, &api.GetFeedRequest{Limit: 100}))
	if err != nil {
		t.Fatalf("GetFeed failed: %v", err)
	}
	var out []api.FeedItem
	for _, item := range resp.Msg.Items {
		if item.Type == string(models.EventPurchased) && item.RelatedID == itemID {
			out = append(out, item)
		}
	}
	return out
}

// Bob buys Alice's item: Carol sees it in her feed, Alice never learns.
func TestSetPurchased_EndToEnd(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	alice, others, _ := env.family(t, "Alice", "Bob", "Carol")
	bob, carol := others[0], others[1]
	w := env.wishlistOf(t, alice.ID)

	added, err := env.wishlists.AddItem(ctx, as(alice.ID, &api.AddItemRequest{WishlistID: w.ID, Name: "Telescope"}))
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	itemID := added.Msg.Item.ID

	resp, err := env.wishlists.SetPurchased(ctx, as(bob.ID, &api.SetPurchasedRequest{ItemID: itemID, Purchased: true}))
	if err != nil {
		t.Fatalf("SetPurchased failed: %v", err)
	}
	if !resp.Msg.Item.Purchased {
		t.Error("buyer should see the item as purchased")
	}

	entries := purchasedFeedEntries(t, env, carol.ID, itemID)
	if len(entries) != 1 {
		t.Fatalf("Carol sees %d PURCHASED entries, want 1", len(entries))
	}
	if entries[0].Actor == nil || entries[0].Actor.ID != bob.ID {
		t.Errorf("actor = %+v, want Bob", entries[0].Actor)
	}
	var payload models.PurchasedPayload
	if err := json.Unmarshal(entries[0].Data, &payload); err != nil {
		t.Fatalf("bad payload: %v", err)
	}
	if payload.ItemName != "Telescope" || payload.WishlistID != w.ID {
		t.Errorf("payload = %+v", payload)
	}

	if n := len(purchasedFeedEntries(t, env, alice.ID, itemID)); n != 0 {
		t.Errorf("owner sees %d PURCHASED entries, want 0", n)
	}
	if n := len(purchasedFeedEntries(t, env, bob.ID, itemID)); n != 0 {
		t.Errorf("buyer sees %d PURCHASED entries, want 0", n)
	}

	ownerView, err := env.wishlists.GetWishlist(ctx, as(alice.ID, &api.GetWishlistRequest{WishlistID: w.ID}))
	if err != nil {
		t.Fatalf("GetWishlist failed: %v", err)
	}
	if ownerView.Msg.Wishlist.Items[0].Purchased {
		t.Error("owner must not see the purchase")
	}
	memberView, err := env.wishlists.GetWishlist(ctx, as(carol.ID, &api.GetWishlistRequest{WishlistID: w.ID}))
	if err != nil {
		t.Fatalf("GetWishlist failed: %v", err)
	}
	if !memberView.Msg.Wishlist.Items[0].Purchased {
		t.Error("co-members should see the purchase")
	}

	if _, err := env.wishlists.SetPurchased(ctx, as(bob.ID, &api.SetPurchasedRequest{ItemID: itemID})); err != nil {
		t.Fatalf("SetPurchased(false) failed: %v", err)
	}
	if n := len(purchasedFeedEntries(t, env, carol.ID, itemID)); n != 0 {
		t.Errorf("Carol still sees %d PURCHASED entries after unpurchase", n)
	}

	_, err = env.wishlists.SetPurchased(ctx, as(bob.ID, &api.SetPurchasedRequest{ItemID: "missing", Purchased: true}))
	assertCode(t, err, connect.CodeNotFound)
}

func TestSetPurchased_OwnerResponseHidesState(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	alice := env.signup(t, "Alice", "")
	w := env.wishlistOf(t, alice.ID)

	added, err := env.wishlists.AddItem(ctx, as(alice.ID, &api.AddItemRequest{WishlistID: w.ID, Name: "Kite"}))
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	resp, err := env.wishlists.SetPurchased(ctx, as(alice.ID, &api.SetPurchasedRequest{ItemID: added.Msg.Item.ID, Purchased: true}))
	if err != nil {
		t.Fatalf("SetPurchased failed: %v", err)
	}
	if resp.Msg.Item.Purchased {
		t.Error("owner response must report the item as available")
	}
}
