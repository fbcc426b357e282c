package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"connectrpc.com/connect"
	"github.com/google/uuid"

	"github.com/NJCA88/SneakyElves/internal/feed"
	"github.com/NJCA88/SneakyElves/internal/middleware"
	"github.com/NJCA88/SneakyElves/internal/models"
	"github.com/NJCA88/SneakyElves/internal/storage"
	"github.com/NJCA88/SneakyElves/pkg/api"
)

// PurchaseCoordinator applies purchase transitions and their feed side effects.
type PurchaseCoordinator interface {
	SetPurchased(ctx context.Context, itemID string, purchased bool, purchaserID string) (*models.Item, error)
}

// WishlistService implements the Connect WishlistService.
type WishlistService struct {
	store     storage.Store
	purchases PurchaseCoordinator
	publisher EventPublisher
	logger    *slog.Logger
}

// NewWishlistService creates a new WishlistService.
func NewWishlistService(store storage.Store, purchases PurchaseCoordinator, publisher EventPublisher, logger *slog.Logger) *WishlistService {
	return &WishlistService{store: store, purchases: purchases, publisher: publisher, logger: logger}
}

// Handler returns the mount path and HTTP handler for the service.
func (s *WishlistService) Handler(opts ...connect.HandlerOption) (string, http.Handler) {
	opts = api.HandlerOptions(opts...)
	mux := http.NewServeMux()
	mux.Handle(api.WishlistCreateWishlistProcedure, connect.NewUnaryHandler(api.WishlistCreateWishlistProcedure, s.CreateWishlist, opts...))
	mux.Handle(api.WishlistGetWishlistProcedure, connect.NewUnaryHandler(api.WishlistGetWishlistProcedure, s.GetWishlist, opts...))
	mux.Handle(api.WishlistListWishlistsProcedure, connect.NewUnaryHandler(api.WishlistListWishlistsProcedure, s.ListWishlists, opts...))
	mux.Handle(api.WishlistUpdateWishlistProcedure, connect.NewUnaryHandler(api.WishlistUpdateWishlistProcedure, s.UpdateWishlist, opts...))
	mux.Handle(api.WishlistDeleteWishlistProcedure, connect.NewUnaryHandler(api.WishlistDeleteWishlistProcedure, s.DeleteWishlist, opts...))
	mux.Handle(api.WishlistShareWishlistProcedure, connect.NewUnaryHandler(api.WishlistShareWishlistProcedure, s.ShareWishlist, opts...))
	mux.Handle(api.WishlistCreateInviteProcedure, connect.NewUnaryHandler(api.WishlistCreateInviteProcedure, s.CreateInvite, opts...))
	mux.Handle(api.WishlistAddItemProcedure, connect.NewUnaryHandler(api.WishlistAddItemProcedure, s.AddItem, opts...))
	mux.Handle(api.WishlistUpdateItemProcedure, connect.NewUnaryHandler(api.WishlistUpdateItemProcedure, s.UpdateItem, opts...))
	mux.Handle(api.WishlistDeleteItemProcedure, connect.NewUnaryHandler(api.WishlistDeleteItemProcedure, s.DeleteItem, opts...))
	mux.Handle(api.WishlistReorderItemsProcedure, connect.NewUnaryHandler(api.WishlistReorderItemsProcedure, s.ReorderItems, opts...))
	mux.Handle(api.WishlistSetPurchasedProcedure, connect.NewUnaryHandler(api.WishlistSetPurchasedProcedure, s.SetPurchased, opts...))
	return api.ServicePath(api.WishlistServiceName), mux
}

// CreateWishlist returns the caller's primary wishlist, creating it if needed.
func (s *WishlistService) CreateWishlist(ctx context.Context, req *connect.Request[api.CreateWishlistRequest]) (*connect.Response[api.CreateWishlistResponse], error) {
	userID := middleware.GetUserID(ctx)
	s.logger.Info("CreateWishlist request received", "user_id", userID)

	existing, err := s.store.GetWishlistByOwner(ctx, userID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if existing != nil {
		w, err := s.store.GetWishlist(ctx, existing.ID)
		if err != nil {
			return nil, toConnectError(err)
		}
		return connect.NewResponse(&api.CreateWishlistResponse{Wishlist: toAPIWishlist(w, true)}), nil
	}

	title := strings.TrimSpace(req.Msg.Title)
	if title == "" {
		user, err := s.store.GetUserByID(ctx, userID)
		if err != nil {
			return nil, toConnectError(err)
		}
		if user != nil {
			title = user.Name
		}
	}

	created := &models.Wishlist{UserID: userID, Title: title}
	if err := s.store.CreateWishlist(ctx, created); err != nil {
		s.logger.Error("CreateWishlist failed", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}
	w, err := s.store.GetWishlist(ctx, created.ID)
	if err != nil {
		return nil, toConnectError(err)
	}

	s.logger.Info("Wishlist created", "wishlist_id", w.ID, "user_id", userID)
	return connect.NewResponse(&api.CreateWishlistResponse{Wishlist: toAPIWishlist(w, true)}), nil
}

// GetWishlist returns a wishlist with its items. Identified callers may read any list;
// anonymous visitors need the wishlist's share token or an invite token for it.
// The owner never sees which items were purchased.
func (s *WishlistService) GetWishlist(ctx context.Context, req *connect.Request[api.GetWishlistRequest]) (*connect.Response[api.GetWishlistResponse], error) {
	msg := req.Msg
	userID := middleware.GetUserID(ctx)
	s.logger.Info("GetWishlist request received", "wishlist_id", msg.WishlistID, "user_id", userID, "has_token", msg.ShareToken != "")

	w, err := s.store.GetWishlist(ctx, msg.WishlistID)
	if err != nil {
		return nil, toConnectError(err)
	}

	if userID == "" {
		if msg.ShareToken == "" {
			return nil, toConnectError(middleware.ErrMissingIdentity)
		}
		ok, err := s.tokenGrantsAccess(ctx, w, msg.ShareToken)
		if err != nil {
			return nil, toConnectError(err)
		}
		if !ok {
			return nil, toConnectError(fmt.Errorf("token does not open wishlist %s: %w", w.ID, errPermissionDenied))
		}
	}

	isOwner := userID != "" && userID == w.UserID
	return connect.NewResponse(&api.GetWishlistResponse{Wishlist: toAPIWishlist(w, isOwner), IsOwner: isOwner}), nil
}

func (s *WishlistService) tokenGrantsAccess(ctx context.Context, w *models.Wishlist, token string) (bool, error) {
	if w.ShareToken != "" && token == w.ShareToken {
		return true, nil
	}
	invite, err := s.store.GetInvite(ctx, token)
	if err != nil {
		return false, err
	}
	return invite != nil && invite.WishlistID == w.ID, nil
}

// ListWishlists returns the wishlists visible to the caller: those of everyone sharing a
// group with them, or every list for system admins.
func (s *WishlistService) ListWishlists(ctx context.Context, req *connect.Request[api.Empty]) (*connect.Response[api.ListWishlistsResponse], error) {
	userID := middleware.GetUserID(ctx)

	var ownerIDs []string
	if !middleware.IsAdmin(ctx) {
		members, err := s.store.ListCoMembers(ctx, userID)
		if err != nil {
			return nil, toConnectError(err)
		}
		ownerIDs = []string{userID}
		for _, m := range members {
			if m.ID != userID {
				ownerIDs = append(ownerIDs, m.ID)
			}
		}
	}

	wishlists, err := s.store.ListWishlists(ctx, ownerIDs)
	if err != nil {
		s.logger.Error("ListWishlists failed", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*api.Wishlist, len(wishlists))
	for i, w := range wishlists {
		out[i] = toAPIWishlist(w, w.UserID == userID)
	}

	s.logger.Info("ListWishlists successful", "user_id", userID, "count", len(out))
	return connect.NewResponse(&api.ListWishlistsResponse{Wishlists: out}), nil
}

// UpdateWishlist changes the title and general instructions. Owner only.
func (s *WishlistService) UpdateWishlist(ctx context.Context, req *connect.Request[api.UpdateWishlistRequest]) (*connect.Response[api.UpdateWishlistResponse], error) {
	msg := req.Msg
	s.logger.Info("UpdateWishlist request received", "wishlist_id", msg.WishlistID)

	w, err := s.ownedWishlist(ctx, msg.WishlistID)
	if err != nil {
		return nil, toConnectError(err)
	}

	title := strings.TrimSpace(msg.Title)
	if title == "" {
		return nil, invalidArgument("wishlist title required")
	}
	w.Title = title
	w.GeneralInstructions = strings.TrimSpace(msg.GeneralInstructions)

	if err := s.store.UpdateWishlist(ctx, w); err != nil {
		s.logger.Error("UpdateWishlist failed", "wishlist_id", w.ID, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("Wishlist updated", "wishlist_id", w.ID)
	return connect.NewResponse(&api.UpdateWishlistResponse{Wishlist: toAPIWishlist(w, w.UserID == middleware.GetUserID(ctx))}), nil
}

// DeleteWishlist removes a wishlist and its items. Owner only.
func (s *WishlistService) DeleteWishlist(ctx context.Context, req *connect.Request[api.DeleteWishlistRequest]) (*connect.Response[api.Empty], error) {
	s.logger.Info("DeleteWishlist request received", "wishlist_id", req.Msg.WishlistID)

	w, err := s.ownedWishlist(ctx, req.Msg.WishlistID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if err := s.store.DeleteWishlist(ctx, w.ID); err != nil {
		return nil, toConnectError(err)
	}

	s.logger.Info("Wishlist deleted", "wishlist_id", w.ID)
	return connect.NewResponse(&api.Empty{}), nil
}

// ShareWishlist returns the wishlist's public share token, creating one on first use.
func (s *WishlistService) ShareWishlist(ctx context.Context, req *connect.Request[api.ShareWishlistRequest]) (*connect.Response[api.ShareWishlistResponse], error) {
	w, err := s.ownedWishlist(ctx, req.Msg.WishlistID)
	if err != nil {
		return nil, toConnectError(err)
	}

	if w.ShareToken == "" {
		w.ShareToken = uuid.New().String()
		if err := s.store.SetShareToken(ctx, w.ID, w.ShareToken); err != nil {
			s.logger.Error("ShareWishlist failed", "wishlist_id", w.ID, "error", err)
			return nil, toConnectError(err)
		}
		s.logger.Info("Share token created", "wishlist_id", w.ID)
	}

	return connect.NewResponse(&api.ShareWishlistResponse{ShareToken: w.ShareToken}), nil
}

// CreateInvite issues a token that opens the wishlist and, on signup, enrolls the new
// account into the chosen groups. CreateNewGroup adds a fresh "<owner> & Guest" group.
// Owner only; every listed group must be one the owner belongs to.
func (s *WishlistService) CreateInvite(ctx context.Context, req *connect.Request[api.CreateInviteRequest]) (*connect.Response[api.CreateInviteResponse], error) {
	msg := req.Msg
	s.logger.Info("CreateInvite request received", "wishlist_id", msg.WishlistID, "groups", len(msg.GroupIDs), "new_group", msg.CreateNewGroup)

	w, err := s.ownedWishlist(ctx, msg.WishlistID)
	if err != nil {
		return nil, toConnectError(err)
	}

	groupIDs := make([]string, 0, len(msg.GroupIDs)+1)
	seen := make(map[string]bool, len(msg.GroupIDs))
	for _, groupID := range msg.GroupIDs {
		if groupID == "" || seen[groupID] {
			continue
		}
		seen[groupID] = true
		m, err := s.store.GetMembership(ctx, w.UserID, groupID)
		if err != nil {
			return nil, toConnectError(err)
		}
		if m == nil {
			return nil, toConnectError(fmt.Errorf("owner is not in group %s: %w", groupID, errPermissionDenied))
		}
		groupIDs = append(groupIDs, groupID)
	}

	resp := &api.CreateInviteResponse{}
	if msg.CreateNewGroup {
		ownerName := w.Title
		if w.Owner != nil && w.Owner.Name != "" {
			ownerName = w.Owner.Name
		}
		group, err := createGroupNamed(ctx, s.store, w.UserID, func(code string) string {
			return fmt.Sprintf("%s & Guest (%s)", ownerName, code)
		})
		if err != nil {
			s.logger.Error("Failed to create guest group", "wishlist_id", w.ID, "error", err)
			return nil, toConnectError(err)
		}
		group.MemberCount = 1
		groupIDs = append(groupIDs, group.ID)
		resp.NewGroup = toAPIGroup(group)
	}

	invite := &models.WishlistInvite{Token: uuid.New().String(), WishlistID: w.ID, GroupIDs: groupIDs}
	if err := s.store.CreateInvite(ctx, invite); err != nil {
		s.logger.Error("CreateInvite failed", "wishlist_id", w.ID, "error", err)
		return nil, toConnectError(err)
	}

	resp.Token = invite.Token
	resp.GroupIDs = groupIDs
	s.logger.Info("Invite created", "wishlist_id", w.ID, "groups", len(groupIDs))
	return connect.NewResponse(resp), nil
}

// AddItem appends an item to the wishlist and announces it to the owner's co-members.
func (s *WishlistService) AddItem(ctx context.Context, req *connect.Request[api.AddItemRequest]) (*connect.Response[api.AddItemResponse], error) {
	msg := req.Msg
	s.logger.Info("AddItem request received", "wishlist_id", msg.WishlistID, "name", msg.Name)

	w, err := s.ownedWishlist(ctx, msg.WishlistID)
	if err != nil {
		return nil, toConnectError(err)
	}

	name := strings.TrimSpace(msg.Name)
	if name == "" {
		return nil, invalidArgument("item name required")
	}

	item := &models.Item{
		WishlistID: w.ID,
		Name:       name,
		Price:      msg.Price,
		URL:        strings.TrimSpace(msg.URL),
		Note:       strings.TrimSpace(msg.Note),
		ImageURL:   strings.TrimSpace(msg.ImageURL),
	}
	if err := s.store.CreateItem(ctx, item); err != nil {
		s.logger.Error("AddItem failed", "wishlist_id", w.ID, "error", err)
		return nil, toConnectError(err)
	}

	s.publisher.Broadcast(feed.Event{
		ActorID:   w.UserID,
		Payload:   models.ItemAddedPayload{ItemName: item.Name, WishlistID: w.ID},
		RelatedID: item.ID,
	})

	s.logger.Info("Item added", "item_id", item.ID, "wishlist_id", w.ID, "rank", item.Rank)
	return connect.NewResponse(&api.AddItemResponse{Item: toAPIItem(item)}), nil
}

// UpdateItem edits an item's details and announces the change.
func (s *WishlistService) UpdateItem(ctx context.Context, req *connect.Request[api.UpdateItemRequest]) (*connect.Response[api.UpdateItemResponse], error) {
	msg := req.Msg
	s.logger.Info("UpdateItem request received", "item_id", msg.ItemID)

	item, w, err := s.ownedItem(ctx, msg.ItemID)
	if err != nil {
		return nil, toConnectError(err)
	}

	name := strings.TrimSpace(msg.Name)
	if name == "" {
		return nil, invalidArgument("item name required")
	}
	item.Name = name
	item.Price = msg.Price
	item.URL = strings.TrimSpace(msg.URL)
	item.Note = strings.TrimSpace(msg.Note)
	item.ImageURL = strings.TrimSpace(msg.ImageURL)

	if err := s.store.UpdateItem(ctx, item); err != nil {
		s.logger.Error("UpdateItem failed", "item_id", item.ID, "error", err)
		return nil, toConnectError(err)
	}

	s.publisher.Broadcast(feed.Event{
		ActorID:   w.UserID,
		Payload:   models.ItemUpdatedPayload{ItemName: item.Name, WishlistID: w.ID},
		RelatedID: item.ID,
	})

	out := toAPIItem(item)
	if w.UserID == middleware.GetUserID(ctx) {
		out.Purchased = false
	}
	s.logger.Info("Item updated", "item_id", item.ID)
	return connect.NewResponse(&api.UpdateItemResponse{Item: out}), nil
}

// DeleteItem removes an item. Owner only.
func (s *WishlistService) DeleteItem(ctx context.Context, req *connect.Request[api.DeleteItemRequest]) (*connect.Response[api.Empty], error) {
	s.logger.Info("DeleteItem request received", "item_id", req.Msg.ItemID)

	item, _, err := s.ownedItem(ctx, req.Msg.ItemID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if err := s.store.DeleteItem(ctx, item.ID); err != nil {
		return nil, toConnectError(err)
	}

	s.logger.Info("Item deleted", "item_id", item.ID)
	return connect.NewResponse(&api.Empty{}), nil
}

// ReorderItems sets each listed item's rank to its position in the list. Owner only.
func (s *WishlistService) ReorderItems(ctx context.Context, req *connect.Request[api.ReorderItemsRequest]) (*connect.Response[api.Empty], error) {
	msg := req.Msg
	s.logger.Info("ReorderItems request received", "wishlist_id", msg.WishlistID, "items", len(msg.ItemIDs))

	w, err := s.ownedWishlist(ctx, msg.WishlistID)
	if err != nil {
		return nil, toConnectError(err)
	}

	seen := make(map[string]bool, len(msg.ItemIDs))
	for _, id := range msg.ItemIDs {
		if seen[id] {
			return nil, invalidArgument("item %s listed twice", id)
		}
		seen[id] = true
	}

	if err := s.store.ReorderItems(ctx, w.ID, msg.ItemIDs); err != nil {
		s.logger.Warn("ReorderItems failed", "wishlist_id", w.ID, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.Empty{}), nil
}

// SetPurchased marks an item bought or available on behalf of the caller.
func (s *WishlistService) SetPurchased(ctx context.Context, req *connect.Request[api.SetPurchasedRequest]) (*connect.Response[api.SetPurchasedResponse], error) {
	msg := req.Msg
	userID := middleware.GetUserID(ctx)
	s.logger.Info("SetPurchased request received", "item_id", msg.ItemID, "purchased", msg.Purchased, "user_id", userID)

	item, err := s.purchases.SetPurchased(ctx, msg.ItemID, msg.Purchased, userID)
	if err != nil {
		return nil, toConnectError(err)
	}

	out := toAPIItem(item)
	w, err := s.store.GetWishlist(ctx, item.WishlistID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if w.UserID == userID {
		out.Purchased = false
	}
	return connect.NewResponse(&api.SetPurchasedResponse{Item: out}), nil
}

// ownedWishlist loads a wishlist the caller may modify.
func (s *WishlistService) ownedWishlist(ctx context.Context, wishlistID string) (*models.Wishlist, error) {
	w, err := s.store.GetWishlist(ctx, wishlistID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

// ownedItem loads an item and its wishlist, checking the caller may modify them.
func (s *WishlistService) ownedItem(ctx context.Context, itemID string) (*models.Item, *models.Wishlist, error) {
	item, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		return nil, nil, err
	}
	w, err := s.ownedWishlist(ctx, item.WishlistID)
	if err != nil {
		return nil, nil, err
	}
	return item, w, nil
}
