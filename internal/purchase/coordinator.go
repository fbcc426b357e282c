// Package purchase ties an item's purchased flag to the activity feed.
//
// Available -> Purchased broadcasts PURCHASED to the purchaser's co-members, never to
// the wishlist owner. Purchased -> Available revokes every PURCHASED row for the item.
// Setting the flag to its current value changes nothing and broadcasts nothing.
package purchase

import (
	"context"
	"fmt"
	"hash/fnv"
	"log/slog"
	"sync"

	"github.com/NJCA88/SneakyElves/internal/feed"
	"github.com/NJCA88/SneakyElves/internal/models"
)

// Store is the slice of storage the coordinator needs.
type Store interface {
	GetItem(ctx context.Context, itemID string) (*models.Item, error)
	GetWishlist(ctx context.Context, wishlistID string) (*models.Wishlist, error)
	SetItemPurchased(ctx context.Context, itemID string, purchased bool) (bool, error)
}

// Publisher queues feed side effects without blocking.
type Publisher interface {
	Broadcast(ev feed.Event)
	RevokeAsync(eventType models.EventType, relatedID string)
}

// itemLocks is the number of mutex stripes items hash onto.
const itemLocks = 64

// Coordinator applies purchase transitions.
//
// A transition and the queuing of its feed side effect happen under a per-item lock,
// and the broadcaster runs one item's tasks on one worker, so feed writes for an item
// apply in the order its transitions were committed.
type Coordinator struct {
	store     Store
	publisher Publisher
	logger    *slog.Logger

	locks [itemLocks]sync.Mutex
}

// NewCoordinator creates a Coordinator. A nil logger uses slog.Default().
func NewCoordinator(store Store, publisher Publisher, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{store: store, publisher: publisher, logger: logger}
}

func (c *Coordinator) lockFor(itemID string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(itemID))
	return &c.locks[h.Sum32()%itemLocks]
}

// SetPurchased stores the flag and returns the updated item. Feed side effects are
// queued only when the flag actually changed; their failures never reach the caller.
// An empty purchaserID marks the item without announcing it.
//
// Everything the announcement needs is loaded before the flag is written, so nothing
// waits on storage between the commit and the enqueue.
func (c *Coordinator) SetPurchased(ctx context.Context, itemID string, purchased bool, purchaserID string) (*models.Item, error) {
	mu := c.lockFor(itemID)
	mu.Lock()
	defer mu.Unlock()

	item, err := c.store.GetItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to load item: %w", err)
	}

	var wishlist *models.Wishlist
	if purchased && purchaserID != "" {
		wishlist, err = c.store.GetWishlist(ctx, item.WishlistID)
		if err != nil {
			// The purchase still goes through; only the announcement is lost.
			c.logger.Warn("Failed to load wishlist for purchase broadcast",
				"item_id", item.ID, "wishlist_id", item.WishlistID, "error", err)
		}
	}

	changed, err := c.store.SetItemPurchased(ctx, itemID, purchased)
	if err != nil {
		return nil, fmt.Errorf("failed to set purchased: %w", err)
	}
	item.Purchased = purchased

	if !changed {
		c.logger.Debug("Purchase state unchanged", "item_id", itemID, "purchased", purchased)
		return item, nil
	}

	if !purchased {
		c.publisher.RevokeAsync(models.EventPurchased, item.ID)
		c.logger.Info("Item unpurchased", "item_id", item.ID)
		return item, nil
	}

	if purchaserID == "" {
		c.logger.Info("Item purchased without purchaser, not announced", "item_id", item.ID)
		return item, nil
	}
	if wishlist == nil {
		return item, nil
	}

	c.publisher.Broadcast(feed.Event{
		ActorID: purchaserID,
		Payload: models.PurchasedPayload{
			ItemName:      item.Name,
			RecipientName: wishlist.Title,
			WishlistID:    wishlist.ID,
		},
		RelatedID:  item.ID,
		ExcludeIDs: []string{wishlist.UserID},
	})
	c.logger.Info("Item purchased", "item_id", item.ID, "purchaser_id", purchaserID)

	return item, nil
}
