package feed

import (
	"context"
	"fmt"

	"github.com/NJCA88/SneakyElves/internal/models"
	"github.com/NJCA88/SneakyElves/internal/storage"
)

const (
	// DefaultLimit is the page size used when a caller asks for none.
	DefaultLimit = 20
	// MaxLimit caps the page size a caller may request.
	MaxLimit = 100
)

// Reader serves one user's feed. It never writes.
type Reader struct {
	store storage.FeedStore
}

// NewReader returns a Reader over store.
func NewReader(store storage.FeedStore) *Reader {
	return &Reader{store: store}
}

// GetFeed returns up to limit entries for userID, newest first, skipping offset entries.
// limit <= 0 means DefaultLimit and is capped at MaxLimit; a negative offset means 0.
func (r *Reader) GetFeed(ctx context.Context, userID string, limit, offset int) ([]*models.FeedItem, error) {
	limit, offset = NormalizePage(limit, offset)

	items, err := r.store.ListFeedItems(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed: %w", err)
	}
	return items, nil
}

// NormalizePage applies the feed's paging defaults and bounds.
func NormalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
