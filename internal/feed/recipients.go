package feed

import (
	"context"

	"github.com/NJCA88/SneakyElves/internal/storage"
)

// resolveRecipients returns the distinct co-members of every group actorID belongs
// to, minus the actor and excludeIDs, in the order the store lists them.
func resolveRecipients(ctx context.Context, store storage.FeedStore, actorID string, excludeIDs []string) ([]string, error) {
	members, err := store.ListCoMemberIDs(ctx, actorID)
	if err != nil {
		return nil, err
	}

	skip := make(map[string]struct{}, len(excludeIDs)+1)
	skip[actorID] = struct{}{}
	for _, id := range excludeIDs {
		skip[id] = struct{}{}
	}

	recipients := make([]string, 0, len(members))
	for _, id := range members {
		if _, ok := skip[id]; ok {
			continue
		}
		skip[id] = struct{}{}
		recipients = append(recipients, id)
	}
	return recipients, nil
}
