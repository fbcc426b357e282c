package feed

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/NJCA88/SneakyElves/internal/models"
	"github.com/NJCA88/SneakyElves/pkg/logging"
)

// stubStore is an in-memory FeedStore whose recipient lookup can be held open.
type stubStore struct {
	members []string
	started chan struct{}
	release chan struct{}
	listErr error

	mu      sync.Mutex
	written []*models.FeedItem
}

func (s *stubStore) ListCoMemberIDs(ctx context.Context, userID string) ([]string, error) {
	if s.started != nil {
		s.started <- struct{}{}
	}
	if s.release != nil {
		<-s.release
	}
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.members, nil
}

func (s *stubStore) CreateFeedItems(ctx context.Context, items []*models.FeedItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.written = append(s.written, items...)
	return nil
}

func (s *stubStore) ListFeedItems(ctx context.Context, userID string, limit, offset int) ([]*models.FeedItem, error) {
	return nil, nil
}

func (s *stubStore) DeleteFeedItems(ctx context.Context, eventType models.EventType, relatedID string) (int64, error) {
	return 0, nil
}

func (s *stubStore) writtenCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.written)
}

func TestBroadcast_DropsWhenQueueFull(t *testing.T) {
	store := &stubStore{
		members: []string{"actor", "r1", "r2"},
		started: make(chan struct{}, 8),
		release: make(chan struct{}),
	}
	b := NewBroadcaster(store, Options{Workers: 1, QueueSize: 1, Logger: logging.Discard()})

	ev := Event{ActorID: "actor", Payload: models.MemberJoinedPayload{GroupID: "g", GroupName: "G"}}

	b.Broadcast(ev)
	select {
	case <-store.started:
	case <-time.After(5 * time.Second):
		t.Fatal("worker never picked up the first event")
	}

	// The worker is blocked on the first event: one more fits in the queue, the third is dropped.
	b.Broadcast(ev)
	b.Broadcast(ev)

	close(store.release)
	b.Close()

	if got := store.writtenCount(); got != 4 {
		t.Errorf("rows written = %d, want 4 (two events, two recipients each)", got)
	}
}

func TestDeliver_StoreFailure(t *testing.T) {
	boom := errors.New("database is locked")
	store := &stubStore{listErr: boom}
	b := NewBroadcaster(store, Options{Workers: 1, Logger: logging.Discard()})
	defer b.Close()

	_, err := b.Deliver(context.Background(), Event{ActorID: "actor", Payload: models.MemberJoinedPayload{}})
	if !errors.Is(err, ErrBroadcastFailed) {
		t.Errorf("error = %v, want ErrBroadcastFailed", err)
	}
	if !errors.Is(err, boom) {
		t.Errorf("error = %v, want it to wrap the store error", err)
	}

	// Broadcast swallows the same failure.
	b.Broadcast(Event{ActorID: "actor", Payload: models.MemberJoinedPayload{}})
}

func TestResolveRecipients(t *testing.T) {
	tests := []struct {
		name    string
		members []string
		actor   string
		exclude []string
		want    []string
	}{
		{name: "drops actor", members: []string{"a", "b", "c"}, actor: "a", want: []string{"b", "c"}},
		{name: "drops excluded", members: []string{"a", "b", "c"}, actor: "a", exclude: []string{"c"}, want: []string{"b"}},
		{name: "dedupes", members: []string{"a", "b", "b", "c"}, actor: "a", want: []string{"b", "c"}},
		{name: "no members", members: nil, actor: "a", want: []string{}},
		{name: "everyone excluded", members: []string{"a", "b"}, actor: "a", exclude: []string{"b"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveRecipients(context.Background(), &stubStore{members: tt.members}, tt.actor, tt.exclude)
			if err != nil {
				t.Fatalf("resolveRecipients failed: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("got %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}
