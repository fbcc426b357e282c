// Package feed fans activity events out to group co-members and serves each user's feed.
//
// Broadcasts are best-effort: Broadcast hands the event to a sharded worker pool and
// returns immediately. A failed or dropped broadcast is logged and counted, never
// reported to the caller. Tasks that share a related ID (or actor, when there is none)
// land on the same shard, so a revoke queued after a broadcast for the same item runs
// after it.
package feed

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"
	"sync"
	"time"

	"github.com/NJCA88/SneakyElves/internal/metrics"
	"github.com/NJCA88/SneakyElves/internal/models"
	"github.com/NJCA88/SneakyElves/internal/storage"
)

var (
	// ErrBroadcastFailed wraps any error raised while resolving recipients or writing rows.
	ErrBroadcastFailed = errors.New("feed broadcast failed")

	// ErrRevokeFailed wraps any error raised while deleting rows.
	ErrRevokeFailed = errors.New("feed revoke failed")

	// ErrInvalidEvent is returned for an event without an actor or payload.
	ErrInvalidEvent = errors.New("invalid feed event")
)

const (
	defaultWorkers   = 4
	defaultQueueSize = 256

	// taskTimeout bounds one background fan-out or revoke.
	taskTimeout = 30 * time.Second
)

// Event is one activity to fan out.
type Event struct {
	ActorID string
	Payload models.FeedPayload

	// RelatedID is the subject entity, used later by Revoke. Optional.
	RelatedID string

	// ExcludeIDs never receive the event, even when they share a group with the actor.
	ExcludeIDs []string
}

// Type returns the event type carried by the payload.
func (e Event) Type() models.EventType {
	if e.Payload == nil {
		return ""
	}
	return e.Payload.EventType()
}

func (e Event) validate() error {
	if e.ActorID == "" {
		return fmt.Errorf("%w: actor is required", ErrInvalidEvent)
	}
	if e.Payload == nil {
		return fmt.Errorf("%w: payload is required", ErrInvalidEvent)
	}
	return nil
}

// Options configures a Broadcaster. Zero values fall back to defaults.
type Options struct {
	Workers   int
	QueueSize int
	Metrics   *metrics.Metrics
	Logger    *slog.Logger

	// Now stamps new rows. Defaults to time.Now.
	Now func() time.Time
}

type taskKind int

const (
	taskBroadcast taskKind = iota
	taskRevoke
)

type task struct {
	kind      taskKind
	event     Event
	eventType models.EventType
	relatedID string
}

// Broadcaster writes and revokes feed rows.
type Broadcaster struct {
	store   storage.FeedStore
	metrics *metrics.Metrics
	logger  *slog.Logger
	now     func() time.Time

	mu     sync.RWMutex
	closed bool
	shards []chan task
	wg     sync.WaitGroup
}

// NewBroadcaster starts opts.Workers workers, each owning one queue of opts.QueueSize tasks.
// Call Close to drain the queues and stop them.
func NewBroadcaster(store storage.FeedStore, opts Options) *Broadcaster {
	if opts.Workers <= 0 {
		opts.Workers = defaultWorkers
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = defaultQueueSize
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	b := &Broadcaster{
		store:   store,
		metrics: opts.Metrics,
		logger:  opts.Logger.With("component", "feed"),
		now:     opts.Now,
		shards:  make([]chan task, opts.Workers),
	}
	for i := range b.shards {
		b.shards[i] = make(chan task, opts.QueueSize)
		b.wg.Add(1)
		go b.work(b.shards[i])
	}
	return b
}

// Broadcast queues the event for fan-out and returns without waiting.
// The event is dropped if its shard queue is full or the broadcaster is closed.
func (b *Broadcaster) Broadcast(ev Event) {
	if err := ev.validate(); err != nil {
		b.logger.Warn("Dropping invalid feed event", "type", ev.Type(), "error", err)
		b.metrics.FeedEvent(string(ev.Type()), metrics.OutcomeDropped)
		return
	}

	key := ev.RelatedID
	if key == "" {
		key = ev.ActorID
	}
	b.enqueue(key, task{kind: taskBroadcast, event: ev, eventType: ev.Type(), relatedID: ev.RelatedID})
}

// RevokeAsync queues a revoke on the shard that carries broadcasts for relatedID.
func (b *Broadcaster) RevokeAsync(eventType models.EventType, relatedID string) {
	if relatedID == "" {
		return
	}
	b.enqueue(relatedID, task{kind: taskRevoke, eventType: eventType, relatedID: relatedID})
}

func (b *Broadcaster) enqueue(key string, t task) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		b.logger.Warn("Feed broadcaster closed, dropping task",
			"type", t.eventType, "related_id", t.relatedID)
		b.metrics.FeedEvent(string(t.eventType), metrics.OutcomeDropped)
		return
	}

	select {
	case b.shards[shardFor(key, len(b.shards))] <- t:
		b.metrics.FeedQueued(1)
	default:
		b.logger.Warn("Feed queue full, dropping task",
			"type", t.eventType, "related_id", t.relatedID)
		b.metrics.FeedEvent(string(t.eventType), metrics.OutcomeDropped)
	}
}

func (b *Broadcaster) work(queue <-chan task) {
	defer b.wg.Done()

	for t := range queue {
		b.metrics.FeedQueued(-1)
		ctx, cancel := context.WithTimeout(context.Background(), taskTimeout)
		switch t.kind {
		case taskBroadcast:
			// Deliver logs and counts its own failures.
			_, _ = b.Deliver(ctx, t.event)
		case taskRevoke:
			_, _ = b.Revoke(ctx, t.eventType, t.relatedID)
		}
		cancel()
	}
}

// Deliver fans the event out synchronously and returns the number of rows written.
// An actor without co-members yields 0 rows and no error.
func (b *Broadcaster) Deliver(ctx context.Context, ev Event) (int, error) {
	if err := ev.validate(); err != nil {
		return 0, err
	}
	eventType := ev.Type()

	recipients, err := resolveRecipients(ctx, b.store, ev.ActorID, ev.ExcludeIDs)
	if err != nil {
		return 0, b.broadcastFailed(eventType, ev, err)
	}
	if len(recipients) == 0 {
		b.logger.Debug("Feed event has no recipients", "type", eventType, "actor_id", ev.ActorID)
		return 0, nil
	}

	createdAt := b.now().Unix()
	items := make([]*models.FeedItem, len(recipients))
	for i, userID := range recipients {
		items[i] = &models.FeedItem{
			UserID:    userID,
			ActorID:   ev.ActorID,
			Type:      eventType,
			Payload:   ev.Payload,
			RelatedID: ev.RelatedID,
			CreatedAt: createdAt,
		}
	}

	if err := b.store.CreateFeedItems(ctx, items); err != nil {
		return 0, b.broadcastFailed(eventType, ev, err)
	}

	b.metrics.FeedEvent(string(eventType), metrics.OutcomeDelivered)
	b.metrics.FeedRowsWritten(len(items))
	b.logger.Debug("Feed event delivered",
		"type", eventType,
		"actor_id", ev.ActorID,
		"related_id", ev.RelatedID,
		"recipients", len(items),
	)
	return len(items), nil
}

func (b *Broadcaster) broadcastFailed(eventType models.EventType, ev Event, err error) error {
	b.logger.Error("Feed broadcast failed",
		"type", eventType,
		"actor_id", ev.ActorID,
		"related_id", ev.RelatedID,
		"error", err,
	)
	b.metrics.FeedEvent(string(eventType), metrics.OutcomeFailed)
	return fmt.Errorf("%w: %w", ErrBroadcastFailed, err)
}

// Revoke deletes every row of eventType about relatedID, for all recipients.
// Revoking rows that do not exist is not an error.
func (b *Broadcaster) Revoke(ctx context.Context, eventType models.EventType, relatedID string) (int64, error) {
	n, err := b.store.DeleteFeedItems(ctx, eventType, relatedID)
	if err != nil {
		b.logger.Error("Feed revoke failed", "type", eventType, "related_id", relatedID, "error", err)
		b.metrics.FeedEvent(string(eventType), metrics.OutcomeFailed)
		return 0, fmt.Errorf("%w: %w", ErrRevokeFailed, err)
	}

	b.metrics.FeedEvent(string(eventType), metrics.OutcomeRevoked)
	b.metrics.FeedRowsRevoked(n)
	b.logger.Debug("Feed rows revoked", "type", eventType, "related_id", relatedID, "rows", n)
	return n, nil
}

// Close stops accepting tasks, drains the queued ones and waits for the workers.
// It is safe to call more than once.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	for _, q := range b.shards {
		close(q)
	}
	b.mu.Unlock()

	b.wg.Wait()
}

func shardFor(key string, n int) int {
	h := fnv.New32a()
	h.Write([]byte(key))
	return int(h.Sum32() % uint32(n))
}
