package service

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/NJCA88/SneakyElves/internal/middleware"
	"github.com/NJCA88/SneakyElves/internal/models"
	"github.com/NJCA88/SneakyElves/pkg/api"
)

// FeedReader pages through a user's activity feed.
type FeedReader interface {
	GetFeed(ctx context.Context, userID string, limit, offset int) ([]*models.FeedItem, error)
}

// FeedRevoker deletes feed rows about an entity.
type FeedRevoker interface {
	Revoke(ctx context.Context, eventType models.EventType, relatedID string) (int64, error)
}

// FeedService implements the Connect FeedService.
type FeedService struct {
	reader  FeedReader
	revoker FeedRevoker
	logger  *slog.Logger
}

// NewFeedService creates a new FeedService.
func NewFeedService(reader FeedReader, revoker FeedRevoker, logger *slog.Logger) *FeedService {
	return &FeedService{reader: reader, revoker: revoker, logger: logger}
}

// Handler returns the mount path and HTTP handler for the service.
func (s *FeedService) Handler(opts ...connect.HandlerOption) (string, http.Handler) {
	opts = api.HandlerOptions(opts...)
	mux := http.NewServeMux()
	mux.Handle(api.FeedGetFeedProcedure, connect.NewUnaryHandler(api.FeedGetFeedProcedure, s.GetFeed, opts...))
	mux.Handle(api.FeedRevokeFeedItemsProcedure, connect.NewUnaryHandler(api.FeedRevokeFeedItemsProcedure, s.RevokeFeedItems, opts...))
	return api.ServicePath(api.FeedServiceName), mux
}

// GetFeed returns a page of the caller's feed, newest first.
func (s *FeedService) GetFeed(ctx context.Context, req *connect.Request[api.GetFeedRequest]) (*connect.Response[api.GetFeedResponse], error) {
	userID := middleware.GetUserID(ctx)

	items, err := s.reader.GetFeed(ctx, userID, req.Msg.Limit, req.Msg.Offset)
	if err != nil {
		s.logger.Error("GetFeed failed", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}

	out := make([]api.FeedItem, 0, len(items))
	for _, item := range items {
		data, err := models.MarshalFeedPayload(item.Payload)
		if err != nil {
			s.logger.Warn("Skipping feed row with bad payload", "feed_item_id", item.ID, "error", err)
			continue
		}
		out = append(out, api.FeedItem{
			ID:        item.ID,
			Type:      string(item.Type),
			Actor:     toAPISummary(item.Actor, false),
			Data:      data,
			RelatedID: item.RelatedID,
			CreatedAt: item.CreatedAt,
		})
	}

	s.logger.Debug("GetFeed successful", "user_id", userID, "count", len(out))
	return connect.NewResponse(&api.GetFeedResponse{Items: out}), nil
}

// RevokeFeedItems deletes every feed row of a type about an entity. System admins only.
func (s *FeedService) RevokeFeedItems(ctx context.Context, req *connect.Request[api.RevokeFeedItemsRequest]) (*connect.Response[api.RevokeFeedItemsResponse], error) {
	eventType := models.EventType(strings.ToUpper(req.Msg.Type))
	relatedID := req.Msg.RelatedID
	s.logger.Info("RevokeFeedItems request received", "type", eventType, "related_id", relatedID)

	if err := requireAdmin(ctx); err != nil {
		return nil, toConnectError(err)
	}
	if !eventType.Valid() {
		return nil, invalidArgument("unknown event type %q", req.Msg.Type)
	}
	if relatedID == "" {
		return nil, invalidArgument("relatedId required")
	}

	n, err := s.revoker.Revoke(ctx, eventType, relatedID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.RevokeFeedItemsResponse{Revoked: n}), nil
}
