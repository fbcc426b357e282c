package service

import (
	"context"
	"log/slog"
	"net/http"

	"connectrpc.com/connect"

	"github.com/NJCA88/SneakyElves/internal/middleware"
	"github.com/NJCA88/SneakyElves/internal/models"
	"github.com/NJCA88/SneakyElves/internal/storage"
	"github.com/NJCA88/SneakyElves/pkg/api"
)

// ContentService serves the About and Landing pages. Anyone may read them;
// only system admins may change them.
type ContentService struct {
	store  storage.ContentStore
	logger *slog.Logger
}

// NewContentService creates a new ContentService.
func NewContentService(store storage.ContentStore, logger *slog.Logger) *ContentService {
	return &ContentService{store: store, logger: logger}
}

// Handler returns the mount path and HTTP handler for the service.
func (s *ContentService) Handler(opts ...connect.HandlerOption) (string, http.Handler) {
	opts = api.HandlerOptions(opts...)
	mux := http.NewServeMux()
	mux.Handle(api.ContentGetAboutProcedure, connect.NewUnaryHandler(api.ContentGetAboutProcedure, s.GetAbout, opts...))
	mux.Handle(api.ContentUpdateAboutProcedure, connect.NewUnaryHandler(api.ContentUpdateAboutProcedure, s.UpdateAbout, opts...))
	mux.Handle(api.ContentGetLandingProcedure, connect.NewUnaryHandler(api.ContentGetLandingProcedure, s.GetLanding, opts...))
	mux.Handle(api.ContentUpdateLandingProcedure, connect.NewUnaryHandler(api.ContentUpdateLandingProcedure, s.UpdateLanding, opts...))
	return api.ServicePath(api.ContentServiceName), mux
}

func (s *ContentService) GetAbout(ctx context.Context, req *connect.Request[api.Empty]) (*connect.Response[api.PageContent], error) {
	return s.get(ctx, models.ContentAbout)
}

func (s *ContentService) UpdateAbout(ctx context.Context, req *connect.Request[api.UpdateContentRequest]) (*connect.Response[api.PageContent], error) {
	return s.set(ctx, models.ContentAbout, req.Msg.Content)
}

func (s *ContentService) GetLanding(ctx context.Context, req *connect.Request[api.Empty]) (*connect.Response[api.PageContent], error) {
	return s.get(ctx, models.ContentLanding)
}

func (s *ContentService) UpdateLanding(ctx context.Context, req *connect.Request[api.UpdateContentRequest]) (*connect.Response[api.PageContent], error) {
	return s.set(ctx, models.ContentLanding, req.Msg.Content)
}

func (s *ContentService) get(ctx context.Context, key models.ContentKey) (*connect.Response[api.PageContent], error) {
	c, err := s.store.GetContent(ctx, key)
	if err != nil {
		s.logger.Error("GetContent failed", "key", key, "error", err)
		return nil, toConnectError(err)
	}
	if c == nil {
		return connect.NewResponse(&api.PageContent{}), nil
	}
	return connect.NewResponse(&api.PageContent{Content: c.Value, UpdatedAt: c.UpdatedAt}), nil
}

func (s *ContentService) set(ctx context.Context, key models.ContentKey, value string) (*connect.Response[api.PageContent], error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, toConnectError(err)
	}

	c := &models.Content{Key: key, Value: value}
	if err := s.store.SetContent(ctx, c); err != nil {
		s.logger.Error("SetContent failed", "key", key, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("Content updated", "key", key, "user_id", middleware.GetUserID(ctx), "bytes", len(value))
	return connect.NewResponse(&api.PageContent{Content: c.Value, UpdatedAt: c.UpdatedAt}), nil
}
