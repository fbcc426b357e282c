package service

import (
	"context"
	"log/slog"
	"net/http"

	"connectrpc.com/connect"

	"github.com/NJCA88/SneakyElves/internal/middleware"
	"github.com/NJCA88/SneakyElves/internal/storage"
	"github.com/NJCA88/SneakyElves/pkg/api"
)

// notificationLimit caps ListNotifications to the most recent entries.
const notificationLimit = 50

// NotificationService implements the Connect NotificationService.
type NotificationService struct {
	store  storage.NotificationStore
	logger *slog.Logger
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(store storage.NotificationStore, logger *slog.Logger) *NotificationService {
	return &NotificationService{store: store, logger: logger}
}

// Handler returns the mount path and HTTP handler for the service.
func (s *NotificationService) Handler(opts ...connect.HandlerOption) (string, http.Handler) {
	opts = api.HandlerOptions(opts...)
	mux := http.NewServeMux()
	mux.Handle(api.NotificationListNotificationsProcedure, connect.NewUnaryHandler(api.NotificationListNotificationsProcedure, s.ListNotifications, opts...))
	mux.Handle(api.NotificationMarkReadProcedure, connect.NewUnaryHandler(api.NotificationMarkReadProcedure, s.MarkRead, opts...))
	mux.Handle(api.NotificationMarkAllReadProcedure, connect.NewUnaryHandler(api.NotificationMarkAllReadProcedure, s.MarkAllRead, opts...))
	return api.ServicePath(api.NotificationServiceName), mux
}

// ListNotifications returns the caller's latest notifications, newest first.
func (s *NotificationService) ListNotifications(ctx context.Context, req *connect.Request[api.Empty]) (*connect.Response[api.ListNotificationsResponse], error) {
	userID := middleware.GetUserID(ctx)

	notifications, err := s.store.ListNotifications(ctx, userID, notificationLimit)
	if err != nil {
		s.logger.Error("ListNotifications failed", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}

	resp := &api.ListNotificationsResponse{Notifications: make([]api.Notification, len(notifications))}
	for i, n := range notifications {
		resp.Notifications[i] = toAPINotification(n)
		if !n.Read {
			resp.UnreadCount++
		}
	}
	return connect.NewResponse(resp), nil
}

// MarkRead flags one of the caller's notifications as read.
func (s *NotificationService) MarkRead(ctx context.Context, req *connect.Request[api.MarkReadRequest]) (*connect.Response[api.Empty], error) {
	userID := middleware.GetUserID(ctx)
	if err := s.store.MarkNotificationRead(ctx, userID, req.Msg.NotificationID); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.Empty{}), nil
}

// MarkAllRead flags all of the caller's notifications as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, req *connect.Request[api.Empty]) (*connect.Response[api.MarkAllReadResponse], error) {
	userID := middleware.GetUserID(ctx)

	n, err := s.store.MarkAllNotificationsRead(ctx, userID)
	if err != nil {
		return nil, toConnectError(err)
	}

	s.logger.Info("Notifications marked read", "user_id", userID, "count", n)
	return connect.NewResponse(&api.MarkAllReadResponse{Updated: n}), nil
}
