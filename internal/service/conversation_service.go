package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/NJCA88/SneakyElves/internal/middleware"
	"github.com/NJCA88/SneakyElves/internal/models"
	"github.com/NJCA88/SneakyElves/internal/storage"
	"github.com/NJCA88/SneakyElves/pkg/api"
)

// ConversationService implements the Connect ConversationService: anonymous questions
// to a wishlist owner. The owner never learns who asked.
type ConversationService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewConversationService creates a new ConversationService.
func NewConversationService(store storage.Store, logger *slog.Logger) *ConversationService {
	return &ConversationService{store: store, logger: logger}
}

// Handler returns the mount path and HTTP handler for the service.
func (s *ConversationService) Handler(opts ...connect.HandlerOption) (string, http.Handler) {
	opts = api.HandlerOptions(opts...)
	mux := http.NewServeMux()
	mux.Handle(api.ConversationListConversationsProcedure, connect.NewUnaryHandler(api.ConversationListConversationsProcedure, s.ListConversations, opts...))
	mux.Handle(api.ConversationGetConversationProcedure, connect.NewUnaryHandler(api.ConversationGetConversationProcedure, s.GetConversation, opts...))
	mux.Handle(api.ConversationStartConversationProcedure, connect.NewUnaryHandler(api.ConversationStartConversationProcedure, s.StartConversation, opts...))
	mux.Handle(api.ConversationPostMessageProcedure, connect.NewUnaryHandler(api.ConversationPostMessageProcedure, s.PostMessage, opts...))
	return api.ServicePath(api.ConversationServiceName), mux
}

// ListConversations returns a wishlist's threads. The owner sees all of them, anyone else
// only the threads they started.
func (s *ConversationService) ListConversations(ctx context.Context, req *connect.Request[api.ListConversationsRequest]) (*connect.Response[api.ListConversationsResponse], error) {
	userID := middleware.GetUserID(ctx)

	w, err := s.store.GetWishlist(ctx, req.Msg.WishlistID)
	if err != nil {
		return nil, toConnectError(err)
	}

	authorFilter := userID
	if w.UserID == userID {
		authorFilter = ""
	}
	conversations, err := s.store.ListConversations(ctx, w.ID, authorFilter)
	if err != nil {
		s.logger.Error("ListConversations failed", "wishlist_id", w.ID, "error", err)
		return nil, toConnectError(err)
	}

	out := make([]api.Conversation, len(conversations))
	for i, c := range conversations {
		out[i] = toAPIConversation(c, w.UserID, userID)
	}
	return connect.NewResponse(&api.ListConversationsResponse{Conversations: out}), nil
}

// GetConversation returns a thread with every message. Only its asker and the wishlist
// owner may read it.
func (s *ConversationService) GetConversation(ctx context.Context, req *connect.Request[api.GetConversationRequest]) (*connect.Response[api.GetConversationResponse], error) {
	userID := middleware.GetUserID(ctx)

	c, w, err := s.participantConversation(ctx, req.Msg.ConversationID, userID)
	if err != nil {
		return nil, toConnectError(err)
	}

	out := toAPIConversation(c, w.UserID, userID)
	return connect.NewResponse(&api.GetConversationResponse{Conversation: &out}), nil
}

// StartConversation asks the owner a question about the wishlist or one of its items and
// notifies the owner.
func (s *ConversationService) StartConversation(ctx context.Context, req *connect.Request[api.StartConversationRequest]) (*connect.Response[api.StartConversationResponse], error) {
	msg := req.Msg
	userID := middleware.GetUserID(ctx)
	s.logger.Info("StartConversation request received", "wishlist_id", msg.WishlistID, "item_id", msg.ItemID)

	body := strings.TrimSpace(msg.Body)
	if body == "" {
		return nil, invalidArgument("message body required")
	}

	w, err := s.store.GetWishlist(ctx, msg.WishlistID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if w.UserID == userID {
		return nil, connect.NewError(connect.CodeFailedPrecondition, fmt.Errorf("cannot ask about your own wishlist"))
	}

	c := &models.Conversation{WishlistID: w.ID, AuthorID: userID}
	subject := "your wishlist"
	if msg.ItemID != "" {
		item, err := s.store.GetItem(ctx, msg.ItemID)
		if err != nil {
			return nil, toConnectError(err)
		}
		if item.WishlistID != w.ID {
			return nil, invalidArgument("item %s is not on wishlist %s", item.ID, w.ID)
		}
		c.ItemID = item.ID
		c.ItemName = item.Name
		subject = item.Name
	}

	first := &models.Message{AuthorID: userID, Body: body}
	if err := s.store.CreateConversation(ctx, c, first); err != nil {
		s.logger.Error("StartConversation failed", "wishlist_id", w.ID, "error", err)
		return nil, toConnectError(err)
	}

	s.notify(ctx, userID, w.UserID, models.NotificationNewQuestion,
		fmt.Sprintf("Someone asked a question about %s.", subject), conversationLink(w.ID, c.ID))

	s.logger.Info("Conversation started", "conversation_id", c.ID, "wishlist_id", w.ID)
	out := toAPIConversation(c, w.UserID, userID)
	return connect.NewResponse(&api.StartConversationResponse{Conversation: &out}), nil
}

// PostMessage replies in a thread and notifies the other party.
func (s *ConversationService) PostMessage(ctx context.Context, req *connect.Request[api.PostMessageRequest]) (*connect.Response[api.PostMessageResponse], error) {
	msg := req.Msg
	userID := middleware.GetUserID(ctx)
	s.logger.Info("PostMessage request received", "conversation_id", msg.ConversationID)

	body := strings.TrimSpace(msg.Body)
	if body == "" {
		return nil, invalidArgument("message body required")
	}

	c, w, err := s.participantConversation(ctx, msg.ConversationID, userID)
	if err != nil {
		return nil, toConnectError(err)
	}

	m := &models.Message{ConversationID: c.ID, AuthorID: userID, Body: body}
	if err := s.store.AddMessage(ctx, m); err != nil {
		s.logger.Error("PostMessage failed", "conversation_id", c.ID, "error", err)
		return nil, toConnectError(err)
	}

	link := conversationLink(w.ID, c.ID)
	if userID == w.UserID {
		s.notify(ctx, userID, c.AuthorID, models.NotificationNewReply, "The wishlist owner replied to your question.", link)
	} else {
		s.notify(ctx, userID, w.UserID, models.NotificationNewReply, "Someone replied to their question.", link)
	}

	return connect.NewResponse(&api.PostMessageResponse{Message: toAPIMessage(m, w.UserID, userID)}), nil
}

// participantConversation loads a conversation the user asked or whose wishlist they own.
func (s *ConversationService) participantConversation(ctx context.Context, conversationID, userID string) (*models.Conversation, *models.Wishlist, error) {
	c, err := s.store.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, nil, err
	}
	w, err := s.store.GetWishlist(ctx, c.WishlistID)
	if err != nil {
		return nil, nil, err
	}
	if userID != c.AuthorID && userID != w.UserID {
		return nil, nil, fmt.Errorf("not a participant of conversation %s: %w", c.ID, errPermissionDenied)
	}
	return c, w, nil
}

// notify stores a notification for recipient unless it is the sender. Failures are
// logged; the message itself was already saved.
func (s *ConversationService) notify(ctx context.Context, senderID, recipientID string, kind models.NotificationType, text, link string) {
	if recipientID == "" || recipientID == senderID {
		return
	}
	n := &models.Notification{UserID: recipientID, Type: kind, Message: text, Link: link}
	if err := s.store.CreateNotification(ctx, n); err != nil {
		s.logger.Warn("Failed to create notification", "user_id", recipientID, "type", kind, "error", err)
	}
}

func conversationLink(wishlistID, conversationID string) string {
	return fmt.Sprintf("/wishlists/%s?conversationId=%s", wishlistID, conversationID)
}
