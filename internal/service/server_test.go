package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"connectrpc.com/connect"
	"golang.org/x/crypto/bcrypt"

	"github.com/NJCA88/SneakyElves/internal/auth"
	"github.com/NJCA88/SneakyElves/internal/feed"
	"github.com/NJCA88/SneakyElves/internal/middleware"
	"github.com/NJCA88/SneakyElves/internal/models"
	"github.com/NJCA88/SneakyElves/internal/purchase"
	"github.com/NJCA88/SneakyElves/internal/storage/sqlite"
	"github.com/NJCA88/SneakyElves/pkg/api"
	"github.com/NJCA88/SneakyElves/pkg/logging"
)

const testPassword = "password123"

// syncPublisher writes feed rows before the RPC returns so tests can read them at once.
type syncPublisher struct {
	t *testing.T
	b *feed.Broadcaster
}

func (p syncPublisher) Broadcast(ev feed.Event) {
	if _, err := p.b.Deliver(context.Background(), ev); err != nil {
		p.t.Errorf("Deliver failed: %v", err)
	}
}

func (p syncPublisher) RevokeAsync(eventType models.EventType, relatedID string) {
	if _, err := p.b.Revoke(context.Background(), eventType, relatedID); err != nil {
		p.t.Errorf("Revoke failed: %v", err)
	}
}

type mountable interface {
	Handler(opts ...connect.HandlerOption) (string, http.Handler)
}

// testEnv is every service behind one httptest server, with a typed client for each.
type testEnv struct {
	store         *sqlite.SQLiteStore
	auth          *api.AuthServiceClient
	groups        *api.GroupServiceClient
	wishlists     *api.WishlistServiceClient
	santa         *api.SantaServiceClient
	feed          *api.FeedServiceClient
	conversations *api.ConversationServiceClient
	notifications *api.NotificationServiceClient
	content       *api.ContentServiceClient
}

func setupTestServer(t *testing.T) *testEnv {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "service.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	logger := logging.Discard()
	broadcaster := feed.NewBroadcaster(store, feed.Options{Workers: 2, Logger: logger})
	publisher := syncPublisher{t: t, b: broadcaster}
	authenticator := auth.NewPasswordAuthenticator(store).WithCost(bcrypt.MinCost)
	coordinator := purchase.NewCoordinator(store, publisher, logger)

	services := []mountable{
		NewAuthService(authenticator, store, publisher, logger),
		NewGroupService(store, authenticator, publisher, logger),
		NewWishlistService(store, coordinator, publisher, logger),
		NewSantaService(store, nil, logger),
		NewFeedService(feed.NewReader(store), broadcaster, logger),
		NewConversationService(store, logger),
		NewNotificationService(store, logger),
		NewContentService(store, logger),
	}

	interceptors := connect.WithInterceptors(middleware.RequireUser(store, api.PublicProcedures...))
	mux := http.NewServeMux()
	for _, svc := range services {
		path, handler := svc.Handler(interceptors)
		mux.Handle(path, handler)
	}
	server := httptest.NewServer(mux)

	t.Cleanup(func() {
		server.Close()
		broadcaster.Close()
		store.Close()
	})

	client := server.Client()
	return &testEnv{
		store:         store,
		auth:          api.NewAuthServiceClient(client, server.URL),
		groups:        api.NewGroupServiceClient(client, server.URL),
		wishlists:     api.NewWishlistServiceClient(client, server.URL),
		santa:         api.NewSantaServiceClient(client, server.URL),
		feed:          api.NewFeedServiceClient(client, server.URL),
		conversations: api.NewConversationServiceClient(client, server.URL),
		notifications: api.NewNotificationServiceClient(client, server.URL),
		content:       api.NewContentServiceClient(client, server.URL),
	}
}

// as builds a request identifying userID. An empty userID sends an anonymous request.
func as[T any](userID string, msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	if userID != "" {
		req.Header().Set(middleware.UserIDHeader, userID)
	}
	return req
}

func emailFor(name string) string {
	return strings.ToLower(name) + "@example.com"
}

// signup registers name with the given invite code (may be empty).
func (e *testEnv) signup(t *testing.T, name, inviteCode string) *api.User {
	t.Helper()
	resp, err := e.auth.Signup(context.Background(), connect.NewRequest(&api.SignupRequest{
		Email:      emailFor(name),
		Name:       name,
		Password:   testPassword,
		InviteCode: inviteCode,
	}))
	if err != nil {
		t.Fatalf("Signup(%s) failed: %v", name, err)
	}
	return resp.Msg.User
}

// family signs up an owner with a personal group and joins the others to it.
func (e *testEnv) family(t *testing.T, owner string, others ...string) (*api.User, []*api.User, string) {
	t.Helper()
	first := e.signup(t, owner, "")
	if len(first.Memberships) != 1 {
		t.Fatalf("%s has %d memberships, want 1", owner, len(first.Memberships))
	}
	group, err := e.store.GetGroup(context.Background(), first.Memberships[0].GroupID)
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	users := make([]*api.User, len(others))
	for i, name := range others {
		users[i] = e.signup(t, name, group.InviteCode)
	}
	return first, users, group.InviteCode
}

func (e *testEnv) makeAdmin(t *testing.T, userID string) {
	t.Helper()
	if err := e.store.SetUserAdmin(context.Background(), userID, true); err != nil {
		t.Fatalf("SetUserAdmin failed: %v", err)
	}
}

func (e *testEnv) wishlistOf(t *testing.T, userID string) *models.Wishlist {
	t.Helper()
	w, err := e.store.GetWishlistByOwner(context.Background(), userID)
	if err != nil {
		t.Fatalf("GetWishlistByOwner failed: %v", err)
	}
	if w == nil {
		t.Fatalf("user %s has no wishlist", userID)
	}
	return w
}

func assertCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got success", want)
	}
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		t.Fatalf("expected connect error, got %v", err)
	}
	if connectErr.Code() != want {
		t.Errorf("code = %v, want %v (%v)", connectErr.Code(), want, err)
	}
}
