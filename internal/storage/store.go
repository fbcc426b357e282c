// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/NJCA88/SneakyElves/internal/models"
)

var (
	// ErrNotFound is wrapped by lookups of a missing entity.
	ErrNotFound = errors.New("not found")

	// ErrConflict is wrapped when a uniqueness constraint would be violated.
	ErrConflict = errors.New("already exists")
)

// UserStore persists user accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail and GetUserByID return nil, nil when no user matches.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// GetUsersByIDs returns a map of user ID to user. Unknown IDs are omitted.
	GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)

	UpdateUser(ctx context.Context, user *models.User) error
	SetUserAdmin(ctx context.Context, userID string, isAdmin bool) error

	// DeleteUser removes the user with their memberships, wishlists and items.
	DeleteUser(ctx context.Context, userID string) error

	// ListUsers returns every user ordered by name.
	ListUsers(ctx context.Context) ([]*models.User, error)

	// ListCoMembers returns users sharing at least one group with userID,
	// including userID itself when it belongs to any group.
	ListCoMembers(ctx context.Context, userID string) ([]*models.User, error)
}

// GroupStore persists groups and memberships.
type GroupStore interface {
	// CreateGroup stores the group. When creatorID is set the creator is added as ADMIN
	// in the same transaction.
	CreateGroup(ctx context.Context, group *models.Group, creatorID string) error
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// GetGroupByInviteCode returns nil, nil when the code is unknown.
	GetGroupByInviteCode(ctx context.Context, code string) (*models.Group, error)
	ListGroups(ctx context.Context) ([]*models.Group, error)
	ListGroupsForUser(ctx context.Context, userID string) ([]*models.Group, error)
	DeleteGroup(ctx context.Context, groupID string) error

	AddMembership(ctx context.Context, m *models.Membership) error
	RemoveMembership(ctx context.Context, userID, groupID string) error
	UpdateMembershipRole(ctx context.Context, userID, groupID string, role models.Role) error

	// GetMembership returns nil, nil when the user is not in the group.
	GetMembership(ctx context.Context, userID, groupID string) (*models.Membership, error)
	ListMembershipsForUser(ctx context.Context, userID string) ([]models.Membership, error)
}

// WishlistStore persists wishlists, invites and items.
type WishlistStore interface {
	CreateWishlist(ctx context.Context, w *models.Wishlist) error

	// GetWishlist returns the wishlist with its items ordered by rank, then ID.
	GetWishlist(ctx context.Context, wishlistID string) (*models.Wishlist, error)

	// GetWishlistByOwner returns the user's earliest wishlist, or nil, nil.
	GetWishlistByOwner(ctx context.Context, userID string) (*models.Wishlist, error)

	// ListWishlists returns wishlists (with items) owned by ownerIDs, or every
	// wishlist when ownerIDs is nil.
	ListWishlists(ctx context.Context, ownerIDs []string) ([]*models.Wishlist, error)
	UpdateWishlist(ctx context.Context, w *models.Wishlist) error
	SetShareToken(ctx context.Context, wishlistID, token string) error
	DeleteWishlist(ctx context.Context, wishlistID string) error

	CreateInvite(ctx context.Context, invite *models.WishlistInvite) error

	// GetInvite returns nil, nil when the token is unknown.
	GetInvite(ctx context.Context, token string) (*models.WishlistInvite, error)

	// CreateItem appends the item at the end of its wishlist's order.
	CreateItem(ctx context.Context, item *models.Item) error
	GetItem(ctx context.Context, itemID string) (*models.Item, error)
	UpdateItem(ctx context.Context, item *models.Item) error
	DeleteItem(ctx context.Context, itemID string) error

	// SetItemPurchased writes the flag only if it differs from the stored value and
	// reports whether it changed.
	SetItemPurchased(ctx context.Context, itemID string, purchased bool) (bool, error)

	// ReorderItems sets rank = index for each supplied item of the wishlist, atomically.
	ReorderItems(ctx context.Context, wishlistID string, itemIDs []string) error
}

// FeedStore persists feed entries.
type FeedStore interface {
	// ListCoMemberIDs returns the distinct IDs of every member of every group
	// userID belongs to, userID included.
	ListCoMemberIDs(ctx context.Context, userID string) ([]string, error)

	// CreateFeedItems inserts all items in one transaction.
	CreateFeedItems(ctx context.Context, items []*models.FeedItem) error

	// ListFeedItems returns a recipient's entries newest first with the actor joined.
	ListFeedItems(ctx context.Context, userID string, limit, offset int) ([]*models.FeedItem, error)

	// DeleteFeedItems removes every entry of the type about relatedID.
	DeleteFeedItems(ctx context.Context, eventType models.EventType, relatedID string) (int64, error)
}

// AssignmentStore persists Secret Santa assignments.
type AssignmentStore interface {
	// ReplaceAssignments deletes the year's assignments and inserts the new set in
	// one transaction.
	ReplaceAssignments(ctx context.Context, year int, assignments []*models.Assignment) error
	DeleteAssignments(ctx context.Context, year int) (int64, error)

	// ListAssignments returns the year's active assignments with giver and receiver joined.
	ListAssignments(ctx context.Context, year int) ([]*models.Assignment, error)
	ListAssignmentsByGiver(ctx context.Context, giverID string, year int) ([]*models.Assignment, error)
}

// ConversationStore persists anonymous Q&A threads.
type ConversationStore interface {
	// CreateConversation stores the conversation and its first message.
	CreateConversation(ctx context.Context, c *models.Conversation, first *models.Message) error
	GetConversation(ctx context.Context, conversationID string) (*models.Conversation, error)

	// ListConversations returns a wishlist's conversations, most recently active first.
	// A non-empty authorID restricts the list to that author's threads.
	ListConversations(ctx context.Context, wishlistID, authorID string) ([]*models.Conversation, error)

	// AddMessage appends a message and bumps the conversation's UpdatedAt.
	AddMessage(ctx context.Context, msg *models.Message) error
}

// NotificationStore persists user notifications.
type NotificationStore interface {
	CreateNotification(ctx context.Context, n *models.Notification) error
	ListNotifications(ctx context.Context, userID string, limit int) ([]*models.Notification, error)

	// MarkNotificationRead fails with ErrNotFound unless the notification belongs to userID.
	MarkNotificationRead(ctx context.Context, userID, notificationID string) error
	MarkAllNotificationsRead(ctx context.Context, userID string) (int64, error)
}

// ContentStore persists admin-editable pages.
type ContentStore interface {
	// GetContent returns nil, nil for a page that was never set.
	GetContent(ctx context.Context, key models.ContentKey) (*models.Content, error)
	SetContent(ctx context.Context, c *models.Content) error
}

// Store defines the full storage surface used by the services.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	UserStore
	GroupStore
	WishlistStore
	FeedStore
	AssignmentStore
	ConversationStore
	NotificationStore
	ContentStore

	// Close releases any resources held by the store.
	Close() error
}
