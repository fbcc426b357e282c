package api

import "encoding/json"

// Empty is the request or response of procedures that carry no fields.
type Empty struct{}

// User is an account as seen by itself or an administrator.
type User struct {
	ID                string       `json:"id"`
	Name              string       `json:"name"`
	Email             string       `json:"email"`
	IsAdmin           bool         `json:"isAdmin"`
	ProfilePictureURL string       `json:"profilePictureUrl,omitempty"`
	CreatedAt         int64        `json:"createdAt"`
	Memberships       []Membership `json:"memberships"`
}

// UserSummary is the public identity shown to other members.
type UserSummary struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Email             string `json:"email,omitempty"`
	ProfilePictureURL string `json:"profilePictureUrl,omitempty"`
}

// Membership is one of a user's groups.
type Membership struct {
	GroupID   string `json:"groupId"`
	GroupName string `json:"groupName"`
	Role      string `json:"role"`
}

// Member is one user of a group.
type Member struct {
	UserID            string `json:"userId"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	ProfilePictureURL string `json:"profilePictureUrl,omitempty"`
	Role              string `json:"role"`
}

// Group is a circle of users sharing wishlists and a feed.
type Group struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	InviteCode  string   `json:"inviteCode"`
	MemberCount int      `json:"memberCount"`
	Members     []Member `json:"members,omitempty"`
	CreatedAt   int64    `json:"createdAt"`
}

// Item is one wishlist entry.
type Item struct {
	ID         string   `json:"id"`
	WishlistID string   `json:"wishlistId"`
	Name       string   `json:"name"`
	Price      *float64 `json:"price,omitempty"`
	URL        string   `json:"url,omitempty"`
	Note       string   `json:"note,omitempty"`
	ImageURL   string   `json:"imageUrl,omitempty"`
	Purchased  bool     `json:"purchased"`
	Rank       int      `json:"rank"`
	CreatedAt  int64    `json:"createdAt"`
}

// Wishlist is a user's list. ShareToken is only filled in for the owner.
type Wishlist struct {
	ID                  string       `json:"id"`
	Title               string       `json:"title"`
	Owner               *UserSummary `json:"owner"`
	ShareToken          string       `json:"shareToken,omitempty"`
	GeneralInstructions string       `json:"generalInstructions,omitempty"`
	Items               []Item       `json:"items"`
	CreatedAt           int64        `json:"createdAt"`
}

// FeedItem is one activity entry. Data holds the event payload, whose shape depends on Type.
type FeedItem struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Actor     *UserSummary    `json:"actor"`
	Data      json.RawMessage `json:"data"`
	RelatedID string          `json:"relatedId,omitempty"`
	CreatedAt int64           `json:"createdAt"`
}

// Assignment is a Secret Santa pairing.
type Assignment struct {
	ID        string       `json:"id"`
	Giver     *UserSummary `json:"giver,omitempty"`
	Receiver  *UserSummary `json:"receiver"`
	Role      string       `json:"role"`
	Year      int          `json:"year"`
	CreatedAt int64        `json:"createdAt"`
}

// AssignmentInput is a caller-chosen pairing for manual assignment.
type AssignmentInput struct {
	GiverID    string `json:"giverId"`
	ReceiverID string `json:"receiverId"`
	Role       string `json:"role"`
}

// Message is one post in a conversation. The asker's identity is never exposed:
// FromOwner tells the two parties apart and Mine marks the caller's own posts.
type Message struct {
	ID        string `json:"id"`
	Body      string `json:"body"`
	FromOwner bool   `json:"fromOwner"`
	Mine      bool   `json:"mine"`
	CreatedAt int64  `json:"createdAt"`
}

// Conversation is an anonymous question thread about a wishlist or one of its items.
type Conversation struct {
	ID          string    `json:"id"`
	WishlistID  string    `json:"wishlistId"`
	ItemID      string    `json:"itemId,omitempty"`
	ItemName    string    `json:"itemName,omitempty"`
	Mine        bool      `json:"mine"`
	Messages    []Message `json:"messages,omitempty"`
	LastMessage *Message  `json:"lastMessage,omitempty"`
	CreatedAt   int64     `json:"createdAt"`
	UpdatedAt   int64     `json:"updatedAt"`
}

// Notification is a direct alert to the caller.
type Notification struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Message   string `json:"message"`
	Link      string `json:"link,omitempty"`
	Read      bool   `json:"read"`
	CreatedAt int64  `json:"createdAt"`
}

// Auth

type SignupRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`

	// InviteCode joins a group by its six character code.
	InviteCode string `json:"inviteCode,omitempty"`

	// InviteToken joins the groups linked to a wishlist invite.
	InviteToken string `json:"inviteToken,omitempty"`
}

type SignupResponse struct {
	User *User `json:"user"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User *User `json:"user"`
}

type GetCurrentUserResponse struct {
	User *User `json:"user"`
}

type UpdateProfileRequest struct {
	Name              string `json:"name"`
	ProfilePictureURL string `json:"profilePictureUrl"`
}

type UpdateProfileResponse struct {
	User *User `json:"user"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// Groups and users

type CreateGroupRequest struct {
	Name string `json:"name"`
}

type CreateGroupResponse struct {
	Group *Group `json:"group"`
}

type GetGroupRequest struct {
	GroupID string `json:"groupId"`
}

type GetGroupResponse struct {
	Group *Group `json:"group"`
}

type ListGroupsResponse struct {
	Groups []*Group `json:"groups"`
}

type DeleteGroupRequest struct {
	GroupID string `json:"groupId"`
}

type ValidateInviteCodeRequest struct {
	Code string `json:"code"`
}

type ValidateInviteCodeResponse struct {
	Valid     bool   `json:"valid"`
	GroupName string `json:"groupName,omitempty"`
}

type JoinGroupRequest struct {
	InviteCode string `json:"inviteCode"`
}

type JoinGroupResponse struct {
	Membership *Membership `json:"membership"`
}

type AddMemberRequest struct {
	GroupID string `json:"groupId"`
	UserID  string `json:"userId"`
	Role    string `json:"role,omitempty"`
}

type AddMemberResponse struct {
	Membership *Membership `json:"membership"`
}

type RemoveMemberRequest struct {
	GroupID string `json:"groupId"`
	UserID  string `json:"userId"`
}

type UpdateMemberRoleRequest struct {
	GroupID string `json:"groupId"`
	UserID  string `json:"userId"`
	Role    string `json:"role"`
}

type UpdateMemberRoleResponse struct {
	Membership *Membership `json:"membership"`
}

type SetSystemAdminRequest struct {
	UserID  string `json:"userId"`
	IsAdmin bool   `json:"isAdmin"`
}

type SetSystemAdminResponse struct {
	User *User `json:"user"`
}

type ListUsersResponse struct {
	Users []*User `json:"users"`
}

type DeleteUserRequest struct {
	UserID string `json:"userId"`
}

type ResetPasswordRequest struct {
	UserID      string `json:"userId"`
	NewPassword string `json:"newPassword"`
}

// Wishlists and items

type CreateWishlistRequest struct {
	Title string `json:"title"`
}

type CreateWishlistResponse struct {
	Wishlist *Wishlist `json:"wishlist"`
}

type GetWishlistRequest struct {
	WishlistID string `json:"wishlistId"`

	// ShareToken is a wishlist share token or invite token; it grants read access
	// without an identity.
	ShareToken string `json:"shareToken,omitempty"`
}

type GetWishlistResponse struct {
	Wishlist *Wishlist `json:"wishlist"`
	IsOwner  bool      `json:"isOwner"`
}

type ListWishlistsResponse struct {
	Wishlists []*Wishlist `json:"wishlists"`
}

type UpdateWishlistRequest struct {
	WishlistID          string `json:"wishlistId"`
	Title               string `json:"title"`
	GeneralInstructions string `json:"generalInstructions"`
}

type UpdateWishlistResponse struct {
	Wishlist *Wishlist `json:"wishlist"`
}

type DeleteWishlistRequest struct {
	WishlistID string `json:"wishlistId"`
}

type ShareWishlistRequest struct {
	WishlistID string `json:"wishlistId"`
}

type ShareWishlistResponse struct {
	ShareToken string `json:"shareToken"`
}

type CreateInviteRequest struct {
	WishlistID string   `json:"wishlistId"`
	GroupIDs   []string `json:"groupIds"`

	// CreateNewGroup adds a fresh group, owned by the wishlist owner, for the guest.
	CreateNewGroup bool `json:"createNewGroup"`
}

type CreateInviteResponse struct {
	Token    string   `json:"token"`
	GroupIDs []string `json:"groupIds"`
	NewGroup *Group   `json:"newGroup,omitempty"`
}

type AddItemRequest struct {
	WishlistID string   `json:"wishlistId"`
	Name       string   `json:"name"`
	Price      *float64 `json:"price,omitempty"`
	URL        string   `json:"url,omitempty"`
	Note       string   `json:"note,omitempty"`
	ImageURL   string   `json:"imageUrl,omitempty"`
}

type AddItemResponse struct {
	Item *Item `json:"item"`
}

type UpdateItemRequest struct {
	ItemID   string   `json:"itemId"`
	Name     string   `json:"name"`
	Price    *float64 `json:"price,omitempty"`
	URL      string   `json:"url,omitempty"`
	Note     string   `json:"note,omitempty"`
	ImageURL string   `json:"imageUrl,omitempty"`
}

type UpdateItemResponse struct {
	Item *Item `json:"item"`
}

type DeleteItemRequest struct {
	ItemID string `json:"itemId"`
}

type ReorderItemsRequest struct {
	WishlistID string   `json:"wishlistId"`
	ItemIDs    []string `json:"itemIds"`
}

type SetPurchasedRequest struct {
	ItemID    string `json:"itemId"`
	Purchased bool   `json:"purchased"`
}

type SetPurchasedResponse struct {
	Item *Item `json:"item"`
}

// Secret Santa

type CreateAssignmentsRequest struct {
	UserIDs  []string `json:"userIds"`
	ElfCount int      `json:"elfCount"`

	// Year defaults to the current year.
	Year int `json:"year,omitempty"`
}

type CreateAssignmentsResponse struct {
	Year             int `json:"year"`
	TotalAssignments int `json:"totalAssignments"`
	SantaAssignments int `json:"santaAssignments"`
	ElfAssignments   int `json:"elfAssignments"`
}

type CreateManualAssignmentsRequest struct {
	Assignments []AssignmentInput `json:"assignments"`
	ElfCount    int               `json:"elfCount"`
	Year        int               `json:"year,omitempty"`
}

type CreateManualAssignmentsResponse struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

type YearRequest struct {
	Year int `json:"year,omitempty"`
}

type ResetAssignmentsResponse struct {
	Year    int   `json:"year"`
	Deleted int64 `json:"deleted"`
}

type GetMyAssignmentResponse struct {
	Santa *Assignment  `json:"santa"`
	Elves []Assignment `json:"elves"`
}

type ListAssignmentsResponse struct {
	Assignments []Assignment `json:"assignments"`
}

type ListParticipantsResponse struct {
	Participants []UserSummary `json:"participants"`
}

// Feed

type GetFeedRequest struct {
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
}

type GetFeedResponse struct {
	Items []FeedItem `json:"items"`
}

type RevokeFeedItemsRequest struct {
	Type      string `json:"type"`
	RelatedID string `json:"relatedId"`
}

type RevokeFeedItemsResponse struct {
	Revoked int64 `json:"revoked"`
}

// Conversations

type ListConversationsRequest struct {
	WishlistID string `json:"wishlistId"`
}

type ListConversationsResponse struct {
	Conversations []Conversation `json:"conversations"`
}

type GetConversationRequest struct {
	ConversationID string `json:"conversationId"`
}

type GetConversationResponse struct {
	Conversation *Conversation `json:"conversation"`
}

type StartConversationRequest struct {
	WishlistID string `json:"wishlistId"`
	ItemID     string `json:"itemId,omitempty"`
	Body       string `json:"body"`
}

type StartConversationResponse struct {
	Conversation *Conversation `json:"conversation"`
}

type PostMessageRequest struct {
	ConversationID string `json:"conversationId"`
	Body           string `json:"body"`
}

type PostMessageResponse struct {
	Message *Message `json:"message"`
}

// Notifications

type ListNotificationsResponse struct {
	Notifications []Notification `json:"notifications"`
	UnreadCount   int            `json:"unreadCount"`
}

type MarkReadRequest struct {
	NotificationID string `json:"notificationId"`
}

type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}

// Content

// PageContent is an admin-editable page. Content is empty until an admin sets it.
type PageContent struct {
	Content   string `json:"content"`
	UpdatedAt int64  `json:"updatedAt,omitempty"`
}

type UpdateContentRequest struct {
	Content string `json:"content"`
}
