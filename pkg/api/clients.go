package api

import (
	"context"
	"strings"

	"connectrpc.com/connect"
)

// AuthServiceClient calls the AuthService procedures.
type AuthServiceClient struct {
	signup         *connect.Client[SignupRequest, SignupResponse]
	login          *connect.Client[LoginRequest, LoginResponse]
	getCurrentUser *connect.Client[Empty, GetCurrentUserResponse]
	updateProfile  *connect.Client[UpdateProfileRequest, UpdateProfileResponse]
	changePassword *connect.Client[ChangePasswordRequest, Empty]
}

// NewAuthServiceClient returns a client for the AuthService at baseURL.
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *AuthServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = ClientOptions(opts...)
	return &AuthServiceClient{
		signup:         connect.NewClient[SignupRequest, SignupResponse](httpClient, baseURL+AuthSignupProcedure, opts...),
		login:          connect.NewClient[LoginRequest, LoginResponse](httpClient, baseURL+AuthLoginProcedure, opts...),
		getCurrentUser: connect.NewClient[Empty, GetCurrentUserResponse](httpClient, baseURL+AuthGetCurrentUserProcedure, opts...),
		updateProfile:  connect.NewClient[UpdateProfileRequest, UpdateProfileResponse](httpClient, baseURL+AuthUpdateProfileProcedure, opts...),
		changePassword: connect.NewClient[ChangePasswordRequest, Empty](httpClient, baseURL+AuthChangePasswordProcedure, opts...),
	}
}

func (c *AuthServiceClient) Signup(ctx context.Context, req *connect.Request[SignupRequest]) (*connect.Response[SignupResponse], error) {
	return c.signup.CallUnary(ctx, req)
}

func (c *AuthServiceClient) Login(ctx context.Context, req *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}

func (c *AuthServiceClient) GetCurrentUser(ctx context.Context, req *connect.Request[Empty]) (*connect.Response[GetCurrentUserResponse], error) {
	return c.getCurrentUser.CallUnary(ctx, req)
}

func (c *AuthServiceClient) UpdateProfile(ctx context.Context, req *connect.Request[UpdateProfileRequest]) (*connect.Response[UpdateProfileResponse], error) {
	return c.updateProfile.CallUnary(ctx, req)
}

func (c *AuthServiceClient) ChangePassword(ctx context.Context, req *connect.Request[ChangePasswordRequest]) (*connect.Response[Empty], error) {
	return c.changePassword.CallUnary(ctx, req)
}

// GroupServiceClient calls the GroupService procedures.
type GroupServiceClient struct {
	createGroup        *connect.Client[CreateGroupRequest, CreateGroupResponse]
	getGroup           *connect.Client[GetGroupRequest, GetGroupResponse]
	listGroups         *connect.Client[Empty, ListGroupsResponse]
	deleteGroup        *connect.Client[DeleteGroupRequest, Empty]
	validateInviteCode *connect.Client[ValidateInviteCodeRequest, ValidateInviteCodeResponse]
	joinGroup          *connect.Client[JoinGroupRequest, JoinGroupResponse]
	addMember          *connect.Client[AddMemberRequest, AddMemberResponse]
	removeMember       *connect.Client[RemoveMemberRequest, Empty]
	updateMemberRole   *connect.Client[UpdateMemberRoleRequest, UpdateMemberRoleResponse]
	setSystemAdmin     *connect.Client[SetSystemAdminRequest, SetSystemAdminResponse]
	listUsers          *connect.Client[Empty, ListUsersResponse]
	deleteUser         *connect.Client[DeleteUserRequest, Empty]
	resetPassword      *connect.Client[ResetPasswordRequest, Empty]
}

// NewGroupServiceClient returns a client for the GroupService at baseURL.
func NewGroupServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *GroupServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = ClientOptions(opts...)
	return &GroupServiceClient{
		createGroup:        connect.NewClient[CreateGroupRequest, CreateGroupResponse](httpClient, baseURL+GroupCreateGroupProcedure, opts...),
		getGroup:           connect.NewClient[GetGroupRequest, GetGroupResponse](httpClient, baseURL+GroupGetGroupProcedure, opts...),
		listGroups:         connect.NewClient[Empty, ListGroupsResponse](httpClient, baseURL+GroupListGroupsProcedure, opts...),
		deleteGroup:        connect.NewClient[DeleteGroupRequest, Empty](httpClient, baseURL+GroupDeleteGroupProcedure, opts...),
		validateInviteCode: connect.NewClient[ValidateInviteCodeRequest, ValidateInviteCodeResponse](httpClient, baseURL+GroupValidateInviteCodeProcedure, opts...),
		joinGroup:          connect.NewClient[JoinGroupRequest, JoinGroupResponse](httpClient, baseURL+GroupJoinGroupProcedure, opts...),
		addMember:          connect.NewClient[AddMemberRequest, AddMemberResponse](httpClient, baseURL+GroupAddMemberProcedure, opts...),
		removeMember:       connect.NewClient[RemoveMemberRequest, Empty](httpClient, baseURL+GroupRemoveMemberProcedure, opts...),
		updateMemberRole:   connect.NewClient[UpdateMemberRoleRequest, UpdateMemberRoleResponse](httpClient, baseURL+GroupUpdateMemberRoleProcedure, opts...),
		setSystemAdmin:     connect.NewClient[SetSystemAdminRequest, SetSystemAdminResponse](httpClient, baseURL+GroupSetSystemAdminProcedure, opts...),
		listUsers:          connect.NewClient[Empty, ListUsersResponse](httpClient, baseURL+GroupListUsersProcedure, opts...),
		deleteUser:         connect.NewClient[DeleteUserRequest, Empty](httpClient, baseURL+GroupDeleteUserProcedure, opts...),
		resetPassword:      connect.NewClient[ResetPasswordRequest, Empty](httpClient, baseURL+GroupResetPasswordProcedure, opts...),
	}
}

func (c *GroupServiceClient) CreateGroup(ctx context.Context, req *connect.Request[CreateGroupRequest]) (*connect.Response[CreateGroupResponse], error) {
	return c.createGroup.CallUnary(ctx, req)
}

func (c *GroupServiceClient) GetGroup(ctx context.Context, req *connect.Request[GetGroupRequest]) (*connect.Response[GetGroupResponse], error) {
	return c.getGroup.CallUnary(ctx, req)
}

func (c *GroupServiceClient) ListGroups(ctx context.Context, req *connect.Request[Empty]) (*connect.Response[ListGroupsResponse], error) {
	return c.listGroups.CallUnary(ctx, req)
}

func (c *GroupServiceClient) DeleteGroup(ctx context.Context, req *connect.Request[DeleteGroupRequest]) (*connect.Response[Empty], error) {
	return c.deleteGroup.CallUnary(ctx, req)
}

func (c *GroupServiceClient) ValidateInviteCode(ctx context.Context, req *connect.Request[ValidateInviteCodeRequest]) (*connect.Response[ValidateInviteCodeResponse], error) {
	return c.validateInviteCode.CallUnary(ctx, req)
}

func (c *GroupServiceClient) JoinGroup(ctx context.Context, req *connect.Request[JoinGroupRequest]) (*connect.Response[JoinGroupResponse], error) {
	return c.joinGroup.CallUnary(ctx, req)
}

func (c *GroupServiceClient) AddMember(ctx context.Context, req *connect.Request[AddMemberRequest]) (*connect.Response[AddMemberResponse], error) {
	return c.addMember.CallUnary(ctx, req)
}

func (c *GroupServiceClient) RemoveMember(ctx context.Context, req *connect.Request[RemoveMemberRequest]) (*connect.Response[Empty], error) {
	return c.removeMember.CallUnary(ctx, req)
}

func (c *GroupServiceClient) UpdateMemberRole(ctx context.Context, req *connect.Request[UpdateMemberRoleRequest]) (*connect.Response[UpdateMemberRoleResponse], error) {
	return c.updateMemberRole.CallUnary(ctx, req)
}

func (c *GroupServiceClient) SetSystemAdmin(ctx context.Context, req *connect.Request[SetSystemAdminRequest]) (*connect.Response[SetSystemAdminResponse], error) {
	return c.setSystemAdmin.CallUnary(ctx, req)
}

func (c *GroupServiceClient) ListUsers(ctx context.Context, req *connect.Request[Empty]) (*connect.Response[ListUsersResponse], error) {
	return c.listUsers.CallUnary(ctx, req)
}

func (c *GroupServiceClient) DeleteUser(ctx context.Context, req *connect.Request[DeleteUserRequest]) (*connect.Response[Empty], error) {
	return c.deleteUser.CallUnary(ctx, req)
}

func (c *GroupServiceClient) ResetPassword(ctx context.Context, req *connect.Request[ResetPasswordRequest]) (*connect.Response[Empty], error) {
	return c.resetPassword.CallUnary(ctx, req)
}

// WishlistServiceClient calls the WishlistService procedures.
type WishlistServiceClient struct {
	createWishlist *connect.Client[CreateWishlistRequest, CreateWishlistResponse]
	getWishlist    *connect.Client[GetWishlistRequest, GetWishlistResponse]
	listWishlists  *connect.Client[Empty, ListWishlistsResponse]
	updateWishlist *connect.Client[UpdateWishlistRequest, UpdateWishlistResponse]
	deleteWishlist *connect.Client[DeleteWishlistRequest, Empty]
	shareWishlist  *connect.Client[ShareWishlistRequest, ShareWishlistResponse]
	createInvite   *connect.Client[CreateInviteRequest, CreateInviteResponse]
	addItem        *connect.Client[AddItemRequest, AddItemResponse]
	updateItem     *connect.Client[UpdateItemRequest, UpdateItemResponse]
	deleteItem     *connect.Client[DeleteItemRequest, Empty]
	reorderItems   *connect.Client[ReorderItemsRequest, Empty]
	setPurchased   *connect.Client[SetPurchasedRequest, SetPurchasedResponse]
}

// NewWishlistServiceClient returns a client for the WishlistService at baseURL.
func NewWishlistServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *WishlistServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = ClientOptions(opts...)
	return &WishlistServiceClient{
		createWishlist: connect.NewClient[CreateWishlistRequest, CreateWishlistResponse](httpClient, baseURL+WishlistCreateWishlistProcedure, opts...),
		getWishlist:    connect.NewClient[GetWishlistRequest, GetWishlistResponse](httpClient, baseURL+WishlistGetWishlistProcedure, opts...),
		listWishlists:  connect.NewClient[Empty, ListWishlistsResponse](httpClient, baseURL+WishlistListWishlistsProcedure, opts...),
		updateWishlist: connect.NewClient[UpdateWishlistRequest, UpdateWishlistResponse](httpClient, baseURL+WishlistUpdateWishlistProcedure, opts...),
		deleteWishlist: connect.NewClient[DeleteWishlistRequest, Empty](httpClient, baseURL+WishlistDeleteWishlistProcedure, opts...),
		shareWishlist:  connect.NewClient[ShareWishlistRequest, ShareWishlistResponse](httpClient, baseURL+WishlistShareWishlistProcedure, opts...),
		createInvite:   connect.NewClient[CreateInviteRequest, CreateInviteResponse](httpClient, baseURL+WishlistCreateInviteProcedure, opts...),
		addItem:        connect.NewClient[AddItemRequest, AddItemResponse](httpClient, baseURL+WishlistAddItemProcedure, opts...),
		updateItem:     connect.NewClient[UpdateItemRequest, UpdateItemResponse](httpClient, baseURL+WishlistUpdateItemProcedure, opts...),
		deleteItem:     connect.NewClient[DeleteItemRequest, Empty](httpClient, baseURL+WishlistDeleteItemProcedure, opts...),
		reorderItems:   connect.NewClient[ReorderItemsRequest, Empty](httpClient, baseURL+WishlistReorderItemsProcedure, opts...),
		setPurchased:   connect.NewClient[SetPurchasedRequest, SetPurchasedResponse](httpClient, baseURL+WishlistSetPurchasedProcedure, opts...),
	}
}

func (c *WishlistServiceClient) CreateWishlist(ctx context.Context, req *connect.Request[CreateWishlistRequest]) (*connect.Response[CreateWishlistResponse], error) {
	return c.createWishlist.CallUnary(ctx, req)
}

func (c *WishlistServiceClient) GetWishlist(ctx context.Context, req *connect.Request[GetWishlistRequest]) (*connect.Response[GetWishlistResponse], error) {
	return c.getWishlist.CallUnary(ctx, req)
}

func (c *WishlistServiceClient) ListWishlists(ctx context.Context, req *connect.Request[Empty]) (*connect.Response[ListWishlistsResponse], error) {
	return c.listWishlists.CallUnary(ctx, req)
}

func (c *WishlistServiceClient) UpdateWishlist(ctx context.Context, req *connect.Request[UpdateWishlistRequest]) (*connect.Response[UpdateWishlistResponse], error) {
	return c.updateWishlist.CallUnary(ctx, req)
}

func (c *WishlistServiceClient) DeleteWishlist(ctx context.Context, req *connect.Request[DeleteWishlistRequest]) (*connect.Response[Empty], error) {
	return c.deleteWishlist.CallUnary(ctx, req)
}

func (c *WishlistServiceClient) ShareWishlist(ctx context.Context, req *connect.Request[ShareWishlistRequest]) (*connect.Response[ShareWishlistResponse], error) {
	return c.shareWishlist.CallUnary(ctx, req)
}

func (c *WishlistServiceClient) CreateInvite(ctx context.Context, req *connect.Request[CreateInviteRequest]) (*connect.Response[CreateInviteResponse], error) {
	return c.createInvite.CallUnary(ctx, req)
}

func (c *WishlistServiceClient) AddItem(ctx context.Context, req *connect.Request[AddItemRequest]) (*connect.Response[AddItemResponse], error) {
	return c.addItem.CallUnary(ctx, req)
}

func (c *WishlistServiceClient) UpdateItem(ctx context.Context, req *connect.Request[UpdateItemRequest]) (*connect.Response[UpdateItemResponse], error) {
	return c.updateItem.CallUnary(ctx, req)
}

func (c *WishlistServiceClient) DeleteItem(ctx context.Context, req *connect.Request[DeleteItemRequest]) (*connect.Response[Empty], error) {
	return c.deleteItem.CallUnary(ctx, req)
}

func (c *WishlistServiceClient) ReorderItems(ctx context.Context, req *connect.Request[ReorderItemsRequest]) (*connect.Response[Empty], error) {
	return c.reorderItems.CallUnary(ctx, req)
}

func (c *WishlistServiceClient) SetPurchased(ctx context.Context, req *connect.Request[SetPurchasedRequest]) (*connect.Response[SetPurchasedResponse], error) {
	return c.setPurchased.CallUnary(ctx, req)
}

// SantaServiceClient calls the SantaService procedures.
type SantaServiceClient struct {
	createAssignments       *connect.Client[CreateAssignmentsRequest, CreateAssignmentsResponse]
	createManualAssignments *connect.Client[CreateManualAssignmentsRequest, CreateManualAssignmentsResponse]
	resetAssignments        *connect.Client[YearRequest, ResetAssignmentsResponse]
	getMyAssignment         *connect.Client[YearRequest, GetMyAssignmentResponse]
	listAssignments         *connect.Client[YearRequest, ListAssignmentsResponse]
	listParticipants        *connect.Client[YearRequest, ListParticipantsResponse]
}

// NewSantaServiceClient returns a client for the SantaService at baseURL.
func NewSantaServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *SantaServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = ClientOptions(opts...)
	return &SantaServiceClient{
		createAssignments:       connect.NewClient[CreateAssignmentsRequest, CreateAssignmentsResponse](httpClient, baseURL+SantaCreateAssignmentsProcedure, opts...),
		createManualAssignments: connect.NewClient[CreateManualAssignmentsRequest, CreateManualAssignmentsResponse](httpClient, baseURL+SantaCreateManualAssignmentsProcedure, opts...),
		resetAssignments:        connect.NewClient[YearRequest, ResetAssignmentsResponse](httpClient, baseURL+SantaResetAssignmentsProcedure, opts...),
		getMyAssignment:         connect.NewClient[YearRequest, GetMyAssignmentResponse](httpClient, baseURL+SantaGetMyAssignmentProcedure, opts...),
		listAssignments:         connect.NewClient[YearRequest, ListAssignmentsResponse](httpClient, baseURL+SantaListAssignmentsProcedure, opts...),
		listParticipants:        connect.NewClient[YearRequest, ListParticipantsResponse](httpClient, baseURL+SantaListParticipantsProcedure, opts...),
	}
}

func (c *SantaServiceClient) CreateAssignments(ctx context.Context, req *connect.Request[CreateAssignmentsRequest]) (*connect.Response[CreateAssignmentsResponse], error) {
	return c.createAssignments.CallUnary(ctx, req)
}

func (c *SantaServiceClient) CreateManualAssignments(ctx context.Context, req *connect.Request[CreateManualAssignmentsRequest]) (*connect.Response[CreateManualAssignmentsResponse], error) {
	return c.createManualAssignments.CallUnary(ctx, req)
}

func (c *SantaServiceClient) ResetAssignments(ctx context.Context, req *connect.Request[YearRequest]) (*connect.Response[ResetAssignmentsResponse], error) {
	return c.resetAssignments.CallUnary(ctx, req)
}

func (c *SantaServiceClient) GetMyAssignment(ctx context.Context, req *connect.Request[YearRequest]) (*connect.Response[GetMyAssignmentResponse], error) {
	return c.getMyAssignment.CallUnary(ctx, req)
}

func (c *SantaServiceClient) ListAssignments(ctx context.Context, req *connect.Request[YearRequest]) (*connect.Response[ListAssignmentsResponse], error) {
	return c.listAssignments.CallUnary(ctx, req)
}

func (c *SantaServiceClient) ListParticipants(ctx context.Context, req *connect.Request[YearRequest]) (*connect.Response[ListParticipantsResponse], error) {
	return c.listParticipants.CallUnary(ctx, req)
}

// FeedServiceClient calls the FeedService procedures.
type FeedServiceClient struct {
	getFeed         *connect.Client[GetFeedRequest, GetFeedResponse]
	revokeFeedItems *connect.Client[RevokeFeedItemsRequest, RevokeFeedItemsResponse]
}

// NewFeedServiceClient returns a client for the FeedService at baseURL.
func NewFeedServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *FeedServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = ClientOptions(opts...)
	return &FeedServiceClient{
		getFeed:         connect.NewClient[GetFeedRequest, GetFeedResponse](httpClient, baseURL+FeedGetFeedProcedure, opts...),
		revokeFeedItems: connect.NewClient[RevokeFeedItemsRequest, RevokeFeedItemsResponse](httpClient, baseURL+FeedRevokeFeedItemsProcedure, opts...),
	}
}

func (c *FeedServiceClient) GetFeed(ctx context.Context, req *connect.Request[GetFeedRequest]) (*connect.Response[GetFeedResponse], error) {
	return c.getFeed.CallUnary(ctx, req)
}

func (c *FeedServiceClient) RevokeFeedItems(ctx context.Context, req *connect.Request[RevokeFeedItemsRequest]) (*connect.Response[RevokeFeedItemsResponse], error) {
	return c.revokeFeedItems.CallUnary(ctx, req)
}

// ConversationServiceClient calls the ConversationService procedures.
type ConversationServiceClient struct {
	listConversations *connect.Client[ListConversationsRequest, ListConversationsResponse]
	getConversation   *connect.Client[GetConversationRequest, GetConversationResponse]
	startConversation *connect.Client[StartConversationRequest, StartConversationResponse]
	postMessage       *connect.Client[PostMessageRequest, PostMessageResponse]
}

// NewConversationServiceClient returns a client for the ConversationService at baseURL.
func NewConversationServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *ConversationServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = ClientOptions(opts...)
	return &ConversationServiceClient{
		listConversations: connect.NewClient[ListConversationsRequest, ListConversationsResponse](httpClient, baseURL+ConversationListConversationsProcedure, opts...),
		getConversation:   connect.NewClient[GetConversationRequest, GetConversationResponse](httpClient, baseURL+ConversationGetConversationProcedure, opts...),
		startConversation: connect.NewClient[StartConversationRequest, StartConversationResponse](httpClient, baseURL+ConversationStartConversationProcedure, opts...),
		postMessage:       connect.NewClient[PostMessageRequest, PostMessageResponse](httpClient, baseURL+ConversationPostMessageProcedure, opts...),
	}
}

func (c *ConversationServiceClient) ListConversations(ctx context.Context, req *connect.Request[ListConversationsRequest]) (*connect.Response[ListConversationsResponse], error) {
	return c.listConversations.CallUnary(ctx, req)
}

func (c *ConversationServiceClient) GetConversation(ctx context.Context, req *connect.Request[GetConversationRequest]) (*connect.Response[GetConversationResponse], error) {
	return c.getConversation.CallUnary(ctx, req)
}

func (c *ConversationServiceClient) StartConversation(ctx context.Context, req *connect.Request[StartConversationRequest]) (*connect.Response[StartConversationResponse], error) {
	return c.startConversation.CallUnary(ctx, req)
}

func (c *ConversationServiceClient) PostMessage(ctx context.Context, req *connect.Request[PostMessageRequest]) (*connect.Response[PostMessageResponse], error) {
	return c.postMessage.CallUnary(ctx, req)
}

// NotificationServiceClient calls the NotificationService procedures.
type NotificationServiceClient struct {
	listNotifications *connect.Client[Empty, ListNotificationsResponse]
	markRead          *connect.Client[MarkReadRequest, Empty]
	markAllRead       *connect.Client[Empty, MarkAllReadResponse]
}

// NewNotificationServiceClient returns a client for the NotificationService at baseURL.
func NewNotificationServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *NotificationServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = ClientOptions(opts...)
	return &NotificationServiceClient{
		listNotifications: connect.NewClient[Empty, ListNotificationsResponse](httpClient, baseURL+NotificationListNotificationsProcedure, opts...),
		markRead:          connect.NewClient[MarkReadRequest, Empty](httpClient, baseURL+NotificationMarkReadProcedure, opts...),
		markAllRead:       connect.NewClient[Empty, MarkAllReadResponse](httpClient, baseURL+NotificationMarkAllReadProcedure, opts...),
	}
}

func (c *NotificationServiceClient) ListNotifications(ctx context.Context, req *connect.Request[Empty]) (*connect.Response[ListNotificationsResponse], error) {
	return c.listNotifications.CallUnary(ctx, req)
}

func (c *NotificationServiceClient) MarkRead(ctx context.Context, req *connect.Request[MarkReadRequest]) (*connect.Response[Empty], error) {
	return c.markRead.CallUnary(ctx, req)
}

func (c *NotificationServiceClient) MarkAllRead(ctx context.Context, req *connect.Request[Empty]) (*connect.Response[MarkAllReadResponse], error) {
	return c.markAllRead.CallUnary(ctx, req)
}

// ContentServiceClient calls the ContentService procedures.
type ContentServiceClient struct {
	getAbout      *connect.Client[Empty, PageContent]
	updateAbout   *connect.Client[UpdateContentRequest, PageContent]
	getLanding    *connect.Client[Empty, PageContent]
	updateLanding *connect.Client[UpdateContentRequest, PageContent]
}

// NewContentServiceClient returns a client for the ContentService at baseURL.
func NewContentServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *ContentServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = ClientOptions(opts...)
	return &ContentServiceClient{
		getAbout:      connect.NewClient[Empty, PageContent](httpClient, baseURL+ContentGetAboutProcedure, opts...),
		updateAbout:   connect.NewClient[UpdateContentRequest, PageContent](httpClient, baseURL+ContentUpdateAboutProcedure, opts...),
		getLanding:    connect.NewClient[Empty, PageContent](httpClient, baseURL+ContentGetLandingProcedure, opts...),
		updateLanding: connect.NewClient[UpdateContentRequest, PageContent](httpClient, baseURL+ContentUpdateLandingProcedure, opts...),
	}
}

func (c *ContentServiceClient) GetAbout(ctx context.Context, req *connect.Request[Empty]) (*connect.Response[PageContent], error) {
	return c.getAbout.CallUnary(ctx, req)
}

func (c *ContentServiceClient) UpdateAbout(ctx context.Context, req *connect.Request[UpdateContentRequest]) (*connect.Response[PageContent], error) {
	return c.updateAbout.CallUnary(ctx, req)
}

func (c *ContentServiceClient) GetLanding(ctx context.Context, req *connect.Request[Empty]) (*connect.Response[PageContent], error) {
	return c.getLanding.CallUnary(ctx, req)
}

func (c *ContentServiceClient) UpdateLanding(ctx context.Context, req *connect.Request[UpdateContentRequest]) (*connect.Response[PageContent], error) {
	return c.updateLanding.CallUnary(ctx, req)
}
