package api

// Fully-qualified service names. Each service is mounted at "/" + name + "/".
const (
	AuthServiceName         = "sneakyelves.v1.AuthService"
	GroupServiceName        = "sneakyelves.v1.GroupService"
	WishlistServiceName     = "sneakyelves.v1.WishlistService"
	SantaServiceName        = "sneakyelves.v1.SantaService"
	FeedServiceName         = "sneakyelves.v1.FeedService"
	ConversationServiceName = "sneakyelves.v1.ConversationService"
	NotificationServiceName = "sneakyelves.v1.NotificationService"
	ContentServiceName      = "sneakyelves.v1.ContentService"
)

// ProcedurePrefix is shared by every procedure path; the static file handler refuses it.
const ProcedurePrefix = "/sneakyelves.v1."

// ServicePath returns the mount path of a service.
func ServicePath(serviceName string) string {
	return "/" + serviceName + "/"
}

const (
	AuthSignupProcedure         = "/" + AuthServiceName + "/Signup"
	AuthLoginProcedure          = "/" + AuthServiceName + "/Login"
	AuthGetCurrentUserProcedure = "/" + AuthServiceName + "/GetCurrentUser"
	AuthUpdateProfileProcedure  = "/" + AuthServiceName + "/UpdateProfile"
	AuthChangePasswordProcedure = "/" + AuthServiceName + "/ChangePassword"
)

const (
	GroupCreateGroupProcedure        = "/" + GroupServiceName + "/CreateGroup"
	GroupGetGroupProcedure           = "/" + GroupServiceName + "/GetGroup"
	GroupListGroupsProcedure         = "/" + GroupServiceName + "/ListGroups"
	GroupDeleteGroupProcedure        = "/" + GroupServiceName + "/DeleteGroup"
	GroupValidateInviteCodeProcedure = "/" + GroupServiceName + "/ValidateInviteCode"
	GroupJoinGroupProcedure          = "/" + GroupServiceName + "/JoinGroup"
	GroupAddMemberProcedure          = "/" + GroupServiceName + "/AddMember"
	GroupRemoveMemberProcedure       = "/" + GroupServiceName + "/RemoveMember"
	GroupUpdateMemberRoleProcedure   = "/" + GroupServiceName + "/UpdateMemberRole"
	GroupSetSystemAdminProcedure     = "/" + GroupServiceName + "/SetSystemAdmin"
	GroupListUsersProcedure          = "/" + GroupServiceName + "/ListUsers"
	GroupDeleteUserProcedure         = "/" + GroupServiceName + "/DeleteUser"
	GroupResetPasswordProcedure      = "/" + GroupServiceName + "/ResetPassword"
)

const (
	WishlistCreateWishlistProcedure = "/" + WishlistServiceName + "/CreateWishlist"
	WishlistGetWishlistProcedure    = "/" + WishlistServiceName + "/GetWishlist"
	WishlistListWishlistsProcedure  = "/" + WishlistServiceName + "/ListWishlists"
	WishlistUpdateWishlistProcedure = "/" + WishlistServiceName + "/UpdateWishlist"
	WishlistDeleteWishlistProcedure = "/" + WishlistServiceName + "/DeleteWishlist"
	WishlistShareWishlistProcedure  = "/" + WishlistServiceName + "/ShareWishlist"
	WishlistCreateInviteProcedure   = "/" + WishlistServiceName + "/CreateInvite"
	WishlistAddItemProcedure        = "/" + WishlistServiceName + "/AddItem"
	WishlistUpdateItemProcedure     = "/" + WishlistServiceName + "/UpdateItem"
	WishlistDeleteItemProcedure     = "/" + WishlistServiceName + "/DeleteItem"
	WishlistReorderItemsProcedure   = "/" + WishlistServiceName + "/ReorderItems"
	WishlistSetPurchasedProcedure   = "/" + WishlistServiceName + "/SetPurchased"
)

const (
	SantaCreateAssignmentsProcedure       = "/" + SantaServiceName + "/CreateAssignments"
	SantaCreateManualAssignmentsProcedure = "/" + SantaServiceName + "/CreateManualAssignments"
	SantaResetAssignmentsProcedure        = "/" + SantaServiceName + "/ResetAssignments"
	SantaGetMyAssignmentProcedure         = "/" + SantaServiceName + "/GetMyAssignment"
	SantaListAssignmentsProcedure         = "/" + SantaServiceName + "/ListAssignments"
	SantaListParticipantsProcedure        = "/" + SantaServiceName + "/ListParticipants"
)

const (
	FeedGetFeedProcedure         = "/" + FeedServiceName + "/GetFeed"
	FeedRevokeFeedItemsProcedure = "/" + FeedServiceName + "/RevokeFeedItems"
)

const (
	ConversationListConversationsProcedure = "/" + ConversationServiceName + "/ListConversations"
	ConversationGetConversationProcedure   = "/" + ConversationServiceName + "/GetConversation"
	ConversationStartConversationProcedure = "/" + ConversationServiceName + "/StartConversation"
	ConversationPostMessageProcedure       = "/" + ConversationServiceName + "/PostMessage"
)

const (
	NotificationListNotificationsProcedure = "/" + NotificationServiceName + "/ListNotifications"
	NotificationMarkReadProcedure          = "/" + NotificationServiceName + "/MarkRead"
	NotificationMarkAllReadProcedure       = "/" + NotificationServiceName + "/MarkAllRead"
)

const (
	ContentGetAboutProcedure      = "/" + ContentServiceName + "/GetAbout"
	ContentUpdateAboutProcedure   = "/" + ContentServiceName + "/UpdateAbout"
	ContentGetLandingProcedure    = "/" + ContentServiceName + "/GetLanding"
	ContentUpdateLandingProcedure = "/" + ContentServiceName + "/UpdateLanding"
)

// PublicProcedures can be called without an X-User-Id header.
// GetWishlist is public so share links work for visitors.
var PublicProcedures = []string{
	AuthSignupProcedure,
	AuthLoginProcedure,
	GroupValidateInviteCodeProcedure,
	WishlistGetWishlistProcedure,
	ContentGetAboutProcedure,
	ContentGetLandingProcedure,
}
