package models

// Role is a member's role inside a group.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleMember Role = "MEMBER"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleMember
}

// Group is a circle of users who share wishlists and a feed.
// Anyone can join with the invite code.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Family", "Office").
	Name string

	// InviteCode is a unique six character code, stored upper-case.
	InviteCode string

	// Members is populated by GetGroup only.
	Members []Membership

	// MemberCount is populated by list queries.
	MemberCount int

	CreatedAt int64
}

// Membership links a user to a group with a role.
type Membership struct {
	UserID    string
	GroupID   string
	Role      Role
	GroupName string
	User      *UserSummary
}
