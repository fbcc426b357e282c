package models

// Wishlist is a user's list of wanted items.
// Each user has one primary wishlist, created at signup.
type Wishlist struct {
	ID                  string
	UserID              string
	Title               string
	ShareToken          string
	GeneralInstructions string
	CreatedAt           int64

	// Items are ordered by rank, then ID. Populated by GetWishlist.
	Items []Item

	// Owner is populated by read-side joins.
	Owner *UserSummary
}

// Item is one entry on a wishlist.
type Item struct {
	ID         string
	WishlistID string
	Name       string

	// Price is nil when unknown.
	Price    *float64
	URL      string
	Note     string
	ImageURL string

	// Purchased is set by someone buying the item for the owner.
	// Owners never see it as true.
	Purchased bool

	// Rank is the manual display order, dense from 0 after a reorder.
	Rank int

	CreatedAt int64
}

// WishlistInvite is a share link that also enrolls new signups into groups.
type WishlistInvite struct {
	Token      string
	WishlistID string
	GroupIDs   []string
	CreatedAt  int64
}
