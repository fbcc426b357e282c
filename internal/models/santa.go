package models

// AssignmentRole distinguishes the main Secret Santa gift from elf gifts.
type AssignmentRole string

const (
	RoleSanta AssignmentRole = "santa"
	RoleElf   AssignmentRole = "elf"
)

// Valid reports whether r is a known assignment role.
func (r AssignmentRole) Valid() bool {
	return r == RoleSanta || r == RoleElf
}

// Assignment pairs a giver with a receiver for one year.
type Assignment struct {
	ID         string
	GiverID    string
	ReceiverID string
	Role       AssignmentRole
	Year       int
	Active     bool
	CreatedAt  int64

	// Giver and Receiver are populated by list queries.
	Giver    *UserSummary
	Receiver *UserSummary
}
