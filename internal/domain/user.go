package domain

import "time"

// User represents a system user from the identity directory.
type User struct {
	ID        string
	Email     string
	Name      string
	Role      Role
	CreatedAt time.Time
}

// Role represents a user's access level
type Role string

const (
	// RoleRegular can submit journal entries and view reports
	RoleRegular Role = "regular"

	// RoleManager can additionally approve and reject journal entries
	RoleManager Role = "manager"

	// RoleAdmin has full access including chart-of-accounts management
	RoleAdmin Role = "admin"
)

// Valid roles
var validRoles = map[Role]bool{
	RoleRegular: true,
	RoleManager: true,
	RoleAdmin:   true,
}

// IsValid checks if the role is a valid role
func (r Role) IsValid() bool {
	return validRoles[r]
}

// CanManageAccounts checks if the role can create, update, or archive
// accounts
func (r Role) CanManageAccounts() bool {
	return r == RoleAdmin
}

// CanReviewEntries checks if the role can approve or reject journal
// entries
func (r Role) CanReviewEntries() bool {
	return r == RoleManager || r == RoleAdmin
}

// Actor is the authenticated user performing an operation. It is
// threaded explicitly through every use case call, never read from
// ambient state.
type Actor struct {
	ID    string
	Email string
	Role  Role
}
