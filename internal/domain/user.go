package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// Role is the closed set of user roles. Capability checks go through the
// predicates below, never through string comparison at call sites.
type Role string

const (
	RoleMember     Role = "member"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

// ParseRole converts a raw role string into a Role.
// Returns an error for anything outside the closed set.
func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleMember, RoleAdmin, RoleSuperAdmin:
		return Role(raw), nil
	default:
		return "", fmt.Errorf("unknown role %q", raw)
	}
}

// CanViewAll reports whether the role may view records owned by other users.
func (r Role) CanViewAll() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// CanManageOthers reports whether the role may mutate records owned by other users.
func (r Role) CanManageOthers() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// User represents a household member.
type User struct {
	ID             uuid.UUID
	Name           string
	Role           Role
	GroupID        uuid.UUID
	BudgetStartDay int // anchor day-of-month (1-31) for the derived period fallback
}

// AnchorDay returns the budget anchor day, defaulting to 1 when unset or
// out of range.
func (u *User) AnchorDay() int {
	if u.BudgetStartDay < 1 || u.BudgetStartDay > 31 {
		return 1
	}
	return u.BudgetStartDay
}
