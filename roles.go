package users

// Role is the account role. It is a closed two-variant type: roles are
// assigned at creation and there is no promotion or demotion operation.
type Role string

const (
	// RoleUser is a regular account created through signup.
	RoleUser Role = "user"
	// RoleAdmin is the moderation role; only the bootstrap record carries it.
	RoleAdmin Role = "admin"
)

// IsValid checks if the role is one of the predefined valid roles
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	default:
		return false
	}
}

// IsAdmin reports whether the role grants access to moderation endpoints.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// ParseRole safely parses a string into a Role type
func ParseRole(roleStr string) (Role, bool) {
	role := Role(roleStr)
	return role, role.IsValid()
}
