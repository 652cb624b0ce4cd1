package enums

import "fmt"

// Role describes the platform-wide authority level carried by a user.
type Role string

const (
	RoleUser       Role = "user"
	RoleStoreOwner Role = "storeOwner"
	RoleAdmin      Role = "admin"
)

var validRoles = []Role{
	RoleUser,
	RoleStoreOwner,
	RoleAdmin,
}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}

// IsValid reports whether the value matches the canonical role enum.
func (r Role) IsValid() bool {
	for _, candidate := range validRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRole converts the raw string to Role.
func ParseRole(value string) (Role, error) {
	for _, candidate := range validRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid role %q", value)
}
