package auth

import "github.com/shoprate/shoprate-backend/internal/users"

// RegisterInput captures self-service signup data. The role is always
// forced to the base user role.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Address  string
}

// LoginInput carries the credential pair.
type LoginInput struct {
	Email    string
	Password string
}

// AuthResponse returns the minted token and the authenticated user.
type AuthResponse struct {
	Token string         `json:"token"`
	User  *users.UserDTO `json:"user"`
}
