package auth

import (
	"github.com/google/uuid"

	"github.com/shoprate/shoprate-backend/pkg/enums"
)

// Actor identifies the authenticated caller for service-level authorization.
type Actor struct {
	UserID uuid.UUID
	Role   enums.Role
}

// IsAdmin reports whether the actor holds the administrator role.
func (a Actor) IsAdmin() bool {
	return a.Role == enums.RoleAdmin
}

// IsStoreOwner reports whether the actor holds the store-owner role.
func (a Actor) IsStoreOwner() bool {
	return a.Role == enums.RoleStoreOwner
}
