package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/shoprate/shoprate-backend/pkg/db/models"
	"github.com/shoprate/shoprate-backend/pkg/enums"
)

// UserDTO exposes public user data. The password hash never leaves the
// service layer.
type UserDTO struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Address   string     `json:"address,omitempty"`
	Role      enums.Role `json:"role"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// DashboardDTO carries the admin dashboard counts.
type DashboardDTO struct {
	TotalUsers   int64            `json:"totalUsers"`
	TotalStores  int64            `json:"totalStores"`
	TotalRatings int64            `json:"totalRatings"`
	UsersByRole  map[string]int64 `json:"usersByRole"`
}

// FromModel maps the persisted user into a DTO.
func FromModel(m *models.User) *UserDTO {
	if m == nil {
		return nil
	}
	return &UserDTO{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Address:   m.Address,
		Role:      m.Role,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
