package ratings

import (
	"time"

	"github.com/google/uuid"

	"github.com/shoprate/shoprate-backend/pkg/db/models"
)

// RatingDTO exposes a ledger entry in API responses.
type RatingDTO struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	StoreID   uuid.UUID `json:"storeId"`
	Value     int       `json:"value"`
	Comment   *string   `json:"comment,omitempty"`
	UserName  string    `json:"userName,omitempty"`
	StoreName string    `json:"storeName,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromModel maps the persisted rating into a DTO.
func FromModel(m *models.Rating) *RatingDTO {
	if m == nil {
		return nil
	}
	dto := &RatingDTO{
		ID:        m.ID,
		UserID:    m.UserID,
		StoreID:   m.StoreID,
		Value:     m.Value,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.Comment != nil {
		cpy := *m.Comment
		dto.Comment = &cpy
	}
	return dto
}

// FromRowWithUser maps a joined rating row into a DTO carrying the rater name.
func FromRowWithUser(row RatingWithUser) RatingDTO {
	dto := FromModel(&row.Rating)
	dto.UserName = row.UserName
	dto.StoreName = row.StoreName
	return *dto
}
