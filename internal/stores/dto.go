package stores

import (
	"time"

	"github.com/google/uuid"

	"github.com/shoprate/shoprate-backend/internal/ratings"
	"github.com/shoprate/shoprate-backend/pkg/db/models"
)

// StoreDTO exposes a store in API responses.
type StoreDTO struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email,omitempty"`
	Address       string    `json:"address,omitempty"`
	OwnerID       uuid.UUID `json:"ownerId"`
	OverallRating float64   `json:"overallRating"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// OwnerSummary carries the owner's public identity on joined reads.
type OwnerSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// StoreWithOwnerDTO is a store listing row with the owner joined.
type StoreWithOwnerDTO struct {
	StoreDTO
	Owner OwnerSummary `json:"owner"`
}

// StoreDetailDTO is the single-store read: owner plus the full rating list.
type StoreDetailDTO struct {
	StoreDTO
	Owner   OwnerSummary        `json:"owner"`
	Ratings []ratings.RatingDTO `json:"ratings"`
}

// FromModel maps the persisted store into a DTO.
func FromModel(m *models.Store) *StoreDTO {
	if m == nil {
		return nil
	}
	return &StoreDTO{
		ID:            m.ID,
		Name:          m.Name,
		Email:         m.Email,
		Address:       m.Address,
		OwnerID:       m.OwnerID,
		OverallRating: m.OverallRating,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// FromRowWithOwner maps a joined listing row into a DTO.
func FromRowWithOwner(row StoreWithOwner) StoreWithOwnerDTO {
	return StoreWithOwnerDTO{
		StoreDTO: *FromModel(&row.Store),
		Owner: OwnerSummary{
			ID:    row.OwnerID,
			Name:  row.OwnerName,
			Email: row.OwnerEmail,
		},
	}
}
