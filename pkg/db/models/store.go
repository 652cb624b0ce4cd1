package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Store represents a listed shop. OverallRating is derived from the ratings
// ledger and is never written from client input.
type Store struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name          string    `gorm:"column:name;not null;index"`
	Email         string    `gorm:"column:email;not null"`
	Address       string    `gorm:"column:address;not null"`
	OwnerID       uuid.UUID `gorm:"column:owner_id;type:uuid;not null;index"`
	OverallRating float64   `gorm:"column:overall_rating;not null;default:0"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (s *Store) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
