package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UniqueRatingConstraint names the one-rating-per-(user,store) index so
// services can translate driver errors into a domain conflict.
const UniqueRatingConstraint = "idx_ratings_user_store"

// Rating is a single ledger entry: one user's score for one store.
type Rating struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_ratings_user_store"`
	StoreID   uuid.UUID `gorm:"column:store_id;type:uuid;not null;uniqueIndex:idx_ratings_user_store;index"`
	Value     int       `gorm:"column:value;not null"`
	Comment   *string   `gorm:"column:comment"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (r *Rating) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
