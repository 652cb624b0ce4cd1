package stores

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shoprate/shoprate-backend/pkg/db/models"
)

// Repository handles store persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to store operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// StoreWithOwner joins the owner's public identity onto the store row.
type StoreWithOwner struct {
	models.Store
	OwnerName  string `gorm:"column:owner_name"`
	OwnerEmail string `gorm:"column:owner_email"`
}

// FindByID loads a store by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error) {
	var store models.Store
	if err := r.db.WithContext(ctx).First(&store, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

// FindByIDWithOwner loads a store with the owner identity joined.
func (r *Repository) FindByIDWithOwner(ctx context.Context, id uuid.UUID) (*StoreWithOwner, error) {
	var row StoreWithOwner
	if err := r.db.WithContext(ctx).
		Model(&models.Store{}).
		Select("stores.*, users.name AS owner_name, users.email AS owner_email").
		Joins("JOIN users ON users.id = stores.owner_id").
		Where("stores.id = ?", id).
		First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// List returns every store ordered by name with owner identity joined.
func (r *Repository) List(ctx context.Context) ([]StoreWithOwner, error) {
	var rows []StoreWithOwner
	if err := r.db.WithContext(ctx).
		Model(&models.Store{}).
		Select("stores.*, users.name AS owner_name, users.email AS owner_email").
		Joins("JOIN users ON users.id = stores.owner_id").
		Order("stores.name ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByOwner returns all stores owned by the provided user, name ascending.
func (r *Repository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Store, error) {
	var stores []models.Store
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("name ASC").
		Find(&stores).Error; err != nil {
		return nil, err
	}
	return stores, nil
}

// Update saves the provided store.
func (r *Repository) Update(ctx context.Context, store *models.Store) error {
	if store == nil {
		return fmt.Errorf("store is required")
	}
	return r.db.WithContext(ctx).Save(store).Error
}

// CreateWithTx inserts the store inside the provided transaction.
func (r *Repository) CreateWithTx(tx *gorm.DB, store *models.Store) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	if store == nil {
		return fmt.Errorf("store is required")
	}
	return tx.Create(store).Error
}

// DeleteWithTx removes the store inside the provided transaction.
func (r *Repository) DeleteWithTx(tx *gorm.DB, id uuid.UUID) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	return tx.Delete(&models.Store{}, "id = ?", id).Error
}

// CountAll reports the total number of stores.
func (r *Repository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Store{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
