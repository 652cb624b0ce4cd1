package ratings

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shoprate/shoprate-backend/pkg/db/models"
	"github.com/shoprate/shoprate-backend/pkg/pagination"
)

// Repository handles rating persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to rating operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID loads a rating by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Rating, error) {
	var rating models.Rating
	if err := r.db.WithContext(ctx).First(&rating, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rating, nil
}

// FindByUserAndStore loads the single rating the user left on the store.
func (r *Repository) FindByUserAndStore(ctx context.Context, userID, storeID uuid.UUID) (*models.Rating, error) {
	var rating models.Rating
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND store_id = ?", userID, storeID).
		First(&rating).Error; err != nil {
		return nil, err
	}
	return &rating, nil
}

// RatingWithUser joins the rater's display name onto the rating row. The
// store name is populated only by the cross-store listing.
type RatingWithUser struct {
	models.Rating
	UserName  string `gorm:"column:user_name"`
	StoreName string `gorm:"column:store_name"`
}

// ListByStore returns every rating on the store with the rater's name.
func (r *Repository) ListByStore(ctx context.Context, storeID uuid.UUID) ([]RatingWithUser, error) {
	var rows []RatingWithUser
	if err := r.db.WithContext(ctx).
		Model(&models.Rating{}).
		Select("ratings.*, users.name AS user_name").
		Joins("JOIN users ON users.id = ratings.user_id").
		Where("ratings.store_id = ?", storeID).
		Order("ratings.created_at DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListAll returns a cursor page of ratings across every store, newest first.
func (r *Repository) ListAll(ctx context.Context, params pagination.Params) ([]RatingWithUser, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Rating{}).
		Select("ratings.*, users.name AS user_name, stores.name AS store_name").
		Joins("JOIN users ON users.id = ratings.user_id").
		Joins("JOIN stores ON stores.id = ratings.store_id").
		Order("ratings.created_at DESC, ratings.id DESC").
		Limit(pagination.LimitWithBuffer(params.Limit))

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}
	if cursor != nil {
		q = q.Where(
			"(ratings.created_at < ?) OR (ratings.created_at = ? AND ratings.id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}

	var rows []RatingWithUser
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// CreateWithTx inserts the rating inside the provided transaction.
func (r *Repository) CreateWithTx(tx *gorm.DB, rating *models.Rating) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	if rating == nil {
		return fmt.Errorf("rating is required")
	}
	return tx.Create(rating).Error
}

// UpdateWithTx persists the rating inside the provided transaction.
func (r *Repository) UpdateWithTx(tx *gorm.DB, rating *models.Rating) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	if rating == nil {
		return fmt.Errorf("rating is required")
	}
	return tx.Save(rating).Error
}

// DeleteWithTx removes the rating inside the provided transaction.
func (r *Repository) DeleteWithTx(tx *gorm.DB, id uuid.UUID) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	return tx.Delete(&models.Rating{}, "id = ?", id).Error
}

// ExistsForUserAndStoreWithTx reports whether the user already rated the store.
func (r *Repository) ExistsForUserAndStoreWithTx(tx *gorm.DB, userID, storeID uuid.UUID) (bool, error) {
	if tx == nil {
		return false, gorm.ErrInvalidTransaction
	}
	var count int64
	if err := tx.Model(&models.Rating{}).
		Where("user_id = ? AND store_id = ?", userID, storeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ValuesByStoreWithTx returns the raw rating values for the store.
func (r *Repository) ValuesByStoreWithTx(tx *gorm.DB, storeID uuid.UUID) ([]int, error) {
	if tx == nil {
		return nil, gorm.ErrInvalidTransaction
	}
	var values []int
	if err := tx.Model(&models.Rating{}).
		Where("store_id = ?", storeID).
		Pluck("value", &values).Error; err != nil {
		return nil, err
	}
	return values, nil
}

// DeleteByStoreWithTx removes every rating on the store.
func (r *Repository) DeleteByStoreWithTx(tx *gorm.DB, storeID uuid.UUID) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	return tx.Delete(&models.Rating{}, "store_id = ?", storeID).Error
}

// CountAll reports the total number of ratings.
func (r *Repository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Rating{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
