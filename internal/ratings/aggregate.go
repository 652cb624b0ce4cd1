package ratings

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shoprate/shoprate-backend/pkg/db/models"
)

// AggregateRating computes the store's overall rating from the raw values:
// the arithmetic mean truncated to one decimal place. An empty ledger yields 0.
func AggregateRating(values []int) float64 {
	if len(values) == 0 {
		return 0
	}

	sum := decimal.Zero
	for _, v := range values {
		sum = sum.Add(decimal.NewFromInt(int64(v)))
	}
	mean := sum.Div(decimal.NewFromInt(int64(len(values))))

	out, _ := mean.Truncate(1).Float64()
	return out
}

// RecomputeStoreRating recalculates the store's overall rating inside the
// transaction that mutated the ledger. The store row is locked first so
// concurrent ledger writes serialize their recomputes.
func (r *Repository) RecomputeStoreRating(tx *gorm.DB, storeID uuid.UUID) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}

	var store models.Store
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&store, "id = ?", storeID).Error; err != nil {
		return err
	}

	values, err := r.ValuesByStoreWithTx(tx, storeID)
	if err != nil {
		return err
	}

	return tx.Model(&models.Store{}).
		Where("id = ?", storeID).
		UpdateColumn("overall_rating", AggregateRating(values)).Error
}
