package ratings

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgauth "github.com/shoprate/shoprate-backend/pkg/auth"
	"github.com/shoprate/shoprate-backend/pkg/db"
	"github.com/shoprate/shoprate-backend/pkg/db/models"
	pkgerrors "github.com/shoprate/shoprate-backend/pkg/errors"
	"github.com/shoprate/shoprate-backend/pkg/pagination"
)

const maxCommentLength = 300

type ratingRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Rating, error)
	FindByUserAndStore(ctx context.Context, userID, storeID uuid.UUID) (*models.Rating, error)
	ListByStore(ctx context.Context, storeID uuid.UUID) ([]RatingWithUser, error)
	ListAll(ctx context.Context, params pagination.Params) ([]RatingWithUser, error)
	CreateWithTx(tx *gorm.DB, rating *models.Rating) error
	UpdateWithTx(tx *gorm.DB, rating *models.Rating) error
	DeleteWithTx(tx *gorm.DB, id uuid.UUID) error
	ExistsForUserAndStoreWithTx(tx *gorm.DB, userID, storeID uuid.UUID) (bool, error)
	RecomputeStoreRating(tx *gorm.DB, storeID uuid.UUID) error
}

type storeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes rating ledger operations.
type Service interface {
	Create(ctx context.Context, actor pkgauth.Actor, input CreateRatingInput) (*RatingDTO, error)
	Update(ctx context.Context, actor pkgauth.Actor, ratingID uuid.UUID, input UpdateRatingInput) (*RatingDTO, error)
	Delete(ctx context.Context, actor pkgauth.Actor, ratingID uuid.UUID) error
	GetByUserAndStore(ctx context.Context, actor pkgauth.Actor, userID, storeID uuid.UUID) (*RatingDTO, error)
	ListByStore(ctx context.Context, storeID uuid.UUID) ([]RatingDTO, error)
	ListAll(ctx context.Context, params pagination.Params) (pagination.Page[RatingDTO], error)
}

type service struct {
	repo   ratingRepository
	stores storeRepository
	tx     txRunner
}

// NewService builds a rating service with the provided dependencies.
func NewService(repo ratingRepository, stores storeRepository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("rating repository required")
	}
	if stores == nil {
		return nil, fmt.Errorf("store repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, stores: stores, tx: tx}, nil
}

// CreateRatingInput captures a new ledger entry.
type CreateRatingInput struct {
	StoreID uuid.UUID
	Value   int
	Comment *string
}

// UpdateRatingInput captures the mutable rating fields. Nil means unchanged.
type UpdateRatingInput struct {
	Value   *int
	Comment *string
}

func (s *service) Create(ctx context.Context, actor pkgauth.Actor, input CreateRatingInput) (*RatingDTO, error) {
	if err := validateValue(input.Value); err != nil {
		return nil, err
	}
	if err := validateComment(input.Comment); err != nil {
		return nil, err
	}

	if _, err := s.stores.FindByID(ctx, input.StoreID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}

	rating := &models.Rating{
		UserID:  actor.UserID,
		StoreID: input.StoreID,
		Value:   input.Value,
		Comment: cloneStringPtr(input.Comment),
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		exists, err := s.repo.ExistsForUserAndStoreWithTx(tx, actor.UserID, input.StoreID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check existing rating")
		}
		if exists {
			return pkgerrors.New(pkgerrors.CodeConflict, "you have already rated this store")
		}

		if err := s.repo.CreateWithTx(tx, rating); err != nil {
			if db.IsUniqueViolation(err, models.UniqueRatingConstraint) {
				return pkgerrors.New(pkgerrors.CodeConflict, "you have already rated this store")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create rating")
		}

		if err := s.repo.RecomputeStoreRating(tx, input.StoreID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "recompute store rating")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return FromModel(rating), nil
}

func (s *service) Update(ctx context.Context, actor pkgauth.Actor, ratingID uuid.UUID, input UpdateRatingInput) (*RatingDTO, error) {
	rating, err := s.loadRating(ctx, ratingID)
	if err != nil {
		return nil, err
	}

	// store owners never edit ledger entries, not even their own
	if actor.IsStoreOwner() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "store owners cannot update ratings")
	}
	// only the original rater may edit; admins get delete, not update
	if rating.UserID != actor.UserID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "cannot update another user's rating")
	}

	if input.Value != nil {
		if err := validateValue(*input.Value); err != nil {
			return nil, err
		}
		rating.Value = *input.Value
	}
	if input.Comment != nil {
		if err := validateComment(input.Comment); err != nil {
			return nil, err
		}
		rating.Comment = cloneStringPtr(input.Comment)
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.UpdateWithTx(tx, rating); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update rating")
		}
		if err := s.repo.RecomputeStoreRating(tx, rating.StoreID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "recompute store rating")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return FromModel(rating), nil
}

func (s *service) Delete(ctx context.Context, actor pkgauth.Actor, ratingID uuid.UUID) error {
	rating, err := s.loadRating(ctx, ratingID)
	if err != nil {
		return err
	}

	if actor.IsStoreOwner() && rating.UserID != actor.UserID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "store owners cannot delete other users' ratings")
	}
	if rating.UserID != actor.UserID && !actor.IsAdmin() {
		return pkgerrors.New(pkgerrors.CodeForbidden, "cannot delete another user's rating")
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.DeleteWithTx(tx, rating.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete rating")
		}
		if err := s.repo.RecomputeStoreRating(tx, rating.StoreID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "recompute store rating")
		}
		return nil
	})
}

func (s *service) GetByUserAndStore(ctx context.Context, actor pkgauth.Actor, userID, storeID uuid.UUID) (*RatingDTO, error) {
	if userID != actor.UserID && !actor.IsAdmin() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "cannot view another user's rating")
	}

	rating, err := s.repo.FindByUserAndStore(ctx, userID, storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "rating not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load rating")
	}
	return FromModel(rating), nil
}

func (s *service) ListByStore(ctx context.Context, storeID uuid.UUID) ([]RatingDTO, error) {
	if _, err := s.stores.FindByID(ctx, storeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}

	rows, err := s.repo.ListByStore(ctx, storeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list ratings")
	}

	dtos := make([]RatingDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, FromRowWithUser(row))
	}
	return dtos, nil
}

func (s *service) ListAll(ctx context.Context, params pagination.Params) (pagination.Page[RatingDTO], error) {
	rows, err := s.repo.ListAll(ctx, params)
	if err != nil {
		return pagination.Page[RatingDTO]{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list ratings")
	}

	dtos := make([]RatingDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, FromRowWithUser(row))
	}

	page := pagination.NewPage(dtos, params.Limit, func(d RatingDTO) pagination.Cursor {
		return pagination.Cursor{CreatedAt: d.CreatedAt, ID: d.ID}
	})
	return page, nil
}

func (s *service) loadRating(ctx context.Context, id uuid.UUID) (*models.Rating, error) {
	rating, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "rating not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load rating")
	}
	return rating, nil
}

func validateValue(value int) error {
	if value < 1 || value > 5 {
		return pkgerrors.New(pkgerrors.CodeValidation, "rating value must be between 1 and 5")
	}
	return nil
}

func validateComment(comment *string) error {
	if comment != nil && utf8.RuneCountInString(*comment) > maxCommentLength {
		return pkgerrors.New(pkgerrors.CodeValidation, "comment must be 300 characters or fewer")
	}
	return nil
}

func cloneStringPtr(value *string) *string {
	if value == nil {
		return nil
	}
	cpy := *value
	return &cpy
}
