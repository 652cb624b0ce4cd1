package stores

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shoprate/shoprate-backend/internal/ratings"
	pkgauth "github.com/shoprate/shoprate-backend/pkg/auth"
	"github.com/shoprate/shoprate-backend/pkg/db/models"
	"github.com/shoprate/shoprate-backend/pkg/enums"
	pkgerrors "github.com/shoprate/shoprate-backend/pkg/errors"
)

const maxAddressLength = 400

type storeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
	FindByIDWithOwner(ctx context.Context, id uuid.UUID) (*StoreWithOwner, error)
	List(ctx context.Context) ([]StoreWithOwner, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Store, error)
	Update(ctx context.Context, store *models.Store) error
	CreateWithTx(tx *gorm.DB, store *models.Store) error
	DeleteWithTx(tx *gorm.DB, id uuid.UUID) error
}

type usersRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateRoleWithTx(tx *gorm.DB, id uuid.UUID, role enums.Role) error
}

type ratingsRepository interface {
	ListByStore(ctx context.Context, storeID uuid.UUID) ([]ratings.RatingWithUser, error)
	DeleteByStoreWithTx(tx *gorm.DB, storeID uuid.UUID) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes store registry operations.
type Service interface {
	Create(ctx context.Context, input CreateStoreInput) (*StoreDTO, error)
	List(ctx context.Context) ([]StoreWithOwnerDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*StoreDetailDTO, error)
	Update(ctx context.Context, actor pkgauth.Actor, storeID uuid.UUID, input UpdateStoreInput) (*StoreDTO, error)
	Delete(ctx context.Context, storeID uuid.UUID) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]StoreDTO, error)
}

type service struct {
	repo    storeRepository
	users   usersRepository
	ratings ratingsRepository
	tx      txRunner
}

// NewService builds a store service with the provided dependencies.
func NewService(repo storeRepository, users usersRepository, ratingsRepo ratingsRepository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("store repository required")
	}
	if users == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if ratingsRepo == nil {
		return nil, fmt.Errorf("ratings repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, users: users, ratings: ratingsRepo, tx: tx}, nil
}

// CreateStoreInput captures creation-time data for a new store.
type CreateStoreInput struct {
	Name    string
	Email   string
	Address string
	OwnerID uuid.UUID
}

// UpdateStoreInput captures the mutable store fields. Nil means unchanged.
// The overall rating is derived and never client-settable.
type UpdateStoreInput struct {
	Name    *string
	Email   *string
	Address *string
}

func (s *service) Create(ctx context.Context, input CreateStoreInput) (*StoreDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store name is required")
	}
	if len(input.Address) > maxAddressLength {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "address must be 400 characters or fewer")
	}

	owner, err := s.users.FindByID(ctx, input.OwnerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "owner user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load owner")
	}

	store := &models.Store{
		Name:    name,
		Email:   strings.TrimSpace(input.Email),
		Address: input.Address,
		OwnerID: owner.ID,
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.CreateWithTx(tx, store); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create store")
		}
		// regular users gain the store-owner role; admins keep theirs
		if owner.Role == enums.RoleUser {
			if err := s.users.UpdateRoleWithTx(tx, owner.ID, enums.RoleStoreOwner); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "promote owner")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return FromModel(store), nil
}

func (s *service) List(ctx context.Context) ([]StoreWithOwnerDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list stores")
	}

	dtos := make([]StoreWithOwnerDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, FromRowWithOwner(row))
	}
	return dtos, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*StoreDetailDTO, error) {
	row, err := s.repo.FindByIDWithOwner(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}

	ratingRows, err := s.ratings.ListByStore(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list store ratings")
	}

	detail := &StoreDetailDTO{
		StoreDTO: *FromModel(&row.Store),
		Owner: OwnerSummary{
			ID:    row.OwnerID,
			Name:  row.OwnerName,
			Email: row.OwnerEmail,
		},
		Ratings: make([]ratings.RatingDTO, 0, len(ratingRows)),
	}
	for _, r := range ratingRows {
		detail.Ratings = append(detail.Ratings, ratings.FromRowWithUser(r))
	}
	return detail, nil
}

func (s *service) Update(ctx context.Context, actor pkgauth.Actor, storeID uuid.UUID, input UpdateStoreInput) (*StoreDTO, error) {
	store, err := s.repo.FindByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}

	if store.OwnerID != actor.UserID && !actor.IsAdmin() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "cannot update another owner's store")
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "store name is required")
		}
		store.Name = name
	}
	if input.Email != nil {
		store.Email = strings.TrimSpace(*input.Email)
	}
	if input.Address != nil {
		if len(*input.Address) > maxAddressLength {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "address must be 400 characters or fewer")
		}
		store.Address = *input.Address
	}

	if err := s.repo.Update(ctx, store); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update store")
	}
	return FromModel(store), nil
}

func (s *service) Delete(ctx context.Context, storeID uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, storeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}

	// the ledger rows go with the store so no orphaned ratings remain
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.ratings.DeleteByStoreWithTx(tx, storeID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete store ratings")
		}
		if err := s.repo.DeleteWithTx(tx, storeID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete store")
		}
		return nil
	})
}

func (s *service) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]StoreDTO, error) {
	rows, err := s.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list owner stores")
	}

	dtos := make([]StoreDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	return dtos, nil
}
