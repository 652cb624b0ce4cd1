package users

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shoprate/shoprate-backend/pkg/config"
	"github.com/shoprate/shoprate-backend/pkg/db/models"
	"github.com/shoprate/shoprate-backend/pkg/enums"
	pkgerrors "github.com/shoprate/shoprate-backend/pkg/errors"
	"github.com/shoprate/shoprate-backend/pkg/security"
)

func TestNewServiceRequiresDependencies(t *testing.T) {
	if _, err := NewService(nil, stubCounter{}, stubCounter{}, testPasswordCfg()); err == nil {
		t.Fatal("expected error creating service without repo")
	}
	if _, err := NewService(&stubUserRepo{}, nil, stubCounter{}, testPasswordCfg()); err == nil {
		t.Fatal("expected error creating service without stores counter")
	}
	if _, err := NewService(&stubUserRepo{}, stubCounter{}, nil, testPasswordCfg()); err == nil {
		t.Fatal("expected error creating service without ratings counter")
	}
}

func TestServiceCreateHashesPasswordAndDefaultsRole(t *testing.T) {
	repo := &stubUserRepo{}
	svc := newTestService(t, repo)

	dto, err := svc.Create(context.Background(), CreateUserInput{
		Name:     "Dana Reviewer",
		Email:    "  Dana@Example.com ",
		Password: "Sturdy#Pass1",
		Address:  "5 Elm Street",
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if dto.Email != "dana@example.com" {
		t.Fatalf("expected normalized email, got %q", dto.Email)
	}
	if dto.Role != enums.RoleUser {
		t.Fatalf("expected default role user, got %q", dto.Role)
	}

	if repo.created == nil {
		t.Fatal("expected user persisted")
	}
	if repo.created.PasswordHash == "Sturdy#Pass1" {
		t.Fatal("expected password hashed, found plaintext")
	}
	ok, err := security.VerifyPassword("Sturdy#Pass1", repo.created.PasswordHash)
	if err != nil || !ok {
		t.Fatalf("expected hash to verify, ok=%v err=%v", ok, err)
	}
}

func TestServiceCreateRejectsWeakPassword(t *testing.T) {
	svc := newTestService(t, &stubUserRepo{})

	for _, password := range []string{"short#A", "nouppercase#1", "NoSpecial11"} {
		_, err := svc.Create(context.Background(), CreateUserInput{
			Name:     "Dana Reviewer",
			Email:    "dana@example.com",
			Password: password,
		})
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("password %q: expected validation error, got %v", password, err)
		}
	}
}

func TestServiceCreateRejectsBadName(t *testing.T) {
	svc := newTestService(t, &stubUserRepo{})

	_, err := svc.Create(context.Background(), CreateUserInput{
		Name:     "D",
		Email:    "dana@example.com",
		Password: "Sturdy#Pass1",
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestServiceCreateRejectsInvalidRole(t *testing.T) {
	svc := newTestService(t, &stubUserRepo{})

	_, err := svc.Create(context.Background(), CreateUserInput{
		Name:     "Dana Reviewer",
		Email:    "dana@example.com",
		Password: "Sturdy#Pass1",
		Role:     enums.Role("superuser"),
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestServiceUpdatePartialFields(t *testing.T) {
	user := baseUser()
	repo := &stubUserRepo{user: user}
	svc := newTestService(t, repo)

	newName := "Renamed Reviewer"
	newRole := enums.RoleAdmin
	dto, err := svc.Update(context.Background(), user.ID, UpdateUserInput{Name: &newName, Role: &newRole})
	if err != nil {
		t.Fatalf("update user: %v", err)
	}
	if dto.Name != newName {
		t.Fatalf("expected name updated, got %q", dto.Name)
	}
	if dto.Role != enums.RoleAdmin {
		t.Fatalf("expected role updated, got %q", dto.Role)
	}
	if dto.Email != user.Email {
		t.Fatalf("expected email untouched, got %q", dto.Email)
	}
}

func TestServiceUpdateRehashesPassword(t *testing.T) {
	user := baseUser()
	oldHash := user.PasswordHash
	repo := &stubUserRepo{user: user}
	svc := newTestService(t, repo)

	newPassword := "Fresh#Pass9"
	if _, err := svc.Update(context.Background(), user.ID, UpdateUserInput{Password: &newPassword}); err != nil {
		t.Fatalf("update user: %v", err)
	}
	if repo.updated.PasswordHash == oldHash {
		t.Fatal("expected password rehashed")
	}
}

func TestServiceUpdateNotFound(t *testing.T) {
	svc := newTestService(t, &stubUserRepo{err: gorm.ErrRecordNotFound})

	_, err := svc.Update(context.Background(), uuid.New(), UpdateUserInput{})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestServiceDelete(t *testing.T) {
	user := baseUser()
	repo := &stubUserRepo{user: user}
	svc := newTestService(t, repo)

	if err := svc.Delete(context.Background(), user.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	if repo.deleted != user.ID {
		t.Fatal("expected user deleted")
	}
}

func TestServiceListOmitsHash(t *testing.T) {
	repo := &stubUserRepo{listRows: []models.User{*baseUser(), *baseUser()}}
	svc := newTestService(t, repo)

	dtos, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(dtos) != 2 {
		t.Fatalf("expected 2 users, got %d", len(dtos))
	}
}

func TestServiceDashboardCounts(t *testing.T) {
	repo := &stubUserRepo{
		total:       7,
		countsByRol: map[enums.Role]int64{enums.RoleUser: 4, enums.RoleStoreOwner: 2, enums.RoleAdmin: 1},
	}
	svc, err := NewService(repo, stubCounter{count: 3}, stubCounter{count: 11}, testPasswordCfg())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	dash, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if dash.TotalUsers != 7 {
		t.Fatalf("expected 7 users, got %d", dash.TotalUsers)
	}
	if dash.TotalStores != 3 || dash.TotalRatings != 11 {
		t.Fatalf("unexpected store/rating counts: %+v", dash)
	}
	if dash.UsersByRole["storeOwner"] != 2 {
		t.Fatalf("expected 2 store owners, got %v", dash.UsersByRole)
	}
}

func TestServiceDashboardDependencyError(t *testing.T) {
	repo := &stubUserRepo{countErr: errors.New("boom")}
	svc := newTestService(t, repo)

	_, err := svc.Dashboard(context.Background())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func newTestService(t *testing.T, repo *stubUserRepo) Service {
	t.Helper()
	svc, err := NewService(repo, stubCounter{}, stubCounter{}, testPasswordCfg())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func testPasswordCfg() config.PasswordConfig {
	// light parameters keep the argon2id tests fast
	return config.PasswordConfig{
		ArgonMemoryKB:    1024,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func baseUser() *models.User {
	return &models.User{
		ID:           uuid.New(),
		Name:         "Dana Reviewer",
		Email:        "dana@example.com",
		PasswordHash: "old-hash",
		Address:      "5 Elm Street",
		Role:         enums.RoleUser,
	}
}

type stubUserRepo struct {
	user     *models.User
	listRows []models.User
	err      error

	total       int64
	countsByRol map[enums.Role]int64
	countErr    error

	created *models.User
	updated *models.User
	deleted uuid.UUID
}

func (s *stubUserRepo) Create(ctx context.Context, user *models.User) error {
	if s.err != nil {
		return s.err
	}
	s.created = user
	return nil
}

func (s *stubUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func (s *stubUserRepo) List(ctx context.Context) ([]models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.listRows, nil
}

func (s *stubUserRepo) Update(ctx context.Context, user *models.User) error {
	s.updated = user
	return nil
}

func (s *stubUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	s.deleted = id
	return nil
}

func (s *stubUserRepo) CountByRole(ctx context.Context, role enums.Role) (int64, error) {
	if s.countErr != nil {
		return 0, s.countErr
	}
	return s.countsByRol[role], nil
}

func (s *stubUserRepo) CountAll(ctx context.Context) (int64, error) {
	if s.countErr != nil {
		return 0, s.countErr
	}
	return s.total, nil
}

type stubCounter struct {
	count int64
	err   error
}

func (s stubCounter) CountAll(ctx context.Context) (int64, error) {
	return s.count, s.err
}
