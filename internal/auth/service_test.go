package auth

import (
	"context"
	"testing"

	"gorm.io/gorm"

	pkgauth "github.com/shoprate/shoprate-backend/pkg/auth"
	"github.com/shoprate/shoprate-backend/pkg/config"
	"github.com/shoprate/shoprate-backend/pkg/db/models"
	"github.com/shoprate/shoprate-backend/pkg/enums"
	pkgerrors "github.com/shoprate/shoprate-backend/pkg/errors"
	"github.com/shoprate/shoprate-backend/pkg/security"

	"github.com/google/uuid"
)

func TestNewServiceRequiresUserRepo(t *testing.T) {
	if _, err := NewService(ServiceParams{}); err == nil {
		t.Fatal("expected error creating service without user repo")
	}
}

func TestRegisterForcesUserRole(t *testing.T) {
	repo := &stubUserRepo{findErr: gorm.ErrRecordNotFound}
	svc := newTestService(t, repo)

	resp, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Dana Reviewer",
		Email:    "Dana@Example.com",
		Password: "Sturdy#Pass1",
		Address:  "5 Elm Street",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected minted token")
	}
	if resp.User.Role != enums.RoleUser {
		t.Fatalf("expected role forced to user, got %q", resp.User.Role)
	}
	if repo.created == nil || repo.created.Email != "dana@example.com" {
		t.Fatalf("expected normalized email persisted, got %+v", repo.created)
	}

	claims, err := pkgauth.ParseAccessToken(testJWTCfg(), resp.Token)
	if err != nil {
		t.Fatalf("parse minted token: %v", err)
	}
	if claims.Role != enums.RoleUser {
		t.Fatalf("expected user role claim, got %q", claims.Role)
	}
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	svc := newTestService(t, &stubUserRepo{})

	_, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Dana Reviewer",
		Email:    "dana@example.com",
		Password: "weakpass",
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRegisterDuplicateEmailConflict(t *testing.T) {
	repo := &stubUserRepo{createErr: errDuplicateEmail{}}
	svc := newTestService(t, repo)

	_, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Dana Reviewer",
		Email:    "dana@example.com",
		Password: "Sturdy#Pass1",
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestLoginSuccess(t *testing.T) {
	hash := mustHash(t, "Sturdy#Pass1")
	user := &models.User{
		ID:           uuid.New(),
		Name:         "Dana Reviewer",
		Email:        "dana@example.com",
		PasswordHash: hash,
		Role:         enums.RoleStoreOwner,
	}
	svc := newTestService(t, &stubUserRepo{user: user})

	resp, err := svc.Login(context.Background(), LoginInput{Email: " Dana@example.com ", Password: "Sturdy#Pass1"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := pkgauth.ParseAccessToken(testJWTCfg(), resp.Token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("expected subject %s, got %s", user.ID, claims.UserID)
	}
	if claims.Role != enums.RoleStoreOwner {
		t.Fatalf("expected role claim storeOwner, got %q", claims.Role)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	user := &models.User{ID: uuid.New(), Email: "dana@example.com", PasswordHash: mustHash(t, "Sturdy#Pass1"), Role: enums.RoleUser}
	svc := newTestService(t, &stubUserRepo{user: user})

	_, err := svc.Login(context.Background(), LoginInput{Email: "dana@example.com", Password: "Wrong#Pass1"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLoginUnknownEmailDoesNotLeakExistence(t *testing.T) {
	svc := newTestService(t, &stubUserRepo{findErr: gorm.ErrRecordNotFound})

	_, err := svc.Login(context.Background(), LoginInput{Email: "nobody@example.com", Password: "Sturdy#Pass1"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if typed.Message() != invalidCredentialsMessage {
		t.Fatalf("expected generic message, got %q", typed.Message())
	}
}

func newTestService(t *testing.T, repo *stubUserRepo) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		UserRepo:       repo,
		JWTConfig:      testJWTCfg(),
		PasswordConfig: testPasswordCfg(),
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func testJWTCfg() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "shoprate-test",
		ExpirationMinutes: 15,
	}
}

func testPasswordCfg() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    1024,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := security.HashPassword(password, testPasswordCfg())
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return hash
}

type stubUserRepo struct {
	user      *models.User
	findErr   error
	createErr error

	created *models.User
}

func (s *stubUserRepo) Create(ctx context.Context, user *models.User) error {
	if s.createErr != nil {
		return s.createErr
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	s.created = user
	return nil
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	if s.user == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

type errDuplicateEmail struct{}

func (errDuplicateEmail) Error() string {
	return `duplicate key value violates unique constraint "idx_users_email"`
}
