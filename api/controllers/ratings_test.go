package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/shoprate/shoprate-backend/api/middleware"
	"github.com/shoprate/shoprate-backend/internal/ratings"
	pkgAuth "github.com/shoprate/shoprate-backend/pkg/auth"
	"github.com/shoprate/shoprate-backend/pkg/enums"
	pkgerrors "github.com/shoprate/shoprate-backend/pkg/errors"
	"github.com/shoprate/shoprate-backend/pkg/pagination"
)

type stubRatingService struct {
	dto  *ratings.RatingDTO
	list []ratings.RatingDTO
	page pagination.Page[ratings.RatingDTO]
	err  error

	lastActor pkgAuth.Actor
}

func (s *stubRatingService) Create(ctx context.Context, actor pkgAuth.Actor, input ratings.CreateRatingInput) (*ratings.RatingDTO, error) {
	s.lastActor = actor
	return s.dto, s.err
}

func (s *stubRatingService) Update(ctx context.Context, actor pkgAuth.Actor, ratingID uuid.UUID, input ratings.UpdateRatingInput) (*ratings.RatingDTO, error) {
	s.lastActor = actor
	return s.dto, s.err
}

func (s *stubRatingService) Delete(ctx context.Context, actor pkgAuth.Actor, ratingID uuid.UUID) error {
	s.lastActor = actor
	return s.err
}

func (s *stubRatingService) GetByUserAndStore(ctx context.Context, actor pkgAuth.Actor, userID, storeID uuid.UUID) (*ratings.RatingDTO, error) {
	s.lastActor = actor
	return s.dto, s.err
}

func (s *stubRatingService) ListByStore(ctx context.Context, storeID uuid.UUID) ([]ratings.RatingDTO, error) {
	return s.list, s.err
}

func (s *stubRatingService) ListAll(ctx context.Context, params pagination.Params) (pagination.Page[ratings.RatingDTO], error) {
	return s.page, s.err
}

func authedRequest(method, target string, body string, userID uuid.UUID, role enums.Role) *http.Request {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	ctx := middleware.WithUserID(req.Context(), userID.String())
	ctx = middleware.WithRole(ctx, string(role))
	return req.WithContext(ctx)
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestRatingCreateSuccess(t *testing.T) {
	userID := uuid.New()
	storeID := uuid.New()
	svc := &stubRatingService{dto: &ratings.RatingDTO{ID: uuid.New(), UserID: userID, StoreID: storeID, Value: 4}}
	handler := RatingCreate(svc, nil)

	body := `{"storeId":"` + storeID.String() + `","value":4}`
	req := authedRequest(http.MethodPost, "/api/ratings", body, userID, enums.RoleUser)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}
	var got ratings.RatingDTO
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.StoreID != storeID {
		t.Fatalf("expected store %s got %s", storeID, got.StoreID)
	}
	if svc.lastActor.UserID != userID {
		t.Fatalf("expected actor %s got %s", userID, svc.lastActor.UserID)
	}
}

func TestRatingCreateRejectsUnknownFields(t *testing.T) {
	svc := &stubRatingService{}
	handler := RatingCreate(svc, nil)

	body := `{"storeId":"` + uuid.NewString() + `","value":4,"overallRating":5}`
	req := authedRequest(http.MethodPost, "/api/ratings", body, uuid.New(), enums.RoleUser)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestRatingCreateMissingActor(t *testing.T) {
	handler := RatingCreate(&stubRatingService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/ratings", strings.NewReader(`{"storeId":"`+uuid.NewString()+`","value":3}`))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestRatingUpdateForbiddenPassesThrough(t *testing.T) {
	svc := &stubRatingService{err: pkgerrors.New(pkgerrors.CodeForbidden, "store owners cannot update ratings")}
	handler := RatingUpdate(svc, nil)

	req := authedRequest(http.MethodPut, "/api/ratings/"+uuid.NewString(), `{"value":2}`, uuid.New(), enums.RoleStoreOwner)
	req = withURLParam(req, "id", uuid.NewString())
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", rec.Code)
	}
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Message != "store owners cannot update ratings" {
		t.Fatalf("unexpected message: %s", payload.Message)
	}
}

func TestRatingDeleteMessage(t *testing.T) {
	svc := &stubRatingService{}
	handler := RatingDelete(svc, nil)

	req := authedRequest(http.MethodDelete, "/api/ratings/"+uuid.NewString(), "", uuid.New(), enums.RoleAdmin)
	req = withURLParam(req, "id", uuid.NewString())
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Message != "rating deleted" {
		t.Fatalf("unexpected message: %s", payload.Message)
	}
}

func TestRatingDeleteInvalidID(t *testing.T) {
	handler := RatingDelete(&stubRatingService{}, nil)

	req := authedRequest(http.MethodDelete, "/api/ratings/not-a-uuid", "", uuid.New(), enums.RoleAdmin)
	req = withURLParam(req, "id", "not-a-uuid")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestRatingsByStorePublic(t *testing.T) {
	storeID := uuid.New()
	svc := &stubRatingService{list: []ratings.RatingDTO{{ID: uuid.New(), StoreID: storeID, Value: 5, UserName: "Dana"}}}
	handler := RatingsByStore(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/ratings/store/"+storeID.String(), nil)
	req = withURLParam(req, "storeId", storeID.String())
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	var got []ratings.RatingDTO
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got) != 1 || got[0].UserName != "Dana" {
		t.Fatalf("unexpected list: %+v", got)
	}
}

func TestRatingsListPagination(t *testing.T) {
	cursor := "abc"
	svc := &stubRatingService{page: pagination.Page[ratings.RatingDTO]{
		Items:      []ratings.RatingDTO{{ID: uuid.New(), Value: 3}},
		NextCursor: &cursor,
	}}
	handler := RatingsList(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/ratings?limit=1", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	var got pagination.Page[ratings.RatingDTO]
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.NextCursor == nil || *got.NextCursor != cursor {
		t.Fatalf("expected next cursor %q got %+v", cursor, got.NextCursor)
	}
}
