package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pollfund/backend/internal/model"
	"github.com/pollfund/backend/internal/repository"
	"github.com/pollfund/backend/internal/service"
)

// ---------------------------------------------------------------------------
// mockItemService — ItemService のモック
// ---------------------------------------------------------------------------

type mockItemService struct {
	createFunc          func(ctx context.Context, kind model.ItemKind, title, description, creator string, projectID uint64, duration time.Duration) (*model.Item, error)
	getFunc             func(ctx context.Context, id uint64) (*model.Item, error)
	fundFunc            func(ctx context.Context, id uint64, funder string, amount int64) error
	respondFunc         func(ctx context.Context, id uint64, caller string) error
	endFunc             func(ctx context.Context, id uint64, caller string) error
	cancelFunc          func(ctx context.Context, id uint64, caller string) error
	claimFunc           func(ctx context.Context, id uint64, caller string) (int64, error)
	hasRespondedFunc    func(ctx context.Context, id uint64, addr string) (bool, error)
	respondersFunc      func(ctx context.Context, id uint64) ([]string, error)
	potentialRewardFunc func(ctx context.Context, id uint64) (int64, error)
	listByCreatorFunc   func(ctx context.Context, creator string) ([]*model.Item, error)
}

func (m *mockItemService) Create(ctx context.Context, kind model.ItemKind, title, description, creator string, projectID uint64, duration time.Duration) (*model.Item, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, kind, title, description, creator, projectID, duration)
	}
	return &model.Item{ID: 1, Kind: kind, Title: title, Creator: creator, Status: model.StatusActive}, nil
}

func (m *mockItemService) Get(ctx context.Context, id uint64) (*model.Item, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockItemService) Fund(ctx context.Context, id uint64, funder string, amount int64) error {
	if m.fundFunc != nil {
		return m.fundFunc(ctx, id, funder, amount)
	}
	return nil
}

func (m *mockItemService) Respond(ctx context.Context, id uint64, caller string) error {
	if m.respondFunc != nil {
		return m.respondFunc(ctx, id, caller)
	}
	return nil
}

func (m *mockItemService) End(ctx context.Context, id uint64, caller string) error {
	if m.endFunc != nil {
		return m.endFunc(ctx, id, caller)
	}
	return nil
}

func (m *mockItemService) Cancel(ctx context.Context, id uint64, caller string) error {
	if m.cancelFunc != nil {
		return m.cancelFunc(ctx, id, caller)
	}
	return nil
}

func (m *mockItemService) ClaimReward(ctx context.Context, id uint64, caller string) (int64, error) {
	if m.claimFunc != nil {
		return m.claimFunc(ctx, id, caller)
	}
	return 0, nil
}

func (m *mockItemService) HasResponded(ctx context.Context, id uint64, addr string) (bool, error) {
	if m.hasRespondedFunc != nil {
		return m.hasRespondedFunc(ctx, id, addr)
	}
	return false, nil
}

func (m *mockItemService) Responders(ctx context.Context, id uint64) ([]string, error) {
	if m.respondersFunc != nil {
		return m.respondersFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockItemService) PotentialReward(ctx context.Context, id uint64) (int64, error) {
	if m.potentialRewardFunc != nil {
		return m.potentialRewardFunc(ctx, id)
	}
	return 0, nil
}

func (m *mockItemService) ListByCreator(ctx context.Context, creator string) ([]*model.Item, error) {
	if m.listByCreatorFunc != nil {
		return m.listByCreatorFunc(ctx, creator)
	}
	return nil, nil
}

func newItemMux(svc service.ItemService) *http.ServeMux {
	h := NewItemHandler(svc)
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/items", h.Create)
	mux.HandleFunc("GET /api/items/{id}", h.Get)
	mux.HandleFunc("POST /api/items/{id}/fund", h.Fund)
	mux.HandleFunc("POST /api/items/{id}/respond", h.Respond)
	mux.HandleFunc("POST /api/items/{id}/end", h.End)
	mux.HandleFunc("POST /api/items/{id}/cancel", h.Cancel)
	mux.HandleFunc("POST /api/items/{id}/claim", h.Claim)
	mux.HandleFunc("GET /api/items/{id}/responders", h.Responders)
	mux.HandleFunc("GET /api/items/{id}/responded", h.HasResponded)
	mux.HandleFunc("GET /api/items/{id}/potential-reward", h.PotentialReward)
	return mux
}

func TestItemHandler_Create_PassesDuration(t *testing.T) {
	var gotKind model.ItemKind
	var gotDuration time.Duration
	var gotProjectID uint64
	mock := &mockItemService{
		createFunc: func(ctx context.Context, kind model.ItemKind, title, description, creator string, projectID uint64, duration time.Duration) (*model.Item, error) {
			gotKind, gotDuration, gotProjectID = kind, duration, projectID
			return &model.Item{ID: 3, Kind: kind, Title: title, Creator: creator}, nil
		},
	}
	mux := newItemMux(mock)

	req := httptest.NewRequest(http.MethodPost, "/api/items",
		strings.NewReader(`{"kind":"survey","title":"t","project_id":4,"duration_seconds":3600}`))
	req = withCaller(req, "0xalice")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d — body: %s", rec.Code, rec.Body.String())
	}
	if gotKind != model.KindSurvey || gotDuration != time.Hour || gotProjectID != 4 {
		t.Errorf("service called with kind=%s duration=%v projectID=%d",
			gotKind, gotDuration, gotProjectID)
	}
}

func TestItemHandler_Create_InvalidArgument(t *testing.T) {
	mock := &mockItemService{
		createFunc: func(ctx context.Context, kind model.ItemKind, title, description, creator string, projectID uint64, duration time.Duration) (*model.Item, error) {
			return nil, service.ErrInvalidArgument
		},
	}
	mux := newItemMux(mock)

	req := httptest.NewRequest(http.MethodPost, "/api/items",
		strings.NewReader(`{"kind":"poll","title":"t","duration_seconds":0}`))
	req = withCaller(req, "0xalice")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestItemHandler_Fund_Unauthorized(t *testing.T) {
	mux := newItemMux(&mockItemService{})

	req := httptest.NewRequest(http.MethodPost, "/api/items/1/fund",
		strings.NewReader(`{"amount":100}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestItemHandler_Respond_InvalidStateConflict(t *testing.T) {
	mock := &mockItemService{
		respondFunc: func(ctx context.Context, id uint64, caller string) error {
			return service.ErrInvalidState
		},
	}
	mux := newItemMux(mock)

	req := httptest.NewRequest(http.MethodPost, "/api/items/1/respond", nil)
	req = withCaller(req, "0xbob")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", rec.Code)
	}
}

func TestItemHandler_Claim_ReturnsAmount(t *testing.T) {
	mock := &mockItemService{
		claimFunc: func(ctx context.Context, id uint64, caller string) (int64, error) {
			return 50, nil
		},
	}
	mux := newItemMux(mock)

	req := httptest.NewRequest(http.MethodPost, "/api/items/1/claim", nil)
	req = withCaller(req, "0xbob")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"amount":50`) {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestItemHandler_Claim_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", repository.ErrNotFound, http.StatusNotFound},
		{"non-responder", service.ErrForbidden, http.StatusForbidden},
		{"repeat claim", service.ErrInvalidState, http.StatusConflict},
		{"dust share", service.ErrRewardTooSmall, http.StatusUnprocessableEntity},
		{"payout rejected", service.ErrTransferFailed, http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockItemService{
				claimFunc: func(ctx context.Context, id uint64, caller string) (int64, error) {
					return 0, tt.err
				},
			}
			mux := newItemMux(mock)

			req := httptest.NewRequest(http.MethodPost, "/api/items/1/claim", nil)
			req = withCaller(req, "0xbob")
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, rec.Code)
			}
		})
	}
}

func TestItemHandler_Responders_EmptyList(t *testing.T) {
	mux := newItemMux(&mockItemService{
		respondersFunc: func(ctx context.Context, id uint64) ([]string, error) {
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/items/1/responders", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("expected [], got %s", rec.Body.String())
	}
}

func TestItemHandler_HasResponded_RequiresAddress(t *testing.T) {
	mux := newItemMux(&mockItemService{})

	req := httptest.NewRequest(http.MethodGet, "/api/items/1/responded", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without address param, got %d", rec.Code)
	}
}

func TestItemHandler_PotentialReward(t *testing.T) {
	mux := newItemMux(&mockItemService{
		potentialRewardFunc: func(ctx context.Context, id uint64) (int64, error) {
			return 33, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/items/7/potential-reward", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"potential_reward":33`) {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}
