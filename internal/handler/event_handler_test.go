package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pollfund/backend/internal/model"
	"github.com/pollfund/backend/internal/repository"
)

func TestEventHandler_List(t *testing.T) {
	repo := repository.NewMemEventRepository()
	ctx := context.Background()
	_ = repo.Insert(ctx, &model.Event{ID: "e1", Type: model.EventItemFunded, ItemID: 1, Amount: 100})
	_ = repo.Insert(ctx, &model.Event{ID: "e2", Type: model.EventItemEnded, ItemID: 2})

	h := NewEventHandler(repo)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/events", h.List)

	req := httptest.NewRequest(http.MethodGet, "/api/events?item_id=1", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"e1"`) || strings.Contains(body, `"e2"`) {
		t.Errorf("item_id filter not applied: %s", body)
	}
}

func TestEventHandler_List_BadFilter(t *testing.T) {
	h := NewEventHandler(repository.NewMemEventRepository())
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/events", h.List)

	req := httptest.NewRequest(http.MethodGet, "/api/events?item_id=abc", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for malformed item_id, got %d", rec.Code)
	}
}

func TestEventHandler_List_EmptyIsJSONArray(t *testing.T) {
	h := NewEventHandler(repository.NewMemEventRepository())
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/events", h.List)

	req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("expected [], got %s", rec.Body.String())
	}
}
