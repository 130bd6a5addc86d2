package handler

import (
	"net/http"
	"strconv"

	"github.com/pollfund/backend/internal/model"
	"github.com/pollfund/backend/internal/repository"
)

// EventHandler serves the notification feed for external indexers.
type EventHandler struct {
	repo repository.EventRepository
}

// NewEventHandler creates an EventHandler.
func NewEventHandler(repo repository.EventRepository) *EventHandler {
	return &EventHandler{repo: repo}
}

// List は GET /api/events を処理する
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	f := repository.EventFilter{Limit: 50}
	if v := r.URL.Query().Get("project_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_project_id")
			return
		}
		f.ProjectID = id
	}
	if v := r.URL.Query().Get("item_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_item_id")
			return
		}
		f.ItemID = id
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
			f.Limit = n
		}
	}

	events, err := h.repo.List(r.Context(), f)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error")
		return
	}
	if events == nil {
		events = []*model.Event{}
	}
	writeJSON(w, http.StatusOK, events)
}
