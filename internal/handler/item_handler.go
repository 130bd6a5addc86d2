package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/pollfund/backend/internal/model"
	"github.com/pollfund/backend/internal/service"
	"github.com/pollfund/backend/pkg/auth"
)

// ItemHandler はポール/サーベイ API の HTTP ハンドラ
type ItemHandler struct {
	itemService service.ItemService
}

// NewItemHandler は ItemHandler を生成する
func NewItemHandler(itemService service.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

// Create は POST /api/items を処理する（認証必須）
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CallerFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req struct {
		Kind        string `json:"kind"`
		Title       string `json:"title"`
		Description string `json:"description"`
		ProjectID   uint64 `json:"project_id"`
		// Duration of the response window in seconds.
		DurationSeconds int64 `json:"duration_seconds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	item, err := h.itemService.Create(r.Context(), model.ItemKind(req.Kind),
		req.Title, req.Description, caller, req.ProjectID,
		time.Duration(req.DurationSeconds)*time.Second)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// Get は GET /api/items/{id} を処理する
func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.itemService.Get(r.Context(), parseIDParam(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// Fund は POST /api/items/{id}/fund を処理する（認証必須）
func (h *ItemHandler) Fund(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CallerFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req struct {
		Amount int64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	if err := h.itemService.Fund(r.Context(), parseIDParam(r), caller, req.Amount); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Respond は POST /api/items/{id}/respond を処理する（認証必須）
func (h *ItemHandler) Respond(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CallerFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.itemService.Respond(r.Context(), parseIDParam(r), caller); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// End は POST /api/items/{id}/end を処理する（認証必須。
// 期限後は誰でも、それ以前は作成者のみ）
func (h *ItemHandler) End(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CallerFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.itemService.End(r.Context(), parseIDParam(r), caller); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Cancel は POST /api/items/{id}/cancel を処理する（認証必須・作成者のみ）
func (h *ItemHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CallerFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.itemService.Cancel(r.Context(), parseIDParam(r), caller); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Claim は POST /api/items/{id}/claim を処理する（認証必須・回答者のみ）
func (h *ItemHandler) Claim(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CallerFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	amount, err := h.itemService.ClaimReward(r.Context(), parseIDParam(r), caller)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"amount": amount})
}

// Responders は GET /api/items/{id}/responders を処理する
func (h *ItemHandler) Responders(w http.ResponseWriter, r *http.Request) {
	responders, err := h.itemService.Responders(r.Context(), parseIDParam(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if responders == nil {
		responders = []string{}
	}
	writeJSON(w, http.StatusOK, responders)
}

// HasResponded は GET /api/items/{id}/responded?address= を処理する
func (h *ItemHandler) HasResponded(w http.ResponseWriter, r *http.Request) {
	addr := r.URL.Query().Get("address")
	if addr == "" {
		writeError(w, http.StatusBadRequest, "address_required")
		return
	}

	responded, err := h.itemService.HasResponded(r.Context(), parseIDParam(r), addr)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"responded": responded})
}

// PotentialReward は GET /api/items/{id}/potential-reward を処理する
func (h *ItemHandler) PotentialReward(w http.ResponseWriter, r *http.Request) {
	amount, err := h.itemService.PotentialReward(r.Context(), parseIDParam(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"potential_reward": amount})
}

// MyItems は GET /api/me/items を処理する（認証必須）
func (h *ItemHandler) MyItems(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CallerFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	items, err := h.itemService.ListByCreator(r.Context(), caller)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}
