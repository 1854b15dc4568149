package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"pawtrail/internal/model"
	"pawtrail/internal/query"
	"pawtrail/internal/store"
	"pawtrail/internal/websocket"
)

type QuickLogHandler struct {
	logs   *store.QuickLogs
	hub    *websocket.Hub
	logger *slog.Logger
}

func NewQuickLogHandler(qs *store.QuickLogs, hub *websocket.Hub, logger *slog.Logger) *QuickLogHandler {
	return &QuickLogHandler{logs: qs, hub: hub, logger: logger}
}

func (h *QuickLogHandler) broadcast(action, id string, record any) {
	if h.hub != nil {
		h.hub.Broadcast(websocket.NewMessage(store.NamespaceQuickLogs, action, id, record))
	}
}

func (h *QuickLogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.QuickLog
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	if req.LoggedAt.IsZero() {
		req.LoggedAt = time.Now()
	}

	created, err := h.logs.Add(req)
	if err != nil {
		writeError(w, h.logger, err, "failed to create quick log")
		return
	}

	h.broadcast("created", created.ID, created)
	writeJSON(w, http.StatusCreated, created)
}

func (h *QuickLogHandler) List(w http.ResponseWriter, r *http.Request) {
	logs, err := h.logs.List()
	if err != nil {
		writeError(w, h.logger, err, "failed to list quick logs")
		return
	}

	q := r.URL.Query()
	if petID := q.Get("pet_id"); petID != "" {
		logs = query.Filter(logs, func(l model.QuickLog) bool { return l.PetID == petID })
	}
	if typ := q.Get("log_type"); typ != "" {
		logs = query.Filter(logs, func(l model.QuickLog) bool { return l.LogType == typ })
	}

	// Most recent observation first
	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].LoggedAt.After(logs[j].LoggedAt)
	})

	offset, limit := pageParams(r)
	writeJSON(w, http.StatusOK, query.Paginate(logs, offset, limit))
}

func (h *QuickLogHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	patch, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unreadable body"})
		return
	}

	updated, err := h.logs.Update(id, patch)
	if err != nil {
		writeError(w, h.logger, err, "failed to update quick log")
		return
	}

	h.broadcast("updated", updated.ID, updated)
	writeJSON(w, http.StatusOK, updated)
}

func (h *QuickLogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	removed, err := h.logs.Remove(id)
	if err != nil {
		writeError(w, h.logger, err, "failed to delete quick log")
		return
	}

	if removed {
		h.broadcast("deleted", id, nil)
	}
	writeJSON(w, http.StatusOK, map[string]bool{"removed": removed})
}
