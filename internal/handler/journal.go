package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"sort"

	"pawtrail/internal/model"
	"pawtrail/internal/query"
	"pawtrail/internal/store"
	"pawtrail/internal/websocket"
)

type JournalHandler struct {
	journal *store.Journal
	hub     *websocket.Hub
	logger  *slog.Logger
}

func NewJournalHandler(js *store.Journal, hub *websocket.Hub, logger *slog.Logger) *JournalHandler {
	return &JournalHandler{journal: js, hub: hub, logger: logger}
}

func (h *JournalHandler) broadcast(action, id string, record any) {
	if h.hub != nil {
		h.hub.Broadcast(websocket.NewMessage(store.NamespaceJournal, action, id, record))
	}
}

func (h *JournalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.JournalEntry
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	created, err := h.journal.Add(req)
	if err != nil {
		writeError(w, h.logger, err, "failed to create journal entry")
		return
	}

	h.broadcast("created", created.ID, created)
	writeJSON(w, http.StatusCreated, created)
}

func (h *JournalHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.journal.List()
	if err != nil {
		writeError(w, h.logger, err, "failed to list journal entries")
		return
	}

	q := r.URL.Query()
	if petID := q.Get("pet_id"); petID != "" {
		entries = query.Filter(entries, func(e model.JournalEntry) bool { return e.PetID == petID })
	}
	if tag := q.Get("tag"); tag != "" {
		entries = query.Filter(entries, func(e model.JournalEntry) bool { return slices.Contains(e.Tags, tag) })
	}

	// Newest first
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})

	offset, limit := pageParams(r)
	writeJSON(w, http.StatusOK, query.Paginate(entries, offset, limit))
}

func (h *JournalHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	patch, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unreadable body"})
		return
	}

	updated, err := h.journal.Update(id, patch)
	if err != nil {
		writeError(w, h.logger, err, "failed to update journal entry")
		return
	}

	h.broadcast("updated", updated.ID, updated)
	writeJSON(w, http.StatusOK, updated)
}

func (h *JournalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	removed, err := h.journal.Remove(id)
	if err != nil {
		writeError(w, h.logger, err, "failed to delete journal entry")
		return
	}

	if removed {
		h.broadcast("deleted", id, nil)
	}
	writeJSON(w, http.StatusOK, map[string]bool{"removed": removed})
}
