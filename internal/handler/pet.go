package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"pawtrail/internal/model"
	"pawtrail/internal/store"
	"pawtrail/internal/websocket"
)

type PetHandler struct {
	pets   *store.Pets
	hub    *websocket.Hub
	logger *slog.Logger
}

func NewPetHandler(ps *store.Pets, hub *websocket.Hub, logger *slog.Logger) *PetHandler {
	return &PetHandler{pets: ps, hub: hub, logger: logger}
}

func (h *PetHandler) broadcast(action, id string, record any) {
	if h.hub != nil {
		h.hub.Broadcast(websocket.NewMessage(store.NamespacePets, action, id, record))
	}
}

func (h *PetHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.Pet
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	created, err := h.pets.Add(req)
	if err != nil {
		writeError(w, h.logger, err, "failed to create pet")
		return
	}

	h.broadcast("created", created.ID, created)
	writeJSON(w, http.StatusCreated, created)
}

func (h *PetHandler) List(w http.ResponseWriter, r *http.Request) {
	pets, err := h.pets.List()
	if err != nil {
		writeError(w, h.logger, err, "failed to list pets")
		return
	}
	writeJSON(w, http.StatusOK, pets)
}

func (h *PetHandler) Get(w http.ResponseWriter, r *http.Request) {
	pet, err := h.pets.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, h.logger, err, "failed to get pet")
		return
	}
	writeJSON(w, http.StatusOK, pet)
}

func (h *PetHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	patch, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unreadable body"})
		return
	}

	updated, err := h.pets.Update(id, patch)
	if err != nil {
		writeError(w, h.logger, err, "failed to update pet")
		return
	}

	h.broadcast("updated", updated.ID, updated)
	writeJSON(w, http.StatusOK, updated)
}

func (h *PetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	removed, err := h.pets.Remove(id)
	if err != nil {
		writeError(w, h.logger, err, "failed to delete pet")
		return
	}

	if removed {
		h.broadcast("deleted", id, nil)
	}
	writeJSON(w, http.StatusOK, map[string]bool{"removed": removed})
}
