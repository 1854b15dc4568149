package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"pawtrail/internal/model"
	"pawtrail/internal/query"
	"pawtrail/internal/schedule"
	"pawtrail/internal/store"
	"pawtrail/internal/websocket"
)

type ReminderHandler struct {
	reminders *store.Reminders
	hub       *websocket.Hub
	logger    *slog.Logger
	now       func() time.Time
}

func NewReminderHandler(rs *store.Reminders, hub *websocket.Hub, logger *slog.Logger) *ReminderHandler {
	return &ReminderHandler{reminders: rs, hub: hub, logger: logger, now: time.Now}
}

func (h *ReminderHandler) broadcast(action string, id string, record any) {
	if h.hub != nil {
		h.hub.Broadcast(websocket.NewMessage(store.NamespaceReminders, action, id, record))
	}
}

// reminderView pairs a reminder with its computed scheduling state so the
// UI never re-derives "next trigger" text.
type reminderView struct {
	Reminder model.Reminder      `json:"reminder"`
	Next     schedule.Occurrence `json:"next"`
}

func (h *ReminderHandler) view(r model.Reminder, now time.Time) reminderView {
	return reminderView{Reminder: r, Next: schedule.NextOccurrence(r, now)}
}

func (h *ReminderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.Reminder
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	created, err := h.reminders.Add(req)
	if err != nil {
		writeError(w, h.logger, err, "failed to create reminder")
		return
	}

	h.broadcast("created", created.ID, created)
	writeJSON(w, http.StatusCreated, h.view(created, h.now()))
}

func (h *ReminderHandler) List(w http.ResponseWriter, r *http.Request) {
	reminders, err := h.reminders.List()
	if err != nil {
		writeError(w, h.logger, err, "failed to list reminders")
		return
	}

	q := r.URL.Query()
	if petID := q.Get("pet_id"); petID != "" {
		reminders = query.Filter(reminders, func(rm model.Reminder) bool { return rm.PetID == petID })
	}
	if typ := q.Get("type"); typ != "" {
		reminders = query.Filter(reminders, func(rm model.Reminder) bool { return string(rm.ReminderType) == typ })
	}
	if active := q.Get("active"); active != "" {
		want := active == "true"
		reminders = query.Filter(reminders, func(rm model.Reminder) bool { return rm.IsActive == want })
	}

	schedule.SortReminders(reminders)

	offset, limit := pageParams(r)
	reminders = query.Paginate(reminders, offset, limit)

	now := h.now()
	views := make([]reminderView, 0, len(reminders))
	for _, rm := range reminders {
		views = append(views, h.view(rm, now))
	}
	writeJSON(w, http.StatusOK, views)
}

// Upcoming returns today's still-ahead active reminders, soonest first.
func (h *ReminderHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	reminders, err := h.reminders.List()
	if err != nil {
		writeError(w, h.logger, err, "failed to list reminders")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	now := h.now()

	upcoming := schedule.UpcomingToday(reminders, now, limit)
	views := make([]reminderView, 0, len(upcoming))
	for _, rm := range upcoming {
		views = append(views, h.view(rm, now))
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *ReminderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	patch, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unreadable body"})
		return
	}

	updated, err := h.reminders.Update(id, patch)
	if err != nil {
		writeError(w, h.logger, err, "failed to update reminder")
		return
	}

	h.broadcast("updated", updated.ID, updated)
	writeJSON(w, http.StatusOK, h.view(updated, h.now()))
}

// Toggle flips a reminder's active flag. Activation state is a first-class
// transition with its own endpoint, not a generic field edit; the flip runs
// atomically in the store so concurrent toggles cannot cancel out.
func (h *ReminderHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	updated, err := h.reminders.Modify(id, func(rm *model.Reminder) {
		rm.IsActive = !rm.IsActive
	})
	if err != nil {
		writeError(w, h.logger, err, "failed to toggle reminder")
		return
	}

	h.broadcast("updated", updated.ID, updated)
	writeJSON(w, http.StatusOK, h.view(updated, h.now()))
}

func (h *ReminderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	removed, err := h.reminders.Remove(id)
	if err != nil {
		writeError(w, h.logger, err, "failed to delete reminder")
		return
	}

	if removed {
		h.broadcast("deleted", id, nil)
	}
	writeJSON(w, http.StatusOK, map[string]bool{"removed": removed})
}
