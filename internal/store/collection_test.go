package store

import (
	"encoding/json"
	"log/slog"
	"sync"
	"testing"
	"time"

	"pawtrail/internal/model"
	"pawtrail/internal/storage"
)

func testReminder(title string) model.Reminder {
	return model.Reminder{
		Title:        title,
		PetID:        "p1",
		PetName:      "Biscuit",
		ReminderType: model.ReminderFeeding,
		Time:         "08:00",
		Frequency:    model.Daily,
		IsActive:     true,
	}
}

func newTestCollection(t *testing.T, backend storage.Backend) *Reminders {
	t.Helper()
	return NewReminders(backend, slog.Default())
}

func TestAddAssignsMetaAndPersists(t *testing.T) {
	backend := storage.NewMemoryBackend()
	col := newTestCollection(t, backend)

	created, err := col.Add(testReminder("Morning kibble"))
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if created.ID == "" {
		t.Error("expected assigned id")
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected assigned createdAt")
	}

	list, err := col.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("list len = %d, want 1", len(list))
	}
	if list[0].ID != created.ID || list[0].Title != "Morning kibble" {
		t.Errorf("stored record = %+v", list[0])
	}

	// Write-through: a fresh collection over the same backend sees it.
	reload := newTestCollection(t, backend)
	list, err = reload.List()
	if err != nil {
		t.Fatalf("reload list: %v", err)
	}
	if len(list) != 1 || list[0].ID != created.ID {
		t.Errorf("reloaded list = %v", list)
	}
}

func TestAddRejectsInvalidRecord(t *testing.T) {
	backend := storage.NewMemoryBackend()
	col := newTestCollection(t, backend)

	bad := testReminder("Bad clock")
	bad.Time = "25:00"

	if _, err := col.Add(bad); err == nil {
		t.Fatal("expected validation error")
	}

	// Nothing persisted.
	list, _ := col.List()
	if len(list) != 0 {
		t.Errorf("list len = %d, want 0", len(list))
	}
}

func TestUpdateMergesAndPreservesMeta(t *testing.T) {
	col := newTestCollection(t, storage.NewMemoryBackend())

	created, err := col.Add(testReminder("Walk"))
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	patch := []byte(`{"title":"Evening walk","time":"18:30","id":"forged","createdAt":"2031-01-01T00:00:00Z"}`)
	updated, err := col.Update(created.ID, patch)
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.Title != "Evening walk" || updated.Time != "18:30" {
		t.Errorf("patched fields = %q %q", updated.Title, updated.Time)
	}
	// Unpatched fields survive.
	if updated.PetName != "Biscuit" || !updated.IsActive {
		t.Errorf("untouched fields changed: %+v", updated)
	}
	// Immutable fields win over the patch.
	if updated.ID != created.ID {
		t.Errorf("id = %q, want %q", updated.ID, created.ID)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("createdAt = %v, want %v", updated.CreatedAt, created.CreatedAt)
	}
}

func TestUpdateMissingIDIsNotFound(t *testing.T) {
	col := newTestCollection(t, storage.NewMemoryBackend())

	if _, err := col.Add(testReminder("Keep me")); err != nil {
		t.Fatalf("add: %v", err)
	}

	_, err := col.Update("nope", []byte(`{"title":"x"}`))
	if _, ok := err.(*model.NotFoundError); !ok {
		t.Fatalf("err = %v, want NotFoundError", err)
	}

	// The failed update mutated nothing.
	list, _ := col.List()
	if len(list) != 1 || list[0].Title != "Keep me" {
		t.Errorf("collection changed: %v", list)
	}
}

func TestUpdateInvalidPatchLeavesRecord(t *testing.T) {
	col := newTestCollection(t, storage.NewMemoryBackend())

	created, _ := col.Add(testReminder("Pills"))

	if _, err := col.Update(created.ID, []byte(`{"time":"99:99"}`)); err == nil {
		t.Fatal("expected validation error")
	}

	got, err := col.Get(created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Time != "08:00" {
		t.Errorf("time = %q, want 08:00", got.Time)
	}
}

func TestModifyPreservesMetaAndValidates(t *testing.T) {
	col := newTestCollection(t, storage.NewMemoryBackend())
	created, _ := col.Add(testReminder("Flip me"))

	updated, err := col.Modify(created.ID, func(r *model.Reminder) {
		r.IsActive = false
		r.ID = "forged"
	})
	if err != nil {
		t.Fatalf("modify: %v", err)
	}
	if updated.IsActive {
		t.Error("flag not flipped")
	}
	if updated.ID != created.ID {
		t.Errorf("id = %q, want %q", updated.ID, created.ID)
	}

	// A transform that breaks validation leaves the record untouched.
	if _, err := col.Modify(created.ID, func(r *model.Reminder) { r.Time = "bad" }); err == nil {
		t.Fatal("expected validation error")
	}
	got, _ := col.Get(created.ID)
	if got.Time != "08:00" {
		t.Errorf("time = %q, want 08:00", got.Time)
	}

	if _, err := col.Modify("missing", func(r *model.Reminder) {}); err == nil {
		t.Error("expected NotFoundError")
	}
}

func TestModifyFlipsAtomically(t *testing.T) {
	col := newTestCollection(t, storage.NewMemoryBackend())
	created, _ := col.Add(testReminder("Contested"))

	// An even number of concurrent flips must land back on the starting
	// value. A get-then-update pair would let two flips read the same
	// state and cancel out.
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := col.Modify(created.ID, func(r *model.Reminder) {
				r.IsActive = !r.IsActive
			}); err != nil {
				t.Errorf("modify: %v", err)
			}
		}()
	}
	wg.Wait()

	got, err := col.Get(created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.IsActive {
		t.Error("50 flips did not return to the initial active state")
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	backend := storage.NewMemoryBackend()
	col := newTestCollection(t, backend)

	created, _ := col.Add(testReminder("Gone soon"))

	removed, err := col.Remove(created.ID)
	if err != nil || !removed {
		t.Fatalf("first remove = %v, %v; want true, nil", removed, err)
	}

	removed, err = col.Remove(created.ID)
	if err != nil || removed {
		t.Fatalf("second remove = %v, %v; want false, nil", removed, err)
	}

	list, _ := newTestCollection(t, backend).List()
	for _, r := range list {
		if r.ID == created.ID {
			t.Error("removed record still persisted")
		}
	}
}

func TestSeedOnlyFillsEmptyNamespace(t *testing.T) {
	backend := storage.NewMemoryBackend()
	seed := []model.Reminder{testReminder("Seeded")}

	col := newTestCollection(t, backend)
	first, err := col.Load(seed)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(first) != 1 || first[0].ID == "" {
		t.Fatalf("seed not stamped: %v", first)
	}

	// Second load from a fresh collection sees identical data: the
	// bootstrap persisted immediately.
	second, err := newTestCollection(t, backend).Load(seed)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(second) != 1 || second[0].ID != first[0].ID {
		t.Errorf("reload = %v, want same as first load", second)
	}

	// User data set: seed must never shadow it.
	if _, err := newTestCollection(t, backend).Add(testReminder("Mine")); err != nil {
		t.Fatalf("add: %v", err)
	}
	third, _ := newTestCollection(t, backend).Load(seed)
	if len(third) != 2 {
		t.Errorf("list len = %d, want 2 (seed w/ user record, not re-seeded)", len(third))
	}
}

func TestCorruptPayloadFallsBackToSeed(t *testing.T) {
	backend := storage.NewMemoryBackend()
	if err := backend.Save(NamespaceReminders, []byte(`{not json`)); err != nil {
		t.Fatal(err)
	}

	col := newTestCollection(t, backend)
	list, err := col.Load([]model.Reminder{testReminder("Fallback")})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(list) != 1 || list[0].Title != "Fallback" {
		t.Errorf("list = %v, want just the seed", list)
	}
}

func TestCorruptRecordIsSkippedRestSurvives(t *testing.T) {
	backend := storage.NewMemoryBackend()
	payload := `[{"id":"good","createdAt":"2024-01-01T00:00:00Z","title":"ok","petId":"p1","petName":"B","reminderType":"feeding","time":"08:00","frequency":"daily","isActive":true},"not an object"]`
	if err := backend.Save(NamespaceReminders, []byte(payload)); err != nil {
		t.Fatal(err)
	}

	list, err := newTestCollection(t, backend).List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].ID != "good" {
		t.Errorf("list = %v, want just the good record", list)
	}
}

func TestUnknownFieldsRoundTrip(t *testing.T) {
	backend := storage.NewMemoryBackend()
	col := newTestCollection(t, backend)

	raw := []byte(`{"title":"Future schema","petId":"p1","petName":"B","reminderType":"general","time":"12:00","frequency":"daily","isActive":true,"snoozeUntil":"2024-06-01T00:00:00Z"}`)
	var rec model.Reminder
	if err := json.Unmarshal(raw, &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	created, err := col.Add(rec)
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	// Patch an unrelated field, then reload from the backend.
	if _, err := col.Update(created.ID, []byte(`{"title":"Renamed"}`)); err != nil {
		t.Fatalf("update: %v", err)
	}

	list, _ := newTestCollection(t, backend).List()
	if len(list) != 1 {
		t.Fatalf("list len = %d", len(list))
	}
	got, ok := list[0].Extra["snoozeUntil"]
	if !ok {
		t.Fatal("unknown field dropped during round-trip")
	}
	if string(got) != `"2024-06-01T00:00:00Z"` {
		t.Errorf("snoozeUntil = %s", got)
	}
}

func TestIDsAreFreshUnderRapidAdds(t *testing.T) {
	col := newTestCollection(t, storage.NewMemoryBackend())

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		created, err := col.Add(testReminder("r"))
		if err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
		if seen[created.ID] {
			t.Fatalf("duplicate id %q", created.ID)
		}
		seen[created.ID] = true
	}
}

func TestGet(t *testing.T) {
	col := newTestCollection(t, storage.NewMemoryBackend())
	created, _ := col.Add(testReminder("Find me"))

	got, err := col.Get(created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Find me" {
		t.Errorf("title = %q", got.Title)
	}

	if _, err := col.Get("missing"); err == nil {
		t.Error("expected NotFoundError")
	}
}

func TestInsertionOrderPreserved(t *testing.T) {
	backend := storage.NewMemoryBackend()
	col := newTestCollection(t, backend)

	titles := []string{"a", "b", "c", "d"}
	for _, title := range titles {
		if _, err := col.Add(testReminder(title)); err != nil {
			t.Fatalf("add %s: %v", title, err)
		}
	}

	list, _ := newTestCollection(t, backend).List()
	if len(list) != len(titles) {
		t.Fatalf("list len = %d", len(list))
	}
	for i, title := range titles {
		if list[i].Title != title {
			t.Errorf("list[%d] = %q, want %q", i, list[i].Title, title)
		}
	}
}

func TestBootstrapStampsSeedMeta(t *testing.T) {
	col := newTestCollection(t, storage.NewMemoryBackend())
	stamp := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	col.now = func() time.Time { return stamp }

	list, err := col.Load([]model.Reminder{testReminder("seeded")})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if list[0].ID == "" {
		t.Error("seed id not stamped")
	}
	if !list[0].CreatedAt.Equal(stamp) {
		t.Errorf("createdAt = %v, want %v", list[0].CreatedAt, stamp)
	}
}
