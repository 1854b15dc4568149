package storage

import (
	"testing"

	"pawtrail/internal/database"
)

func setupBackend(t *testing.T) *SQLiteBackend {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewSQLiteBackend(db)
}

func TestSQLiteBackendRoundTrip(t *testing.T) {
	b := setupBackend(t)

	if _, ok, err := b.Load("reminders"); err != nil || ok {
		t.Fatalf("empty load = ok=%v err=%v, want ok=false", ok, err)
	}

	if err := b.Save("reminders", []byte(`[{"id":"r1"}]`)); err != nil {
		t.Fatalf("save: %v", err)
	}

	payload, ok, err := b.Load("reminders")
	if err != nil || !ok {
		t.Fatalf("load = ok=%v err=%v", ok, err)
	}
	if string(payload) != `[{"id":"r1"}]` {
		t.Errorf("payload = %s", payload)
	}

	// Upsert overwrites.
	if err := b.Save("reminders", []byte(`[]`)); err != nil {
		t.Fatalf("second save: %v", err)
	}
	payload, _, _ = b.Load("reminders")
	if string(payload) != `[]` {
		t.Errorf("payload after upsert = %s", payload)
	}
}

func TestSQLiteBackendNamespaces(t *testing.T) {
	b := setupBackend(t)

	for _, ns := range []string{"quick-logs", "pets", "reminders"} {
		if err := b.Save(ns, []byte(`[]`)); err != nil {
			t.Fatalf("save %s: %v", ns, err)
		}
	}

	names, err := b.Namespaces()
	if err != nil {
		t.Fatalf("namespaces: %v", err)
	}
	want := []string{"pets", "quick-logs", "reminders"}
	if len(names) != len(want) {
		t.Fatalf("names = %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestMemoryBackendIsolation(t *testing.T) {
	b := NewMemoryBackend()

	payload := []byte(`[1]`)
	if err := b.Save("x", payload); err != nil {
		t.Fatal(err)
	}
	payload[1] = '2'

	got, _, _ := b.Load("x")
	if string(got) != `[1]` {
		t.Errorf("stored payload aliased caller slice: %s", got)
	}
}
