// Package store implements the persistent record store: namespaced, typed
// collections with write-through durability. Every mutation validates,
// applies, and saves the whole collection before returning. The backend is
// the only durability mechanism, so there is no separate commit step.
package store

import (
	"encoding/json"
	"log/slog"
	"slices"
	"sync"
	"time"

	"pawtrail/internal/model"
	"pawtrail/internal/storage"
)

// recordPtr constrains P to "pointer to T that is a model.Record", which
// lets the collection stamp metadata on values it owns.
type recordPtr[T any] interface {
	*T
	model.Record
}

// Collection is a typed view over one namespace of a storage.Backend.
// Insertion order is preserved; reads are in-memory after the initial load.
//
// A mutex serializes mutations because the HTTP layer calls in from
// concurrent request goroutines. There is still exactly one writer per
// namespace process-wide; concurrent writers in other processes are out of
// scope and last-write-wins.
type Collection[T any, P recordPtr[T]] struct {
	mu      sync.Mutex
	backend storage.Backend
	ns      string
	logger  *slog.Logger

	items  []T
	loaded bool

	now func() time.Time
}

// New creates a Collection bound to namespace. Nothing is read from the
// backend until Load or the first operation.
func New[T any, P recordPtr[T]](backend storage.Backend, namespace string, logger *slog.Logger) *Collection[T, P] {
	return &Collection[T, P]{
		backend: backend,
		ns:      namespace,
		logger:  logger.With("namespace", namespace),
		now:     time.Now,
	}
}

// Namespace returns the collection's namespace key.
func (c *Collection[T, P]) Namespace() string {
	return c.ns
}

// Load reads the persisted collection. On the very first load of an empty
// namespace the seed records are stamped, stored, and persisted immediately,
// so first-load and every later load observe the same data. Once the
// namespace holds data, seed is ignored entirely: seed supplies defaults,
// it never shadows user records.
//
// A payload that fails to parse as a JSON array is logged and replaced by
// the seed (or an empty collection). A single unparsable element is skipped
// and the rest of the collection survives.
func (c *Collection[T, P]) Load(seed []T) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureLoaded(seed); err != nil {
		return nil, err
	}
	return slices.Clone(c.items), nil
}

func (c *Collection[T, P]) ensureLoaded(seed []T) error {
	if c.loaded {
		return nil
	}

	payload, ok, err := c.backend.Load(c.ns)
	if err != nil {
		return err
	}

	if !ok {
		return c.bootstrap(seed)
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(payload, &raws); err != nil {
		c.logger.Warn("corrupt collection payload, falling back", "error", err)
		return c.bootstrap(seed)
	}

	items := make([]T, 0, len(raws))
	for i, raw := range raws {
		var v T
		if err := json.Unmarshal(raw, P(&v)); err != nil {
			c.logger.Warn("skipping corrupt record", "index", i, "error", err)
			continue
		}
		items = append(items, v)
	}

	c.items = items
	c.loaded = true
	return nil
}

func (c *Collection[T, P]) bootstrap(seed []T) error {
	now := c.now()
	for i := range seed {
		meta := P(&seed[i]).RecordMeta()
		if meta.ID == "" {
			meta.ID = newID(now)
		}
		if meta.CreatedAt.IsZero() {
			meta.CreatedAt = now
		}
	}

	c.items = seed
	c.loaded = true
	return c.persist()
}

// List returns the current records in insertion order.
func (c *Collection[T, P]) List() ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureLoaded(nil); err != nil {
		return nil, err
	}
	return slices.Clone(c.items), nil
}

// Get returns the record with the given id, or a NotFoundError.
func (c *Collection[T, P]) Get(id string) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	if err := c.ensureLoaded(nil); err != nil {
		return zero, err
	}

	idx := c.indexOf(id)
	if idx < 0 {
		return zero, &model.NotFoundError{Namespace: c.ns, ID: id}
	}
	return c.items[idx], nil
}

// Add validates rec, stamps id and createdAt if absent, appends it, and
// persists. The stored record is returned so callers can render it without
// a second read.
func (c *Collection[T, P]) Add(rec T) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	if err := c.ensureLoaded(nil); err != nil {
		return zero, err
	}

	if err := P(&rec).Validate(); err != nil {
		return zero, err
	}

	now := c.now()
	meta := P(&rec).RecordMeta()
	if meta.ID == "" {
		meta.ID = newID(now)
	}
	if meta.CreatedAt.IsZero() {
		meta.CreatedAt = now
	}

	c.items = append(c.items, rec)
	if err := c.persist(); err != nil {
		c.items = c.items[:len(c.items)-1]
		return zero, err
	}
	return rec, nil
}

// Update merges a JSON patch onto the record with the given id. Fields
// absent from the patch are untouched; id and createdAt are immutable and
// survive any patch. The patched record is re-validated before anything is
// persisted, so a bad patch never leaves a half-saved record.
func (c *Collection[T, P]) Update(id string, patch []byte) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	if err := c.ensureLoaded(nil); err != nil {
		return zero, err
	}

	idx := c.indexOf(id)
	if idx < 0 {
		return zero, &model.NotFoundError{Namespace: c.ns, ID: id}
	}

	updated := c.items[idx]
	prev := *P(&updated).RecordMeta()

	if err := json.Unmarshal(patch, P(&updated)); err != nil {
		return zero, &model.ValidationError{Field: "patch", Reason: err.Error()}
	}

	meta := P(&updated).RecordMeta()
	meta.ID = prev.ID
	meta.CreatedAt = prev.CreatedAt

	if err := P(&updated).Validate(); err != nil {
		return zero, err
	}

	old := c.items[idx]
	c.items[idx] = updated
	if err := c.persist(); err != nil {
		c.items[idx] = old
		return zero, err
	}
	return updated, nil
}

// Modify applies fn to the record with the given id. The whole
// read-modify-write runs under the collection lock, so state transitions
// like an activation flip cannot race a concurrent caller. Meta is restored
// after fn runs and the result is validated before anything is persisted.
func (c *Collection[T, P]) Modify(id string, fn func(*T)) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	if err := c.ensureLoaded(nil); err != nil {
		return zero, err
	}

	idx := c.indexOf(id)
	if idx < 0 {
		return zero, &model.NotFoundError{Namespace: c.ns, ID: id}
	}

	updated := c.items[idx]
	prev := *P(&updated).RecordMeta()

	fn(&updated)

	meta := P(&updated).RecordMeta()
	meta.ID = prev.ID
	meta.CreatedAt = prev.CreatedAt

	if err := P(&updated).Validate(); err != nil {
		return zero, err
	}

	old := c.items[idx]
	c.items[idx] = updated
	if err := c.persist(); err != nil {
		c.items[idx] = old
		return zero, err
	}
	return updated, nil
}

// Remove deletes the record with the given id and reports whether anything
// was removed. Removing an absent id is not an error: double-delete is safe.
func (c *Collection[T, P]) Remove(id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureLoaded(nil); err != nil {
		return false, err
	}

	idx := c.indexOf(id)
	if idx < 0 {
		return false, nil
	}

	old := c.items[idx]
	c.items = slices.Delete(c.items, idx, idx+1)
	if err := c.persist(); err != nil {
		c.items = slices.Insert(c.items, idx, old)
		return false, err
	}
	return true, nil
}

func (c *Collection[T, P]) indexOf(id string) int {
	for i := range c.items {
		if P(&c.items[i]).RecordMeta().ID == id {
			return i
		}
	}
	return -1
}

func (c *Collection[T, P]) persist() error {
	items := c.items
	if items == nil {
		items = []T{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return c.backend.Save(c.ns, payload)
}
