package model

import (
	"encoding/json"
	"maps"
	"time"
)

// Meta holds the fields shared by every persisted record. ID and CreatedAt
// are assigned by the store at creation and never change afterwards. Extra
// carries JSON fields this version of the schema does not know about, so
// records written by a newer client survive an edit round-trip intact.
type Meta struct {
	ID        string                     `json:"id"`
	CreatedAt time.Time                  `json:"createdAt"`
	Extra     map[string]json.RawMessage `json:"-"`
}

// RecordMeta returns the embedded Meta. Promoted onto every record type,
// which is how the store reads and stamps id/createdAt generically.
func (m *Meta) RecordMeta() *Meta {
	return m
}

// Record is implemented by all persisted entity types.
type Record interface {
	RecordMeta() *Meta
	Validate() error
}

// extraFields returns the keys of data that are not in known, for stashing
// into Meta.Extra during unmarshal.
func extraFields(data []byte, known []string) (map[string]json.RawMessage, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	for _, k := range known {
		delete(raw, k)
	}
	if len(raw) == 0 {
		return nil, nil
	}
	return raw, nil
}

// mergeExtra combines the record's existing extras with newly seen unknown
// fields. Returns a fresh map so callers never mutate a shared one.
func mergeExtra(existing, incoming map[string]json.RawMessage) map[string]json.RawMessage {
	if len(incoming) == 0 {
		return existing
	}
	merged := maps.Clone(existing)
	if merged == nil {
		merged = make(map[string]json.RawMessage, len(incoming))
	}
	maps.Copy(merged, incoming)
	return merged
}

// marshalWithExtra marshals v (a record's alias type, so no custom marshaler
// recursion) and splices the preserved unknown fields back in. Known fields
// always win over a stale extra of the same name.
func marshalWithExtra(v any, extra map[string]json.RawMessage) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if len(extra) == 0 {
		return b, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(b, &obj); err != nil {
		return nil, err
	}
	for k, raw := range extra {
		if _, ok := obj[k]; !ok {
			obj[k] = raw
		}
	}
	return json.Marshal(obj)
}
