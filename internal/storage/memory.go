package storage

import "sort"

// MemoryBackend keeps payloads in a map. Used by tests and as a throwaway
// backend when no database path is configured.
type MemoryBackend struct {
	data map[string][]byte
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[string][]byte)}
}

func (b *MemoryBackend) Load(namespace string) ([]byte, bool, error) {
	payload, ok := b.data[namespace]
	return payload, ok, nil
}

func (b *MemoryBackend) Save(namespace string, payload []byte) error {
	cp := make([]byte, len(payload))
	copy(cp, payload)
	b.data[namespace] = cp
	return nil
}

func (b *MemoryBackend) Namespaces() ([]string, error) {
	names := make([]string, 0, len(b.data))
	for ns := range b.data {
		names = append(names, ns)
	}
	sort.Strings(names)
	return names, nil
}
