// Package storage provides the durable key-value layer beneath the record
// store: one flat namespace key per entity kind, one JSON array payload per
// key. The store never interprets the payload here; corruption handling and
// record semantics live a level up.
package storage

// Backend is a durable byte store keyed by namespace. Load reports ok=false
// when the namespace has never been written, which is how the record store
// distinguishes "empty collection" from "no data yet" for seed bootstrap.
type Backend interface {
	Load(namespace string) (payload []byte, ok bool, err error)
	Save(namespace string, payload []byte) error
	Namespaces() ([]string, error)
}
